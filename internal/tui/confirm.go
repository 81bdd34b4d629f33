// internal/tui/confirm.go
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ImportAction is the outcome of the merge/replace confirmation dialog.
type ImportAction int

const (
	// ImportCancel abandons the import and leaves the dataset untouched.
	ImportCancel ImportAction = iota
	// ImportMerge folds the incoming rows into the existing dataset.
	ImportMerge
	// ImportReplace discards the existing dataset in favor of the import.
	ImportReplace
)

// String returns the action's display name.
func (a ImportAction) String() string {
	switch a {
	case ImportMerge:
		return "merge"
	case ImportReplace:
		return "replace"
	default:
		return "cancel"
	}
}

// ImportResolvedMsg reports the user's choice to the embedding model.
type ImportResolvedMsg struct {
	Action ImportAction
}

var (
	dialogStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	buttonStyle       = lipgloss.NewStyle().Padding(0, 2).MarginRight(1).Background(lipgloss.Color("238")).Foreground(lipgloss.Color("252"))
	activeButtonStyle = lipgloss.NewStyle().Padding(0, 2).MarginRight(1).Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230"))
)

// confirmButtons is the fixed button order: merge, replace, cancel.
var confirmButtons = []ImportAction{ImportMerge, ImportReplace, ImportCancel}

// ConfirmModel is the three-way modal shown when an import would land on a
// non-empty dataset. It carries no business logic; it resolves to exactly
// one ImportResolvedMsg.
type ConfirmModel struct {
	existing int
	incoming int
	focus    int
	resolved bool
	choice   ImportAction
}

// NewConfirm builds the dialog for the given dataset sizes.
func NewConfirm(existingRows, incomingRows int) ConfirmModel {
	return ConfirmModel{existing: existingRows, incoming: incomingRows}
}

// Choice returns the resolved action; valid once the program has finished.
func (m ConfirmModel) Choice() ImportAction {
	return m.choice
}

// Init implements tea.Model.
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update handles dialog navigation and resolution.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "left", "shift+tab":
		m.focus = (m.focus + len(confirmButtons) - 1) % len(confirmButtons)
	case "right", "tab":
		m.focus = (m.focus + 1) % len(confirmButtons)
	case "m":
		return m.resolve(ImportMerge)
	case "r":
		return m.resolve(ImportReplace)
	case "enter":
		return m.resolve(confirmButtons[m.focus])
	case "esc", "ctrl+c", "q":
		return m.resolve(ImportCancel)
	}
	return m, nil
}

func (m ConfirmModel) resolve(action ImportAction) (tea.Model, tea.Cmd) {
	m.resolved = true
	m.choice = action
	return m, tea.Batch(
		func() tea.Msg { return ImportResolvedMsg{Action: action} },
		tea.Quit,
	)
}

// View renders the dialog.
func (m ConfirmModel) View() string {
	if m.resolved {
		return ""
	}

	prompt := fmt.Sprintf(
		"The dataset already holds %d Q&A pair(s).\nImport %d incoming pair(s) by merging, or replace the dataset?",
		m.existing, m.incoming,
	)

	buttons := make([]string, len(confirmButtons))
	for i, action := range confirmButtons {
		label := action.String()
		if i == m.focus {
			buttons[i] = activeButtonStyle.Render(label)
		} else {
			buttons[i] = buttonStyle.Render(label)
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		prompt,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, buttons...),
		"",
		helpStyle.Render("←/→ select • enter confirm • esc cancel"),
	)
	return dialogStyle.Render(body)
}
