// internal/tui/app.go
package tui

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mjarrell/otune/internal/appconfig"
	"github.com/mjarrell/otune/internal/logging"
	"github.com/mjarrell/otune/internal/settings"
)

var (
	appliedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("40")).MarginTop(1)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).MarginTop(1)
)

// App owns the settings panel for the tune command. It is the owner the
// panel pushes to: SettingsAppliedMsg lands here, one full record per push.
type App struct {
	panel    Panel
	applied  settings.Settings
	hasSaved bool
	showHelp bool
	quitting bool
}

// NewApp builds the owner model around a panel.
func NewApp(panel Panel) App {
	return App{panel: panel}
}

// Applied returns the last record pushed by the panel, if any.
func (a App) Applied() (settings.Settings, bool) {
	return a.applied, a.hasSaved
}

// Init delegates to the panel's one-shot initialization.
func (a App) Init() tea.Cmd {
	return a.panel.Init()
}

// Update is the central update function for the tune program.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			a.quitting = true
			return a, tea.Quit
		}

	case SettingsAppliedMsg:
		a.applied = msg.Settings
		a.hasSaved = true
		logging.LogEvent("settings applied: model=%s temperature=%v top_p=%v fixed_seed=%v seed=%d num_ctx=%d",
			msg.Settings.Model, msg.Settings.Temperature, msg.Settings.TopP,
			msg.Settings.UseFixedSeed, msg.Settings.Seed, msg.Settings.NumCtx)
		return a, nil

	case HelpRequestedMsg:
		a.showHelp = !a.showHelp
		return a, nil
	}

	var cmd tea.Cmd
	a.panel, cmd = a.panel.Update(msg)
	return a, cmd
}

// View renders the panel plus the owner's applied-settings status line.
func (a App) View() string {
	if a.quitting {
		return ""
	}

	view := a.panel.View()
	if a.hasSaved {
		view += "\n" + appliedStyle.Render(fmt.Sprintf("Applied: %s (temp %v, top_p %v, ctx %d)",
			a.applied.Model, a.applied.Temperature, a.applied.TopP, a.applied.NumCtx))
	} else {
		view += "\n" + pendingStyle.Render("No settings applied yet.")
	}
	if a.showHelp {
		view += "\n" + helpStyle.Render("Edits update the working record immediately; the owner is notified on the next tick.")
	}
	return view
}

// RunPanel starts the tune program and returns the last applied record.
func RunPanel(cfg *appconfig.Config, source ModelSource, initial *settings.Settings) (settings.Settings, bool, error) {
	panel := NewPanel(PanelOptions{
		Defaults:  cfg.Defaults,
		Initial:   initial,
		AutoApply: cfg.AutoApply,
		Source:    source,
	})

	p := tea.NewProgram(NewApp(panel), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return settings.Settings{}, false, fmt.Errorf("error running settings panel: %w", err)
	}

	app, ok := final.(App)
	if !ok {
		log.Printf("unexpected final model type %T", final)
		return settings.Settings{}, false, nil
	}
	applied, saved := app.Applied()
	return applied, saved, nil
}
