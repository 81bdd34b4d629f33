// internal/tui/panel.go
// Package tui contains the interactive components: the settings panel, the
// owning application model, and the dataset import confirmation dialog.
package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mjarrell/otune/internal/settings"
	"github.com/mjarrell/otune/internal/util"
)

// ModelSource is the slice of the Ollama client the panel depends on.
type ModelSource interface {
	Ping(ctx context.Context) error
	ListModels(ctx context.Context) ([]string, error)
}

// SettingsAppliedMsg is the owner push: the panel's full working record,
// delivered to the embedding model on the update cycle after the edit that
// produced it. It is never a partial diff.
type SettingsAppliedMsg struct {
	Settings settings.Settings
}

// HelpRequestedMsg is emitted when the user asks for the key reference.
type HelpRequestedMsg struct{}

// ExternalSettingsMsg replaces the panel's working record wholesale. Owners
// send it when their own copy of the settings changes.
type ExternalSettingsMsg struct {
	Settings settings.Settings
}

// modelsReadyMsg is sent when the model list has been fetched.
type modelsReadyMsg struct {
	names []string
}

// modelsLoadErr is sent when the connectivity probe or fetch failed.
type modelsLoadErr struct{ error }

// panelField identifies the focusable fields, top to bottom.
type panelField int

const (
	fieldModel panelField = iota
	fieldTemperature
	fieldTopP
	fieldUseFixedSeed
	fieldSeed
	fieldNumCtx
	fieldCount
)

// Indexes into the panel's text inputs.
const (
	inputTemperature = iota
	inputTopP
	inputSeed
	inputNumCtx
	inputCount
)

var (
	panelTitleStyle = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	modeBadgeStyle  = lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("0")).Padding(0, 1).MarginLeft(1)
	labelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(16)
	focusedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

// PanelOptions configures a settings panel for one mount.
type PanelOptions struct {
	// Defaults seeds the working record when Initial is absent.
	Defaults settings.Settings
	// Initial is the externally supplied settings value, if any.
	Initial *settings.Settings
	// AutoApply streams every edit to the owner; when false an explicit
	// apply key is required.
	AutoApply bool
	// Source provides the connectivity probe and the model list.
	Source ModelSource
}

// Panel is the settings synchronizer. It owns the working record while
// mounted; the owner receives copies via SettingsAppliedMsg and supplies
// new external values via ExternalSettingsMsg, but never mutates the
// working record directly.
type Panel struct {
	working     settings.Settings
	external    settings.Settings
	hasExternal bool
	autoApply   bool
	source      ModelSource

	modelList list.Model
	inputs    [inputCount]textinput.Model
	focus     panelField
	spinner   spinner.Model

	loading         bool
	loadErr         error
	bootstrapPushed bool
	width           int
}

// NewPanel initializes the panel. The working record starts as the external
// initial value when supplied, else the defaults; no owner push happens here.
func NewPanel(opts PanelOptions) Panel {
	working := opts.Defaults
	p := Panel{
		working:   working,
		autoApply: opts.AutoApply,
		source:    opts.Source,
		loading:   true,
		focus:     fieldModel,
		width:     72,
	}
	if opts.Initial != nil {
		p.working = *opts.Initial
		p.external = *opts.Initial
		p.hasExternal = true
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	p.spinner = s

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	ml := list.New(nil, delegate, 40, 8)
	ml.Title = "Model"
	ml.SetShowTitle(false)
	ml.SetShowStatusBar(false)
	ml.SetShowHelp(false)
	ml.SetFilteringEnabled(false)
	p.modelList = ml

	for i := range p.inputs {
		ti := textinput.New()
		ti.CharLimit = 16
		ti.Width = 12
		ti.Prompt = ""
		p.inputs[i] = ti
	}
	p.syncInputs()
	return p
}

// Settings returns the current working record.
func (p Panel) Settings() settings.Settings {
	return p.working
}

// Err returns the model-list load error, if any.
func (p Panel) Err() error {
	return p.loadErr
}

// Init starts the spinner and the one-shot model list fetch. It runs once
// per mount, so the fetch cannot loop on re-renders.
func (p Panel) Init() tea.Cmd {
	return tea.Batch(p.spinner.Tick, loadModelsCmd(p.source))
}

// loadModelsCmd probes connectivity and then fetches the model list.
func loadModelsCmd(source ModelSource) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := source.Ping(ctx); err != nil {
			return modelsLoadErr{error: err}
		}
		names, err := source.ListModels(ctx)
		if err != nil {
			return modelsLoadErr{error: err}
		}
		return modelsReadyMsg{names: names}
	}
}

// pushCmd defers the owner push to the next update cycle. Emitting the
// message via a command keeps the push out of the update that changed the
// working record, so the owner is never mutated mid-render.
func (p Panel) pushCmd() tea.Cmd {
	pushed := p.working
	return func() tea.Msg {
		return SettingsAppliedMsg{Settings: pushed}
	}
}

// pushIfAuto returns the deferred push when auto-apply mode is on.
func (p Panel) pushIfAuto() tea.Cmd {
	if p.autoApply {
		return p.pushCmd()
	}
	return nil
}

// Update is the panel's message handler.
func (p Panel) Update(msg tea.Msg) (Panel, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.modelList.SetSize(util.Min(msg.Width-4, 48), 8)
		return p, nil

	case ExternalSettingsMsg:
		// Overwrite wholesale, but only on genuine change of the
		// external value.
		if !p.hasExternal || msg.Settings != p.external {
			p.external = msg.Settings
			p.hasExternal = true
			p.working = msg.Settings
			p.syncInputs()
		}
		return p, nil

	case modelsReadyMsg:
		p.loading = false
		p.loadErr = nil
		items := make([]list.Item, len(msg.names))
		for i, name := range msg.names {
			items[i] = modelItem{title: name}
		}
		p.modelList.SetItems(items)
		// Bootstrap selection: adopt the first entry only if the user
		// has not already picked a model while the fetch was pending.
		if p.working.Model == "" && len(msg.names) > 0 {
			p.working = p.working.WithModel(msg.names[0])
			p.selectWorkingModel()
			if p.autoApply && p.external.Model == "" && !p.bootstrapPushed {
				p.bootstrapPushed = true
				return p, p.pushCmd()
			}
			return p, nil
		}
		p.selectWorkingModel()
		return p, nil

	case modelsLoadErr:
		p.loading = false
		p.loadErr = msg.error
		p.modelList.SetItems([]list.Item{modelItem{
			title:    "Ollama unavailable",
			desc:     msg.error.Error(),
			disabled: true,
		}})
		return p, nil

	case spinner.TickMsg:
		if p.loading {
			p.spinner, cmd = p.spinner.Update(msg)
			return p, cmd
		}
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			p.moveFocus(1)
			return p, nil
		case "shift+tab", "up":
			p.moveFocus(-1)
			return p, nil
		case "ctrl+g":
			return p, func() tea.Msg { return HelpRequestedMsg{} }
		case "ctrl+s":
			// Manual commit; absent in auto-apply mode.
			if !p.autoApply {
				return p, p.pushCmd()
			}
			return p, nil
		}
	}

	switch p.focus {
	case fieldModel:
		return p.updateModelField(msg)
	case fieldUseFixedSeed:
		return p.updateSeedToggle(msg)
	case fieldTemperature, fieldTopP, fieldSeed, fieldNumCtx:
		return p.updateTextField(msg)
	}

	return p, tea.Batch(cmds...)
}

// updateModelField routes messages to the model selector.
func (p Panel) updateModelField(msg tea.Msg) (Panel, tea.Cmd) {
	var cmd tea.Cmd
	p.modelList, cmd = p.modelList.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if item, ok := p.modelList.SelectedItem().(modelItem); ok && !item.disabled {
			if item.title != p.working.Model {
				p.working = p.working.WithModel(item.title)
				return p, tea.Batch(cmd, p.pushIfAuto())
			}
		}
	}
	return p, cmd
}

// updateSeedToggle flips the fixed-seed flag. The stored seed is preserved
// either way.
func (p Panel) updateSeedToggle(msg tea.Msg) (Panel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case " ", "enter":
			p.working = p.working.WithUseFixedSeed(!p.working.UseFixedSeed)
			return p, p.pushIfAuto()
		}
	}
	return p, nil
}

// updateTextField forwards input to the focused text field and applies the
// parsed value to the working record. Each value-changing edit replaces the
// record wholesale and schedules at most one deferred push.
func (p Panel) updateTextField(msg tea.Msg) (Panel, tea.Cmd) {
	idx := p.inputIndex()
	if idx < 0 {
		return p, nil
	}

	prev := p.inputs[idx].Value()
	var cmd tea.Cmd
	p.inputs[idx], cmd = p.inputs[idx].Update(msg)
	if p.inputs[idx].Value() == prev {
		return p, cmd
	}

	next, ok := p.applyInput(idx, p.inputs[idx].Value())
	if !ok || next == p.working {
		return p, cmd
	}
	p.working = next
	return p, tea.Batch(cmd, p.pushIfAuto())
}

// applyInput coerces text-input content into a new working record with
// exactly one field replaced. Invalid input leaves the record untouched.
func (p Panel) applyInput(idx int, text string) (settings.Settings, bool) {
	switch idx {
	case inputTemperature:
		v, err := settings.ParseTemperature(text)
		if err != nil {
			return p.working, false
		}
		return p.working.WithTemperature(v), true
	case inputTopP:
		v, err := settings.ParseTopP(text)
		if err != nil {
			return p.working, false
		}
		return p.working.WithTopP(v), true
	case inputSeed:
		v, err := settings.ParseInt(text)
		if err != nil {
			return p.working, false
		}
		return p.working.WithSeed(v), true
	case inputNumCtx:
		v, err := settings.ParseInt(text)
		if err != nil || v <= 0 {
			return p.working, false
		}
		return p.working.WithNumCtx(v), true
	}
	return p.working, false
}

// inputIndex maps the focused field to its text input, or -1.
func (p Panel) inputIndex() int {
	switch p.focus {
	case fieldTemperature:
		return inputTemperature
	case fieldTopP:
		return inputTopP
	case fieldSeed:
		return inputSeed
	case fieldNumCtx:
		return inputNumCtx
	}
	return -1
}

// moveFocus advances focus, skipping the seed field while it is hidden.
func (p *Panel) moveFocus(delta int) {
	for {
		p.focus = panelField((int(p.focus) + delta + int(fieldCount)) % int(fieldCount))
		if p.focus == fieldSeed && !p.working.UseFixedSeed {
			continue
		}
		break
	}
	for i := range p.inputs {
		p.inputs[i].Blur()
	}
	if idx := p.inputIndex(); idx >= 0 {
		p.inputs[idx].Focus()
	}
}

// syncInputs rewrites the text inputs from the working record. Called only
// on wholesale replacements so in-progress typing is not clobbered.
func (p *Panel) syncInputs() {
	p.inputs[inputTemperature].SetValue(strconv.FormatFloat(p.working.Temperature, 'g', -1, 64))
	p.inputs[inputTopP].SetValue(strconv.FormatFloat(p.working.TopP, 'g', -1, 64))
	p.inputs[inputSeed].SetValue(strconv.Itoa(p.working.Seed))
	p.inputs[inputNumCtx].SetValue(strconv.Itoa(p.working.NumCtx))
}

// selectWorkingModel moves the list cursor to the working record's model.
func (p *Panel) selectWorkingModel() {
	for i, item := range p.modelList.Items() {
		if mi, ok := item.(modelItem); ok && mi.title == p.working.Model {
			p.modelList.Select(i)
			return
		}
	}
}

// modelItem is a selectable entry in the model list. A disabled item is
// informational only and can never be chosen.
type modelItem struct {
	title    string
	desc     string
	disabled bool
}

func (i modelItem) Title() string {
	if i.disabled {
		return dimStyle.Render(i.title)
	}
	return i.title
}

func (i modelItem) Description() string { return i.desc }

func (i modelItem) FilterValue() string {
	if i.disabled {
		return ""
	}
	return i.title
}

// View renders the panel.
func (p Panel) View() string {
	var mode string
	if p.autoApply {
		mode = "auto-apply"
	} else {
		mode = "manual"
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		panelTitleStyle.Render("Model Settings"),
		modeBadgeStyle.Render(mode),
	)

	rows := []string{header, ""}
	rows = append(rows, p.fieldLabel(fieldModel, "Model"))
	rows = append(rows, p.modelFieldView())
	rows = append(rows, "")
	rows = append(rows, p.inputRow(fieldTemperature, "Temperature", inputTemperature))
	rows = append(rows, p.inputRow(fieldTopP, "Top P", inputTopP))
	rows = append(rows, p.toggleRow())
	if p.working.UseFixedSeed {
		rows = append(rows, p.inputRow(fieldSeed, "Seed", inputSeed))
	}
	rows = append(rows, p.inputRow(fieldNumCtx, "Context size", inputNumCtx))

	keys := "tab: next field"
	if !p.autoApply {
		keys += " • ctrl+s: apply"
	}
	keys += " • ctrl+g: help • esc: close"
	rows = append(rows, helpStyle.Render(keys))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// modelFieldView renders the selector, the loading affordance, or the
// disabled error entry.
func (p Panel) modelFieldView() string {
	if p.loading {
		return fmt.Sprintf("  %s Contacting Ollama...", p.spinner.View())
	}
	if p.loadErr != nil {
		return errorStyle.Render(util.WrapToWidth("  "+p.loadErr.Error(), util.Min(p.width-4, 72)))
	}
	return p.modelList.View()
}

func (p Panel) fieldLabel(field panelField, label string) string {
	if p.focus == field {
		return focusedStyle.Render("> " + label)
	}
	return "  " + label
}

func (p Panel) inputRow(field panelField, label string, idx int) string {
	marker := "  "
	if p.focus == field {
		marker = focusedStyle.Render("> ")
	}
	return marker + labelStyle.Render(label) + p.inputs[idx].View()
}

func (p Panel) toggleRow() string {
	marker := "  "
	if p.focus == fieldUseFixedSeed {
		marker = focusedStyle.Render("> ")
	}
	box := "[ ]"
	if p.working.UseFixedSeed {
		box = "[x]"
	}
	return marker + labelStyle.Render("Fixed seed") + box
}
