// internal/tui/app_test.go
package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mjarrell/otune/internal/settings"
)

func newTestApp(autoApply bool) App {
	return NewApp(NewPanel(PanelOptions{
		Defaults:  settings.Default(),
		AutoApply: autoApply,
		Source:    &testSource{names: []string{"llama3"}},
	}))
}

func TestAppRecordsPushedSettings(t *testing.T) {
	app := newTestApp(true)
	if _, ok := app.Applied(); ok {
		t.Fatal("fresh app should have no applied settings")
	}

	pushed := settings.Default().WithModel("llama3").WithTemperature(1.2)
	model, _ := app.Update(SettingsAppliedMsg{Settings: pushed})
	app = model.(App)

	got, ok := app.Applied()
	if !ok {
		t.Fatal("push not recorded")
	}
	if got != pushed {
		t.Fatalf("applied record mismatch: %+v", got)
	}
	if !strings.Contains(app.View(), "Applied: llama3") {
		t.Fatal("status line should show the applied model")
	}
}

func TestAppViewBeforeAnyPush(t *testing.T) {
	app := newTestApp(false)
	if !strings.Contains(app.View(), "No settings applied yet.") {
		t.Fatal("expected the pending status line")
	}
}

func TestAppQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{{Type: tea.KeyCtrlC}, {Type: tea.KeyEscape}} {
		app := newTestApp(false)
		model, cmd := app.Update(key)
		if cmd == nil {
			t.Fatalf("%s should quit", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s should produce a quit command", key)
		}
		if v := model.(App).View(); v != "" {
			t.Fatalf("quitting app should render nothing, got %q", v)
		}
	}
}

func TestAppHelpToggle(t *testing.T) {
	app := newTestApp(false)
	model, _ := app.Update(HelpRequestedMsg{})
	app = model.(App)
	if !strings.Contains(app.View(), "working record") {
		t.Fatal("help text missing after toggle")
	}
	model, _ = app.Update(HelpRequestedMsg{})
	app = model.(App)
	if strings.Contains(app.View(), "working record") {
		t.Fatal("help text should disappear on second toggle")
	}
}

func TestAppDelegatesToPanel(t *testing.T) {
	app := newTestApp(true)
	model, _ := app.Update(modelsReadyMsg{names: []string{"llama3"}})
	app = model.(App)
	if app.panel.Settings().Model != "llama3" {
		t.Fatalf("panel did not receive delegated message: %+v", app.panel.Settings())
	}
}
