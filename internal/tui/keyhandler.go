package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type appKeyMap struct {
	Next key.Binding
	Prev key.Binding
	Help key.Binding
	Back key.Binding
	Quit key.Binding
}

func defaultAppKeyMap() appKeyMap {
	return appKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "f1"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "q", "?"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func (k appKeyMap) helpViewBindings() []key.Binding {
	return []key.Binding{k.Back, k.Quit}
}

type KeyHandler struct {
	app *App
}

func NewKeyHandler(app *App) *KeyHandler {
	return &KeyHandler{app: app}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app

	if key.Matches(msg, a.keys.Quit) {
		a.Close()
		return a, tea.Quit
	}
	if a.view == ViewHelp {
		return kh.handleHelpKeys(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Next):
		return a, a.cycleFocus(1)
	case key.Matches(msg, a.keys.Prev):
		return a, a.cycleFocus(-1)
	case kh.wantsHelp(msg):
		a.view = ViewHelp
		return a, a.renderHelp()
	}

	// Any edit clears a stale error from the status bar.
	a.err = nil
	return a, a.focused().Update(msg)
}

// wantsHelp reports whether msg opens the help screen. A plain "?" only
// does so while the focused input is empty; otherwise it is typed.
func (kh *KeyHandler) wantsHelp(msg tea.KeyMsg) bool {
	if !key.Matches(msg, kh.app.keys.Help) {
		return false
	}
	if msg.String() == "f1" {
		return true
	}
	return kh.app.focused().Value() == ""
}

func (kh *KeyHandler) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	if key.Matches(msg, a.keys.Back) {
		a.view = ViewWidgets
		return a, nil
	}
	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

// shortHelp lists the app bindings followed by the focused widget's.
func (kh *KeyHandler) shortHelp() []key.Binding {
	a := kh.app
	bindings := []key.Binding{a.keys.Next, a.keys.Help, a.keys.Quit}
	return append(bindings, a.focused().KeyMap().ShortHelp()...)
}
