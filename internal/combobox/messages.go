package combobox

import tea "github.com/charmbracelet/bubbletea"

// SelectedMsg reports a single-selection change. Option is nil when the
// selection was cleared.
type SelectedMsg struct {
	Source string
	Option *Option
}

// MultiChangedMsg reports the full selection of a MultiSelect after a change.
type MultiChangedMsg struct {
	Source  string
	Options []Option
}

// CreatedMsg reports an option synthesised by a Creatable.
type CreatedMsg struct {
	Source string
	Option Option
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func selected(source string, opt *Option) tea.Cmd {
	if opt != nil {
		o := *opt
		opt = &o
	}
	return emit(SelectedMsg{Source: source, Option: opt})
}
