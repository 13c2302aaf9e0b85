package combobox

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// localSelect picks one option out of a static list filtered by the input.
type localSelect struct {
	base
	options   []Option
	selection *Option
	readOnly  bool
	indicator bool
	emptyText string
}

func (m *localSelect) SetOptions(options []Option) {
	m.options = append([]Option(nil), options...)
	m.clampCursor(len(m.visible()))
}

func (m *localSelect) Options() []Option { return append([]Option(nil), m.options...) }

func (m *localSelect) SetDisabled(disabled bool) {
	m.disabled = disabled
	if disabled {
		m.Blur()
	}
}

// Selection returns a copy of the selected option, or nil.
func (m *localSelect) Selection() *Option {
	if m.selection == nil {
		return nil
	}
	sel := *m.selection
	return &sel
}

// visible lists the options matching the input. Input that merely echoes
// the current selection shows the full list.
func (m *localSelect) visible() []Option {
	query := m.input.Value()
	if m.readOnly || (m.selection != nil && query == m.selection.Label) {
		return m.options
	}
	return FilterOptions(m.options, query)
}

func (m *localSelect) Init() tea.Cmd { return nil }

func (m *localSelect) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok || !m.Focused() || m.disabled {
		return nil
	}
	items := m.visible()

	switch {
	case key.Matches(km, m.keys.Up):
		m.moveCursor(-1, len(items))
		return nil
	case key.Matches(km, m.keys.Down):
		m.moveCursor(1, len(items))
		return nil
	case key.Matches(km, m.keys.Pick):
		if !m.open {
			m.open = true
			return nil
		}
		if len(items) == 0 {
			return nil
		}
		opt := items[m.cursor]
		m.selection = &opt
		m.setInput(opt.Label)
		m.open = false
		return selected(m.label, &opt)
	case key.Matches(km, m.keys.Clear):
		m.selection = nil
		m.setInput("")
		m.cursor = 0
		return selected(m.label, nil)
	case key.Matches(km, m.keys.Close):
		m.open = false
		return nil
	}

	if m.readOnly {
		return nil
	}
	changed, cmd := m.updateInput(km)
	if changed {
		m.open = true
		m.cursor = 0
	}
	return cmd
}

func (m *localSelect) View() string {
	frame := m.renderFrame("")
	if !m.open || !m.Focused() {
		return frame
	}
	items := m.visible()
	if len(items) == 0 {
		return frame + "\n" + m.renderPopup([]string{m.styles.Status.Render(m.emptyText)})
	}
	rows := make([]string, len(items))
	for i, o := range items {
		if m.indicator {
			rows[i] = m.optionRow(o, m.selection != nil && m.selection.Same(o))
		} else {
			rows[i] = o.Label
		}
	}
	return frame + "\n" + m.renderPopup(m.renderRows(rows))
}

// Standard is a select-one combobox over a fixed option list.
type Standard struct {
	localSelect
}

// StandardOptions configures a Standard.
type StandardOptions struct {
	Placeholder string
	ReadOnly    bool
	Disabled    bool
}

func NewStandard(label string, options []Option, opts StandardOptions) *Standard {
	placeholder := opts.Placeholder
	if placeholder == "" {
		placeholder = "Select…"
	}
	m := &Standard{localSelect{
		base:      newBase(label, placeholder),
		readOnly:  opts.ReadOnly,
		indicator: true,
		emptyText: MsgNoOptions,
	}}
	m.disabled = opts.Disabled
	m.SetOptions(options)
	return m
}

// Autocomplete suggests options from a fixed list as the user types.
type Autocomplete struct {
	localSelect
}

func NewAutocomplete(label string, options []Option, placeholder string) *Autocomplete {
	if placeholder == "" {
		placeholder = "Search…"
	}
	m := &Autocomplete{localSelect{
		base:      newBase(label, placeholder),
		emptyText: MsgNoResults,
	}}
	m.SetOptions(options)
	return m
}
