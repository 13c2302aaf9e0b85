package combobox

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const multiPlaceholder = "Select options…"

// MultiSelect picks any number of options, shown as chips ahead of the input.
type MultiSelect struct {
	base
	options       []Option
	selected      []Option
	maxSelections int
}

// NewMultiSelect builds a MultiSelect. maxSelections <= 0 means unlimited.
func NewMultiSelect(label string, options []Option, maxSelections int) *MultiSelect {
	m := &MultiSelect{
		base:          newBase(label, multiPlaceholder),
		maxSelections: maxSelections,
	}
	m.SetOptions(options)
	return m
}

func (m *MultiSelect) SetOptions(options []Option) {
	m.options = append([]Option(nil), options...)
	m.clampCursor(len(m.visible()))
}

func (m *MultiSelect) SetDisabled(disabled bool) {
	m.disabled = disabled
	if disabled {
		m.Blur()
	}
}

// Selected returns the chosen options in pick order.
func (m *MultiSelect) Selected() []Option { return append([]Option(nil), m.selected...) }

func (m *MultiSelect) visible() []Option { return FilterOptions(m.options, m.input.Value()) }

func (m *MultiSelect) isSelected(o Option) bool { return IndexOf(m.selected, o.Value) >= 0 }

// Toggle adds o, or removes it when already chosen. Adding past the limit
// is refused; the return value reports whether the selection changed.
func (m *MultiSelect) Toggle(o Option) bool {
	if i := IndexOf(m.selected, o.Value); i >= 0 {
		m.selected = append(m.selected[:i:i], m.selected[i+1:]...)
		return true
	}
	if m.maxSelections > 0 && len(m.selected) >= m.maxSelections {
		return false
	}
	m.selected = append(m.selected, o)
	return true
}

func (m *MultiSelect) changed() tea.Cmd {
	if len(m.selected) > 0 {
		m.input.Placeholder = ""
	} else {
		m.input.Placeholder = multiPlaceholder
	}
	return emit(MultiChangedMsg{Source: m.label, Options: m.Selected()})
}

func (m *MultiSelect) Init() tea.Cmd { return nil }

func (m *MultiSelect) Update(msg tea.Msg) tea.Cmd {
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
		if len(items) == 0 || !m.Toggle(items[m.cursor]) {
			return nil
		}
		return m.changed()
	case key.Matches(km, m.keys.Clear):
		if len(m.selected) == 0 {
			return nil
		}
		m.selected = nil
		return m.changed()
	case key.Matches(km, m.keys.Close):
		m.open = false
		return nil
	case key.Matches(km, m.keys.Remove) && m.input.Value() == "":
		if len(m.selected) == 0 {
			return nil
		}
		m.selected = m.selected[:len(m.selected)-1]
		return m.changed()
	}

	changed, cmd := m.updateInput(km)
	if changed {
		m.open = true
		m.cursor = 0
	}
	return cmd
}

func (m *MultiSelect) View() string {
	chips := make([]string, len(m.selected))
	for i, o := range m.selected {
		chips[i] = m.styles.Chip.Render(o.Label + " ×")
	}
	prefix := strings.Join(chips, "")
	frame := m.renderFrame(prefix)
	if !m.open || !m.Focused() {
		return frame
	}

	items := m.visible()
	if len(items) == 0 {
		return frame + "\n" + m.renderPopup([]string{m.styles.Status.Render(MsgNoOptions)})
	}
	rows := make([]string, len(items))
	for i, o := range items {
		rows[i] = m.optionRow(o, m.isSelected(o))
	}
	return frame + "\n" + m.renderPopup(m.renderRows(rows))
}
