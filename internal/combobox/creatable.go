package combobox

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Creatable filters a static list and offers to create an option from the
// input when neither its label nor its slug is taken.
type Creatable struct {
	base
	options []Option
}

func NewCreatable(label string, options []Option, placeholder string) *Creatable {
	m := &Creatable{base: newBase(label, placeholder)}
	m.SetOptions(options)
	return m
}

func (m *Creatable) SetOptions(options []Option) {
	m.options = append([]Option(nil), options...)
	m.clampCursor(m.rowCount())
}

func (m *Creatable) Options() []Option { return append([]Option(nil), m.options...) }

func (m *Creatable) SetDisabled(disabled bool) {
	m.disabled = disabled
	if disabled {
		m.Blur()
	}
}

func (m *Creatable) filtered() []Option { return FilterOptions(m.options, m.input.Value()) }

// canCreate reports whether the create row is offered. A label whose slug
// is already taken as a value is never offered; the existing item stays
// pickable from the filtered list.
func (m *Creatable) canCreate() bool {
	label := strings.TrimSpace(m.input.Value())
	if label == "" || ContainsLabel(m.options, label) {
		return false
	}
	value := Slugify(label)
	return value != "" && IndexOf(m.options, value) < 0
}

func (m *Creatable) rowCount() int {
	n := len(m.filtered())
	if m.canCreate() {
		n++
	}
	return n
}

// Candidate is the option the create row would produce.
func (m *Creatable) Candidate() Option {
	label := strings.TrimSpace(m.input.Value())
	return Option{Value: Slugify(label), Label: label}
}

func (m *Creatable) Init() tea.Cmd { return nil }

func (m *Creatable) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok || !m.Focused() || m.disabled {
		return nil
	}

	switch {
	case key.Matches(km, m.keys.Up):
		m.moveCursor(-1, m.rowCount())
		return nil
	case key.Matches(km, m.keys.Down):
		m.moveCursor(1, m.rowCount())
		return nil
	case key.Matches(km, m.keys.Pick):
		if !m.open {
			m.open = true
			return nil
		}
		return m.pick()
	case key.Matches(km, m.keys.Clear):
		m.setInput("")
		m.open = false
		m.cursor = 0
		return nil
	case key.Matches(km, m.keys.Close):
		m.open = false
		return nil
	}

	changed, cmd := m.updateInput(km)
	if changed {
		m.open = true
		m.cursor = 0
	}
	return cmd
}

func (m *Creatable) pick() tea.Cmd {
	items := m.filtered()
	if m.cursor < len(items) {
		opt := items[m.cursor]
		m.setInput(opt.Label)
		m.open = false
		return selected(m.label, &opt)
	}
	if !m.canCreate() {
		return nil
	}
	opt := m.Candidate()
	m.options = append(m.options, opt)
	m.setInput(opt.Label)
	m.open = false
	m.cursor = 0
	return emit(CreatedMsg{Source: m.label, Option: opt})
}

func (m *Creatable) View() string {
	frame := m.renderFrame("")
	if !m.open || !m.Focused() {
		return frame
	}
	items := m.filtered()
	rows := make([]string, 0, len(items)+1)
	for _, o := range items {
		rows = append(rows, o.Label)
	}
	if m.canCreate() {
		rows = append(rows, m.styles.Create.Render(fmt.Sprintf("+ Create %q", strings.TrimSpace(m.input.Value()))))
	}
	if len(rows) == 0 {
		return frame
	}
	return frame + "\n" + m.renderPopup(m.renderRows(rows))
}
