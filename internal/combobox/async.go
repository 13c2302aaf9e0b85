package combobox

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultAsyncPlaceholder = "Type to search…"

// Async is a combobox whose options come from a LookupFunc, mediated by a
// Search controller.
type Async struct {
	base
	search   *Search
	spinner  spinner.Model
	spinning bool
}

func NewAsync(label string, lookup LookupFunc, cfg SearchConfig) *Async {
	placeholder := cfg.Placeholder
	if placeholder == "" {
		placeholder = defaultAsyncPlaceholder
	}
	b := newBase(label, placeholder)
	b.disabled = cfg.Disabled

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = b.styles.Spinner

	return &Async{
		base:    b,
		search:  NewSearch(lookup, cfg),
		spinner: sp,
	}
}

// Search exposes the underlying controller.
func (m *Async) Search() *Search { return m.search }

func (m *Async) SetDisabled(disabled bool) {
	m.disabled = disabled
	m.search.SetDisabled(disabled)
	if disabled {
		m.Blur()
	}
}

// Close stops the widget's controller. A pending debounce never fires and
// an in-flight lookup is cancelled and its result dropped.
func (m *Async) Close() {
	m.search.Close()
	m.open = false
}

func (m *Async) SetStyles(s Styles) {
	m.base.SetStyles(s)
	m.spinner.Style = s.Spinner
}

func (m *Async) Init() tea.Cmd { return nil }

func (m *Async) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if msg.ID != m.spinner.ID() {
			return nil
		}
		if !m.search.Searching() {
			m.spinning = false
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case debounceMsg, lookupDoneMsg:
		cmd := m.search.Update(msg)
		m.clampCursor(len(m.search.Options()))
		return tea.Batch(cmd, m.startSpinner())

	case tea.KeyMsg:
		if !m.Focused() || m.disabled {
			return nil
		}
		return m.handleKey(msg)
	}
	return nil
}

func (m *Async) handleKey(msg tea.KeyMsg) tea.Cmd {
	options := m.search.Options()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, len(options))
		return nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, len(options))
		return nil

	case key.Matches(msg, m.keys.Pick):
		if !m.open || len(options) == 0 {
			return nil
		}
		return m.pick(options[m.cursor])

	case key.Matches(msg, m.keys.Clear):
		m.search.Select(nil)
		m.setInput("")
		m.cursor = 0
		return selected(m.label, nil)

	case key.Matches(msg, m.keys.Close):
		m.open = false
		m.search.CloseDropdown()
		m.cursor = 0
		return nil
	}

	changed, cmd := m.updateInput(msg)
	if !changed {
		return cmd
	}
	m.open = true
	m.cursor = 0
	return tea.Batch(cmd, m.search.SetText(m.input.Value(), ReasonTyped))
}

func (m *Async) pick(opt Option) tea.Cmd {
	m.search.Select(&opt)
	m.setInput(opt.Label)
	// The host writes the label back into the input; that must not search.
	m.search.SetText(m.input.Value(), ReasonItemPicked)
	m.open = false
	m.search.CloseDropdown()
	m.cursor = 0
	return selected(m.label, &opt)
}

func (m *Async) startSpinner() tea.Cmd {
	if m.spinning || !m.search.Searching() {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *Async) View() string {
	frame := m.renderFrame("")
	if !m.open || !m.Focused() {
		return frame
	}

	snap := m.search.Snapshot()
	cfg := m.search.Config()
	var lines []string

	switch snap.Status.Kind {
	case StatusSearching:
		lines = append(lines, m.spinner.View()+" "+m.styles.Status.Render(MsgSearching))
	case StatusError:
		lines = append(lines, m.styles.Error.Render(snap.Status.Text(m.search.Query(), cfg.MinChars)))
	default:
		if text := snap.Status.Text(m.search.Query(), cfg.MinChars); text != "" {
			lines = append(lines, m.styles.Status.Render(text))
		}
		if snap.Status.Kind == StatusEmpty {
			lines = append(lines, m.styles.Status.Render(MsgTryAnother))
		}
	}

	rows := make([]string, len(snap.Options))
	for i, o := range snap.Options {
		rows[i] = m.optionRow(o, snap.Selection != nil && snap.Selection.Same(o))
	}
	lines = append(lines, m.renderRows(rows)...)

	return frame + "\n" + m.renderPopup(lines)
}
