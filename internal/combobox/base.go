package combobox

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const defaultMaxRows = 6

// base is the input, cursor and dropdown plumbing shared by every widget.
type base struct {
	label    string
	input    textinput.Model
	keys     KeyMap
	styles   Styles
	cursor   int
	open     bool
	disabled bool
	maxRows  int
	width    int
}

func newBase(label, placeholder string) base {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	return base{
		label:   label,
		input:   ti,
		keys:    DefaultKeyMap(),
		styles:  DefaultStyles(),
		maxRows: defaultMaxRows,
		width:   40,
	}
}

func (b *base) Label() string { return b.label }

func (b *base) Focus() tea.Cmd {
	if b.disabled {
		return nil
	}
	return b.input.Focus()
}

func (b *base) Blur() {
	b.input.Blur()
	b.open = false
}

func (b *base) Focused() bool { return b.input.Focused() }

func (b *base) Open() bool { return b.open }

func (b *base) Value() string { return b.input.Value() }

func (b *base) Disabled() bool { return b.disabled }

func (b *base) SetStyles(s Styles) { b.styles = s }

func (b *base) KeyMap() KeyMap { return b.keys }

// SetCursorMode sets how the input cursor is drawn.
func (b *base) SetCursorMode(mode cursor.Mode) tea.Cmd { return b.input.Cursor.SetMode(mode) }

// SetMaxRows caps how many dropdown rows are visible at once; n <= 0
// keeps the current value.
func (b *base) SetMaxRows(n int) {
	if n > 0 {
		b.maxRows = n
	}
}

// SetWidth sets the outer width; the input gets what the frame leaves over.
func (b *base) SetWidth(w int) {
	b.width = w
	inner := w - 4
	if inner < 10 {
		inner = 10
	}
	b.input.Width = inner
}

func (b *base) setInput(v string) {
	b.input.SetValue(v)
	b.input.CursorEnd()
}

// updateInput forwards msg to the text input and reports whether the
// value changed.
func (b *base) updateInput(msg tea.Msg) (bool, tea.Cmd) {
	prev := b.input.Value()
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return b.input.Value() != prev, cmd
}

func (b *base) moveCursor(delta, n int) {
	b.open = true
	if n == 0 {
		b.cursor = 0
		return
	}
	b.cursor = (b.cursor + delta + n) % n
}

func (b *base) clampCursor(n int) {
	if b.cursor >= n {
		b.cursor = n - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
}

// renderFrame draws the label and the bordered input.
func (b *base) renderFrame(prefix string) string {
	frame := b.styles.Frame
	if b.Focused() {
		frame = b.styles.FrameActive
	}
	input := b.input.View()
	if b.disabled {
		input = b.styles.Disabled.Render(b.input.Value())
	}
	rows := []string{}
	if b.label != "" {
		rows = append(rows, b.styles.Label.Render(truncateEnd(b.label, b.width)))
	}
	rows = append(rows, frame.Width(b.width).Render(prefix+input))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderRows draws a window of rows around the cursor.
func (b *base) renderRows(rows []string) []string {
	start := 0
	if b.cursor >= b.maxRows {
		start = b.cursor - b.maxRows + 1
	}
	end := start + b.maxRows
	if end > len(rows) {
		end = len(rows)
	}
	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		style := b.styles.Item
		if i == b.cursor {
			style = b.styles.Highlighted
		}
		out = append(out, style.Render(truncateEnd(rows[i], b.width-2)))
	}
	return out
}

// optionRow renders an option with a check mark when chosen.
func (b *base) optionRow(o Option, chosen bool) string {
	if chosen {
		return "✓ " + o.Label
	}
	return "  " + o.Label
}

func (b *base) renderPopup(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return b.styles.Popup.Render(strings.Join(lines, "\n"))
}

// truncateEnd shortens s to at most limit cells, appending an ellipsis
// if truncation occurs.
func truncateEnd(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	return ansi.Truncate(s, limit, "…")
}
