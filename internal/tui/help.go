package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const helpIntro = `# pickr

Five comboboxes over one catalog. Options created in the fourth box are
saved and show up everywhere.

`

// helpMarkdown documents every widget and the keys in effect.
func (a *App) helpMarkdown() string {
	var b strings.Builder
	b.WriteString(helpIntro)

	b.WriteString("## Widgets\n\n")
	for i, w := range a.widgets {
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, w.Label())
	}
	fmt.Fprintf(&b, "\nThe last box asks the `%s` backend after a %s pause, "+
		"once at least %d characters are typed.\n\n",
		a.config.Search.Backend, a.config.Search.Debounce, a.config.Search.MinChars)

	b.WriteString("## Keys\n\n| Key | Action |\n| --- | --- |\n")
	rows := []key.Binding{a.keys.Next, a.keys.Prev, a.keys.Help, a.keys.Quit}
	for _, group := range a.focused().KeyMap().FullHelp() {
		rows = append(rows, group...)
	}
	for _, k := range rows {
		h := k.Help()
		fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
	}
	b.WriteString("\nA `?` typed into a non-empty box is kept as text; use `f1` there.\n")
	return b.String()
}

func (a *App) renderHelp() tea.Cmd {
	md := a.helpMarkdown()
	renderer, err := a.getRenderer()
	return func() tea.Msg {
		if err != nil {
			return errorMsg{wrapErr("rendering help", err)}
		}
		out, err := renderer.Render(md)
		if err != nil {
			return errorMsg{wrapErr("rendering help", err)}
		}
		return helpRenderedMsg{content: out}
	}
}
