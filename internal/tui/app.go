package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/pickr/internal/combobox"
	"github.com/pders01/pickr/internal/config"
	"github.com/pders01/pickr/internal/debuglog"
	"github.com/pders01/pickr/internal/lookup"
	"github.com/pders01/pickr/internal/storage"
)

const (
	maxWidgetWidth = 60
	minWidgetWidth = 20
)

// widget is the surface the app needs from every combobox.
type widget interface {
	Label() string
	Focus() tea.Cmd
	Blur()
	Focused() bool
	Value() string
	Disabled() bool
	SetWidth(int)
	SetStyles(combobox.Styles)
	KeyMap() combobox.KeyMap
	SetCursorMode(cursor.Mode) tea.Cmd
	SetMaxRows(int)
	Update(tea.Msg) tea.Cmd
	View() string
}

type App struct {
	config       *config.Config
	store        *storage.Store
	source       lookup.Source
	keyHandler   *KeyHandler
	keys         appKeyMap
	help         help.Model
	viewport     viewport.Model
	standard     *combobox.Standard
	multi        *combobox.MultiSelect
	autocomplete *combobox.Autocomplete
	creatable    *combobox.Creatable
	async        *combobox.Async
	widgets      []widget
	focus        int
	view         View
	options      []combobox.Option
	width        int
	height       int
	status       string
	statusKind   StatusKind
	err          error

	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
}

// NewApp wires the five comboboxes over options, with the async one asking
// source.
func NewApp(store *storage.Store, source lookup.Source, options []combobox.Option, cfg *config.Config) *App {
	ApplyColors(cfg.UI.Colors)
	styles := combobox.NewStyles(WidgetPalette())

	searchCfg := combobox.SearchConfig{
		Debounce:    cfg.Search.Debounce,
		MinChars:    cfg.Search.MinChars,
		Placeholder: cfg.Search.Placeholder,
	}

	app := &App{
		config:       cfg,
		store:        store,
		source:       source,
		keys:         defaultAppKeyMap(),
		help:         help.New(),
		viewport:     viewport.New(0, 0),
		standard:     combobox.NewStandard(LabelStandard, options, combobox.StandardOptions{}),
		multi:        combobox.NewMultiSelect(LabelMulti, options, cfg.Widgets.MaxSelections),
		autocomplete: combobox.NewAutocomplete(LabelAutocomplete, options, ""),
		creatable:    combobox.NewCreatable(LabelCreatable, options, ""),
		async:        combobox.NewAsync(LabelAsync, source.Lookup, searchCfg),
		view:         ViewWidgets,
		options:      options,
		status:       MsgReady,
	}
	app.widgets = []widget{app.standard, app.multi, app.autocomplete, app.creatable, app.async}
	for _, w := range app.widgets {
		w.SetStyles(styles)
		// Only the focused widget sees key messages, so blink ticks
		// would never reach the others.
		w.SetCursorMode(cursor.CursorStatic)
		w.SetMaxRows(cfg.Widgets.MaxRows)
	}
	app.keyHandler = NewKeyHandler(app)

	return app
}

func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	wordWrapWidth := (a.width * 9) / 10
	if wordWrapWidth > 100 {
		wordWrapWidth = 100
	}
	if wordWrapWidth < 40 {
		wordWrapWidth = 40
	}
	if a.width < 50 {
		wordWrapWidth = a.width - 4
		if wordWrapWidth < 20 {
			wordWrapWidth = 20
		}
	}

	if a.glamourRenderer == nil || abs(a.rendererWidth-wordWrapWidth) > 10 {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrapWidth),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wordWrapWidth
	}

	return a.glamourRenderer, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (a *App) Init() tea.Cmd {
	return a.widgets[a.focus].Focus()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.viewport.Width = msg.Width
		a.viewport.Height = msg.Height - 3
		w := a.widgetWidth()
		for _, wd := range a.widgets {
			wd.SetWidth(w)
		}
		if a.view == ViewHelp {
			return a, a.renderHelp()
		}
		return a, nil

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case combobox.SelectedMsg:
		a.err = nil
		if msg.Option != nil {
			a.setStatus(MsgSelected(msg.Source, msg.Option), StatusSuccess)
			debuglog.Infof("%s selected %q", msg.Source, msg.Option.Value)
		} else {
			a.setStatus(MsgSelected(msg.Source, nil), StatusWarn)
			debuglog.Infof("%s cleared", msg.Source)
		}
		return a, nil

	case combobox.MultiChangedMsg:
		a.err = nil
		a.setStatus(MsgMultiChanged(msg.Source, msg.Options), StatusSuccess)
		debuglog.Infof("%s now holds %d options", msg.Source, len(msg.Options))
		return a, nil

	case combobox.CreatedMsg:
		a.setStatus(MsgSaving, StatusInfo)
		debuglog.Infof("%s created %q", msg.Source, msg.Option.Value)
		return a, a.persistCreated(msg.Option)

	case optionsChangedMsg:
		a.applyOptions(msg.options)
		a.setStatus(MsgCreated(msg.created, len(msg.options)), StatusSuccess)
		return a, nil

	case helpRenderedMsg:
		a.viewport.SetContent(msg.content)
		return a, nil

	case errorMsg:
		a.err = msg.err
		a.setStatus(msg.err.Error(), StatusError)
		debuglog.Errorf("%v", msg.err)
		return a, nil
	}

	// Timers, lookup results and spinner ticks carry their owner's ID, so
	// every widget sees them and the others ignore them.
	var cmds []tea.Cmd
	for _, w := range a.widgets {
		cmds = append(cmds, w.Update(msg))
	}
	return a, tea.Batch(cmds...)
}

func (a *App) widgetWidth() int {
	w := a.width - 4
	if w > maxWidgetWidth {
		w = maxWidgetWidth
	}
	if w < minWidgetWidth {
		w = minWidgetWidth
	}
	return w
}

func (a *App) setStatus(text string, kind StatusKind) {
	a.status = text
	a.statusKind = kind
}

// applyOptions pushes a fresh catalog into every local widget.
func (a *App) applyOptions(options []combobox.Option) {
	a.options = options
	a.standard.SetOptions(options)
	a.multi.SetOptions(options)
	a.autocomplete.SetOptions(options)
	a.creatable.SetOptions(options)
}

func (a *App) focused() widget { return a.widgets[a.focus] }

// Close tears down the async widget so no lookup outlives the program.
// Safe to call more than once.
func (a *App) Close() {
	a.async.Close()
}

// cycleFocus moves focus by delta, skipping disabled widgets.
func (a *App) cycleFocus(delta int) tea.Cmd {
	n := len(a.widgets)
	next := a.focus
	for i := 0; i < n; i++ {
		next = (next + delta + n) % n
		if !a.widgets[next].Disabled() {
			break
		}
	}
	if next == a.focus {
		return nil
	}
	a.widgets[a.focus].Blur()
	a.focus = next
	return a.widgets[next].Focus()
}

func (a *App) View() string {
	if a.view == ViewHelp {
		return lipgloss.JoinVertical(lipgloss.Left,
			a.viewport.View(),
			SeparatorStyle.Render(strings.Repeat("─", max(a.width, 1))),
			a.getCustomStatusBar(),
		)
	}

	info := fmt.Sprintf("%d options", len(a.options))
	if a.store != nil {
		info += " • " + truncateMiddle(a.store.Path(), a.widgetWidth()-len(info))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		LogoStyle.Render(CompactLogo),
		" ",
		HelpStyle.Render(info),
	)

	sections := []string{header, ""}
	for _, w := range a.widgets {
		sections = append(sections, SectionStyle.Render(w.View()))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Padding(1, 2).Render(content),
		SeparatorStyle.Render(strings.Repeat("─", max(a.width, 1))),
		a.getCustomStatusBar(),
	)
}

func (a *App) getCustomStatusBar() string {
	bar := lipgloss.NewStyle().Width(a.width).Padding(0, 1).Foreground(MutedColor)

	if a.err != nil {
		return bar.Render(StatusErrorStyle.Render(fmt.Sprintf("✗ %v", a.err)))
	}

	text := a.status
	if a.width > 0 {
		text = truncateEnd(text, a.width-2)
	}
	var status string
	switch a.statusKind {
	case StatusSuccess:
		status = StatusSuccessStyle.Render(text)
	case StatusWarn:
		status = StatusWarnStyle.Render(text)
	case StatusError:
		status = StatusErrorStyle.Render(text)
	default:
		status = StatusInfoStyle.Render(text)
	}

	var hints string
	if a.view == ViewHelp {
		hints = a.help.ShortHelpView(a.keys.helpViewBindings())
	} else {
		hints = a.help.ShortHelpView(a.keyHandler.shortHelp())
	}
	return bar.Render(lipgloss.JoinVertical(lipgloss.Left, status, hints))
}
