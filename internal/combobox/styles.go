package combobox

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colours widgets are drawn with.
type Palette struct {
	Primary    string
	Secondary  string
	Accent     string
	Background string
	Text       string
	Muted      string
	Error      string
}

func DefaultPalette() Palette {
	return Palette{
		Primary:    "#FF6B6B",
		Secondary:  "#4ECDC4",
		Accent:     "#95E1D3",
		Background: "#1A1A2E",
		Text:       "#EAEAEA",
		Muted:      "#94A3B8",
		Error:      "#F87171",
	}
}

// Styles holds every lipgloss style a widget renders with.
type Styles struct {
	Label       lipgloss.Style
	Frame       lipgloss.Style
	FrameActive lipgloss.Style
	Popup       lipgloss.Style
	Item        lipgloss.Style
	Highlighted lipgloss.Style
	Check       lipgloss.Style
	Status      lipgloss.Style
	Error       lipgloss.Style
	Create      lipgloss.Style
	Chip        lipgloss.Style
	Disabled    lipgloss.Style
	Spinner     lipgloss.Style
}

func DefaultStyles() Styles { return NewStyles(DefaultPalette()) }

func NewStyles(p Palette) Styles {
	muted := lipgloss.Color(p.Muted)
	accent := lipgloss.Color(p.Accent)

	return Styles{
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Secondary)).
			Bold(true),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		FrameActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		Popup: lipgloss.NewStyle().
			PaddingLeft(2),
		Item: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Text)),
		Highlighted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Background)).
			Background(accent).
			Bold(true),
		Check: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Secondary)),
		Status: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Error)).
			Bold(true),
		Create: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Primary)),
		Chip: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Background)).
			Background(lipgloss.Color(p.Secondary)).
			Padding(0, 1).
			MarginRight(1),
		Disabled: lipgloss.NewStyle().
			Foreground(muted).
			Faint(true),
		Spinner: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Primary)),
	}
}
