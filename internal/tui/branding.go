package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/pickr/internal/combobox"
	"github.com/pders01/pickr/internal/config"
)

const AppName = "pickr"

// LogoLines is the block-letter logo.
var LogoLines = []string{
	"█▀█ █ █▀▀ █▄▀ █▀█",
	"█▀▀ █ █▄▄ █ █ █▀▄",
}

const CompactLogo = `pickr ›`

var BannerColors = []lipgloss.Color{
	lipgloss.Color("#FF6B6B"),
	lipgloss.Color("#FFA86B"),
	lipgloss.Color("#95E1D3"),
	lipgloss.Color("#4ECDC4"),
}

var (
	PrimaryColor    = lipgloss.Color("#FF6B6B")
	SecondaryColor  = lipgloss.Color("#4ECDC4")
	AccentColor     = lipgloss.Color("#95E1D3")
	BackgroundColor = lipgloss.Color("#1A1A2E")
	TextColor       = lipgloss.Color("#EAEAEA")
	MutedColor      = lipgloss.Color("#94A3B8")
	ErrorColor      = lipgloss.Color("#F87171")
	SuccessColor    = lipgloss.Color("#4ADE80")
	WarnColor       = lipgloss.Color("#FFE66D")
)

var (
	LogoStyle          lipgloss.Style
	HeaderStyle        lipgloss.Style
	SectionStyle       lipgloss.Style
	HelpStyle          lipgloss.Style
	StatusBarStyle     lipgloss.Style
	SeparatorStyle     lipgloss.Style
	StatusInfoStyle    lipgloss.Style
	StatusSuccessStyle lipgloss.Style
	StatusWarnStyle    lipgloss.Style
	StatusErrorStyle   lipgloss.Style
)

func init() { buildStyles() }

func buildStyles() {
	LogoStyle = lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true)
	HeaderStyle = lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true)
	SectionStyle = lipgloss.NewStyle().MarginBottom(1)
	HelpStyle = lipgloss.NewStyle().Foreground(MutedColor).Italic(true)
	StatusBarStyle = lipgloss.NewStyle().Foreground(MutedColor).Padding(0, 1)
	SeparatorStyle = lipgloss.NewStyle().Foreground(MutedColor)
	StatusInfoStyle = lipgloss.NewStyle().Foreground(MutedColor)
	StatusSuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	StatusWarnStyle = lipgloss.NewStyle().Foreground(WarnColor)
	StatusErrorStyle = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
}

// ApplyColors switches the app theme to the configured colours. Empty
// entries keep the current colour.
func ApplyColors(c config.UIColors) {
	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&PrimaryColor, c.Primary)
	set(&SecondaryColor, c.Secondary)
	set(&AccentColor, c.Accent)
	set(&BackgroundColor, c.Background)
	set(&TextColor, c.Text)
	set(&MutedColor, c.Muted)
	set(&ErrorColor, c.Error)
	buildStyles()
}

// WidgetPalette is the widget colour set matching the current theme.
func WidgetPalette() combobox.Palette {
	return combobox.Palette{
		Primary:    string(PrimaryColor),
		Secondary:  string(SecondaryColor),
		Accent:     string(AccentColor),
		Background: string(BackgroundColor),
		Text:       string(TextColor),
		Muted:      string(MutedColor),
		Error:      string(ErrorColor),
	}
}

func GetCompactBanner(message string) string {
	var coloredLines []string
	for _, line := range LogoLines {
		coloredLines = append(coloredLines, LogoStyle.Render(line))
	}
	logo := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)

	return lipgloss.JoinVertical(lipgloss.Center, logo, "", HelpStyle.Render(message))
}

// RenderBanner renders the startup banner with an optional version tag.
func RenderBanner(version string) string {
	lines := append([]string{}, LogoLines...)
	lines = append(lines, "")

	tagline := "    Combobox Playground"
	if version != "" && version != "dev" {
		if version[0] != 'v' && version[0] != 'V' {
			version = "v" + version
		}
		tagline += " " + version
	}
	lines = append(lines, tagline)

	colored := make([]string, 0, len(lines))
	for i, line := range lines {
		if line == "" {
			colored = append(colored, line)
			continue
		}
		style := lipgloss.NewStyle().
			Foreground(BannerColors[i%len(BannerColors)]).
			Bold(i < len(LogoLines))
		colored = append(colored, style.Render(line))
	}

	border := lipgloss.Border{
		Top:         "═",
		Bottom:      "═",
		Left:        "║",
		Right:       "║",
		TopLeft:     "╔",
		TopRight:    "╗",
		BottomLeft:  "╚",
		BottomRight: "╝",
	}
	banner := lipgloss.NewStyle().
		Border(border).
		BorderForeground(SecondaryColor).
		Padding(1, 3).
		Render(lipgloss.JoinVertical(lipgloss.Center, colored...))

	separator := lipgloss.NewStyle().Foreground(AccentColor).Render("◆ ◇ ◆ ◇ ◆")

	center := lipgloss.NewStyle().Width(60).Align(lipgloss.Center)
	return lipgloss.JoinVertical(lipgloss.Center, center.Render(banner), center.Render(separator))
}

func ShowBanner(w io.Writer, version string) {
	fmt.Fprintln(w, RenderBanner(version))
}
