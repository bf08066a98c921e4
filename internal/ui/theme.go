package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/Makepad-fr/forget/internal/config"
)

// Theme bundles the interactive view's styles, built from config.json.
type Theme struct {
	Title     string
	Highlight string

	Normal     lipgloss.Style
	Selected   lipgloss.Style
	Tabs       lipgloss.Style
	ActiveTab  lipgloss.Style
	Titles     lipgloss.Style
	Text       lipgloss.Style
	Muted      lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Border     lipgloss.Style
	FocusFrame lipgloss.Style
}

// NewTheme converts the config palette. cfg must have passed config.Load.
func NewTheme(cfg *config.Config) Theme {
	c := cfg.AppColors
	tabs := Style(c.Tabs)
	return Theme{
		Title:     cfg.Title,
		Highlight: cfg.HighlightString,

		Normal:    Style(c.Normal),
		Selected:  Style(c.Highlight),
		Tabs:      tabs,
		ActiveTab: Style(c.Highlight).Underline(true),
		Titles:    Style(c.Titles),
		Text:      Style(c.Text),
		Muted:     mutedStyle,
		Error:     errorStyle,
		Success:   successStyle,
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")),
		FocusFrame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(tabs.GetForeground()),
	}
}

// Style turns one config style into a lipgloss style. Invalid values fall
// back to the terminal default.
func Style(s config.Style) lipgloss.Style {
	st := lipgloss.NewStyle()
	if fg, err := config.ParseColor(s.Fg); err == nil && fg != "" {
		st = st.Foreground(lipgloss.Color(fg))
	}
	if bg, err := config.ParseColor(s.Bg); err == nil && bg != "" {
		st = st.Background(lipgloss.Color(bg))
	}
	mod, _ := config.NormalizeModifier(s.Modifier)
	switch mod {
	case config.ModBold:
		st = st.Bold(true)
	case config.ModDim:
		st = st.Faint(true)
	case config.ModItalic:
		st = st.Italic(true)
	case config.ModUnderlined:
		st = st.Underline(true)
	case config.ModSlowBlink, config.ModRapidBlink:
		st = st.Blink(true)
	case config.ModReversed:
		st = st.Reverse(true)
	case config.ModHidden:
		st = st.Foreground(st.GetBackground())
	case config.ModCrossedOut:
		st = st.Strikethrough(true)
	}
	return st
}

// ApplyColorProfile honors NO_COLOR and otherwise trusts the terminal.
func ApplyColorProfile() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	if profile != termenv.Ascii && (strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit")) {
		profile = termenv.TrueColor
	}
	lipgloss.SetColorProfile(profile)
}
