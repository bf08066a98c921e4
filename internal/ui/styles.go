package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ------- CLI output helpers (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	doneStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

const (
	BoxChecked   = "☑"
	BoxUnchecked = "☐"
)

func OK(msg string) {
	fmt.Println(successStyle.Render("✔ " + msg))
}

func Fail(msg string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("✖ "+msg))
}

func Hint(msg string) {
	fmt.Fprintln(os.Stderr, mutedStyle.Render("Hint: "+msg))
}

func Title(s string) string   { return titleStyle.Render(s) }
func Success(s string) string { return successStyle.Render(s) }
func Pending(s string) string { return pendingStyle.Render(s) }
func Accent(s string) string  { return accentStyle.Render(s) }
func Muted(s string) string   { return mutedStyle.Render(s) }
func Done(s string) string    { return doneStyle.Render(s) }

// PanelString frames lines in a rounded border.
func PanelString(lines []string) string {
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func Panel(lines []string) {
	fmt.Println(PanelString(lines))
}

// ProgressBar renders a bar with a done/total counter.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 0 {
		width = 28
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf("] %d/%d", done, total)
}
