package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary = lipgloss.Color("39")  // Blue
	ColorSuccess = lipgloss.Color("34")  // Green
	ColorWarning = lipgloss.Color("214") // Orange
	ColorError   = lipgloss.Color("196") // Red
	ColorMuted   = lipgloss.Color("240") // Dark gray
)

// Theme renders status lines for one output stream.
type Theme struct {
	Title   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

// NewTheme returns styles bound to w. Colour is dropped when w is not a
// colour-capable terminal.
func NewTheme(w io.Writer) Theme {
	r := lipgloss.NewRenderer(w)
	if !ColorEnabled(w) {
		r.SetColorProfile(termenv.Ascii)
	}
	return Theme{
		Title:   r.NewStyle().Bold(true).Foreground(ColorPrimary),
		Success: r.NewStyle().Foreground(ColorSuccess),
		Warning: r.NewStyle().Foreground(ColorWarning),
		Error:   r.NewStyle().Bold(true).Foreground(ColorError),
		Muted:   r.NewStyle().Foreground(ColorMuted),
	}
}

// OK renders a success marker followed by msg.
func (t Theme) OK(msg string) string { return t.Success.Render("✓") + " " + msg }

// Fail renders a failure marker followed by msg.
func (t Theme) Fail(msg string) string { return t.Error.Render("✗") + " " + msg }

// Warn renders a warning marker followed by msg.
func (t Theme) Warn(msg string) string { return t.Warning.Render("!") + " " + msg }
