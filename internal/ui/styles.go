package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/faizmokh/timers/internal/config"
)

// Palette
// - Yellow: task IDs of the running task
// - Red: name of the running task, weekend days
// - Green: weekdays
// - Gray: secondary info

// Styles groups every style the command output uses. All styles come from the
// same renderer so the color mode applies uniformly.
type Styles struct {
	ActiveID   lipgloss.Style
	ActiveName lipgloss.Style
	Weekday    lipgloss.Style
	Weekend    lipgloss.Style
	Muted      lipgloss.Style
	Bold       lipgloss.Style
	Error      lipgloss.Style
}

// NewRenderer binds a lipgloss renderer to w. ColorAuto lets lipgloss inspect
// w; the other modes force a profile.
func NewRenderer(w io.Writer, mode config.ColorMode) *lipgloss.Renderer {
	renderer := lipgloss.NewRenderer(w)
	switch mode {
	case config.ColorNever:
		renderer.SetColorProfile(termenv.Ascii)
	case config.ColorAlways:
		renderer.SetColorProfile(termenv.ANSI256)
	}
	return renderer
}

// NewStyles builds the palette on renderer.
func NewStyles(renderer *lipgloss.Renderer) Styles {
	return Styles{
		ActiveID:   renderer.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		ActiveName: renderer.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Weekday:    renderer.NewStyle().Foreground(lipgloss.Color("10")),
		Weekend:    renderer.NewStyle().Foreground(lipgloss.Color("9")),
		Muted:      renderer.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Bold:       renderer.NewStyle().Bold(true),
		Error:      renderer.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// PlainStyles renders everything unstyled.
func PlainStyles() Styles {
	return NewStyles(NewRenderer(io.Discard, config.ColorNever))
}
