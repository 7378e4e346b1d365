package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#3B82F6") // Blue
	colorSuccess   = lipgloss.Color("#22C55E") // Green
	colorWarning   = lipgloss.Color("#F59E0B") // Amber
	colorMuted     = lipgloss.Color("#6B7280") // Gray
)

// theme holds the styles for one report. A zero theme renders plain text.
type theme struct {
	enabled bool

	banner   lipgloss.Style
	pid      lipgloss.Style
	command  lipgloss.Style
	id       lipgloss.Style
	label    lipgloss.Style
	muted    lipgloss.Style
	notFound lipgloss.Style
	summary  lipgloss.Style
}

// newTheme binds styles to w. The color decision has already been made by
// the caller, so the renderer's own terminal detection is overridden.
func newTheme(w io.Writer, colorEnabled bool) theme {
	if !colorEnabled {
		return theme{}
	}

	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)

	return theme{
		enabled:  true,
		banner:   r.NewStyle().Bold(true).Foreground(colorPrimary),
		pid:      r.NewStyle().Bold(true).Foreground(colorSecondary),
		command:  r.NewStyle().Foreground(colorSuccess),
		id:       r.NewStyle().Bold(true).Foreground(colorSecondary),
		label:    r.NewStyle().Foreground(colorMuted),
		muted:    r.NewStyle().Foreground(colorMuted),
		notFound: r.NewStyle().Foreground(colorWarning),
		summary:  r.NewStyle().Bold(true),
	}
}

func (t theme) paint(s lipgloss.Style, text string) string {
	if !t.enabled {
		return text
	}
	return s.Render(text)
}
