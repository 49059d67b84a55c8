package report

import (
	"github.com/charmbracelet/lipgloss"
)

// style names usable from templates through the style function
const (
	StyleHeading = "Heading"
	StyleName    = "Name"
	StylePath    = "Path"
	StyleSuccess = "Success"
	StyleWarning = "Warning"
	StyleMuted   = "Muted"
)

func newStyles(r *lipgloss.Renderer) map[string]lipgloss.Style {
	return map[string]lipgloss.Style{
		StyleHeading: r.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}),
		StyleName: r.NewStyle().Bold(true),
		StylePath: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#A0A0A0"}),
		StyleSuccess: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#02A65A", Dark: "#04B575"}),
		StyleWarning: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#D98100", Dark: "#FFB454"}),
		StyleMuted: r.NewStyle().Faint(true),
	}
}
