package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all the lipgloss styles for the game display.
type Styles struct {
	// Board
	MarkX lipgloss.Style
	MarkO lipgloss.Style
	Grid  lipgloss.Style

	// Notices
	Info    lipgloss.Style
	Waiting lipgloss.Style
	Invalid lipgloss.Style
	Win     lipgloss.Style
	Lose    lipgloss.Style
	Draw    lipgloss.Style

	// Input
	Prompt lipgloss.Style
	Error  lipgloss.Style
}

// DefaultStyles returns the default style configuration for r.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		MarkX: r.NewStyle().
			Foreground(lipgloss.Color("212")). // Magenta
			Bold(true),
		MarkO: r.NewStyle().
			Foreground(lipgloss.Color("81")). // Cyan
			Bold(true),
		Grid: r.NewStyle().
			Foreground(lipgloss.Color("240")),

		Info: r.NewStyle().
			Foreground(lipgloss.Color("252")),
		Waiting: r.NewStyle().
			Foreground(lipgloss.Color("243")), // Gray (subtle)
		Invalid: r.NewStyle().
			Foreground(lipgloss.Color("220")),
		Win: r.NewStyle().
			Foreground(lipgloss.Color("71")). // Muted green
			Bold(true),
		Lose: r.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		Draw: r.NewStyle().
			Foreground(lipgloss.Color("179")). // Muted yellow
			Bold(true),

		Prompt: r.NewStyle().
			Foreground(lipgloss.Color("245")),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("196")),
	}
}
