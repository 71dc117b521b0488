package ui

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent  = lipgloss.Color("#06B6D4")
	colorOK      = lipgloss.Color("#22C55E")
	colorWarning = lipgloss.Color("#EAB308")
	colorDanger  = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
)

var (
	styleTitle     lipgloss.Style
	styleLabel     lipgloss.Style
	styleMuted     lipgloss.Style
	styleError     lipgloss.Style
	styleTableHead lipgloss.Style
	styleFooter    lipgloss.Style
)

func init() {
	styleTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorAccent)

	styleLabel = lipgloss.NewStyle().
		Bold(true)

	styleMuted = lipgloss.NewStyle().
		Foreground(colorMuted)

	styleError = lipgloss.NewStyle().
		Foreground(colorDanger)

	styleTableHead = lipgloss.NewStyle().
		Bold(true).
		Reverse(true)

	styleFooter = lipgloss.NewStyle().
		Foreground(colorMuted).
		MarginTop(1)
}

// gaugeStyle colours a bar by load: green below 60%, yellow below 85%.
func gaugeStyle(ratio float64) lipgloss.Style {
	switch {
	case ratio >= 0.85:
		return lipgloss.NewStyle().Foreground(colorDanger)
	case ratio >= 0.60:
		return lipgloss.NewStyle().Foreground(colorWarning)
	default:
		return lipgloss.NewStyle().Foreground(colorOK)
	}
}
