package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(22)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(1, 2)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	seasonStyles = map[string]lipgloss.Style{
		"dry":     lipgloss.NewStyle().Foreground(lipgloss.Color("179")),
		"hot":     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		"monsoon": lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
	}
)

func seasonStyle(season string) lipgloss.Style {
	if st, ok := seasonStyles[season]; ok {
		return st
	}
	return valueStyle
}

// ProgressBar renders a fill bar for a fraction in [0,1].
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
