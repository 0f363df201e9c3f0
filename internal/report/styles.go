package report

import "github.com/charmbracelet/lipgloss"

// Centralized lipgloss styles for the console renderer.

var (
	headerStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("36")). // Cyan
			Foreground(lipgloss.Color("36")).
			Bold(true).
			Padding(0, 2)

	tableTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")). // Light purple
			MarginTop(1)

	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			MarginTop(1)

	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")) // Green

	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // Red

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // Orange

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")) // Gray
)
