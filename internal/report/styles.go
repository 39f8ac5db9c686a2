package report

import "github.com/charmbracelet/lipgloss"

// This file centralizes the lipgloss styles used by the report views.

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("63")). // Purple
			Bold(true).
			Padding(0, 1)

	baselineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")). // Cyan/Teal
			Bold(true)

	fasterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")) // Green

	slowerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // Red

	nameStyle = lipgloss.NewStyle().
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // Gray

	invalidStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)
