package prompt

import "github.com/charmbracelet/lipgloss"

var (
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7B61FF"))

	Answer = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#73F59F")).
		Bold(true)

	Help = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#5A9"))
)
