package cli

import "github.com/charmbracelet/lipgloss"

// Terminal styles for command output.
var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CDD6F4"))

	citationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#06B6D4"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086"))
)
