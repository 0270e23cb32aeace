package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	menuItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	revealStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	closeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	wrongStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	scoreStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226"))

	cardBackStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Width(16).
			Height(1).
			Align(lipgloss.Center)

	cardCursorStyle = cardBackStyle.
			BorderForeground(lipgloss.Color("205"))
)

func cardFaceStyle(color string) lipgloss.Style {
	return cardBackStyle.
		BorderForeground(lipgloss.Color(color)).
		Foreground(lipgloss.Color(color))
}
