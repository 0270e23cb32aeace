package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		m.screen = screenBlindtest
		m.input.Reset()
		m.input.Placeholder = "type your guess"
		m.input.Focus()
		m.blindtest.Start()
		return m, tickCmd()
	case "2":
		m.screen = screenTimeline
		m.timeline.Start()
		return m, tickCmd()
	case "3":
		m.screen = screenBullseye
		m.input.Reset()
		m.input.Placeholder = "year"
		m.input.Focus()
		m.bullseye.Start()
		return m, tickCmd()
	case "4":
		m.screen = screenMemory
		m.cursor = 0
		m.memory.Start()
		return m, tickCmd()
	}
	return m, nil
}

func (m Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("mixera"))
	b.WriteString("\n")
	b.WriteString(menuItemStyle.Render("1. Blindtest    guess the song before the reveal"))
	b.WriteString("\n")
	b.WriteString(menuItemStyle.Render("2. Timeline     before or after the pivot year?"))
	b.WriteString("\n")
	b.WriteString(menuItemStyle.Render("3. Bullseye     name the exact release year"))
	b.WriteString("\n")
	b.WriteString(menuItemStyle.Render("4. Memory       pair each artist with their song"))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("1-4 play · q quit"))
	return b.String()
}
