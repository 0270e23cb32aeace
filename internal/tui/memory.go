package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/mixera/internal/game"
)

const memoryCols = 4

func (m Model) updateMemory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.memory.Snapshot()
	n := len(snap.Cards)

	switch msg.String() {
	case "esc":
		return m.backToMenu()
	case "r":
		if snap.Phase == game.PhaseWon {
			m.cursor = 0
			m.memory.Start()
		}
		return m, nil
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < n-1 {
			m.cursor++
		}
	case "up", "k":
		if m.cursor >= memoryCols {
			m.cursor -= memoryCols
		}
	case "down", "j":
		if m.cursor+memoryCols < n {
			m.cursor += memoryCols
		}
	case "enter", " ":
		m.memory.Flip(m.cursor)
	}
	return m, nil
}

func (m Model) viewMemory() string {
	snap := m.memory.Snapshot()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Memory"))
	b.WriteString("\n")

	switch snap.Phase {
	case game.PhaseLoading:
		b.WriteString(dimStyle.Render("building the board..."))
	case game.PhaseIdle:
		if snap.Err != "" {
			b.WriteString(errStyle.Render(snap.Err))
		} else {
			b.WriteString(dimStyle.Render("press esc, then 4 to start again"))
		}
	default:
		b.WriteString(m.renderBoard(snap))
		b.WriteString("\n")
		b.WriteString(scoreStyle.Render(fmt.Sprintf("pairs: %d/%d   moves: %d",
			snap.Matched, len(snap.Cards)/2, snap.Moves)))
		if snap.Phase == game.PhaseWon {
			b.WriteString("\n")
			b.WriteString(revealStyle.Render(fmt.Sprintf("board cleared in %d moves! r to play again", snap.Moves)))
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("arrows move · enter flip · esc menu"))
	return b.String()
}

func (m Model) renderBoard(snap game.MemorySnapshot) string {
	var rows []string
	for start := 0; start < len(snap.Cards); start += memoryCols {
		end := min(start+memoryCols, len(snap.Cards))
		var row []string
		for i := start; i < end; i++ {
			row = append(row, m.renderCard(i, snap.Cards[i]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCard(index int, c game.Card) string {
	if c.Flipped || c.Matched {
		label := c.Artist
		if c.Kind == game.CardTrack {
			label = c.Track.Title
		}
		if r := []rune(label); len(r) > 14 {
			label = string(r[:13]) + "…"
		}
		return cardFaceStyle(c.Color).Render(label)
	}
	if index == m.cursor {
		return cardCursorStyle.Render("?")
	}
	return cardBackStyle.Render("?")
}
