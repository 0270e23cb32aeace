package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/mixera/internal/game"
)

func (m Model) updateTimeline(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.backToMenu()
	case "left", "b":
		m.timeline.Answer(game.AnswerBefore)
	case "right", "a":
		m.timeline.Answer(game.AnswerAfter)
	}
	return m, nil
}

func (m Model) viewTimeline() string {
	snap := m.timeline.Snapshot()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Timeline"))
	b.WriteString("\n")

	switch snap.Phase {
	case game.PhaseLoading:
		b.WriteString(dimStyle.Render("loading next track..."))
	case game.PhaseIdle:
		if snap.Err != "" {
			b.WriteString(errStyle.Render(snap.Err))
		} else {
			b.WriteString(dimStyle.Render("press esc, then 2 to start again"))
		}
	case game.PhasePlaying:
		b.WriteString(m.bar.ViewAs(snap.Progress / 100))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("Was this released before or after %s?\n\n",
			scoreStyle.Render(fmt.Sprintf("%d", snap.Pivot))))
		b.WriteString(dimStyle.Render("← before        after →"))
	case game.PhaseRevealed:
		b.WriteString(revealStyle.Render(fmt.Sprintf("%s — %s (%d)",
			snap.Track.Artist, snap.Track.Title, snap.Track.Year)))
		b.WriteString("\n\n")
		switch snap.Feedback {
		case game.FeedbackCorrect:
			b.WriteString(revealStyle.Render("correct"))
		case game.FeedbackWrong:
			b.WriteString(wrongStyle.Render("wrong"))
		case game.FeedbackTimeout:
			b.WriteString(wrongStyle.Render("too slow"))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(scoreStyle.Render(fmt.Sprintf("streak: %d", snap.Streak)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←/→ answer · esc menu"))
	return b.String()
}
