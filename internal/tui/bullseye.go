package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/mixera/internal/game"
)

func (m Model) updateBullseye(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.backToMenu()
	case "enter":
		year, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
		if err != nil || year < 1000 || year > 9999 {
			return m, nil
		}
		m.bullseye.SubmitYear(year)
		m.input.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) viewBullseye() string {
	snap := m.bullseye.Snapshot()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Bullseye"))
	b.WriteString("\n")

	switch snap.Phase {
	case game.PhaseLoading:
		b.WriteString(dimStyle.Render("loading next track..."))
	case game.PhaseIdle:
		if snap.Err != "" {
			b.WriteString(errStyle.Render(snap.Err))
		} else {
			b.WriteString(dimStyle.Render("press esc, then 3 to start again"))
		}
	case game.PhasePlaying:
		b.WriteString(m.bar.ViewAs(snap.Progress / 100))
		b.WriteString("\n\n")
		b.WriteString("What year was this released?\n\n")
		b.WriteString(m.input.View())
	case game.PhaseScored:
		b.WriteString(revealStyle.Render(fmt.Sprintf("%s — %s (%d)",
			snap.Track.Artist, snap.Track.Title, snap.Track.Year)))
		b.WriteString("\n\n")
		if snap.Guess == nil {
			b.WriteString(wrongStyle.Render("time's up"))
		} else if snap.Points > 0 {
			b.WriteString(revealStyle.Render(fmt.Sprintf("you said %d: +%d points", *snap.Guess, snap.Points)))
		} else {
			b.WriteString(wrongStyle.Render(fmt.Sprintf("you said %d: no points", *snap.Guess)))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(scoreStyle.Render(fmt.Sprintf("score: %s   best: %s",
		humanize.Comma(int64(snap.Total)), humanize.Comma(int64(snap.Best)))))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter submit · esc menu"))
	return b.String()
}
