package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/mixera/internal/game"
	"github.com/llehouerou/mixera/internal/textmatch"
)

func (m Model) updateBlindtest(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.backToMenu()
	case "enter":
		guess := m.input.Value()
		if strings.TrimSpace(guess) == "" {
			return m, nil
		}
		m.verdict = m.blindtest.SubmitGuess(guess)
		m.hinted = true
		if m.verdict == textmatch.VerdictExact {
			m.input.Reset()
		}
		return m, nil
	}

	m.hinted = false
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) viewBlindtest() string {
	snap := m.blindtest.Snapshot()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Blindtest"))
	b.WriteString("\n")

	switch snap.Phase {
	case game.PhaseLoading:
		b.WriteString(dimStyle.Render("loading next track..."))
	case game.PhaseIdle:
		if snap.Err != "" {
			b.WriteString(errStyle.Render(snap.Err))
		} else {
			b.WriteString(dimStyle.Render("press esc, then 1 to start again"))
		}
	default:
		b.WriteString(m.bar.ViewAs(snap.Progress / 100))
		b.WriteString("\n\n")
		b.WriteString(renderTitleHint(m.input.Value(), snap))
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		if m.hinted {
			b.WriteString("\n")
			switch m.verdict {
			case textmatch.VerdictExact:
				b.WriteString(revealStyle.Render("correct!"))
			case textmatch.VerdictClose:
				b.WriteString(closeStyle.Render("close, keep going"))
			default:
				b.WriteString(wrongStyle.Render("nope"))
			}
		}
	}

	if snap.AudioError {
		b.WriteString("\n")
		b.WriteString(errStyle.Render("audio unavailable"))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter guess · esc menu"))
	return b.String()
}

// renderTitleHint masks the title while the round is open, showing each
// token the current input already nails. After the reveal the full
// artist and title show.
func renderTitleHint(input string, snap game.BlindtestSnapshot) string {
	if snap.Revealed {
		return revealStyle.Render(fmt.Sprintf("%s — %s", snap.Track.Artist, snap.Track.Title))
	}

	found := map[int]bool{}
	for _, i := range textmatch.CheckProgress(input, snap.TitleTokens) {
		found[i] = true
	}
	parts := make([]string, len(snap.TitleTokens))
	for i, tok := range snap.TitleTokens {
		if found[i] {
			parts[i] = tok
		} else {
			parts[i] = strings.Repeat("_", len(tok))
		}
	}
	return dimStyle.Render(strings.Join(parts, " "))
}
