// Package tui is the terminal front end: a menu plus one screen per
// game mode, polling mode snapshots on a short tick.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/mixera/internal/game"
	"github.com/llehouerou/mixera/internal/textmatch"
)

type screen int

const (
	screenMenu screen = iota
	screenBlindtest
	screenTimeline
	screenBullseye
	screenMemory
)

type tickMsg time.Time

// The engine mutates on its own timers, so the UI refreshes by polling
// snapshots rather than receiving push messages.
const refreshInterval = 100 * time.Millisecond

type Model struct {
	blindtest *game.Blindtest
	timeline  *game.Timeline
	bullseye  *game.Bullseye
	memory    *game.Memory

	screen  screen
	input   textinput.Model
	bar     progress.Model
	verdict textmatch.Verdict
	hinted  bool // verdict banner pending
	cursor  int  // memory board cursor

	width  int
	height int
}

func New(deps game.Deps) Model {
	input := textinput.New()
	input.Placeholder = "type your guess"
	input.CharLimit = 80

	bar := progress.New(progress.WithDefaultGradient())
	bar.ShowPercentage = false

	return Model{
		blindtest: game.NewBlindtest(deps),
		timeline:  game.NewTimeline(deps),
		bullseye:  game.NewBullseye(deps),
		memory:    game.NewMemory(deps),
		input:     input,
		bar:       bar,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = min(msg.Width-4, 60)
		return m, nil

	case tickMsg:
		if m.screen == screenMenu {
			return m, nil
		}
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.resetCurrent()
		return m, tea.Quit
	}

	switch m.screen {
	case screenMenu:
		return m.updateMenu(msg)
	case screenBlindtest:
		return m.updateBlindtest(msg)
	case screenTimeline:
		return m.updateTimeline(msg)
	case screenBullseye:
		return m.updateBullseye(msg)
	case screenMemory:
		return m.updateMemory(msg)
	}
	return m, nil
}

// resetCurrent abandons whatever round is in flight on the active
// screen.
func (m *Model) resetCurrent() {
	switch m.screen {
	case screenBlindtest:
		m.blindtest.Reset()
	case screenTimeline:
		m.timeline.Reset()
	case screenBullseye:
		m.bullseye.Reset()
	case screenMemory:
		m.memory.Reset()
	}
}

func (m Model) backToMenu() (tea.Model, tea.Cmd) {
	m.resetCurrent()
	m.screen = screenMenu
	m.input.Reset()
	m.input.Blur()
	m.verdict = textmatch.VerdictNone
	m.hinted = false
	return m, nil
}

func (m Model) View() string {
	switch m.screen {
	case screenBlindtest:
		return m.viewBlindtest()
	case screenTimeline:
		return m.viewTimeline()
	case screenBullseye:
		return m.viewBullseye()
	case screenMemory:
		return m.viewMemory()
	default:
		return m.viewMenu()
	}
}
