package game

import (
	"time"

	"github.com/llehouerou/mixera/internal/deezer"
	"github.com/llehouerou/mixera/internal/errmsg"
	"github.com/llehouerou/mixera/internal/selector"
)

const (
	bullseyeHistoryKey = "bullseye_history"
	bullseyeHistoryCap = 50
	bullseyeBestKey    = "bullseye_best"

	bullseyeRoundTime = 20 * time.Second
	bullseyeDwell     = 8 * time.Second
	bullseyeFade      = 2 * time.Second
)

// bullseyePoints bands the distance between the guessed and real year.
func bullseyePoints(guess, year int) int {
	diff := guess - year
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff == 0:
		return 100
	case diff <= 1:
		return 50
	case diff <= 3:
		return 20
	default:
		return 0
	}
}

// Bullseye is the exact-year mode: a track plays and the player has one
// shot at naming its release year. Points scale with closeness; the
// running total feeds a persisted all-time best.
type Bullseye struct {
	engine

	score scoreboard

	phase    Phase
	track    *deezer.Track
	guess    *int // nil when the round timed out unanswered
	points   int
	progress float64
	errMsg   string
}

func NewBullseye(d Deps) *Bullseye {
	return &Bullseye{
		engine: newEngine(d, bullseyeHistoryKey, bullseyeHistoryCap),
		score:  loadScoreboard(d.KV, bullseyeBestKey),
	}
}

// Start begins the next round.
func (g *Bullseye) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.startLocked()
}

func (g *Bullseye) startLocked() {
	id := g.bumpLocked()

	g.errMsg = ""
	g.track = nil
	g.guess = nil
	g.points = 0
	g.progress = 0

	g.phase = PhaseLoading
	g.audio.Stop()
	g.fetchAsync(id, selector.Filters{Origin: selector.OriginAll}, func(track deezer.Track, outcome fetchOutcome) {
		switch outcome {
		case fetchEmptyFilter:
			g.phase = PhaseIdle
			g.errMsg = errmsg.Format(errmsg.OpTrackSelect, selector.ErrEmptyFilter)
		case fetchExhausted:
			g.phase = PhaseIdle
			g.errMsg = errmsg.Format(errmsg.OpTrackResolve, ErrResolveExhausted)
		case fetchOK:
			g.beginRoundLocked(id, track)
		}
	})
}

func (g *Bullseye) beginRoundLocked(id int, track deezer.Track) {
	g.phase = PhasePlaying
	g.track = &track
	g.audio.Play(track.Preview, playFadeIn)

	g.startDeadline(id, 0, bullseyeRoundTime, deadlineHooks{
		onProgress: func(pct float64) { g.progress = pct },
		onTimeout:  func() { g.settleLocked(nil) },
	})
}

// SubmitYear scores the player's guess. Ignored outside an active round;
// the round is over either way, one guess is all you get.
func (g *Bullseye) SubmitYear(year int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhasePlaying || g.track == nil {
		return
	}
	g.settleLocked(&year)
}

// settleLocked ends the round. A nil guess (timeout) scores zero without
// touching the total.
func (g *Bullseye) settleLocked(guess *int) {
	g.clearTimersLocked()
	g.guess = guess
	g.progress = 100
	g.phase = PhaseScored

	if guess != nil {
		g.points = bullseyePoints(*guess, g.track.Year)
		g.score.add(g.points)
	}

	id := g.session
	g.schedule(id, bullseyeDwell, func() {
		g.audio.FadeOut(bullseyeFade)
		g.schedule(id, bullseyeFade+progressTick, func() {
			g.startLocked()
		})
	})
}

// Reset abandons the round and zeroes the running total. The persisted
// best survives.
func (g *Bullseye) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.bumpLocked()
	g.audio.Stop()
	g.phase = PhaseIdle
	g.track = nil
	g.guess = nil
	g.points = 0
	g.progress = 0
	g.errMsg = ""
	g.score.reset()
}

// BullseyeSnapshot is the read-only view the UI renders. The real year
// is withheld while the round is still open.
type BullseyeSnapshot struct {
	Phase    Phase
	Track    deezer.Track
	HasTrack bool
	Guess    *int
	Points   int
	Total    int
	Best     int
	Progress float64
	Err      string
}

func (g *Bullseye) Snapshot() BullseyeSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := BullseyeSnapshot{
		Phase:    g.phase,
		Points:   g.points,
		Total:    g.score.total,
		Best:     g.score.best,
		Progress: g.progress,
		Err:      g.errMsg,
	}
	if g.guess != nil {
		v := *g.guess
		s.Guess = &v
	}
	if g.track != nil {
		s.Track = *g.track
		s.HasTrack = true
		if g.phase == PhasePlaying {
			s.Track.Year = 0
		}
	}
	return s
}
