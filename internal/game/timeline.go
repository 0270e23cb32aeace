package game

import (
	"math/rand/v2"
	"time"

	"github.com/llehouerou/mixera/internal/deezer"
	"github.com/llehouerou/mixera/internal/errmsg"
	"github.com/llehouerou/mixera/internal/selector"
)

const (
	timelineHistoryKey = "timeline_history"
	timelineHistoryCap = 100

	timelineRoundTime  = 20 * time.Second
	timelineRightDwell = 2 * time.Second
	timelineRightFade  = time.Second
	timelineWrongDwell = 5 * time.Second
	timelineWrongFade  = 2 * time.Second

	// Pivot offset from the track's real year, in either direction.
	pivotSpread = 10
)

// TimelineFeedback tells the player how the round ended.
type TimelineFeedback int

const (
	FeedbackNone TimelineFeedback = iota
	FeedbackCorrect
	FeedbackWrong
	FeedbackTimeout
)

// TimelineAnswer is the player's call against the pivot year.
type TimelineAnswer int

const (
	AnswerBefore TimelineAnswer = iota
	AnswerAfter
)

// Timeline is the bisection mode: a track plays next to a pivot year and
// the player calls whether it was released before or after the pivot.
// Consecutive correct answers build a streak; a wrong answer or a
// timeout zeroes it.
type Timeline struct {
	engine

	intn func(int) int

	phase    Phase
	track    *deezer.Track
	pivot    int
	streak   int
	progress float64
	feedback TimelineFeedback
	errMsg   string
}

func NewTimeline(d Deps) *Timeline {
	return NewTimelineWithRand(d, rand.IntN)
}

// NewTimelineWithRand injects the pivot randomness, for deterministic
// tests.
func NewTimelineWithRand(d Deps, intn func(int) int) *Timeline {
	return &Timeline{
		engine: newEngine(d, timelineHistoryKey, timelineHistoryCap),
		intn:   intn,
	}
}

// pivotFor places the pivot within pivotSpread years of the real year.
// A pivot equal to the year would make the question unanswerable, so it
// gets nudged one year to the side, direction chosen by the same source.
func (g *Timeline) pivotFor(year int) int {
	pivot := year + g.intn(2*pivotSpread+1) - pivotSpread
	if pivot == year {
		if g.intn(2) == 0 {
			pivot--
		} else {
			pivot++
		}
	}
	return pivot
}

// Start begins the next round.
func (g *Timeline) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.startLocked()
}

func (g *Timeline) startLocked() {
	id := g.bumpLocked()

	g.errMsg = ""
	g.feedback = FeedbackNone
	g.progress = 0
	g.track = nil

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

func (g *Timeline) beginRoundLocked(id int, track deezer.Track) {
	g.phase = PhasePlaying
	g.track = &track
	g.pivot = g.pivotFor(track.Year)
	g.audio.Play(track.Preview, playFadeIn)

	g.startDeadline(id, 0, timelineRoundTime, deadlineHooks{
		onProgress: func(pct float64) { g.progress = pct },
		onTimeout: func() {
			g.streak = 0
			g.settleLocked(FeedbackTimeout)
		},
	})
}

// Answer submits the player's before/after call. Ignored outside an
// active round.
func (g *Timeline) Answer(a TimelineAnswer) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhasePlaying || g.track == nil {
		return
	}

	correct := (a == AnswerBefore) == (g.track.Year < g.pivot)
	if correct {
		g.streak++
		g.settleLocked(FeedbackCorrect)
	} else {
		g.streak = 0
		g.settleLocked(FeedbackWrong)
	}
}

// settleLocked ends the round: the deadline ticker stops, the answer
// shows for a dwell while the audio fades, then the next round starts.
// The timer chain stays on the current session so a Reset during the
// dwell cancels the advance.
func (g *Timeline) settleLocked(fb TimelineFeedback) {
	g.clearTimersLocked()
	g.feedback = fb
	g.progress = 100
	g.phase = PhaseRevealed

	dwell, fade := timelineWrongDwell, timelineWrongFade
	if fb == FeedbackCorrect {
		dwell, fade = timelineRightDwell, timelineRightFade
	}

	id := g.session
	g.schedule(id, dwell, func() {
		g.audio.FadeOut(fade)
		g.schedule(id, fade+progressTick, func() {
			g.startLocked()
		})
	})
}

// Reset abandons the round and zeroes the streak.
func (g *Timeline) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.bumpLocked()
	g.audio.Stop()
	g.phase = PhaseIdle
	g.track = nil
	g.streak = 0
	g.progress = 0
	g.feedback = FeedbackNone
	g.errMsg = ""
}

// TimelineSnapshot is the read-only view the UI renders. Track year is
// withheld until the round is settled.
type TimelineSnapshot struct {
	Phase    Phase
	Track    deezer.Track
	HasTrack bool
	Pivot    int
	Streak   int
	Progress float64
	Feedback TimelineFeedback
	Err      string
}

func (g *Timeline) Snapshot() TimelineSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := TimelineSnapshot{
		Phase:    g.phase,
		Pivot:    g.pivot,
		Streak:   g.streak,
		Progress: g.progress,
		Feedback: g.feedback,
		Err:      g.errMsg,
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
