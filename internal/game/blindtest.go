package game

import (
	"errors"
	"time"

	"github.com/llehouerou/mixera/internal/deezer"
	"github.com/llehouerou/mixera/internal/errmsg"
	"github.com/llehouerou/mixera/internal/selector"
	"github.com/llehouerou/mixera/internal/store"
	"github.com/llehouerou/mixera/internal/textmatch"
)

// ErrResolveExhausted means no candidate could be resolved to a playable
// preview within the retry budget.
var ErrResolveExhausted = errors.New("no playable track found, check your connection")

const (
	blindtestHistoryKey = "blindtest_history"
	blindtestHistoryCap = 50
	settingsKey         = "settings"

	blindtestRevealTime = 20 * time.Second
	blindtestTotalTime  = 30 * time.Second
	blindtestWinDwell   = 8 * time.Second
	blindtestWinFade    = 2 * time.Second

	playFadeIn = time.Second

	// Default year range offered by the filters.
	MinYear = 1950
)

// blindtestSettings is the persisted shape of the filter settings.
type blindtestSettings struct {
	YearMin int             `json:"year_min"`
	YearMax int             `json:"year_max"`
	Origin  selector.Origin `json:"origin"`
	Genres  []string        `json:"genres"`
}

// Blindtest is the timed-reveal mode: a mystery track plays, the title
// reveals itself when the timer crosses the reveal threshold, and an
// exact guess before that wins the round.
type Blindtest struct {
	engine

	filters selector.Filters

	phase    Phase
	track    *deezer.Track
	tokens   []string // target title tokens for reveal-as-you-type
	progress float64
	revealed bool
	guessed  bool
	errMsg   string

	next *deezer.Track // speculative prefetch for the following round
}

// NewBlindtest creates the mode and restores the persisted filter
// settings.
func NewBlindtest(d Deps) *Blindtest {
	g := &Blindtest{
		engine: newEngine(d, blindtestHistoryKey, blindtestHistoryCap),
		filters: selector.Filters{
			YearMin: MinYear,
			YearMax: maxYear(d),
			Origin:  selector.OriginAll,
		},
	}

	var saved blindtestSettings
	if store.GetJSON(d.KV, settingsKey, &saved) {
		if saved.YearMin != 0 {
			g.filters.YearMin = saved.YearMin
		}
		if saved.YearMax != 0 {
			g.filters.YearMax = saved.YearMax
		}
		if saved.Origin != "" {
			g.filters.Origin = saved.Origin
		}
		g.filters.Genres = saved.Genres
	}

	return g
}

func maxYear(d Deps) int {
	return d.Clock.Now().Year()
}

// SeedDefaultFilters writes initial filter settings when none were
// persisted yet, so a config file can shift the default year bounds
// without clobbering what the player picked in an earlier session.
func SeedDefaultFilters(kv store.KV, yearMin, yearMax int) {
	if _, ok := kv.Get(settingsKey); ok {
		return
	}
	store.SetJSON(kv, settingsKey, blindtestSettings{
		YearMin: yearMin,
		YearMax: yearMax,
		Origin:  selector.OriginAll,
	})
}

// Start begins the next round.
func (g *Blindtest) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.startLocked()
}

func (g *Blindtest) startLocked() {
	id := g.bumpLocked()

	next := g.next
	g.next = nil
	g.errMsg = ""
	g.revealed = false
	g.guessed = false
	g.progress = 0
	g.track = nil
	g.tokens = nil

	if next != nil {
		// Pre-fetched track: no loading gap, audio switches over when
		// the new play supersedes the old stream.
		g.beginRoundLocked(id, *next)
		return
	}

	g.phase = PhaseLoading
	g.audio.Stop()
	g.fetchAsync(id, g.filters, func(track deezer.Track, outcome fetchOutcome) {
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

func (g *Blindtest) beginRoundLocked(id int, track deezer.Track) {
	g.phase = PhasePlaying
	g.track = &track
	g.tokens = textmatch.Tokenize(track.Title)
	g.audio.Play(track.Preview, playFadeIn)

	g.startDeadline(id, blindtestRevealTime, blindtestTotalTime, deadlineHooks{
		onProgress: func(pct float64) { g.progress = pct },
		onReveal: func() {
			g.revealed = true
			g.phase = PhaseRevealed
		},
		onTimeout: func() { g.startLocked() },
	})

	g.prefetchLocked(id)
}

// prefetchLocked resolves the following round's track while this one
// plays. The result is cached under the same session: a reset or filter
// change in the meantime drops it.
func (g *Blindtest) prefetchLocked(id int) {
	g.fetchAsync(id, g.filters, func(track deezer.Track, outcome fetchOutcome) {
		if outcome == fetchOK {
			g.next = &track
		}
	})
}

// SubmitGuess checks guess against the current title. An exact match
// wins the round: the title reveals and the next round starts after a
// dwell. Close and wrong verdicts leave the round running so the player
// can try again.
func (g *Blindtest) SubmitGuess(guess string) textmatch.Verdict {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhasePlaying || g.track == nil || g.guessed {
		return textmatch.VerdictNone
	}

	v := textmatch.CheckGuess(guess, g.track.Title)
	if v != textmatch.VerdictExact {
		return v
	}

	g.clearTimersLocked()
	g.guessed = true
	g.revealed = true
	g.progress = 100
	g.phase = PhaseRevealed

	id := g.session
	g.schedule(id, blindtestWinDwell, func() {
		g.audio.FadeOut(blindtestWinFade)
		g.schedule(id, blindtestWinFade+progressTick, func() {
			g.startLocked()
		})
	})

	return v
}

// Reset abandons the current round and returns to idle. Any in-flight
// resolution for the old session lands silently.
func (g *Blindtest) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.bumpLocked()
	g.audio.Stop()
	g.phase = PhaseIdle
	g.track = nil
	g.tokens = nil
	g.next = nil
	g.progress = 0
	g.revealed = false
	g.guessed = false
	g.errMsg = ""
}

// SetYearRange updates the inclusive year filter and invalidates any
// prefetched track.
func (g *Blindtest) SetYearRange(minY, maxY int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.filters.YearMin = minY
	g.filters.YearMax = maxY
	g.filtersChangedLocked()
}

// SetOrigin updates the origin filter.
func (g *Blindtest) SetOrigin(o selector.Origin) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.filters.Origin = o
	g.filtersChangedLocked()
}

// SetGenres updates the genre allow-list. Empty means all genres.
func (g *Blindtest) SetGenres(genres []string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.filters.Genres = genres
	g.filtersChangedLocked()
}

func (g *Blindtest) filtersChangedLocked() {
	g.next = nil
	store.SetJSON(g.kv, settingsKey, blindtestSettings{
		YearMin: g.filters.YearMin,
		YearMax: g.filters.YearMax,
		Origin:  g.filters.Origin,
		Genres:  g.filters.Genres,
	})
}

// BlindtestSnapshot is the read-only view the UI renders.
type BlindtestSnapshot struct {
	Phase       Phase
	Track       deezer.Track
	HasTrack    bool
	TitleTokens []string
	Progress    float64
	Revealed    bool
	Err         string
	AudioError  bool
	Filters     selector.Filters
}

// Snapshot returns a copy of the current round state.
func (g *Blindtest) Snapshot() BlindtestSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := BlindtestSnapshot{
		Phase:       g.phase,
		TitleTokens: append([]string(nil), g.tokens...),
		Progress:    g.progress,
		Revealed:    g.revealed,
		Err:         g.errMsg,
		AudioError:  g.audio.AudioError(),
		Filters:     g.filters,
	}
	if g.track != nil {
		s.Track = *g.track
		s.HasTrack = true
	}
	return s
}
