package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/llehouerou/mixera/internal/audio"
	"github.com/llehouerou/mixera/internal/catalog"
	"github.com/llehouerou/mixera/internal/clock"
	"github.com/llehouerou/mixera/internal/deezer"
	"github.com/llehouerou/mixera/internal/history"
	"github.com/llehouerou/mixera/internal/selector"
	"github.com/llehouerou/mixera/internal/store"
)

const (
	// Deadline timer granularity.
	progressTick = 100 * time.Millisecond

	// Fade-out starts this long before the round's absolute deadline.
	fadeOutLead = 2500 * time.Millisecond

	// Bounded resolution attempts inside one start: the initial try
	// plus five retries, each drawing a fresh candidate.
	maxFetchAttempts = 6
)

// Resolver turns a catalog entry into a playable track. Implemented by
// the deezer client; faked in tests.
type Resolver interface {
	Resolve(ctx context.Context, e catalog.Entry) (deezer.Track, error)
}

// Deps bundles the collaborators every mode needs.
type Deps struct {
	Clock    clock.Clock
	Catalog  *catalog.Catalog
	Selector *selector.Selector
	Resolver Resolver
	Audio    *audio.Controller
	KV       store.KV
}

// engine is the session-guarded asynchronous machinery shared by all
// modes. Each mode embeds one engine; its mutex protects all mode state.
//
// The guard rule: every continuation (timer callback, resolved fetch)
// captures the session id it was scheduled under and compares it against
// the live id before touching anything. A mismatch is a silent no-op.
// Clearing timer handles alone is not enough because an in-flight fetch
// may still land, so bumpLocked always does both.
type engine struct {
	mu sync.Mutex

	clk      clock.Clock
	cat      *catalog.Catalog
	sel      *selector.Selector
	resolver Resolver
	audio    *audio.Controller
	kv       store.KV
	hist     *history.Queue

	session int
	timers  []clock.Timer
}

func newEngine(d Deps, historyKey string, historyCap int) engine {
	return engine{
		clk:      d.Clock,
		cat:      d.Catalog,
		sel:      d.Selector,
		resolver: d.Resolver,
		audio:    d.Audio,
		kv:       d.KV,
		hist:     history.Load(d.KV, historyKey, historyCap),
	}
}

// bumpLocked invalidates the previous session: the id moves on and every
// pending timer is cancelled, as one operation.
func (e *engine) bumpLocked() int {
	e.session++
	e.clearTimersLocked()
	return e.session
}

// clearTimersLocked cancels pending timers without invalidating the
// session, so an in-flight fetch for the same round still lands. Used
// when a round ends early by a win rather than a reset.
func (e *engine) clearTimersLocked() {
	for _, t := range e.timers {
		t.Stop()
	}
	e.timers = nil
}

// schedule runs fn after d, under the engine lock, only if the session is
// still id. Must be called with the lock held.
func (e *engine) schedule(id int, d time.Duration, fn func()) {
	t := e.clk.AfterFunc(d, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if id != e.session {
			return
		}
		fn()
	})
	e.timers = append(e.timers, t)
}

// fetchOutcome enumerates why a fetch stopped.
type fetchOutcome int

const (
	fetchOK fetchOutcome = iota
	fetchEmptyFilter
	fetchExhausted
)

// fetchTrack draws candidates and resolves them until one yields a
// playable track or the attempt budget runs out. Each failed resolution
// draws a fresh candidate (and records it in history, like a played one).
// An empty filtered pool aborts immediately: that is a configuration
// problem, retrying cannot fix it.
//
// Runs on the caller's goroutine and takes the engine lock only around
// the draw; the attempts themselves are deliberately not session-guarded,
// the guard sits at the continuation that consumes the result.
func (e *engine) fetchTrack(ctx context.Context, f selector.Filters) (deezer.Track, fetchOutcome) {
	for range maxFetchAttempts {
		e.mu.Lock()
		entry, err := e.sel.Select(e.cat, e.hist, f)
		e.mu.Unlock()
		if errors.Is(err, selector.ErrEmptyFilter) {
			return deezer.Track{}, fetchEmptyFilter
		}

		track, err := e.resolver.Resolve(ctx, entry)
		if err == nil {
			return track, fetchOK
		}
	}
	return deezer.Track{}, fetchExhausted
}

// fetchAsync runs fetchTrack on its own goroutine and hands the result to
// done under the engine lock, session-guarded.
func (e *engine) fetchAsync(id int, f selector.Filters, done func(deezer.Track, fetchOutcome)) {
	go func() {
		track, outcome := e.fetchTrack(context.Background(), f)

		e.mu.Lock()
		defer e.mu.Unlock()
		if id != e.session {
			return
		}
		done(track, outcome)
	}()
}

// deadlineHooks receive the per-tick callbacks of a round deadline. All
// run under the engine lock with the session already verified.
type deadlineHooks struct {
	onProgress func(pct float64) // linear 0-100 toward reveal
	onReveal   func()            // reveal threshold crossed (nil = no reveal phase)
	onTimeout  func()            // total duration elapsed with no answer
}

// startDeadline begins the 100ms deadline ticker for the round. Progress
// advances linearly toward reveal (or total when reveal is zero); the
// audio fades out fadeOutLead before total; at total the timeout hook
// fires. The deadline is measured from now: audio start latency eats into
// play time, it does not extend the round.
func (e *engine) startDeadline(id int, reveal, total time.Duration, hooks deadlineHooks) {
	start := e.clk.Now()
	revealed := false
	fading := false

	span := reveal
	if span == 0 {
		span = total
	}

	var tick func()
	tick = func() {
		elapsed := e.clk.Now().Sub(start)

		if elapsed < span {
			if hooks.onProgress != nil {
				hooks.onProgress(float64(elapsed) / float64(span) * 100)
			}
		} else if !revealed {
			revealed = true
			if hooks.onProgress != nil {
				hooks.onProgress(100)
			}
			if hooks.onReveal != nil {
				hooks.onReveal()
			}
		}

		if elapsed >= total-fadeOutLead && !fading {
			fading = true
			e.audio.FadeOut(fadeOutLead)
		}

		if elapsed >= total {
			if hooks.onTimeout != nil {
				hooks.onTimeout()
			}
			return
		}
		e.schedule(id, progressTick, tick)
	}
	e.schedule(id, progressTick, tick)
}
