package audio

import (
	"sync"
	"time"

	"github.com/llehouerou/mixera/internal/clock"
)

const (
	// Fade granularity.
	tickInterval = 50 * time.Millisecond

	// Fade-in ramps at a rate that reaches this ceiling over the fade
	// duration, then keeps climbing at the same rate until full volume.
	fadeCeiling = 0.8
)

// Controller owns the current stream. All operations are safe to call at
// any time: superseded fade ticks abandon silently.
type Controller struct {
	mu       sync.Mutex
	clk      clock.Clock
	factory  Factory
	current  *activeStream
	playing  bool
	audioErr bool
}

type activeStream struct {
	s      Stream
	level  float64
	paused bool
}

// NewController creates a controller using factory to open streams.
func NewController(clk clock.Clock, factory Factory) *Controller {
	return &Controller{clk: clk, factory: factory}
}

// Play stops any current stream, starts url silent and ramps the volume
// up in the background. It returns once playback has started; callers
// never wait for the fade. Playback failures are recorded on the
// controller (see AudioError) instead of propagating: a round without
// sound still runs.
func (c *Controller) Play(url string, fadeIn time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()

	s, err := c.factory(url)
	if err != nil {
		c.audioErr = true
		return
	}

	s.SetLevel(0)
	if err := s.Start(); err != nil {
		s.Close()
		c.audioErr = true
		return
	}

	as := &activeStream{s: s}
	c.current = as
	c.playing = true
	c.audioErr = false

	if fadeIn <= 0 {
		as.level = 1
		s.SetLevel(1)
		return
	}
	step := fadeCeiling * float64(tickInterval) / float64(fadeIn)
	c.scheduleRampTick(as, step)
}

// scheduleRampTick advances the fade-in by one tick. Each tick re-checks
// that the stream is still current and not paused; a superseded ramp
// terminates silently.
func (c *Controller) scheduleRampTick(as *activeStream, step float64) {
	c.clk.AfterFunc(tickInterval, func() {
		c.mu.Lock()
		if c.current != as || as.paused {
			c.mu.Unlock()
			return
		}
		if as.level < 1 {
			as.level = min(as.level+step, 1)
			as.s.SetLevel(as.level)
		}
		done := as.level >= 1
		c.mu.Unlock()

		if !done {
			c.scheduleRampTick(as, step)
		}
	})
}

// FadeOut ramps the current stream down over d, then pauses and releases
// it. The returned channel closes when the fade finishes, immediately if
// nothing is playing, or as soon as a newer Play supersedes the stream
// mid-fade (without touching the new stream).
func (c *Controller) FadeOut(d time.Duration) <-chan struct{} {
	done := make(chan struct{})

	c.mu.Lock()
	as := c.current
	if as == nil {
		c.mu.Unlock()
		close(done)
		return done
	}

	steps := int(d / tickInterval)
	if steps <= 0 {
		c.stopLocked()
		c.mu.Unlock()
		close(done)
		return done
	}
	step := as.level / float64(steps)
	c.mu.Unlock()

	c.scheduleFadeTick(as, step, done)
	return done
}

func (c *Controller) scheduleFadeTick(as *activeStream, step float64, done chan struct{}) {
	c.clk.AfterFunc(tickInterval, func() {
		c.mu.Lock()
		if c.current != as {
			// Superseded: the new Play already disposed of this
			// stream, nothing left to do here.
			c.mu.Unlock()
			close(done)
			return
		}

		if as.level > step {
			as.level -= step
			as.s.SetLevel(as.level)
			c.mu.Unlock()
			c.scheduleFadeTick(as, step, done)
			return
		}

		as.level = 0
		as.s.SetLevel(0)
		c.stopLocked()
		c.mu.Unlock()
		close(done)
	})
}

// Stop silences and releases the current stream immediately, no fade.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Controller) stopLocked() {
	if c.current != nil {
		c.current.s.Pause()
		c.current.s.Close()
		c.current = nil
	}
	c.playing = false
}

// Pause pauses the current stream without touching its volume ramp.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil || c.current.paused {
		return
	}
	c.current.s.Pause()
	c.current.paused = true
	c.playing = false
}

// Resume restarts a paused stream. A platform refusal is recorded as an
// audio error, never raised.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil || !c.current.paused {
		return
	}
	if err := c.current.s.Resume(); err != nil {
		c.audioErr = true
		return
	}
	c.current.paused = false
	c.playing = true
}

// IsPlaying reports whether a stream is currently audible.
func (c *Controller) IsPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// AudioError reports whether the last playback operation failed.
func (c *Controller) AudioError() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.audioErr
}
