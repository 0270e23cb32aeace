package audio

import (
	"errors"
	"testing"
	"time"

	"github.com/llehouerou/mixera/internal/clock"
)

func newTestController() (*Controller, *clock.Manual, func() []*MockStream) {
	clk := clock.NewManual()
	factory, created := NewMockFactory()
	return NewController(clk, factory), clk, created
}

func TestPlay_StartsSilentAndRampsUp(t *testing.T) {
	c, clk, created := newTestController()

	c.Play("http://cdn/a.mp3", time.Second)

	streams := created()
	if len(streams) != 1 {
		t.Fatalf("streams created = %d, want 1", len(streams))
	}
	s := streams[0]

	if !s.Started {
		t.Fatal("Play() should start the stream")
	}
	if s.Levels[0] != 0 {
		t.Errorf("first level = %v, want 0 (silent start)", s.Levels[0])
	}
	if !c.IsPlaying() {
		t.Error("IsPlaying() = false after Play")
	}

	// Half the fade: roughly half the ceiling.
	clk.Advance(500 * time.Millisecond)
	if lvl := s.LastLevel(); lvl < 0.3 || lvl > 0.5 {
		t.Errorf("level after 500ms = %v, want ~0.4", lvl)
	}

	// The ramp keeps going past the ceiling to full volume.
	clk.Advance(2 * time.Second)
	if lvl := s.LastLevel(); lvl != 1 {
		t.Errorf("final level = %v, want 1", lvl)
	}
}

func TestPlay_SupersedesPreviousStream(t *testing.T) {
	c, clk, created := newTestController()

	c.Play("http://cdn/a.mp3", time.Second)
	clk.Advance(200 * time.Millisecond) // A's fade-in is mid-flight
	c.Play("http://cdn/b.mp3", time.Second)

	streams := created()
	if len(streams) != 2 {
		t.Fatalf("streams created = %d, want 2", len(streams))
	}
	a, b := streams[0], streams[1]

	if !a.Closed || !a.Paused {
		t.Error("starting B must stop and release A")
	}

	// A's abandoned ramp must not touch A again.
	aLevels := a.LevelCount()
	clk.Advance(2 * time.Second)
	if a.LevelCount() != aLevels {
		t.Error("superseded stream kept ramping")
	}
	if b.LastLevel() != 1 {
		t.Errorf("B level = %v, want 1", b.LastLevel())
	}
}

func TestFadeOut_RampsDownThenReleases(t *testing.T) {
	c, clk, created := newTestController()

	c.Play("http://cdn/a.mp3", 100*time.Millisecond)
	clk.Advance(time.Second) // fade-in complete

	done := c.FadeOut(500 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("FadeOut resolved before the fade ran")
	default:
	}

	clk.Advance(time.Second)
	select {
	case <-done:
	default:
		t.Fatal("FadeOut did not resolve")
	}

	s := created()[0]
	if s.LastLevel() != 0 {
		t.Errorf("final level = %v, want 0", s.LastLevel())
	}
	if !s.Paused || !s.Closed {
		t.Error("completed fade must pause and release the stream")
	}
	if c.IsPlaying() {
		t.Error("IsPlaying() = true after fade-out")
	}
}

func TestFadeOut_NothingPlayingResolvesImmediately(t *testing.T) {
	c, _, _ := newTestController()

	select {
	case <-c.FadeOut(time.Second):
	default:
		t.Error("FadeOut with no stream should resolve immediately")
	}
}

func TestFadeOut_AbandonedWhenSuperseded(t *testing.T) {
	c, clk, created := newTestController()

	c.Play("http://cdn/a.mp3", 100*time.Millisecond)
	clk.Advance(time.Second)

	done := c.FadeOut(2 * time.Second)
	clk.Advance(200 * time.Millisecond) // fade under way

	c.Play("http://cdn/b.mp3", 100*time.Millisecond)
	clk.Advance(time.Second)

	// The abandoned fade resolves without touching B.
	select {
	case <-done:
	default:
		t.Fatal("superseded fade should still resolve")
	}

	b := created()[1]
	if b.LastLevel() != 1 {
		t.Errorf("B level = %v, want 1 (old fade must not drag it down)", b.LastLevel())
	}
}

func TestPauseResume(t *testing.T) {
	c, clk, _ := newTestController()

	c.Play("http://cdn/a.mp3", 100*time.Millisecond)
	clk.Advance(time.Second)

	c.Pause()
	if c.IsPlaying() {
		t.Error("IsPlaying() = true after Pause")
	}

	c.Resume()
	if !c.IsPlaying() {
		t.Error("IsPlaying() = false after Resume")
	}
}

func TestResume_FailureSetsFlag(t *testing.T) {
	clk := clock.NewManual()
	s := &MockStream{ResumeErr: errors.New("autoplay rejected")}
	c := NewController(clk, func(string) (Stream, error) { return s, nil })

	c.Play("http://cdn/a.mp3", 0)
	c.Pause()
	c.Resume()

	if !c.AudioError() {
		t.Error("Resume failure should set the audio error flag")
	}
	if c.IsPlaying() {
		t.Error("failed resume must not report playing")
	}
}

func TestPlay_FactoryErrorSetsFlagAndStaysQuiet(t *testing.T) {
	clk := clock.NewManual()
	c := NewController(clk, func(string) (Stream, error) {
		return nil, errors.New("decode failure")
	})

	c.Play("http://cdn/broken.mp3", time.Second)

	if !c.AudioError() {
		t.Error("factory failure should set the audio error flag")
	}
	if c.IsPlaying() {
		t.Error("failed play must not report playing")
	}
	// A later successful play clears the flag.
	factory, _ := NewMockFactory()
	c.factory = factory
	c.Play("http://cdn/ok.mp3", 0)
	if c.AudioError() {
		t.Error("successful play should clear the audio error flag")
	}
}

func TestStop_Immediate(t *testing.T) {
	c, clk, created := newTestController()

	c.Play("http://cdn/a.mp3", time.Second)
	clk.Advance(100 * time.Millisecond)
	c.Stop()

	s := created()[0]
	if !s.Paused || !s.Closed {
		t.Error("Stop() must pause and release the stream")
	}
	if c.IsPlaying() {
		t.Error("IsPlaying() = true after Stop")
	}

	// Leftover ramp ticks are no-ops.
	levels := s.LevelCount()
	clk.Advance(2 * time.Second)
	if s.LevelCount() != levels {
		t.Error("ramp kept running after Stop")
	}
}
