package game

import (
	"testing"
)

func TestBullseyePoints(t *testing.T) {
	tests := []struct {
		guess, year, want int
	}{
		{1991, 1991, 100},
		{1990, 1991, 50},
		{1992, 1991, 50},
		{1988, 1991, 20},
		{1994, 1991, 20},
		{1987, 1991, 0},
		{2000, 1991, 0},
	}
	for _, tt := range tests {
		if got := bullseyePoints(tt.guess, tt.year); got != tt.want {
			t.Errorf("bullseyePoints(%d, %d) = %d, want %d", tt.guess, tt.year, got, tt.want)
		}
	}
}

func startBullseye(t *testing.T, rig *testRig) *Bullseye {
	t.Helper()
	g := NewBullseye(rig.deps)
	g.Start()
	waitFor(t, "round to start", func() bool {
		return g.Snapshot().Phase == PhasePlaying
	})
	return g
}

func trackYear(g *Bullseye) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.track.Year
}

func TestBullseyeExactGuess(t *testing.T) {
	rig := newTestRig(t)
	g := startBullseye(t, rig)

	g.SubmitYear(trackYear(g))
	snap := g.Snapshot()
	if snap.Phase != PhaseScored {
		t.Errorf("phase = %v, want Scored", snap.Phase)
	}
	if snap.Points != 100 || snap.Total != 100 {
		t.Errorf("points=%d total=%d, want 100/100", snap.Points, snap.Total)
	}
	if snap.Best != 100 {
		t.Errorf("best = %d, want 100", snap.Best)
	}
	if raw, ok := rig.kv.Get(bullseyeBestKey); !ok || raw != "100" {
		t.Errorf("persisted best = %q (ok=%v), want \"100\"", raw, ok)
	}
	if snap.Guess == nil || *snap.Guess != trackYear(g) {
		t.Error("snapshot does not carry the guess")
	}

	rig.clk.Advance(bullseyeDwell + bullseyeFade + 2*progressTick)
	waitFor(t, "next round", func() bool {
		s := g.Snapshot()
		return s.Phase == PhasePlaying && s.Points == 0
	})
	if got := g.Snapshot().Total; got != 100 {
		t.Errorf("total after advance = %d, want 100", got)
	}
}

func TestBullseyeTimeoutScoresNothing(t *testing.T) {
	rig := newTestRig(t)
	g := startBullseye(t, rig)

	rig.clk.Advance(bullseyeRoundTime + progressTick)
	snap := g.Snapshot()
	if snap.Phase != PhaseScored {
		t.Errorf("phase = %v, want Scored", snap.Phase)
	}
	if snap.Guess != nil {
		t.Errorf("timeout recorded a guess %d", *snap.Guess)
	}
	if snap.Total != 0 || snap.Points != 0 {
		t.Errorf("timeout scored points=%d total=%d", snap.Points, snap.Total)
	}
	if _, ok := rig.kv.Get(bullseyeBestKey); ok {
		t.Error("timeout persisted a best score")
	}
}

func TestBullseyeResetKeepsBest(t *testing.T) {
	rig := newTestRig(t)
	g := startBullseye(t, rig)
	g.SubmitYear(trackYear(g))

	g.Reset()
	snap := g.Snapshot()
	if snap.Total != 0 {
		t.Errorf("total after reset = %d, want 0", snap.Total)
	}
	if snap.Best != 100 {
		t.Errorf("best after reset = %d, want 100", snap.Best)
	}

	// A fresh mode instance restores the best from the store.
	g2 := NewBullseye(rig.deps)
	if got := g2.Snapshot().Best; got != 100 {
		t.Errorf("restored best = %d, want 100", got)
	}
}

func TestBullseyeBestOnlyRises(t *testing.T) {
	rig := newTestRig(t)
	rig.kv.Set(bullseyeBestKey, "500")
	g := startBullseye(t, rig)

	g.SubmitYear(trackYear(g))
	snap := g.Snapshot()
	if snap.Best != 500 {
		t.Errorf("best = %d, want 500 untouched", snap.Best)
	}
	if raw, _ := rig.kv.Get(bullseyeBestKey); raw != "500" {
		t.Errorf("persisted best = %q, want \"500\"", raw)
	}
}

func TestBullseyeSecondGuessIgnored(t *testing.T) {
	rig := newTestRig(t)
	g := startBullseye(t, rig)
	year := trackYear(g)

	g.SubmitYear(year)
	g.SubmitYear(year)
	if got := g.Snapshot().Total; got != 100 {
		t.Errorf("total after double submit = %d, want 100", got)
	}
}

func TestBullseyeHidesYearWhilePlaying(t *testing.T) {
	rig := newTestRig(t)
	g := startBullseye(t, rig)

	if got := g.Snapshot().Track.Year; got != 0 {
		t.Errorf("playing snapshot exposes year %d", got)
	}
	g.SubmitYear(1900)
	if got := g.Snapshot().Track.Year; got == 0 {
		t.Error("scored snapshot still hides the year")
	}
}
