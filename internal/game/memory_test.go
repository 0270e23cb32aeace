package game

import (
	"math/rand/v2"
	"testing"
)

func startMemory(t *testing.T, rig *testRig) *Memory {
	t.Helper()
	g := NewMemoryWithRand(rig.deps, rand.IntN)
	g.Start()
	waitFor(t, "board to build", func() bool {
		return g.Snapshot().Phase == PhasePlaying
	})
	return g
}

// findCard returns the index of the first card matching pred, or -1.
func findCard(snap MemorySnapshot, pred func(Card) bool) int {
	for i, c := range snap.Cards {
		if pred(c) {
			return i
		}
	}
	return -1
}

func TestMemoryBoardShape(t *testing.T) {
	rig := newTestRig(t)
	g := startMemory(t, rig)
	snap := g.Snapshot()

	if len(snap.Cards) != 2*memoryPairs {
		t.Fatalf("board has %d cards, want %d", len(snap.Cards), 2*memoryPairs)
	}

	artists := map[string]bool{}
	perPair := map[int][]CardKind{}
	for _, c := range snap.Cards {
		perPair[c.PairID] = append(perPair[c.PairID], c.Kind)
		if c.Kind == CardArtist {
			artists[c.Artist] = true
		}
		if c.Flipped || c.Matched {
			t.Error("fresh board has a face-up card")
		}
		if c.Color == "" {
			t.Error("card has no pair color")
		}
	}
	if len(perPair) != memoryPairs {
		t.Errorf("board has %d pair ids, want %d", len(perPair), memoryPairs)
	}
	for id, kinds := range perPair {
		if len(kinds) != 2 || kinds[0] == kinds[1] {
			t.Errorf("pair %d is not one artist card plus one track card", id)
		}
	}
	if len(artists) != memoryPairs {
		t.Errorf("board uses %d distinct artists, want %d", len(artists), memoryPairs)
	}
}

func TestMemoryFlipPlaysTrackCard(t *testing.T) {
	rig := newTestRig(t)
	g := startMemory(t, rig)

	idx := findCard(g.Snapshot(), func(c Card) bool { return c.Kind == CardTrack })
	g.Flip(idx)

	if !g.Snapshot().Cards[idx].Flipped {
		t.Error("card did not flip")
	}
	if !rig.deps.Audio.IsPlaying() {
		t.Error("track card flip did not start playback")
	}
}

func TestMemoryMismatchUnflips(t *testing.T) {
	rig := newTestRig(t)
	g := startMemory(t, rig)
	snap := g.Snapshot()

	// Two artist cards of different pairs can never match.
	i := findCard(snap, func(c Card) bool { return c.Kind == CardArtist })
	j := findCard(snap, func(c Card) bool {
		return c.Kind == CardArtist && c.PairID != snap.Cards[i].PairID
	})

	g.Flip(i)
	g.Flip(j)

	snap = g.Snapshot()
	if !snap.Locked {
		t.Error("board not locked after a mismatch")
	}
	if snap.Moves != 1 {
		t.Errorf("moves = %d, want 1", snap.Moves)
	}

	// A flip while locked is ignored.
	k := findCard(snap, func(c Card) bool { return !c.Flipped })
	g.Flip(k)
	if g.Snapshot().Cards[k].Flipped {
		t.Error("flip accepted while board locked")
	}

	rig.clk.Advance(memoryUnflipDelay)
	snap = g.Snapshot()
	if snap.Cards[i].Flipped || snap.Cards[j].Flipped {
		t.Error("mismatched cards still face up after the delay")
	}
	if snap.Locked {
		t.Error("board still locked after unflip")
	}
}

func TestMemoryMatchLocksPair(t *testing.T) {
	rig := newTestRig(t)
	g := startMemory(t, rig)
	snap := g.Snapshot()

	i := findCard(snap, func(c Card) bool { return c.Kind == CardArtist })
	j := findCard(snap, func(c Card) bool {
		return c.Kind == CardTrack && c.PairID == snap.Cards[i].PairID
	})

	g.Flip(i)
	g.Flip(j)

	snap = g.Snapshot()
	if !snap.Cards[i].Matched || !snap.Cards[j].Matched {
		t.Error("matched pair not marked")
	}
	if snap.Matched != 1 {
		t.Errorf("matched = %d, want 1", snap.Matched)
	}
	if snap.Locked {
		t.Error("board locked after a match")
	}
	if snap.Moves != 1 {
		t.Errorf("moves = %d, want 1", snap.Moves)
	}
}

func TestMemoryWin(t *testing.T) {
	rig := newTestRig(t)
	g := startMemory(t, rig)

	for pair := range memoryPairs {
		snap := g.Snapshot()
		i := findCard(snap, func(c Card) bool {
			return c.PairID == pair && c.Kind == CardArtist
		})
		j := findCard(snap, func(c Card) bool {
			return c.PairID == pair && c.Kind == CardTrack
		})
		g.Flip(i)
		g.Flip(j)
	}

	snap := g.Snapshot()
	if snap.Phase != PhaseWon {
		t.Errorf("phase = %v, want Won", snap.Phase)
	}
	if snap.Matched != memoryPairs {
		t.Errorf("matched = %d, want %d", snap.Matched, memoryPairs)
	}
	if snap.Moves != memoryPairs {
		t.Errorf("moves = %d, want %d", snap.Moves, memoryPairs)
	}
	if rig.deps.Audio.IsPlaying() {
		t.Error("audio still playing after the win")
	}

	// Flips on a finished board are ignored.
	g.Flip(0)
	if g.Snapshot().Phase != PhaseWon {
		t.Error("flip after win changed phase")
	}
}

func TestMemoryBoardBuildFailure(t *testing.T) {
	rig := newTestRig(t)
	rig.resolver.setErr(ErrBoardShort)
	g := NewMemory(rig.deps)
	g.Start()

	waitFor(t, "build error", func() bool {
		s := g.Snapshot()
		return s.Phase == PhaseIdle && s.Err != ""
	})
}

func TestMemoryResolveSkipsFailures(t *testing.T) {
	// The test catalog has seven distinct artists, so one failed
	// resolution still leaves a full board.
	rig := newTestRig(t)
	rig.resolver.failFirst(1)

	g := NewMemory(rig.deps)
	g.Start()
	waitFor(t, "board despite one failure", func() bool {
		return g.Snapshot().Phase == PhasePlaying
	})
}
