package game

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/llehouerou/mixera/internal/deezer"
	"github.com/llehouerou/mixera/internal/errmsg"
)

const (
	memoryHistoryKey = "memory_history"
	memoryHistoryCap = 50

	memoryPairs       = 6
	memoryUnflipDelay = 1200 * time.Millisecond
	memoryUnflipFade  = 500 * time.Millisecond
	memoryTrackDwell  = 10 * time.Second
	memoryTrackFade   = 2 * time.Second
	memoryCardFadeIn  = 500 * time.Millisecond
)

// pairColors cycles over matched pairs so the board stays tellable apart
// once cards lock face up.
var pairColors = []string{
	"#e74c3c",
	"#3498db",
	"#2ecc71",
	"#9b59b6",
	"#f1c40f",
	"#e67e22",
	"#1abc9c",
	"#e91e63",
}

// ErrBoardShort means fewer pairs than a full board could be resolved.
var ErrBoardShort = errors.New("not enough playable tracks for a board")

// CardKind distinguishes the two halves of a pair.
type CardKind int

const (
	CardArtist CardKind = iota
	CardTrack
)

// Card is one tile on the memory board. Artist cards carry the artist
// name, track cards carry the full resolved track; the two halves of a
// pair share PairID and Color.
type Card struct {
	Kind    CardKind
	PairID  int
	Color   string
	Artist  string
	Track   deezer.Track
	Flipped bool
	Matched bool
}

// Memory is the pairing mode: six artist cards and six track cards,
// shuffled face down. Flipping a track card plays its preview; matching
// an artist with their track locks the pair. All six pairs wins.
type Memory struct {
	engine

	intn func(int) int

	phase   Phase
	cards   []Card
	flipped []int // indices of the currently face-up unmatched cards
	locked  bool
	moves   int
	matched int
	errMsg  string
}

func NewMemory(d Deps) *Memory {
	return NewMemoryWithRand(d, rand.IntN)
}

func NewMemoryWithRand(d Deps, intn func(int) int) *Memory {
	return &Memory{
		engine: newEngine(d, memoryHistoryKey, memoryHistoryCap),
		intn:   intn,
	}
}

// Start builds a fresh board. Pair tracks come from distinct artists so
// an artist card never has two plausible partners.
func (g *Memory) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.bumpLocked()

	g.phase = PhaseLoading
	g.cards = nil
	g.flipped = nil
	g.locked = false
	g.moves = 0
	g.matched = 0
	g.errMsg = ""
	g.audio.Stop()

	go func() {
		tracks, err := g.resolvePairs(context.Background())

		g.mu.Lock()
		defer g.mu.Unlock()
		if id != g.session {
			return
		}
		if err != nil {
			g.phase = PhaseIdle
			g.errMsg = errmsg.Format(errmsg.OpBoardBuild, err)
			return
		}
		g.cards = g.buildBoard(tracks)
		g.phase = PhasePlaying
	}()
}

// resolvePairs walks a shuffled artist list, resolving one random track
// per artist, until a full board's worth succeed or the catalog runs
// out.
func (g *Memory) resolvePairs(ctx context.Context) ([]deezer.Track, error) {
	g.mu.Lock()
	byArtist := g.cat.ByArtist()
	g.mu.Unlock()

	artists := make([]string, 0, len(byArtist))
	for a := range byArtist {
		artists = append(artists, a)
	}
	g.shuffle(artists)

	tracks := make([]deezer.Track, 0, memoryPairs)
	for _, artist := range artists {
		if len(tracks) == memoryPairs {
			break
		}
		entries := byArtist[artist]
		entry := entries[g.intn(len(entries))]
		track, err := g.resolver.Resolve(ctx, entry)
		if err != nil {
			continue
		}
		tracks = append(tracks, track)
	}
	if len(tracks) < memoryPairs {
		return nil, ErrBoardShort
	}
	return tracks, nil
}

func (g *Memory) buildBoard(tracks []deezer.Track) []Card {
	deck := make([]Card, 0, 2*len(tracks))
	for i, track := range tracks {
		color := pairColors[i%len(pairColors)]
		deck = append(deck,
			Card{Kind: CardArtist, PairID: i, Color: color, Artist: track.Artist},
			Card{Kind: CardTrack, PairID: i, Color: color, Artist: track.Artist, Track: track},
		)
	}
	g.shuffleCards(deck)
	return deck
}

func (g *Memory) shuffle(s []string) {
	for i := len(s) - 1; i > 0; i-- {
		j := g.intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

func (g *Memory) shuffleCards(s []Card) {
	for i := len(s) - 1; i > 0; i-- {
		j := g.intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Flip turns the card at index face up. Ignored while the board is
// locked, outside an active game, or on an already face-up card.
// Flipping a track card starts its preview; the second flip of a turn
// resolves the pair.
func (g *Memory) Flip(index int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhasePlaying || g.locked {
		return
	}
	if index < 0 || index >= len(g.cards) {
		return
	}
	card := &g.cards[index]
	if card.Flipped || card.Matched {
		return
	}

	card.Flipped = true
	g.flipped = append(g.flipped, index)

	if card.Kind == CardTrack && card.Track.Preview != "" {
		g.audio.Play(card.Track.Preview, memoryCardFadeIn)
	}

	if len(g.flipped) == 2 {
		g.resolveTurnLocked()
	}
}

func (g *Memory) resolveTurnLocked() {
	g.locked = true
	i, j := g.flipped[0], g.flipped[1]
	g.moves++

	if g.cards[i].PairID == g.cards[j].PairID {
		g.matchLocked(i, j)
	} else {
		g.missLocked(i, j)
	}
}

func (g *Memory) matchLocked(i, j int) {
	g.cards[i].Matched = true
	g.cards[j].Matched = true
	g.matched++
	g.flipped = nil
	g.locked = false

	if g.matched == memoryPairs {
		g.phase = PhaseWon
		g.audio.Stop()
		return
	}

	// Let the matched track play on for a while, then fade. A new flip
	// in the meantime supersedes the stream and the fade lands on
	// nothing.
	g.schedule(g.session, memoryTrackDwell, func() {
		g.audio.FadeOut(memoryTrackFade)
	})
}

func (g *Memory) missLocked(i, j int) {
	g.schedule(g.session, memoryUnflipDelay, func() {
		g.cards[i].Flipped = false
		g.cards[j].Flipped = false
		g.flipped = nil
		g.locked = false
		g.audio.FadeOut(memoryUnflipFade)
	})
}

// Reset abandons the board.
func (g *Memory) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.bumpLocked()
	g.audio.Stop()
	g.phase = PhaseIdle
	g.cards = nil
	g.flipped = nil
	g.locked = false
	g.moves = 0
	g.matched = 0
	g.errMsg = ""
}

// MemorySnapshot is the read-only view the UI renders. Face-down cards
// keep their contents: the widget decides what to draw from Flipped and
// Matched.
type MemorySnapshot struct {
	Phase   Phase
	Cards   []Card
	Moves   int
	Matched int
	Locked  bool
	Err     string
}

func (g *Memory) Snapshot() MemorySnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	return MemorySnapshot{
		Phase:   g.phase,
		Cards:   append([]Card(nil), g.cards...),
		Moves:   g.moves,
		Matched: g.matched,
		Locked:  g.locked,
		Err:     g.errMsg,
	}
}
