// Package selector draws the next candidate track from the catalog,
// honoring filters and the recently-played history.
package selector

import (
	"errors"
	"math/rand/v2"

	"github.com/llehouerou/mixera/internal/catalog"
	"github.com/llehouerou/mixera/internal/history"
)

// ErrEmptyFilter means the current filters admit zero candidates. This is
// a configuration problem, not a transient one: callers surface it to the
// user instead of retrying.
var ErrEmptyFilter = errors.New("no track matches the current filters")

// Origin narrows candidates by language of origin.
type Origin string

const (
	OriginAll           Origin = "all"
	OriginDomestic      Origin = "domestic"
	OriginInternational Origin = "international"
)

// domesticLang is the lang tag treated as domestic. Entries without a
// lang tag count as international.
const domesticLang = "fr"

// Filters narrow the candidate pool before the draw.
type Filters struct {
	YearMin int
	YearMax int
	Origin  Origin
	Genres  []string // empty = all genres
}

// Matches reports whether e passes the filters.
func (f Filters) Matches(e catalog.Entry) bool {
	if f.YearMin != 0 && e.Year < f.YearMin {
		return false
	}
	if f.YearMax != 0 && e.Year > f.YearMax {
		return false
	}

	switch f.Origin {
	case OriginDomestic:
		if e.Lang != domesticLang {
			return false
		}
	case OriginInternational:
		if e.Lang == domesticLang {
			return false
		}
	}

	if len(f.Genres) > 0 && e.Genre != "" {
		found := false
		for _, g := range f.Genres {
			if g == e.Genre {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// Selector draws candidates. The random source is injectable for tests.
type Selector struct {
	intn func(n int) int
}

// New creates a selector using the default random source.
func New() *Selector {
	return &Selector{intn: rand.IntN}
}

// NewWithRand creates a selector with a custom random source.
func NewWithRand(intn func(n int) int) *Selector {
	return &Selector{intn: intn}
}

// Select narrows the catalog to the filtered candidate pool minus the
// history, draws one entry uniformly and records it in the history.
//
// When the history already covers every candidate the full candidate set
// is recycled for this draw only; the history itself is not cleared. With
// a one-member filtered pool this can re-serve the just-played track,
// which matches the established game behavior.
func (s *Selector) Select(cat *catalog.Catalog, hist *history.Queue, f Filters) (catalog.Entry, error) {
	var candidates []catalog.Entry
	for _, e := range cat.Entries() {
		if f.Matches(e) {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return catalog.Entry{}, ErrEmptyFilter
	}

	pool := candidates[:0:0]
	for _, e := range candidates {
		if !hist.Contains(e.ID) {
			pool = append(pool, e)
		}
	}
	if len(pool) == 0 {
		pool = candidates
	}

	chosen := pool[s.intn(len(pool))]
	hist.Add(chosen.ID)
	return chosen, nil
}
