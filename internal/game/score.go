package game

import (
	"strconv"

	"github.com/llehouerou/mixera/internal/store"
)

// scoreboard tracks the cumulative score for a mode and its all-time
// best. The best is persisted on every increase and survives resets.
type scoreboard struct {
	kv      store.KV
	bestKey string
	total   int
	best    int
}

func loadScoreboard(kv store.KV, bestKey string) scoreboard {
	sb := scoreboard{kv: kv, bestKey: bestKey}
	if raw, ok := kv.Get(bestKey); ok {
		if v, err := strconv.Atoi(raw); err == nil {
			sb.best = v
		}
	}
	return sb
}

// add credits points and persists a new best when the cumulative total
// passes it. The best never decreases.
func (sb *scoreboard) add(points int) {
	sb.total += points
	if sb.total > sb.best {
		sb.best = sb.total
		sb.kv.Set(sb.bestKey, strconv.Itoa(sb.best))
	}
}

// reset zeroes the running total. The best is untouched.
func (sb *scoreboard) reset() {
	sb.total = 0
}
