// Package history tracks recently played entry ids per game mode so the
// selector avoids serving the same track twice in a short window.
package history

import (
	"slices"

	"github.com/llehouerou/mixera/internal/store"
)

// Queue is a capacity-bounded FIFO of entry ids, persisted on every
// mutation. Oldest ids are evicted first.
type Queue struct {
	kv      store.KV
	key     string
	ids     []string
	maxSize int
}

// Load restores the queue stored under key, or starts empty when nothing
// usable is stored.
func Load(kv store.KV, key string, maxSize int) *Queue {
	q := &Queue{kv: kv, key: key, maxSize: maxSize}
	store.GetJSON(kv, key, &q.ids)
	if len(q.ids) > maxSize {
		q.ids = q.ids[len(q.ids)-maxSize:]
	}
	return q
}

// Contains reports whether id was recently played.
func (q *Queue) Contains(id string) bool {
	return slices.Contains(q.ids, id)
}

// Add appends id if absent, evicts the oldest entries past capacity and
// persists immediately.
func (q *Queue) Add(id string) {
	if q.Contains(id) {
		return
	}
	q.ids = append(q.ids, id)
	if len(q.ids) > q.maxSize {
		q.ids = q.ids[len(q.ids)-q.maxSize:]
	}
	store.SetJSON(q.kv, q.key, q.ids)
}

// Len returns the number of remembered ids.
func (q *Queue) Len() int {
	return len(q.ids)
}

// IDs returns a copy of the remembered ids, oldest first.
func (q *Queue) IDs() []string {
	return slices.Clone(q.ids)
}
