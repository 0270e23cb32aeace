// Package catalog loads and serves the static song catalog.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Entry is one catalog song. Immutable after load.
type Entry struct {
	ID     string
	Title  string
	Artist string
	Year   int
	Genre  string
	Lang   string
}

// rawEntry mirrors the on-disk shape, where year may be a number or a
// numeric string and optional fields may be missing.
type rawEntry struct {
	ID     json.Number `json:"id"`
	Title  string      `json:"title"`
	Artist string      `json:"artist"`
	Year   json.Number `json:"year"`
	Genre  string      `json:"genre,omitempty"`
	Lang   string      `json:"lang,omitempty"`
}

// Catalog is an immutable keyed collection of entries.
type Catalog struct {
	byID  map[string]Entry
	order []string // ids in stable load order
}

// Parse decodes a catalog from its JSON form: an object keyed by card id.
// The backing data may contain duplicate song ids under different card keys
// (regional variants); the first occurrence in key order wins. Year is
// normalized to an int here so no later component has to re-parse it.
func Parse(data []byte) (*Catalog, error) {
	var raw map[string]rawEntry
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	c := &Catalog{byID: make(map[string]Entry, len(raw))}
	for _, k := range keys {
		re := raw[k]
		id := re.ID.String()
		if id == "" {
			id = k
		}
		if _, dup := c.byID[id]; dup {
			continue
		}
		year, err := parseYear(re.Year.String())
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", id, err)
		}
		c.byID[id] = Entry{
			ID:     id,
			Title:  re.Title,
			Artist: re.Artist,
			Year:   year,
			Genre:  re.Genre,
			Lang:   re.Lang,
		}
		c.order = append(c.order, id)
	}

	return c, nil
}

// LoadFile reads a catalog from path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Load returns the embedded default catalog.
func Load() (*Catalog, error) {
	return Parse(defaultDB)
}

func parseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	return y, nil
}

// Get returns the entry for id.
func (c *Catalog) Get(id string) (Entry, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// Len returns the number of unique entries.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Entries returns all entries in stable load order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Genres returns the sorted distinct genre list.
func (c *Catalog) Genres() []string {
	seen := make(map[string]bool)
	var out []string
	for _, id := range c.order {
		g := c.byID[id].Genre
		if g != "" && !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	sort.Strings(out)
	return out
}

// ByArtist groups entries by artist name.
func (c *Catalog) ByArtist() map[string][]Entry {
	out := make(map[string][]Entry)
	for _, id := range c.order {
		e := c.byID[id]
		out[e.Artist] = append(out[e.Artist], e)
	}
	return out
}
