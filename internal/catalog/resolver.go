package catalog

import "regexp"

// cardIDPattern extracts the 1-5 digit card number at the start of a path
// segment, e.g. "https://example.com/fr/00268" or a bare "268".
var cardIDPattern = regexp.MustCompile(`(?:/|^)(\d{1,5})\b`)

// ResolveCardURL extracts the card id from a scanned game-card URL and
// returns the matching entry. The second return is false when the URL
// carries no id or the id is unknown to this catalog.
func (c *Catalog) ResolveCardURL(url string) (Entry, bool) {
	m := cardIDPattern.FindStringSubmatch(url)
	if m == nil {
		return Entry{}, false
	}
	return c.Get(m[1])
}
