// Package textmatch provides the text normalization and fuzzy guess
// matching used by the guessing game modes. All functions are pure.
package textmatch

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Stop words dropped before comparison. Mixed English/French because the
// catalog carries both; also strips featuring markers left after Simplify.
var stopWords = map[string]bool{
	"the": true, "le": true, "la": true, "les": true,
	"un": true, "une": true, "des": true,
	"and": true, "et": true,
	"feat": true, "ft": true, "featuring": true,
	"vs": true, "with": true, "y": true, "en": true, "de": true, "du": true,
}

var (
	bracketPattern = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)
	featPattern    = regexp.MustCompile(`\b(feat|ft|featuring)\.?\s.*`)
	spacePattern   = regexp.MustCompile(`\s+`)

	// Strips combining marks after NFD decomposition, so "é" folds to "e".
	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
)

// Normalize lower-cases s, folds diacritics, drops everything outside
// [a-z0-9 ], collapses whitespace and trims.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	return strings.TrimSpace(spacePattern.ReplaceAllString(b.String(), " "))
}

// Simplify strips the "junk" music titles carry before normalizing:
// bracketed segments ("(Radio Edit)", "[Live]") and anything from a
// featuring marker onwards.
func Simplify(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = bracketPattern.ReplaceAllString(s, "")
	s = featPattern.ReplaceAllString(s, "")
	return Normalize(s)
}

// RemoveStopWords normalizes s and drops stop-word tokens. If removal
// would empty the result the unfiltered tokens are kept: a target must
// never reduce to nothing (a title can be just "The").
func RemoveStopWords(s string) string {
	words := strings.Split(Normalize(s), " ")
	filtered := words[:0:0]
	for _, w := range words {
		if w != "" && !stopWords[w] {
			filtered = append(filtered, w)
		}
	}
	if len(filtered) == 0 {
		return strings.Join(words, " ")
	}
	return strings.Join(filtered, " ")
}

// Tokenize simplifies and de-stop-words s, returning the remaining tokens.
func Tokenize(s string) []string {
	clean := RemoveStopWords(Simplify(s))
	var out []string
	for _, w := range strings.Split(clean, " ") {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
