package textmatch

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// Verdict classifies a guess against a target title.
type Verdict int

const (
	VerdictNone Verdict = iota
	VerdictClose
	VerdictExact
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case VerdictExact:
		return "exact"
	case VerdictClose:
		return "close"
	default:
		return "none"
	}
}

// CheckGuess classifies a free-text guess against a target song title.
// Rules are tried in order, first hit wins:
//
//  1. exact equality after cleanup
//  2. guess contains the whole target (artist + extra words)
//  3. target contains the guess (partial hint, "close")
//  4. whole-string edit distance within a length-scaled threshold
//  5. sliding word window for guesses longer than the target
//  6. order-independent token match ("feeling i gotta")
func CheckGuess(input, target string) Verdict {
	if input == "" || target == "" {
		return VerdictNone
	}

	cleanInput := RemoveStopWords(input)
	workingTarget := RemoveStopWords(Simplify(target))
	if workingTarget == "" {
		// Title reduced to nothing (e.g. all brackets), compare raw.
		workingTarget = Normalize(target)
	}

	if cleanInput == workingTarget {
		return VerdictExact
	}

	if strings.Contains(cleanInput, workingTarget) && len(workingTarget) >= 3 {
		return VerdictExact
	}

	if strings.Contains(workingTarget, cleanInput) && len(cleanInput) >= 4 {
		return VerdictClose
	}

	// Typo tolerance scales with target length.
	threshold := len(workingTarget)/4 + 1
	if matchr.Levenshtein(cleanInput, workingTarget) <= threshold {
		return VerdictExact
	}

	inputWords := strings.Split(cleanInput, " ")
	targetWords := strings.Split(workingTarget, " ")

	// Guess has extra leading/trailing words: slide a window of the
	// target's word count across the guess ("it's the same as it was"
	// vs "as it was").
	if len(inputWords) > len(targetWords) {
		size := len(targetWords)
		for i := 0; i+size <= len(inputWords); i++ {
			window := strings.Join(inputWords[i:i+size], " ")
			if matchr.Levenshtein(window, workingTarget) <= threshold {
				return VerdictExact
			}
		}
	}

	// Order-independent check on significant target tokens.
	var significant []string
	for _, w := range targetWords {
		if len(w) >= 2 {
			significant = append(significant, w)
		}
	}
	if len(significant) >= 2 {
		found := 0
		for _, tw := range significant {
			if containsFuzzyWord(inputWords, tw) {
				found++
			}
		}
		if found == len(significant) {
			return VerdictExact
		}
		if float64(found)/float64(len(significant)) > 0.66 {
			return VerdictClose
		}
	}

	return VerdictNone
}

// containsFuzzyWord reports whether word appears in words, allowing a
// single-character typo.
func containsFuzzyWord(words []string, word string) bool {
	for _, w := range words {
		if w == word || matchr.Levenshtein(w, word) <= 1 {
			return true
		}
	}
	return false
}

// CheckProgress returns the indices of targetTokens already satisfied by
// the current input. Meant for reveal-as-you-type: it holds no state and
// is re-evaluated from scratch on every keystroke.
func CheckProgress(input string, targetTokens []string) []int {
	if input == "" || len(targetTokens) == 0 {
		return nil
	}

	var inputWords []string
	for _, w := range strings.Split(Normalize(input), " ") {
		if w != "" {
			inputWords = append(inputWords, w)
		}
	}

	var found []int
	for i, tok := range targetTokens {
		if progressTokenMatch(inputWords, tok) {
			found = append(found, i)
		}
	}
	return found
}

func progressTokenMatch(words []string, tok string) bool {
	for _, w := range words {
		if w == tok {
			return true
		}
		// Typos only tolerated on longer tokens, one error per four
		// characters, never more than two.
		if len(tok) >= 3 {
			threshold := min(len(tok)/4+1, 2)
			if matchr.Levenshtein(w, tok) <= threshold {
				return true
			}
		}
	}
	return false
}
