package categorize

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// Normalize lowercases s, turns punctuation into spaces, drops long digit runs
// (card numbers, store numbers) and collapses whitespace.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	fields := strings.Fields(b.String())
	kept := fields[:0]
	for _, f := range fields {
		if len(f) > 3 && isDigits(f) {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Similarity returns 1 - levenshtein(a, b)/max(len) over runes. Empty inputs score 0.
func Similarity(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 || lb == 0 {
		return 0
	}
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}

// BestWindowSimilarity compares pattern against every run of consecutive tokens in text
// with one token fewer, equal or one more than the pattern and returns the best score.
// Both inputs are expected to be normalized.
func BestWindowSimilarity(pattern, text string) float64 {
	best := Similarity(pattern, text)
	pTokens := strings.Fields(pattern)
	tTokens := strings.Fields(text)
	if len(pTokens) == 0 || len(tTokens) == 0 {
		return best
	}

	for size := len(pTokens) - 1; size <= len(pTokens)+1; size++ {
		if size < 1 || size > len(tTokens) {
			continue
		}
		for start := 0; start+size <= len(tTokens); start++ {
			window := strings.Join(tTokens[start:start+size], " ")
			if s := Similarity(pattern, window); s > best {
				best = s
			}
		}
	}
	return best
}

// TokenOverlap is the Jaccard index of the token sets of a and b.
func TokenOverlap(a, b string) float64 {
	ta := strings.Fields(a)
	tb := strings.Fields(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	set := make(map[string]bool, len(ta))
	for _, t := range ta {
		set[t] = true
	}
	inter := 0
	union := len(set)
	seen := make(map[string]bool, len(tb))
	for _, t := range tb {
		if seen[t] {
			continue
		}
		seen[t] = true
		if set[t] {
			inter++
		} else {
			union++
		}
	}
	return float64(inter) / float64(union)
}
