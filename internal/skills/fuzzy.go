package skills

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// FuzzyMatcher scores how well needle appears inside haystack, 0..100.
type FuzzyMatcher interface {
	PartialRatio(needle, haystack string) int
}

// Levenshtein slides the shorter string over every equal-length window of the
// longer one and keeps the best edit-distance similarity.
type Levenshtein struct{}

// PartialRatio implements FuzzyMatcher.
func (Levenshtein) PartialRatio(needle, haystack string) int {
	if needle == "" || haystack == "" {
		return 0
	}

	short, long := needle, haystack
	n, m := utf8.RuneCountInString(short), utf8.RuneCountInString(long)
	if n > m {
		short, long = long, short
		n, m = m, n
	}
	if strings.Contains(long, short) {
		return 100
	}

	// Byte offset of every rune start in long, so windows are substrings
	// rather than fresh allocations.
	offsets := make([]int, 0, m+1)
	for i := range long {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(long))

	best := 0
	for i := 0; i+n <= m; i++ {
		distance := levenshtein.ComputeDistance(short, long[offsets[i]:offsets[i+n]])
		score := int(math.Round(100 * (1 - float64(distance)/float64(n))))
		if score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}
	return best
}
