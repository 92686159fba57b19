// Package skills detects ontology skills in resume text.
package skills

import (
	"sort"

	"github.com/drishanroy/resume-analysis-app/internal/ontology"
	"github.com/drishanroy/resume-analysis-app/internal/parsing"
)

// FuzzyThreshold is the partial-ratio score a synonym must exceed to count as present.
const FuzzyThreshold = 90

// Matcher finds ontology synonyms in text by exact token, then fuzzy substring.
type Matcher struct {
	ontology *ontology.Ontology
	fuzzy    FuzzyMatcher
}

// NewMatcher creates a Matcher. A nil fuzzy matcher defaults to Levenshtein.
func NewMatcher(ont *ontology.Ontology, fuzzy FuzzyMatcher) *Matcher {
	if fuzzy == nil {
		fuzzy = Levenshtein{}
	}
	return &Matcher{ontology: ont, fuzzy: fuzzy}
}

// Detect returns the sorted, de-duplicated synonyms found in text.
func (m *Matcher) Detect(text string) []string {
	tokens := parsing.DocumentTokens(text)
	normalizedText := parsing.Normalize(text)

	found := make(map[string]struct{})
	m.ontology.EachSynonym(func(_, synonym string) {
		if _, done := found[synonym]; done {
			return
		}
		key := parsing.Normalize(synonym)
		if key == "" {
			return
		}
		if tokens.Contains(key) || m.fuzzy.PartialRatio(key, normalizedText) > FuzzyThreshold {
			found[synonym] = struct{}{}
		}
	})

	out := make([]string, 0, len(found))
	for s := range found {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
