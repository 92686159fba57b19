// Package parsing turns raw resume text into normalized tokens, named sections and bullets.
package parsing

import (
	"regexp"
	"strings"
)

// nonWordPattern splits text on runs of characters that are not letters, digits or underscore.
var nonWordPattern = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// Normalize maps s to its canonical token form: lowercase, every character
// outside [a-z0-9+.#] replaced by a space, surrounding spaces trimmed.
// Skill matching and job description comparison both go through this function.
func Normalize(s string) string {
	lower := strings.ToLower(s)
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == '+', r == '.', r == '#':
			return r
		default:
			return ' '
		}
	}, lower)
	return strings.TrimSpace(mapped)
}

// TokenSet is a set of normalized tokens.
type TokenSet map[string]struct{}

// Contains reports whether token is in the set.
func (ts TokenSet) Contains(token string) bool {
	_, ok := ts[token]
	return ok
}

// DocumentTokens splits lowercased text on non-word runs and normalizes each piece.
func DocumentTokens(text string) TokenSet {
	pieces := nonWordPattern.Split(strings.ToLower(text), -1)
	tokens := make(TokenSet, len(pieces))
	for _, p := range pieces {
		tokens[Normalize(p)] = struct{}{}
	}
	return tokens
}

// WhitespaceTokens splits text on whitespace and normalizes each field.
func WhitespaceTokens(text string) TokenSet {
	fields := strings.Fields(text)
	tokens := make(TokenSet, len(fields))
	for _, f := range fields {
		tokens[Normalize(f)] = struct{}{}
	}
	return tokens
}
