package parsing

import (
	"regexp"
	"strings"
)

var (
	// bulletPattern matches a line that starts with an optional marker and a capital letter.
	bulletPattern = regexp.MustCompile(`(?m)^(?:[-•*]\s*)?([A-Z][^\n]{0,200})`)

	// metricPattern matches a percentage or an integer followed by a unit.
	metricPattern = regexp.MustCompile(`(?:(\d+\.?\d*)%|\b\d+\b\s*(?:ms|s|min|hr|days?|x|k|K|M|million|billion))`)
)

// Bullets extracts bullet-like statements, one per matching line, trimmed.
func Bullets(text string) []string {
	matches := bulletPattern.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}

// HasMetric reports whether text contains a quantified-impact pattern.
func HasMetric(text string) bool {
	return metricPattern.MatchString(text)
}

// FirstWord returns the first whitespace-delimited word of s, or "".
func FirstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
