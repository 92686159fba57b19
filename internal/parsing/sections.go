package parsing

import (
	"strings"
	"unicode/utf8"
)

// Section names. Header detection checks them in this order.
const (
	SectionExperience     = "experience"
	SectionWork           = "work"
	SectionProjects       = "projects"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionSummary        = "summary"
	SectionCertifications = "certifications"
)

// HeaderHints is the closed set of header keywords, in match precedence order.
var HeaderHints = []string{
	SectionExperience,
	SectionWork,
	SectionProjects,
	SectionEducation,
	SectionSkills,
	SectionSummary,
	SectionCertifications,
}

// maxHeaderLength is the longest trimmed line still treated as a header.
const maxHeaderLength = 40

// Sections holds the text of each detected section in document order.
type Sections struct {
	order []string
	text  map[string]string
}

// Get returns the section text, or "" when absent.
func (s Sections) Get(name string) string {
	return s.text[name]
}

// Has reports whether at least one line was assigned to the section.
func (s Sections) Has(name string) bool {
	_, ok := s.text[name]
	return ok
}

// Names returns the present section names in the order they first received a line.
func (s Sections) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of present sections.
func (s Sections) Len() int {
	return len(s.order)
}

// DetectSections splits text into named sections using short header lines.
// Header lines are consumed. Lines before the first header belong to summary.
func DetectSections(text string) Sections {
	buffers := make(map[string][]string)
	var order []string
	current := SectionSummary

	for _, raw := range SplitLines(text) {
		line := strings.TrimSpace(raw)
		if hint := headerHint(line); hint != "" {
			current = hint
			continue
		}
		if _, seen := buffers[current]; !seen {
			order = append(order, current)
		}
		buffers[current] = append(buffers[current], line)
	}

	sections := Sections{order: order, text: make(map[string]string, len(buffers))}
	for name, lines := range buffers {
		sections.text[name] = strings.TrimSpace(strings.Join(lines, "\n"))
	}
	return sections
}

func headerHint(line string) string {
	if utf8.RuneCountInString(line) > maxHeaderLength {
		return ""
	}
	lower := strings.ToLower(line)
	for _, hint := range HeaderHints {
		if strings.Contains(lower, hint) {
			return hint
		}
	}
	return ""
}

// ContainsHeaderHint reports whether any header keyword appears anywhere in text.
func ContainsHeaderHint(text string) bool {
	lower := strings.ToLower(text)
	for _, hint := range HeaderHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// SplitLines splits on every line boundary (\n, \r\n, \r, \v, \f, \x1c-\x1e,
// \x85, U+2028, U+2029). A trailing line break does not produce an empty line.
func SplitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, text[start:i])
		i += size
		if r == '\r' && i < len(text) && text[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
