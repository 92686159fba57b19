package fetch

import (
	"regexp"
	"strings"
)

var (
	innerSpace  = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	blankLines  = regexp.MustCompile(`\n{3,}`)
	lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// CleanText normalizes scraped page text. Line endings become \n, runs of
// spaces collapse to one, lines are trimmed and at most one blank line is kept
// between paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	lines := strings.Split(lineEndings.Replace(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(innerSpace.ReplaceAllString(line, " "))
	}

	result := blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}
