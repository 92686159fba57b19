package ingestion

import "strings"

// SanitizeText converts raw bytes to text. Invalid UTF-8 sequences and NUL
// bytes are dropped, as is a leading byte order mark. Whitespace and line
// breaks are kept as-is since layout feeds the scoring.
func SanitizeText(data []byte) string {
	text := strings.ToValidUTF8(string(data), "")
	text = strings.TrimPrefix(text, "\ufeff")
	return strings.ReplaceAll(text, "\x00", "")
}
