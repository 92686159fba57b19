package ingestion

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	paragraphEnd = regexp.MustCompile(`</w:p>|<w:p/>|<w:br/>|<w:cr/>`)
	tabElement   = regexp.MustCompile(`<w:tab/>`)
	xmlTag       = regexp.MustCompile(`<[^>]*>`)
)

// decodeDOCX returns the document paragraphs joined by a newline.
func decodeDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &DecodeError{Format: FormatDOCX, Cause: err}
	}
	defer func() { _ = doc.Close() }()

	return documentText(doc.Editable().GetContent()), nil
}

// documentText flattens WordprocessingML body XML to text.
func documentText(content string) string {
	content = paragraphEnd.ReplaceAllString(content, "\n")
	content = tabElement.ReplaceAllString(content, "\t")
	content = xmlTag.ReplaceAllString(content, "")
	return strings.TrimSuffix(html.UnescapeString(content), "\n")
}
