package ingestion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// decodePDF returns the plain text of every page, pages joined by a newline.
// Pages without content contribute an empty line.
func decodePDF(data []byte) (text string, err error) {
	// The pdf reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", &DecodeError{Format: FormatPDF, Cause: fmt.Errorf("malformed pdf: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &DecodeError{Format: FormatPDF, Cause: err}
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", &DecodeError{Format: FormatPDF, Cause: fmt.Errorf("page %d: %w", i, err)}
		}
		pages = append(pages, content)
	}
	return strings.Join(pages, "\n"), nil
}
