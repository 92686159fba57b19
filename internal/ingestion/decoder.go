// Package ingestion extracts plain text from uploaded resume documents.
package ingestion

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// Format is a supported document format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

// DefaultDecodeTimeout bounds a single document decode.
const DefaultDecodeTimeout = 20 * time.Second

// DefaultMaxTextChars bounds the decoded text of one document. Matching cost
// grows with text length, so longer documents are rejected rather than scanned.
const DefaultMaxTextChars = 50_000

// UnsupportedFormatError is returned for files whose extension is not pdf, docx or txt.
type UnsupportedFormatError struct {
	Filename string
	Format   string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("unsupported file %q: missing extension (expected pdf, docx or txt)", e.Filename)
	}
	return fmt.Sprintf("unsupported file format %q (expected pdf, docx or txt)", e.Format)
}

// DecodeError reports a document that could not be read.
type DecodeError struct {
	Format Format
	Cause  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s document: %v", e.Format, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// TextTooLongError reports a document whose extracted text exceeds the limit.
type TextTooLongError struct {
	Format Format
	Limit  int
}

func (e *TextTooLongError) Error() string {
	return fmt.Sprintf("%s document text exceeds %d characters", e.Format, e.Limit)
}

// DetectFormat maps a filename to its format by extension, case-insensitively.
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch Format(ext) {
	case FormatPDF, FormatDOCX, FormatTXT:
		return Format(ext), nil
	default:
		return "", &UnsupportedFormatError{Filename: filename, Format: ext}
	}
}

// Decoder converts documents to text.
type Decoder struct {
	timeout  time.Duration
	maxChars int
}

// NewDecoder creates a Decoder. Non-positive arguments use DefaultDecodeTimeout
// and DefaultMaxTextChars.
func NewDecoder(timeout time.Duration, maxChars int) *Decoder {
	if timeout <= 0 {
		timeout = DefaultDecodeTimeout
	}
	if maxChars <= 0 {
		maxChars = DefaultMaxTextChars
	}
	return &Decoder{timeout: timeout, maxChars: maxChars}
}

// CheckFormat returns an UnsupportedFormatError if filename cannot be decoded.
func (d *Decoder) CheckFormat(filename string) error {
	_, err := DetectFormat(filename)
	return err
}

type decodeResult struct {
	text string
	err  error
}

// Decode extracts the text of data, choosing the decoder from filename.
// Decoding stops waiting when ctx is done or the decoder timeout elapses.
func (d *Decoder) Decode(ctx context.Context, filename string, data []byte) (string, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", &DecodeError{Format: format, Cause: err}
	}
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	done := make(chan decodeResult, 1)
	go func() {
		text, err := decodeFormat(format, data)
		done <- decodeResult{text: text, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return "", r.err
		}
		if utf8.RuneCountInString(r.text) > d.maxChars {
			return "", &TextTooLongError{Format: format, Limit: d.maxChars}
		}
		return r.text, nil
	case <-ctx.Done():
		return "", &DecodeError{Format: format, Cause: ctx.Err()}
	}
}

func decodeFormat(format Format, data []byte) (string, error) {
	switch format {
	case FormatPDF:
		return decodePDF(data)
	case FormatDOCX:
		return decodeDOCX(data)
	default:
		return SanitizeText(data), nil
	}
}
