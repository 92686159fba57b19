package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/drishanroy/resume-analysis-app/internal/fetch"
	"github.com/drishanroy/resume-analysis-app/internal/ingestion"
	"github.com/drishanroy/resume-analysis-app/internal/storage"
	"github.com/drishanroy/resume-analysis-app/internal/types"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		unsupported *ingestion.UnsupportedFormatError
		validation  *types.ValidationError
		decodeErr   *ingestion.DecodeError
		fetchErr    *fetch.Error
		maxBytes    *http.MaxBytesError
		tooLarge    *storage.TooLargeError
		tooLong     *ingestion.TextTooLongError
	)
	switch {
	case errors.As(err, &unsupported), errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &maxBytes), errors.As(err, &tooLarge), errors.As(err, &tooLong):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &decodeErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage returns the error text shown to API clients. Internal errors
// are not described.
func ClientMessage(err error) string {
	var (
		unsupported *ingestion.UnsupportedFormatError
		decodeErr   *ingestion.DecodeError
		fetchErr    *fetch.Error
		tooLong     *ingestion.TextTooLongError
	)
	switch {
	case errors.As(err, &unsupported):
		return "Please upload a PDF, DOCX or TXT resume."
	case errors.As(err, &tooLong):
		return fmt.Sprintf("Document text too long (limit %d characters).", tooLong.Limit)
	case errors.As(err, &decodeErr):
		if decodeErr.Cause == nil {
			return "Failed to parse document."
		}
		return "Failed to parse document: " + decodeErr.Cause.Error()
	case errors.As(err, &fetchErr):
		return "Failed to fetch job description: " + fetchErr.Message
	}

	switch HTTPStatus(err) {
	case http.StatusRequestEntityTooLarge:
		return "File too large."
	case http.StatusInternalServerError:
		return "Internal server error."
	case http.StatusGatewayTimeout:
		return "Analysis timed out."
	default:
		return err.Error()
	}
}
