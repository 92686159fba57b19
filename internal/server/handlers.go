package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/drishanroy/resume-analysis-app/internal/logging"
	"github.com/drishanroy/resume-analysis-app/internal/server/middleware"
	"github.com/drishanroy/resume-analysis-app/internal/storage"
	"github.com/drishanroy/resume-analysis-app/internal/types"
	"go.uber.org/zap"
)

// multipartOverhead is the body allowance for form fields and part headers on
// top of the file size limit.
const multipartOverhead = 1 << 20

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, HealthResponse{OK: true, Version: Version})
}

// handleAnalyze accepts a multipart upload with a "file" part and optional
// target_role, job_description and job_url fields.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID, _ := middleware.GetRequestID(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			s.writeError(w, requestID, err)
			return
		}
		s.writeError(w, requestID, &types.ValidationError{Field: "file", Message: "expected a multipart form upload"})
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, requestID, &types.ValidationError{Field: "file", Message: "is required"})
		return
	}
	defer file.Close()

	if header.Size > s.cfg.MaxUploadBytes {
		s.writeError(w, requestID, &storage.TooLargeError{URI: header.Filename, Limit: s.cfg.MaxUploadBytes})
		return
	}
	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, requestID, err)
		return
	}

	req := types.AnalyzeRequest{
		Filename:       header.Filename,
		TargetRole:     strings.TrimSpace(r.FormValue("target_role")),
		JobDescription: r.FormValue("job_description"),
		JobURL:         strings.TrimSpace(r.FormValue("job_url")),
	}

	result, err := s.analyzer.Analyze(ctx, req, data)
	if err != nil {
		s.writeError(w, requestID, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// writeError maps err to a status and client message. Server-side failures
// are logged with the full error.
func (s *Server) writeError(w http.ResponseWriter, requestID string, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", append(logging.RequestFields(requestID, ""), zap.Error(err))...)
	}
	s.errorResponse(w, status, ClientMessage(err))
}
