package analysis

import (
	"context"
	"time"

	"github.com/drishanroy/resume-analysis-app/internal/ingestion"
	"github.com/drishanroy/resume-analysis-app/internal/logging"
	"github.com/drishanroy/resume-analysis-app/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Decoder turns an uploaded document into plain text.
type Decoder interface {
	// CheckFormat rejects unsupported documents before any bytes are read.
	CheckFormat(filename string) error
	Decode(ctx context.Context, filename string, data []byte) (string, error)
}

// JobFetcher retrieves a job description from a URL.
type JobFetcher interface {
	FetchJobDescription(ctx context.Context, url string) (string, error)
}

// Service validates a request, decodes the document, optionally fetches the
// job description, and runs the engine.
type Service struct {
	engine  *Engine
	decoder Decoder
	fetcher JobFetcher
	logger  *zap.Logger
}

// NewService creates a Service. fetcher may be nil, in which case requests
// carrying only a job URL are rejected.
func NewService(engine *Engine, decoder Decoder, fetcher JobFetcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{engine: engine, decoder: decoder, fetcher: fetcher, logger: logger}
}

// Analyze runs the full analysis for one document.
func (s *Service) Analyze(ctx context.Context, req types.AnalyzeRequest, data []byte) (*types.AnalysisResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.decoder.CheckFormat(req.Filename); err != nil {
		return nil, err
	}

	jobDescription := req.JobDescription
	fetchJob := jobDescription == "" && req.JobURL != ""
	if fetchJob && s.fetcher == nil {
		return nil, &types.ValidationError{Field: "job_url", Message: "job description fetching is disabled"}
	}

	start := time.Now()
	var text string

	// Decode and fetch run concurrently; the first failure cancels the other.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		decoded, err := s.decoder.Decode(gctx, req.Filename, data)
		if err != nil {
			return err
		}
		text = decoded
		return nil
	})
	if fetchJob {
		g.Go(func() error {
			jd, err := s.fetcher.FetchJobDescription(gctx, req.JobURL)
			if err != nil {
				return err
			}
			jobDescription = jd
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn("analysis input failed",
			zap.String("filename", logging.TruncateForLog(req.Filename, 80)),
			zap.Error(err),
		)
		return nil, err
	}

	result := s.engine.Analyze(text, req.TargetRole, jobDescription)

	meta := ingestion.NewMetadata(req.Filename, data)
	s.logger.Info("resume analyzed",
		zap.String("filename", logging.TruncateForLog(meta.Filename, 80)),
		zap.String("format", string(meta.Format)),
		zap.String("document_hash", meta.Hash),
		zap.Int("bytes", meta.Bytes),
		zap.Int("text_chars", len(text)),
		zap.Bool("job_fetched", fetchJob),
		zap.Float64("overall_score", result.OverallScore),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}
