package fetch

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultCacheTTL is how long a fetched job description is reused.
const DefaultCacheTTL = 24 * time.Hour

// Source returns the job description text behind a URL.
type Source interface {
	FetchJobDescription(ctx context.Context, url string) (string, error)
}

// Cache stores job descriptions by URL.
type Cache interface {
	GetJobDescription(ctx context.Context, url string, maxAge time.Duration) (string, bool, error)
	PutJobDescription(ctx context.Context, url, text string) error
}

// CachedFetcher serves job descriptions from a Cache, falling back to a Source.
type CachedFetcher struct {
	source Source
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedFetcher wraps source with cache. A non-positive ttl uses DefaultCacheTTL.
func NewCachedFetcher(source Source, cache Cache, ttl time.Duration, logger *zap.Logger) *CachedFetcher {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedFetcher{source: source, cache: cache, ttl: ttl, logger: logger}
}

// FetchJobDescription returns a fresh cached description or fetches and stores a new one.
// Cache failures are logged and never fail the fetch.
func (f *CachedFetcher) FetchJobDescription(ctx context.Context, url string) (string, error) {
	text, ok, err := f.cache.GetJobDescription(ctx, url, f.ttl)
	switch {
	case err != nil:
		f.logger.Warn("job description cache lookup failed", zap.String("url", url), zap.Error(err))
	case ok:
		f.logger.Debug("job description cache hit", zap.String("url", url))
		return text, nil
	}

	text, err = f.source.FetchJobDescription(ctx, url)
	if err != nil {
		return "", err
	}

	if err := f.cache.PutJobDescription(ctx, url, text); err != nil {
		f.logger.Warn("failed to cache job description", zap.String("url", url), zap.Error(err))
	}
	return text, nil
}
