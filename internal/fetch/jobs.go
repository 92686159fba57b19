package fetch

import (
	"context"

	"go.uber.org/zap"
)

// MaxJobDescriptionRunes caps the returned job description text.
const MaxJobDescriptionRunes = 50000

// JobFetcher downloads a job posting and extracts its description text.
type JobFetcher struct {
	opts     *Options
	renderer Renderer
	logger   *zap.Logger
}

// NewJobFetcher creates a JobFetcher. renderer may be nil to disable the
// headless browser fallback.
func NewJobFetcher(opts *Options, renderer Renderer, logger *zap.Logger) *JobFetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobFetcher{opts: opts, renderer: renderer, logger: logger}
}

// FetchJobDescription fetches urlStr and returns the posting text.
func (f *JobFetcher) FetchJobDescription(ctx context.Context, urlStr string) (string, error) {
	platform := DetectPlatform(urlStr)
	content, noise := Selectors(urlStr)

	result, err := URL(ctx, urlStr, f.opts)
	if err != nil {
		return "", err
	}

	text, err := ExtractMainText(result.HTML, content, noise...)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "content extraction failed", Cause: err}
	}

	if f.renderer != nil && ShouldUseBrowser(text) {
		f.logger.Debug("job page text too short, rendering in browser",
			zap.String("url", urlStr), zap.Int("chars", len(text)))
		html, renderErr := f.renderer.Render(ctx, urlStr)
		if renderErr != nil {
			f.logger.Warn("browser rendering failed, using HTTP content",
				zap.String("url", urlStr), zap.Error(renderErr))
		} else if rendered, extractErr := ExtractMainText(html, content, noise...); extractErr == nil && len(rendered) > len(text) {
			text = rendered
		}
	}

	if text == "" {
		return "", &Error{URL: urlStr, Message: "no job description text found"}
	}
	if runes := []rune(text); len(runes) > MaxJobDescriptionRunes {
		text = string(runes[:MaxJobDescriptionRunes])
	}

	f.logger.Info("fetched job description",
		zap.String("url", urlStr),
		zap.String("platform", string(platform)),
		zap.Int("chars", len(text)),
	)
	return text, nil
}
