package fetch

import (
	"context"
	"net/url"

	"github.com/jonathan/ats-checker/internal/logging"
	"go.uber.org/zap"
)

// Posting is the text of a job posting fetched from a URL.
type Posting struct {
	URL      string
	Text     string
	Platform Platform
	Rendered bool
}

// JobFetcher fetches job postings, re-rendering thin pages in a browser
// when a Renderer is configured.
type JobFetcher struct {
	opts     *Options
	renderer Renderer
	logger   *zap.Logger
}

// NewJobFetcher creates a JobFetcher. A nil renderer disables the browser fallback.
func NewJobFetcher(opts *Options, renderer Renderer, logger *zap.Logger) *JobFetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JobFetcher{
		opts:     opts,
		renderer: renderer,
		logger:   logging.OrNop(logger),
	}
}

// Fetch downloads url and extracts the job description text.
func (f *JobFetcher) Fetch(ctx context.Context, url string) (*Posting, error) {
	platform := DetectPlatform(url)
	contentSelectors := ContentSelectors(platform)
	noiseSelectors := NoiseSelectors(platform)

	result, err := URL(ctx, url, f.opts)
	if err != nil {
		return nil, err
	}

	text, err := ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return nil, &Error{URL: url, Message: "content extraction failed", Cause: err}
	}
	f.logger.Debug("fetched job posting",
		zap.String("url", url),
		zap.String("platform", string(platform)),
		zap.Int("html_bytes", len(result.HTML)),
		zap.Int("text_length", len(text)),
	)

	posting := &Posting{URL: url, Text: text, Platform: platform}
	if f.renderer != nil && ShouldUseBrowser(text) {
		f.renderWith(ctx, posting, contentSelectors, noiseSelectors)
	}

	if posting.Text == "" {
		return nil, &Error{URL: url, Message: "no job description text found"}
	}
	return posting, nil
}

// renderWith replaces posting.Text with browser-rendered text when that is longer.
// Browser failures keep the HTTP text.
func (f *JobFetcher) renderWith(ctx context.Context, posting *Posting, contentSelectors, noiseSelectors []string) {
	f.logger.Info("job posting text is short, rendering in browser",
		zap.String("url", posting.URL),
		zap.Int("text_length", len(posting.Text)),
		zap.Int("min_length", MinContentLength),
	)

	if !f.opts.AllowPrivateHosts {
		if err := checkURLHost(ctx, posting.URL); err != nil {
			f.logger.Warn("skipping browser rendering", zap.Error(err))
			return
		}
	}

	html, err := f.renderer.Render(ctx, posting.URL)
	if err != nil {
		f.logger.Warn("browser rendering failed, using HTTP content", zap.Error(err))
		return
	}

	text, err := ExtractMainText(html, contentSelectors, noiseSelectors...)
	if err != nil {
		f.logger.Warn("browser content extraction failed", zap.Error(err))
		return
	}
	if len(text) > len(posting.Text) {
		posting.Text = text
		posting.Rendered = true
	}
}

func checkURLHost(ctx context.Context, rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	return CheckHost(ctx, parsed.Hostname())
}
