package scrape

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jonathan/job-scout/internal/browser"
)

// Query carries the normalized search parameters for one scrape call.
type Query struct {
	// Role and Location are plain search terms ("software engineer",
	// "remote"); each source applies its own URL encoding.
	Role     string
	Location string
	Headless bool
	// MaxJobs bounds how many listings the source may return.
	MaxJobs int
}

// Source is one external job board. Scrape never returns an error: any
// unrecoverable failure (navigation timeout, challenge page, markup change)
// yields an empty slice so the orchestrator can move on to the next source.
type Source interface {
	Name() string
	Scrape(ctx context.Context, q Query) []Listing
}

// challengeBackoff is how long a source waits for an interstitial to pass
// through on its own before giving up on the board.
const challengeBackoff = 12 * time.Second

// consentSelectors are tried on every board to dismiss cookie overlays.
// Board-specific selectors are appended per source.
var consentSelectors = []string{
	"#onetrust-accept-btn-handler",
	"[data-consent-accept]",
	"button[id*='accept']",
	"button[class*='accept']",
	"button[aria-label*='Accept']",
}

// board implements the uniform scrape flow shared by all sources: build the
// search URL, load with a bounded timeout, detect challenge pages with one
// backoff retry, then hand the rendered document to the source-specific
// extractor. Selector variance lives entirely in the extractor.
type board struct {
	name      string
	loader    browser.Loader
	logger    *zap.Logger
	challenge challengeSignature
	load      browser.LoadOptions
	buildURL  func(q Query) string
	extract   func(doc *goquery.Document, q Query) []Listing
}

func (b *board) Name() string { return b.name }

// Scrape runs the shared flow. It never panics the batch and never returns
// an error; failures are logged and produce an empty result.
func (b *board) Scrape(ctx context.Context, q Query) []Listing {
	searchURL := b.buildURL(q)
	opts := b.load
	opts.Headless = q.Headless

	page, err := b.loader.Load(ctx, searchURL, opts)
	if err != nil {
		b.logger.Warn("scrape failed", zap.String("source", b.name), zap.Error(err))
		return nil
	}

	if b.challenge.Detect(page.Title, page.BodyPrefix) {
		b.logger.Warn("challenge page detected, waiting for pass-through",
			zap.String("source", b.name), zap.Duration("backoff", challengeBackoff))
		opts.Settle = challengeBackoff
		page, err = b.loader.Load(ctx, searchURL, opts)
		if err != nil || b.challenge.Detect(page.Title, page.BodyPrefix) {
			b.logger.Warn("still blocked after backoff, skipping source", zap.String("source", b.name))
			return nil
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		b.logger.Warn("could not parse page HTML", zap.String("source", b.name), zap.Error(err))
		return nil
	}

	listings := b.extract(doc, q)
	if len(listings) == 0 {
		b.logger.Warn("no job cards found (markup change, consent wall, or automation block)",
			zap.String("source", b.name))
		captureDebugHTML(b.logger, b.name, page.HTML)
	}
	return listings
}
