// Package enrich fetches a job posting's page and extracts its description
// text. It is source-agnostic: the same ranked selector list is applied to
// every board, with the whole page body as the final fallback.
package enrich

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jonathan/job-scout/internal/browser"
)

// MinDescriptionLen is the floor below which an extracted fragment is not
// considered a real description.
const MinDescriptionLen = 50

// pageTimeout bounds the posting page load; job pages are lighter than
// search result pages.
const pageTimeout = 15 * time.Second

// descriptionSelectors is the ranked list of description candidates:
// source-specific ids and classes first, generic class-substring patterns
// next, broad content containers last. Unlike card cascades this is not
// first-wins: every selector is evaluated and the longest qualifying text is
// kept, because a generic selector early in the list can match a small
// irrelevant fragment while the real content sits behind a later one.
var descriptionSelectors = []string{
	"#jobDescriptionText", // Indeed
	".jobsearch-JobComponent-description",
	".jobsearch-jobDescriptionText",
	".job-description",
	".description",
	`[class*="job-description"]`,
	`[class*="jobDescription"]`,
	`[class*="JobDescription"]`,
	".jobs-details__content", // LinkedIn
	"[data-job-description]",
	"main",
	"article",
}

// Extractor loads posting pages and pulls out description text.
type Extractor struct {
	loader browser.Loader
	logger *zap.Logger
}

// NewExtractor creates a content extractor over the given page loader.
func NewExtractor(loader browser.Loader, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{loader: loader, logger: logger}
}

// PageContent fetches url and returns the best-candidate description text,
// truncated to maxChars. It returns an empty string on any failure or when
// url is blank; enrichment is always best effort.
func (e *Extractor) PageContent(ctx context.Context, url string, maxChars int) string {
	if strings.TrimSpace(url) == "" {
		return ""
	}

	opts := browser.LoadOptions{
		Timeout:  pageTimeout,
		Headless: true,
	}
	// Indeed renders the description region asynchronously; wait for its
	// stable anchor instead of a blind delay.
	if strings.Contains(url, "indeed.com") {
		opts.WaitSelector = "#jobDescriptionText"
	} else {
		opts.Settle = 2 * time.Second
	}

	page, err := e.loader.Load(ctx, url, opts)
	if err != nil {
		e.logger.Warn("page content fetch failed", zap.String("url", truncateForLog(url)), zap.Error(err))
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		e.logger.Warn("page content parse failed", zap.String("url", truncateForLog(url)), zap.Error(err))
		return ""
	}

	if text := BestDescription(doc); text != "" {
		return truncate(text, maxChars)
	}

	// Fallback: whole page body text.
	body := strings.TrimSpace(doc.Find("body").Text())
	return truncate(body, maxChars)
}

// BestDescription evaluates every description selector and returns the
// longest extracted text meeting the minimum-length floor, or empty string.
func BestDescription(doc *goquery.Document) string {
	best := ""
	for _, sel := range descriptionSelectors {
		m := doc.Find(sel)
		if m.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(m.First().Text())
		if len(text) >= MinDescriptionLen && len(text) > len(best) {
			best = text
		}
	}
	return best
}

func truncate(s string, n int) string {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}

func truncateForLog(s string) string {
	const limit = 80
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
