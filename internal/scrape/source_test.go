package scrape

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/job-scout/internal/browser"
)

// fakeLoader plays back a scripted sequence of pages, one per Load call.
type fakeLoader struct {
	pages []*browser.Page
	errs  []error
	calls []browser.LoadOptions
}

func (f *fakeLoader) Load(_ context.Context, _ string, opts browser.LoadOptions) (*browser.Page, error) {
	i := len(f.calls)
	f.calls = append(f.calls, opts)
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.pages) {
		return f.pages[i], nil
	}
	return f.pages[len(f.pages)-1], nil
}

const indeedResultsHTML = `<html><head><title>Jobs</title></head><body>
	<div class="job_seen_beacon" data-jk="ok1">
		<h2 class="jobTitle"><a href="/viewjob?jk=ok1">Backend Engineer</a></h2>
		<span data-testid="company-name">Acme</span>
		<div class="companyLocation">Remote</div>
	</div>
</body></html>`

const challengeHTML = `<html><head><title>Just a moment...</title></head><body>Checking your browser</body></html>`

func newTestBoard(loader browser.Loader) *board {
	return NewIndeed(loader, zap.NewNop()).(*board)
}

func TestBoardScrapeHappyPath(t *testing.T) {
	loader := &fakeLoader{pages: []*browser.Page{{
		Title:      "Jobs",
		HTML:       indeedResultsHTML,
		BodyPrefix: "Backend Engineer Acme Remote",
	}}}

	listings := newTestBoard(loader).Scrape(context.Background(), Query{Role: "x", Location: "y", Headless: true, MaxJobs: 15})

	require.Len(t, listings, 1)
	assert.Equal(t, "Backend Engineer", listings[0].Title)
	require.Len(t, loader.calls, 1)
	assert.True(t, loader.calls[0].Headless)
}

func TestBoardScrapeLoadFailure(t *testing.T) {
	loader := &fakeLoader{errs: []error{errors.New("net::ERR_TIMED_OUT")}}
	assert.Nil(t, newTestBoard(loader).Scrape(context.Background(), Query{MaxJobs: 15}))
}

func TestBoardScrapeChallengeRetrySucceeds(t *testing.T) {
	loader := &fakeLoader{pages: []*browser.Page{
		{Title: "Just a moment...", HTML: challengeHTML, BodyPrefix: "Checking your browser"},
		{Title: "Jobs", HTML: indeedResultsHTML, BodyPrefix: "Backend Engineer"},
	}}

	listings := newTestBoard(loader).Scrape(context.Background(), Query{MaxJobs: 15})

	require.Len(t, listings, 1)
	require.Len(t, loader.calls, 2)
	// The retry waits out the interstitial with a longer settle.
	assert.Equal(t, challengeBackoff, loader.calls[1].Settle)
}

func TestBoardScrapeStillBlockedAfterRetry(t *testing.T) {
	loader := &fakeLoader{pages: []*browser.Page{
		{Title: "Just a moment...", HTML: challengeHTML, BodyPrefix: "checking"},
		{Title: "Just a moment...", HTML: challengeHTML, BodyPrefix: "checking"},
	}}

	listings := newTestBoard(loader).Scrape(context.Background(), Query{MaxJobs: 15})

	assert.Nil(t, listings)
	assert.Len(t, loader.calls, 2)
}

func TestBoardScrapeSavesDebugHTMLWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(DebugDirEnv, dir)

	loader := &fakeLoader{pages: []*browser.Page{{
		Title: "Jobs",
		HTML:  "<html><body><p>no cards here</p></body></html>",
	}}}

	listings := newTestBoard(loader).Scrape(context.Background(), Query{MaxJobs: 15})
	assert.Empty(t, listings)

	saved, err := os.ReadFile(filepath.Join(dir, "indeed_debug.html"))
	require.NoError(t, err)
	assert.Contains(t, string(saved), "no cards here")
}

func TestBoardScrapeNoDebugCaptureWithoutEnv(t *testing.T) {
	t.Setenv(DebugDirEnv, "")

	loader := &fakeLoader{pages: []*browser.Page{{Title: "Jobs", HTML: "<html><body></body></html>"}}}
	assert.Empty(t, newTestBoard(loader).Scrape(context.Background(), Query{MaxJobs: 15}))
}
