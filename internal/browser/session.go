// Package browser provides scoped headless-browser sessions for scraping.
// Each Load renders one URL in a dedicated browser process and returns a
// static snapshot; all browser resources are released before Load returns,
// on every exit path.
package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// DefaultTimeout bounds a single page load end to end.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent mimics a desktop Chrome; job boards serve degraded or
// blocked pages to obvious automation user agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// bodyPrefixLimit caps how much visible body text a snapshot carries.
// Challenge detection only needs the first few KB.
const bodyPrefixLimit = 3000

// Page is a rendered snapshot of a loaded document.
type Page struct {
	URL   string
	Title string
	HTML  string
	// BodyPrefix is the first few KB of visible body text, used for
	// challenge-page heuristics.
	BodyPrefix string
}

// LoadOptions configures a single page load.
type LoadOptions struct {
	// Timeout bounds the whole load. Zero means DefaultTimeout.
	Timeout time.Duration
	// Settle is an extra delay after DOM ready, for late-rendering content.
	Settle time.Duration
	// WaitSelector, when set, is waited for (best effort) before settling.
	WaitSelector string
	// WaitSelectorTimeout bounds the WaitSelector wait. Zero means 10s.
	WaitSelectorTimeout time.Duration
	// ConsentSelectors are tried in order; the first visible match is clicked
	// to dismiss cookie/consent overlays.
	ConsentSelectors []string
	// ScrollHalfPage scrolls to half the document height to trigger
	// lazy-loaded content.
	ScrollHalfPage bool
	// Headless controls browser visibility (headful helps manual debugging).
	Headless bool
}

// Loader renders URLs into Page snapshots. Implemented by Session; tests
// substitute fixture-backed fakes.
type Loader interface {
	Load(ctx context.Context, url string, opts LoadOptions) (*Page, error)
}

// Session is a chromedp-backed Loader. Sessions are safe for sequential use;
// a process-wide semaphore serializes concurrent loads so that at most one
// browser process runs at a time.
type Session struct {
	logger  *zap.Logger
	limiter *HostLimiter
}

// browserSlots serializes browser sessions process-wide. Concurrent sessions
// multiply memory cost and the odds of tripping rate limiting across sources.
var browserSlots = semaphore.NewWeighted(1)

// NewSession creates a Loader that launches a fresh headless browser per Load.
func NewSession(logger *zap.Logger, limiter *HostLimiter) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{logger: logger, limiter: limiter}
}

// Load navigates to url and returns a rendered snapshot. The browser process,
// context and page are torn down before Load returns, success or failure.
func (s *Session) Load(ctx context.Context, url string, opts LoadOptions) (*Page, error) {
	if err := browserSlots.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquire browser slot: %w", err)
	}
	defer browserSlots.Release(1)

	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, url); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", opts.Headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("disable-blink-features", "AutomationControlled"),
			chromedp.UserAgent(DefaultUserAgent),
			chromedp.WindowSize(1280, 720),
		)...,
	)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	page := &Page{URL: url}

	actions := []chromedp.Action{
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	}
	if opts.Settle > 0 {
		actions = append(actions, chromedp.Sleep(opts.Settle))
	}
	if len(opts.ConsentSelectors) > 0 {
		actions = append(actions, dismissConsent(opts.ConsentSelectors, s.logger))
	}
	if opts.WaitSelector != "" {
		actions = append(actions, waitBestEffort(opts.WaitSelector, opts.WaitSelectorTimeout))
	}
	if opts.ScrollHalfPage {
		actions = append(actions,
			chromedp.ActionFunc(func(ctx context.Context) error {
				// Lazy lists render on scroll; a failed scroll is not fatal.
				_ = chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight / 2)`, nil).Do(ctx)
				return nil
			}),
			chromedp.Sleep(1500*time.Millisecond),
		)
	}
	actions = append(actions,
		chromedp.Title(&page.Title),
		chromedp.OuterHTML("html", &page.HTML),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var body string
			_ = chromedp.Evaluate(`document.body ? document.body.innerText.slice(0, `+fmt.Sprint(bodyPrefixLimit)+`) : ""`, &body).Do(ctx)
			page.BodyPrefix = body
			return nil
		}),
	)

	if err := chromedp.Run(browserCtx, actions...); err != nil {
		return nil, fmt.Errorf("page load failed for %s: %w", url, err)
	}

	return page, nil
}

// dismissConsent clicks the first visible element matching any of selectors.
// Consent overlays differ per site and per region; a miss is normal.
func dismissConsent(selectors []string, logger *zap.Logger) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		sels, err := json.Marshal(selectors)
		if err != nil {
			return nil
		}
		script := fmt.Sprintf(`(() => {
			const sels = %s;
			for (const s of sels) {
				let el;
				try { el = document.querySelector(s); } catch (e) { continue; }
				if (el && el.offsetParent !== null) { el.click(); return s; }
			}
			return "";
		})()`, sels)

		var clicked string
		if err := chromedp.Evaluate(script, &clicked).Do(ctx); err != nil {
			return nil
		}
		if clicked != "" {
			logger.Debug("dismissed consent overlay", zap.String("selector", clicked))
			_ = chromedp.Sleep(1500 * time.Millisecond).Do(ctx)
		}
		return nil
	})
}

// waitBestEffort waits for selector up to timeout, ignoring failure. Used for
// sources known to render their content region asynchronously.
func waitBestEffort(selector string, timeout time.Duration) chromedp.Action {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return chromedp.ActionFunc(func(ctx context.Context) error {
		waitCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		_ = chromedp.WaitReady(selector, chromedp.ByQuery).Do(waitCtx)
		return nil
	})
}
