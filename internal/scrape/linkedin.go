package scrape

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jonathan/job-scout/internal/browser"
)

const linkedinOrigin = "https://www.linkedin.com"

var (
	linkedinCardCascade = []string{
		`.job-search-card, .jobs-search__results-list li, [data-job-id]`,
		`a[href*="/jobs/view/"]`,
		`[class*="job-card"], [class*="jobs-search-results"] li`,
	}
	linkedinAnchorCascade   = []string{`a[href*="/jobs/view/"]`}
	linkedinTitleCascade    = []string{".job-search-card__title", "h3", `[class*="title"]`}
	linkedinCompanyCascade  = []string{".job-search-card__subtitle", `[class*="company"]`}
	linkedinLocationCascade = []string{".job-search-card__location", `[class*="location"]`}
)

// NewLinkedIn creates the LinkedIn source adapter. LinkedIn's public job
// search often substitutes a login wall, so this is the lowest-priority
// source and frequently yields nothing.
func NewLinkedIn(loader browser.Loader, logger *zap.Logger) Source {
	b := &board{
		name:   "linkedin",
		loader: loader,
		logger: logger,
		challenge: challengeSignature{
			titleMarkers: []string{"just a moment", "attention required"},
			bodyMarkers:  []string{"your ray id"},
		},
		load: browser.LoadOptions{
			Timeout:          30 * time.Second,
			Settle:           4 * time.Second,
			ConsentSelectors: consentSelectors,
			ScrollHalfPage:   true,
		},
		buildURL: func(q Query) string {
			role := strings.TrimSpace(strings.ReplaceAll(q.Role, "+", " "))
			if role == "" {
				role = "software engineer"
			}
			loc := strings.ReplaceAll(q.Location, "+", " ")
			if loc == "" {
				loc = "remote"
			}
			return fmt.Sprintf("%s/jobs/search/?keywords=%s&location=%s",
				linkedinOrigin, url.QueryEscape(role), url.QueryEscape(loc))
		},
	}
	b.extract = func(doc *goquery.Document, q Query) []Listing {
		return extractLinkedIn(doc, q)
	}
	return b
}

func extractLinkedIn(doc *goquery.Document, q Query) []Listing {
	cards := firstMatch(doc.Selection, linkedinCardCascade)
	if cards == nil {
		return nil
	}

	listings := make([]Listing, 0, q.MaxJobs)
	cards.EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if len(listings) >= q.MaxJobs {
			return false
		}
		anchor := cardAnchor(card, linkedinAnchorCascade)
		if anchor == nil {
			return true
		}
		href, _ := anchor.Attr("href")
		if !strings.Contains(href, "/jobs/view/") {
			return true
		}
		// Tracking parameters make the same posting look unique; strip them
		// so URL dedup works across sources and runs.
		if idx := strings.Index(href, "?"); idx >= 0 {
			href = href[:idx]
		}
		jobURL := ResolveURL(linkedinOrigin, href)

		title := firstText(card, linkedinTitleCascade)
		company := firstText(card, linkedinCompanyCascade)
		location := firstText(card, linkedinLocationCascade)
		if location == "" {
			location = q.Location
		}
		listings = append(listings, NewListing(title, company, location, jobURL))
		return true
	})
	return listings
}
