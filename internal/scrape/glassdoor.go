package scrape

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jonathan/job-scout/internal/browser"
)

const glassdoorOrigin = "https://www.glassdoor.com"

var (
	glassdoorCardCascade = []string{
		`[data-job], .JobCard, .jobCard, li[class*="JobCard"]`,
		`a[href*="/Job/job-detail"], a[href*="glassdoor.com/job-listing"]`,
		`[class*="job-card"], [class*="JobCard"]`,
	}
	glassdoorAnchorCascade = []string{
		`a[href*="job"], a[href*="Job"]`,
	}
	glassdoorTitleCascade    = []string{`a[data-test="job-link"]`, "h2", `[class*="title"]`}
	glassdoorCompanyCascade  = []string{`[data-test="employer-name"]`, `[class*="employer"]`, ".EmployerCard"}
	glassdoorLocationCascade = []string{`[data-test="location"]`, `[class*="location"]`}
)

// NewGlassdoor creates the Glassdoor source adapter. Glassdoor fronts its
// search with an aggressive bot check, so the challenge signature carries its
// site-specific phrasing.
func NewGlassdoor(loader browser.Loader, logger *zap.Logger) Source {
	b := &board{
		name:   "glassdoor",
		loader: loader,
		logger: logger,
		challenge: challengeSignature{
			titleMarkers: []string{"just a moment"},
			bodyMarkers:  []string{"help us protect glassdoor", "verify that you're a real person"},
		},
		load: browser.LoadOptions{
			Timeout:          35 * time.Second,
			Settle:           3 * time.Second,
			ConsentSelectors: append([]string{"button[id*='agree']"}, consentSelectors...),
			ScrollHalfPage:   true,
		},
		buildURL: func(q Query) string {
			role := strings.TrimSpace(strings.ReplaceAll(q.Role, "+", " "))
			if role == "" {
				role = "software engineer"
			}
			// Glassdoor encodes the keyword into the path plus a character
			// range suffix: /Job/<kw>-jobs-SRCH_KO0,<len>.htm
			kw := strings.ReplaceAll(strings.ToLower(role), " ", "-")
			if len(kw) > 30 {
				kw = kw[:30]
			}
			span := len(role)
			if span > 99 {
				span = 99
			}
			return fmt.Sprintf("%s/Job/%s-jobs-SRCH_KO0,%d.htm", glassdoorOrigin, kw, span)
		},
	}
	b.extract = func(doc *goquery.Document, q Query) []Listing {
		return extractGlassdoor(doc, q)
	}
	return b
}

func extractGlassdoor(doc *goquery.Document, q Query) []Listing {
	cards := firstMatch(doc.Selection, glassdoorCardCascade)
	if cards == nil {
		return nil
	}

	listings := make([]Listing, 0, q.MaxJobs)
	cards.EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if len(listings) >= q.MaxJobs {
			return false
		}
		anchor := cardAnchor(card, glassdoorAnchorCascade)
		if anchor == nil {
			return true
		}
		href, _ := anchor.Attr("href")
		if strings.TrimSpace(href) == "" {
			return true
		}
		jobURL := ResolveURL(glassdoorOrigin, href)

		title := firstText(card, glassdoorTitleCascade)
		company := firstText(card, glassdoorCompanyCascade)
		location := firstText(card, glassdoorLocationCascade)
		if location == "" {
			location = q.Location
		}
		listings = append(listings, NewListing(title, company, location, jobURL))
		return true
	})
	return listings
}
