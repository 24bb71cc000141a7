package scrape

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jonathan/job-scout/internal/browser"
)

const zipOrigin = "https://www.ziprecruiter.com"

var (
	zipCardCascade = []string{
		`article[id^="job-card-"]`,
		".job_result_two_pane_v2",
		`[data-job-id], .job_result, .job_content, article[class*="job"]`,
		`a[href*="/Job/"], a[href*="/job/"]`,
		`[class*="JobCard"], [class*="job-card"]`,
	}
	zipAnchorCascade = []string{
		`a[href*="/Job/"], a[href*="/job/"], a[href*="job-redirect"]`,
		`a[href*="ziprecruiter"]`,
	}
	zipTitleCascade    = []string{"h2", `[class*="title"]`, ".job_title"}
	zipCompanyCascade  = []string{`[data-testid="job-card-company"]`, `[class*="company"]`, ".company_name"}
	zipLocationCascade = []string{`[data-testid="job-card-location"]`, `[class*="location"]`, ".location"}
)

// zipHydration mirrors the embedded SERP state ZipRecruiter ships in a
// #js_variables script tag. It is the only reliable way to get canonical job
// page URLs on the current layout; anchor hrefs are a fallback.
type zipHydration struct {
	HydrateJobCardsResponse struct {
		JobCards []struct {
			ListingKey                string `json:"listingKey"`
			RawCanonicalZipJobPageURL string `json:"rawCanonicalZipJobPageUrl"`
		} `json:"jobCards"`
	} `json:"hydrateJobCardsResponse"`
}

// NewZipRecruiter creates the ZipRecruiter source adapter.
func NewZipRecruiter(loader browser.Loader, logger *zap.Logger) Source {
	b := &board{
		name:   "ziprecruiter",
		loader: loader,
		logger: logger,
		challenge: challengeSignature{
			titleMarkers: []string{"just a moment", "attention required"},
			bodyMarkers:  []string{"your ray id", "verify you are a human"},
		},
		load: browser.LoadOptions{
			Timeout:          30 * time.Second,
			Settle:           3 * time.Second,
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
			return fmt.Sprintf("%s/jobs-search?search=%s&location=%s",
				zipOrigin,
				strings.ReplaceAll(role, " ", "+"),
				strings.ReplaceAll(loc, " ", "+"))
		},
	}
	b.extract = func(doc *goquery.Document, q Query) []Listing {
		return extractZipRecruiter(doc, q)
	}
	return b
}

// zipJobURLsByKey builds listingKey -> canonical URL from the embedded
// hydration JSON. Missing or malformed state yields an empty map.
func zipJobURLsByKey(doc *goquery.Document) map[string]string {
	urls := make(map[string]string)
	raw := doc.Find("#js_variables").Text()
	if strings.TrimSpace(raw) == "" {
		return urls
	}
	var state zipHydration
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return urls
	}
	for _, card := range state.HydrateJobCardsResponse.JobCards {
		key := strings.TrimSpace(card.ListingKey)
		u := strings.TrimSpace(card.RawCanonicalZipJobPageURL)
		if key == "" || u == "" {
			continue
		}
		if !strings.HasPrefix(u, "http") {
			u = zipOrigin + u
		}
		urls[key] = u
	}
	return urls
}

func extractZipRecruiter(doc *goquery.Document, q Query) []Listing {
	cards := firstMatch(doc.Selection, zipCardCascade)
	if cards == nil {
		return nil
	}
	urlsByKey := zipJobURLsByKey(doc)

	listings := make([]Listing, 0, q.MaxJobs)
	cards.EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if len(listings) >= q.MaxJobs {
			return false
		}
		// Wrapper selectors match a container around the article.
		article := card
		if goquery.NodeName(card) != "article" {
			if inner := card.Find(`article[id^="job-card-"]`); inner.Length() > 0 {
				article = inner.First()
			}
		}

		jobURL := ""
		if id, ok := article.Attr("id"); ok && strings.HasPrefix(id, "job-card-") {
			jobURL = urlsByKey[strings.TrimPrefix(id, "job-card-")]
		}
		if jobURL == "" {
			anchor := cardAnchor(card, zipAnchorCascade)
			if anchor == nil {
				return true
			}
			href, _ := anchor.Attr("href")
			if href == "" || (!strings.Contains(strings.ToLower(href), "/job") && !strings.Contains(href, "job-redirect")) {
				return true
			}
			jobURL = ResolveURL(zipOrigin, href)
		}

		title := firstText(article, zipTitleCascade)
		company := firstText(article, zipCompanyCascade)
		location := firstText(article, zipLocationCascade)
		if location == "" {
			location = q.Location
		}
		listings = append(listings, NewListing(title, company, location, jobURL))
		return true
	})
	return listings
}
