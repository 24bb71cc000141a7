package scrape

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jonathan/job-scout/internal/browser"
)

const indeedOrigin = "https://www.indeed.com"

// indeedFakeJobIDs are placeholder job keys Indeed sometimes injects into the
// DOM; listings pointing at them are decoys, not real postings.
var indeedFakeJobIDs = []string{"cdef0123456789ab", "0f1e2d3c4b5a6978"}

// Card and field cascades, most stable selector first. Indeed has cycled
// through several result layouts; old selectors are kept as fallbacks.
var (
	indeedCardCascade = []string{
		".jobsearch-SerpJobCard",
		`div[data-tn-component="organicJob"]`,
		".job_seen_beacon",
		"td.resultContent",
		"[data-jk]",
	}
	indeedAnchorCascade = []string{
		`a[data-tn-element="jobTitle"]`,
		"h2.jobTitle a",
		".jobsearch-JobInfoHeader-title a",
		`h2 a[href*="jk="]`,
		"a[data-jk]",
		`a[href*="viewjob"], a[href*="/rc/"], a[href*="jk="]`,
	}
	indeedCompanyCascade = []string{
		`span[itemprop="name"]`,
		`[data-testid="company-name"]`,
		".companyName",
		".jobsearch-CompanyInfoContainer .companyName",
		`[class*="companyName"]`,
		`[class*="company-name"]`,
	}
	indeedLocationCascade = []string{
		".companyLocation",
		".jobsearch-CompanyLocation",
		`[class*="companyLocation"]`,
		`[class*="location"]`,
	}
)

// NewIndeed creates the Indeed source adapter, the highest-priority board.
func NewIndeed(loader browser.Loader, logger *zap.Logger) Source {
	b := &board{
		name:   "indeed",
		loader: loader,
		logger: logger,
		challenge: challengeSignature{
			titleMarkers: []string{"just a moment", "security check"},
			bodyMarkers:  []string{"additional verification required", "your ray id"},
		},
		load: browser.LoadOptions{
			Timeout:          25 * time.Second,
			Settle:           2 * time.Second,
			ConsentSelectors: consentSelectors,
			ScrollHalfPage:   true,
		},
		buildURL: func(q Query) string {
			role := strings.ReplaceAll(q.Role, " ", "+")
			loc := strings.ReplaceAll(q.Location, " ", "+")
			return fmt.Sprintf("%s/jobs?q=%s&l=%s", indeedOrigin, role, loc)
		},
	}
	b.extract = func(doc *goquery.Document, q Query) []Listing {
		return extractIndeed(doc, q)
	}
	return b
}

func extractIndeed(doc *goquery.Document, q Query) []Listing {
	cards := firstMatch(doc.Selection, indeedCardCascade)
	if cards == nil {
		return nil
	}

	listings := make([]Listing, 0, q.MaxJobs)
	seenJobKeys := make(map[string]bool)
	cards.EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if len(listings) >= q.MaxJobs {
			return false
		}
		// The bare [data-jk] fallback matches one element per job key but
		// may repeat keys across the page.
		if jk, ok := card.Attr("data-jk"); ok && jk != "" {
			if seenJobKeys[jk] {
				return true
			}
			seenJobKeys[jk] = true
		}

		anchor := cardAnchor(card, indeedAnchorCascade)
		var title, href string
		if anchor != nil {
			title = strings.TrimSpace(anchor.Text())
			href, _ = anchor.Attr("href")
		}
		company := firstText(card, indeedCompanyCascade)
		location := firstText(card, indeedLocationCascade)
		// Some layouts nest the company name inside the location block.
		if company != "" && strings.HasPrefix(location, company) {
			if trimmed := strings.TrimSpace(strings.TrimPrefix(location, company)); trimmed != "" {
				location = trimmed
			}
		}

		jobURL := ResolveURL(indeedOrigin, href)
		for _, id := range indeedFakeJobIDs {
			if jobURL != "" && strings.Contains(jobURL, "jk="+id) {
				return true
			}
		}

		if title == "" && company == "" && jobURL == "" {
			return true
		}
		listings = append(listings, NewListing(title, company, location, jobURL))
		return true
	})
	return listings
}
