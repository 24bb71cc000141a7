// Package scrape collects job listings from external job boards.
//
// Each board has its own Source adapter implementing the same contract: given
// a role and location query, return a bounded list of normalized listings,
// never an error. Board markup changes frequently and without notice, so
// every extraction step is an ordered cascade of selector strategies with the
// most stable selector first and a generic fallback last.
package scrape

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// Field length caps bound storage regardless of what a board's markup emits.
const (
	MaxTitleLen    = 500
	MaxCompanyLen  = 500
	MaxLocationLen = 300
	MaxURLLen      = 2000
)

// Placeholder values used when a card yields no usable text. Listings never
// carry empty titles or companies.
const (
	PlaceholderTitle   = "Job"
	PlaceholderCompany = "Company"
)

// Listing is one scraped job posting candidate. It is a transient value: the
// caller assigns identity and persists it.
type Listing struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	// SourceURL is the absolute URL of the posting, or empty when the card
	// had no resolvable link. It is the dedup key across sources.
	SourceURL string `json:"source_url,omitempty"`
}

// NewListing builds a normalized listing, applying placeholder defaults and
// length caps.
func NewListing(title, company, location, sourceURL string) Listing {
	title = strings.TrimSpace(title)
	if title == "" {
		title = PlaceholderTitle
	}
	company = strings.TrimSpace(company)
	if company == "" {
		company = PlaceholderCompany
	}
	return Listing{
		Title:     truncate(title, MaxTitleLen),
		Company:   truncate(company, MaxCompanyLen),
		Location:  truncate(strings.TrimSpace(location), MaxLocationLen),
		SourceURL: truncate(sourceURL, MaxURLLen),
	}
}

// ResolveURL turns href into an absolute URL against the board's origin.
// Returns empty string when href is empty or unparseable.
func ResolveURL(origin, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	base, err := url.Parse(origin)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// truncate caps s at n bytes without splitting a multi-byte rune at the cut.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
