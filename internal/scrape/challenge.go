package scrape

import "strings"

// challengeSignature describes one board's bot-verification interstitial:
// marker phrases looked for in the page title and in a prefix of the visible
// body text. Detection is heuristic; the contract is detect-and-back-off,
// never bypass.
type challengeSignature struct {
	titleMarkers []string
	bodyMarkers  []string
}

// Detect reports whether the page looks like a challenge interstitial rather
// than real content. It fails open: an empty or odd page reads as "normal"
// so extraction is still attempted.
func (c challengeSignature) Detect(title, bodyPrefix string) bool {
	title = strings.ToLower(strings.TrimSpace(title))
	for _, m := range c.titleMarkers {
		if strings.Contains(title, m) {
			return true
		}
	}
	body := strings.ToLower(bodyPrefix)
	for _, m := range c.bodyMarkers {
		if strings.Contains(body, m) {
			return true
		}
	}
	return false
}
