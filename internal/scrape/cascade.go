package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selector cascades: an ordered list of CSS selectors tried most-specific
// first. The first selector that yields any match wins. This replaces nested
// try/fallback branching with a declarative, independently-testable list.

// firstMatch returns the matches of the first selector in cascade that
// matches anything under root, or nil when none do.
func firstMatch(root *goquery.Selection, cascade []string) *goquery.Selection {
	for _, sel := range cascade {
		if m := root.Find(sel); m.Length() > 0 {
			return m
		}
	}
	return nil
}

// firstText returns the trimmed text of the first element matched by the
// cascade, or empty string.
func firstText(root *goquery.Selection, cascade []string) string {
	if m := firstMatch(root, cascade); m != nil {
		return strings.TrimSpace(m.First().Text())
	}
	return ""
}

// firstAttr returns the named attribute of the first element matched by the
// cascade, or empty string.
func firstAttr(root *goquery.Selection, cascade []string, attr string) string {
	if m := firstMatch(root, cascade); m != nil {
		val, _ := m.First().Attr(attr)
		return strings.TrimSpace(val)
	}
	return ""
}

// cardAnchor resolves the listing link for a card: the card itself when it is
// an anchor, otherwise the first inner anchor matched by cascade, otherwise
// any inner anchor.
func cardAnchor(card *goquery.Selection, cascade []string) *goquery.Selection {
	if goquery.NodeName(card) == "a" {
		return card
	}
	if m := firstMatch(card, cascade); m != nil {
		return m.First()
	}
	if a := card.Find("a"); a.Length() > 0 {
		return a.First()
	}
	return nil
}
