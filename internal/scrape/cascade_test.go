package scrape

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestFirstMatch(t *testing.T) {
	doc := mustDoc(t, `<div class="new-card">one</div><div class="old-card">two</div>`)

	t.Run("first selector wins", func(t *testing.T) {
		m := firstMatch(doc.Selection, []string{".new-card", ".old-card"})
		require.NotNil(t, m)
		assert.Equal(t, "one", m.First().Text())
	})

	t.Run("falls through to later selector", func(t *testing.T) {
		m := firstMatch(doc.Selection, []string{".missing", ".old-card"})
		require.NotNil(t, m)
		assert.Equal(t, "two", m.First().Text())
	})

	t.Run("no match returns nil", func(t *testing.T) {
		assert.Nil(t, firstMatch(doc.Selection, []string{".missing", ".also-missing"}))
	})
}

func TestFirstText(t *testing.T) {
	doc := mustDoc(t, `<span class="company">  Acme Corp  </span>`)

	assert.Equal(t, "Acme Corp", firstText(doc.Selection, []string{".company"}))
	assert.Equal(t, "", firstText(doc.Selection, []string{".missing"}))
}

func TestFirstAttr(t *testing.T) {
	doc := mustDoc(t, `<a class="job-link" href=" /job/1 ">title</a>`)

	assert.Equal(t, "/job/1", firstAttr(doc.Selection, []string{".job-link"}, "href"))
	assert.Equal(t, "", firstAttr(doc.Selection, []string{".job-link"}, "data-id"))
}

func TestCardAnchor(t *testing.T) {
	t.Run("card that is itself an anchor", func(t *testing.T) {
		doc := mustDoc(t, `<a class="card" href="/job/1">x</a>`)
		card := doc.Find(".card")
		a := cardAnchor(card, []string{"a.title"})
		require.NotNil(t, a)
		href, _ := a.Attr("href")
		assert.Equal(t, "/job/1", href)
	})

	t.Run("cascade anchor preferred over generic", func(t *testing.T) {
		doc := mustDoc(t, `<div class="card"><a href="/other">o</a><a class="title" href="/job/2">t</a></div>`)
		a := cardAnchor(doc.Find(".card"), []string{"a.title"})
		require.NotNil(t, a)
		href, _ := a.Attr("href")
		assert.Equal(t, "/job/2", href)
	})

	t.Run("any anchor as last resort", func(t *testing.T) {
		doc := mustDoc(t, `<div class="card"><a href="/fallback">f</a></div>`)
		a := cardAnchor(doc.Find(".card"), []string{"a.title"})
		require.NotNil(t, a)
		href, _ := a.Attr("href")
		assert.Equal(t, "/fallback", href)
	})

	t.Run("no anchor at all", func(t *testing.T) {
		doc := mustDoc(t, `<div class="card"><span>no link</span></div>`)
		assert.Nil(t, cardAnchor(doc.Find(".card"), []string{"a.title"}))
	})
}
