package scrape

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource returns canned listings and records the queries it received.
type stubSource struct {
	name     string
	listings []Listing
	queries  []Query
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Scrape(_ context.Context, q Query) []Listing {
	s.queries = append(s.queries, q)
	if len(s.listings) > q.MaxJobs {
		return s.listings[:q.MaxJobs]
	}
	return s.listings
}

func makeListings(prefix string, n int) []Listing {
	out := make([]Listing, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, NewListing(
			fmt.Sprintf("%s job %d", prefix, i),
			"Acme",
			"Remote",
			fmt.Sprintf("https://%s.example.com/job/%d", prefix, i),
		))
	}
	return out
}

func TestScrapeAllShortCircuitsWhenTargetMet(t *testing.T) {
	first := &stubSource{name: "first", listings: makeListings("first", 20)}
	second := &stubSource{name: "second", listings: makeListings("second", 20)}

	o := NewOrchestrator(nil, first, second)
	got := o.ScrapeAll(context.Background(), Options{MinJobs: 15, MaxJobs: 15})

	assert.Len(t, got, 15)
	require.Len(t, first.queries, 1)
	assert.Equal(t, 15, first.queries[0].MaxJobs)
	assert.Empty(t, second.queries, "second source should not be queried once the target is met")
}

func TestScrapeAllFillsGapFromLaterSources(t *testing.T) {
	first := &stubSource{name: "first", listings: makeListings("first", 6)}
	second := &stubSource{name: "second", listings: makeListings("second", 20)}
	third := &stubSource{name: "third", listings: makeListings("third", 20)}

	o := NewOrchestrator(nil, first, second, third)
	got := o.ScrapeAll(context.Background(), Options{MinJobs: 15, MaxJobs: 15})

	assert.Len(t, got, 15)
	require.Len(t, second.queries, 1)
	// Lower-priority sources are only asked for the remaining gap.
	assert.Equal(t, 9, second.queries[0].MaxJobs)
	assert.Empty(t, third.queries)
}

func TestScrapeAllDeduplicatesBySourceURL(t *testing.T) {
	shared := NewListing("Shared", "Acme", "Remote", "https://example.com/job/shared")
	first := &stubSource{name: "first", listings: []Listing{shared, NewListing("A", "Acme", "", "https://example.com/job/a")}}
	second := &stubSource{name: "second", listings: []Listing{shared, NewListing("B", "Acme", "", "https://example.com/job/b")}}

	o := NewOrchestrator(nil, first, second)
	got := o.ScrapeAll(context.Background(), Options{MinJobs: 10, MaxJobs: 10})

	urls := make(map[string]int)
	for _, l := range got {
		urls[l.SourceURL]++
	}
	assert.Equal(t, 1, urls["https://example.com/job/shared"])
	assert.Len(t, got, 3)
}

func TestScrapeAllKeepsListingsWithoutURLs(t *testing.T) {
	src := &stubSource{name: "src", listings: []Listing{
		NewListing("No Link 1", "Acme", "", ""),
		NewListing("No Link 2", "Acme", "", ""),
	}}

	o := NewOrchestrator(nil, src)
	got := o.ScrapeAll(context.Background(), Options{MinJobs: 10, MaxJobs: 10})

	// Empty-URL listings carry no dedup key and are all retained.
	assert.Len(t, got, 2)
}

func TestScrapeAllAppliesDefaults(t *testing.T) {
	src := &stubSource{name: "src"}

	o := NewOrchestrator(nil, src)
	o.ScrapeAll(context.Background(), Options{MinJobs: 5, MaxJobs: 5})

	require.Len(t, src.queries, 1)
	assert.Equal(t, DefaultRole, src.queries[0].Role)
	assert.Equal(t, DefaultLocation, src.queries[0].Location)
}

func TestScrapeAllAllSourcesEmpty(t *testing.T) {
	o := NewOrchestrator(nil, &stubSource{name: "a"}, &stubSource{name: "b"})
	got := o.ScrapeAll(context.Background(), Options{MinJobs: 5, MaxJobs: 5})
	assert.Empty(t, got)
}

func TestScrapeAllCapsAtMaxJobs(t *testing.T) {
	src := &stubSource{name: "src", listings: makeListings("src", 30)}

	o := NewOrchestrator(nil, src)
	got := o.ScrapeAll(context.Background(), Options{MinJobs: 10, MaxJobs: 12})

	assert.Len(t, got, 12)
}
