package scrape

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indeedCardHTML(jk, title, company, location string) string {
	return fmt.Sprintf(`
		<div class="job_seen_beacon" data-jk="%s">
			<h2 class="jobTitle"><a href="/viewjob?jk=%s">%s</a></h2>
			<span data-testid="company-name">%s</span>
			<div class="companyLocation">%s</div>
		</div>`, jk, jk, title, company, location)
}

func TestExtractIndeed(t *testing.T) {
	html := "<body>" +
		indeedCardHTML("aaa111", "Backend Engineer", "Acme", "Remote") +
		indeedCardHTML("bbb222", "Data Engineer", "Globex", "Tel Aviv") +
		"</body>"
	doc := mustDoc(t, html)

	listings := extractIndeed(doc, Query{MaxJobs: 15})
	require.Len(t, listings, 2)

	assert.Equal(t, "Backend Engineer", listings[0].Title)
	assert.Equal(t, "Acme", listings[0].Company)
	assert.Equal(t, "Remote", listings[0].Location)
	assert.Equal(t, "https://www.indeed.com/viewjob?jk=aaa111", listings[0].SourceURL)
	assert.Equal(t, "Data Engineer", listings[1].Title)
}

func TestExtractIndeedRespectsMaxJobs(t *testing.T) {
	html := "<body>"
	for i := 0; i < 10; i++ {
		html += indeedCardHTML(fmt.Sprintf("jk%d", i), "Engineer", "Acme", "Remote")
	}
	html += "</body>"

	listings := extractIndeed(mustDoc(t, html), Query{MaxJobs: 3})
	assert.Len(t, listings, 3)
}

func TestExtractIndeedDeduplicatesJobKeys(t *testing.T) {
	html := "<body>" +
		indeedCardHTML("same-key", "Engineer", "Acme", "Remote") +
		indeedCardHTML("same-key", "Engineer", "Acme", "Remote") +
		"</body>"

	listings := extractIndeed(mustDoc(t, html), Query{MaxJobs: 15})
	assert.Len(t, listings, 1)
}

func TestExtractIndeedFiltersFakeJobIDs(t *testing.T) {
	html := "<body>" +
		indeedCardHTML("cdef0123456789ab", "Decoy", "Nobody", "Nowhere") +
		indeedCardHTML("real42", "Backend Engineer", "Acme", "Remote") +
		"</body>"

	listings := extractIndeed(mustDoc(t, html), Query{MaxJobs: 15})
	require.Len(t, listings, 1)
	assert.Equal(t, "Backend Engineer", listings[0].Title)
}

func TestExtractIndeedStripsCompanyPrefixFromLocation(t *testing.T) {
	html := "<body>" +
		indeedCardHTML("x1", "Engineer", "Acme", "AcmeTel Aviv, Israel") +
		"</body>"

	listings := extractIndeed(mustDoc(t, html), Query{MaxJobs: 15})
	require.Len(t, listings, 1)
	assert.Equal(t, "Tel Aviv, Israel", listings[0].Location)
}

func TestExtractIndeedSkipsFullyEmptyCards(t *testing.T) {
	html := `<body><div class="job_seen_beacon"><span class="unrelated"></span></div></body>`

	listings := extractIndeed(mustDoc(t, html), Query{MaxJobs: 15})
	assert.Empty(t, listings)
}

func TestExtractIndeedPlaceholdersForPartialCards(t *testing.T) {
	html := `<body>
		<div class="job_seen_beacon" data-jk="p1">
			<h2 class="jobTitle"><a href="/viewjob?jk=p1"></a></h2>
		</div>
	</body>`

	listings := extractIndeed(mustDoc(t, html), Query{MaxJobs: 15})
	require.Len(t, listings, 1)
	assert.Equal(t, PlaceholderTitle, listings[0].Title)
	assert.Equal(t, PlaceholderCompany, listings[0].Company)
}

func TestExtractIndeedNoCards(t *testing.T) {
	assert.Nil(t, extractIndeed(mustDoc(t, "<body><p>nothing here</p></body>"), Query{MaxJobs: 15}))
}
