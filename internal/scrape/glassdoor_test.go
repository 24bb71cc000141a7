package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlassdoorBuildURL(t *testing.T) {
	src := NewGlassdoor(nil, nil).(*board)

	tests := []struct {
		name string
		role string
		want string
	}{
		{
			name: "simple role",
			role: "software engineer",
			want: "https://www.glassdoor.com/Job/software-engineer-jobs-SRCH_KO0,17.htm",
		},
		{
			name: "empty role uses default",
			role: "",
			want: "https://www.glassdoor.com/Job/software-engineer-jobs-SRCH_KO0,17.htm",
		},
		{
			name: "keyword slug capped at 30 chars",
			role: "principal distributed systems reliability engineer",
			want: "https://www.glassdoor.com/Job/principal-distributed-systems--jobs-SRCH_KO0,50.htm",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, src.buildURL(Query{Role: tt.role}))
		})
	}
}

func TestExtractGlassdoor(t *testing.T) {
	html := `<body>
		<li class="JobCard">
			<a data-test="job-link" href="/Job/job-detail/backend-engineer?src=1">Backend Engineer</a>
			<span data-test="employer-name">Acme</span>
			<span data-test="location">Remote</span>
		</li>
		<li class="JobCard">
			<a data-test="job-link" href="https://www.glassdoor.com/job-listing/data-engineer">Data Engineer</a>
			<span data-test="employer-name">Globex</span>
		</li>
	</body>`

	listings := extractGlassdoor(mustDoc(t, html), Query{Location: "remote", MaxJobs: 15})
	require.Len(t, listings, 2)

	assert.Equal(t, "Backend Engineer", listings[0].Title)
	assert.Equal(t, "Acme", listings[0].Company)
	assert.Equal(t, "Remote", listings[0].Location)
	assert.Equal(t, "https://www.glassdoor.com/Job/job-detail/backend-engineer?src=1", listings[0].SourceURL)

	// Card without its own location falls back to the query location.
	assert.Equal(t, "remote", listings[1].Location)
	assert.Equal(t, "https://www.glassdoor.com/job-listing/data-engineer", listings[1].SourceURL)
}

func TestExtractGlassdoorSkipsCardsWithoutLinks(t *testing.T) {
	html := `<body><li class="JobCard"><span data-test="employer-name">Acme</span></li></body>`
	assert.Empty(t, extractGlassdoor(mustDoc(t, html), Query{MaxJobs: 15}))
}
