package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChallengeSignatureDetect(t *testing.T) {
	sig := challengeSignature{
		titleMarkers: []string{"just a moment", "security check"},
		bodyMarkers:  []string{"additional verification required", "your ray id"},
	}

	tests := []struct {
		name  string
		title string
		body  string
		want  bool
	}{
		{"clean page", "Software Engineer Jobs | Indeed", "Browse 500 open positions", false},
		{"title marker", "Just a moment...", "", true},
		{"title marker mixed case", "SECURITY CHECK", "", true},
		{"body marker", "Indeed", "Additional Verification Required before you continue", true},
		{"ray id in body", "Indeed", "Something went wrong. Your Ray ID: 8abc123", true},
		{"empty page fails open", "", "", false},
		{"marker past the checked prefix is the caller's concern", "Results", "normal results text", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sig.Detect(tt.title, tt.body))
		})
	}
}

func TestGlassdoorChallengeMarkers(t *testing.T) {
	sig := challengeSignature{
		titleMarkers: []string{"just a moment", "security check"},
		bodyMarkers:  []string{"help us protect glassdoor", "verify that you're a real person"},
	}

	assert.True(t, sig.Detect("Glassdoor", "Help us protect Glassdoor by verifying that you're a real person."))
	assert.False(t, sig.Detect("Glassdoor Job Search", "Find the job that fits your life"))
}
