package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	prompt, err := Get("analysis.json", "match-system")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
}

func TestGetMissingKey(t *testing.T) {
	_, err := Get("analysis.json", "no-such-prompt")
	assert.Error(t, err)
}

func TestGetMissingFile(t *testing.T) {
	_, err := Get("missing.json", "any")
	assert.Error(t, err)
}

func TestMatchJobPromptPlaceholders(t *testing.T) {
	prompt := MustGet("analysis.json", "match-job")
	assert.Contains(t, prompt, "{{.Profile}}")
	assert.Contains(t, prompt, "{{.JobInput}}")
}

func TestFormat(t *testing.T) {
	got := Format("profile: {{.Profile}}, job: {{.JobInput}}", map[string]string{
		"Profile":  "p-text",
		"JobInput": "j-text",
	})
	assert.Equal(t, "profile: p-text, job: j-text", got)
}

func TestFormatLeavesUnknownPlaceholders(t *testing.T) {
	got := Format("keep {{.Unknown}}", map[string]string{"Profile": "x"})
	assert.Equal(t, "keep {{.Unknown}}", got)
}
