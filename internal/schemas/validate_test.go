package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAnalysisResponse(t *testing.T) {
	valid := []struct {
		name string
		json string
	}{
		{"full response", `{"match_score": 85, "fit_reason": "good", "work_mode": "Remote", "description": "d", "salary_range": "100k"}`},
		{"minimal response", `{}`},
		{"null optionals", `{"match_score": null, "work_mode": null}`},
		{"string score tolerated", `{"match_score": "high"}`},
		{"extra keys tolerated", `{"match_score": 10, "unexpected": true}`},
		{"mistyped fit_reason tolerated", `{"match_score": 90, "fit_reason": 42}`},
		{"mistyped optionals tolerated", `{"work_mode": ["remote"], "salary_range": 120000}`},
	}
	for _, tt := range valid {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, ValidateAnalysisResponse(tt.json))
		})
	}

	invalid := []struct {
		name string
		json string
	}{
		{"not json", "this is prose, not JSON"},
		{"array instead of object", `[1, 2, 3]`},
		{"bare string", `"just a string"`},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateAnalysisResponse(tt.json))
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidateAnalysisResponse(`[1, 2, 3]`)
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "analysis_response.schema.json", verr.Schema)
	assert.NotEmpty(t, verr.Errors)
	assert.Contains(t, err.Error(), "schema analysis_response.schema.json")
}
