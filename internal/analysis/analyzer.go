package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/job-scout/internal/llm"
	"github.com/jonathan/job-scout/internal/prompts"
	"github.com/jonathan/job-scout/internal/schemas"
)

// MinJobContentLen is the floor below which job content is not worth a model
// call at all.
const MinJobContentLen = 50

// Prompt size bounds keep cost and latency predictable.
const (
	maxProfileChars = 2000
	maxJobChars     = 15000
)

// Output field caps limit what is merged back into storage.
const (
	maxFitReasonChars   = 2000
	maxDescriptionChars = 12000
	maxSalaryRangeChars = 200
)

// fallbackScore is used whenever the model reply cannot be trusted; a
// midpoint score never promotes or buries a listing.
const fallbackScore = 50

// Result is the partial-update record produced by analyzing one listing.
// MatchScore and FitReason are always present. The pointer fields are nil
// when the model could not determine them, and nil fields must never be
// written to storage: a merge-by-presence policy must not overwrite existing
// data with an absence.
type Result struct {
	MatchScore  int     `json:"match_score"`
	FitReason   string  `json:"fit_reason"`
	WorkMode    *string `json:"work_mode,omitempty"`
	Description *string `json:"description,omitempty"`
	SalaryRange *string `json:"salary_range,omitempty"`
}

// ContentGenerator is the completion capability the analyzer depends on.
// Satisfied by llm.Client; tests substitute canned responses.
type ContentGenerator interface {
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Analyzer scores job content against a candidate profile.
type Analyzer struct {
	gen    ContentGenerator
	logger *zap.Logger
}

// NewAnalyzer creates an analyzer over the given completion client.
func NewAnalyzer(gen ContentGenerator, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{gen: gen, logger: logger}
}

// Analyze sends one completion request comparing jobContent (raw HTML or
// plain text) against profileText and returns a validated, clamped Result.
// Analyze never returns an error: a request or parse failure yields the
// midpoint fallback score so one bad listing never aborts a batch.
func (a *Analyzer) Analyze(ctx context.Context, jobContent, profileText string) Result {
	jobContent = strings.TrimSpace(jobContent)
	if len(jobContent) < MinJobContentLen {
		a.logger.Warn("job content too short to analyze", zap.Int("length", len(jobContent)))
		return Result{MatchScore: 0, FitReason: "Job content too short to analyze."}
	}

	userPrompt := prompts.Format(prompts.MustGet("analysis.json", "match-job"), map[string]string{
		"Profile":  truncate(profileText, maxProfileChars),
		"JobInput": truncate(jobContent, maxJobChars),
	})
	systemPrompt := prompts.MustGet("analysis.json", "match-system")

	raw, err := a.gen.GenerateJSON(ctx, systemPrompt, userPrompt)
	if err != nil {
		a.logger.Warn("analysis request failed", zap.Error(err))
		return fallbackResult(err)
	}

	return parseResponse(a.logger, raw)
}

// parseResponse validates and sanitizes the raw model reply. Field-level
// problems (a non-numeric score, a blank work mode) degrade per field;
// only an untrustworthy reply as a whole triggers the global fallback.
func parseResponse(logger *zap.Logger, raw string) Result {
	raw = llm.CleanJSONBlock(raw)

	if err := schemas.ValidateAnalysisResponse(raw); err != nil {
		logger.Warn("analysis response failed schema validation", zap.Error(err))
		return fallbackResult(err)
	}

	var payload struct {
		WorkMode    any `json:"work_mode"`
		Description any `json:"description"`
		SalaryRange any `json:"salary_range"`
		MatchScore  any `json:"match_score"`
		FitReason   any `json:"fit_reason"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		logger.Warn("analysis response is not valid JSON", zap.Error(err))
		return fallbackResult(err)
	}

	result := Result{
		MatchScore: clampScore(payload.MatchScore),
		FitReason:  sanitizeReason(payload.FitReason),
	}
	if v := optionalString(payload.WorkMode, 0); v != nil {
		result.WorkMode = v
	}
	if v := optionalString(payload.Description, maxDescriptionChars); v != nil {
		result.Description = v
	}
	if v := optionalString(payload.SalaryRange, maxSalaryRangeChars); v != nil {
		result.SalaryRange = v
	}
	return result
}

func fallbackResult(cause error) Result {
	return Result{
		MatchScore: fallbackScore,
		FitReason:  truncate(fmt.Sprintf("Analysis failed: %v", cause), maxFitReasonChars),
	}
}

// clampScore coerces the model's match_score into [0,100], defaulting to the
// midpoint when it is not numeric.
func clampScore(v any) int {
	f, ok := v.(float64)
	if !ok {
		return fallbackScore
	}
	score := int(f)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func sanitizeReason(v any) string {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "Analysis completed."
	}
	return truncate(s, maxFitReasonChars)
}

// optionalString returns a trimmed, capped copy of v when it is a non-blank
// string, else nil. Absent, null, blank and mistyped values are all omitted,
// never surfaced as empty strings.
func optionalString(v any, maxLen int) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if maxLen > 0 {
		s = truncate(s, maxLen)
	}
	return &s
}

func truncate(s string, n int) string {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}
