package db

import (
	"time"

	"github.com/google/uuid"
)

// AIAnalysis is the JSON payload stored in the jobs.ai_analysis column.
// A nil MatchScore marks a job that has not been analyzed yet.
type AIAnalysis struct {
	MatchScore *int   `json:"match_score"`
	FitReason  string `json:"fit_reason,omitempty"`
}

// Job is a persisted job listing row.
type Job struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    *string    `json:"location,omitempty"`
	WorkMode    *string    `json:"work_mode,omitempty"`
	SourceURL   string     `json:"source_url"`
	Description *string    `json:"description,omitempty"`
	SalaryRange *string    `json:"salary_range,omitempty"`
	AIAnalysis  AIAnalysis `json:"ai_analysis"`
	Status      string     `json:"status"`
	AppliedAt   *time.Time `json:"applied_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// JobCreateInput is a new listing to persist for a user.
type JobCreateInput struct {
	Title     string
	Company   string
	Location  string
	SourceURL string
}

// JobUpdate carries partial updates to an existing job row. Nil fields
// are left untouched.
type JobUpdate struct {
	WorkMode    *string
	Description *string
	SalaryRange *string
	AIAnalysis  *AIAnalysis
}

// PersonalInfo holds the profile fields surfaced by the profile endpoint.
type PersonalInfo struct {
	FullName   *string `json:"full_name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	ResumeText *string `json:"resume_text,omitempty"`
}
