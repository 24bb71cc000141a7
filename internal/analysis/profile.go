// Package analysis scores scraped job listings against a candidate profile
// using a language-model completion call, and renders the profile text that
// call consumes.
package analysis

import (
	"fmt"
	"strings"
)

// DefaultProfile is used when the user has no stored preferences and no
// résumé text; the model still needs some candidate context to score against.
const DefaultProfile = "Software engineer, full-stack, open to remote roles."

// Preferences is the candidate's stored job-search preferences. All fields
// are optional; absent fields are simply omitted from the rendered profile.
type Preferences struct {
	JobStatus      string   `json:"job_status,omitempty"`
	ExpectedSalary string   `json:"expected_salary,omitempty"`
	Roles          []string `json:"roles,omitempty"`
	Locations      []string `json:"locations,omitempty"`
	WorkModes      []string `json:"work_modes,omitempty"`
	SkillsPrefer   []string `json:"skills_prefer,omitempty"`
}

// IsZero reports whether no preference field is set.
func (p Preferences) IsZero() bool {
	return p.JobStatus == "" && p.ExpectedSalary == "" &&
		len(p.Roles) == 0 && len(p.Locations) == 0 &&
		len(p.WorkModes) == 0 && len(p.SkillsPrefer) == 0
}

// BuildProfileText renders preferences and résumé text into a single
// prompt-ready profile string: a fixed-header preferences section with one
// line per present field, then the trimmed résumé verbatim. Deterministic;
// returns DefaultProfile when there is nothing to render.
func BuildProfileText(prefs Preferences, resumeText string) string {
	resumeText = strings.TrimSpace(resumeText)
	if prefs.IsZero() && resumeText == "" {
		return DefaultProfile
	}

	parts := []string{"### CANDIDATE PREFERENCES & CONSTRAINTS ###"}
	if prefs.JobStatus != "" {
		parts = append(parts, fmt.Sprintf("Current Status: %s", prefs.JobStatus))
	}
	if prefs.ExpectedSalary != "" {
		parts = append(parts, fmt.Sprintf("Expected Salary: %s", prefs.ExpectedSalary))
	}
	if len(prefs.Locations) > 0 {
		parts = append(parts, fmt.Sprintf("Target Locations: %s", strings.Join(prefs.Locations, ", ")))
	}
	if len(prefs.WorkModes) > 0 {
		parts = append(parts, fmt.Sprintf("Preferred Work Modes: %s", strings.Join(prefs.WorkModes, ", ")))
	}
	if len(prefs.SkillsPrefer) > 0 {
		parts = append(parts, fmt.Sprintf("Key Skills to highlight: %s", strings.Join(prefs.SkillsPrefer, ", ")))
	}

	if resumeText != "" {
		parts = append(parts, "\n### PROFESSIONAL EXPERIENCE (RESUME) ###", resumeText)
	}

	return strings.Join(parts, "\n")
}
