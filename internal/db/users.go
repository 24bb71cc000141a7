package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-scout/internal/analysis"
)

// GetUserPreferences loads a user's job-search preferences. Returns
// (nil, nil) when the user has not saved any.
func (db *DB) GetUserPreferences(ctx context.Context, userID uuid.UUID) (*analysis.Preferences, error) {
	var prefs analysis.Preferences
	var jobStatus, expectedSalary *string
	err := db.pool.QueryRow(ctx, `
		SELECT job_status, expected_salary, roles, locations, work_modes, skills_prefer
		FROM user_preferences
		WHERE user_id = $1`,
		userID).Scan(&jobStatus, &expectedSalary, &prefs.Roles,
		&prefs.Locations, &prefs.WorkModes, &prefs.SkillsPrefer)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user preferences: %w", err)
	}
	if jobStatus != nil {
		prefs.JobStatus = *jobStatus
	}
	if expectedSalary != nil {
		prefs.ExpectedSalary = *expectedSalary
	}
	return &prefs, nil
}

// ListUsersWithPreferences returns the IDs of users who have saved
// job-search preferences. Used by the scheduled scrape runner.
func (db *DB) ListUsersWithPreferences(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := db.pool.Query(ctx, `SELECT user_id FROM user_preferences`)
	if err != nil {
		return nil, fmt.Errorf("failed to query preference users: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user ids: %w", err)
	}
	return ids, nil
}

// GetResumeText loads the user's stored resume text, or "" when absent.
func (db *DB) GetResumeText(ctx context.Context, userID uuid.UUID) (string, error) {
	var resume *string
	err := db.pool.QueryRow(ctx, `
		SELECT resume_text FROM user_personal_info WHERE user_id = $1`,
		userID).Scan(&resume)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query resume text: %w", err)
	}
	if resume == nil {
		return "", nil
	}
	return *resume, nil
}

// GetPersonalInfo loads the user's profile record. Returns (nil, nil)
// when no record exists.
func (db *DB) GetPersonalInfo(ctx context.Context, userID uuid.UUID) (*PersonalInfo, error) {
	var info PersonalInfo
	err := db.pool.QueryRow(ctx, `
		SELECT full_name, email, phone, resume_text
		FROM user_personal_info
		WHERE user_id = $1`,
		userID).Scan(&info.FullName, &info.Email, &info.Phone, &info.ResumeText)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query personal info: %w", err)
	}
	return &info, nil
}
