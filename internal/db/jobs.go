package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// pendingDescription is stored for freshly scraped jobs until enrichment
// replaces it with real page content.
const pendingDescription = "Click link for full details"

// InsertJobs persists a batch of scraped listings for a user. Every row
// starts with a null match score so the analyzer can find it later. Empty
// source URLs are stored as NULL so they never collide on the per-user
// unique key. Returns the number of rows inserted.
func (db *DB) InsertJobs(ctx context.Context, userID uuid.UUID, inputs []JobCreateInput) (int, error) {
	if len(inputs) == 0 {
		return 0, nil
	}

	pendingAnalysis, err := json.Marshal(AIAnalysis{MatchScore: nil})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal analysis sentinel: %w", err)
	}

	batch := &pgx.Batch{}
	for _, in := range inputs {
		batch.Queue(`
			INSERT INTO jobs (user_id, title, company, location, source_url, description, ai_analysis, status)
			VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, 'new')
			ON CONFLICT (user_id, source_url) DO NOTHING`,
			userID, in.Title, in.Company, in.Location, in.SourceURL, pendingDescription, pendingAnalysis)
	}

	results := db.pool.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for range inputs {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("failed to insert job: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

// ListUnanalyzedJobs returns the user's jobs whose analysis has not run yet.
func (db *DB) ListUnanalyzedJobs(ctx context.Context, userID uuid.UUID) ([]Job, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, user_id, title, company, location, work_mode,
		       COALESCE(source_url, ''),
		       description, salary_range, ai_analysis, status, applied_at,
		       created_at, updated_at
		FROM jobs
		WHERE user_id = $1 AND (ai_analysis->>'match_score') IS NULL
		ORDER BY created_at ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unanalyzed jobs: %w", err)
	}
	defer rows.Close()

	return scanJobs(rows)
}

// ListJobs returns the user's jobs ordered by highest match score first,
// then most recently updated. Limit is applied as given.
func (db *DB) ListJobs(ctx context.Context, userID uuid.UUID, limit int) ([]Job, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, user_id, title, company, location, work_mode,
		       COALESCE(source_url, ''),
		       description, salary_range, ai_analysis, status, applied_at,
		       created_at, updated_at
		FROM jobs
		WHERE user_id = $1
		ORDER BY (ai_analysis->>'match_score')::numeric DESC NULLS LAST, updated_at DESC
		LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	return scanJobs(rows)
}

// UpdateJob applies the non-nil fields of update to a job row. A no-op
// update still bumps updated_at.
func (db *DB) UpdateJob(ctx context.Context, jobID uuid.UUID, update JobUpdate) error {
	sets := []string{"updated_at = now()"}
	args := []any{jobID}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.WorkMode != nil {
		add("work_mode", *update.WorkMode)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.SalaryRange != nil {
		add("salary_range", *update.SalaryRange)
	}
	if update.AIAnalysis != nil {
		payload, err := json.Marshal(update.AIAnalysis)
		if err != nil {
			return fmt.Errorf("failed to marshal analysis payload: %w", err)
		}
		add("ai_analysis", payload)
	}

	query := fmt.Sprintf("UPDATE jobs SET %s WHERE id = $1", strings.Join(sets, ", "))
	if _, err := db.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	return nil
}

func scanJobs(rows pgx.Rows) ([]Job, error) {
	var jobs []Job
	for rows.Next() {
		var (
			j        Job
			analysis []byte
		)
		err := rows.Scan(&j.ID, &j.UserID, &j.Title, &j.Company, &j.Location,
			&j.WorkMode, &j.SourceURL, &j.Description, &j.SalaryRange,
			&analysis, &j.Status, &j.AppliedAt, &j.CreatedAt, &j.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		if len(analysis) > 0 {
			if err := json.Unmarshal(analysis, &j.AIAnalysis); err != nil {
				return nil, fmt.Errorf("failed to decode analysis payload: %w", err)
			}
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read job rows: %w", err)
	}
	return jobs, nil
}
