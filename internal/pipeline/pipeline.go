// Package pipeline provides the high-level orchestration for scraping and
// analyzing a user's job listings as background units of work.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/job-scout/internal/analysis"
	"github.com/jonathan/job-scout/internal/db"
	"github.com/jonathan/job-scout/internal/scrape"
	"github.com/jonathan/job-scout/internal/status"
)

// Scraper runs the multi-source scrape fan-out.
type Scraper interface {
	ScrapeAll(ctx context.Context, opts scrape.Options) []scrape.Listing
}

// Enricher fetches rendered page content for a single listing URL.
type Enricher interface {
	PageContent(ctx context.Context, url string, maxChars int) string
}

// JobAnalyzer scores one job against a candidate profile.
type JobAnalyzer interface {
	Analyze(ctx context.Context, jobContent, profileText string) analysis.Result
}

// JobStore is the persistence surface the pipeline needs.
type JobStore interface {
	GetUserPreferences(ctx context.Context, userID uuid.UUID) (*analysis.Preferences, error)
	GetResumeText(ctx context.Context, userID uuid.UUID) (string, error)
	InsertJobs(ctx context.Context, userID uuid.UUID, inputs []db.JobCreateInput) (int, error)
	ListUnanalyzedJobs(ctx context.Context, userID uuid.UUID) ([]db.Job, error)
	UpdateJob(ctx context.Context, jobID uuid.UUID, update db.JobUpdate) error
}

// maxEnrichedChars caps page content handed to the analyzer and stored as
// a listing description.
const maxEnrichedChars = 15000

// Options holds the per-run scrape parameters.
type Options struct {
	Headless bool
	MinJobs  int
	MaxJobs  int
}

// Pipeline wires the scraper, enricher and analyzer to storage. Analyzer
// may be nil when no completion backend is configured; RunAnalyze then
// fails fast.
type Pipeline struct {
	store    JobStore
	status   status.Store
	scraper  Scraper
	enricher Enricher
	analyzer JobAnalyzer
	logger   *zap.Logger
	opts     Options
}

func New(store JobStore, statusStore status.Store, scraper Scraper, enricher Enricher, analyzer JobAnalyzer, logger *zap.Logger, opts Options) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		store:    store,
		status:   statusStore,
		scraper:  scraper,
		enricher: enricher,
		analyzer: analyzer,
		logger:   logger,
		opts:     opts,
	}
}

// CanAnalyze reports whether a completion backend is configured.
func (p *Pipeline) CanAnalyze() bool {
	return p.analyzer != nil
}

// RunScrape executes one scrape pass for the user: mark processing, fan
// out across sources, persist new listings, mark finished or failed. It
// is meant to run as a detached background task; errors are recorded in
// the status marker rather than returned to a caller.
func (p *Pipeline) RunScrape(ctx context.Context, userID uuid.UUID) {
	log := p.logger.With(zap.String("user_id", userID.String()))

	if err := p.status.Set(ctx, userID.String(), status.Status{State: status.StateProcessing}); err != nil {
		log.Warn("failed to record processing status", zap.Error(err))
	}

	inserted, err := p.scrapeOnce(ctx, userID)

	now := time.Now().UTC()
	final := status.Status{State: status.StateFinished, FinishedAt: &now}
	if err != nil {
		log.Error("scrape run failed", zap.Error(err))
		final.State = status.StateFailed
	} else {
		log.Info("scrape run finished", zap.Int("inserted", inserted))
	}
	if serr := p.status.Set(ctx, userID.String(), final); serr != nil {
		log.Warn("failed to record final status", zap.Error(serr))
	}
}

func (p *Pipeline) scrapeOnce(ctx context.Context, userID uuid.UUID) (int, error) {
	prefs, err := p.store.GetUserPreferences(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("loading preferences: %w", err)
	}

	opts := scrape.Options{
		Role:     scrape.DefaultRole,
		Location: scrape.DefaultLocation,
		Headless: p.opts.Headless,
		MinJobs:  p.opts.MinJobs,
		MaxJobs:  p.opts.MaxJobs,
	}
	if prefs != nil {
		if len(prefs.Roles) > 0 && prefs.Roles[0] != "" {
			opts.Role = prefs.Roles[0]
		}
		if len(prefs.Locations) > 0 && prefs.Locations[0] != "" {
			opts.Location = prefs.Locations[0]
		}
	}

	listings := p.scraper.ScrapeAll(ctx, opts)
	if len(listings) == 0 {
		return 0, fmt.Errorf("no listings scraped for role %q in %q", opts.Role, opts.Location)
	}

	inputs := make([]db.JobCreateInput, 0, len(listings))
	for _, l := range listings {
		inputs = append(inputs, db.JobCreateInput{
			Title:     l.Title,
			Company:   l.Company,
			Location:  l.Location,
			SourceURL: l.SourceURL,
		})
	}

	inserted, err := p.store.InsertJobs(ctx, userID, inputs)
	if err != nil {
		return inserted, fmt.Errorf("persisting listings: %w", err)
	}
	return inserted, nil
}

// RunAnalyze scores every not-yet-analyzed job for the user. Listings are
// processed one at a time; a failure on one listing is logged and the
// loop continues. Returns the number of jobs analyzed.
func (p *Pipeline) RunAnalyze(ctx context.Context, userID uuid.UUID) (int, error) {
	if p.analyzer == nil {
		return 0, fmt.Errorf("no completion backend configured")
	}
	log := p.logger.With(zap.String("user_id", userID.String()))

	prefs, err := p.store.GetUserPreferences(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("loading preferences: %w", err)
	}
	resume, err := p.store.GetResumeText(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("loading resume: %w", err)
	}
	var p2 analysis.Preferences
	if prefs != nil {
		p2 = *prefs
	}
	profile := analysis.BuildProfileText(p2, resume)

	jobs, err := p.store.ListUnanalyzedJobs(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("listing jobs: %w", err)
	}
	log.Info("starting analysis", zap.Int("jobs", len(jobs)))

	analyzed := 0
	for _, job := range jobs {
		if err := p.analyzeJob(ctx, job, profile); err != nil {
			log.Warn("job analysis failed",
				zap.String("job_id", job.ID.String()),
				zap.Error(err))
			continue
		}
		analyzed++
	}
	log.Info("analysis finished", zap.Int("analyzed", analyzed), zap.Int("total", len(jobs)))
	return analyzed, nil
}

func (p *Pipeline) analyzeJob(ctx context.Context, job db.Job, profile string) error {
	content := p.enricher.PageContent(ctx, job.SourceURL, maxEnrichedChars)
	if len(content) < analysis.MinJobContentLen && job.Description != nil {
		// Fall back to whatever description the scrape stored.
		content = *job.Description
	}

	result := p.analyzer.Analyze(ctx, content, profile)

	score := result.MatchScore
	update := db.JobUpdate{
		WorkMode:    result.WorkMode,
		Description: result.Description,
		SalaryRange: result.SalaryRange,
		AIAnalysis: &db.AIAnalysis{
			MatchScore: &score,
			FitReason:  result.FitReason,
		},
	}
	if err := p.store.UpdateJob(ctx, job.ID, update); err != nil {
		return fmt.Errorf("persisting analysis: %w", err)
	}
	return nil
}
