package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// UserLister enumerates the users eligible for scheduled scrapes.
type UserLister interface {
	ListUsersWithPreferences(ctx context.Context) ([]uuid.UUID, error)
}

// Scheduler runs unattended scrape passes on a cron schedule for every
// user with saved preferences.
type Scheduler struct {
	cron     *cron.Cron
	pipeline *Pipeline
	users    UserLister
	logger   *zap.Logger
}

// NewScheduler registers the scrape job under the given cron spec.
func NewScheduler(spec string, p *Pipeline, users UserLister, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(),
		pipeline: p,
		users:    users,
		logger:   logger,
	}
	if _, err := s.cron.AddFunc(spec, s.runAll); err != nil {
		return nil, fmt.Errorf("invalid scrape schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins schedule evaluation in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scrape scheduler started")
}

// Stop waits for any in-flight run to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scrape scheduler stopped")
}

func (s *Scheduler) runAll() {
	ctx := context.Background()
	ids, err := s.users.ListUsersWithPreferences(ctx)
	if err != nil {
		s.logger.Error("scheduled scrape: failed to list users", zap.Error(err))
		return
	}
	s.logger.Info("scheduled scrape starting", zap.Int("users", len(ids)))
	for _, id := range ids {
		s.pipeline.RunScrape(ctx, id)
	}
}
