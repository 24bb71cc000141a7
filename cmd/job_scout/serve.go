package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/job-scout/internal/analysis"
	"github.com/jonathan/job-scout/internal/browser"
	"github.com/jonathan/job-scout/internal/config"
	"github.com/jonathan/job-scout/internal/db"
	"github.com/jonathan/job-scout/internal/enrich"
	"github.com/jonathan/job-scout/internal/llm"
	"github.com/jonathan/job-scout/internal/logger"
	"github.com/jonathan/job-scout/internal/pipeline"
	"github.com/jonathan/job-scout/internal/scrape"
	"github.com/jonathan/job-scout/internal/server"
	"github.com/jonathan/job-scout/internal/status"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes endpoints for triggering scrapes, polling progress, and reading scored listings.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.JSONLog, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	statusStore, err := newStatusStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	// One browser session shared by all sources, serialized internally.
	session := browser.NewSession(log, browser.NewHostLimiter(1, 2))
	orchestrator := scrape.NewDefaultOrchestrator(session, log)
	extractor := enrich.NewExtractor(session, log)

	var analyzer pipeline.JobAnalyzer
	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return fmt.Errorf("failed to create completion client: %w", err)
		}
		defer func() { _ = client.Close() }()
		analyzer = analysis.NewAnalyzer(client, log)
	} else {
		log.Warn("GEMINI_API_KEY not set; analysis endpoint disabled")
	}

	pipe := pipeline.New(database, statusStore, orchestrator, extractor, analyzer, log, pipeline.Options{
		Headless: cfg.Headless,
		MinJobs:  cfg.MinJobs,
		MaxJobs:  cfg.MaxJobs,
	})

	if cfg.ScrapeSchedule != "" {
		scheduler, err := pipeline.NewScheduler(cfg.ScrapeSchedule, pipe, database, log)
		if err != nil {
			return err
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	srv := server.New(server.Config{
		Port:               cfg.Port,
		JWTSecret:          cfg.JWTSecret,
		JWTExpirationHours: cfg.JWTExpirationHours,
	}, database, pipe, statusStore, log)

	return srv.Start()
}

func newStatusStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (status.Store, error) {
	if cfg.RedisURL == "" {
		return status.NewMemoryStore(), nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	log.Info("using redis scrape-status store")
	return status.NewRedisStore(client, status.DefaultTTL), nil
}
