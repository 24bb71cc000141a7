package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-scout/internal/browser"
	"github.com/jonathan/job-scout/internal/logger"
	"github.com/jonathan/job-scout/internal/observability"
	"github.com/jonathan/job-scout/internal/scrape"
)

var (
	scrapeRole     string
	scrapeLocation string
	scrapeMinJobs  int
	scrapeMaxJobs  int
	scrapeHeadful  bool
	scrapeVerbose  bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run a one-shot scrape and print the listings",
	Long:  `Scrape the configured job boards once for the given role and location, without touching the database. Useful for checking selectors against live sites.`,
	RunE:  runScrape,
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeRole, "role", scrape.DefaultRole, "Role keywords to search for")
	scrapeCmd.Flags().StringVar(&scrapeLocation, "location", scrape.DefaultLocation, "Location to search in")
	scrapeCmd.Flags().IntVar(&scrapeMinJobs, "min-jobs", 15, "Stop querying further sources once this many listings are collected")
	scrapeCmd.Flags().IntVar(&scrapeMaxJobs, "max-jobs", 15, "Hard cap on returned listings")
	scrapeCmd.Flags().BoolVar(&scrapeHeadful, "headful", false, "Run the browser with a visible window")
	scrapeCmd.Flags().BoolVar(&scrapeVerbose, "verbose", false, "Verbose/debug logging")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	if scrapeMaxJobs < scrapeMinJobs {
		return fmt.Errorf("--max-jobs (%d) must be >= --min-jobs (%d)", scrapeMaxJobs, scrapeMinJobs)
	}

	log, err := logger.New(false, scrapeVerbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	session := browser.NewSession(log, browser.NewHostLimiter(1, 2))
	orchestrator := scrape.NewDefaultOrchestrator(session, log)

	listings := orchestrator.ScrapeAll(cmd.Context(), scrape.Options{
		Role:     scrapeRole,
		Location: scrapeLocation,
		Headless: !scrapeHeadful,
		MinJobs:  scrapeMinJobs,
		MaxJobs:  scrapeMaxJobs,
	})

	observability.NewPrinter(os.Stdout).PrintListings(listings)
	return nil
}
