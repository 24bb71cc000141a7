// Package main provides the entry point for the Job Scout API server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job_scout",
	Short: "Job Scout scrape and analysis service",
	Long:  "Job Scout scrapes job boards with a headless browser, enriches listings with full page content, and scores them against a candidate profile via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
