package scrape

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/job-scout/internal/browser"
)

// Defaults applied when the caller supplies empty query terms.
const (
	DefaultRole     = "software engineer"
	DefaultLocation = "remote"
)

// Options configures one multi-source scrape pass.
type Options struct {
	Role     string
	Location string
	Headless bool
	// MinJobs is the target count: lower-priority sources are only queried
	// while the accumulated unique count is below it.
	MinJobs int
	// MaxJobs caps the returned slice regardless of how much was collected.
	MaxJobs int
}

// Orchestrator fans out to sources in fixed priority order, deduplicating by
// source URL. Sources are queried sequentially, never concurrently: parallel
// browser sessions multiply resource cost and the odds of tripping challenge
// pages on several boards at once.
type Orchestrator struct {
	sources []Source
	logger  *zap.Logger
}

// NewOrchestrator creates an orchestrator over the given sources in priority
// order (highest first).
func NewOrchestrator(logger *zap.Logger, sources ...Source) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{sources: sources, logger: logger}
}

// NewDefaultOrchestrator wires the four production sources in their fixed
// priority order: Indeed, ZipRecruiter, Glassdoor, LinkedIn.
func NewDefaultOrchestrator(loader browser.Loader, logger *zap.Logger) *Orchestrator {
	return NewOrchestrator(logger,
		NewIndeed(loader, logger),
		NewZipRecruiter(loader, logger),
		NewGlassdoor(loader, logger),
		NewLinkedIn(loader, logger),
	)
}

// ScrapeAll queries sources in priority order until MinJobs unique listings
// are collected or the sources are exhausted, then returns at most MaxJobs.
// Listings with an empty SourceURL are kept (they carry no dedup key) but do
// not enter the seen set. ScrapeAll never fails; the worst case is an empty
// slice.
func (o *Orchestrator) ScrapeAll(ctx context.Context, opts Options) []Listing {
	if opts.Role == "" {
		opts.Role = DefaultRole
	}
	if opts.Location == "" {
		opts.Location = DefaultLocation
	}

	var combined []Listing
	seen := make(map[string]bool)

	addUnique := func(listings []Listing) {
		for _, l := range listings {
			if l.SourceURL == "" {
				combined = append(combined, l)
				continue
			}
			if seen[l.SourceURL] {
				continue
			}
			seen[l.SourceURL] = true
			combined = append(combined, l)
		}
	}

	for i, src := range o.sources {
		limit := opts.MaxJobs
		if i > 0 {
			// Lower-priority sources only fill the remaining gap.
			limit = opts.MinJobs - len(combined)
		}
		if i > 0 && limit <= 0 {
			break
		}

		got := src.Scrape(ctx, Query{
			Role:     opts.Role,
			Location: opts.Location,
			Headless: opts.Headless,
			MaxJobs:  limit,
		})
		addUnique(got)
		o.logger.Info("source finished",
			zap.String("source", src.Name()),
			zap.Int("returned", len(got)),
			zap.Int("total", len(combined)))

		if len(combined) >= opts.MinJobs {
			break
		}
	}

	if len(combined) > opts.MaxJobs {
		combined = combined[:opts.MaxJobs]
	}
	return combined
}
