// Package observability provides formatted output utilities for CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/job-scout/internal/scrape"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
)

// Printer handles formatted output for the CLI scrape command.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintListings outputs a human-readable summary of scraped listings.
func (p *Printer) PrintListings(listings []scrape.Listing) {
	if len(listings) == 0 {
		p.printBox("Scrape Results", "No listings found.")
		return
	}

	var sb strings.Builder
	for i, l := range listings {
		sb.WriteString(fmt.Sprintf("%2d. %s — %s\n", i+1, l.Title, l.Company))
		if l.Location != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", l.Location))
		}
		sb.WriteString(fmt.Sprintf("    %s\n", l.SourceURL))
	}
	p.printBox(fmt.Sprintf("Scrape Results (%d listings)", len(listings)), strings.TrimRight(sb.String(), "\n"))
}
