// Package report renders verification run reports.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/citeguard/citeguard/internal/model"
)

// Renderer writes run reports to files and the terminal.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON.
func (r *Renderer) RenderJSON(report *model.RunReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderSummary prints a human-readable run summary to stdout.
func (r *Renderer) RenderSummary(report *model.RunReport) {
	fmt.Println()
	fmt.Println("Citation verification")
	fmt.Println(strings.Repeat("─", 55))
	fmt.Printf("  Pairs checked:     %d\n", report.TotalPairs)
	fmt.Printf("  Verified:          %d\n", report.Verified)
	fmt.Printf("  Not verified:      %d\n", report.NotVerified)
	fmt.Printf("  Verification rate: %.0f%%\n", report.VerificationRate*100)
	if report.Verified > 0 {
		fmt.Printf("  Avg confidence:    %.0f/100\n", report.AverageConfidence)
	}
	fmt.Println(strings.Repeat("─", 55))

	for _, res := range report.Results {
		mark := "✗"
		if res.Verification.Found {
			mark = "✓"
		}
		fmt.Printf("  %s [%d] %s\n", mark, res.CitationNumber, truncate(res.SourceTitle, 60))
		if res.Verification.Found {
			fmt.Printf("      confidence %d/100, keywords %d/%d\n",
				res.Verification.Confidence,
				res.Verification.TotalKeywordsFound,
				res.Verification.TotalKeywordsSearched)
		} else if res.Verification.Reason != "" {
			fmt.Printf("      %s\n", res.Verification.Reason)
		}
	}

	if report.LLM != nil && report.LLM.Enabled {
		fmt.Println(strings.Repeat("─", 55))
		fmt.Println("  LLM summary (informational, never affects verdicts):")
		for _, line := range strings.Split(report.LLM.SummaryMD, "\n") {
			fmt.Printf("  %s\n", line)
		}
	}

	if r.includeFooter {
		fmt.Println(strings.Repeat("─", 55))
		fmt.Println("  citeguard evaluates keyword support, not truth.")
	}
	fmt.Println()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
