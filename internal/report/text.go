package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/ppiankov/costspectre/internal/engine"
)

// TextReporter writes a human-readable summary of the report.
type TextReporter struct {
	Writer io.Writer
}

// Generate writes the text summary.
func (t *TextReporter) Generate(r *engine.Report) error {
	w := t.Writer

	fmt.Fprintf(w, "costspectre report — project=%s environment=%s workspace=%s\n", r.Project, r.Environment, r.Workspace)
	fmt.Fprintf(w, "generated at %s\n\n", r.Timestamp.Format("2006-01-02 15:04:05 UTC"))

	for _, set := range r.FindingSets {
		fmt.Fprintf(w, "%s\n", set.Category)
		for _, finding := range set.Findings {
			fmt.Fprintf(w, "  [%s] %s\n", finding.Kind, finding.Message)
		}
		for _, rec := range set.Recommendations {
			fmt.Fprintf(w, "  -> %s\n", rec)
		}
		if set.PotentialSavings > 0 {
			fmt.Fprintf(w, "  potential savings: %.0f/month\n", set.PotentialSavings)
		}
		fmt.Fprintln(w)
	}

	if len(r.HealthChecks) > 0 {
		fmt.Fprintln(w, "Health checks")
		categories := make([]string, 0, len(r.HealthChecks))
		for category := range r.HealthChecks {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			verdict := r.HealthChecks[category]
			fmt.Fprintf(w, "  %-12s %s\n", category, verdict.Status)
			for _, issue := range verdict.Issues {
				fmt.Fprintf(w, "    issue:   %s\n", issue)
			}
			for _, warning := range verdict.Warnings {
				fmt.Fprintf(w, "    warning: %s\n", warning)
			}
		}
		fmt.Fprintln(w)
	}

	if len(r.Recommendations) > 0 {
		fmt.Fprintln(w, "Recommendations")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(w, "  -> %s\n", rec)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total potential savings: %.0f/month\n", r.TotalPotentialSavings())
	return nil
}
