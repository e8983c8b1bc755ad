package cmd

import (
	"fmt"
	"io"
	"strings"

	"duck-sync/internal/engine"
)

// printReport writes the human-facing summary of a run.
func printReport(w io.Writer, r *engine.SyncReport) {
	fmt.Fprintln(w, "\n📊 Summary Report:")
	for i, j := range r.Jobs {
		icon := "✓"
		switch j.Status {
		case engine.StatusFailed:
			icon = "!"
		case engine.StatusSkipped:
			icon = "-"
		}

		verified := "unverified"
		if j.Verified {
			verified = fmt.Sprintf("%d in destination", j.VerifiedRows)
		}
		origin := ""
		if j.Discovered {
			origin = " (discovered)"
		}

		fmt.Fprintf(w, "[%s] [%02d/%02d] %-40s : %-9s %d rows (%s)%s\n",
			icon, i+1, len(r.Jobs), j.Table, j.Status, j.RowsCopied, verified, origin)
		if j.Error != "" {
			fmt.Fprintf(w, "    └ Error: %s\n", j.Error)
		}
	}
	fmt.Fprintln(w, strings.Repeat("-", 50))
	fmt.Fprintf(w, "Succeeded: %d  Failed: %d  Skipped: %d  Rows Copied: %d\n",
		r.Succeeded, r.Failed, r.Skipped, r.RowsCopied)

	if len(r.Destination) > 0 {
		fmt.Fprintln(w, "\n🏠 ClickHouse Table Summary:")
		current := ""
		for _, st := range r.Destination {
			if st.Schema != current {
				current = st.Schema
				fmt.Fprintf(w, "\n%s Schema:\n", strings.ToUpper(current))
			}
			fmt.Fprintf(w, "  %s: %d rows\n", st.Name, st.Rows)
		}
	}

	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "⚠️  %s\n", warn)
	}
}
