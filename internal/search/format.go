// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pdiddy/scholar-federator/pkg/types"
)

// FormatTable writes an aggregate result as a human-readable table to w.
func FormatTable(res types.AggregateResult, w io.Writer) {
	if len(res.Resources) == 0 {
		fmt.Fprintln(w, "No results found.")
	} else {
		fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-4s  %-9s  %s\n",
			"Rank", "Title", "Authors", "Year", "Kind", "Source")
		fmt.Fprintln(w, strings.Repeat("-", 116))

		for i, r := range res.Resources {
			year := ""
			if r.Year > 0 {
				year = fmt.Sprintf("%d", r.Year)
			}
			fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-4s  %-9s  %s\n",
				i+1, truncate(r.Title, 60), formatAuthors(r.Authors), year, r.Kind, r.Source)
		}
		fmt.Fprintf(w, "\n%d results (%s)\n", len(res.Resources), formatBreakdown(res.SourceBreakdown))
	}

	if len(res.Web) > 0 {
		fmt.Fprintln(w, "\nWeb:")
		for i, hit := range res.Web {
			fmt.Fprintf(w, "%-4d  %s\n      %s\n", i+1, truncate(hit.Title, 100), hit.URL)
		}
	}

	if res.Degraded {
		fmt.Fprintf(w, "\nsome sources failed: %s\n", strings.Join(res.FailedSources, ", "))
	}
}

// FormatJSON writes an aggregate result as indented JSON to w.
func FormatJSON(res types.AggregateResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// formatBreakdown renders source counts as "arxiv: 3, openalex: 2", sorted by source.
func formatBreakdown(breakdown map[string]int) string {
	sources := make([]string, 0, len(breakdown))
	for s := range breakdown {
		sources = append(sources, s)
	}
	sort.Strings(sources)

	parts := make([]string, len(sources))
	for i, s := range sources {
		parts[i] = fmt.Sprintf("%s: %d", s, breakdown[s])
	}
	return strings.Join(parts, ", ")
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
