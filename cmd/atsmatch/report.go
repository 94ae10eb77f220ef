package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"resume-matcher/internal/analyses"
)

func writeReport(w io.Writer, a analyses.Analysis) error {
	fmt.Fprintf(w, "Match score:    %.1f\n", a.CurrentScore)
	fmt.Fprintf(w, "Expected score: %.1f (+%.1f)\n", a.ExpectedScore, a.PotentialGain)
	fmt.Fprintf(w, "Job type:       %s\n", a.JobType)
	if a.Job != nil && a.Job.Title != "" {
		fmt.Fprintf(w, "Job posting:    %s\n", a.Job.Title)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Sections")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, s := range a.Sections {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", s.Title, strings.ToUpper(string(s.Status)), plain(s.Recommendation))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(a.Recommendations) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recommendations")
	for _, r := range a.Recommendations {
		fmt.Fprintf(w, "  %d. [%s] %s: %s\n", r.Order, r.Severity, r.Title, r.Action)
	}
	return nil
}

func plain(s string) string {
	return strings.ReplaceAll(s, "**", "")
}
