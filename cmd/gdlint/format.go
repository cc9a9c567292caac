package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/jward/gdlint/internal/diag"
	"github.com/jward/gdlint/internal/store"
)

type ruleRow struct {
	Code        string
	Check       string
	Enabled     bool
	Description string
}

type queryRow struct {
	Name string
	Err  string
}

// formatRulesText formats rule rows as aligned columns.
func formatRulesText(w io.Writer, rows []ruleRow) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tCHECK\tENABLED\tDESCRIPTION")
	for _, r := range rows {
		enabled := "no"
		if r.Enabled {
			enabled = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Code, r.Check, enabled, r.Description)
	}
	tw.Flush()
}

// formatQueriesText formats query compile results as aligned columns.
func formatQueriesText(w io.Writer, rows []queryRow) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "QUERY\tSTATUS")
	for _, r := range rows {
		status := "ok"
		if r.Err != "" {
			status = r.Err
		}
		fmt.Fprintf(tw, "%s\t%s\n", r.Name, status)
	}
	tw.Flush()
}

// formatRunsText formats recorded runs as aligned columns.
func formatRunsText(w io.Writer, runs []store.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tDURATION\tFILES\tISSUES\tFAILED\tROOT")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%s\n",
			r.ID,
			r.StartedAt.Local().Format(time.DateTime),
			r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond),
			r.Files, r.Issues, r.Failed, r.Root)
	}
	tw.Flush()
}

// formatCodeCountsText formats per-code counts as aligned columns.
func formatCodeCountsText(w io.Writer, counts []store.CodeCount) {
	if len(counts) == 0 {
		fmt.Fprintln(w, "No diagnostics in this run.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tCOUNT")
	for _, c := range counts {
		fmt.Fprintf(tw, "%s\t%d\n", c.Code, c.Count)
	}
	tw.Flush()
}

// formatFileResultsText lists the diagnostics of a run one per line, with
// files that could not be checked in their place.
func formatFileResultsText(w io.Writer, files []store.FileRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := 0
	fmt.Fprintln(tw, "LOCATION\tSEVERITY\tCODE\tMESSAGE\tNOTE")
	for _, f := range files {
		if f.Status == store.StatusError {
			fmt.Fprintf(tw, "%s\terror\t-\t%s\t\n", f.Path, f.Error)
			rows++
			continue
		}
		for _, d := range f.Diagnostics {
			fmt.Fprintf(tw, "%s:%d:%d\t%s\t%s\t%s\t%s\n",
				f.Path, d.Line, d.Col, d.Severity, d.Code, d.Message, primaryText(d.Labels))
			rows++
		}
	}
	if rows == 0 {
		fmt.Fprintln(w, "No diagnostics in this run.")
		return
	}
	tw.Flush()
}

func primaryText(labels []diag.Label) string {
	for _, l := range labels {
		if l.Primary {
			return l.Text
		}
	}
	return ""
}
