// imagedate: result and summary printing
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"imagedate/metadata"
)

// jsonResult is one line of --format json output
type jsonResult struct {
	Path       string  `json:"path"`
	Timestamp  *uint64 `json:"timestamp,omitempty"` // nil only for files that could not be read
	Known      bool    `json:"known"`
	Source     string  `json:"source"`
	Confidence string  `json:"confidence"`
	Error      string  `json:"error,omitempty"`
}

func writeResults(w io.Writer, results []*FileResult, format string, verbose bool) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		for _, r := range results {
			if err := enc.Encode(toJSON(r)); err != nil {
				return err
			}
		}
		return nil
	}

	for _, r := range results {
		writeTextResult(w, r, verbose)
	}
	return nil
}

func toJSON(r *FileResult) jsonResult {
	out := jsonResult{Path: r.Path}
	if r.IsError() {
		out.Error = r.Error.Error()
		out.Source = "none"
		out.Confidence = "none"
		return out
	}
	res := r.Resolution
	ts := res.Timestamp()
	out.Timestamp = &ts
	out.Known = res.Known()
	out.Source = res.Rank.String()
	out.Confidence = res.Rank.Confidence().String()
	return out
}

// writeTextResult prints: <timestamp> <UTC time> <source> <path>
func writeTextResult(w io.Writer, r *FileResult, verbose bool) {
	switch r.State {
	case StateErrorOpen:
		color.New(color.FgRed).Fprintf(w, "error\t%v\n", r.Error)
		return
	case StateUnknown:
		color.New(color.FgYellow).Fprintf(w, "%d\t%s\t%s\t%s",
			r.Resolution.Timestamp(), r.Resolution.Time().Format(time.RFC3339), r.Resolution.Rank, r.Path)
	default:
		c := color.New(color.FgGreen)
		if r.Resolution.Rank.Confidence() != metadata.ConfidenceHigh {
			c = color.New(color.FgCyan)
		}
		c.Fprintf(w, "%d\t%s\t%s\t%s",
			r.Resolution.Timestamp(), r.Resolution.Time().Format(time.RFC3339), r.Resolution.Rank, r.Path)
	}
	if verbose {
		fmt.Fprintf(w, "\t(%s)", r.TimeTaken.Round(time.Microsecond))
	}
	fmt.Fprintln(w)
}

// printSummary prints colored counts and checks accounting
func printSummary(w io.Writer, summary AccountingSummary) {
	fmt.Fprintln(w)
	color.New(color.FgGreen).Fprintf(w, "Resolved: %d (EXIF %d, filesystem %d), ", summary.Resolved, summary.Embedded, summary.Filesystem)
	color.New(color.FgYellow).Fprintf(w, "Unknown: %d, Skipped: %d, ", summary.Unknown, summary.Skipped)
	color.New(color.FgRed).Fprintf(w, "Errors: %d, ", summary.Errors)
	fmt.Fprintf(w, "Total Found: %d\n", summary.TotalFiles)
	for _, msg := range summary.ErrorList {
		color.New(color.FgRed).Fprintf(w, "  %s\n", msg)
	}
	if err := summary.Validate(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(w, "✖ %v\n", err)
	}
}
