// imagedate: main resolution routine
package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"imagedate/metadata"
)

// run expands paths, resolves every file and writes the results to w.
// Supports context cancellation for safe Ctrl+C handling; files not yet
// resolved when the context is cancelled are left out of the output.
func run(ctx context.Context, w io.Writer, paths []string, opts Options) (AccountingSummary, error) {
	files, skipped, walkErrors := collectFiles(paths, opts.Recursive, opts.All)

	var bar *progressbar.ProgressBar
	if len(files) > 1 {
		bar = progressbar.NewOptions(
			len(files),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Resolving dates"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}

	results := resolveAll(ctx, metadata.NewResolver(), files, opts.Workers, bar)
	if bar != nil {
		bar.Finish()
	}
	if ctx.Err() != nil {
		color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, "Interrupted. Reporting files resolved so far.")
	}
	if opts.Verbose {
		logDecisions(results)
	}

	if opts.DBPath != "" {
		if err := writeLedger(opts.DBPath, results, opts.Verbose); err != nil {
			return AccountingSummary{}, err
		}
	}

	if err := writeResults(w, results, opts.Format, opts.Verbose); err != nil {
		return AccountingSummary{}, err
	}

	summary := GenerateAccountingSummary(results, skipped, walkErrors)
	if opts.Format == "text" && (len(files) > 1 || len(skipped) > 0 || len(walkErrors) > 0) {
		printSummary(os.Stderr, summary)
	}
	return summary, nil
}

// resolveAll resolves files with at most workers concurrent calls. Results
// keep the order of files.
func resolveAll(ctx context.Context, r *metadata.Resolver, files []string, workers int, bar *progressbar.ProgressBar) []*FileResult {
	results := make([]*FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			start := time.Now()
			res, err := r.Resolve(path)
			results[i] = newFileResult(path, res, err, time.Since(start))
			if bar != nil {
				bar.Add(1)
			}
			return nil
		})
	}
	g.Wait()

	done := results[:0]
	for _, res := range results {
		if res != nil {
			done = append(done, res)
		}
	}
	return done
}

// logDecisions logs which date source won for each resolved file
func logDecisions(results []*FileResult) {
	for _, r := range results {
		switch r.State {
		case StateUnknown:
			log.Printf("%s: no EXIF date and no filesystem times, reporting unknown", r.Path)
		case StateResolved:
			if r.Resolution.Rank.Tier() == metadata.TierFilesystem {
				log.Printf("%s: no usable EXIF date, using %s", r.Path, r.Resolution.Rank)
			} else {
				log.Printf("%s: using %s", r.Path, r.Resolution.Rank)
			}
		}
	}
}

// writeLedger records results in the SQLite ledger at dbPath. In verbose mode
// it reports files whose resolved date changed since they were last recorded.
func writeLedger(dbPath string, results []*FileResult, verbose bool) error {
	db, err := initDB(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if verbose {
		for _, r := range results {
			if r.IsError() {
				continue
			}
			prev, at, err := lastResolution(db, r.Path)
			if err != nil {
				continue
			}
			if prev != r.Resolution {
				log.Printf("%s: date changed from %s (recorded %s) to %s",
					r.Path, prev, at.Format(time.RFC3339), r.Resolution)
			}
		}
	}

	return recordResults(db, results)
}
