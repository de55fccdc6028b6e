// imagedate: per-file outcome tracking and accounting
package main

import (
	"fmt"
	"time"

	"imagedate/metadata"
)

// FileState represents the explicit outcome of one file
type FileState int

const (
	// A date was resolved from embedded metadata or the filesystem
	StateResolved FileState = iota

	// No evidence at all, the sentinel timestamp is reported
	StateUnknown

	// File could not be opened
	StateErrorOpen
)

// String returns human-readable state names for reporting
func (s FileState) String() string {
	switch s {
	case StateResolved:
		return "resolved"
	case StateUnknown:
		return "unknown (no date evidence)"
	case StateErrorOpen:
		return "error (open failed)"
	default:
		return "unknown"
	}
}

// FileResult tracks the outcome of resolving one file. Files skipped by the
// extension filter and directory walk errors never reach the resolver and are
// counted by GenerateAccountingSummary from collectFiles' output instead.
type FileResult struct {
	Path       string
	State      FileState
	Resolution metadata.Resolution
	Error      error
	TimeTaken  time.Duration
}

// newFileResult classifies the outcome of a Resolve call
func newFileResult(path string, res metadata.Resolution, err error, took time.Duration) *FileResult {
	result := &FileResult{
		Path:       path,
		Resolution: res,
		Error:      err,
		TimeTaken:  took,
	}
	switch {
	case err != nil:
		result.State = StateErrorOpen
	case !res.Known():
		result.State = StateUnknown
	default:
		result.State = StateResolved
	}
	return result
}

// IsError returns true if processing failed due to an error
func (fr *FileResult) IsError() bool {
	return fr.State == StateErrorOpen
}

// AccountingSummary counts outcomes so every input file is accounted for
type AccountingSummary struct {
	Resolved int
	Unknown  int
	Skipped  int
	Errors   int

	// Resolved files split by tier
	Embedded   int
	Filesystem int

	ErrorList  []string
	TotalFiles int // Files handed to the resolver plus skipped files
	WalkErrors int
}

// GenerateAccountingSummary builds the summary from the collected results
func GenerateAccountingSummary(results []*FileResult, skipped []string, walkErrors []error) AccountingSummary {
	summary := AccountingSummary{
		TotalFiles: len(results) + len(skipped),
		WalkErrors: len(walkErrors),
		Skipped:    len(skipped),
	}

	for _, result := range results {
		switch result.State {
		case StateResolved:
			summary.Resolved++
			switch result.Resolution.Rank.Tier() {
			case metadata.TierEmbedded:
				summary.Embedded++
			case metadata.TierFilesystem:
				summary.Filesystem++
			}
		case StateUnknown:
			summary.Unknown++
		case StateErrorOpen:
			summary.Errors++
			summary.ErrorList = append(summary.ErrorList, result.Error.Error())
		}
	}

	for _, walkErr := range walkErrors {
		summary.ErrorList = append(summary.ErrorList, fmt.Sprintf("walk error: %v", walkErr))
	}
	summary.Errors += len(walkErrors)

	return summary
}

// Validate checks that accounting is perfect (no missing files)
func (as *AccountingSummary) Validate() error {
	accounted := as.Resolved + as.Unknown + as.Skipped + as.Errors - as.WalkErrors
	if accounted != as.TotalFiles {
		return fmt.Errorf("accounting mismatch: processed %d files but accounted for %d",
			as.TotalFiles, accounted)
	}
	return nil
}
