package metadata

import (
	"bufio"
	"fmt"
	"os"
	"time"
)

// UnknownTimestamp is returned by Resolution.Timestamp when no date evidence
// exists. It is a date in the future (2031-05-11 12:20:00 UTC) so that files
// carrying it stand out downstream.
const UnknownTimestamp uint64 = 1936268400

// Resolution is the outcome of resolving one file: either a resolved date
// with the rank that produced it, or Unknown (Rank == RankNone).
type Resolution struct {
	Rank    Rank
	Seconds uint64
}

// Known reports whether any source produced a date.
func (r Resolution) Known() bool {
	return r.Rank != RankNone
}

// Timestamp returns the resolved seconds since the epoch, or UnknownTimestamp.
func (r Resolution) Timestamp() uint64 {
	if !r.Known() {
		return UnknownTimestamp
	}
	return r.Seconds
}

// Time returns Timestamp as a UTC time.
func (r Resolution) Time() time.Time {
	return time.Unix(int64(r.Timestamp()), 0).UTC()
}

func (r Resolution) String() string {
	if !r.Known() {
		return "unknown"
	}
	return fmt.Sprintf("%d (%s)", r.Seconds, r.Rank)
}

// Resolver picks the highest-priority date for a file. It holds no state
// between calls and is safe for concurrent use.
type Resolver struct {
	Decode DecodeFunc
	Stat   StatFunc
}

// NewResolver creates a resolver backed by goexif and the host filesystem.
func NewResolver() *Resolver {
	return &Resolver{
		Decode: DecodeEXIF,
		Stat:   StatTimes,
	}
}

var defaultResolver = NewResolver()

// ResolveTimestamp resolves path with the default resolver and returns the
// plain integer form, UnknownTimestamp included.
func ResolveTimestamp(path string) (uint64, error) {
	res, err := defaultResolver.Resolve(path)
	if err != nil {
		return 0, err
	}
	return res.Timestamp(), nil
}

// Resolve opens path and returns its best known date. The only error is
// failing to open the file; missing or broken metadata falls through to the
// next source, and total absence of evidence is an Unknown resolution.
func (r *Resolver) Resolve(path string) (Resolution, error) {
	f, err := os.Open(path)
	if err != nil {
		return Resolution{}, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer f.Close()

	var dates CandidateSet
	if r.Decode != nil {
		if m, err := r.Decode(bufio.NewReader(f)); err == nil {
			dates = append(dates, ExtractEmbedded(m)...)
		}
	}

	// Filesystem times only matter when the file has no usable embedded date
	if len(dates) == 0 && r.Stat != nil {
		if ft, err := r.Stat(f); err == nil {
			dates = append(dates, ExtractFilesystem(ft)...)
		}
	}

	best, ok := dates.Best()
	if !ok {
		return Resolution{}, nil
	}
	return Resolution{Rank: best.Rank, Seconds: best.Seconds}, nil
}
