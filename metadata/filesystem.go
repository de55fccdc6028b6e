package metadata

import (
	"fmt"
	"os"
	"time"

	"github.com/djherbis/times"
)

// FileTimes reports the filesystem instants of an open file. The boolean is
// false when the platform does not support or report that attribute.
type FileTimes interface {
	BirthTime() (time.Time, bool)
	ModTime() (time.Time, bool)
	AccessTime() (time.Time, bool)
}

// StatFunc queries the filesystem times of an open file.
type StatFunc func(f *os.File) (FileTimes, error)

// StatTimes reads birth, modification and access times from f. Birth time
// comes from statx on Linux, st_birthtime on the BSDs and macOS, and
// ftCreationTime on Windows.
func StatTimes(f *os.File) (FileTimes, error) {
	ts, err := times.StatFile(f)
	if err != nil {
		return nil, err
	}
	return timespec{ts}, nil
}

type timespec struct {
	ts times.Timespec
}

func (t timespec) BirthTime() (time.Time, bool) {
	if !t.ts.HasBirthTime() {
		return time.Time{}, false
	}
	return t.ts.BirthTime(), true
}

func (t timespec) ModTime() (time.Time, bool) {
	mt := t.ts.ModTime()
	return mt, !mt.IsZero()
}

// AccessTime may be stale on volumes mounted noatime, or on Windows with
// last-access updates disabled.
func (t timespec) AccessTime() (time.Time, bool) {
	at := t.ts.AccessTime()
	return at, !at.IsZero()
}

// ExtractFilesystem returns the first available filesystem time, in the order
// birth, modification, access. It panics if the host reports an instant
// before the epoch.
func ExtractFilesystem(ft FileTimes) CandidateSet {
	var set CandidateSet
	if ft == nil {
		return set
	}
	sources := []struct {
		rank Rank
		get  func() (time.Time, bool)
	}{
		{RankBirthTime, ft.BirthTime},
		{RankModTime, ft.ModTime},
		{RankAccessTime, ft.AccessTime},
	}
	for _, p := range sources {
		t, ok := p.get()
		if !ok {
			continue
		}
		return append(set, Candidate{Rank: p.rank, Seconds: epochSeconds(p.rank, t)})
	}
	return set
}

func epochSeconds(r Rank, t time.Time) uint64 {
	sec := t.Unix()
	if sec < 0 {
		panic(fmt.Sprintf("metadata: %s %s is before the Unix epoch, host clock is broken", r, t.Format(time.RFC3339)))
	}
	return uint64(sec)
}
