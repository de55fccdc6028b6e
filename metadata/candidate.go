// Package metadata resolves the best known creation timestamp of an image file
// from its embedded EXIF dates and, failing that, its filesystem times.
package metadata

// Rank identifies which source produced a date. Lower ranks win.
type Rank uint8

const (
	RankNone Rank = iota // No date evidence at all

	// Embedded metadata, recorded inside the file itself
	RankDateTimeOriginal  // When the photo was taken
	RankDateTimeDigitized // When the photo was digitized
	RankDateTime          // When the file was last modified, per its own metadata

	// Filesystem attributes, only consulted when no embedded date parsed
	RankBirthTime
	RankModTime
	RankAccessTime
)

func (r Rank) String() string {
	switch r {
	case RankNone:
		return "none"
	case RankDateTimeOriginal:
		return "EXIF DateTimeOriginal"
	case RankDateTimeDigitized:
		return "EXIF DateTimeDigitized"
	case RankDateTime:
		return "EXIF DateTime"
	case RankBirthTime:
		return "Filesystem btime"
	case RankModTime:
		return "Filesystem mtime"
	case RankAccessTime:
		return "Filesystem atime"
	default:
		return "unknown"
	}
}

// Tier groups ranks by the kind of source behind them.
type Tier int

const (
	TierNone Tier = iota
	TierEmbedded
	TierFilesystem
)

func (t Tier) String() string {
	switch t {
	case TierEmbedded:
		return "embedded"
	case TierFilesystem:
		return "filesystem"
	default:
		return "none"
	}
}

// Tier reports which tier r belongs to.
func (r Rank) Tier() Tier {
	switch {
	case r >= RankDateTimeOriginal && r <= RankDateTime:
		return TierEmbedded
	case r >= RankBirthTime && r <= RankAccessTime:
		return TierFilesystem
	default:
		return TierNone
	}
}

// Confidence represents how reliable the extracted date is
type Confidence int

const (
	ConfidenceNone Confidence = iota // No date found
	ConfidenceLow                    // Filesystem attribute
	ConfidenceHigh                   // Camera/device metadata
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceNone:
		return "none"
	case ConfidenceLow:
		return "low"
	case ConfidenceHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Confidence maps the rank's tier onto a confidence level.
func (r Rank) Confidence() Confidence {
	switch r.Tier() {
	case TierEmbedded:
		return ConfidenceHigh
	case TierFilesystem:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// Candidate is one date produced by one extraction attempt.
type Candidate struct {
	Rank    Rank
	Seconds uint64 // Whole seconds since the Unix epoch
}

// CandidateSet accumulates candidates during a single resolution.
type CandidateSet []Candidate

// Best returns the candidate with the lowest rank. The extractors stop at their
// first success, so a set normally holds at most one element, but Best does
// not rely on that.
func (s CandidateSet) Best() (Candidate, bool) {
	if len(s) == 0 {
		return Candidate{}, false
	}
	best := s[0]
	for _, c := range s[1:] {
		if c.Rank < best.Rank {
			best = c
		}
	}
	return best, true
}
