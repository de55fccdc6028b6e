package metadata

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
)

// Tag identifies a date-bearing metadata field.
type Tag int

const (
	TagDateTimeOriginal  Tag = iota // 0x9003
	TagDateTimeDigitized            // 0x9004, called CreateDate by exiftool
	TagDateTime                     // 0x0132, called ModifyDate by exiftool
)

// TagMapping is a decoded metadata container. Display returns the
// human-readable value of a tag from the primary image directory, and false if
// the tag is absent.
type TagMapping interface {
	Display(tag Tag) (string, bool)
}

// DecodeFunc turns a file's bytes into a TagMapping.
type DecodeFunc func(r io.Reader) (TagMapping, error)

var exifFields = map[Tag]exif.FieldName{
	TagDateTimeOriginal:  exif.DateTimeOriginal,
	TagDateTimeDigitized: exif.DateTimeDigitized,
	TagDateTime:          exif.DateTime,
}

type exifMapping struct {
	x *exif.Exif
}

// DecodeEXIF reads EXIF data from a JPEG, TIFF or raw EXIF stream. A
// non-critical decode error still yields the tags that were read. Input with an
// entry goexif would mis-size is rejected before decoding (see ErrOversizedTag).
func DecodeEXIF(r io.Reader) (TagMapping, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read EXIF: %w", err)
	}
	if err := checkTIFFEntries(data); err != nil {
		return nil, fmt.Errorf("failed to decode EXIF: %w", err)
	}
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil && (x == nil || exif.IsCriticalError(err)) {
		return nil, fmt.Errorf("failed to decode EXIF: %w", err)
	}
	return exifMapping{x: x}, nil
}

func (m exifMapping) Display(tag Tag) (string, bool) {
	name, ok := exifFields[tag]
	if !ok {
		return "", false
	}
	t, err := m.x.Get(name)
	if err != nil {
		return "", false
	}
	raw, err := t.StringVal()
	if err != nil {
		return "", false
	}
	return displayDate(raw), true
}

// displayDate renders an EXIF date ("2006:01:02 15:04:05") with dashes in the
// date part. Anything that doesn't look like an EXIF date is returned trimmed
// but otherwise untouched.
func displayDate(raw string) string {
	s := strings.TrimSpace(strings.TrimRight(raw, "\x00"))
	if len(s) < 10 || s[4] != ':' || s[7] != ':' {
		return s
	}
	return s[:4] + "-" + s[5:7] + "-" + s[8:]
}

// embeddedFields lists the embedded date fields in order of preference.
var embeddedFields = []struct {
	tag  Tag
	rank Rank
}{
	{TagDateTimeOriginal, RankDateTimeOriginal},
	{TagDateTimeDigitized, RankDateTimeDigitized},
	{TagDateTime, RankDateTime},
}

// ExtractEmbedded returns the first embedded date that is present and parses.
// Absent or malformed tags are skipped silently.
func ExtractEmbedded(m TagMapping) CandidateSet {
	var set CandidateSet
	if m == nil {
		return set
	}
	for _, p := range embeddedFields {
		s, ok := m.Display(p.tag)
		if !ok {
			continue
		}
		sec, err := ParseDisplayValue(s)
		if err != nil {
			continue
		}
		return append(set, Candidate{Rank: p.rank, Seconds: sec})
	}
	return set
}
