package metadata

import (
	"errors"
	"fmt"
	"time"
)

// DisplayLayout is the rendering of a date-bearing tag: YYYY-MM-DD HH:MM:SS.
const DisplayLayout = "2006-01-02 15:04:05"

// ErrUnparseable is wrapped by every ParseDisplayValue failure.
var ErrUnparseable = errors.New("unparseable date value")

// ParseDisplayValue converts a tag's displayed value into seconds since the
// epoch. The value carries no zone and is read as UTC; any offset recorded
// alongside it in the file is not applied.
func ParseDisplayValue(s string) (uint64, error) {
	t, err := time.Parse(DisplayLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrUnparseable, s, err)
	}
	sec := t.Unix()
	if sec < 0 {
		return 0, fmt.Errorf("%w: %q is before the epoch", ErrUnparseable, s)
	}
	return uint64(sec), nil
}
