// imagedate: tests for result printing
package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"imagedate/metadata"
)

func TestWriteResultsJSONTimestamp(t *testing.T) {
	testCases := []struct {
		name     string
		result   *FileResult
		contains string
		excludes string
	}{
		{
			name:     "epoch is a valid date",
			result:   newFileResult("a.jpg", metadata.Resolution{Rank: metadata.RankDateTimeOriginal, Seconds: 0}, nil, 0),
			contains: `"timestamp":0,`,
		},
		{
			name:     "unknown reports the sentinel",
			result:   newFileResult("b.jpg", metadata.Resolution{}, nil, 0),
			contains: `"timestamp":1936268400,"known":false`,
		},
		{
			name:     "open error has no timestamp",
			result:   newFileResult("c.jpg", metadata.Resolution{}, errors.New("failed to open file c.jpg"), 0),
			contains: `"error":"failed to open file c.jpg"`,
			excludes: `"timestamp"`,
		},
	}

	for _, tc := range testCases {
		var out bytes.Buffer
		if err := writeResults(&out, []*FileResult{tc.result}, "json", false); err != nil {
			t.Fatalf("%s: writeResults failed: %v", tc.name, err)
		}
		if !strings.Contains(out.String(), tc.contains) {
			t.Errorf("%s: expected %s in %s", tc.name, tc.contains, out.String())
		}
		if tc.excludes != "" && strings.Contains(out.String(), tc.excludes) {
			t.Errorf("%s: unexpected %s in %s", tc.name, tc.excludes, out.String())
		}
	}
}
