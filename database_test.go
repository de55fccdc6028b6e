// imagedate: tests for the SQLite ledger
package main

import (
	"fmt"
	"path/filepath"
	"testing"

	"imagedate/metadata"
)

func TestRecordResults(t *testing.T) {
	db, err := initDB(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("initDB failed: %v", err)
	}
	defer db.Close()

	results := []*FileResult{
		newFileResult("/photos/a.jpg", metadata.Resolution{Rank: metadata.RankDateTimeOriginal, Seconds: 1212162961}, nil, 0),
		newFileResult("/photos/b.png", metadata.Resolution{}, nil, 0),
		newFileResult("/photos/c.jpg", metadata.Resolution{}, fmt.Errorf("failed to open file /photos/c.jpg"), 0),
	}
	if err := recordResults(db, results); err != nil {
		t.Fatalf("recordResults failed: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM resolutions").Scan(&count); err != nil {
		t.Fatalf("Count query failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 rows (open errors are not recorded), got %d", count)
	}

	res, at, err := lastResolution(db, "/photos/a.jpg")
	if err != nil {
		t.Fatalf("lastResolution failed: %v", err)
	}
	if res.Rank != metadata.RankDateTimeOriginal || res.Seconds != 1212162961 {
		t.Errorf("Unexpected recorded resolution: %v", res)
	}
	if at.IsZero() {
		t.Error("resolved_at should be set")
	}

	res, _, err = lastResolution(db, "/photos/b.png")
	if err != nil {
		t.Fatalf("lastResolution failed: %v", err)
	}
	if res.Known() {
		t.Errorf("Unknown resolution should round-trip as unknown, got %v", res)
	}

	if _, _, err := lastResolution(db, "/photos/never.jpg"); err == nil {
		t.Error("Expected error for a path that was never recorded")
	}
}

func TestLastResolutionPicksNewest(t *testing.T) {
	db, err := initDB(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("initDB failed: %v", err)
	}
	defer db.Close()

	for _, sec := range []uint64{100, 200} {
		r := newFileResult("/photos/a.jpg", metadata.Resolution{Rank: metadata.RankModTime, Seconds: sec}, nil, 0)
		if err := recordResults(db, []*FileResult{r}); err != nil {
			t.Fatalf("recordResults failed: %v", err)
		}
	}

	res, _, err := lastResolution(db, "/photos/a.jpg")
	if err != nil {
		t.Fatalf("lastResolution failed: %v", err)
	}
	if res.Seconds != 200 {
		t.Errorf("Expected newest resolution 200, got %d", res.Seconds)
	}
}
