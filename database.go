// imagedate: SQLite ledger of resolved dates
package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"imagedate/metadata"

	_ "modernc.org/sqlite"
)

func initDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	sqlStmt := `
	CREATE TABLE IF NOT EXISTS resolutions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		known INTEGER NOT NULL,
		rank INTEGER NOT NULL,
		source TEXT NOT NULL,
		resolved_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_path ON resolutions(path);
	`
	if _, err := db.Exec(sqlStmt); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not initialize database schema: %w", err)
	}
	return db, nil
}

// recordResults appends every resolved or unknown result in one transaction.
// Files that could not be opened are not recorded.
func recordResults(db *sql.DB, results []*FileResult) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO resolutions (path, timestamp, known, rank, source, resolved_at) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Format(time.RFC3339)
	for _, r := range results {
		if r.IsError() {
			continue
		}
		res := r.Resolution
		if _, err := stmt.Exec(r.Path, int64(res.Timestamp()), res.Known(), int(res.Rank), res.Rank.String(), now); err != nil {
			log.Printf("DB insert error for %s: %v", r.Path, err)
		}
	}
	return tx.Commit()
}

// lastResolution returns the most recent recorded resolution for path
func lastResolution(db *sql.DB, path string) (metadata.Resolution, time.Time, error) {
	row := db.QueryRow("SELECT timestamp, rank, resolved_at FROM resolutions WHERE path = ? ORDER BY id DESC LIMIT 1", path)
	var ts int64
	var rank int
	var at string
	if err := row.Scan(&ts, &rank, &at); err != nil {
		return metadata.Resolution{}, time.Time{}, err
	}
	resolvedAt, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return metadata.Resolution{}, time.Time{}, err
	}
	res := metadata.Resolution{Rank: metadata.Rank(rank)}
	if res.Known() {
		res.Seconds = uint64(ts)
	}
	return res, resolvedAt, nil
}
