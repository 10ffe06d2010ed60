package oplog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/tagmend/tagmend/internal/vault"
)

// History is the sqlite store of past runs, queried by the history
// command. Recording is best-effort: a history failure must never fail
// the operation it records.
type History struct {
	db *sql.DB
}

const historySchema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ts TEXT NOT NULL,
	op_type TEXT NOT NULL,
	mode TEXT NOT NULL,
	candidates INTEGER NOT NULL,
	changed INTEGER NOT NULL,
	errored INTEGER NOT NULL,
	record TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(ts);
`

// OpenHistory opens or creates the history database for a vault.
func OpenHistory(root string) (*History, error) {
	dir := filepath.Join(root, vault.StateDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "history.db"))
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history database: %w", err)
	}

	return &History{db: db}, nil
}

// Close releases the database handle.
func (h *History) Close() error {
	return h.db.Close()
}

// Record stores one run record.
func (h *History) Record(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal history record: %w", err)
	}
	_, err = h.db.Exec(
		`INSERT INTO runs (ts, op_type, mode, candidates, changed, errored, record)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Timestamp.Format("2006-01-02T15:04:05.000Z"),
		rec.Type, rec.Mode, rec.Candidates, rec.Changed, rec.Errored,
		string(data),
	)
	if err != nil {
		return fmt.Errorf("insert history record: %w", err)
	}
	return nil
}

// RecordAll stores a batch of records.
func (h *History) RecordAll(records []Record) error {
	for _, rec := range records {
		if err := h.Record(rec); err != nil {
			return err
		}
	}
	return nil
}

// Recent returns the most recent records, newest first.
func (h *History) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.db.Query(
		`SELECT record FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		var rec Record
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			continue // Skip malformed rows rather than failing the query.
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
