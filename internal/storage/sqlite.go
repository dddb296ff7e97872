// Package storage provides SQLite-based persistence for the best-score cell
// and the run history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunEntry represents one finished run.
type RunEntry struct {
	ID        int64
	Device    string
	Score     int
	Best      int
	CreatedAt time.Time
}

// Open opens the database at dbPath, creating it and its directory on first
// use. A leading ~ is the home directory.
func Open(dbPath string) (*Store, error) {
	path, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: mkdir for %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	// One writer at a time; SSH sessions share the handle.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: ping %s: %w", path, err)
	}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migrate: %w", err)
	}
	return store, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the cells and runs tables.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS cells (
			device TEXT NOT NULL,
			slot INTEGER NOT NULL,
			value INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (device, slot)
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			device TEXT NOT NULL,
			score INTEGER NOT NULL,
			best INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_device ON runs(device);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(device, score DESC);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ReadCell returns the value stored in a device slot, or 0 if the slot has
// never been written.
func (s *Store) ReadCell(device string, slot int) (int, error) {
	var value int
	err := s.db.QueryRow(
		"SELECT value FROM cells WHERE device = ? AND slot = ?",
		device, slot,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read cell: %w", err)
	}
	return value, nil
}

// WriteCell stores a value in a device slot in a single statement.
func (s *Store) WriteCell(device string, slot int, value int) error {
	_, err := s.db.Exec(
		`INSERT INTO cells (device, slot, value) VALUES (?, ?, ?)
		 ON CONFLICT(device, slot) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		device, slot, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write cell: %w", err)
	}
	return nil
}

// RecordRun records a finished run for the given device.
// Returns the ID of the inserted record.
func (s *Store) RecordRun(device string, score, best int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (device, score, best) VALUES (?, ?, ?)",
		device, score, best,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the top N runs for the given device.
// Results are ordered by score descending.
func (s *Store) TopRuns(device string, limit int) ([]RunEntry, error) {
	return s.queryRuns(device, "score DESC, id ASC", limit)
}

// RecentRuns retrieves the latest N runs for the given device, newest first.
func (s *Store) RecentRuns(device string, limit int) ([]RunEntry, error) {
	return s.queryRuns(device, "id DESC", limit)
}

// queryRuns lists up to limit runs of device; order is a fixed ORDER BY
// clause, never user input.
func (s *Store) queryRuns(device, order string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, device, score, best, created_at FROM runs
		 WHERE device = ? ORDER BY `+order+` LIMIT ?`,
		device, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]RunEntry, error) {
	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Device, &e.Score, &e.Best, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearRuns deletes the run history of the given device. The best-score
// cell is left alone.
func (s *Store) ClearRuns(device string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE device = ?", device)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Devices returns every device that has a cell or a recorded run, sorted.
func (s *Store) Devices() ([]string, error) {
	rows, err := s.db.Query(
		`SELECT device FROM cells
		 UNION
		 SELECT device FROM runs
		 ORDER BY device`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query devices: %w", err)
	}
	defer rows.Close()

	var devices []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return devices, nil
}

// RunStats contains aggregated statistics for a device.
type RunStats struct {
	Device     string
	Runs       int
	HighScore  int
	AvgScore   float64
	TotalTicks int64
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics for a device.
func (s *Store) Stats(device string) (*RunStats, error) {
	stats := &RunStats{Device: device}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM runs WHERE device = ?`,
		device,
	).Scan(&stats.Runs, &stats.HighScore, &stats.AvgScore, &stats.TotalTicks)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE device = ? ORDER BY id DESC LIMIT 1`,
		device,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
