// Package storage provides SQLite-based persistence for level attempt results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Outcome values stored in the results table.
const (
	OutcomeCleared  = "cleared"
	OutcomeBreached = "breached"
)

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// Result represents one finished level attempt.
type Result struct {
	ID        int64
	LevelID   string
	Outcome   string // OutcomeCleared or OutcomeBreached
	Ticks     int
	Moves     int
	CreatedAt time.Time
}

// Cleared reports whether the attempt kept every zone dry.
func (r Result) Cleared() bool {
	return r.Outcome == OutcomeCleared
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			outcome TEXT NOT NULL CHECK (outcome IN ('cleared', 'breached')),
			ticks INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_level_id ON results(level_id);
		CREATE INDEX IF NOT EXISTS idx_results_created ON results(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records a finished level attempt.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(levelID string, cleared bool, ticks, moves int) (int64, error) {
	outcome := OutcomeBreached
	if cleared {
		outcome = OutcomeCleared
	}

	result, err := s.db.Exec(
		"INSERT INTO results (level_id, outcome, ticks, moves) VALUES (?, ?, ?, ?)",
		levelID, outcome, ticks, moves,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentResults retrieves the most recent attempts across all levels.
func (s *Store) RecentResults(limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, outcome, ticks, moves, created_at
		 FROM results
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var createdAt any
		if err := rows.Scan(&r.ID, &r.LevelID, &r.Outcome, &r.Ticks, &r.Moves, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// ClearResults deletes all results for the given level.
func (s *Store) ClearResults(levelID string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID    string
	Attempts   int
	Clears     int
	BestMoves  int // Fewest moves in a cleared attempt, 0 if never cleared
	LastPlayed time.Time
}

// ClearRate returns the share of attempts that cleared the level.
func (ls LevelStats) ClearRate() float64 {
	if ls.Attempts == 0 {
		return 0
	}
	return float64(ls.Clears) / float64(ls.Attempts)
}

const statsQuery = `
	SELECT level_id,
	       COUNT(*),
	       COALESCE(SUM(CASE WHEN outcome = 'cleared' THEN 1 ELSE 0 END), 0),
	       COALESCE(MIN(CASE WHEN outcome = 'cleared' THEN moves END), 0),
	       MAX(created_at)
	FROM results`

// LevelStats retrieves aggregated statistics for a specific level.
// A level with no attempts yields zero stats.
func (s *Store) LevelStats(levelID string) (*LevelStats, error) {
	row := s.db.QueryRow(statsQuery+` WHERE level_id = ? GROUP BY level_id`, levelID)

	stats, err := scanStats(row)
	if errors.Is(err, sql.ErrNoRows) {
		return &LevelStats{LevelID: levelID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	return stats, nil
}

// AllLevelStats retrieves statistics for every level that has been played.
func (s *Store) AllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(statsQuery + ` GROUP BY level_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		ls, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats[ls.LevelID] = ls
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStats(sc scanner) (*LevelStats, error) {
	var ls LevelStats
	var lastPlayed any
	if err := sc.Scan(&ls.LevelID, &ls.Attempts, &ls.Clears, &ls.BestMoves, &lastPlayed); err != nil {
		return nil, err
	}
	ls.LastPlayed = parseTime(lastPlayed)
	return &ls, nil
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
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
