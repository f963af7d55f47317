// Package storage persists finished runs and per-course progress in SQLite.
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

// LocalPlayer is the player name used outside SSH sessions.
const LocalPlayer = "local"

// sqliteTime is the layout SQLite uses for CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is one finished attempt at a course: a clear or a game over.
type Run struct {
	ID        int64
	CourseID  string
	Player    string
	Score     int
	Coins     int
	TimeLeft  int
	Cleared   bool
	CreatedAt time.Time
}

// CourseProgress is a player's best result on a course.
type CourseProgress struct {
	CourseID      string
	Player        string
	Clears        int
	BestScore     int
	BestTimeLeft  int
	LastClearedAt time.Time
}

// CourseStats aggregates every run on a course.
type CourseStats struct {
	CourseID   string
	Runs       int
	Clears     int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			course_id TEXT NOT NULL,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			coins INTEGER NOT NULL DEFAULT 0,
			time_left INTEGER NOT NULL DEFAULT 0,
			cleared INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_course ON runs(course_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(course_id, score DESC);

		CREATE TABLE IF NOT EXISTS course_progress (
			course_id TEXT NOT NULL,
			player TEXT NOT NULL,
			clears INTEGER NOT NULL DEFAULT 0,
			best_score INTEGER NOT NULL DEFAULT 0,
			best_time_left INTEGER NOT NULL DEFAULT 0,
			last_cleared_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (course_id, player)
		);
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

// SaveRun records a finished run. A cleared run also updates the
// player's course progress. Returns the ID of the inserted run.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.Player == "" {
		r.Player = LocalPlayer
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (course_id, player, score, coins, time_left, cleared)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.CourseID, r.Player, r.Score, r.Coins, r.TimeLeft, r.Cleared,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	if r.Cleared {
		if err := s.RecordClear(r.Player, r.CourseID, r.Score, r.TimeLeft); err != nil {
			return id, err
		}
	}

	return id, nil
}

// RecordClear counts a clear and keeps the best score and time left.
func (s *Store) RecordClear(player, courseID string, score, timeLeft int) error {
	_, err := s.db.Exec(
		`INSERT INTO course_progress (course_id, player, clears, best_score, best_time_left)
		 VALUES (?, ?, 1, ?, ?)
		 ON CONFLICT (course_id, player) DO UPDATE SET
			clears = clears + 1,
			best_score = MAX(best_score, excluded.best_score),
			best_time_left = MAX(best_time_left, excluded.best_time_left),
			last_cleared_at = CURRENT_TIMESTAMP`,
		courseID, player, score, timeLeft,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record clear: %w", err)
	}
	return nil
}

// Progress returns a player's progress on a course, or nil if the player
// has never cleared it.
func (s *Store) Progress(player, courseID string) (*CourseProgress, error) {
	var p CourseProgress
	var lastCleared any

	err := s.db.QueryRow(
		`SELECT course_id, player, clears, best_score, best_time_left, last_cleared_at
		 FROM course_progress
		 WHERE player = ? AND course_id = ?`,
		player, courseID,
	).Scan(&p.CourseID, &p.Player, &p.Clears, &p.BestScore, &p.BestTimeLeft, &lastCleared)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}

	p.LastClearedAt = parseTime(lastCleared)
	return &p, nil
}

// AllProgress returns every course a player has cleared, sorted by course.
func (s *Store) AllProgress(player string) ([]CourseProgress, error) {
	rows, err := s.db.Query(
		`SELECT course_id, player, clears, best_score, best_time_left, last_cleared_at
		 FROM course_progress
		 WHERE player = ?
		 ORDER BY course_id`,
		player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	var result []CourseProgress
	for rows.Next() {
		var p CourseProgress
		var lastCleared any
		if err := rows.Scan(&p.CourseID, &p.Player, &p.Clears, &p.BestScore, &p.BestTimeLeft, &lastCleared); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.LastClearedAt = parseTime(lastCleared)
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return result, nil
}

// TopRuns retrieves the best N runs on a course.
// Higher scores rank first; ties go to the run with more time left.
func (s *Store) TopRuns(courseID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, course_id, player, score, coins, time_left, cleared, created_at
		 FROM runs
		 WHERE course_id = ?
		 ORDER BY score DESC, time_left DESC
		 LIMIT ?`,
		courseID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.CourseID, &r.Player, &r.Score, &r.Coins, &r.TimeLeft, &r.Cleared, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// HighScore returns the highest score on a course, or 0 if none exist.
func (s *Store) HighScore(courseID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE course_id = ?",
		courseID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRuns deletes all runs and progress for a course.
func (s *Store) ClearRuns(courseID string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE course_id = ?", courseID); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM course_progress WHERE course_id = ?", courseID); err != nil {
		return fmt.Errorf("storage: cannot clear progress: %w", err)
	}
	return nil
}

// AllCourseStats aggregates runs per course.
func (s *Store) AllCourseStats() (map[string]*CourseStats, error) {
	rows, err := s.db.Query(
		`SELECT course_id, COUNT(*), SUM(cleared), MAX(score), AVG(score), MAX(created_at)
		 FROM runs
		 GROUP BY course_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get course stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*CourseStats)
	for rows.Next() {
		var cs CourseStats
		var lastPlayed any
		if err := rows.Scan(&cs.CourseID, &cs.Runs, &cs.Clears, &cs.HighScore, &cs.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		cs.LastPlayed = parseTime(lastPlayed)
		stats[cs.CourseID] = &cs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
