// Package history records usage snapshots over time in SQLite so the
// dashboard can chart consumption. Only the daemon writes it; display
// processes read it best-effort and render without it when absent.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Register the pure-Go sqlite driver.
	_ "modernc.org/sqlite"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/models"
)

// RetentionWindow is how long history rows are kept.
const RetentionWindow = 30 * 24 * time.Hour

// Point is one recorded usage reading.
type Point struct {
	CapturedAt time.Time
	SessionPct float64
	WeeklyPct  float64
}

// Store wraps the history database.
type Store struct {
	db   *sql.DB
	path string
}

// New opens (creating if necessary) the history database at path.
func New(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := s.db.ExecContext(context.Background(), pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	query := `
	CREATE TABLE IF NOT EXISTS usage_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		profile_id TEXT NOT NULL,
		session_pct REAL NOT NULL,
		weekly_pct REAL NOT NULL,
		captured_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_usage_history_profile ON usage_history(profile_id);
	CREATE INDEX IF NOT EXISTS idx_usage_history_captured ON usage_history(captured_at);
	`
	_, err := s.db.ExecContext(context.Background(), query)
	return err
}

// Record inserts one reading for the profile.
func (s *Store) Record(profileID string, snap *models.UsageSnapshot) error {
	if snap == nil {
		return fmt.Errorf("cannot record nil snapshot")
	}
	capturedAt := snap.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(context.Background(), `
		INSERT INTO usage_history (profile_id, session_pct, weekly_pct, captured_at)
		VALUES (?, ?, ?, ?)`,
		profileID, snap.SessionPercentage, snap.WeeklyPercentage,
		capturedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to record usage history: %w", err)
	}
	return nil
}

// Recent returns the profile's readings within the window, oldest first.
func (s *Store) Recent(profileID string, window time.Duration) ([]Point, error) {
	cutoff := time.Now().UTC().Add(-window).Format("2006-01-02 15:04:05")

	rows, err := s.db.QueryContext(context.Background(), `
		SELECT session_pct, weekly_pct, captured_at
		FROM usage_history
		WHERE profile_id = ? AND captured_at >= ?
		ORDER BY captured_at ASC`,
		profileID, cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var points []Point
	for rows.Next() {
		var (
			p           Point
			capturedStr string
		)
		if err := rows.Scan(&p.SessionPct, &p.WeeklyPct, &capturedStr); err != nil {
			return nil, fmt.Errorf("failed to scan usage history row: %w", err)
		}
		p.CapturedAt = parseTimeString(capturedStr)
		points = append(points, p)
	}
	return points, rows.Err()
}

// parseTimeString parses the stored timestamp formats. Rows are written
// by Record in one layout, but older databases may carry RFC3339.
func parseTimeString(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// Prune deletes rows older than the retention window.
func (s *Store) Prune() error {
	cutoff := time.Now().UTC().Add(-RetentionWindow).Format("2006-01-02 15:04:05")
	if _, err := s.db.ExecContext(context.Background(),
		"DELETE FROM usage_history WHERE captured_at < ?", cutoff); err != nil {
		return fmt.Errorf("failed to prune usage history: %w", err)
	}
	return nil
}
