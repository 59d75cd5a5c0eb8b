package tier

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	// Register the pure-Go sqlite driver.
	_ "modernc.org/sqlite"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/logger"
)

// KVTier is a flat string-key to byte-blob register scoped to the local
// machine, backed by SQLite in WAL mode so the long-lived poller and the
// short-lived display processes can read and write it concurrently.
// A returned Write means the row is durably visible to other processes;
// there is no buffering behind the contract.
type KVTier struct {
	db   *sql.DB
	path string
}

// NewKVTier opens (creating if necessary) the key-value register at path.
func NewKVTier(path string) (*KVTier, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create register directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open register: %w", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to register: %w", err)
	}

	t := &KVTier{db: db, path: path}
	if err := t.configure(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure register: %w", err)
	}
	if err := t.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create register schema: %w", err)
	}
	return t, nil
}

// Path returns the register's database file path.
func (t *KVTier) Path() string {
	return t.path
}

// Close releases the underlying database handle.
func (t *KVTier) Close() error {
	return t.db.Close()
}

func (t *KVTier) configure() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := t.db.ExecContext(context.Background(), pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}
	return nil
}

func (t *KVTier) createSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := t.db.ExecContext(context.Background(), query)
	return err
}

// Write upserts the key's value.
func (t *KVTier) Write(key string, data []byte) error {
	query := `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := t.db.ExecContext(context.Background(), query, key, data); err != nil {
		return fmt.Errorf("%w: key %s: %v", ErrWriteFailed, key, err)
	}
	return nil
}

// Read returns the key's value, or ErrNotFound when absent or on any
// register-level failure.
func (t *KVTier) Read(key string) ([]byte, error) {
	var value []byte
	err := t.db.QueryRowContext(context.Background(),
		"SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Debug("kv tier read failed", "key", key, "error", err)
		}
		return nil, ErrNotFound
	}
	return value, nil
}

// Delete removes the key. Deleting an absent key is not an error.
func (t *KVTier) Delete(key string) error {
	if _, err := t.db.ExecContext(context.Background(),
		"DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("%w: key %s: %v", ErrWriteFailed, key, err)
	}
	return nil
}
