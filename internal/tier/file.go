package tier

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/logger"
)

// FileTier stores one file per logical key inside a shared directory
// reachable by every cooperating process. Writes replace the full file
// content in a single pass to keep the torn-read window small; a reader
// that still observes a torn write sees a decode failure and falls back.
type FileTier struct {
	dir string
}

// NewFileTier creates a file tier rooted at dir, creating it if needed.
func NewFileTier(dir string) (*FileTier, error) {
	if dir == "" {
		return nil, fmt.Errorf("shared directory path is empty")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create shared directory: %w", err)
	}
	return &FileTier{dir: dir}, nil
}

// Dir returns the shared directory backing this tier.
func (t *FileTier) Dir() string {
	return t.dir
}

// Path returns the file backing the given key.
func (t *FileTier) Path(key string) string {
	return filepath.Join(t.dir, key+".json")
}

// Write replaces the key's file content.
func (t *FileTier) Write(key string, data []byte) error {
	if err := os.WriteFile(t.Path(key), data, 0o600); err != nil {
		return fmt.Errorf("%w: file %s: %v", ErrWriteFailed, key, err)
	}
	return nil
}

// Read returns the key's file content, or ErrNotFound when the file is
// absent or unreadable.
func (t *FileTier) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(t.Path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Debug("file tier read failed", "key", key, "error", err)
		}
		return nil, ErrNotFound
	}
	return data, nil
}

// Delete removes the key's file. Deleting an absent key is not an error.
func (t *FileTier) Delete(key string) error {
	if err := os.Remove(t.Path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: file %s: %v", ErrWriteFailed, key, err)
	}
	return nil
}
