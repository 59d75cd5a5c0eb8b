// Package tier provides the storage backends of the persistence fallback
// chain: a shared-file tier reachable by every cooperating process and a
// same-machine key-value register backed by SQLite. Tier failures are
// ordinary results, never process-level faults.
package tier

import "errors"

var (
	// ErrNotFound means the tier holds no data for the key. This is a
	// normal condition, not an error worth logging.
	ErrNotFound = errors.New("not found")

	// ErrWriteFailed wraps any I/O failure on a tier write.
	ErrWriteFailed = errors.New("write failed")
)

// Tier is one storage backend. Writes are synchronous: when Write
// returns nil the data is visible to a reader in another process.
type Tier interface {
	Write(key string, data []byte) error
	Read(key string) ([]byte, error)
	Delete(key string) error
}
