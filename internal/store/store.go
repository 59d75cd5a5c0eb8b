// Package store orchestrates the persistence tiers: it publishes usage
// snapshots and settings for the background poller and serves the latest
// readable version to the isolated display processes, degrading to
// defaults instead of failing when a tier is empty, stale or corrupt.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/codec"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/logger"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/models"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/tier"
)

// Logical keys. Profile-scoped data is namespaced by profile ID; the
// bare keys are the legacy single-profile namespace.
const (
	KeySnapshot = "snapshot"
	KeySettings = "settings"
	KeyProfiles = "profiles"
)

// SnapshotKey returns the tier key for a profile's snapshot.
func SnapshotKey(profileID string) string {
	if profileID == "" {
		return KeySnapshot
	}
	return KeySnapshot + "-" + profileID
}

// SettingsKey returns the tier key for a profile's settings bundle.
func SettingsKey(profileID string) string {
	if profileID == "" {
		return KeySettings
	}
	return KeySettings + "-" + profileID
}

// Store reads and writes snapshots and settings across the shared-file
// tier and the key-value tier. Construct one per process and pass it
// where needed; it holds no hidden global state.
type Store struct {
	file  tier.Tier
	kv    tier.Tier
	cache *Cache[models.Settings]
}

// Option configures a Store.
type Option func(*Store)

// WithSettingsCacheTTL overrides the settings cache TTL.
func WithSettingsCacheTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.cache = NewCache[models.Settings](ttl)
	}
}

// New creates a store over the given tiers. Either tier may be nil when
// a process cannot reach it; reads then skip it and writes to it are
// dropped with a warning.
func New(file, kv tier.Tier, opts ...Option) *Store {
	s := &Store{
		file:  file,
		kv:    kv,
		cache: NewCache[models.Settings](DefaultCacheTTL),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadSnapshot returns the latest readable snapshot for the profile, or
// nil when no tier holds one. The shared-file tier is preferred for its
// richer versioned encoding; the key-value tier serves as a
// compatibility fallback and its payload is decoded independently.
func (s *Store) LoadSnapshot(profileID string) *models.UsageSnapshot {
	key := SnapshotKey(profileID)

	if s.file != nil {
		if data, err := s.file.Read(key); err == nil {
			snap, err := codec.DecodeSnapshot(data)
			if err == nil {
				return snap
			}
			logger.Debug("snapshot file payload unreadable, trying register", "key", key, "error", err)
		}
	}

	if s.kv == nil {
		return nil
	}
	data, err := s.kv.Read(key)
	if err != nil {
		return nil
	}

	// The register may hold either the canonical mirror or a legacy
	// compat payload from an older producer. Canonical snapshots always
	// carry capturedAt; a zero one means the bytes were shaped by the
	// compat schema.
	if snap, err := codec.DecodeSnapshot(data); err == nil && !snap.CapturedAt.IsZero() {
		return snap
	}
	snap, err := codec.DecodeCompatSnapshot(data)
	if err != nil {
		logger.Debug("register snapshot payload unreadable", "key", key, "error", err)
		return nil
	}
	return snap
}

// SaveSnapshot persists the snapshot to the shared-file tier and mirrors
// the same encoding into the key-value tier. A snapshot captured before
// the currently stored one is discarded, keeping capturedAt monotonic
// per profile even across poller clock skew.
func (s *Store) SaveSnapshot(profileID string, snap *models.UsageSnapshot) error {
	if snap == nil {
		return fmt.Errorf("cannot save nil snapshot")
	}

	if existing := s.LoadSnapshot(profileID); existing != nil &&
		existing.CapturedAt.After(snap.CapturedAt) {
		logger.Debug("discarding stale snapshot write",
			"profile", profileID,
			"stored", existing.CapturedAt,
			"incoming", snap.CapturedAt)
		return nil
	}

	data, err := codec.EncodeSnapshot(snap)
	if err != nil {
		return err
	}

	key := SnapshotKey(profileID)
	var fileErr error
	if s.file != nil {
		fileErr = s.file.Write(key, data)
		if fileErr != nil {
			logger.Warn("snapshot file write failed", "key", key, "error", fileErr)
		}
	}
	if s.kv != nil {
		if err := s.kv.Write(key, data); err != nil {
			logger.Warn("snapshot register mirror failed", "key", key, "error", err)
		} else if fileErr != nil {
			// The mirror carries the data; the write is not lost.
			fileErr = nil
		}
	}
	return fileErr
}

// LoadSettings returns the profile's settings bundle. It never fails:
// when nothing is stored the documented defaults are returned. Reads go
// through the short TTL cache; the snapshot path never does.
func (s *Store) LoadSettings(profileID string) models.Settings {
	key := SettingsKey(profileID)
	settings, err := s.cache.GetOrLoad(key, func() (models.Settings, error) {
		return s.loadSettingsUncached(profileID)
	})
	if err != nil {
		return models.DefaultSettings()
	}
	return settings
}

func (s *Store) loadSettingsUncached(profileID string) (models.Settings, error) {
	key := SettingsKey(profileID)

	if s.kv != nil {
		if data, err := s.kv.Read(key); err == nil {
			if settings, err := codec.DecodeSettings(data); err == nil {
				return settings, nil
			}
			logger.Debug("settings register payload unreadable", "key", key)
		} else if legacy, ok := s.loadLegacySettings(); ok && profileID == "" {
			return legacy, nil
		}
	}

	if s.file != nil {
		if data, err := s.file.Read(key); err == nil {
			if settings, err := codec.DecodeSettings(data); err == nil {
				return settings, nil
			}
		}
	}

	return models.DefaultSettings(), nil
}

// SaveSettings persists the bundle. The key-value tier is the primary
// channel so a display process invoked moments later sees the new value;
// the shared-file tier carries a mirror for readers without register
// access. The cache entry is invalidated before returning.
func (s *Store) SaveSettings(profileID string, settings models.Settings) error {
	data, err := codec.EncodeSettings(settings.Normalize())
	if err != nil {
		return err
	}

	key := SettingsKey(profileID)
	if s.kv == nil && s.file == nil {
		return fmt.Errorf("%w: no tier available", tier.ErrWriteFailed)
	}

	var kvErr error
	if s.kv != nil {
		kvErr = s.kv.Write(key, data)
	}
	if s.file != nil {
		if err := s.file.Write(key, data); err != nil {
			logger.Warn("settings file mirror failed", "key", key, "error", err)
			if s.kv == nil {
				kvErr = err
			}
		} else if kvErr != nil {
			kvErr = nil
		}
	}

	s.cache.Invalidate(key)
	return kvErr
}

// DeleteProfileData erases a profile's snapshot and settings from both
// tiers. Used by profile deletion, which must not leave cached quota or
// credentials-adjacent data behind.
func (s *Store) DeleteProfileData(profileID string) error {
	var errs []error
	for _, key := range []string{SnapshotKey(profileID), SettingsKey(profileID)} {
		if s.file != nil {
			if err := s.file.Delete(key); err != nil {
				errs = append(errs, err)
			}
		}
		if s.kv != nil {
			if err := s.kv.Delete(key); err != nil {
				errs = append(errs, err)
			}
		}
		s.cache.Invalidate(key)
	}
	return errors.Join(errs...)
}

// KV exposes the key-value tier for collaborators that persist their own
// collections through it, such as the profile store.
func (s *Store) KV() tier.Tier {
	return s.kv
}
