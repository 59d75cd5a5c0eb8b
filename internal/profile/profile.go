// Package profile manages the tracked accounts: credential bundles,
// active-profile selection and per-profile settings, persisted as one
// encoded collection in the key-value tier.
package profile

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/codec"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/logger"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/models"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/store"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/tier"
)

// Register keys for the profile collection and the active-profile id.
const (
	keyProfiles = store.KeyProfiles
	keyActive   = "active-profile"
)

var (
	// ErrNotFound means no profile has the requested id.
	ErrNotFound = errors.New("profile not found")

	// ErrExists means a profile with the id is already tracked.
	ErrExists = errors.New("profile already exists")

	// ErrCorrupt means the stored collection exists but does not decode.
	// Writes are refused until the caller passes force, so a decode
	// failure can never silently replace real profiles with an empty
	// collection.
	ErrCorrupt = errors.New("stored profile collection is corrupt")
)

// Store holds the profile collection for one process. Construct it once
// and pass it to whichever component needs it.
type Store struct {
	mu       sync.RWMutex
	kv       tier.Tier
	data     *store.Store
	profiles []models.Profile
	activeID string
	corrupt  bool
}

// NewStore loads the collection from the key-value tier. A corrupt
// stored collection does not fail construction: the store starts empty,
// reports Corrupt() and refuses non-forced writes.
func NewStore(data *store.Store) (*Store, error) {
	kv := data.KV()
	if kv == nil {
		return nil, fmt.Errorf("profile store requires the key-value tier")
	}

	s := &Store{kv: kv, data: data}
	s.load()
	return s, nil
}

func (s *Store) load() {
	data, err := s.kv.Read(keyProfiles)
	switch {
	case errors.Is(err, tier.ErrNotFound):
		// No profiles yet.
	case err != nil:
		s.corrupt = true
	default:
		profiles, err := codec.DecodeProfiles(data)
		if err != nil {
			logger.Warn("profile collection is unreadable, refusing destructive writes")
			s.corrupt = true
		} else {
			s.profiles = profiles
		}
	}

	if active, err := s.kv.Read(keyActive); err == nil {
		s.activeID = string(active)
	}
}

// Corrupt reports whether the stored collection failed to decode at
// load time.
func (s *Store) Corrupt() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.corrupt
}

// List returns a copy of all profiles.
func (s *Store) List() []models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Map(s.profiles, func(p models.Profile, _ int) models.Profile {
		return p.Clone()
	})
}

// Get returns the profile with the given id.
func (s *Store) Get(id string) (models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.profiles {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return models.Profile{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Add tracks a new profile and persists the collection. The first
// profile added becomes active.
func (s *Store) Add(p models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lo.ContainsBy(s.profiles, func(existing models.Profile) bool { return existing.ID == p.ID }) {
		return fmt.Errorf("%w: %s", ErrExists, p.ID)
	}
	if p.ID == "" {
		p.ID = fmt.Sprintf("profile_%d", time.Now().UnixNano())
	}
	if p.AddedAt.IsZero() {
		p.AddedAt = time.Now()
	}

	s.profiles = append(s.profiles, p)
	if err := s.persistLocked(false); err != nil {
		s.profiles = s.profiles[:len(s.profiles)-1]
		return err
	}

	if len(s.profiles) == 1 {
		s.activeID = p.ID
		if err := s.kv.Write(keyActive, []byte(p.ID)); err != nil {
			logger.Warn("failed to persist active profile", "error", err)
		}
	}
	return nil
}

// Update replaces an existing profile, preserving its AddedAt.
func (s *Store) Update(p models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.profiles {
		if existing.ID == p.ID {
			if p.AddedAt.IsZero() {
				p.AddedAt = existing.AddedAt
			}
			old := s.profiles[i]
			s.profiles[i] = p
			if err := s.persistLocked(false); err != nil {
				s.profiles[i] = old
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, p.ID)
}

// Delete removes a profile, its credential bundle with it, and erases
// the profile's cached snapshot and settings from both tiers.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, p := range s.profiles {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	removed := s.profiles[idx]
	s.profiles = append(s.profiles[:idx], s.profiles[idx+1:]...)

	if s.activeID == removed.ID {
		s.activeID = ""
		if len(s.profiles) > 0 {
			s.activeID = s.profiles[0].ID
		}
		if err := s.kv.Write(keyActive, []byte(s.activeID)); err != nil {
			logger.Warn("failed to persist active profile", "error", err)
		}
	}

	if err := s.persistLocked(false); err != nil {
		return err
	}
	if err := s.data.DeleteProfileData(removed.ID); err != nil {
		logger.Warn("failed to erase profile data", "profile", removed.ID, "error", err)
	}
	return nil
}

// SetActive marks the profile with the given id as active.
func (s *Store) SetActive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !lo.ContainsBy(s.profiles, func(p models.Profile) bool { return p.ID == id }) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.activeID = id
	if err := s.kv.Write(keyActive, []byte(id)); err != nil {
		return err
	}
	return nil
}

// GetActive returns the active profile, or nil when none is set. An
// active id that no longer references an existing profile is treated as
// unset.
func (s *Store) GetActive() *models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.profiles {
		if p.ID == s.activeID {
			c := p.Clone()
			return &c
		}
	}
	return nil
}

// ActiveID returns the stored active-profile id, which may be empty.
func (s *Store) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// SaveAll replaces the whole collection. When the stored collection was
// corrupt at load time the write is refused unless force is set, so
// callers must make the destructive overwrite explicit.
func (s *Store) SaveAll(profiles []models.Profile, force bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.profiles
	s.profiles = profiles
	if err := s.persistLocked(force); err != nil {
		s.profiles = old
		return err
	}
	return nil
}

func (s *Store) persistLocked(force bool) error {
	if s.corrupt && !force {
		return ErrCorrupt
	}

	data, err := codec.EncodeProfiles(s.profiles)
	if err != nil {
		return fmt.Errorf("failed to encode profile collection: %w", err)
	}
	if err := s.kv.Write(keyProfiles, data); err != nil {
		return err
	}
	s.corrupt = false
	return nil
}
