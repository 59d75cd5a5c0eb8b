// Package widget builds the point-in-time render model for the
// sandboxed display processes. A widget process cannot poll the remote
// service and does not persist between invocations: the host invokes it,
// it reads the stores once, renders, reports when it wants to run next
// and exits.
package widget

import (
	"sync"
	"time"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/store"
)

// Kind selects the tile size being rendered.
type Kind string

const (
	KindSmall  Kind = "small"
	KindMedium Kind = "medium"
	KindLarge  Kind = "large"
)

// Refresh policy per tile size. Compact tiles refresh more often than
// the richest display.
const (
	compactRefreshInterval = 15 * time.Minute
	largeRefreshInterval   = 30 * time.Minute
)

// RefreshInterval returns how long after an invocation the host should
// wait before re-invoking a tile of this kind.
func RefreshInterval(kind Kind) time.Duration {
	if kind == KindLarge {
		return largeRefreshInterval
	}
	return compactRefreshInterval
}

// State is the scheduler's lifecycle position.
type State int

const (
	StateIdle State = iota
	StateRendering
	StateScheduled
)

// String returns the state's name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRendering:
		return "rendering"
	case StateScheduled:
		return "scheduled"
	}
	return "unknown"
}

// Scheduler produces one immutable render model per host invocation and
// computes the next allowed invocation time. It drives no timer of its
// own; it is purely reactive.
type Scheduler struct {
	mu    sync.Mutex
	store *store.Store
	state State
	now   func() time.Time
}

// NewScheduler creates a scheduler over the given store.
func NewScheduler(st *store.Store) *Scheduler {
	return &Scheduler{store: st, now: time.Now}
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Invoke handles one host-issued invocation: read the latest snapshot
// and settings, derive display values, and return the rendered model
// together with the deadline at or after which the host should re-invoke.
// Missing or unreadable data yields a valid "no data" model, never an
// error the host could crash on.
func (s *Scheduler) Invoke(profileID string, kind Kind) *RenderModel {
	s.mu.Lock()
	s.state = StateRendering
	s.mu.Unlock()

	now := s.now()
	snap := s.store.LoadSnapshot(profileID)
	settings := s.store.LoadSettings(profileID)

	model := BuildRenderModel(snap, settings, kind, now)
	model.NextRefresh = now.Add(RefreshInterval(kind))

	s.mu.Lock()
	s.state = StateScheduled
	s.mu.Unlock()

	return model
}
