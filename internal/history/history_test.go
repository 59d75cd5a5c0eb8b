package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := newTestStore(t)

	base := time.Now().UTC().Add(-2 * time.Hour).Truncate(time.Second)
	for i, pct := range []float64{10, 20, 30} {
		snap := &models.UsageSnapshot{
			SessionPercentage: pct,
			WeeklyPercentage:  pct / 2,
			CapturedAt:        base.Add(time.Duration(i) * 30 * time.Minute),
		}
		if err := s.Record("work", snap); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	points, err := s.Recent("work", 24*time.Hour)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("Recent() returned %d points, want 3", len(points))
	}
	// Oldest first.
	if points[0].SessionPct != 10 || points[2].SessionPct != 30 {
		t.Errorf("points out of order: first=%v last=%v", points[0].SessionPct, points[2].SessionPct)
	}
	if points[1].WeeklyPct != 10 {
		t.Errorf("WeeklyPct = %v, want 10", points[1].WeeklyPct)
	}
	if !points[0].CapturedAt.Equal(base) {
		t.Errorf("CapturedAt = %v, want %v", points[0].CapturedAt, base)
	}
}

func TestRecent_ProfilesIsolated(t *testing.T) {
	s := newTestStore(t)

	snap := &models.UsageSnapshot{
		SessionPercentage: 50,
		CapturedAt:        time.Now().UTC(),
	}
	if err := s.Record("work", snap); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	points, err := s.Recent("personal", 24*time.Hour)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(points) != 0 {
		t.Errorf("Recent() returned %d points for another profile, want 0", len(points))
	}
}

func TestRecent_WindowExcludesOldPoints(t *testing.T) {
	s := newTestStore(t)

	old := &models.UsageSnapshot{
		SessionPercentage: 10,
		CapturedAt:        time.Now().UTC().Add(-48 * time.Hour),
	}
	fresh := &models.UsageSnapshot{
		SessionPercentage: 20,
		CapturedAt:        time.Now().UTC().Add(-time.Hour),
	}
	if err := s.Record("work", old); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if err := s.Record("work", fresh); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	points, err := s.Recent("work", 24*time.Hour)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("Recent() returned %d points, want 1", len(points))
	}
	if points[0].SessionPct != 20 {
		t.Errorf("SessionPct = %v, want 20", points[0].SessionPct)
	}
}

func TestRecord_Nil(t *testing.T) {
	s := newTestStore(t)
	if err := s.Record("work", nil); err == nil {
		t.Error("Record(nil) should fail")
	}
}

func TestPrune(t *testing.T) {
	s := newTestStore(t)

	expired := &models.UsageSnapshot{
		SessionPercentage: 10,
		CapturedAt:        time.Now().UTC().Add(-RetentionWindow - time.Hour),
	}
	kept := &models.UsageSnapshot{
		SessionPercentage: 20,
		CapturedAt:        time.Now().UTC().Add(-time.Hour),
	}
	if err := s.Record("work", expired); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if err := s.Record("work", kept); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	if err := s.Prune(); err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}

	points, err := s.Recent("work", 2*RetentionWindow)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("Recent() returned %d points after prune, want 1", len(points))
	}
	if points[0].SessionPct != 20 {
		t.Errorf("SessionPct = %v, want 20", points[0].SessionPct)
	}
}
