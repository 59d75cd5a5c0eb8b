// Package models defines data structures and domain types.
package models

import (
	"maps"
	"time"
)

// Model names tracked in the per-model percentage map. The remote service
// may report more; these two are always present in canonical snapshots.
const (
	ModelOpus   = "opus"
	ModelSonnet = "sonnet"
)

// ExtraUsage describes pay-as-you-go spend beyond the included quota.
// Amounts are stored in currency minor units (cents). The three fields
// travel together: a snapshot either has all of them or none, expressed
// by a nil *ExtraUsage on the snapshot.
type ExtraUsage struct {
	AmountUsedCents  int64  `json:"amountUsedCents"`
	AmountLimitCents int64  `json:"amountLimitCents"`
	CurrencyCode     string `json:"currencyCode"`
}

// UsageSnapshot is the full quota state captured at one instant by the
// background poller. Percentages are stored as reported and clamped to
// [0,100] by consumers at display time, not at write time.
type UsageSnapshot struct {
	SessionPercentage  float64            `json:"sessionPercentage"`
	SessionResetAt     time.Time          `json:"sessionResetAt"`
	WeeklyPercentage   float64            `json:"weeklyPercentage"`
	WeeklyResetAt      time.Time          `json:"weeklyResetAt"`
	PerModelPercentage map[string]float64 `json:"perModelPercentage,omitempty"`
	ExtraUsage         *ExtraUsage        `json:"extraUsage,omitempty"`
	CapturedAt         time.Time          `json:"capturedAt"`
}

// Clone returns a deep copy of the snapshot.
func (s *UsageSnapshot) Clone() *UsageSnapshot {
	if s == nil {
		return nil
	}
	c := *s
	if s.PerModelPercentage != nil {
		c.PerModelPercentage = make(map[string]float64, len(s.PerModelPercentage))
		maps.Copy(c.PerModelPercentage, s.PerModelPercentage)
	}
	if s.ExtraUsage != nil {
		extra := *s.ExtraUsage
		c.ExtraUsage = &extra
	}
	return &c
}

// NewerThan reports whether this snapshot was captured strictly after
// other. A nil other never wins.
func (s *UsageSnapshot) NewerThan(other *UsageSnapshot) bool {
	if s == nil {
		return false
	}
	if other == nil {
		return true
	}
	return s.CapturedAt.After(other.CapturedAt)
}
