package codec

import (
	"time"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/models"
)

// compatSnapshot is the flat key-value-tier schema written by older
// producers: percentages as plain numbers, timestamps as unix seconds,
// extra usage as separate optional amount fields. Pointers distinguish
// "absent" from a genuine zero.
type compatSnapshot struct {
	SessionPercent float64            `json:"sessionPercent"`
	SessionResetAt int64              `json:"sessionResetAt"`
	WeeklyPercent  float64            `json:"weeklyPercent"`
	WeeklyResetAt  int64              `json:"weeklyResetAt"`
	ModelPercents  map[string]float64 `json:"modelPercents,omitempty"`
	ExtraUsed      *int64             `json:"extraUsed,omitempty"`
	ExtraLimit     *int64             `json:"extraLimit,omitempty"`
	ExtraCurrency  string             `json:"extraCurrency,omitempty"`
	CapturedAt     int64              `json:"capturedAt"`
}

// DecodeCompatSnapshot decodes the legacy key-value schema into the
// canonical snapshot shape. Extra-usage fields map to absent, not zero,
// unless the whole group is present, so consumers can tell "no extra
// usage configured" from "0% extra usage".
func DecodeCompatSnapshot(data []byte) (*models.UsageSnapshot, error) {
	var c compatSnapshot
	if err := Decode(data, &c); err != nil {
		return nil, err
	}

	s := &models.UsageSnapshot{
		SessionPercentage:  c.SessionPercent,
		WeeklyPercentage:   c.WeeklyPercent,
		PerModelPercentage: c.ModelPercents,
	}
	if c.SessionResetAt > 0 {
		s.SessionResetAt = time.Unix(c.SessionResetAt, 0).UTC()
	}
	if c.WeeklyResetAt > 0 {
		s.WeeklyResetAt = time.Unix(c.WeeklyResetAt, 0).UTC()
	}
	if c.CapturedAt > 0 {
		s.CapturedAt = time.Unix(c.CapturedAt, 0).UTC()
	}
	if c.ExtraUsed != nil && c.ExtraLimit != nil && c.ExtraCurrency != "" {
		s.ExtraUsage = &models.ExtraUsage{
			AmountUsedCents:  *c.ExtraUsed,
			AmountLimitCents: *c.ExtraLimit,
			CurrencyCode:     c.ExtraCurrency,
		}
	}
	return s, nil
}
