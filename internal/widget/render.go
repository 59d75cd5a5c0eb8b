package widget

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/metrics"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/models"
)

// Metric is one derived display value: a clamped percentage with its
// status level, resolved color and formatted reset caption.
type Metric struct {
	Name       models.TileMetric
	Percentage float64
	Level      metrics.StatusLevel
	Color      lipgloss.Color
	ResetText  string
	Available  bool
}

// Derived holds everything the renderer needs beyond the raw snapshot.
type Derived struct {
	Session   Metric
	Weekly    Metric
	PerModel  map[string]Metric
	Extra     Metric
	ExtraText string
}

// RenderModel is the single read-only struct handed to the rendering
// collaborator. It carries no further side effects.
type RenderModel struct {
	Snapshot    *models.UsageSnapshot
	Settings    models.Settings
	Derived     Derived
	Kind        Kind
	RenderedAt  time.Time
	NextRefresh time.Time
}

// HasData reports whether a snapshot was available at render time.
func (m *RenderModel) HasData() bool {
	return m.Snapshot != nil
}

// MetricFor returns the derived metric selected by a tile setting.
func (m *RenderModel) MetricFor(name models.TileMetric) Metric {
	switch name {
	case models.MetricWeekly:
		return m.Derived.Weekly
	case models.MetricExtra:
		return m.Derived.Extra
	case models.MetricSession:
		return m.Derived.Session
	default:
		if metric, ok := m.Derived.PerModel[string(name)]; ok {
			return metric
		}
		return m.Derived.Session
	}
}

// BuildRenderModel derives the display values for one snapshot under
// the given settings. A nil snapshot produces a model whose metrics are
// all unavailable; the renderer shows its "no data" state.
func BuildRenderModel(snap *models.UsageSnapshot, settings models.Settings, kind Kind, now time.Time) *RenderModel {
	settings = settings.Normalize()
	model := &RenderModel{
		Snapshot:   snap,
		Settings:   settings,
		Kind:       kind,
		RenderedAt: now,
	}

	if snap == nil {
		model.Derived.ExtraText = metrics.FormatExtraUsage(nil, settings.ExtraUsageFormat)
		return model
	}

	derive := func(name models.TileMetric, pct float64, resetAt time.Time) Metric {
		clamped := metrics.Clamp(pct)
		resetText := metrics.FormatResetTime(resetAt, now, settings.Use24HourClock)
		if kind == KindSmall {
			resetText = metrics.FormatResetTimeCompact(resetAt, now, settings.Use24HourClock)
		}
		return Metric{
			Name:       name,
			Percentage: clamped,
			Level:      metrics.StatusLevelFor(clamped),
			Color:      metrics.ResolveColor(clamped, settings.ColorMode, settings.CustomColor),
			ResetText:  resetText,
			Available:  true,
		}
	}

	model.Derived.Session = derive(models.MetricSession, snap.SessionPercentage, snap.SessionResetAt)
	model.Derived.Weekly = derive(models.MetricWeekly, snap.WeeklyPercentage, snap.WeeklyResetAt)

	model.Derived.PerModel = lo.MapValues(snap.PerModelPercentage,
		func(pct float64, name string) Metric {
			return derive(models.TileMetric(name), pct, snap.WeeklyResetAt)
		})

	if snap.ExtraUsage != nil {
		if pct, ok := metrics.ExtraPercentage(snap.ExtraUsage.AmountUsedCents, snap.ExtraUsage.AmountLimitCents); ok {
			model.Derived.Extra = derive(models.MetricExtra, pct, time.Time{})
		}
	}
	model.Derived.ExtraText = metrics.FormatExtraUsage(snap.ExtraUsage, settings.ExtraUsageFormat)

	return model
}
