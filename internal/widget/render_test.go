package widget

import (
	"testing"
	"time"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/metrics"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/models"
)

var renderNow = time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

func renderSnapshot() *models.UsageSnapshot {
	return &models.UsageSnapshot{
		SessionPercentage: 45,
		SessionResetAt:    renderNow.Add(3 * time.Hour),
		WeeklyPercentage:  85,
		WeeklyResetAt:     renderNow.Add(48 * time.Hour),
		PerModelPercentage: map[string]float64{
			models.ModelOpus:   12,
			models.ModelSonnet: 60,
		},
		ExtraUsage: &models.ExtraUsage{
			AmountUsedCents:  250,
			AmountLimitCents: 1000,
			CurrencyCode:     "USD",
		},
		CapturedAt: renderNow.Add(-time.Minute),
	}
}

func TestBuildRenderModel(t *testing.T) {
	model := BuildRenderModel(renderSnapshot(), models.DefaultSettings(), KindLarge, renderNow)

	if !model.HasData() {
		t.Fatal("HasData() = false, want true")
	}

	if model.Derived.Session.Percentage != 45 {
		t.Errorf("session percentage = %v, want 45", model.Derived.Session.Percentage)
	}
	if model.Derived.Session.Level != metrics.StatusSafe {
		t.Errorf("session level = %v, want safe", model.Derived.Session.Level)
	}
	if model.Derived.Session.ResetText != "Today, 1:00pm" {
		t.Errorf("session reset text = %q, want %q", model.Derived.Session.ResetText, "Today, 1:00pm")
	}

	if model.Derived.Weekly.Level != metrics.StatusCritical {
		t.Errorf("weekly level = %v, want critical", model.Derived.Weekly.Level)
	}
	if model.Derived.Weekly.Color != metrics.ColorCritical {
		t.Errorf("weekly color = %v, want critical color", model.Derived.Weekly.Color)
	}

	opus, ok := model.Derived.PerModel[models.ModelOpus]
	if !ok {
		t.Fatal("per-model metric for opus missing")
	}
	if opus.Percentage != 12 {
		t.Errorf("opus percentage = %v, want 12", opus.Percentage)
	}

	if !model.Derived.Extra.Available {
		t.Error("extra metric should be available with a configured limit")
	}
	if model.Derived.Extra.Percentage != 25 {
		t.Errorf("extra percentage = %v, want 25", model.Derived.Extra.Percentage)
	}
	if model.Derived.ExtraText != "25%" {
		t.Errorf("ExtraText = %q, want %q", model.Derived.ExtraText, "25%")
	}
}

func TestBuildRenderModel_NilSnapshot(t *testing.T) {
	model := BuildRenderModel(nil, models.DefaultSettings(), KindSmall, renderNow)

	if model.HasData() {
		t.Fatal("HasData() = true for nil snapshot")
	}
	if model.Derived.Session.Available {
		t.Error("session metric should be unavailable without data")
	}
	if model.Derived.ExtraText != "0%" {
		t.Errorf("ExtraText = %q, want neutral %q", model.Derived.ExtraText, "0%")
	}
}

func TestBuildRenderModel_ClampsOutOfRange(t *testing.T) {
	snap := renderSnapshot()
	snap.SessionPercentage = 130
	snap.WeeklyPercentage = -5

	model := BuildRenderModel(snap, models.DefaultSettings(), KindLarge, renderNow)

	if model.Derived.Session.Percentage != 100 {
		t.Errorf("session percentage = %v, want clamped 100", model.Derived.Session.Percentage)
	}
	if model.Derived.Weekly.Percentage != 0 {
		t.Errorf("weekly percentage = %v, want clamped 0", model.Derived.Weekly.Percentage)
	}
}

func TestBuildRenderModel_NoExtraLimit(t *testing.T) {
	snap := renderSnapshot()
	snap.ExtraUsage = &models.ExtraUsage{AmountUsedCents: 250, CurrencyCode: "USD"}

	model := BuildRenderModel(snap, models.DefaultSettings(), KindLarge, renderNow)

	if model.Derived.Extra.Available {
		t.Error("extra metric should be unavailable without a limit")
	}
	if model.Derived.ExtraText != "0%" {
		t.Errorf("ExtraText = %q, want %q", model.Derived.ExtraText, "0%")
	}
}

func TestBuildRenderModel_CompactResetText(t *testing.T) {
	model := BuildRenderModel(renderSnapshot(), models.DefaultSettings(), KindSmall, renderNow)

	if model.Derived.Session.ResetText != "1:00pm" {
		t.Errorf("compact reset text = %q, want %q", model.Derived.Session.ResetText, "1:00pm")
	}
}

func TestMetricFor(t *testing.T) {
	model := BuildRenderModel(renderSnapshot(), models.DefaultSettings(), KindMedium, renderNow)

	tests := []struct {
		name models.TileMetric
		want models.TileMetric
	}{
		{models.MetricSession, models.MetricSession},
		{models.MetricWeekly, models.MetricWeekly},
		{models.MetricExtra, models.MetricExtra},
		{models.MetricOpus, models.MetricOpus},
		{models.TileMetric("unknown"), models.MetricSession},
	}

	for _, tt := range tests {
		if got := model.MetricFor(tt.name); got.Name != tt.want {
			t.Errorf("MetricFor(%q).Name = %q, want %q", tt.name, got.Name, tt.want)
		}
	}
}
