package widget

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/metrics"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/models"
)

func plainTile(t *testing.T, model *RenderModel) string {
	t.Helper()
	return ansi.Strip(RenderTile(model))
}

func TestRenderTile_NoData(t *testing.T) {
	model := BuildRenderModel(nil, models.DefaultSettings(), KindSmall, renderNow)

	out := plainTile(t, model)
	if !strings.Contains(out, "No usage data yet") {
		t.Errorf("tile output missing no-data message:\n%s", out)
	}
}

func TestRenderTile_Small(t *testing.T) {
	model := BuildRenderModel(renderSnapshot(), models.DefaultSettings(), KindSmall, renderNow)

	out := plainTile(t, model)
	if !strings.Contains(out, "Session") {
		t.Errorf("small tile missing metric label:\n%s", out)
	}
	if !strings.Contains(out, "45%") {
		t.Errorf("small tile missing percentage:\n%s", out)
	}
	if !strings.Contains(out, "1:00pm") {
		t.Errorf("small tile missing compact reset time:\n%s", out)
	}
	if strings.Contains(out, "Weekly") {
		t.Errorf("small tile should show one metric only:\n%s", out)
	}
}

func TestRenderTile_SmallConfiguredMetric(t *testing.T) {
	settings := models.DefaultSettings()
	settings.SmallTileMetric = models.MetricWeekly

	model := BuildRenderModel(renderSnapshot(), settings, KindSmall, renderNow)

	out := plainTile(t, model)
	if !strings.Contains(out, "Weekly") {
		t.Errorf("small tile should honor the configured metric:\n%s", out)
	}
}

func TestRenderTile_Medium(t *testing.T) {
	model := BuildRenderModel(renderSnapshot(), models.DefaultSettings(), KindMedium, renderNow)

	out := plainTile(t, model)
	for _, want := range []string{"Session", "45%", "Weekly", "85%"} {
		if !strings.Contains(out, want) {
			t.Errorf("medium tile missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTile_Large(t *testing.T) {
	model := BuildRenderModel(renderSnapshot(), models.DefaultSettings(), KindLarge, renderNow)

	out := plainTile(t, model)
	for _, want := range []string{"Session", "Weekly", "opus", "sonnet", "Extra:", "25%"} {
		if !strings.Contains(out, want) {
			t.Errorf("large tile missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTile_ProgressBarToggle(t *testing.T) {
	settings := models.DefaultSettings()
	settings.ShowProgressBar = false

	withBar := plainTile(t, BuildRenderModel(renderSnapshot(), models.DefaultSettings(), KindSmall, renderNow))
	withoutBar := plainTile(t, BuildRenderModel(renderSnapshot(), settings, KindSmall, renderNow))

	if len(strings.Split(withoutBar, "\n")) >= len(strings.Split(withBar, "\n")) {
		t.Error("disabling the progress bar should drop a line from the tile")
	}
}

func TestMetricLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"session", "Session"},
		{"weekly", "Weekly"},
		{"extra", "Extra usage"},
		{"opus", "Opus"},
		{"", "Usage"},
	}
	for _, tt := range tests {
		if got := metricLabel(tt.in); got != tt.want {
			t.Errorf("metricLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStatusGlyph(t *testing.T) {
	tests := []struct {
		level metrics.StatusLevel
		want  string
	}{
		{metrics.StatusSafe, "·"},
		{metrics.StatusModerate, "~"},
		{metrics.StatusCritical, "!"},
	}
	for _, tt := range tests {
		if got := StatusGlyph(tt.level); got != tt.want {
			t.Errorf("StatusGlyph(%v) = %q, want %q", tt.level, got, tt.want)
		}
	}
}
