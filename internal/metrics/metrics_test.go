package metrics

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/models"
)

func TestStatusLevelFor(t *testing.T) {
	tests := []struct {
		percentage float64
		want       StatusLevel
	}{
		{0, StatusSafe},
		{49.9, StatusSafe},
		{50, StatusModerate},
		{79.9, StatusModerate},
		{80, StatusCritical},
		{100, StatusCritical},
		{150, StatusCritical},
		{-5, StatusSafe},
	}

	for _, tt := range tests {
		if got := StatusLevelFor(tt.percentage); got != tt.want {
			t.Errorf("StatusLevelFor(%v) = %v, want %v", tt.percentage, got, tt.want)
		}
	}
}

func TestStatusLevelString(t *testing.T) {
	tests := []struct {
		level StatusLevel
		want  string
	}{
		{StatusSafe, "safe"},
		{StatusModerate, "moderate"},
		{StatusCritical, "critical"},
		{StatusLevel(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-10, 0},
		{0, 0},
		{55.5, 55.5},
		{100, 100},
		{130, 100},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestExtraPercentage(t *testing.T) {
	tests := []struct {
		name      string
		used      int64
		limit     int64
		want      float64
		wantAvail bool
	}{
		{"Quarter", 25, 100, 25, true},
		{"Full", 1000, 1000, 100, true},
		{"OverLimit", 1500, 1000, 150, true},
		{"ZeroUsed", 0, 1000, 0, true},
		{"NoLimit", 250, 0, 0, false},
		{"NegativeLimit", 250, -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, avail := ExtraPercentage(tt.used, tt.limit)
			if avail != tt.wantAvail {
				t.Fatalf("ExtraPercentage(%d, %d) available = %v, want %v", tt.used, tt.limit, avail, tt.wantAvail)
			}
			if got != tt.want {
				t.Errorf("ExtraPercentage(%d, %d) = %v, want %v", tt.used, tt.limit, got, tt.want)
			}
		})
	}
}

func TestResolveColor(t *testing.T) {
	tests := []struct {
		name        string
		percentage  float64
		mode        models.ColorMode
		customColor string
		want        lipgloss.Color
	}{
		{"MultiSafe", 10, models.ColorModeMulti, "", ColorSafe},
		{"MultiModerate", 50, models.ColorModeMulti, "", ColorModerate},
		{"MultiCritical", 95, models.ColorModeMulti, "", ColorCritical},
		{"MonochromeIgnoresPercentage", 95, models.ColorModeMonochrome, "", ColorNeutral},
		{"SingleCustom", 95, models.ColorModeSingle, "#336699", lipgloss.Color("#336699")},
		{"SingleShortHex", 95, models.ColorModeSingle, "#abc", lipgloss.Color("#abc")},
		{"SingleInvalidFallsBack", 10, models.ColorModeSingle, "not-a-color", lipgloss.Color(models.DefaultCustomColor)},
		{"SingleEmptyFallsBack", 10, models.ColorModeSingle, "", lipgloss.Color(models.DefaultCustomColor)},
		{"UnknownModeActsAsMulti", 95, models.ColorMode("plaid"), "", ColorCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveColor(tt.percentage, tt.mode, tt.customColor)
			if got != tt.want {
				t.Errorf("ResolveColor(%v, %v, %q) = %v, want %v",
					tt.percentage, tt.mode, tt.customColor, got, tt.want)
			}
		})
	}
}

func TestIsHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"#7D56F4", true},
		{"#abc", true},
		{"#ABCDEF", true},
		{"7D56F4", false},
		{"#7D56F", false},
		{"#xyzxyz", false},
		{"", false},
		{"#", false},
	}
	for _, tt := range tests {
		if got := isHexColor(tt.in); got != tt.want {
			t.Errorf("isHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
