package models

import "time"

// TileMetric selects which usage percentage feeds a widget tile.
type TileMetric string

const (
	MetricSession TileMetric = "session"
	MetricWeekly  TileMetric = "weekly"
	MetricOpus    TileMetric = "opus"
	MetricSonnet  TileMetric = "sonnet"
	MetricExtra   TileMetric = "extra"
)

// ColorMode controls how percentage colors are chosen.
type ColorMode string

const (
	// ColorModeMulti picks a color per status level (green/yellow/red).
	ColorModeMulti ColorMode = "multiColor"
	// ColorModeMonochrome uses one neutral color regardless of percentage.
	ColorModeMonochrome ColorMode = "monochrome"
	// ColorModeSingle uses the user's custom color regardless of percentage.
	ColorModeSingle ColorMode = "singleColor"
)

// ExtraUsageFormat controls how pay-as-you-go spend is rendered.
type ExtraUsageFormat string

const (
	ExtraFormatPercentage ExtraUsageFormat = "percentage"
	ExtraFormatCurrency   ExtraUsageFormat = "currency"
	ExtraFormatBoth       ExtraUsageFormat = "both"
)

// Settings holds display and behavior preferences. Written only by the
// primary process; display processes read them through the store. No
// history is kept, last write wins.
type Settings struct {
	RefreshInterval      time.Duration    `json:"refreshInterval"`
	SmallTileMetric      TileMetric       `json:"smallTileMetric"`
	MediumTileMetrics    [2]TileMetric    `json:"mediumTileMetrics"`
	ColorMode            ColorMode        `json:"colorMode"`
	CustomColor          string           `json:"customColor"`
	NotificationsEnabled bool             `json:"notificationsEnabled"`
	ShowDirectory        bool             `json:"showDirectory"`
	ShowBranch           bool             `json:"showBranch"`
	ShowUsage            bool             `json:"showUsage"`
	ShowProgressBar      bool             `json:"showProgressBar"`
	Use24HourClock       bool             `json:"use24HourClock"`
	ExtraUsageFormat     ExtraUsageFormat `json:"extraUsageFormat"`
}

// DefaultCustomColor is the fallback hex color used when the user has not
// chosen one, or has chosen one that does not parse.
const DefaultCustomColor = "#7D56F4"

// DefaultSettings returns the documented default preference bundle.
func DefaultSettings() Settings {
	return Settings{
		RefreshInterval:      5 * time.Minute,
		SmallTileMetric:      MetricSession,
		MediumTileMetrics:    [2]TileMetric{MetricSession, MetricWeekly},
		ColorMode:            ColorModeMulti,
		CustomColor:          DefaultCustomColor,
		NotificationsEnabled: false,
		ShowDirectory:        true,
		ShowBranch:           true,
		ShowUsage:            true,
		ShowProgressBar:      true,
		Use24HourClock:       false,
		ExtraUsageFormat:     ExtraFormatPercentage,
	}
}

// Normalize replaces unknown enum values with their defaults so that a
// settings bundle written by a newer producer still renders sensibly.
func (s Settings) Normalize() Settings {
	def := DefaultSettings()
	if s.RefreshInterval <= 0 {
		s.RefreshInterval = def.RefreshInterval
	}
	if !validMetric(s.SmallTileMetric) {
		s.SmallTileMetric = def.SmallTileMetric
	}
	for i, m := range s.MediumTileMetrics {
		if !validMetric(m) {
			s.MediumTileMetrics[i] = def.MediumTileMetrics[i]
		}
	}
	switch s.ColorMode {
	case ColorModeMulti, ColorModeMonochrome, ColorModeSingle:
	default:
		s.ColorMode = def.ColorMode
	}
	switch s.ExtraUsageFormat {
	case ExtraFormatPercentage, ExtraFormatCurrency, ExtraFormatBoth:
	default:
		s.ExtraUsageFormat = def.ExtraUsageFormat
	}
	if s.CustomColor == "" {
		s.CustomColor = def.CustomColor
	}
	return s
}

func validMetric(m TileMetric) bool {
	switch m {
	case MetricSession, MetricWeekly, MetricOpus, MetricSonnet, MetricExtra:
		return true
	}
	return false
}
