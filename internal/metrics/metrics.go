// Package metrics holds the pure derivation functions shared by the
// background poller and every display process: status-level mapping,
// extra-usage percentage, color resolution and display formatting. Both
// sides must compute these identically, so the thresholds live here and
// nowhere else.
package metrics

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/models"
)

// StatusLevel classifies a usage percentage.
type StatusLevel int

const (
	StatusSafe StatusLevel = iota
	StatusModerate
	StatusCritical
)

// Percentage thresholds between status levels.
const (
	ThresholdModerate = 50.0
	ThresholdCritical = 80.0
)

// String returns the level's name.
func (l StatusLevel) String() string {
	switch l {
	case StatusSafe:
		return "safe"
	case StatusModerate:
		return "moderate"
	case StatusCritical:
		return "critical"
	}
	return "unknown"
}

// StatusLevelFor maps a percentage to its status level: safe below 50,
// moderate in [50,80), critical at 80 and above.
func StatusLevelFor(percentage float64) StatusLevel {
	switch {
	case percentage >= ThresholdCritical:
		return StatusCritical
	case percentage >= ThresholdModerate:
		return StatusModerate
	default:
		return StatusSafe
	}
}

// Clamp bounds a percentage to [0,100]. Snapshots are stored as
// reported; every consumer clamps before display.
func Clamp(percentage float64) float64 {
	if percentage < 0 {
		return 0
	}
	if percentage > 100 {
		return 100
	}
	return percentage
}

// ExtraPercentage derives the pay-as-you-go usage percentage from spend
// amounts in minor units. The second return is false when no limit is
// configured, which is distinct from 0% of a real limit.
func ExtraPercentage(usedCents, limitCents int64) (float64, bool) {
	if limitCents <= 0 {
		return 0, false
	}
	return float64(usedCents) / float64(limitCents) * 100, true
}

// Status colors, matching across every consumer.
var (
	ColorSafe     = lipgloss.Color("42")  // green
	ColorModerate = lipgloss.Color("220") // yellow
	ColorCritical = lipgloss.Color("196") // red
	ColorNeutral  = lipgloss.Color("245") // gray
)

// ResolveColor picks the display color for a percentage under the given
// color mode. An unparseable custom color falls back to the documented
// default color, never an error.
func ResolveColor(percentage float64, mode models.ColorMode, customColor string) lipgloss.Color {
	switch mode {
	case models.ColorModeMonochrome:
		return ColorNeutral
	case models.ColorModeSingle:
		if isHexColor(customColor) {
			return lipgloss.Color(customColor)
		}
		return lipgloss.Color(models.DefaultCustomColor)
	default:
		switch StatusLevelFor(Clamp(percentage)) {
		case StatusCritical:
			return ColorCritical
		case StatusModerate:
			return ColorModerate
		default:
			return ColorSafe
		}
	}
}

// isHexColor accepts #RGB and #RRGGBB.
func isHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 {
		return false
	}
	if s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
