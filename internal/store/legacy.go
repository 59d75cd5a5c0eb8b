package store

import (
	"strconv"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/models"
)

// Legacy single-profile per-field keys. Older producers wrote each
// preference as its own primitive register entry instead of one bundled
// payload; those installs keep working until the primary process writes
// the bundle once.
const (
	legacyKeyShowDirectory    = "show-directory"
	legacyKeyShowBranch       = "show-branch"
	legacyKeyShowUsage        = "show-usage"
	legacyKeyShowProgressBar  = "show-progress-bar"
	legacyKeyUse24HourClock   = "use-24-hour-clock"
	legacyKeyColorMode        = "color-mode"
	legacyKeyCustomColor      = "custom-color"
	legacyKeySmallTileMetric  = "small-tile-metric"
	legacyKeyMediumTileFirst  = "medium-tile-metric-1"
	legacyKeyMediumTileSecond = "medium-tile-metric-2"
	legacyKeyExtraFormat      = "extra-usage-format"
)

var legacyKeys = []string{
	legacyKeyShowDirectory, legacyKeyShowBranch, legacyKeyShowUsage,
	legacyKeyShowProgressBar, legacyKeyUse24HourClock, legacyKeyColorMode,
	legacyKeyCustomColor, legacyKeySmallTileMetric, legacyKeyMediumTileFirst,
	legacyKeyMediumTileSecond, legacyKeyExtraFormat,
}

// loadLegacySettings assembles a settings bundle from the per-field
// legacy keys. The second return is false when none of them exist, in
// which case the caller falls through to the next source.
func (s *Store) loadLegacySettings() (models.Settings, bool) {
	found := false
	for _, key := range legacyKeys {
		if _, err := s.kv.Read(key); err == nil {
			found = true
			break
		}
	}
	if !found {
		return models.Settings{}, false
	}

	settings := models.DefaultSettings()
	settings.ShowDirectory = s.legacyBool(legacyKeyShowDirectory, true)
	settings.ShowBranch = s.legacyBool(legacyKeyShowBranch, true)
	settings.ShowUsage = s.legacyBool(legacyKeyShowUsage, true)
	settings.ShowProgressBar = s.legacyBool(legacyKeyShowProgressBar, true)
	settings.Use24HourClock = s.legacyBool(legacyKeyUse24HourClock, false)

	if v := s.legacyString(legacyKeyColorMode); v != "" {
		settings.ColorMode = models.ColorMode(v)
	}
	if v := s.legacyString(legacyKeyCustomColor); v != "" {
		settings.CustomColor = v
	}
	if v := s.legacyString(legacyKeySmallTileMetric); v != "" {
		settings.SmallTileMetric = models.TileMetric(v)
	}
	if v := s.legacyString(legacyKeyMediumTileFirst); v != "" {
		settings.MediumTileMetrics[0] = models.TileMetric(v)
	}
	if v := s.legacyString(legacyKeyMediumTileSecond); v != "" {
		settings.MediumTileMetrics[1] = models.TileMetric(v)
	}
	if v := s.legacyString(legacyKeyExtraFormat); v != "" {
		settings.ExtraUsageFormat = models.ExtraUsageFormat(v)
	}

	return settings.Normalize(), true
}

func (s *Store) legacyString(key string) string {
	data, err := s.kv.Read(key)
	if err != nil {
		return ""
	}
	return string(data)
}

func (s *Store) legacyBool(key string, def bool) bool {
	data, err := s.kv.Read(key)
	if err != nil {
		return def
	}
	v, err := strconv.ParseBool(string(data))
	if err != nil {
		return def
	}
	return v
}
