package metrics

import (
	"fmt"
	"strings"
	"time"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/models"
)

// FormatResetTime renders a quota reset timestamp relative to now as
// "Today, 3:04pm", "Tomorrow, 3:04pm" or "Monday, 3:04pm". The
// timestamp is rounded to the nearest minute (30s and up rounds up)
// first, so repeated short-interval renders do not flip the displayed
// clock back and forth across a minute boundary. A zero timestamp
// renders empty.
func FormatResetTime(ts, now time.Time, use24HourClock bool) string {
	return formatResetTime(ts, now, use24HourClock, false)
}

// FormatResetTimeCompact is the space-constrained variant that omits the
// day name.
func FormatResetTimeCompact(ts, now time.Time, use24HourClock bool) string {
	return formatResetTime(ts, now, use24HourClock, true)
}

func formatResetTime(ts, now time.Time, use24HourClock, compact bool) string {
	if ts.IsZero() {
		return ""
	}

	ts = ts.In(now.Location()).Round(time.Minute)

	layout := "3:04pm"
	if use24HourClock {
		layout = "15:04"
	}
	clock := ts.Format(layout)
	if !use24HourClock {
		clock = strings.ToLower(clock)
	}
	if compact {
		return clock
	}

	var day string
	switch daysBetween(now, ts) {
	case 0:
		day = "Today"
	case 1:
		day = "Tomorrow"
	default:
		day = ts.Weekday().String()
	}
	return fmt.Sprintf("%s, %s", day, clock)
}

// daysBetween counts calendar-day boundaries between a and b in a's
// location. Negative when b is on an earlier day.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start) / (24 * time.Hour))
}

// currencySymbols maps ISO 4217 codes to their display symbols. Codes
// outside the map render as "CODE amount".
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"AUD": "A$",
	"CAD": "C$",
}

// FormatCurrency renders a minor-unit amount with its currency symbol.
// Amounts are stored as integer cents and divided by 100 here.
func FormatCurrency(amountCents int64, currencyCode string) string {
	code := strings.ToUpper(currencyCode)
	amount := float64(amountCents) / 100

	if code == "JPY" {
		// Yen has no minor unit.
		return fmt.Sprintf("%s%d", currencySymbols[code], amountCents)
	}
	if symbol, ok := currencySymbols[code]; ok {
		return fmt.Sprintf("%s%.2f", symbol, amount)
	}
	if code == "" {
		return fmt.Sprintf("$%.2f", amount)
	}
	return fmt.Sprintf("%s %.2f", code, amount)
}

// FormatExtraUsage renders pay-as-you-go usage under the requested
// format. When the data behind a requested component is unavailable the
// result is a neutral zero-value string, never an error.
func FormatExtraUsage(extra *models.ExtraUsage, format models.ExtraUsageFormat) string {
	var (
		pct       float64
		hasPct    bool
		usedCents int64
		currency  string
	)
	if extra != nil {
		pct, hasPct = ExtraPercentage(extra.AmountUsedCents, extra.AmountLimitCents)
		usedCents = extra.AmountUsedCents
		currency = extra.CurrencyCode
	}

	pctStr := "0%"
	if hasPct {
		pctStr = fmt.Sprintf("%.0f%%", Clamp(pct))
	}
	curStr := FormatCurrency(usedCents, currency)

	switch format {
	case models.ExtraFormatCurrency:
		return curStr
	case models.ExtraFormatBoth:
		return fmt.Sprintf("%s (%s)", curStr, pctStr)
	default:
		return pctStr
	}
}
