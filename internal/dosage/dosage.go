// Package dosage aggregates dose-decrease intake logs into daily totals.
// Amounts are normalized to milligrams before summing and converted back to
// the tracker's display unit on the way out. Days are local calendar days
// relative to the supplied reference time, not rolling 24h windows.
package dosage

import (
	"fmt"
	"time"

	"github.com/lessbyless/lessbyless/pkg/tracker"
)

const dayKeyLayout = "2006-01-02"

// Total is a summed amount in the tracker's display unit.
type Total struct {
	Value float64      `json:"value"`
	Unit  tracker.Unit `json:"unit"`
}

// DayTotal is one calendar day's summed amount.
type DayTotal struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// TodaysTotal sums the logs that fall on the reference time's calendar day.
// Logs with malformed timestamps are excluded; no logs yields a zero total in
// the tracker's unit.
func TodaysTotal(rec tracker.Record, now time.Time) Total {
	dayStart := startOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var mg float64
	for _, l := range rec.DoseLogs {
		at, ok := tracker.ParseTime(l.At)
		if !ok {
			continue
		}
		at = at.In(now.Location())
		if at.Before(dayStart) || !at.Before(dayEnd) {
			continue
		}
		mg += tracker.ToMilligrams(l.Value, l.Unit)
	}
	return Total{Value: tracker.FromMilligrams(mg, rec.CurrentUsageUnit), Unit: rec.CurrentUsageUnit}
}

// DailyTotals builds the per-day series from the earliest logged day through
// the reference day inclusive, with every intermediate day present even when
// its total is zero. Empty when no log has a usable timestamp.
func DailyTotals(rec tracker.Record, now time.Time) []DayTotal {
	sums := make(map[string]float64)
	var earliest time.Time
	for _, l := range rec.DoseLogs {
		at, ok := tracker.ParseTime(l.At)
		if !ok {
			continue
		}
		day := startOfDay(at.In(now.Location()))
		sums[day.Format(dayKeyLayout)] += tracker.ToMilligrams(l.Value, l.Unit)
		if earliest.IsZero() || day.Before(earliest) {
			earliest = day
		}
	}
	if earliest.IsZero() {
		return nil
	}

	today := startOfDay(now)
	var series []DayTotal
	for day := earliest; !day.After(today); day = day.AddDate(0, 0, 1) {
		key := day.Format(dayKeyLayout)
		series = append(series, DayTotal{
			Date:  key,
			Value: tracker.FromMilligrams(sums[key], rec.CurrentUsageUnit),
		})
	}
	return series
}

// MaxWeekIndex is the largest valid index for WeekSlice over the series.
func MaxWeekIndex(series []DayTotal) int {
	if len(series) == 0 {
		return 0
	}
	return (len(series) - 1) / 7
}

// WeekSlice returns the up-to-7-day window of the series, counted backwards
// from its end: index 0 is the most recent week. Out-of-range indexes clamp.
func WeekSlice(series []DayTotal, weekIndex int) []DayTotal {
	if len(series) == 0 {
		return nil
	}
	if weekIndex < 0 {
		weekIndex = 0
	}
	if maxIdx := MaxWeekIndex(series); weekIndex > maxIdx {
		weekIndex = maxIdx
	}

	end := len(series) - weekIndex*7
	start := end - 7
	if start < 0 {
		start = 0
	}
	return series[start:end]
}

// LastLogged returns how long ago the most recent valid log was taken.
func LastLogged(rec tracker.Record, now time.Time) (time.Duration, bool) {
	var latest time.Time
	found := false
	for _, l := range rec.DoseLogs {
		at, ok := tracker.ParseTime(l.At)
		if !ok {
			continue
		}
		if !found || at.After(latest) {
			latest = at
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return now.Sub(latest), true
}

// FormatRelative renders an age as a rough "ago" label for list rows and the
// home-screen widget.
func FormatRelative(age time.Duration) string {
	const day = 24 * time.Hour
	switch {
	case age <= 0:
		return "just now"
	case age < time.Minute:
		return "moments ago"
	case age < time.Hour:
		m := int64(age / time.Minute)
		return fmt.Sprintf("%d %s ago", m, pluralCount("minute", m))
	case age < day:
		h := int64(age / time.Hour)
		return fmt.Sprintf("%d %s ago", h, pluralCount("hour", h))
	default:
		d := int64(age / day)
		return fmt.Sprintf("%d %s ago", d, pluralCount("day", d))
	}
}

func pluralCount(label string, n int64) string {
	if n == 1 {
		return label
	}
	return label + "s"
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
