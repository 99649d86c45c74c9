package progress

import (
	"fmt"
	"strings"
	"time"
)

// Fixed-length units. Month and year are deliberately calendar-naive so that
// breakdowns line up with the milestone thresholds, which use the same
// approximations.
const (
	Day   = 24 * time.Hour
	Week  = 7 * Day
	Month = 30 * Day
	Year  = 365 * Day
)

// Part is one value/unit pair of a duration breakdown.
type Part struct {
	Value int64  `json:"value"`
	Unit  string `json:"unit"`
}

var cascade = []struct {
	label string
	d     time.Duration
}{
	{"year", Year},
	{"month", Month},
	{"week", Week},
	{"day", Day},
	{"hour", time.Hour},
	{"minute", time.Minute},
	{"second", time.Second},
}

// Decompose splits an elapsed duration into at most maxParts value/unit pairs,
// largest unit first, skipping zero-count units. Sub-second durations yield a
// single zero-seconds part so the result is never empty.
func Decompose(elapsed time.Duration, maxParts int) []Part {
	return decompose(elapsed, maxParts, false)
}

// DecomposePadded is Decompose, except that once the leading unit is emitted
// every smaller unit follows even when its count is zero, until maxParts
// entries exist. Displays that depend on a stable part count use this variant.
func DecomposePadded(elapsed time.Duration, maxParts int) []Part {
	return decompose(elapsed, maxParts, true)
}

func decompose(elapsed time.Duration, maxParts int, padded bool) []Part {
	if maxParts < 1 {
		maxParts = 1
	}
	if elapsed < time.Second {
		return []Part{{Value: 0, Unit: "seconds"}}
	}

	parts := make([]Part, 0, maxParts)
	remainder := elapsed
	for _, u := range cascade {
		count := int64(remainder / u.d)
		if count == 0 && !(padded && len(parts) > 0) {
			continue
		}
		parts = append(parts, Part{Value: count, Unit: pluralize(u.label, count)})
		remainder -= time.Duration(count) * u.d
		if len(parts) == maxParts {
			break
		}
	}
	return parts
}

// FormatLabel renders an elapsed duration as a short human label, e.g.
// "5 days 3 hours".
func FormatLabel(elapsed time.Duration, parts int) string {
	if elapsed < time.Second {
		return "Less than a second"
	}
	decomposed := Decompose(elapsed, parts)
	fields := make([]string, 0, len(decomposed))
	for _, p := range decomposed {
		fields = append(fields, fmt.Sprintf("%d %s", p.Value, p.Unit))
	}
	return strings.Join(fields, " ")
}

func pluralize(label string, count int64) string {
	if count == 1 {
		return label
	}
	return label + "s"
}
