package progress

import (
	"fmt"
	"sort"
	"time"

	"github.com/lessbyless/lessbyless/pkg/tracker"
)

// Target is a past attempt selected for comparison against the current streak.
type Target struct {
	StartedAt string        `json:"started_at"`
	ResetAt   string        `json:"reset_at"`
	Duration  time.Duration `json:"-"`
}

// Targets holds the comparison candidates derived from a reset history. Both
// fields are nil when no usable history exists.
type Targets struct {
	Last   *Target
	Record *Target
}

// SelectStreakTargets filters malformed reset entries out of a history and
// picks the most recent attempt and the longest attempt. The record tie-break
// is the first maximal entry in ascending reset order, so the result is
// deterministic regardless of the stored order.
func SelectStreakTargets(history []tracker.ResetEntry) Targets {
	type attempt struct {
		entry    tracker.ResetEntry
		reset    time.Time
		duration time.Duration
	}

	attempts := make([]attempt, 0, len(history))
	for _, e := range history {
		d, ok := e.Duration()
		if !ok {
			continue
		}
		reset, _ := tracker.ParseTime(e.ResetAt)
		attempts = append(attempts, attempt{entry: e, reset: reset, duration: d})
	}
	if len(attempts) == 0 {
		return Targets{}
	}

	sort.SliceStable(attempts, func(i, j int) bool {
		return attempts[i].reset.Before(attempts[j].reset)
	})

	last := attempts[len(attempts)-1]
	record := attempts[0]
	for _, a := range attempts[1:] {
		if a.duration > record.duration {
			record = a
		}
	}

	return Targets{
		Last:   &Target{StartedAt: last.entry.StartedAt, ResetAt: last.entry.ResetAt, Duration: last.duration},
		Record: &Target{StartedAt: record.entry.StartedAt, ResetAt: record.entry.ResetAt, Duration: record.duration},
	}
}

// Comparison relates the current elapsed streak to the selected targets.
// The thresholds are inclusive: matching a past attempt exactly counts as
// having gone longer.
type Comparison struct {
	HasGoneLonger bool
	HasHitRecord  bool
	UntilLast     time.Duration
	UntilRecord   time.Duration
}

// CompareStreaks computes the beat-last / beat-record state for the current
// elapsed time. Targets without a Last (empty history) compare as already
// beaten, since there is nothing to chase.
func CompareStreaks(elapsed time.Duration, t Targets) Comparison {
	c := Comparison{HasGoneLonger: true, HasHitRecord: true}
	if t.Last != nil {
		c.HasGoneLonger = elapsed >= t.Last.Duration
		if !c.HasGoneLonger {
			c.UntilLast = t.Last.Duration - elapsed
		}
	}
	if t.Record != nil {
		c.HasHitRecord = elapsed >= t.Record.Duration
		if !c.HasHitRecord {
			c.UntilRecord = t.Record.Duration - elapsed
		}
	}
	return c
}

// FormatTimeLeft renders a remaining duration as a compact countdown label.
// Minutes round up so a display never shows "0m" for a wait that is still
// pending.
func FormatTimeLeft(d time.Duration) string {
	if d <= 0 {
		return "now"
	}
	if d < time.Hour {
		m := (d + time.Minute - 1) / time.Minute
		return fmt.Sprintf("%dm", m)
	}
	if d < Day {
		h := d / time.Hour
		m := (d % time.Hour) / time.Minute
		if m > 0 {
			return fmt.Sprintf("%dh %dm", h, m)
		}
		return fmt.Sprintf("%dh", h)
	}
	if d < Month {
		days := d / Day
		h := (d % Day) / time.Hour
		if h > 0 {
			return fmt.Sprintf("%dd %dh", days, h)
		}
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd", d/Day)
}
