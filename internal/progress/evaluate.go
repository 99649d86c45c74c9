package progress

import (
	"time"

	"github.com/lessbyless/lessbyless/pkg/tracker"
)

// Result is the derived cold-turkey progress state at a given instant.
type Result struct {
	Achieved         []Milestone
	Elapsed          time.Duration
	Next             *Milestone
	ProgressToNext   float64
	PreviousDuration time.Duration
}

// Evaluate computes milestone progress for a start instant. Pure function of
// its arguments; a start in the future clamps elapsed to zero.
func Evaluate(startedAt, now time.Time) Result {
	elapsed := now.Sub(startedAt)
	if elapsed < 0 {
		elapsed = 0
	}

	res := Result{Elapsed: elapsed, ProgressToNext: 1}
	for i := range Milestones {
		m := Milestones[i]
		if m.Duration <= elapsed {
			res.Achieved = append(res.Achieved, m)
			res.PreviousDuration = m.Duration
			continue
		}
		res.Next = &m
		ratio := float64(elapsed) / float64(m.Duration)
		res.ProgressToNext = min(1, max(0, ratio))
		break
	}
	return res
}

// EvaluateRecord evaluates a cold-turkey record. Returns false when the record
// is not a cold-turkey tracker or its start timestamp is malformed.
func EvaluateRecord(rec tracker.Record, now time.Time) (Result, bool) {
	if rec.Kind != tracker.KindColdTurkey {
		return Result{}, false
	}
	started, ok := rec.StartTime()
	if !ok {
		return Result{}, false
	}
	return Evaluate(started, now), true
}

// NewlyAchieved returns the achieved milestones the record has not yet been
// notified about, in ascending order.
func NewlyAchieved(rec tracker.Record, now time.Time) []Milestone {
	res, ok := EvaluateRecord(rec, now)
	if !ok {
		return nil
	}
	var fresh []Milestone
	for _, m := range res.Achieved {
		if !rec.HasNotified(m.Duration.Milliseconds()) {
			fresh = append(fresh, m)
		}
	}
	return fresh
}

// DaysTracked is the whole number of days since the start timestamp, clamped
// at zero. False when the timestamp is malformed.
func DaysTracked(startedAt string, now time.Time) (int, bool) {
	started, ok := tracker.ParseTime(startedAt)
	if !ok {
		return 0, false
	}
	diff := now.Sub(started)
	if diff < 0 {
		return 0, true
	}
	return int(diff / Day), true
}
