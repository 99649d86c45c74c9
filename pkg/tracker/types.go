package tracker

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the two tracker variants.
type Kind string

const (
	KindColdTurkey   Kind = "cold_turkey"
	KindDoseDecrease Kind = "dose_decrease"
)

// Unit is a dosage unit.
type Unit string

const (
	UnitMilligram Unit = "mg"
	UnitGram      Unit = "g"
)

var (
	ErrInvalidDose = errors.New("dose value must be a finite number greater than zero")
	ErrLogNotFound = errors.New("dose log not found")
)

// ResetEntry is one completed and abandoned cold-turkey attempt.
type ResetEntry struct {
	StartedAt string `json:"started_at"`
	ResetAt   string `json:"reset_at"`
}

// DoseLog is one intake event for a dose-decrease tracker.
type DoseLog struct {
	ID    string  `json:"id"`
	At    string  `json:"at"`
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
	Note  string  `json:"note,omitempty"`
}

// Record is a tracker record. Kind-specific fields are only meaningful for the
// matching Kind; JSON omits the unused ones.
type Record struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartedAt string `json:"started_at"`
	Kind      Kind   `json:"kind"`

	// cold turkey
	NotifiedMilestones []int64      `json:"notified_milestones,omitempty"`
	ResetHistory       []ResetEntry `json:"reset_history,omitempty"`

	// dose decrease
	CurrentUsageValue float64   `json:"current_usage_value,omitempty"`
	CurrentUsageUnit  Unit      `json:"current_usage_unit,omitempty"`
	DoseLogs          []DoseLog `json:"dose_logs,omitempty"`
}

func (k Kind) Valid() bool {
	return k == KindColdTurkey || k == KindDoseDecrease
}

func (u Unit) Valid() bool {
	return u == UnitMilligram || u == UnitGram
}

// ToMilligrams converts a value in the given unit to milligrams. Unknown units
// pass through unchanged.
func ToMilligrams(value float64, unit Unit) float64 {
	if unit == UnitGram {
		return value * 1000
	}
	return value
}

// FromMilligrams converts a milligram value to the given unit.
func FromMilligrams(mg float64, unit Unit) float64 {
	if unit == UnitGram {
		return mg / 1000
	}
	return mg
}

// ParseTime parses a stored timestamp. Records written by older clients carry
// date-only values, so both full RFC3339 and bare dates are accepted.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTime renders a timestamp in the stored wire format.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Duration returns the attempt length of a reset entry, or false when either
// timestamp is malformed or the reset precedes the start. Zero-length attempts
// are valid.
func (e ResetEntry) Duration() (time.Duration, bool) {
	started, ok := ParseTime(e.StartedAt)
	if !ok {
		return 0, false
	}
	reset, ok := ParseTime(e.ResetAt)
	if !ok {
		return 0, false
	}
	d := reset.Sub(started)
	if d < 0 {
		return 0, false
	}
	return d, true
}

func NewColdTurkey(name string, startedAt time.Time) Record {
	return Record{
		ID:                 uuid.NewString(),
		Name:               name,
		StartedAt:          FormatTime(startedAt),
		Kind:               KindColdTurkey,
		NotifiedMilestones: []int64{},
	}
}

func NewDoseDecrease(name string, startedAt time.Time, baseline float64, unit Unit) Record {
	return Record{
		ID:                uuid.NewString(),
		Name:              name,
		StartedAt:         FormatTime(startedAt),
		Kind:              KindDoseDecrease,
		CurrentUsageValue: baseline,
		CurrentUsageUnit:  unit,
	}
}

// StartTime parses the record's start timestamp.
func (r Record) StartTime() (time.Time, bool) {
	return ParseTime(r.StartedAt)
}

// Validate checks the invariants every stored record must satisfy.
func (r Record) Validate() error {
	if r.Name == "" {
		return errors.New("tracker name is required")
	}
	if !r.Kind.Valid() {
		return fmt.Errorf("unknown tracker kind %q", r.Kind)
	}
	if r.Kind == KindDoseDecrease {
		if !r.CurrentUsageUnit.Valid() {
			return fmt.Errorf("unknown dosage unit %q", r.CurrentUsageUnit)
		}
		if !validDoseValue(r.CurrentUsageValue) {
			return ErrInvalidDose
		}
	}
	return nil
}

// Reset ends the current cold-turkey attempt: the completed start/now pair is
// appended to the reset history and the start timestamp rewound to now. The
// history entry is skipped when the old start never parsed, so the selector
// downstream is never fed a malformed pair.
func Reset(r Record, now time.Time) Record {
	if _, ok := ParseTime(r.StartedAt); ok {
		r.ResetHistory = append(append([]ResetEntry(nil), r.ResetHistory...), ResetEntry{
			StartedAt: r.StartedAt,
			ResetAt:   FormatTime(now),
		})
	}
	r.StartedAt = FormatTime(now)
	return r
}

// AppendDoseLog records one intake. Non-finite or non-positive values are
// rejected and the record is returned unchanged.
func AppendDoseLog(r Record, at time.Time, value float64, unit Unit, note string) (Record, error) {
	if !validDoseValue(value) {
		return r, ErrInvalidDose
	}
	if !unit.Valid() {
		return r, fmt.Errorf("unknown dosage unit %q", unit)
	}
	r.DoseLogs = append(append([]DoseLog(nil), r.DoseLogs...), DoseLog{
		ID:    uuid.NewString(),
		At:    FormatTime(at),
		Value: value,
		Unit:  unit,
		Note:  note,
	})
	return r, nil
}

// EditDoseLog replaces the value of the log with the given id.
func EditDoseLog(r Record, id string, value float64) (Record, error) {
	if !validDoseValue(value) {
		return r, ErrInvalidDose
	}
	logs := append([]DoseLog(nil), r.DoseLogs...)
	for i := range logs {
		if logs[i].ID == id {
			logs[i].Value = value
			r.DoseLogs = logs
			return r, nil
		}
	}
	return r, ErrLogNotFound
}

// DeleteDoseLog removes the log with the given id.
func DeleteDoseLog(r Record, id string) (Record, error) {
	for i := range r.DoseLogs {
		if r.DoseLogs[i].ID == id {
			logs := append([]DoseLog(nil), r.DoseLogs[:i]...)
			r.DoseLogs = append(logs, r.DoseLogs[i+1:]...)
			return r, nil
		}
	}
	return r, ErrLogNotFound
}

// MarkNotified unions the given milestone thresholds (in milliseconds) into
// the record's notified set.
func MarkNotified(r Record, thresholds []int64) Record {
	seen := make(map[int64]struct{}, len(r.NotifiedMilestones))
	merged := append([]int64(nil), r.NotifiedMilestones...)
	for _, t := range r.NotifiedMilestones {
		seen[t] = struct{}{}
	}
	for _, t := range thresholds {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			merged = append(merged, t)
		}
	}
	r.NotifiedMilestones = merged
	return r
}

// HasNotified reports whether a milestone threshold has already been notified.
func (r Record) HasNotified(threshold int64) bool {
	for _, t := range r.NotifiedMilestones {
		if t == threshold {
			return true
		}
	}
	return false
}

func validDoseValue(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
