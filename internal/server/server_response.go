package server

import (
	"github.com/lessbyless/lessbyless/internal/dosage"
	"github.com/lessbyless/lessbyless/internal/progress"
	"github.com/lessbyless/lessbyless/pkg/tracker"
)

type TrackerListResponse struct {
	Trackers []tracker.Record `json:"trackers"`
}

type ProgressResponse struct {
	TrackerID          string               `json:"tracker_id"`
	ElapsedMs          int64                `json:"elapsed_ms"`
	Label              string               `json:"label"`
	Breakdown          []progress.Part      `json:"breakdown"`
	Achieved           []progress.Milestone `json:"achieved"`
	Next               *progress.Milestone  `json:"next,omitempty"`
	ProgressToNext     float64              `json:"progress_to_next"`
	PreviousDurationMs int64                `json:"previous_duration_ms"`
	DaysTracked        int                  `json:"days_tracked"`
}

type StreakTarget struct {
	StartedAt  string `json:"started_at"`
	ResetAt    string `json:"reset_at"`
	DurationMs int64  `json:"duration_ms"`
}

type StreaksResponse struct {
	TrackerID     string        `json:"tracker_id"`
	ElapsedMs     int64         `json:"elapsed_ms"`
	Last          *StreakTarget `json:"last,omitempty"`
	Record        *StreakTarget `json:"record,omitempty"`
	HasGoneLonger bool          `json:"has_gone_longer"`
	HasHitRecord  bool          `json:"has_hit_record"`
	UntilLast     string        `json:"until_last"`
	UntilRecord   string        `json:"until_record"`
}

type DosageTodayResponse struct {
	TrackerID  string  `json:"tracker_id"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	LastLogged string  `json:"last_logged,omitempty"`
}

type DosageDailyResponse struct {
	TrackerID string            `json:"tracker_id"`
	Week      int               `json:"week"`
	MaxWeek   int               `json:"max_week"`
	Days      []dosage.DayTotal `json:"days"`
	Unit      string            `json:"unit"`
	TotalDays int               `json:"total_days"`
}

func streakTarget(t *progress.Target) *StreakTarget {
	if t == nil {
		return nil
	}
	return &StreakTarget{
		StartedAt:  t.StartedAt,
		ResetAt:    t.ResetAt,
		DurationMs: t.Duration.Milliseconds(),
	}
}
