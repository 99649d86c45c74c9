package progress

import (
	"encoding/json"
	"time"
)

// Milestone is a fixed elapsed-duration threshold with a display label.
type Milestone struct {
	Label    string
	Duration time.Duration
}

// MarshalJSON keeps the wire format in milliseconds, matching the stored
// notified-milestone thresholds.
func (m Milestone) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Label      string `json:"label"`
		DurationMs int64  `json:"duration_ms"`
	}{m.Label, m.Duration.Milliseconds()})
}

func (m *Milestone) UnmarshalJSON(data []byte) error {
	var raw struct {
		Label      string `json:"label"`
		DurationMs int64  `json:"duration_ms"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Label = raw.Label
	m.Duration = time.Duration(raw.DurationMs) * time.Millisecond
	return nil
}

// Milestones is the cold-turkey milestone table, ascending by duration.
var Milestones = []Milestone{
	{"12 hours", 12 * time.Hour},
	{"1 day", 1 * Day},
	{"2 days", 2 * Day},
	{"3 days", 3 * Day},
	{"5 days", 5 * Day},
	{"1 week", 1 * Week},
	{"2 weeks", 2 * Week},
	{"1 month", 1 * Month},
	{"2 months", 2 * Month},
	{"3 months", 3 * Month},
	{"1 year", 1 * Year},
}
