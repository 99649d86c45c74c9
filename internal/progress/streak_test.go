package progress

import (
	"testing"
	"time"

	"github.com/lessbyless/lessbyless/pkg/tracker"
)

func entry(start, reset time.Time) tracker.ResetEntry {
	return tracker.ResetEntry{
		StartedAt: tracker.FormatTime(start),
		ResetAt:   tracker.FormatTime(reset),
	}
}

func TestSelectStreakTargets_Empty(t *testing.T) {
	got := SelectStreakTargets(nil)
	if got.Last != nil || got.Record != nil {
		t.Fatalf("got %+v, want empty targets", got)
	}
}

func TestSelectStreakTargets_LastAndRecord(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	history := []tracker.ResetEntry{
		entry(base, base.Add(10*Day)),               // record
		entry(base.Add(20*Day), base.Add(23*Day)),   // 3 days
		entry(base.Add(30*Day), base.Add(31*Day)),   // most recent, 1 day
	}

	got := SelectStreakTargets(history)
	if got.Last == nil || got.Last.Duration != Day {
		t.Fatalf("last = %+v, want 1 day", got.Last)
	}
	if got.Record == nil || got.Record.Duration != 10*Day {
		t.Fatalf("record = %+v, want 10 days", got.Record)
	}
}

// Durations [5,10,10,3] in ascending reset order: record must be the first 10.
func TestSelectStreakTargets_TieBreak(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	firstTen := entry(base.Add(10*Day), base.Add(20*Day))
	history := []tracker.ResetEntry{
		entry(base, base.Add(5*Day)),
		firstTen,
		entry(base.Add(21*Day), base.Add(31*Day)),
		entry(base.Add(32*Day), base.Add(35*Day)),
	}

	got := SelectStreakTargets(history)
	if got.Record == nil || got.Record.Duration != 10*Day {
		t.Fatalf("record = %+v, want 10 days", got.Record)
	}
	if got.Record.ResetAt != firstTen.ResetAt {
		t.Fatalf("record reset = %s, want the first 10-day attempt (%s)",
			got.Record.ResetAt, firstTen.ResetAt)
	}
}

func TestSelectStreakTargets_UnorderedInput(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newest := entry(base.Add(30*Day), base.Add(31*Day))
	history := []tracker.ResetEntry{
		newest,
		entry(base, base.Add(10*Day)),
	}
	got := SelectStreakTargets(history)
	if got.Last == nil || got.Last.ResetAt != newest.ResetAt {
		t.Fatalf("last = %+v, want newest entry", got.Last)
	}
}

func TestSelectStreakTargets_DropsMalformed(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	history := []tracker.ResetEntry{
		{StartedAt: "garbage", ResetAt: tracker.FormatTime(base)},
		entry(base.Add(50*Day), base.Add(40*Day)), // reset before start
		entry(base, base.Add(2*Day)),
	}
	got := SelectStreakTargets(history)
	if got.Last == nil || got.Last.Duration != 2*Day {
		t.Fatalf("last = %+v, want the single valid 2-day entry", got.Last)
	}
	if got.Record == nil || got.Record.Duration != 2*Day {
		t.Fatalf("record = %+v, want the single valid 2-day entry", got.Record)
	}
}

func TestSelectStreakTargets_KeepsZeroDuration(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got := SelectStreakTargets([]tracker.ResetEntry{entry(base, base)})
	if got.Last == nil || got.Last.Duration != 0 {
		t.Fatalf("last = %+v, want zero-duration entry kept", got.Last)
	}
}

func TestCompareStreaks_InclusiveThresholds(t *testing.T) {
	targets := Targets{
		Last:   &Target{Duration: 2 * Day},
		Record: &Target{Duration: 5 * Day},
	}

	c := CompareStreaks(2*Day, targets) // exactly the last streak
	if !c.HasGoneLonger {
		t.Fatal("elapsed == last should count as gone longer")
	}
	if c.HasHitRecord {
		t.Fatal("record not yet hit")
	}
	if c.UntilRecord != 3*Day {
		t.Fatalf("until record = %v, want 3 days", c.UntilRecord)
	}

	c = CompareStreaks(5*Day, targets)
	if !c.HasHitRecord {
		t.Fatal("elapsed == record should count as record hit")
	}

	c = CompareStreaks(Day, targets)
	if c.HasGoneLonger || c.UntilLast != Day {
		t.Fatalf("got %+v, want one day left to beat last", c)
	}
}

func TestCompareStreaks_NoTargets(t *testing.T) {
	c := CompareStreaks(time.Hour, Targets{})
	if !c.HasGoneLonger || !c.HasHitRecord {
		t.Fatalf("got %+v, want trivially beaten", c)
	}
}

func TestFormatTimeLeft(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "now"},
		{-time.Minute, "now"},
		{30 * time.Second, "1m"},
		{59 * time.Minute, "59m"},
		{90 * time.Minute, "1h 30m"},
		{3 * time.Hour, "3h"},
		{26 * time.Hour, "1d 2h"},
		{3 * Day, "3d"},
		{45 * Day, "45d"},
	}
	for _, c := range cases {
		if got := FormatTimeLeft(c.d); got != c.want {
			t.Errorf("FormatTimeLeft(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}
