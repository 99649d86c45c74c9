package tracker

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestUnitConversion(t *testing.T) {
	if got := ToMilligrams(0.5, UnitGram); got != 500 {
		t.Fatalf("ToMilligrams(0.5, g) = %v, want 500", got)
	}
	if got := ToMilligrams(500, UnitMilligram); got != 500 {
		t.Fatalf("ToMilligrams(500, mg) = %v, want 500", got)
	}
	if got := FromMilligrams(1000, UnitGram); got != 1 {
		t.Fatalf("FromMilligrams(1000, g) = %v, want 1", got)
	}
}

func TestParseTime_Malformed(t *testing.T) {
	for _, s := range []string{"", "not-a-date", "2024-13-45"} {
		if _, ok := ParseTime(s); ok {
			t.Errorf("ParseTime(%q) ok=true, want false", s)
		}
	}
}

func TestParseTime_DateOnly(t *testing.T) {
	got, ok := ParseTime("2024-03-01")
	if !ok {
		t.Fatal("expected date-only value to parse")
	}
	if got.Year() != 2024 || got.Month() != time.March || got.Day() != 1 {
		t.Fatalf("got %v", got)
	}
}

func TestResetEntry_Duration(t *testing.T) {
	e := ResetEntry{StartedAt: "2024-01-01T00:00:00Z", ResetAt: "2024-01-03T00:00:00Z"}
	d, ok := e.Duration()
	if !ok || d != 48*time.Hour {
		t.Fatalf("got %v ok=%v, want 48h true", d, ok)
	}

	// reset before start is malformed
	e = ResetEntry{StartedAt: "2024-01-03T00:00:00Z", ResetAt: "2024-01-01T00:00:00Z"}
	if _, ok := e.Duration(); ok {
		t.Fatal("expected reversed entry to be invalid")
	}

	// zero-length attempts are kept
	e = ResetEntry{StartedAt: "2024-01-01T00:00:00Z", ResetAt: "2024-01-01T00:00:00Z"}
	d, ok = e.Duration()
	if !ok || d != 0 {
		t.Fatalf("got %v ok=%v, want 0 true", d, ok)
	}
}

func TestReset_AppendsHistory(t *testing.T) {
	started := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	rec := NewColdTurkey("coffee", started)
	rec = Reset(rec, now)

	if len(rec.ResetHistory) != 1 {
		t.Fatalf("history len = %d, want 1", len(rec.ResetHistory))
	}
	if rec.ResetHistory[0].StartedAt != FormatTime(started) {
		t.Fatalf("history start = %s", rec.ResetHistory[0].StartedAt)
	}
	if rec.StartedAt != FormatTime(now) {
		t.Fatalf("started_at = %s, want %s", rec.StartedAt, FormatTime(now))
	}
}

func TestReset_SkipsMalformedStart(t *testing.T) {
	rec := Record{ID: "x", Name: "coffee", Kind: KindColdTurkey, StartedAt: "garbage"}
	rec = Reset(rec, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	if len(rec.ResetHistory) != 0 {
		t.Fatalf("history len = %d, want 0", len(rec.ResetHistory))
	}
	if _, ok := rec.StartTime(); !ok {
		t.Fatal("expected start to be repaired")
	}
}

func TestAppendDoseLog_RejectsInvalidValues(t *testing.T) {
	rec := NewDoseDecrease("nicotine", time.Now(), 4, UnitMilligram)
	for _, v := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		got, err := AppendDoseLog(rec, time.Now(), v, UnitMilligram, "")
		if !errors.Is(err, ErrInvalidDose) {
			t.Errorf("value %v: err = %v, want ErrInvalidDose", v, err)
		}
		if len(got.DoseLogs) != 0 {
			t.Errorf("value %v: log was recorded", v)
		}
	}
}

func TestAppendDoseLog_AssignsIDs(t *testing.T) {
	rec := NewDoseDecrease("nicotine", time.Now(), 4, UnitMilligram)
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	rec, err := AppendDoseLog(rec, at, 2, UnitMilligram, "morning")
	if err != nil {
		t.Fatal(err)
	}
	rec, err = AppendDoseLog(rec, at, 2, UnitMilligram, "")
	if err != nil {
		t.Fatal(err)
	}

	if len(rec.DoseLogs) != 2 {
		t.Fatalf("logs = %d, want 2", len(rec.DoseLogs))
	}
	// same instant, still distinguishable
	if rec.DoseLogs[0].ID == rec.DoseLogs[1].ID {
		t.Fatal("expected distinct log ids")
	}
}

func TestEditAndDeleteDoseLog(t *testing.T) {
	rec := NewDoseDecrease("nicotine", time.Now(), 4, UnitMilligram)
	rec, _ = AppendDoseLog(rec, time.Now(), 2, UnitMilligram, "")
	id := rec.DoseLogs[0].ID

	rec, err := EditDoseLog(rec, id, 3)
	if err != nil {
		t.Fatal(err)
	}
	if rec.DoseLogs[0].Value != 3 {
		t.Fatalf("value = %v, want 3", rec.DoseLogs[0].Value)
	}

	if _, err := EditDoseLog(rec, id, -1); !errors.Is(err, ErrInvalidDose) {
		t.Fatalf("err = %v, want ErrInvalidDose", err)
	}
	if _, err := EditDoseLog(rec, "missing", 1); !errors.Is(err, ErrLogNotFound) {
		t.Fatalf("err = %v, want ErrLogNotFound", err)
	}

	rec, err = DeleteDoseLog(rec, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.DoseLogs) != 0 {
		t.Fatalf("logs = %d, want 0", len(rec.DoseLogs))
	}
	if _, err := DeleteDoseLog(rec, id); !errors.Is(err, ErrLogNotFound) {
		t.Fatalf("err = %v, want ErrLogNotFound", err)
	}
}

func TestMarkNotified_SetSemantics(t *testing.T) {
	rec := NewColdTurkey("coffee", time.Now())
	rec = MarkNotified(rec, []int64{100, 200})
	rec = MarkNotified(rec, []int64{200, 300, 300})

	if len(rec.NotifiedMilestones) != 3 {
		t.Fatalf("notified = %v, want 3 distinct entries", rec.NotifiedMilestones)
	}
	for _, th := range []int64{100, 200, 300} {
		if !rec.HasNotified(th) {
			t.Errorf("HasNotified(%d) = false", th)
		}
	}
	if rec.HasNotified(400) {
		t.Error("HasNotified(400) = true")
	}
}

func TestValidate(t *testing.T) {
	if err := (Record{Name: "", Kind: KindColdTurkey}).Validate(); err == nil {
		t.Error("expected error for empty name")
	}
	if err := (Record{Name: "x", Kind: "weird"}).Validate(); err == nil {
		t.Error("expected error for unknown kind")
	}
	bad := Record{Name: "x", Kind: KindDoseDecrease, CurrentUsageUnit: "oz", CurrentUsageValue: 1}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown unit")
	}
	ok := NewDoseDecrease("x", time.Now(), 1, UnitGram)
	if err := ok.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
