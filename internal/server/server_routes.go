package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/lessbyless/lessbyless/internal/dosage"
	"github.com/lessbyless/lessbyless/internal/logger"
	"github.com/lessbyless/lessbyless/internal/progress"
	"github.com/lessbyless/lessbyless/internal/storage"
	"github.com/lessbyless/lessbyless/pkg/tracker"
	"github.com/lessbyless/lessbyless/pkg/versioninfo"

	"github.com/go-chi/chi/v5"
)

func (s *Server) getVersionInfo(w http.ResponseWriter, _ *http.Request) {
	info := versioninfo.VersionInfo{
		Version:   versioninfo.Version,
		BuildDate: versioninfo.BuildDate,
	}
	if err := writeJSON(w, http.StatusOK, info); err != nil {
		logger.Error("Failed to serialize version info response", "error", err)
		http.Error(w, `{"error":"failed to serialize version info"}`, http.StatusInternalServerError)
		return
	}
}

type createTrackerRequest struct {
	Name              string       `json:"name"`
	Kind              tracker.Kind `json:"kind"`
	StartedAt         string       `json:"started_at"`
	CurrentUsageValue float64      `json:"current_usage_value"`
	CurrentUsageUnit  tracker.Unit `json:"current_usage_unit"`
}

func (s *Server) createTracker(w http.ResponseWriter, r *http.Request) {
	var req createTrackerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Invalid JSON in create tracker request", "error", err)
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}

	startedAt := s.now()
	if req.StartedAt != "" {
		parsed, ok := tracker.ParseTime(req.StartedAt)
		if !ok {
			http.Error(w, `{"error":"invalid start date"}`, http.StatusBadRequest)
			return
		}
		startedAt = parsed
	}

	var rec tracker.Record
	switch req.Kind {
	case tracker.KindColdTurkey:
		rec = tracker.NewColdTurkey(req.Name, startedAt)
	case tracker.KindDoseDecrease:
		rec = tracker.NewDoseDecrease(req.Name, startedAt, req.CurrentUsageValue, req.CurrentUsageUnit)
	default:
		http.Error(w, fmt.Sprintf(`{"error":"unknown tracker kind %q"}`, req.Kind), http.StatusBadRequest)
		return
	}
	if err := rec.Validate(); err != nil {
		http.Error(w, fmt.Sprintf(`{"error":"%s"}`, err.Error()), http.StatusBadRequest)
		return
	}

	logger.Info("Creating tracker", "tracker_id", rec.ID, "name", rec.Name, "kind", rec.Kind)
	if err := s.store.PutTracker(rec); err != nil {
		logger.Error("Failed to store tracker", "tracker_id", rec.ID, "error", err)
		http.Error(w, `{"error":"database write failed"}`, http.StatusInternalServerError)
		return
	}
	s.updateActiveTrackers()

	if err := writeJSON(w, http.StatusCreated, rec); err != nil {
		logger.Error("Failed to serialize create tracker response", "tracker_id", rec.ID, "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) listTrackers(w http.ResponseWriter, _ *http.Request) {
	recs, err := s.store.ListTrackers()
	if err != nil {
		logger.Error("Failed to list trackers", "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []tracker.Record{}
	}
	logger.Debug("Listed trackers", "count", len(recs))
	if err := writeJSON(w, http.StatusOK, TrackerListResponse{Trackers: recs}); err != nil {
		logger.Error("Failed to serialize tracker list response", "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

// loadTracker resolves the tracker_id URL parameter; it writes the error
// response and returns false when the record cannot be served.
func (s *Server) loadTracker(w http.ResponseWriter, r *http.Request) (tracker.Record, bool) {
	id := chi.URLParam(r, "tracker_id")
	if id == "" {
		http.Error(w, `{"error":"tracker id is required"}`, http.StatusBadRequest)
		return tracker.Record{}, false
	}
	rec, found, err := s.store.GetTracker(id)
	if err != nil {
		logger.Error("Failed to load tracker", "tracker_id", id, "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return tracker.Record{}, false
	}
	if !found {
		http.Error(w, `{"error":"tracker not found"}`, http.StatusNotFound)
		return tracker.Record{}, false
	}
	return rec, true
}

func requireKind(w http.ResponseWriter, rec tracker.Record, kind tracker.Kind) bool {
	if rec.Kind != kind {
		http.Error(w, fmt.Sprintf(`{"error":"tracker is not a %s tracker"}`, kind), http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) getTracker(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadTracker(w, r)
	if !ok {
		return
	}
	if err := writeJSON(w, http.StatusOK, rec); err != nil {
		logger.Error("Failed to serialize tracker response", "tracker_id", rec.ID, "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

type updateTrackerRequest struct {
	Name      string `json:"name"`
	StartedAt string `json:"started_at"`
}

func (s *Server) updateTracker(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadTracker(w, r)
	if !ok {
		return
	}
	var req updateTrackerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}
	var startedAt string
	if req.StartedAt != "" {
		parsed, parsedOK := tracker.ParseTime(req.StartedAt)
		if !parsedOK {
			http.Error(w, `{"error":"invalid start date"}`, http.StatusBadRequest)
			return
		}
		startedAt = tracker.FormatTime(parsed)
	}

	logger.Info("Updating tracker", "tracker_id", rec.ID)
	updated, err := s.store.UpdateTracker(rec.ID, func(cur tracker.Record) (tracker.Record, error) {
		if req.Name != "" {
			cur.Name = req.Name
		}
		if startedAt != "" {
			cur.StartedAt = startedAt
		}
		return cur, cur.Validate()
	})
	if err != nil {
		s.writeUpdateError(w, rec.ID, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, updated); err != nil {
		logger.Error("Failed to serialize tracker response", "tracker_id", rec.ID, "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

// writeUpdateError maps an UpdateTracker failure to the response the caller
// would have received without the race: user errors stay 4xx, the rest is a
// storage failure.
func (s *Server) writeUpdateError(w http.ResponseWriter, id string, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, `{"error":"tracker not found"}`, http.StatusNotFound)
	case errors.Is(err, tracker.ErrLogNotFound):
		http.Error(w, `{"error":"dose log not found"}`, http.StatusNotFound)
	case errors.Is(err, tracker.ErrInvalidDose):
		logger.Warn("Rejected tracker update", "tracker_id", id, "error", err)
		http.Error(w, fmt.Sprintf(`{"error":"%s"}`, err.Error()), http.StatusBadRequest)
	default:
		logger.Error("Failed to update tracker", "tracker_id", id, "error", err)
		http.Error(w, `{"error":"database write failed"}`, http.StatusInternalServerError)
	}
}

func (s *Server) deleteTracker(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadTracker(w, r)
	if !ok {
		return
	}
	logger.Info("Deleting tracker", "tracker_id", rec.ID)
	if err := s.store.DeleteTracker(rec.ID); err != nil {
		logger.Error("Failed to delete tracker", "tracker_id", rec.ID, "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}
	s.updateActiveTrackers()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) resetTracker(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadTracker(w, r)
	if !ok || !requireKind(w, rec, tracker.KindColdTurkey) {
		return
	}

	now := s.now()
	updated, err := s.store.UpdateTracker(rec.ID, func(cur tracker.Record) (tracker.Record, error) {
		return tracker.Reset(cur, now), nil
	})
	if err != nil {
		s.writeUpdateError(w, rec.ID, err)
		return
	}
	logger.Info("Reset tracker", "tracker_id", updated.ID, "attempts", len(updated.ResetHistory))
	if err := writeJSON(w, http.StatusOK, updated); err != nil {
		logger.Error("Failed to serialize reset response", "tracker_id", rec.ID, "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) getProgress(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadTracker(w, r)
	if !ok || !requireKind(w, rec, tracker.KindColdTurkey) {
		return
	}

	now := s.now()
	res, ok := progress.EvaluateRecord(rec, now)
	if !ok {
		http.Error(w, `{"error":"tracker start date is invalid"}`, http.StatusBadRequest)
		return
	}
	days, _ := progress.DaysTracked(rec.StartedAt, now)

	resp := ProgressResponse{
		TrackerID:          rec.ID,
		ElapsedMs:          res.Elapsed.Milliseconds(),
		Label:              progress.FormatLabel(res.Elapsed, 2),
		Breakdown:          progress.DecomposePadded(res.Elapsed, 3),
		Achieved:           res.Achieved,
		Next:               res.Next,
		ProgressToNext:     res.ProgressToNext,
		PreviousDurationMs: res.PreviousDuration.Milliseconds(),
		DaysTracked:        days,
	}
	if resp.Achieved == nil {
		resp.Achieved = []progress.Milestone{}
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize progress response", "tracker_id", rec.ID, "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) getStreaks(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadTracker(w, r)
	if !ok || !requireKind(w, rec, tracker.KindColdTurkey) {
		return
	}

	targets := progress.SelectStreakTargets(rec.ResetHistory)

	// A malformed start still serves the historical targets; the current
	// streak just compares as zero.
	var elapsed int64
	if res, evalOK := progress.EvaluateRecord(rec, s.now()); evalOK {
		elapsed = res.Elapsed.Milliseconds()
	}
	cmp := progress.CompareStreaks(msToDuration(elapsed), targets)

	resp := StreaksResponse{
		TrackerID:     rec.ID,
		ElapsedMs:     elapsed,
		Last:          streakTarget(targets.Last),
		Record:        streakTarget(targets.Record),
		HasGoneLonger: cmp.HasGoneLonger,
		HasHitRecord:  cmp.HasHitRecord,
		UntilLast:     progress.FormatTimeLeft(cmp.UntilLast),
		UntilRecord:   progress.FormatTimeLeft(cmp.UntilRecord),
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize streaks response", "tracker_id", rec.ID, "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) getDosageToday(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadTracker(w, r)
	if !ok || !requireKind(w, rec, tracker.KindDoseDecrease) {
		return
	}

	now := s.now()
	total := dosage.TodaysTotal(rec, now)
	resp := DosageTodayResponse{
		TrackerID: rec.ID,
		Value:     total.Value,
		Unit:      string(total.Unit),
	}
	if age, logged := dosage.LastLogged(rec, now); logged {
		resp.LastLogged = dosage.FormatRelative(age)
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize dosage response", "tracker_id", rec.ID, "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) getDosageDaily(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadTracker(w, r)
	if !ok || !requireKind(w, rec, tracker.KindDoseDecrease) {
		return
	}

	week := 0
	if raw := r.URL.Query().Get("week"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, `{"error":"week must be an integer"}`, http.StatusBadRequest)
			return
		}
		week = parsed
	}

	series := dosage.DailyTotals(rec, s.now())
	maxWeek := dosage.MaxWeekIndex(series)
	if week < 0 {
		week = 0
	}
	if week > maxWeek {
		week = maxWeek
	}

	days := dosage.WeekSlice(series, week)
	if days == nil {
		days = []dosage.DayTotal{}
	}
	resp := DosageDailyResponse{
		TrackerID: rec.ID,
		Week:      week,
		MaxWeek:   maxWeek,
		Days:      days,
		Unit:      string(rec.CurrentUsageUnit),
		TotalDays: len(series),
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize dosage series response", "tracker_id", rec.ID, "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

type doseLogRequest struct {
	At    string       `json:"at"`
	Value float64      `json:"value"`
	Unit  tracker.Unit `json:"unit"`
	Note  string       `json:"note"`
}

func (s *Server) addDoseLog(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadTracker(w, r)
	if !ok || !requireKind(w, rec, tracker.KindDoseDecrease) {
		return
	}

	var req doseLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}

	at := s.now()
	if req.At != "" {
		parsed, parsedOK := tracker.ParseTime(req.At)
		if !parsedOK {
			http.Error(w, `{"error":"invalid log timestamp"}`, http.StatusBadRequest)
			return
		}
		at = parsed
	}
	if req.Unit == "" {
		req.Unit = rec.CurrentUsageUnit
	}
	if !req.Unit.Valid() {
		http.Error(w, fmt.Sprintf(`{"error":"unknown dosage unit %q"}`, req.Unit), http.StatusBadRequest)
		return
	}

	updated, err := s.store.UpdateTracker(rec.ID, func(cur tracker.Record) (tracker.Record, error) {
		return tracker.AppendDoseLog(cur, at, req.Value, req.Unit, req.Note)
	})
	if err != nil {
		s.writeUpdateError(w, rec.ID, err)
		return
	}

	created := updated.DoseLogs[len(updated.DoseLogs)-1]
	logger.Info("Dose logged", "tracker_id", rec.ID, "dose_id", created.ID, "value", created.Value, "unit", created.Unit)
	if err := writeJSON(w, http.StatusCreated, created); err != nil {
		logger.Error("Failed to serialize dose log response", "tracker_id", rec.ID, "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) editDoseLog(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadTracker(w, r)
	if !ok || !requireKind(w, rec, tracker.KindDoseDecrease) {
		return
	}
	doseID := chi.URLParam(r, "dose_id")

	var req doseLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}

	updated, err := s.store.UpdateTracker(rec.ID, func(cur tracker.Record) (tracker.Record, error) {
		return tracker.EditDoseLog(cur, doseID, req.Value)
	})
	if err != nil {
		s.writeUpdateError(w, rec.ID, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, updated); err != nil {
		logger.Error("Failed to serialize dose edit response", "tracker_id", rec.ID, "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) deleteDoseLog(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadTracker(w, r)
	if !ok || !requireKind(w, rec, tracker.KindDoseDecrease) {
		return
	}
	doseID := chi.URLParam(r, "dose_id")

	if _, err := s.store.UpdateTracker(rec.ID, func(cur tracker.Record) (tracker.Record, error) {
		return tracker.DeleteDoseLog(cur, doseID)
	}); err != nil {
		s.writeUpdateError(w, rec.ID, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func msToDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func (s *Server) updateActiveTrackers() {
	recs, err := s.store.ListTrackers()
	if err != nil {
		logger.Warn("Failed to update active trackers metric", "error", err)
		return
	}
	activeTrackers.Set(float64(len(recs)))
}
