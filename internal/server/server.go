package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/lessbyless/lessbyless/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	store storage.Store
	now   func() time.Time
}

func New(store storage.Store) *Server {
	return &Server{store: store, now: time.Now}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(metricsMiddleware)

	r.Get("/version", s.getVersionInfo)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/trackers", func(r chi.Router) {
		r.Post("/", s.createTracker)
		r.Get("/", s.listTrackers)
		r.Route("/{tracker_id}", func(r chi.Router) {
			r.Get("/", s.getTracker)
			r.Put("/", s.updateTracker)
			r.Delete("/", s.deleteTracker)
			r.Post("/reset", s.resetTracker)
			r.Get("/progress", s.getProgress)
			r.Get("/streaks", s.getStreaks)
			r.Get("/dosage/today", s.getDosageToday)
			r.Get("/dosage/daily", s.getDosageDaily)
			r.Post("/doses", s.addDoseLog)
			r.Put("/doses/{dose_id}", s.editDoseLog)
			r.Delete("/doses/{dose_id}", s.deleteDoseLog)
		})
	})
	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}
