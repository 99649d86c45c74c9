package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lessbyless/lessbyless/internal/logger"
	"github.com/lessbyless/lessbyless/internal/progress"
	"github.com/lessbyless/lessbyless/internal/storage"
	"github.com/lessbyless/lessbyless/pkg/tracker"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var milestoneNotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "lessbyless_milestone_notifications_total",
		Help: "Milestone notifications attempted, by result",
	},
	[]string{"result"},
)

// Scanner periodically sweeps cold-turkey trackers for newly crossed
// milestones and dispatches one notification per crossing. Milestones that
// fail to send are not marked notified, so the next sweep retries them.
type Scanner struct {
	Store    storage.Store
	Notifier Notifier
	Interval time.Duration
}

// Run sweeps on the configured cadence until the context is cancelled.
func (s *Scanner) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	logger.Info("Milestone scanner started", "interval", s.Interval)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Milestone scanner stopped")
			return
		case <-ticker.C:
			if err := s.Scan(time.Now()); err != nil {
				logger.Error("Milestone scan failed", "error", err)
			}
		}
	}
}

// Scan runs a single sweep. Re-running with no new crossings is a no-op: the
// notified set is consulted before sending and updated in the same pass.
func (s *Scanner) Scan(now time.Time) error {
	recs, err := s.Store.ListTrackers()
	if err != nil {
		return fmt.Errorf("listing trackers: %w", err)
	}

	for _, rec := range recs {
		fresh := progress.NewlyAchieved(rec, now)
		if len(fresh) == 0 {
			continue
		}

		var sent []int64
		for _, m := range fresh {
			title := fmt.Sprintf("%s: %s clean", rec.Name, m.Label)
			body := fmt.Sprintf("You have gone %s without %s. Keep going.", m.Label, rec.Name)
			if err := s.Notifier.Notify(title, body); err != nil {
				logger.Warn("Milestone notification failed", "tracker_id", rec.ID, "milestone", m.Label, "error", err)
				milestoneNotificationsTotal.WithLabelValues("error").Inc()
				continue
			}
			logger.Info("Milestone notified", "tracker_id", rec.ID, "milestone", m.Label)
			milestoneNotificationsTotal.WithLabelValues("sent").Inc()
			sent = append(sent, m.Duration.Milliseconds())
		}
		if len(sent) == 0 {
			continue
		}

		// Merge thresholds into the current record atomically; the snapshot
		// may be stale by now (a reset or dose log landed mid-sweep) and must
		// not be written back wholesale.
		_, err := s.Store.UpdateTracker(rec.ID, func(cur tracker.Record) (tracker.Record, error) {
			return tracker.MarkNotified(cur, sent), nil
		})
		if errors.Is(err, storage.ErrNotFound) {
			logger.Info("Tracker deleted during scan", "tracker_id", rec.ID)
			continue
		}
		if err != nil {
			return fmt.Errorf("persisting notified milestones for %s: %w", rec.ID, err)
		}
	}
	return nil
}
