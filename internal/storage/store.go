package storage

import (
	"errors"

	"github.com/lessbyless/lessbyless/pkg/tracker"
)

// ErrNotFound is returned by UpdateTracker when no record has the given id.
var ErrNotFound = errors.New("tracker not found")

type Store interface {
	ListTrackers() ([]tracker.Record, error)
	GetTracker(id string) (tracker.Record, bool, error)
	PutTracker(rec tracker.Record) error
	// UpdateTracker applies fn to the current record and persists the result
	// as one atomic read-modify-write. Concurrent updates of the same record
	// serialize instead of overwriting each other. An error from fn aborts
	// the update and is returned verbatim.
	UpdateTracker(id string, fn func(tracker.Record) (tracker.Record, error)) (tracker.Record, error)
	DeleteTracker(id string) error
	Close() error
}
