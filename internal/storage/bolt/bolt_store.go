package bolt

import (
	"encoding/json"

	"github.com/lessbyless/lessbyless/internal/storage"
	"github.com/lessbyless/lessbyless/pkg/tracker"
	"go.etcd.io/bbolt"
)

const trackersBucket = "trackers"

type Store struct {
	db *bbolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(trackersBucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) PutTracker(rec tracker.Record) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		val, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return tx.Bucket([]byte(trackersBucket)).Put([]byte(rec.ID), val)
	})
}

func (s *Store) ListTrackers() ([]tracker.Record, error) {
	var out []tracker.Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(trackersBucket)).ForEach(func(_, v []byte) error {
			var rec tracker.Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			out = append(out, normalize(rec))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetTracker(id string) (tracker.Record, bool, error) {
	var rec tracker.Record
	found := false
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(trackersBucket)).Get([]byte(id))
		if v == nil {
			return nil
		}
		if err := json.Unmarshal(v, &rec); err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return tracker.Record{}, false, err
	}
	return normalize(rec), found, nil
}

// UpdateTracker runs the whole read-modify-write inside one bbolt Update
// transaction, so concurrent mutations of the same record serialize.
func (s *Store) UpdateTracker(id string, fn func(tracker.Record) (tracker.Record, error)) (tracker.Record, error) {
	var out tracker.Record
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(trackersBucket))
		v := b.Get([]byte(id))
		if v == nil {
			return storage.ErrNotFound
		}
		var rec tracker.Record
		if err := json.Unmarshal(v, &rec); err != nil {
			return err
		}
		updated, err := fn(normalize(rec))
		if err != nil {
			return err
		}
		val, err := json.Marshal(updated)
		if err != nil {
			return err
		}
		if err := b.Put([]byte(id), val); err != nil {
			return err
		}
		out = updated
		return nil
	})
	if err != nil {
		return tracker.Record{}, err
	}
	return out, nil
}

func (s *Store) DeleteTracker(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(trackersBucket)).Delete([]byte(id))
	})
}

// normalize applies load-time defaults for records written by older clients:
// cold-turkey trackers predating milestone notifications get an empty set.
func normalize(rec tracker.Record) tracker.Record {
	if rec.Kind == tracker.KindColdTurkey && rec.NotifiedMilestones == nil {
		rec.NotifiedMilestones = []int64{}
	}
	return rec
}

var _ storage.Store = (*Store)(nil)
