package server

import (
	"sync"

	"github.com/lessbyless/lessbyless/internal/storage"
	"github.com/lessbyless/lessbyless/pkg/tracker"
)

type memStore struct {
	mu    sync.RWMutex
	order []string
	data  map[string]tracker.Record
}

func newMemStore() *memStore {
	return &memStore{data: map[string]tracker.Record{}}
}

func (m *memStore) PutTracker(rec tracker.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[rec.ID]; !exists {
		m.order = append(m.order, rec.ID)
	}
	m.data[rec.ID] = rec

	return nil
}

func (m *memStore) ListTrackers() ([]tracker.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]tracker.Record, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.data[id])
	}
	return out, nil
}

func (m *memStore) GetTracker(id string) (tracker.Record, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.data[id]
	return rec, ok, nil
}

func (m *memStore) UpdateTracker(id string, fn func(tracker.Record) (tracker.Record, error)) (tracker.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.data[id]
	if !ok {
		return tracker.Record{}, storage.ErrNotFound
	}
	updated, err := fn(rec)
	if err != nil {
		return tracker.Record{}, err
	}
	m.data[id] = updated
	return updated, nil
}

func (m *memStore) DeleteTracker(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memStore) Close() error {
	return nil
}

var _ storage.Store = (*memStore)(nil)
