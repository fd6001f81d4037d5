package state

import (
	"sync"

	"github.com/malonaz/chatd/store"
)

// memStore is an in-memory ObjectStore with failure injection, so provider
// rollback paths can be exercised without a real database.
type memStore struct {
	mu         sync.Mutex
	tables     map[string]map[string][]byte
	failWrites bool
}

func newMemStore() *memStore {
	return &memStore{tables: map[string]map[string][]byte{}}
}

func (m *memStore) Write(table, id string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return store.ErrUnavailable
	}
	if m.tables[table] == nil {
		m.tables[table] = map[string][]byte{}
	}
	copied := make([]byte, len(payload))
	copy(copied, payload)
	m.tables[table][id] = copied
	return nil
}

func (m *memStore) ReadAll(table string) ([]store.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var records []store.Record
	for id, payload := range m.tables[table] {
		records = append(records, store.Record{ID: id, Payload: payload})
	}
	return records, nil
}

func (m *memStore) ReadOne(table, id string) (store.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, ok := m.tables[table][id]
	if !ok {
		return store.Record{}, store.ErrNotFound
	}
	return store.Record{ID: id, Payload: payload}, nil
}

func (m *memStore) Delete(table, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return store.ErrUnavailable
	}
	delete(m.tables[table], id)
	return nil
}

func (m *memStore) setFailWrites(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrites = fail
}

var _ store.ObjectStore = (*memStore)(nil)

// countingNotifier records every notification it receives.
type countingNotifier struct {
	mu     sync.Mutex
	titles []string
}

func (n *countingNotifier) Error(title string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.titles = append(n.titles, title)
}

func (n *countingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.titles)
}
