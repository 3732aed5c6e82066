package testfixtures

import (
	"context"
	"sync"

	"github.com/example/cruze-calendar/internal/persistence"
)

// MemorySlotStore is an in-memory persistence.SlotStore for tests. Documents
// can be pre-seeded or inspected after mutations.
type MemorySlotStore struct {
	mu        sync.Mutex
	documents map[string][]byte
	failWrite error
}

// NewMemorySlotStore returns an empty in-memory slot store.
func NewMemorySlotStore() *MemorySlotStore {
	return &MemorySlotStore{documents: make(map[string][]byte)}
}

// Seed stores a document without going through WriteSlot.
func (m *MemorySlotStore) Seed(name string, document []byte) {
	m.mu.Lock()
	m.documents[name] = append([]byte(nil), document...)
	m.mu.Unlock()
}

// FailWrites makes every subsequent WriteSlot return err. A nil err restores
// normal behavior.
func (m *MemorySlotStore) FailWrites(err error) {
	m.mu.Lock()
	m.failWrite = err
	m.mu.Unlock()
}

// Document returns the stored document and whether the slot exists.
func (m *MemorySlotStore) Document(name string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	document, ok := m.documents[name]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), document...), true
}

// ReadSlot implements persistence.SlotStore.
func (m *MemorySlotStore) ReadSlot(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	document, ok := m.documents[name]
	if !ok {
		return nil, persistence.ErrNotFound
	}
	return append([]byte(nil), document...), nil
}

// WriteSlot implements persistence.SlotStore.
func (m *MemorySlotStore) WriteSlot(_ context.Context, name string, document []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return m.failWrite
	}
	m.documents[name] = append([]byte(nil), document...)
	return nil
}
