package store

import (
	"sync"
)

// MemoryStore is an in-memory implementation of [Store].
//
// MemoryStore provides thread-safe storage keyed by ticker symbol. A single
// RWMutex guards the map; reads take the shared lock so concurrent GETs do
// not serialize behind each other. Records are stored and returned by value,
// so no caller ever holds a reference into the map.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates a new in-memory [Store] implementation.
//
// The store is immediately ready for use. No cleanup is required when done.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
	}
}

// GetAll returns a snapshot of all currently stored records.
//
// The returned slice is a copy; modifications do not affect the store.
// Order is not guaranteed.
func (m *MemoryStore) GetAll() []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]Record, 0, len(m.records))
	for _, r := range m.records {
		records = append(records, r)
	}
	return records
}

// Get returns the record stored under symbol, if any.
func (m *MemoryStore) Get(symbol string) (Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.records[symbol]
	return r, ok
}

// Insert stores a record only if its symbol is not already present.
//
// Returns false and leaves the existing record untouched if the symbol
// is taken. The presence check and the write happen under one lock
// acquisition, so concurrent inserts of the same symbol admit exactly one.
func (m *MemoryStore) Insert(r Record) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[r.Symbol]; exists {
		return false
	}
	m.records[r.Symbol] = r
	return true
}

// Replace unconditionally upserts the record under symbol.
//
// Subsequent reads observe the new value. Last writer wins; both CRUD
// updates and the simulator commit through this path.
func (m *MemoryStore) Replace(symbol string, r Record) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[symbol] = r
}

// Delete removes the record for symbol.
//
// Returns true if a record existed. Deleting an absent symbol is a no-op
// returning false; the store is unchanged either way.
func (m *MemoryStore) Delete(symbol string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[symbol]; !exists {
		return false
	}
	delete(m.records, symbol)
	return true
}

// Len returns the number of stored records.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
