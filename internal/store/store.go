package store

// Store defines the interface for the concurrent record store.
//
// Store implementations must be safe for concurrent access from multiple
// request-handling goroutines plus the single simulator goroutine, without
// caller-side locking. Each operation is atomic with respect to the others:
// no caller ever observes a partially-applied insert, replace, or delete.
//
// Records are owned exclusively by the Store; callers work on the copies
// returned by the accessors and commit changes back via [Store.Replace].
type Store interface {
	// GetAll returns a snapshot of all current records.
	// The returned slice is a copy; order is not guaranteed.
	GetAll() []Record

	// Get returns the record for the given symbol.
	// The second return value is false if the symbol is absent.
	Get(symbol string) (Record, bool)

	// Insert adds a record only if its symbol is not already present.
	// Returns false (and leaves the store unchanged) on a duplicate
	// symbol; it never overwrites.
	Insert(r Record) bool

	// Replace unconditionally upserts the record under the given symbol.
	// Last writer wins.
	Replace(symbol string, r Record)

	// Delete removes the record for the given symbol.
	// Returns true if a record existed and was removed.
	Delete(symbol string) bool
}
