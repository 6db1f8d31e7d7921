// Package store provides the concurrent in-memory record store.
//
// This package is internal to tickerfeed and manages the mutable dataset of
// priced records. It is the leaf of the system: both the HTTP handlers and
// the price simulator mutate records exclusively through its atomic
// accessors.
//
// The main components are:
//
//   - [Record]: Storage representation of a priced instrument, always
//     normalized (trimmed name, price >= 0 with two decimal places)
//   - [Store]: Interface defining the atomic storage operations
//   - [MemoryStore]: RWMutex-guarded in-memory implementation of Store
//
// Normalization happens at the record-construction boundary ([NewRecord],
// [Record.WithPrice]), never inside the store itself.
//
// Users of the tickerfeed library should not need to interact with this
// package directly.
package store
