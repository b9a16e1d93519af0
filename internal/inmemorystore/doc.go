// Package inmemorystore provides an ephemeral, thread-safe, in-memory
// implementation of the registry.Store interface.
//
// # Characteristics
//
//   - **Ephemeral:** Created empty by its owner and discarded with it
//   - **Thread-Safe:** A single sync.RWMutex serializes every read and write
//   - **Last Write Wins:** Put on an existing key replaces the stored plaintext
//
// # Concurrency Model
//
// Unlike a sync.Map, the RWMutex gives Keys and Len a consistent view of the
// whole map, and every Put is totally ordered with respect to other Puts.
// Lookups take the read lock so concurrent decodes do not block each other.
package inmemorystore
