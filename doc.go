// Package indexpool provides fixed-capacity numeric index allocators backed
// by bitmasks.
//
// An index pool hands out unique integer indexes on demand and reclaims them
// for reuse, always allocating the lowest free index first. It is meant to
// back resource-handle tables, slot allocators and similar fixed-capacity
// recycling schemes.
//
// # Quick Start
//
//	pool, _ := indexpool.New[uint32](128)
//
//	id := pool.Take()          // 0
//	id = pool.Take()           // 1
//	pool.Return(0)             // 0 is free again
//	id = pool.Take()           // 0 (lowest free first)
//
// Exhaustion is reported through the sentinel value instead of an error:
//
//	if id := pool.Take(); id == indexpool.Sentinel[uint32]() {
//	    // pool is empty
//	}
//	if id, ok := pool.TryTake(); ok {
//	    // got a real index
//	}
//
// # Storage Strategies
//
// Two storage strategies implement one contract; New selects between them by
// capacity:
//
//   - capacity <= 64: a single machine word, every operation a single-word
//     bit trick
//   - capacity > 64: an array of machine words with a remainder mask on the
//     final word
//
// Callers depend only on the Pool interface, never on the backing strategy.
//
// # Allocation Policy
//
// Take returns the numerically lowest free index. Take runs in time
// proportional to the number of storage words scanned before the first
// non-empty word, not in the capacity.
//
// # Concurrency
//
// Pools are NOT safe for concurrent use. There is no internal
// synchronization; wrap a pool with external locking if it must be shared
// across goroutines.
package indexpool
