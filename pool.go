package indexpool

import "iter"

// WordBits is the number of bits per storage word.
const WordBits = 64

// SmallPoolMaxCapacity is the largest capacity backed by a single word.
const SmallPoolMaxCapacity = WordBits

// AbsoluteMaxCapacity is the ceiling for the multi-word store: the number of
// bits representable by the maximum word-array length at 64 bits per word.
const AbsoluteMaxCapacity uint64 = (1<<31 - 1) * WordBits

// Pool hands out unique integer indexes from a fixed range
// [StartIndex, StartIndex+Capacity-1] and reclaims them for reuse, lowest
// free index first.
//
// Pools are not safe for concurrent use; see the package documentation.
type Pool[T Index] interface {
	// Capacity returns the total number of indexes managed by the pool.
	Capacity() int

	// Count returns the number of currently free indexes.
	Count() int

	// AllocatedCount returns Capacity() - Count().
	AllocatedCount() int

	// IsEmpty reports whether no free indexes remain.
	IsEmpty() bool

	// StartIndex returns the first externally visible index value.
	StartIndex() T

	// IsThreadSafe reports whether the pool synchronizes internally.
	// Always false for the bitmask-backed stores.
	IsThreadSafe() bool

	// IsValid reports whether index falls within
	// [StartIndex, StartIndex+Capacity-1].
	IsValid(index T) bool

	// Take allocates and returns the lowest free index, or the sentinel
	// value if the pool is exhausted.
	Take() T

	// TryTake is Take with an explicit success flag instead of a sentinel
	// comparison.
	TryTake() (T, bool)

	// TakeMany allocates up to n indexes, one at a time via the single-take
	// algorithm. The result has length min(n, Capacity()); slots the pool
	// could not fill carry the sentinel value. n <= 0 yields an empty slice.
	TakeMany(n int) []T

	// TakeAll removes every currently free index and returns them in
	// ascending order, leaving the pool fully allocated.
	TakeAll() []T

	// TryTakeAll is TakeAll plus a flag reporting whether anything was
	// returned.
	TryTakeAll() ([]T, bool)

	// Peek returns the lowest free index without mutating the pool, or the
	// sentinel value if the pool is exhausted.
	Peek() T

	// TryPeek is Peek with an explicit success flag.
	TryPeek() (T, bool)

	// Contains reports whether index is valid and currently free. Invalid
	// indexes yield false, never an error.
	Contains(index T) bool

	// IsAllocated reports whether index is valid and not free.
	IsAllocated(index T) bool

	// Return marks index free and reports whether it was within capacity
	// bounds; out-of-range indexes are rejected with no state change.
	// Returning an already-free index is idempotent: no double-free
	// detection is performed.
	Return(index T) bool

	// ReturnAll calls Return for every element and returns the count of
	// successful returns. Rejected indexes are silently skipped.
	ReturnAll(indexes []T) int

	// ToArray returns a snapshot of all currently free indexes in ascending
	// order without mutating the pool.
	ToArray() []T

	// Free iterates the currently free indexes in ascending order. Each
	// range over the sequence reflects the pool's state at that time;
	// mutating the pool mid-iteration is caller responsibility.
	Free() iter.Seq[T]

	// Allocated iterates the currently allocated indexes in ascending
	// order, with the same snapshot-by-iteration semantics as Free.
	Allocated() iter.Seq[T]

	// Reset restores the fully-free state for the pool's fixed capacity.
	Reset()

	// Clear drives the pool to fully-allocated: zero free indexes.
	Clear()
}

// New constructs a pool of the given capacity. Capacity is clamped to
// [1, AbsoluteMaxCapacity]; capacities up to 64 are backed by a single-word
// store, larger ones by a word-array store. The strategy is fixed for the
// pool's lifetime.
//
// New fails only for construction-time problems: an index type outside the
// support table, or a start/capacity combination that does not fit the index
// type (errors.Is against ErrUnsupportedWidth, ErrRangeOverflow,
// ErrNegativeStart).
func New[T Index](capacity int, optFns ...Option[T]) (Pool[T], error) {
	w, err := widthOf[T]()
	if err != nil {
		return nil, err
	}

	o := applyOptions(optFns)

	if capacity < 1 {
		capacity = 1
	}
	if maxCap := AbsoluteMaxCapacity; uint64(capacity) > maxCap {
		capacity = int(maxCap)
	}

	if o.start < T(0) {
		return nil, ErrNegativeStart
	}

	start := uint64(o.start)
	if start > w.maxIndex || uint64(capacity-1) > w.maxIndex-start {
		return nil, &RangeError{Start: start, Capacity: capacity, MaxIndex: w.maxIndex}
	}

	var pool Pool[T]
	strategy := "small"
	if capacity <= SmallPoolMaxCapacity {
		pool = newSmallPool(capacity, o)
	} else {
		pool = newLargePool(capacity, o)
		strategy = "large"
	}

	o.logger.Debug("pool created",
		"strategy", strategy,
		"capacity", capacity,
		"start", start,
		"width_bits", w.bits,
	)

	return pool, nil
}

// takeMany implements Pool.TakeMany on top of the store's single-take
// algorithm.
func takeMany[T Index](p Pool[T], collector MetricsCollector, n int) []T {
	if n <= 0 {
		return []T{}
	}
	if n > p.Capacity() {
		n = p.Capacity()
	}

	out := make([]T, n)
	missed := 0
	for i := range out {
		idx, ok := p.TryTake()
		out[i] = idx
		if !ok {
			missed++
		}
	}

	collector.RecordBatch(n, missed)
	return out
}

// returnAll implements Pool.ReturnAll on top of the store's single-return
// algorithm.
func returnAll[T Index](p Pool[T], collector MetricsCollector, indexes []T) int {
	returned := 0
	for _, idx := range indexes {
		if p.Return(idx) {
			returned++
		}
	}

	collector.RecordBatch(len(indexes), len(indexes)-returned)
	return returned
}
