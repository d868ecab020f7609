package indexpool

import (
	"fmt"
	"iter"
	"math/bits"
)

// smallPool backs capacities of 1 to 64 indexes with a single machine word.
// Bit p (from the low end) represents index start+p; a set bit is a free
// index, a clear bit an allocated one. Bits at positions >= capacity are
// never set.
type smallPool[T Index] struct {
	// free is the live bitmask; popcount(free) == Count().
	free uint64

	// full is the fully-free mask for the configured capacity. All ones for
	// capacity 64, avoiding the undefined shift by the full word width.
	full uint64

	capacity  int
	start     T
	logger    *Logger
	collector MetricsCollector
}

func newSmallPool[T Index](capacity int, o options[T]) *smallPool[T] {
	if capacity < 1 {
		capacity = 1
	}
	if capacity > SmallPoolMaxCapacity {
		capacity = SmallPoolMaxCapacity
	}

	full := maskLow(uint(capacity))
	return &smallPool[T]{
		free:      full,
		full:      full,
		capacity:  capacity,
		start:     o.start,
		logger:    o.logger,
		collector: o.collector,
	}
}

func (p *smallPool[T]) Capacity() int       { return p.capacity }
func (p *smallPool[T]) Count() int          { return bits.OnesCount64(p.free) }
func (p *smallPool[T]) AllocatedCount() int { return p.capacity - p.Count() }
func (p *smallPool[T]) IsEmpty() bool       { return p.free == 0 }
func (p *smallPool[T]) StartIndex() T       { return p.start }
func (p *smallPool[T]) IsThreadSafe() bool  { return false }

// IsValid relies on unsigned wraparound: an index below start underflows to
// a huge value and fails the single capacity comparison.
func (p *smallPool[T]) IsValid(index T) bool {
	return uint64(index)-uint64(p.start) < uint64(p.capacity)
}

func (p *smallPool[T]) Take() T {
	idx, _ := p.TryTake()
	return idx
}

func (p *smallPool[T]) TryTake() (T, bool) {
	if p.free == 0 {
		p.collector.RecordTake(false)
		return Sentinel[T](), false
	}

	pos := bits.TrailingZeros64(p.free)
	p.free &= p.free - 1 // clear lowest set bit
	p.collector.RecordTake(true)
	return p.start + T(pos), true
}

func (p *smallPool[T]) TakeMany(n int) []T {
	return takeMany[T](p, p.collector, n)
}

func (p *smallPool[T]) TakeAll() []T {
	out, _ := p.TryTakeAll()
	return out
}

func (p *smallPool[T]) TryTakeAll() ([]T, bool) {
	out := make([]T, 0, bits.OnesCount64(p.free))
	for word := p.free; word != 0; word &= word - 1 {
		out = append(out, p.start+T(bits.TrailingZeros64(word)))
	}
	p.free = 0

	p.collector.RecordBatch(len(out), 0)
	return out, len(out) > 0
}

func (p *smallPool[T]) Peek() T {
	idx, _ := p.TryPeek()
	return idx
}

func (p *smallPool[T]) TryPeek() (T, bool) {
	if p.free == 0 {
		return Sentinel[T](), false
	}
	return p.start + T(bits.TrailingZeros64(p.free)), true
}

func (p *smallPool[T]) Contains(index T) bool {
	if !p.IsValid(index) {
		return false
	}
	pos := uint64(index) - uint64(p.start)
	return p.free&(uint64(1)<<pos) != 0
}

func (p *smallPool[T]) IsAllocated(index T) bool {
	return p.IsValid(index) && !p.Contains(index)
}

func (p *smallPool[T]) Return(index T) bool {
	pos := uint64(index) - uint64(p.start)
	if pos >= uint64(p.capacity) {
		p.collector.RecordReturn(false)
		return false
	}

	// Setting an already-set bit is a no-op: double free is not detected.
	p.free |= uint64(1) << pos
	p.collector.RecordReturn(true)
	return true
}

func (p *smallPool[T]) ReturnAll(indexes []T) int {
	return returnAll[T](p, p.collector, indexes)
}

func (p *smallPool[T]) ToArray() []T {
	out := make([]T, 0, bits.OnesCount64(p.free))
	for word := p.free; word != 0; word &= word - 1 {
		out = append(out, p.start+T(bits.TrailingZeros64(word)))
	}
	return out
}

func (p *smallPool[T]) Free() iter.Seq[T] {
	return func(yield func(T) bool) {
		for word := p.free; word != 0; word &= word - 1 {
			if !yield(p.start + T(bits.TrailingZeros64(word))) {
				return
			}
		}
	}
}

func (p *smallPool[T]) Allocated() iter.Seq[T] {
	return func(yield func(T) bool) {
		for word := ^p.free & p.full; word != 0; word &= word - 1 {
			if !yield(p.start + T(bits.TrailingZeros64(word))) {
				return
			}
		}
	}
}

func (p *smallPool[T]) Reset() {
	p.free = p.full
	p.logger.Debug("pool reset", "capacity", p.capacity)
}

func (p *smallPool[T]) Clear() {
	p.free = 0
	p.logger.Debug("pool cleared", "capacity", p.capacity)
}

func (p *smallPool[T]) String() string {
	return fmt.Sprintf("indexpool.Pool(strategy=small capacity=%d free=%d start=%v)",
		p.capacity, p.Count(), p.start)
}
