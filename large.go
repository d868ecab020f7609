package indexpool

import (
	"fmt"
	"iter"
	"math/bits"
)

// largePool backs capacities above 64 indexes with an array of machine
// words. Bit p of word i represents index start + i*64 + p; a set bit is a
// free index. Bits beyond capacity in the final word are masked off at
// construction and Reset and are never set by any operation, so scans rely
// on that invariant instead of re-masking on every call.
type largePool[T Index] struct {
	words []uint64

	// tailMask is the remainder mask for the final word: the valid bit range
	// is capacity mod 64 bits, or the full word for an exact multiple.
	tailMask uint64

	capacity  int
	start     T
	logger    *Logger
	collector MetricsCollector
}

func newLargePool[T Index](capacity int, o options[T]) *largePool[T] {
	if capacity < 1 {
		capacity = 1
	}
	if maxCap := AbsoluteMaxCapacity; uint64(capacity) > maxCap {
		capacity = int(maxCap)
	}

	rem := uint(capacity % WordBits)
	if rem == 0 {
		rem = WordBits
	}

	p := &largePool[T]{
		words:     make([]uint64, (capacity-1)/WordBits+1),
		tailMask:  maskLow(rem),
		capacity:  capacity,
		start:     o.start,
		logger:    o.logger,
		collector: o.collector,
	}
	p.markAllFree()
	return p
}

// markAllFree sets every valid bit: all words fully set, final word capped
// by the remainder mask.
func (p *largePool[T]) markAllFree() {
	for i := range p.words {
		p.words[i] = ^uint64(0)
	}
	p.words[len(p.words)-1] = p.tailMask
}

func (p *largePool[T]) Capacity() int { return p.capacity }

// Count recomputes the popcount sum on each call. Word counts are bounded by
// AbsoluteMaxCapacity/64, so this stays cheap enough to avoid a cached
// counter that every mutation would have to maintain.
func (p *largePool[T]) Count() int {
	count := 0
	for _, word := range p.words {
		count += bits.OnesCount64(word)
	}
	return count
}

func (p *largePool[T]) AllocatedCount() int { return p.capacity - p.Count() }

func (p *largePool[T]) IsEmpty() bool {
	for _, word := range p.words {
		if word != 0 {
			return false
		}
	}
	return true
}

func (p *largePool[T]) StartIndex() T      { return p.start }
func (p *largePool[T]) IsThreadSafe() bool { return false }

// IsValid relies on unsigned wraparound: an index below start underflows to
// a huge value and fails the single capacity comparison.
func (p *largePool[T]) IsValid(index T) bool {
	return uint64(index)-uint64(p.start) < uint64(p.capacity)
}

func (p *largePool[T]) Take() T {
	idx, _ := p.TryTake()
	return idx
}

func (p *largePool[T]) TryTake() (T, bool) {
	for i, word := range p.words {
		if word == 0 {
			continue
		}

		pos := bits.TrailingZeros64(word)
		p.words[i] = word & (word - 1) // clear lowest set bit
		p.collector.RecordTake(true)
		return p.start + T(i*WordBits+pos), true
	}

	p.collector.RecordTake(false)
	return Sentinel[T](), false
}

func (p *largePool[T]) TakeMany(n int) []T {
	return takeMany[T](p, p.collector, n)
}

func (p *largePool[T]) TakeAll() []T {
	out, _ := p.TryTakeAll()
	return out
}

func (p *largePool[T]) TryTakeAll() ([]T, bool) {
	out := make([]T, 0, p.Count())
	for i, word := range p.words {
		base := i * WordBits
		for ; word != 0; word &= word - 1 {
			out = append(out, p.start+T(base+bits.TrailingZeros64(word)))
		}
		p.words[i] = 0
	}

	p.collector.RecordBatch(len(out), 0)
	return out, len(out) > 0
}

func (p *largePool[T]) Peek() T {
	idx, _ := p.TryPeek()
	return idx
}

func (p *largePool[T]) TryPeek() (T, bool) {
	for i, word := range p.words {
		if word != 0 {
			return p.start + T(i*WordBits+bits.TrailingZeros64(word)), true
		}
	}
	return Sentinel[T](), false
}

func (p *largePool[T]) Contains(index T) bool {
	if !p.IsValid(index) {
		return false
	}
	pos := uint64(index) - uint64(p.start)
	return p.words[pos/WordBits]&(uint64(1)<<(pos%WordBits)) != 0
}

func (p *largePool[T]) IsAllocated(index T) bool {
	return p.IsValid(index) && !p.Contains(index)
}

func (p *largePool[T]) Return(index T) bool {
	pos := uint64(index) - uint64(p.start)
	if pos >= uint64(p.capacity) {
		p.collector.RecordReturn(false)
		return false
	}

	// Setting an already-set bit is a no-op: double free is not detected.
	p.words[pos/WordBits] |= uint64(1) << (pos % WordBits)
	p.collector.RecordReturn(true)
	return true
}

func (p *largePool[T]) ReturnAll(indexes []T) int {
	return returnAll[T](p, p.collector, indexes)
}

func (p *largePool[T]) ToArray() []T {
	out := make([]T, 0, p.Count())
	for i, word := range p.words {
		base := i * WordBits
		for ; word != 0; word &= word - 1 {
			out = append(out, p.start+T(base+bits.TrailingZeros64(word)))
		}
	}
	return out
}

func (p *largePool[T]) Free() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i, word := range p.words {
			base := i * WordBits
			for ; word != 0; word &= word - 1 {
				if !yield(p.start + T(base+bits.TrailingZeros64(word))) {
					return
				}
			}
		}
	}
}

func (p *largePool[T]) Allocated() iter.Seq[T] {
	return func(yield func(T) bool) {
		last := len(p.words) - 1
		for i, word := range p.words {
			inv := ^word
			if i == last {
				inv &= p.tailMask
			}

			base := i * WordBits
			for ; inv != 0; inv &= inv - 1 {
				if !yield(p.start + T(base+bits.TrailingZeros64(inv))) {
					return
				}
			}
		}
	}
}

func (p *largePool[T]) Reset() {
	p.markAllFree()
	p.logger.Debug("pool reset", "capacity", p.capacity)
}

func (p *largePool[T]) Clear() {
	for i := range p.words {
		p.words[i] = 0
	}
	p.logger.Debug("pool cleared", "capacity", p.capacity)
}

func (p *largePool[T]) String() string {
	return fmt.Sprintf("indexpool.Pool(strategy=large capacity=%d free=%d start=%v)",
		p.capacity, p.Count(), p.start)
}
