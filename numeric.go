package indexpool

import "unsafe"

// Index is the set of integer types that can serve as pool index values:
// fixed-width signed and unsigned integers plus the platform-width int,
// uint and uintptr. The constraint is the compile-time half of the width
// support check; the table below is resolved once per pool construction.
type Index interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr
}

// widthInfo is one entry of the type-width support table.
type widthInfo struct {
	bits   uint
	signed bool

	// maxIndex is the highest usable index value for the type. For unsigned
	// types the all-ones pattern is reserved as the sentinel, so the top
	// value is excluded; for signed types the sentinel is -1 and maxIndex is
	// the type's maximum.
	maxIndex uint64
}

// widthOf resolves the support table entry for T. No reflection: width and
// signedness come from the type itself.
func widthOf[T Index]() (widthInfo, error) {
	var zero T
	w := widthInfo{
		bits:   uint(unsafe.Sizeof(zero)) * 8,
		signed: zero-1 < 0,
	}

	switch w.bits {
	case 8, 16, 32, 64:
	default:
		// Unreachable for the types admitted by the Index constraint, but
		// the table stays the single authority on supported widths.
		return widthInfo{}, &UnsupportedWidthError{Bits: w.bits}
	}

	if w.signed {
		w.maxIndex = 1<<(w.bits-1) - 1
	} else {
		w.maxIndex = maskLow(w.bits) - 1
	}

	return w, nil
}

// Sentinel returns the "no index available" value for T: the all-bits-set
// pattern (-1 for signed types, the maximum value for unsigned types). It is
// never a valid allocatable index.
func Sentinel[T Index]() T {
	return ^T(0)
}

// maskLow returns a word with the low n bits set. n must be in [1, 64];
// n == 64 is handled explicitly because a shift by the full word width is
// not defined.
func maskLow(n uint) uint64 {
	if n >= WordBits {
		return ^uint64(0)
	}
	return 1<<n - 1
}
