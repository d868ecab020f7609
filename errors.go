package indexpool

import (
	"errors"
	"fmt"
)

// Construction is the only place this package reports errors. Every runtime
// condition (exhaustion, out-of-range index, index not free) is communicated
// through sentinel index values and boolean results instead; see Pool.

var (
	// ErrUnsupportedWidth is returned when the index type's bit width is not
	// in the support table.
	ErrUnsupportedWidth = errors.New("unsupported index width")

	// ErrRangeOverflow is returned when the requested start index and
	// capacity do not fit the index type with the sentinel pattern reserved.
	ErrRangeOverflow = errors.New("index range overflow")

	// ErrNegativeStart is returned when a signed index type is combined with
	// a negative start index.
	ErrNegativeStart = errors.New("negative start index")
)

// UnsupportedWidthError reports an index type whose bit width has no support
// table entry.
//
// errors.Is(err, ErrUnsupportedWidth) matches it.
type UnsupportedWidthError struct {
	Bits uint
}

func (e *UnsupportedWidthError) Error() string {
	return fmt.Sprintf("unsupported index width: %d bits", e.Bits)
}

func (e *UnsupportedWidthError) Unwrap() error { return ErrUnsupportedWidth }

// RangeError reports a start/capacity combination whose highest index value
// exceeds what the index type can represent.
//
// errors.Is(err, ErrRangeOverflow) matches it.
type RangeError struct {
	Start    uint64
	Capacity int
	MaxIndex uint64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("index range overflow: start %d + capacity %d exceeds max usable index %d",
		e.Start, e.Capacity, e.MaxIndex)
}

func (e *RangeError) Unwrap() error { return ErrRangeOverflow }
