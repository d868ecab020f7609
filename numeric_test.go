package indexpool

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidthOf_Unsigned(t *testing.T) {
	w, err := widthOf[uint8]()
	require.NoError(t, err)
	assert.Equal(t, uint(8), w.bits)
	assert.False(t, w.signed)
	assert.Equal(t, uint64(254), w.maxIndex) // 255 is the sentinel

	w, err = widthOf[uint16]()
	require.NoError(t, err)
	assert.Equal(t, uint(16), w.bits)
	assert.Equal(t, uint64(65534), w.maxIndex)

	w, err = widthOf[uint32]()
	require.NoError(t, err)
	assert.Equal(t, uint(32), w.bits)
	assert.Equal(t, uint64(1<<32-2), w.maxIndex)

	w, err = widthOf[uint64]()
	require.NoError(t, err)
	assert.Equal(t, uint(64), w.bits)
	assert.Equal(t, ^uint64(0)-1, w.maxIndex)
}

func TestWidthOf_Signed(t *testing.T) {
	w, err := widthOf[int8]()
	require.NoError(t, err)
	assert.Equal(t, uint(8), w.bits)
	assert.True(t, w.signed)
	assert.Equal(t, uint64(127), w.maxIndex)

	w, err = widthOf[int16]()
	require.NoError(t, err)
	assert.Equal(t, uint64(32767), w.maxIndex)

	w, err = widthOf[int32]()
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<31-1), w.maxIndex)

	w, err = widthOf[int64]()
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<63-1), w.maxIndex)
}

func TestWidthOf_PlatformWidths(t *testing.T) {
	w, err := widthOf[int]()
	require.NoError(t, err)
	assert.Equal(t, uint(unsafe.Sizeof(int(0)))*8, w.bits)
	assert.True(t, w.signed)

	w, err = widthOf[uintptr]()
	require.NoError(t, err)
	assert.Equal(t, uint(unsafe.Sizeof(uintptr(0)))*8, w.bits)
	assert.False(t, w.signed)
}

func TestSentinel(t *testing.T) {
	assert.Equal(t, uint8(255), Sentinel[uint8]())
	assert.Equal(t, uint16(65535), Sentinel[uint16]())
	assert.Equal(t, ^uint64(0), Sentinel[uint64]())
	assert.Equal(t, int8(-1), Sentinel[int8]())
	assert.Equal(t, int32(-1), Sentinel[int32]())
	assert.Equal(t, int64(-1), Sentinel[int64]())
}

func TestMaskLow(t *testing.T) {
	tests := []struct {
		n        uint
		expected uint64
	}{
		{1, 1},
		{2, 3},
		{8, 0xFF},
		{63, ^uint64(0) >> 1},
		{64, ^uint64(0)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, maskLow(tt.n), "maskLow(%d)", tt.n)
	}
}
