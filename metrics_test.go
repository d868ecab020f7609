package indexpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicMetricsCollector(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	pool, err := New[uint32](4, WithMetricsCollector[uint32](metrics))
	require.NoError(t, err)

	pool.Take()
	pool.Take()
	pool.Take()
	pool.Take()
	pool.Take() // exhausted

	stats := metrics.GetStats()
	assert.Equal(t, int64(5), stats.TakeCount)
	assert.Equal(t, int64(1), stats.TakeExhausted)

	pool.Return(0)
	pool.Return(99) // rejected

	stats = metrics.GetStats()
	assert.Equal(t, int64(2), stats.ReturnCount)
	assert.Equal(t, int64(1), stats.ReturnRejected)
}

func TestBasicMetricsCollector_Batches(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	pool, err := New[uint32](4, WithMetricsCollector[uint32](metrics))
	require.NoError(t, err)

	pool.TakeMany(2)

	// 4 slots requested (clamped), 2 free left, 2 missed.
	pool.TakeMany(10)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.BatchCount)
	assert.Equal(t, int64(6), stats.BatchRequested)
	assert.Equal(t, int64(2), stats.BatchMissed)

	pool.ReturnAll([]uint32{0, 1, 50})
	stats = metrics.GetStats()
	assert.Equal(t, int64(3), stats.BatchCount)
	assert.Equal(t, int64(3), stats.BatchMissed)
}

func TestBasicMetricsCollector_SharedAcrossPools(t *testing.T) {
	metrics := &BasicMetricsCollector{}

	small, err := New[uint16](8, WithMetricsCollector[uint16](metrics))
	require.NoError(t, err)
	large, err := New[uint32](128, WithMetricsCollector[uint32](metrics))
	require.NoError(t, err)

	small.Take()
	large.Take()
	large.Take()

	assert.Equal(t, int64(3), metrics.GetStats().TakeCount)
}
