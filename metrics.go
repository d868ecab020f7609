package indexpool

import "sync/atomic"

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
//
// Pools themselves are single-threaded, but a collector may be shared by
// many pools, so implementations must be safe for concurrent use.
type MetricsCollector interface {
	// RecordTake is called after each single take, including the takes
	// performed inside TakeMany. ok is false when the pool was exhausted
	// and the sentinel was handed out.
	RecordTake(ok bool)

	// RecordReturn is called after each single return, including the
	// returns performed inside ReturnAll. ok is false when the index was
	// out of range and rejected.
	RecordReturn(ok bool)

	// RecordBatch is called once per TakeMany, TakeAll and ReturnAll.
	// requested is the number of slots processed, missed the number the
	// pool could not satisfy.
	RecordBatch(requested, missed int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordTake(bool)      {}
func (NoopMetricsCollector) RecordReturn(bool)    {}
func (NoopMetricsCollector) RecordBatch(int, int) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	TakeCount      atomic.Int64
	TakeExhausted  atomic.Int64
	ReturnCount    atomic.Int64
	ReturnRejected atomic.Int64
	BatchCount     atomic.Int64
	BatchRequested atomic.Int64
	BatchMissed    atomic.Int64
}

// RecordTake implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTake(ok bool) {
	b.TakeCount.Add(1)
	if !ok {
		b.TakeExhausted.Add(1)
	}
}

// RecordReturn implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReturn(ok bool) {
	b.ReturnCount.Add(1)
	if !ok {
		b.ReturnRejected.Add(1)
	}
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(requested, missed int) {
	b.BatchCount.Add(1)
	b.BatchRequested.Add(int64(requested))
	b.BatchMissed.Add(int64(missed))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		TakeCount:      b.TakeCount.Load(),
		TakeExhausted:  b.TakeExhausted.Load(),
		ReturnCount:    b.ReturnCount.Load(),
		ReturnRejected: b.ReturnRejected.Load(),
		BatchCount:     b.BatchCount.Load(),
		BatchRequested: b.BatchRequested.Load(),
		BatchMissed:    b.BatchMissed.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	TakeCount      int64
	TakeExhausted  int64
	ReturnCount    int64
	ReturnRejected int64
	BatchCount     int64
	BatchRequested int64
	BatchMissed    int64
}
