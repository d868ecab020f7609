package indexpool

import "log/slog"

type options[T Index] struct {
	start     T
	logger    *Logger
	collector MetricsCollector
}

// Option configures pool construction.
//
// Options exist to avoid exploding the constructor surface; the zero
// configuration (start index 0, no logging, no metrics) is always valid.
type Option[T Index] func(*options[T])

// WithStartIndex sets the first externally visible index value. Indexes then
// range over [start, start+capacity-1]. Defaults to zero; negative values
// are rejected at construction.
func WithStartIndex[T Index](start T) Option[T] {
	return func(o *options[T]) {
		o.start = start
	}
}

// WithLogger configures structured logging for pool lifecycle events.
// Pass nil to disable logging.
func WithLogger[T Index](logger *Logger) Option[T] {
	return func(o *options[T]) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel[T Index](level slog.Level) Option[T] {
	return func(o *options[T]) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for take/return
// operations. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &indexpool.BasicMetricsCollector{}
//	pool, _ := indexpool.New[uint32](128, indexpool.WithMetricsCollector[uint32](metrics))
//	// ... use pool ...
//	stats := metrics.GetStats()
func WithMetricsCollector[T Index](mc MetricsCollector) Option[T] {
	return func(o *options[T]) {
		o.collector = mc
	}
}

func applyOptions[T Index](optFns []Option[T]) options[T] {
	o := options[T]{
		logger:    NoopLogger(),
		collector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.collector == nil {
		o.collector = NoopMetricsCollector{}
	}
	return o
}
