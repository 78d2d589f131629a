// Package telemetry provides hierarchical timing collection for the phases
// of a summarize run (schema load, parse, aggregate).
// Collectors travel through context so instrumentation stays out of
// function signatures and costs nothing when disabled.
package telemetry

import (
	"context"
	"io"

	"expensetally/output"
)

type contextKey struct{}

var collectorKey = contextKey{}

// Collector gathers operation timings.
type Collector interface {
	// Start begins timing an operation; end it with the returned Timer.
	Start(name string) Timer

	// Report writes the collected timings. Styles may be nil for plain
	// output.
	Report(w io.Writer, styles *output.Styles)
}

// Timer tracks a single operation. Timers nest via Child.
type Timer interface {
	End()
	Child(name string) Timer
}

// WithCollector attaches a collector to a context.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext returns the context's collector, or a no-op collector when
// none is attached.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}

type noOpCollector struct{}

func (noOpCollector) Start(string) Timer               { return noOpTimer{} }
func (noOpCollector) Report(io.Writer, *output.Styles) {}

type noOpTimer struct{}

func (noOpTimer) End()               {}
func (noOpTimer) Child(string) Timer { return noOpTimer{} }
