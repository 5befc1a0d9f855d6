// Package telemetry integrates compiler diagnostics and VM execution events
// with structured logging, metrics, and tracing. Implementations typically
// delegate to Clue/OTEL but the interfaces are intentionally small so tests
// and embedders can supply lightweight stubs.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Logger captures structured logging used throughout the compiler and VM.
type Logger interface {
	Debug(ctx context.Context, msg string, keyvals ...any)
	Info(ctx context.Context, msg string, keyvals ...any)
	Warn(ctx context.Context, msg string, keyvals ...any)
	Error(ctx context.Context, msg string, keyvals ...any)
}

// Metrics exposes counter/timer/gauge helpers for runtime instrumentation —
// fuel consumed, atoms executed, compile errors, signature-test results.
type Metrics interface {
	IncCounter(name string, value float64, tags ...string)
	RecordTimer(name string, duration time.Duration, tags ...string)
	RecordGauge(name string, value float64, tags ...string)
}

// Tracer abstracts span creation so the VM can remain agnostic of the
// underlying OpenTelemetry provider.
type Tracer interface {
	Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, Span)
	Span(ctx context.Context) Span
}

// Span represents an in-flight tracing span.
type Span interface {
	End(opts ...trace.SpanEndOption)
	AddEvent(name string, attrs ...any)
	SetStatus(code codes.Code, description string)
	RecordError(err error, opts ...trace.EventOption)
}

// AtomTelemetry captures observability metadata collected during a single
// atom invocation, mirroring the VM trace entry shape from spec §3
// (RuntimeContext.trace). Extra holds atom-specific data (HTTP status,
// token counts, vector search scores, ...).
type AtomTelemetry struct {
	// Op is the atom's operator name (e.g. "httpFetch", "llmPredict").
	Op string
	// DurationMs is the wall-clock execution time in milliseconds.
	DurationMs int64
	// FuelCharged is the fuel units charged for this atom.
	FuelCharged float64
	// Error is set when the atom produced a monadic error.
	Error string
	// Extra holds atom-specific metadata.
	Extra map[string]any
}
