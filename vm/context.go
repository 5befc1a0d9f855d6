package vm

import (
	"github.com/tjs-lang/tjs/capability/store/memory"
	"github.com/tjs-lang/tjs/telemetry"
)

// RuntimeContext carries everything one procedure invocation needs beyond
// its own scope chain: fuel, injected capabilities, telemetry, and the
// durable procedure store used for `proc_<uuid>` continuation tokens
// (spec §5/§9).
type RuntimeContext struct {
	Fuel         *Fuel
	Capabilities Capabilities
	Telemetry    telemetry.Logger
	Metrics      telemetry.Metrics
	Tracer       telemetry.Tracer
	Procedures   ProcedureStore

	// CostOverrides replaces the default per-atom fuel cost for the
	// given atomir.Kind, keyed by its string value (e.g. "if", "return",
	// "varDecl") — the Go-side half of `options.costOverrides` (spec
	// §5): a static number set here at RuntimeContext construction time.
	// The `(input) → number` function form is not supported, and nothing
	// in this module converts one into this field; atomir nodes carry no
	// capability-injection point of their own to call back into JS
	// mid-execution.
	CostOverrides map[string]int64
}

// NewRuntimeContext builds a RuntimeContext with no-op telemetry unless
// overridden by the caller. If caps.Store is nil, an in-memory store is
// installed for the duration of the run so `store.get`/`store.set` still
// resolve rather than erroring with a missing capability.
func NewRuntimeContext(fuelBudget int64, caps Capabilities) *RuntimeContext {
	if caps.Store == nil {
		caps.Store = memory.New()
	}
	return &RuntimeContext{
		Fuel:         NewFuel(fuelBudget),
		Capabilities: caps,
		Telemetry:    telemetry.NewNoopLogger(),
		Metrics:      telemetry.NewNoopMetrics(),
		Tracer:       telemetry.NewNoopTracer(),
	}
}
