package vm

import "fmt"

// Fuel is the step budget for one procedure invocation (spec §5): each
// atom visited by Execute charges its cost (CostAtom unless
// RuntimeContext.CostOverrides sets one for that kind). Capability calls
// (store/fetch/llm/vector) run inside an expression and are not charged
// separately. A procedure that runs out of fuel returns a monadic error
// rather than running forever.
type Fuel struct {
	remaining int64
	charged   int64
}

// NewFuel creates a tank with the given starting budget.
func NewFuel(budget int64) *Fuel {
	return &Fuel{remaining: budget}
}

// Remaining reports the unspent budget.
func (f *Fuel) Remaining() int64 { return f.remaining }

// Charged reports the total spent so far.
func (f *Fuel) Charged() int64 { return f.charged }

// ErrFuelExhausted is returned by Charge once the tank hits zero.
var ErrFuelExhausted = fmt.Errorf("fuel exhausted")

// Charge deducts n from the remaining budget, returning ErrFuelExhausted
// if that would take it below zero.
func (f *Fuel) Charge(n int64) error {
	if f.remaining-n < 0 {
		f.remaining = 0
		return ErrFuelExhausted
	}
	f.remaining -= n
	f.charged += n
	return nil
}

// Atom costs (spec §5). CostAtom is the default per-atom charge.
// CostCapability is declared for capability calls, but nothing in this
// package charges it.
const (
	CostAtom       int64 = 1
	CostCapability int64 = 10
)

// costFor looks up an atom-kind-specific override, falling back to
// CostAtom when none was set.
func (rctx *RuntimeContext) costFor(kind string) int64 {
	if rctx.CostOverrides != nil {
		if n, ok := rctx.CostOverrides[kind]; ok {
			return n
		}
	}
	return CostAtom
}
