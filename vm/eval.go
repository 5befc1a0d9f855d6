package vm

import (
	"context"

	"github.com/dop251/goja"

	"github.com/tjs-lang/tjs/atoms"
)

// newExprRuntime builds a fresh goja runtime seeded with scope's current
// bindings plus the capability globals, used to evaluate one leaf JS
// expression (spec §5: atoms are structural, everything inside them is
// still ordinary JS). A new runtime per evaluation keeps each atom's
// expression evaluation hermetic — no global state leaks between atoms —
// at the cost of re-creating the runtime often; for the single-procedure,
// cooperative-scheduler execution model described in spec §5 this cost is
// acceptable and keeps the fuel/capability bookkeeping simple.
func newExprRuntime(ctx context.Context, rctx *RuntimeContext, scope *Scope) (*goja.Runtime, []string) {
	rt := goja.New()
	names := scope.Snapshot()
	keys := make([]string, 0, len(names))
	for k, v := range names {
		rt.Set(k, v)
		keys = append(keys, k)
	}
	bindCapabilities(ctx, rt, rctx)
	atoms.Bind(rt)
	return rt, keys
}

// writeBack copies each bound name's current value out of rt back into
// scope, so an ordinary JS assignment inside one atom's expression (e.g.
// `total += item`) is visible to the next atom — each leaf evaluation gets
// its own goja runtime (newExprRuntime), so without this the reassignment
// would otherwise vanish with the runtime that made it. A name bound
// const in scope that the expression actually reassigned (e.g. a plain
// `x = 10;` after `const x = 5;`, which this package's atomir.Lower
// cannot distinguish from any other expression statement) surfaces as a
// monadic const-reassignment error instead of silently taking effect.
func writeBack(rt *goja.Runtime, scope *Scope, keys []string) error {
	for _, k := range keys {
		if err := scope.Set(k, rt.Get(k).Export()); err != nil {
			return NewMonadicError("const-reassignment", err.Error(), err)
		}
	}
	return nil
}

// evalExpr evaluates a single JS expression fragment against scope and
// returns its exported Go value.
func evalExpr(ctx context.Context, rctx *RuntimeContext, scope *Scope, expr string) (any, error) {
	rt, keys := newExprRuntime(ctx, rctx, scope)
	v, err := rt.RunString("(" + expr + ")")
	if err != nil {
		return nil, translateJSError(err)
	}
	if err := writeBack(rt, scope, keys); err != nil {
		return nil, err
	}
	return v.Export(), nil
}

// execLeafStatement evaluates a statement-shaped expression (no value
// needed) such as an ExprStmt's text.
func execLeafStatement(ctx context.Context, rctx *RuntimeContext, scope *Scope, stmt string) error {
	rt, keys := newExprRuntime(ctx, rctx, scope)
	if _, err := rt.RunString(stmt); err != nil {
		return translateJSError(err)
	}
	return writeBack(rt, scope, keys)
}

func translateJSError(err error) error {
	if exc, ok := err.(*goja.Exception); ok {
		return NewMonadicError("eval", exc.Error(), nil)
	}
	return NewMonadicError("eval", err.Error(), nil)
}
