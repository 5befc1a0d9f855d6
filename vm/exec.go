package vm

import (
	"context"
	"fmt"

	"github.com/tjs-lang/tjs/atomir"
)

type signal int

const (
	sigNormal signal = iota
	sigReturn
	sigBreak
	sigContinue
)

// Execute runs a lowered procedure body against args, returning either its
// return value or a *MonadicError (spec §7) wrapped as a Go error. ctx's
// deadline/cancellation races against execution the same way an
// AbortController would in the original JS runtime: exec.go checks ctx at
// every atom boundary, and a goroutine watches ctx.Done() in case
// execution is blocked inside a capability call.
func Execute(ctx context.Context, rctx *RuntimeContext, body *atomir.Node, args map[string]any) (any, error) {
	if ctx.Err() != nil {
		return nil, NewMonadicError("timeout", "procedure exceeded its deadline", ctx.Err())
	}
	scope := NewScope(args)

	type result struct {
		value any
		err   error
	}
	done := make(chan result, 1)

	go func() {
		_, v, err := execNode(ctx, rctx, scope, body)
		done <- result{value: v, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, NewMonadicError("timeout", "procedure exceeded its deadline", ctx.Err())
	case r := <-done:
		return r.value, r.err
	}
}

func execNode(ctx context.Context, rctx *RuntimeContext, scope *Scope, node *atomir.Node) (signal, any, error) {
	if node == nil {
		return sigNormal, nil, nil
	}
	select {
	case <-ctx.Done():
		return sigNormal, nil, NewMonadicError("timeout", "procedure exceeded its deadline", ctx.Err())
	default:
	}
	if err := rctx.Fuel.Charge(rctx.costFor(string(node.Kind))); err != nil {
		return sigNormal, nil, NewMonadicError("fuel", err.Error(), err)
	}

	switch node.Kind {
	case atomir.KindBlock:
		child := scope.Child(nil)
		for _, c := range node.Children {
			sig, v, err := execNode(ctx, rctx, child, c)
			if err != nil || sig != sigNormal {
				propagateScope(scope, child)
				return sig, v, err
			}
		}
		propagateScope(scope, child)
		return sigNormal, nil, nil

	case atomir.KindReturn:
		if node.Expr == "" {
			return sigReturn, nil, nil
		}
		v, err := evalExpr(ctx, rctx, scope, node.Expr)
		return sigReturn, v, err

	case atomir.KindVarDecl:
		for _, d := range node.Decls {
			var v any
			if d.Init != "" {
				var err error
				v, err = evalExpr(ctx, rctx, scope, d.Init)
				if err != nil {
					return sigNormal, nil, err
				}
			}
			if err := scope.Declare(d.Name, v, node.IsConst); err != nil {
				return sigNormal, nil, NewMonadicError("const-reassignment", err.Error(), err)
			}
		}
		return sigNormal, nil, nil

	case atomir.KindExprStmt:
		if err := execLeafStatement(ctx, rctx, scope, node.Expr); err != nil {
			return sigNormal, nil, err
		}
		return sigNormal, nil, nil

	case atomir.KindIf:
		cond, err := evalExpr(ctx, rctx, scope, node.Cond)
		if err != nil {
			return sigNormal, nil, err
		}
		if truthy(cond) {
			return execNode(ctx, rctx, scope, node.Then)
		} else if node.Else != nil {
			return execNode(ctx, rctx, scope, node.Else)
		}
		return sigNormal, nil, nil

	case atomir.KindWhile:
		return execWhile(ctx, rctx, scope, node)

	case atomir.KindForOf:
		return execForOf(ctx, rctx, scope, node)

	case atomir.KindForIn:
		return execForIn(ctx, rctx, scope, node)

	case atomir.KindTryCatch:
		return execTryCatch(ctx, rctx, scope, node)

	case atomir.KindBreak:
		return sigBreak, nil, nil

	case atomir.KindContinue:
		return sigContinue, nil, nil

	case atomir.KindEmpty:
		return sigNormal, nil, nil

	default:
		return sigNormal, nil, NewMonadicError("internal", fmt.Sprintf("unknown atom kind %q", node.Kind), nil)
	}
}

// execWhile re-evaluates node.Cond before every pass and charges fuel per
// iteration (spec §4.5/§8), the same way execForOf/execForIn charge fuel
// per item rather than once for the whole loop.
func execWhile(ctx context.Context, rctx *RuntimeContext, scope *Scope, node *atomir.Node) (signal, any, error) {
	for {
		select {
		case <-ctx.Done():
			return sigNormal, nil, NewMonadicError("timeout", "procedure exceeded its deadline", ctx.Err())
		default:
		}
		cond, err := evalExpr(ctx, rctx, scope, node.Cond)
		if err != nil {
			return sigNormal, nil, err
		}
		if !truthy(cond) {
			return sigNormal, nil, nil
		}
		if err := rctx.Fuel.Charge(rctx.costFor(string(node.Kind))); err != nil {
			return sigNormal, nil, NewMonadicError("fuel", err.Error(), err)
		}
		iterScope := scope.Child(nil)
		sig, v, err := execNode(ctx, rctx, iterScope, node.Body)
		if err != nil || sig == sigReturn {
			return sig, v, err
		}
		if sig == sigBreak {
			propagateScope(scope, iterScope)
			return sigNormal, nil, nil
		}
		// sigContinue / sigNormal: fall through to re-check the condition.
		propagateScope(scope, iterScope)
	}
}

func execForOf(ctx context.Context, rctx *RuntimeContext, scope *Scope, node *atomir.Node) (signal, any, error) {
	iterable, err := evalExpr(ctx, rctx, scope, node.Iterable)
	if err != nil {
		return sigNormal, nil, err
	}
	items, ok := iterable.([]any)
	if !ok {
		return sigNormal, nil, NewMonadicError("for-of", fmt.Sprintf("%q is not iterable", node.Iterable), nil)
	}
	for _, item := range items {
		if err := rctx.Fuel.Charge(rctx.costFor(string(node.Kind))); err != nil {
			return sigNormal, nil, NewMonadicError("fuel", err.Error(), err)
		}
		iterScope := scope.Child(map[string]any{node.Binding: item})
		sig, v, err := execNode(ctx, rctx, iterScope, node.Body)
		if err != nil || sig == sigReturn {
			return sig, v, err
		}
		if sig == sigBreak {
			propagateScope(scope, iterScope)
			break
		}
		// sigContinue / sigNormal: fall through to next iteration.
		propagateScope(scope, iterScope)
	}
	return sigNormal, nil, nil
}

func execForIn(ctx context.Context, rctx *RuntimeContext, scope *Scope, node *atomir.Node) (signal, any, error) {
	obj, err := evalExpr(ctx, rctx, scope, node.Iterable)
	if err != nil {
		return sigNormal, nil, err
	}
	m, ok := obj.(map[string]any)
	if !ok {
		return sigNormal, nil, NewMonadicError("for-in", fmt.Sprintf("%q is not an object", node.Iterable), nil)
	}
	for key := range m {
		if err := rctx.Fuel.Charge(rctx.costFor(string(node.Kind))); err != nil {
			return sigNormal, nil, NewMonadicError("fuel", err.Error(), err)
		}
		iterScope := scope.Child(map[string]any{node.Binding: key})
		sig, v, err := execNode(ctx, rctx, iterScope, node.Body)
		if err != nil || sig == sigReturn {
			return sig, v, err
		}
		if sig == sigBreak {
			propagateScope(scope, iterScope)
			break
		}
		propagateScope(scope, iterScope)
	}
	return sigNormal, nil, nil
}

func execTryCatch(ctx context.Context, rctx *RuntimeContext, scope *Scope, node *atomir.Node) (signal, any, error) {
	sig, v, err := execNode(ctx, rctx, scope, node.Try)
	if err == nil {
		return sig, v, nil
	}
	catchScope := scope.Child(nil)
	if node.CatchParam != "" {
		catchScope.bind(node.CatchParam, errorToJSValue(err))
	}
	return execNode(ctx, rctx, catchScope, node.Catch)
}

func errorToJSValue(err error) any {
	if me, ok := err.(*MonadicError); ok {
		return me.ToValue()
	}
	return map[string]any{"$error": true, "message": err.Error()}
}

// propagateScope copies back into parent every binding that already
// existed there before child was created, so an assignment to an
// enclosing variable made inside a nested block is visible once the
// block exits — bindings a block introduced for itself (a `let`/`const`
// declared only inside it) are left behind, matching ordinary JS block
// scoping.
func propagateScope(parent, child *Scope) {
	for k, v := range child.Snapshot() {
		if _, existed := parent.Get(k); existed {
			parent.bind(k, v)
		}
	}
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}
