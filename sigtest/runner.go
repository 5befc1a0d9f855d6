package sigtest

import (
	"context"
	"fmt"
	"reflect"

	"github.com/dop251/goja"

	"github.com/tjs-lang/tjs/atomir"
	"github.com/tjs-lang/tjs/atoms"
	"github.com/tjs-lang/tjs/lexer"
	"github.com/tjs-lang/tjs/parser"
	"github.com/tjs-lang/tjs/types"
	"github.com/tjs-lang/tjs/vm"
)

// defaultSignatureTestFuel is generous relative to ordinary run budgets
// (vm.CostAtom units) since a signature test exercises the whole function
// body once with realistic example inputs, not a worst-case loop.
const defaultSignatureTestFuel = 100_000

// CaseResult is one entry of a Report (spec §4.6: "{description, passed,
// error?, line?}").
type CaseResult struct {
	Description string
	Passed      bool
	Error       string
	Line        int
	Skipped     bool
}

// Report is the aggregated result spec §4.6 describes:
// `{passed, failed, results:[...]}`.
type Report struct {
	Passed  int
	Failed  int
	Results []CaseResult
}

func (r *Report) record(c CaseResult) {
	r.Results = append(r.Results, c)
	if c.Passed {
		r.Passed++
	} else {
		r.Failed++
	}
}

// RunFunctionSignatureTest runs the compile-time invocation spec §4.6
// describes for a single function: build its signature from declared
// examples, execute its lowered body through the fuel-metered VM with
// those examples as arguments, and check the result against the declared
// return type. The case is marked Skipped (and Passed) rather than run
// when the return policy is `-!`, no return type was captured, the
// function is async, or its body references an unresolved import — all
// per spec §4.6's policy table. Only a malformed example expression
// (something BuildSignature itself cannot evaluate) is returned as an
// error; every other outcome is reported as a CaseResult so a failing
// signature test never panics the caller.
func RunFunctionSignatureTest(ctx context.Context, fn *parser.FunctionDecl, pre *lexer.Result) (*CaseResult, *types.FunctionSignature, error) {
	sig, err := BuildSignature(fn, pre)
	if err != nil {
		return nil, nil, err
	}

	desc := "signature test: " + fn.Name
	skip := func() *CaseResult {
		return &CaseResult{Description: desc, Passed: true, Skipped: true, Line: fn.Loc.Line}
	}

	if pre.ReturnPolicy == "-!" || pre.ReturnType == "" {
		return skip(), sig, nil
	}
	if fn.IsAsync {
		return skip(), sig, nil
	}
	if referencesUnresolvedImport(fn.Body) {
		return skip(), sig, nil
	}

	node, err := atomir.Lower(fn.Body)
	if err != nil {
		return &CaseResult{Description: desc, Passed: false, Error: err.Error(), Line: fn.Loc.Line}, sig, nil
	}

	args := make(map[string]any, len(sig.ParamOrder))
	for _, name := range sig.ParamOrder {
		args[name] = sig.Parameters[name].Example
	}

	rctx := vm.NewRuntimeContext(defaultSignatureTestFuel, vm.Capabilities{})
	result, runErr := vm.Execute(ctx, rctx, node, args)
	if runErr != nil {
		return &CaseResult{Description: desc, Passed: false, Error: runErr.Error(), Line: fn.Loc.Line}, sig, nil
	}
	if !types.CheckType(result, sig.Returns) {
		msg := fmt.Sprintf("Expected %s, got %s", types.TypeToString(sig.Returns), types.TypeToString(types.InferTypeFromValue(result)))
		return &CaseResult{Description: desc, Passed: false, Error: msg, Line: fn.Loc.Line}, sig, nil
	}
	return &CaseResult{Description: desc, Passed: true, Line: fn.Loc.Line}, sig, nil
}

// RunModuleSignatureTests runs RunFunctionSignatureTest for every function
// prog declares and folds the results into one Report, alongside the
// compiled signatures keyed by function name (the `types: map<name,
// SignatureRecord>` shape spec §6's `transpileToJS` returns).
func RunModuleSignatureTests(ctx context.Context, prog *parser.Program, pre *lexer.Result) (*Report, map[string]*types.FunctionSignature, error) {
	report := &Report{}
	sigs := make(map[string]*types.FunctionSignature, len(prog.Functions))
	for _, fn := range prog.Functions {
		res, sig, err := RunFunctionSignatureTest(ctx, fn, pre)
		if err != nil {
			return nil, nil, err
		}
		sigs[fn.Name] = sig
		report.record(*res)
	}
	return report, sigs, nil
}

// RunExplicitTests runs the `test`/`mock` blocks lexer.Preprocess lifted
// out of the module (spec §4.6): mocks execute first against a shared
// runtime that also has every function in prog defined (by re-running the
// preprocessed source itself, so tests call the real functions), then each
// test body runs with `expect(...)` available.
func RunExplicitTests(pre *lexer.Result) (*Report, error) {
	report := &Report{}

	rt := goja.New()
	atoms.Bind(rt)
	bindExpect(rt)
	if _, err := rt.RunString(pre.Source); err != nil {
		return nil, fmt.Errorf("sigtest: module source failed to load for testing: %w", err)
	}
	for _, mock := range pre.Mocks {
		if _, err := rt.RunString(mock.Body); err != nil {
			return nil, fmt.Errorf("sigtest: mock at line %d failed to evaluate: %w", mock.Line, err)
		}
	}

	for _, tc := range pre.Tests {
		report.record(runOneTest(rt, tc))
	}
	return report, nil
}

// runOneTest evaluates a test body wrapped in its own IIFE so one test's
// local `let`/`const` declarations cannot collide with another's — tests
// share the same runtime (and therefore the same module functions and any
// mock-installed state) but not each other's locals.
func runOneTest(rt *goja.Runtime, tc lexer.TestBlock) CaseResult {
	wrapped := "(function(){\n" + tc.Body + "\n})()"
	if _, err := rt.RunString(wrapped); err != nil {
		return CaseResult{Description: tc.Description, Passed: false, Error: err.Error(), Line: tc.Line}
	}
	return CaseResult{Description: tc.Description, Passed: true, Line: tc.Line}
}

// bindExpect installs the matcher API spec §4.6 names: toBe/toEqual use
// deep equality (TJS has no distinct reference-identity notion at this
// layer), toContain checks array/string membership, toThrow invokes its
// actual value as a function and expects it to throw (a normal return, a
// monadic error value included, fails the matcher), and toBeTruthy/toBeFalsy defer to the same truthiness rules the
// VM's `if` atom uses.
func bindExpect(rt *goja.Runtime) {
	rt.Set("expect", func(actual goja.Value) map[string]any {
		return map[string]any{
			"toBe":    func(expected goja.Value) error { return equalOrErr(actual.Export(), expected.Export()) },
			"toEqual": func(expected goja.Value) error { return equalOrErr(actual.Export(), expected.Export()) },
			"toContain": func(expected goja.Value) error {
				if containsValue(actual.Export(), expected.Export()) {
					return nil
				}
				return fmt.Errorf("expected %v to contain %v", actual.Export(), expected.Export())
			},
			"toBeTruthy": func() error {
				if !truthy(actual.Export()) {
					return fmt.Errorf("expected %v to be truthy", actual.Export())
				}
				return nil
			},
			"toBeFalsy": func() error {
				if truthy(actual.Export()) {
					return fmt.Errorf("expected %v to be falsy", actual.Export())
				}
				return nil
			},
			"toThrow": func() error {
				fn, ok := goja.AssertFunction(actual)
				if !ok {
					return fmt.Errorf("expected a function to call with toThrow")
				}
				_, callErr := fn(goja.Undefined())
				if callErr == nil {
					return fmt.Errorf("expected function to throw, it returned normally")
				}
				return nil
			},
		}
	})
}

func equalOrErr(a, b any) error {
	if reflect.DeepEqual(a, b) {
		return nil
	}
	return fmt.Errorf("expected %v to equal %v", a, b)
}

func containsValue(haystack, needle any) bool {
	switch h := haystack.(type) {
	case string:
		n, ok := needle.(string)
		return ok && (n == "" || stringContains(h, n))
	case []any:
		for _, v := range h {
			if reflect.DeepEqual(v, needle) {
				return true
			}
		}
	}
	return false
}

func stringContains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
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
