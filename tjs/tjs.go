// Package tjs is the public compiler surface (spec §6): transpile a single
// function to its lowered atom tree, compile a whole module to plain
// JavaScript with its signature and test report, or erase TypeScript
// annotations into a TJS source the rest of the pipeline can read.
package tjs

import (
	"context"

	"github.com/tjs-lang/tjs/atomir"
	"github.com/tjs-lang/tjs/emitjs"
	"github.com/tjs-lang/tjs/lexer"
	"github.com/tjs-lang/tjs/parser"
	"github.com/tjs-lang/tjs/sigtest"
	"github.com/tjs-lang/tjs/types"
)

// TranspileResult is `{ast, signature, error?}` (spec §6).
type TranspileResult struct {
	AST       *atomir.Node
	Signature *types.FunctionSignature
	Error     *lexer.SyntaxError
}

// Transpile lowers a single-function source to its atom tree and compiled
// signature. source must declare exactly one function; anything else is a
// *lexer.SyntaxError. A signature-test failure is reported on Result.Error
// rather than failing the call outright, so a caller can still inspect the
// AST and signature of a function whose declared return example didn't
// match.
func Transpile(source string) (*TranspileResult, error) {
	pre, err := lexer.Preprocess(source)
	if err != nil {
		return nil, err
	}
	prog, err := parser.Parse(pre.Source)
	if err != nil {
		return nil, err
	}
	if len(prog.Functions) != 1 {
		return nil, lexer.NewSyntaxErrorAt(pre.Source, "single-function", 0,
			"transpile requires exactly one function declaration, found %d", len(prog.Functions))
	}
	fn := prog.Functions[0]

	node, err := atomir.Lower(fn.Body)
	if err != nil {
		return nil, err
	}

	caseResult, sig, err := sigtest.RunFunctionSignatureTest(context.Background(), fn, pre)
	if err != nil {
		return nil, err
	}

	result := &TranspileResult{AST: node, Signature: sig}
	if !caseResult.Passed && !caseResult.Skipped {
		result.Error = lexer.NewSyntaxErrorAt(pre.Source, "signature-test-failure", fn.Loc.Start, "%s", caseResult.Error)
	}
	return result, nil
}

// SignatureRecord is one entry of TranspileToJSResult.Types — the
// JSON-friendly projection of a types.FunctionSignature spec §6's
// `map<name,SignatureRecord>` names.
type SignatureRecord struct {
	Parameters  map[string]*types.ParamSpec
	ParamOrder  []string
	Returns     *types.Type
	Description string
	Safe        bool
	Unsafe      bool
}

// TranspileToJSResult is `{code, types, testResults?, error?}` (spec §6).
type TranspileToJSResult struct {
	Code        string
	Types       map[string]*SignatureRecord
	TestResults *sigtest.Report
	Error       *lexer.SyntaxError
}

// Options configures TranspileToJS / Tjs (spec §6's opts bag).
type Options struct {
	Filename string
	Debug    bool

	// RunTests selects how signature-test failures are reported:
	//   true (default, zero value) — a failure fails the compile (Error is set).
	//   "report" — failures are folded into TestResults instead.
	//   false — signature tests (and explicit test/mock blocks) are skipped entirely.
	RunTests string

	// CostOverrides holds per-atom fuel costs keyed by atomir.Kind string
	// (spec §5 `options.costOverrides`, static-number form only), for a
	// caller to copy into the vm.RuntimeContext it builds. TranspileToJS
	// and Tjs do not read it: their signature tests run with the default
	// costs.
	CostOverrides map[string]int64

	// DangerouslySkipTests skips both signature tests and explicit
	// test/mock blocks outright, same effect as RunTests == "false" but
	// named separately per spec §6 so a caller can distinguish "I
	// don't have runnable tests yet" from "skip tests, I know what
	// I'm doing".
	DangerouslySkipTests bool
}

func (o Options) skipTests() bool {
	return o.DangerouslySkipTests || o.RunTests == "false"
}

// TranspileToJS compiles a whole module: every function declaration
// parser.Parse finds (nested ones included) gets a
// signature (spec §4.6), the module is re-emitted as plain JavaScript with
// inline validation and `__tjs` metadata (package emitjs), and — unless
// skipped — the module's signature tests and any `test`/`mock` blocks run.
func TranspileToJS(source string, opts Options) (*TranspileToJSResult, error) {
	pre, err := lexer.Preprocess(source)
	if err != nil {
		return nil, err
	}
	prog, err := parser.Parse(pre.Source)
	if err != nil {
		return nil, err
	}

	result := &TranspileToJSResult{}

	var sigs map[string]*types.FunctionSignature
	if opts.skipTests() {
		sigs = make(map[string]*types.FunctionSignature, len(prog.Functions))
		for _, fn := range prog.Functions {
			sig, sigErr := sigtest.BuildSignature(fn, pre)
			if sigErr != nil {
				return nil, sigErr
			}
			sigs[fn.Name] = sig
		}
	} else {
		report, built, sigErr := sigtest.RunModuleSignatureTests(context.Background(), prog, pre)
		if sigErr != nil {
			return nil, sigErr
		}
		sigs = built

		if failing := firstFailure(report); failing != nil {
			if opts.RunTests == "report" {
				result.TestResults = report
			} else {
				result.Error = lexer.NewSyntaxErrorAt(pre.Source, "signature-test-failure", 0, "%s", failing.Error)
				return result, nil
			}
		} else {
			result.TestResults = report
		}

		if explicit, testErr := sigtest.RunExplicitTests(pre); testErr == nil {
			result.TestResults = mergeReports(result.TestResults, explicit)
		}
	}

	code, err := emitjs.Emit(prog, pre, sigs, emitjs.Options{Filename: opts.Filename, Debug: opts.Debug})
	if err != nil {
		return nil, err
	}
	result.Code = code
	result.Types = make(map[string]*SignatureRecord, len(sigs))
	for name, sig := range sigs {
		result.Types[name] = &SignatureRecord{
			Parameters:  sig.Parameters,
			ParamOrder:  sig.ParamOrder,
			Returns:     sig.Returns,
			Description: sig.Description,
			Safe:        sig.Safe,
			Unsafe:      sig.Unsafe,
		}
	}
	return result, nil
}

// Tjs is the convenience entry point spec §6 describes. It behaves exactly
// like TranspileToJS: tests run, report or are skipped as opts selects, and
// a failing signature test under the default RunTests setting returns a
// result with Error set and no Code.
func Tjs(source string, opts Options) (*TranspileToJSResult, error) {
	return TranspileToJS(source, opts)
}

func firstFailure(r *sigtest.Report) *sigtest.CaseResult {
	for i := range r.Results {
		if !r.Results[i].Passed {
			return &r.Results[i]
		}
	}
	return nil
}

func mergeReports(a, b *sigtest.Report) *sigtest.Report {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	out := &sigtest.Report{Passed: a.Passed + b.Passed, Failed: a.Failed + b.Failed}
	out.Results = append(out.Results, a.Results...)
	out.Results = append(out.Results, b.Results...)
	return out
}
