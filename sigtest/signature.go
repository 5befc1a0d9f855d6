// Package sigtest implements the signature-test runner (spec §4.6): for a
// function declared `f(a: Ex_a, …) -> Ex_r` (or `-?`), it calls f with the
// declared examples at compile time and checks the result against the
// declared return type, plus runs explicit `test`/`mock` blocks extracted
// by package lexer. This is the one place the compiler executes arbitrary
// user code before emission, so it shares the fuel-metered VM (package vm)
// rather than a bare `eval` — the same sandboxing requirements apply here
// as to any other run (spec §9).
package sigtest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tjs-lang/tjs/example"
	"github.com/tjs-lang/tjs/lexer"
	"github.com/tjs-lang/tjs/parser"
	"github.com/tjs-lang/tjs/types"
)

// BuildSignature derives fn's FunctionSignature (spec §3) by evaluating
// each parameter's default/example expression (left to right, so a later
// parameter's example may reference an earlier one by name) and the
// module's captured return-type example, if any. Under the `-!` policy the
// return example is never checked, so one that does not evaluate (such as
// the placeholder FromTS writes for an erased TypeScript type) leaves
// Returns nil instead of failing.
func BuildSignature(fn *parser.FunctionDecl, pre *lexer.Result) (*types.FunctionSignature, error) {
	sig := types.NewFunctionSignature(fn.Name)
	if fn.Doc != nil {
		sig.Description = fn.Doc.Description
	}
	sig.Safe = pre.SafeFunctions[fn.Name]
	sig.Unsafe = pre.UnsafeFunctions[fn.Name]

	env := example.Env{}
	for _, p := range fn.Params {
		name, defaultExpr := splitParamDefault(p.Raw)
		if name == "" {
			continue
		}
		var ex any
		if defaultExpr != "" {
			v, err := example.Parse(defaultExpr, env)
			if err != nil {
				return nil, fmt.Errorf("sigtest: parameter %q of %q: %w", name, fn.Name, err)
			}
			ex = v
			env[name] = v
		}
		sig.AddParam(name, &types.ParamSpec{
			Type:     types.InferTypeFromValue(ex),
			Required: containsName(pre.RequiredParams, name),
			Default:  ex,
			Example:  ex,
		})
	}

	if pre.ReturnType != "" {
		v, err := example.Parse(pre.ReturnType, env)
		switch {
		case err == nil:
			sig.Returns = types.InferTypeFromValue(v)
		case pre.ReturnPolicy != "-!":
			return nil, fmt.Errorf("sigtest: return type of %q: %w", fn.Name, err)
		}
	}

	switch pre.ReturnPolicy {
	case "-?":
		sig.SafeReturn = true
	case "-!":
		sig.UnsafeReturn = true
	}

	return sig, nil
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// splitParamDefault separates a parameter's raw text ("name = EXAMPLE",
// "...rest", or a bare "name") into its identifier and default-expression
// text, splitting only on a top-level `=` (one not nested inside brackets
// or a string), matching the preprocessor's own colon-to-default rewrite.
func splitParamDefault(raw string) (name, defaultExpr string) {
	raw = strings.TrimSpace(raw)
	eq := topLevelEquals(raw)
	if eq == -1 {
		return identPrefix(raw), ""
	}
	return strings.TrimSpace(raw[:eq]), strings.TrimSpace(raw[eq+1:])
}

func topLevelEquals(s string) int {
	depth := 0
	inString := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == inString {
				inString = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			inString = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '=':
			if depth == 0 && (i == 0 || s[i-1] != '!' && s[i-1] != '<' && s[i-1] != '>' && s[i-1] != '=') && (i+1 >= len(s) || s[i+1] != '=') {
				return i
			}
		}
	}
	return -1
}

func identPrefix(s string) string {
	s = strings.TrimPrefix(s, "...")
	i := 0
	for i < len(s) && isIdentByte(s[i]) {
		i++
	}
	return s[:i]
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

var requireCallRe = regexp.MustCompile(`\brequire\s*\(`)

// referencesUnresolvedImport is the heuristic spec §4.6 calls for: a
// CommonJS-style `require(...)` call left over in a body (import/export
// statements themselves are already rejected at parse time, so this is
// the only shape an "unresolved import" can still take).
func referencesUnresolvedImport(body string) bool {
	return requireCallRe.MatchString(body)
}
