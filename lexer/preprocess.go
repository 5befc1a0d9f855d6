// Package lexer implements the TJS preprocessor (spec §4.1): a sequence of
// line/string-level passes that run before syntactic parsing, each
// idempotent on its own output. No comparable macro-preprocessor exists
// among the retrieved example repositories (they parse real JS/Go source
// directly), so this package is built directly from spec §4.1's numbered
// algorithm using the standard library's string/regexp facilities —
// documented as the justified stdlib exception in DESIGN.md.
package lexer

import "fmt"

// TestBlock is a lifted `test`/`mock` block (spec §4.1 step 6).
type TestBlock struct {
	Description string
	Body        string
	IsMock      bool
	Line        int
}

// Result is the preprocessor's output (spec §4.1 "Outputs").
type Result struct {
	Source           string
	ReturnType       string // raw example expression text, e.g. "10"
	ReturnPolicy     string // "->", "-?", "-!", or "" if absent
	RequiredParams   []string
	UnsafeFunctions  map[string]bool
	SafeFunctions    map[string]bool
	ModuleSafety     string // "none", "inputs", "all", or ""
	Tests            []TestBlock
	Mocks            []TestBlock
	WasmBlocks       []string
	TestErrors       []error

	original string
}

// Preprocess runs all passes in spec §4.1's order and returns the combined
// Result, or a *SyntaxError on the first irrecoverable failure (duplicate
// parameter names, a required parameter after an optional one, or an
// unterminated block).
func Preprocess(source string) (*Result, error) {
	r := &Result{
		UnsafeFunctions: make(map[string]bool),
		SafeFunctions:   make(map[string]bool),
		original:        source,
	}

	src := source

	src, r.ModuleSafety = extractSafetyDirective(src)

	src, err := extractMarkers(src, r)
	if err != nil {
		return nil, err
	}

	src, r.ReturnType, r.ReturnPolicy = extractReturnType(src)

	src, err = rewriteParams(src, r)
	if err != nil {
		return nil, err
	}

	src, err = rewriteDeclarations(src)
	if err != nil {
		return nil, err
	}

	src, err = extractTests(src, r)
	if err != nil {
		return nil, err
	}

	src, err = wrapTryWithoutCatch(src)
	if err != nil {
		return nil, err
	}

	src, r.WasmBlocks, err = wrapUnsafeBlocks(src)
	if err != nil {
		return nil, err
	}

	src = rewriteIdentityOperators(src)

	r.Source = src
	return r, nil
}

func syntaxErrAt(original string, pos int, kind, msg string) error {
	line, col := lineColOf(original, pos)
	return newSyntaxError(original, kind, msg, line, col)
}

func dupParamError(original string, pos int, name string) error {
	return syntaxErrAt(original, pos, "duplicate-param", fmt.Sprintf("duplicate parameter %q", name))
}

func requiredAfterOptionalError(original string, pos int, name string) error {
	return syntaxErrAt(original, pos, "required-after-optional", fmt.Sprintf("required parameter %q follows an optional parameter", name))
}
