// Package emitjs re-prints preprocessed TJS source back to plain
// JavaScript (spec §4.4): the source itself is untouched (it is already
// valid ECMAScript by the time package parser has validated it), but each
// function gains an inline parameter-validation prologue and a
// `fn.__tjs = {...}` metadata suffix describing its signature.
package emitjs

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tjs-lang/tjs/lexer"
	"github.com/tjs-lang/tjs/parser"
	"github.com/tjs-lang/tjs/types"
)

// Options configures Emit.
type Options struct {
	// Filename is embedded in debug-mode source locations.
	Filename string
	// Debug adds a "source": "file:line:col" field to each function's
	// metadata (spec §4.4 step 4).
	Debug bool
}

type insertion struct {
	at   int
	text string
}

// Emit renders prog/pre/sigs to a single JavaScript source string. sigs
// must contain an entry for every function in prog (as returned by
// sigtest.RunModuleSignatureTests).
func Emit(prog *parser.Program, pre *lexer.Result, sigs map[string]*types.FunctionSignature, opts Options) (string, error) {
	var insertions []insertion
	for _, fn := range prog.Functions {
		sig, ok := sigs[fn.Name]
		if !ok {
			return "", fmt.Errorf("emitjs: no signature recorded for function %q", fn.Name)
		}
		braceOpen := fn.Loc.End - len(fn.Body)
		if prologue := buildPrologue(sig, pre); prologue != "" {
			insertions = append(insertions, insertion{at: braceOpen + 1, text: "\n" + prologue})
		}
		insertions = append(insertions, insertion{at: fn.Loc.End, text: "\n" + buildMetadata(fn, sig, opts)})
	}
	sort.SliceStable(insertions, func(i, j int) bool { return insertions[i].at < insertions[j].at })

	var b strings.Builder
	cursor := 0
	for _, ins := range insertions {
		b.WriteString(pre.Source[cursor:ins.at])
		b.WriteString(ins.text)
		cursor = ins.at
	}
	b.WriteString(pre.Source[cursor:])
	return b.String(), nil
}

// buildPrologue emits the safety-matrix input checks (spec §4.4 step 1):
// skipped entirely for an unsafe function or a module under `safety
// none`; otherwise each parameter gets an upstream-error passthrough, a
// missing-required check, and a typeof-based type check.
func buildPrologue(sig *types.FunctionSignature, pre *lexer.Result) string {
	if pre.ModuleSafety == "none" || sig.Unsafe {
		return ""
	}
	var lines []string
	for _, name := range sig.ParamOrder {
		p := sig.Parameters[name]
		lines = append(lines, fmt.Sprintf("if (__tjs.isError(%s)) return %s;", name, name))
		if p.Required {
			lines = append(lines, fmt.Sprintf(
				"if (%s === undefined) return __tjs.error(\"Missing required parameter '%s'\");", name, name))
		}
		if check := typeofCheckExpr(name, p.Type); check != "" {
			lines = append(lines, fmt.Sprintf(
				"if (%s !== undefined && (%s)) return __tjs.typeError(%s, %s, %s);",
				name, check, mustJSON(name), mustJSON(string(p.Type.Kind)), name))
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// typeofCheckExpr renders the "is this value NOT of the declared kind"
// boolean expression the prologue guards on. Union and any types have no
// single typeof test and are left unchecked here; they still run through
// the signature-test runner's CheckType at compile time.
func typeofCheckExpr(name string, t *types.Type) string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case types.KindString:
		return fmt.Sprintf("typeof %s !== 'string'", name)
	case types.KindNumber, types.KindInteger:
		return fmt.Sprintf("typeof %s !== 'number'", name)
	case types.KindBoolean:
		return fmt.Sprintf("typeof %s !== 'boolean'", name)
	case types.KindNull:
		return fmt.Sprintf("%s !== null", name)
	case types.KindArray:
		return fmt.Sprintf("!Array.isArray(%s)", name)
	case types.KindObject:
		return fmt.Sprintf("(typeof %s !== 'object' || %s === null || Array.isArray(%s))", name, name, name)
	default:
		return ""
	}
}

func buildMetadata(fn *parser.FunctionDecl, sig *types.FunctionSignature, opts Options) string {
	var b strings.Builder
	b.WriteString(fn.Name)
	b.WriteString(".__tjs = {params: {")
	for i, name := range sig.ParamOrder {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(mustJSON(name))
		b.WriteString(":")
		b.WriteString(paramSpecJSON(sig.Parameters[name]))
	}
	b.WriteString("}")
	if sig.Returns != nil {
		b.WriteString(",returns:")
		b.WriteString(mustJSON(sig.Returns))
	}
	if sig.Safe {
		b.WriteString(",safe:true")
	}
	if sig.Unsafe {
		b.WriteString(",unsafe:true")
	}
	if sig.SafeReturn {
		b.WriteString(",safeReturn:true")
	}
	if sig.UnsafeReturn {
		b.WriteString(",unsafeReturn:true")
	}
	if sig.Description != "" {
		b.WriteString(",description:")
		b.WriteString(mustJSON(sig.Description))
	}
	if opts.Debug {
		b.WriteString(",source:")
		b.WriteString(mustJSON(fmt.Sprintf("%s:%d:%d", opts.Filename, fn.Loc.Line, fn.Loc.Column)))
	}
	b.WriteString("};")
	return b.String()
}

func paramSpecJSON(p *types.ParamSpec) string {
	var b strings.Builder
	b.WriteString("{type:")
	b.WriteString(mustJSON(p.Type))
	b.WriteString(",required:")
	b.WriteString(strconv.FormatBool(p.Required))
	if p.Default != nil {
		b.WriteString(",default:")
		b.WriteString(mustJSON(p.Default))
	}
	if p.Example != nil {
		b.WriteString(",example:")
		b.WriteString(mustJSON(p.Example))
	}
	if p.Description != "" {
		b.WriteString(",description:")
		b.WriteString(mustJSON(p.Description))
	}
	b.WriteString("}")
	return b.String()
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(data)
}
