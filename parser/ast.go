package parser

// SourceLocation is a byte-offset span plus 1-based line/column for
// diagnostics and for the emitter (spec §6) to reproduce formatting.
type SourceLocation struct {
	Start, End   int
	Line, Column int
}

// JSDocTag is one `@name {Type} rest` line inside a doc comment.
type JSDocTag struct {
	Name        string
	Type        string
	Description string
}

// Doc is a parsed documentation comment attached to a declaration, either
// the standard `/** ... */` JSDoc form or the terser `/*# ... */` form TJS
// also accepts for one-line function summaries.
type Doc struct {
	Raw         string
	Description string
	Tags        []JSDocTag
	Terse       bool // true for the `/*# */` form
}

// Param is one parameter in a function's parameter list, already passed
// through the preprocessor's colon-to-default rewriting (package lexer), so
// by the time the parser sees it, an example-typed parameter already reads
// as `name = example`.
type Param struct {
	Raw  string // the full parameter text, e.g. "count = 1" or "...rest"
	Name string
}

// FunctionDecl is a top-level (or nested) `function name(...) { ... }`
// declaration.
type FunctionDecl struct {
	Name     string
	Params   []Param
	Body     string // source text of the body, braces included
	Doc      *Doc
	Loc      SourceLocation
	IsAsync  bool
}

// Program is the parsed result for one TJS module after preprocessing:
// its source (as handed to the parser, i.e. lexer.Result.Source) and the
// named function declarations found in it, nested ones included. Other
// statements are not recorded separately; they remain only in Source.
type Program struct {
	Source    string
	Functions []*FunctionDecl
}

// FindFunction returns the first declared function with that name (nested
// or not), or nil.
func (p *Program) FindFunction(name string) *FunctionDecl {
	for _, f := range p.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}
