// Package atomir lowers a parsed function body (package parser) into a
// small structural IR of "atoms": blocks, conditionals, loops, try/catch,
// variable declarations, and statement/return expressions. The VM (package
// vm) walks this tree rather than a full ECMAScript AST, charging fuel per
// node visited (spec §5) — only the leaf expression text (arithmetic,
// property access, capability/builtin calls) is still JS, evaluated
// on-demand through an embedded goja runtime. This keeps the fuel-metering
// granularity at the level spec §5 describes ("per atom") without
// reimplementing a full JS evaluator in Go.
package atomir

// Kind identifies the structural shape of a Node.
type Kind string

const (
	KindBlock    Kind = "block"
	KindIf       Kind = "if"
	KindReturn   Kind = "return"
	KindVarDecl  Kind = "varDecl"
	KindExprStmt Kind = "exprStmt"
	KindWhile    Kind = "while"
	KindForOf    Kind = "forOf"
	KindForIn    Kind = "forIn"
	KindTryCatch Kind = "tryCatch"
	KindBreak    Kind = "break"
	KindContinue Kind = "continue"
	KindEmpty    Kind = "empty"
)

// VarEntry is one `name = init` binding in a var/let/const declaration.
type VarEntry struct {
	Name string
	Init string // JS expression text, "" if uninitialized
}

// Node is one atom in the lowered tree. Only the fields relevant to Kind
// are populated; this mirrors the teacher's own discriminated-record style
// for tool/event payloads (one struct, kind-tagged, sparse fields) rather
// than a Go interface-per-node-type hierarchy, since the VM only ever
// switches on Kind and a visitor interface would just duplicate that
// switch at every call site.
type Node struct {
	Kind Kind

	// KindBlock
	Children []*Node

	// KindIf
	Cond string
	Then *Node
	Else *Node

	// KindReturn / KindExprStmt
	Expr string

	// KindVarDecl
	Decls   []VarEntry
	IsConst bool // true for `const`, false for `let`/`var`

	// KindWhile
	// (Cond above is reused for the loop condition, Body below for its body)

	// KindForOf / KindForIn
	Binding  string
	Iterable string
	Body     *Node

	// KindTryCatch
	Try        *Node
	Catch      *Node
	CatchParam string
}
