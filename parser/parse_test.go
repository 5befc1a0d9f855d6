package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjs-lang/tjs/lexer"
)

func TestParse_SimpleFunction(t *testing.T) {
	prog, err := Parse(`function add(a = 1, b = 2) {
  return a + b;
}`)
	require.NoError(t, err)
	require.Len(t, prog.Functions, 1)
	fn := prog.Functions[0]
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	assert.Equal(t, "b", fn.Params[1].Name)
	assert.False(t, fn.IsAsync)
}

func TestParse_AsyncFunction(t *testing.T) {
	prog, err := Parse(`async function fetchThing(id = "x") {
  return await get(id);
}`)
	require.NoError(t, err)
	require.Len(t, prog.Functions, 1)
	assert.True(t, prog.Functions[0].IsAsync)
}

func TestParse_JSDocAttachment(t *testing.T) {
	src := `/**
 * Adds two numbers together.
 * @param {number} a the first addend
 * @param {number} b the second addend
 * @returns {number} the sum
 */
function add(a = 1, b = 2) {
  return a + b;
}`
	prog, err := Parse(src)
	require.NoError(t, err)
	fn := prog.FindFunction("add")
	require.NotNil(t, fn)
	require.NotNil(t, fn.Doc)
	assert.Contains(t, fn.Doc.Description, "Adds two numbers")
	require.Len(t, fn.Doc.Tags, 3)
	assert.Equal(t, "param", fn.Doc.Tags[0].Name)
	assert.Equal(t, "number", fn.Doc.Tags[0].Type)
}

func TestParse_TerseDocComment(t *testing.T) {
	src := `/*# sums a list */
function sum(xs = [1,2,3]) {
  return xs.reduce((a,b) => a+b, 0);
}`
	prog, err := Parse(src)
	require.NoError(t, err)
	fn := prog.FindFunction("sum")
	require.NotNil(t, fn)
	require.NotNil(t, fn.Doc)
	assert.True(t, fn.Doc.Terse)
	assert.Contains(t, fn.Doc.Description, "sums a list")
}

func TestParse_RejectsClass(t *testing.T) {
	_, err := Parse(`class Foo {}`)
	require.Error(t, err)
}

func TestParse_RejectsImportExport(t *testing.T) {
	_, err := Parse(`import { x } from "y";`)
	require.Error(t, err)

	_, err = Parse(`export function f() { return 1; }`)
	require.Error(t, err)
}

func TestParse_RejectsThrowAndSwitch(t *testing.T) {
	_, err := Parse(`function f() { throw new Error("x"); }`)
	require.Error(t, err)

	_, err = Parse(`function f(x = 1) { switch (x) { default: return x; } }`)
	require.Error(t, err)
}

func TestParse_RejectsCStyleFor(t *testing.T) {
	_, err := Parse(`function f() { for (let i = 0; i < 10; i++) { } }`)
	require.Error(t, err)
}

func TestParse_AllowsForOfAndForIn(t *testing.T) {
	_, err := Parse(`function f(xs = [1]) { for (const x of xs) { } }`)
	require.NoError(t, err)

	_, err = Parse(`function f(o = {}) { for (const k in o) { } }`)
	require.NoError(t, err)
}

func TestParse_InvalidSyntaxIsSyntaxError(t *testing.T) {
	_, err := Parse(`function f( { return 1; }`)
	require.Error(t, err)
	var se *lexer.SyntaxError
	require.ErrorAs(t, err, &se)
}
