package emitjs

import (
	"context"
	"strings"
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjs-lang/tjs/lexer"
	"github.com/tjs-lang/tjs/parser"
	"github.com/tjs-lang/tjs/sigtest"
)

func TestEmit_AddsPrologueAndMetadata(t *testing.T) {
	src := "function double(n: 1) -> 2 {\n  return n * 2;\n}\n"
	pre, err := lexer.Preprocess(src)
	require.NoError(t, err)
	prog, err := parser.Parse(pre.Source)
	require.NoError(t, err)
	_, sigs, err := sigtest.RunModuleSignatureTests(context.Background(), prog, pre)
	require.NoError(t, err)

	out, err := Emit(prog, pre, sigs, Options{Filename: "double.tjs"})
	require.NoError(t, err)
	assert.Contains(t, out, "__tjs.isError(n)")
	assert.Contains(t, out, "double.__tjs = {params:")
	assert.Contains(t, out, "required:true")
}

func TestEmit_ExecutesAsValidJS(t *testing.T) {
	src := "function double(n: 1) -> 2 {\n  return n * 2;\n}\n"
	pre, err := lexer.Preprocess(src)
	require.NoError(t, err)
	prog, err := parser.Parse(pre.Source)
	require.NoError(t, err)
	_, sigs, err := sigtest.RunModuleSignatureTests(context.Background(), prog, pre)
	require.NoError(t, err)

	out, err := Emit(prog, pre, sigs, Options{})
	require.NoError(t, err)

	rt := goja.New()
	_, err = rt.RunString(RuntimeHelpersJS)
	require.NoError(t, err)
	_, err = rt.RunString(out)
	require.NoError(t, err)

	v, err := rt.RunString("double(21)")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v.Export())

	missing, err := rt.RunString("double.__tjs.params.n.required")
	require.NoError(t, err)
	assert.True(t, missing.ToBoolean())
	assert.True(t, strings.Contains(out, "n"))
}
