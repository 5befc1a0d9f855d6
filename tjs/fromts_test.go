package tjs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTS_RequiredAndOptionalParams(t *testing.T) {
	ts := "function greet(name: string, loud?: boolean): string {\n  return name;\n}\n"
	out, err := FromTS(ts)
	require.NoError(t, err)
	assert.Contains(t, out, "name: ''")
	assert.Contains(t, out, "loud = false")
	assert.Contains(t, out, ") -! erased {")
}

func TestFromTS_ArrayAndObjectShapes(t *testing.T) {
	ts := "function process(tags: string[], meta: {a: string}): number {\n  return 0;\n}\n"
	out, err := FromTS(ts)
	require.NoError(t, err)
	assert.Contains(t, out, "tags: ['']")
	assert.Contains(t, out, "meta: {a:''}")
}

func TestFromTS_NullableUnion(t *testing.T) {
	ts := "function maybe(v: string | null): string {\n  return v;\n}\n"
	out, err := FromTS(ts)
	require.NoError(t, err)
	assert.Contains(t, out, "v: '' || null")
}

func TestFromTS_OutputFeedsPreprocessor(t *testing.T) {
	ts := "function double(n: number): number {\n  return n * 2;\n}\n"
	out, err := FromTS(ts)
	require.NoError(t, err)

	result, err := Transpile(out)
	require.NoError(t, err)
	assert.True(t, result.Signature.Parameters["n"].Required)
}

func TestFromTS_NoFunctionHeaderIsPassthrough(t *testing.T) {
	out, err := FromTS("const x = 1;\n")
	require.NoError(t, err)
	assert.Equal(t, "const x = 1;\n", out)
}
