package tjs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranspile_SingleFunction(t *testing.T) {
	src := "function double(n: 1) -> 2 {\n  return n * 2;\n}\n"
	result, err := Transpile(src)
	require.NoError(t, err)
	require.NotNil(t, result.AST)
	require.NotNil(t, result.Signature)
	assert.Nil(t, result.Error)
	assert.True(t, result.Signature.Parameters["n"].Required)
}

func TestTranspile_RequiresSingleFunction(t *testing.T) {
	src := "function a(n: 1) -> 2 { return n; }\nfunction b(n: 1) -> 2 { return n; }\n"
	_, err := Transpile(src)
	assert.Error(t, err)
}

func TestTranspile_SignatureMismatchReportsError(t *testing.T) {
	src := "function bad(n: 1) -> \"string\" {\n  return n;\n}\n"
	result, err := Transpile(src)
	require.NoError(t, err)
	require.NotNil(t, result.Error)
	assert.Contains(t, result.Error.Message, "signature-test-failure")
}

func TestTranspileToJS_EmitsCodeAndTypes(t *testing.T) {
	src := "function double(n: 1) -> 2 {\n  return n * 2;\n}\n"
	result, err := TranspileToJS(src, Options{Filename: "double.tjs"})
	require.NoError(t, err)
	require.Nil(t, result.Error)
	assert.Contains(t, result.Code, "double.__tjs")
	require.Contains(t, result.Types, "double")
	assert.True(t, result.Types["double"].Parameters["n"].Required)
	require.NotNil(t, result.TestResults)
	assert.Equal(t, 0, result.TestResults.Failed)
}

func TestTranspileToJS_ReportDowngradesFailure(t *testing.T) {
	src := "function bad(n: 1) -> \"string\" {\n  return n;\n}\n"
	result, err := TranspileToJS(src, Options{RunTests: "report"})
	require.NoError(t, err)
	assert.Nil(t, result.Error)
	require.NotNil(t, result.TestResults)
	assert.Equal(t, 1, result.TestResults.Failed)
	assert.NotEmpty(t, result.Code)
}

func TestTranspileToJS_DangerouslySkipTests(t *testing.T) {
	src := "function bad(n: 1) -> \"string\" {\n  return n;\n}\n"
	result, err := TranspileToJS(src, Options{DangerouslySkipTests: true})
	require.NoError(t, err)
	assert.Nil(t, result.Error)
	assert.Nil(t, result.TestResults)
	assert.NotEmpty(t, result.Code)
}

func TestTjs_IsConvenienceWrapper(t *testing.T) {
	src := "function double(n: 1) -> 2 {\n  return n * 2;\n}\n"
	result, err := Tjs(src, Options{})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Code)
}
