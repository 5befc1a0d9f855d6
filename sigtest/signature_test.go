package sigtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjs-lang/tjs/lexer"
	"github.com/tjs-lang/tjs/parser"
	"github.com/tjs-lang/tjs/types"
)

func preprocessAndParse(t *testing.T, src string) (*parser.Program, *lexer.Result) {
	t.Helper()
	pre, err := lexer.Preprocess(src)
	require.NoError(t, err)
	prog, err := parser.Parse(pre.Source)
	require.NoError(t, err)
	return prog, pre
}

func TestBuildSignature_SimpleDouble(t *testing.T) {
	prog, pre := preprocessAndParse(t, "function double(x: 5) -> 10 { return x * 2; }")
	fn := prog.FindFunction("double")
	require.NotNil(t, fn)

	sig, err := BuildSignature(fn, pre)
	require.NoError(t, err)
	assert.Equal(t, types.KindInteger, sig.Parameters["x"].Type.Kind)
	assert.True(t, sig.Parameters["x"].Required)
	assert.Equal(t, types.KindInteger, sig.Returns.Kind)
}

func TestRunFunctionSignatureTest_Passes(t *testing.T) {
	prog, pre := preprocessAndParse(t, "function double(x: 5) -> 10 { return x * 2; }")
	fn := prog.FindFunction("double")

	res, _, err := RunFunctionSignatureTest(context.Background(), fn, pre)
	require.NoError(t, err)
	assert.True(t, res.Passed)
	assert.False(t, res.Skipped)
}

func TestRunFunctionSignatureTest_MismatchFails(t *testing.T) {
	prog, pre := preprocessAndParse(t, "function bad(x: 5) -> 10 { return 'oops'; }")
	fn := prog.FindFunction("bad")

	res, _, err := RunFunctionSignatureTest(context.Background(), fn, pre)
	require.NoError(t, err)
	assert.False(t, res.Passed)
	assert.Contains(t, res.Error, "Expected")
}

func TestRunFunctionSignatureTest_SkipsOnSkipPolicy(t *testing.T) {
	prog, pre := preprocessAndParse(t, "function f(x: 5) -! 10 { return 'whatever'; }")
	fn := prog.FindFunction("f")

	res, _, err := RunFunctionSignatureTest(context.Background(), fn, pre)
	require.NoError(t, err)
	assert.True(t, res.Passed)
	assert.True(t, res.Skipped)
}

func TestRunFunctionSignatureTest_SkipsAsync(t *testing.T) {
	prog, pre := preprocessAndParse(t, "async function f(x: 5) -> 10 { return x * 2; }")
	fn := prog.FindFunction("f")

	res, _, err := RunFunctionSignatureTest(context.Background(), fn, pre)
	require.NoError(t, err)
	assert.True(t, res.Skipped)
}

func TestRunModuleSignatureTests_BuildsSignatureMap(t *testing.T) {
	prog, pre := preprocessAndParse(t, "function double(x: 5) -> 10 { return x * 2; }")
	report, sigs, err := RunModuleSignatureTests(context.Background(), prog, pre)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 0, report.Failed)
	require.Contains(t, sigs, "double")
}
