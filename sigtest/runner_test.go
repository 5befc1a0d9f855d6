package sigtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjs-lang/tjs/lexer"
)

func TestRunExplicitTests_PassAndFail(t *testing.T) {
	src := `
function double(x: 5) -> 10 { return x * 2; }

test 'doubles a positive number' {
  expect(double(3)).toBe(6);
}

test 'wrongly expects a string' {
  expect(double(3)).toBe('nope');
}
`
	pre, err := lexer.Preprocess(src)
	require.NoError(t, err)

	report, err := RunExplicitTests(pre)
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 1, report.Failed)
}

func TestRunExplicitTests_MockRunsBeforeTests(t *testing.T) {
	src := `
var flag = false;
function readFlag() -> true { return flag; }

mock {
  flag = true;
}

test 'sees the mocked flag' {
  expect(readFlag()).toBeTruthy();
}
`
	pre, err := lexer.Preprocess(src)
	require.NoError(t, err)

	report, err := RunExplicitTests(pre)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 0, report.Failed)
}

func TestRunExplicitTests_ToThrow(t *testing.T) {
	src := `
test 'detects a throw' {
  expect(function(){ throw new Error('bang'); }).toThrow();
}
`
	pre, err := lexer.Preprocess(src)
	require.NoError(t, err)

	report, err := RunExplicitTests(pre)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Passed)
}
