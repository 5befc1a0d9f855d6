package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCompile_WritesFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "double.tjs")
	out := filepath.Join(dir, "double.js")
	require.NoError(t, os.WriteFile(src, []byte("function double(n: 1) -> 2 {\n  return n * 2;\n}\n"), 0o644))

	err := runCompile([]string{"-out", out, src})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "double.__tjs")
}

func TestRunRun_ExecutesWithInput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "double.tjs")
	require.NoError(t, os.WriteFile(src, []byte("function double(n: 1) -> 2 {\n  return n * 2;\n}\n"), 0o644))
	cfgPath := filepath.Join(dir, "missing.yaml")

	err := runRun([]string{"-config", cfgPath, "-input", `{"n": 21}`, src})
	require.NoError(t, err)
}

func TestRunTest_ReportsResults(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "double.tjs")
	require.NoError(t, os.WriteFile(src, []byte("function double(n: 1) -> 2 {\n  return n * 2;\n}\n"), 0o644))

	err := runTest([]string{src})
	require.NoError(t, err)
}
