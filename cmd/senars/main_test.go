package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeWiresKernelFromDefaults(t *testing.T) {
	comps, err := Initialize("")
	require.NoError(t, err)
	require.NotNil(t, comps.Kernel)
	assert.Equal(t, 8, comps.Config.Kernel.MaxDerivationDepth)
}

func TestInitializeAppliesConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "senars.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"kernel":{"max_derivation_depth":2}}`), 0644))

	comps, err := Initialize(path)
	require.NoError(t, err)
	assert.Equal(t, 2, comps.Config.Kernel.MaxDerivationDepth)
}

func TestRunRejectsNonOffLMFlag(t *testing.T) {
	code := run([]string{"--lm=gpt-4"})
	assert.Equal(t, 1, code)
}

func TestRunLoadsInputAndRunsCycles(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input.nal")
	require.NoError(t, os.WriteFile(inputPath, []byte("<man --> mortal>. %1.0;0.9%\n<Socrates --> man>. %1.0;0.8%\n"), 0644))

	code := run([]string{"--input=" + inputPath, "--cycles=5"})
	assert.Equal(t, 0, code)
}

func TestRunReportsParseErrorExitCode(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "bad.nal")
	require.NoError(t, os.WriteFile(inputPath, []byte("<raven --> bird>\n"), 0644))

	code := run([]string{"--input=" + inputPath})
	assert.Equal(t, 2, code)
}

func TestRunBenchExitsZeroWhenAllScenariosPass(t *testing.T) {
	dir := t.TempDir()
	code := run([]string{"--bench", "--bench-db=" + filepath.Join(dir, "bench.db")})
	assert.Equal(t, 0, code)
}
