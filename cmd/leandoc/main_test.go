package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbc60/leandoc/internal/messages"
)

func resetCLI() {
	CLI.AST = false
	CLI.Output = ""
	CLI.Template = "plain"
	CLI.TemplateFile = ""
	CLI.NoRaw = false
	CLI.Verbose = false
	CLI.Input = ""
}

func TestRunTranslatesFileToTypstOutputFile(t *testing.T) {
	resetCLI()
	t.Cleanup(resetCLI)

	dir := t.TempDir()
	in := filepath.Join(dir, "doc.adoc")
	require.NoError(t, os.WriteFile(in, []byte("= Title\n\nHello.\n"), 0o644))
	out := filepath.Join(dir, "doc.typ")

	CLI.Input = in
	CLI.Output = out

	assert.Equal(t, exitOK, run())

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(got), "= Title")
	assert.Contains(t, string(got), "Hello.")
}

func TestRunDumpsASTWhenFlagSet(t *testing.T) {
	resetCLI()
	t.Cleanup(resetCLI)

	dir := t.TempDir()
	in := filepath.Join(dir, "doc.adoc")
	require.NoError(t, os.WriteFile(in, []byte("Body.\n"), 0o644))
	out := filepath.Join(dir, "doc.json")

	CLI.Input = in
	CLI.Output = out
	CLI.AST = true

	assert.Equal(t, exitOK, run())

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(got), `"type"`)
}

func TestRunReturnsFaultExitOnParseError(t *testing.T) {
	resetCLI()
	t.Cleanup(resetCLI)

	dir := t.TempDir()
	in := filepath.Join(dir, "doc.adoc")
	require.NoError(t, os.WriteFile(in, []byte("[[dangling]]\n"), 0o644))

	CLI.Input = in

	assert.Equal(t, exitFault, run())
}

func TestRunReturnsUsageExitOnMissingFile(t *testing.T) {
	resetCLI()
	t.Cleanup(resetCLI)

	CLI.Input = filepath.Join(t.TempDir(), "missing.adoc")

	assert.Equal(t, exitUsage, run())
}

func TestFormatFaultPrefixesErrorKind(t *testing.T) {
	err := messages.NewParseError(2, 4, messages.ErrOrphanMetadata, "dangling metadata run")
	assert.Equal(t, "ErrOrphanMetadata: 2:4: dangling metadata run", formatFault(err))
}

func TestReadInputReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.adoc")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))

	text, err := readInput(path)
	require.NoError(t, err)
	assert.Equal(t, "content", text)
}

func TestWriteOutputToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.typ")
	require.NoError(t, writeOutput(path, "= Title\n"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "= Title\n", string(got))
}
