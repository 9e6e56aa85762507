package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestCommands(t *testing.T) {
	file := filepath.Join(t.TempDir(), "doc.sketch")
	run(t, "new", file, "--page", "Cover", "--page", "Screens")

	out := run(t, "inspect", file)
	assert.Contains(t, out, `page "Cover"`)
	assert.Contains(t, out, `page "Screens"`)
	assert.Contains(t, out, "document.json")
	assert.Contains(t, out, "previews/preview.png")

	out = run(t, "query", file, "$.pages[*].name")
	assert.JSONEq(t, `["Cover", "Screens"]`, out)

	copied := filepath.Join(t.TempDir(), "copy.sketch")
	out = run(t, "roundtrip", file, copied)
	assert.Contains(t, out, "no differences")
	assert.FileExists(t, copied)

	out = run(t, "schema", "--format", "jsonschema")
	assert.Contains(t, out, `"$defs"`)
}
