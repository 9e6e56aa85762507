package container_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sketchkit "github.com/reoring/sketchkit"
	"github.com/reoring/sketchkit/container"
	"github.com/reoring/sketchkit/internal/engine"
)

func tree(t *testing.T, s string) any {
	t.Helper()
	v, err := engine.DecodeJSON([]byte(s))
	require.NoError(t, err)
	return v
}

func sample(t *testing.T) container.Contents {
	return container.Contents{
		"document.json":        tree(t, `{"_class":"document","do_objectID":"A","pages":[]}`),
		"meta.json":            tree(t, `{"version":101,"appVersion":"49.2"}`),
		"pages/P.json":         tree(t, `{"_class":"page","frame":{"x":1.5,"y":2}}`),
		"previews/preview.png": []byte{0x89, 'P', 'N', 'G'},
		"images/a.bin":         []byte("opaque"),
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	ctx := context.Background()
	in := sample(t)

	var buf bytes.Buffer
	require.NoError(t, container.Write(ctx, &buf, in))

	a, err := container.Read(ctx, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, in, a.Entries)
	assert.Empty(t, a.Warnings)

	names := make([]string, len(a.Info))
	for i, e := range a.Info {
		names[i] = e.Name
	}
	assert.Equal(t, in.Names(), names)
	assert.Equal(t, "images/a.bin", a.Info[1].Name)
	assert.Equal(t, int64(6), a.Info[1].Size)
	assert.Equal(t, "6 B", a.Info[1].HumanSize())
}

func TestWrite_Deterministic(t *testing.T) {
	ctx := context.Background()
	var a, b bytes.Buffer
	require.NoError(t, container.Write(ctx, &a, sample(t)))
	require.NoError(t, container.Write(ctx, &b, sample(t)))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestRead_NonSeekableReader(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	require.NoError(t, container.Write(ctx, &buf, sample(t)))

	a, err := container.Read(ctx, &buf)
	require.NoError(t, err)
	assert.Len(t, a.Entries, 5)
}

func TestRead_DuplicateKeysWarn(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	require.NoError(t, container.Write(ctx, &buf, container.Contents{
		"meta.json": []byte(`{"version":1,"version":2}`),
	}))

	a, err := container.Read(ctx, &buf)
	require.NoError(t, err)
	require.Len(t, a.Warnings, 1)
	w := a.Warnings[0]
	assert.Equal(t, sketchkit.CodeDuplicateKey, w.Code)
	assert.Equal(t, sketchkit.Warn, w.Severity)
	assert.Equal(t, "meta.json", w.Entry)
	assert.Equal(t, tree(t, `{"version":2}`), a.Entries["meta.json"])
}

func TestRead_MalformedJSON(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	require.NoError(t, container.Write(ctx, &buf, container.Contents{
		"document.json": []byte(`{"_class":`),
	}))

	_, err := container.Read(ctx, &buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, container.ErrMalformedEntry)
}

func TestWrite_RejectsNonBytes(t *testing.T) {
	err := container.Write(context.Background(), &bytes.Buffer{}, container.Contents{
		"images/x.png": map[string]any{},
	})
	assert.ErrorIs(t, err, container.ErrEntryValue)
}

func TestFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	file := filepath.Join(t.TempDir(), "out.sketch")
	require.NoError(t, container.WriteFile(ctx, file, sample(t)))

	a, err := container.ReadFile(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, sample(t), a.Entries)
	assert.Positive(t, a.TotalSize())

	_, err = container.ReadFile(ctx, filepath.Join(t.TempDir(), "missing.sketch"))
	assert.Error(t, err)
}
