package sketch_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sketchkit "github.com/reoring/sketchkit"
	"github.com/reoring/sketchkit/model"
	"github.com/reoring/sketchkit/sketch"
)

func TestParseConfig(t *testing.T) {
	cfg, err := sketch.ParseConfig([]byte(`
unknown: passthrough
encode: canonical
previewSize: 64
stamps:
  appVersion: "99.1"
`))
	require.NoError(t, err)
	assert.Equal(t, sketchkit.UnknownPassthrough, cfg.Unknown)
	assert.Equal(t, sketchkit.EncodeCanonical, cfg.Encode)
	assert.Equal(t, 64, cfg.PreviewSize)
	assert.Equal(t, 2048, cfg.MaxPreviewSide, "unset keys keep their default")
	assert.Equal(t, "99.1", cfg.Stamps.AppVersion)
	assert.Equal(t, model.DefaultApp, cfg.Stamps.App)
}

func TestParseConfig_Empty(t *testing.T) {
	cfg, err := sketch.ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, sketch.DefaultConfig(), cfg)
}

func TestParseConfig_Rejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":      "colour: red\n",
		"bad policy":       "unknown: lenient\n",
		"negative preview": "previewSize: -1\n",
		"max below size":   "previewSize: 200\nmaxPreviewSide: 100\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := sketch.ParseConfig([]byte(in))
			assert.ErrorIs(t, err, sketch.ErrConfig)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sketchkit.yaml")
	require.NoError(t, os.WriteFile(file, []byte("encode: canonical\n"), 0o600))
	cfg, err := sketch.LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, sketchkit.EncodeCanonical, cfg.Encode)

	_, err = sketch.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNew_AppliesStamps(t *testing.T) {
	cfg := sketch.DefaultConfig()
	cfg.Stamps.AppVersion = "1.0"
	f := sketch.New(sketch.WithConfig(cfg))
	assert.Equal(t, "1.0", f.Meta.AppVersion)
	assert.Equal(t, "1.0", f.Meta.Created.AppVersion)
	require.Contains(t, f.User, model.DocumentID)
	h, ok := f.User[model.DocumentID].PageListHeight.Get()
	require.True(t, ok)
	assert.Equal(t, 110.0, h)
}
