package sketch

import (
	"bytes"
	"io"
	"os"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	sketchkit "github.com/reoring/sketchkit"
	"github.com/reoring/sketchkit/model"
)

// ErrConfig is returned for configuration that does not parse or validate.
var ErrConfig = errors.New("invalid configuration")

// Stamps are the application stamps written into the meta entry of new
// documents.
type Stamps struct {
	CompatibilityVersion int    `yaml:"compatibilityVersion"`
	Build                int    `yaml:"build"`
	App                  string `yaml:"app"`
	Variant              string `yaml:"variant"`
	Commit               string `yaml:"commit"`
	Version              int    `yaml:"version"`
	AppVersion           string `yaml:"appVersion"`
}

func (s Stamps) apply(m *model.CreateMeta) {
	m.CompatibilityVersion = s.CompatibilityVersion
	m.Build = s.Build
	m.App = s.App
	m.Variant = s.Variant
	m.Commit = s.Commit
	m.Version = s.Version
	m.AppVersion = s.AppVersion
}

// Config controls loading and saving.
type Config struct {
	// Unknown decides what happens to keys the schema does not declare.
	Unknown sketchkit.UnknownPolicy `yaml:"unknown"`
	// Encode selects preserving or canonical output for loaded entries.
	Encode sketchkit.EncodeMode `yaml:"encode"`
	Stamps Stamps              `yaml:"stamps"`
	// PreviewSize is the side of the blank preview written when none is set.
	PreviewSize int `yaml:"previewSize"`
	// MaxPreviewSide bounds the preview set through SetPreview.
	MaxPreviewSide int `yaml:"maxPreviewSide"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		Unknown: sketchkit.UnknownStrict,
		Encode:  sketchkit.EncodePreserve,
		Stamps: Stamps{
			CompatibilityVersion: model.DefaultCompatibilityVersion,
			Build:                model.DefaultBuild,
			App:                  model.DefaultApp,
			Variant:              model.DefaultVariant,
			Commit:               model.DefaultCommit,
			Version:              model.DefaultVersion,
			AppVersion:           model.DefaultAppVersion,
		},
		PreviewSize:    100,
		MaxPreviewSide: 2048,
	}
}

// LoadConfig reads a YAML configuration file. Keys not set in the file keep
// their DefaultConfig value.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.WithStack(err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// ParseConfig parses YAML configuration over DefaultConfig. Unknown keys are
// rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Errorf("%w: %s", ErrConfig, err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.PreviewSize <= 0 {
		return errors.Errorf("%w: previewSize must be positive, got %d", ErrConfig, c.PreviewSize)
	}
	if c.MaxPreviewSide < c.PreviewSize {
		return errors.Errorf("%w: maxPreviewSide %d is below previewSize %d", ErrConfig, c.MaxPreviewSide, c.PreviewSize)
	}
	return nil
}
