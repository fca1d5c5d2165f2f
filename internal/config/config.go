package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/stateful/buatdocx/pkg/document"
)

const currentVersion = "v1"

// Config is the configuration of buatdocx read from buatdocx.yaml.
type Config struct {
	Version  string         `yaml:"version" validate:"required,eq=v1"`
	Document ConfigDocument `yaml:"document"`
	Export   ConfigExport   `yaml:"export"`
	Log      ConfigLog      `yaml:"log"`
}

// ConfigDocument holds default document properties. Properties
// found in a markdown frontmatter take precedence.
type ConfigDocument struct {
	Title       string `yaml:"title"`
	Creator     string `yaml:"creator"`
	Description string `yaml:"description"`
}

type ConfigExport struct {
	// TextSize is the size of text runs in half-points.
	TextSize      int    `yaml:"text_size" validate:"min=2,max=3276"`
	ThematicBreak bool   `yaml:"thematic_break"`
	OutputDir     string `yaml:"output_dir" validate:"required"`
}

type ConfigLog struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	Verbose bool   `yaml:"verbose"`
}

func (c *Config) Properties() document.Properties {
	return document.Properties{
		Title:       c.Document.Title,
		Creator:     c.Document.Creator,
		Description: c.Document.Description,
	}
}

// ParseYAML applies layers on top of the defaults in order.
// Keys missing from a layer keep their previous values.
func ParseYAML(layers ...[]byte) (*Config, error) {
	cfg := Default()
	for _, data := range layers {
		if err := applyYAML(cfg, data); err != nil {
			return nil, err
		}
	}
	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to validate config")
	}
	return cfg, nil
}

type versionOnly struct {
	Version string `yaml:"version"`
}

func parseVersionFromYAML(data []byte) (string, error) {
	var result versionOnly

	if err := yaml.Unmarshal(data, &result); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal version")
	}

	return result.Version, nil
}

func applyYAML(cfg *Config, data []byte) error {
	version, err := parseVersionFromYAML(data)
	if err != nil {
		return err
	}

	switch version {
	case currentVersion:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return errors.Wrap(err, "failed to unmarshal yaml")
		}
		return nil
	default:
		return errors.Errorf("unknown version: %q", version)
	}
}

var validate = validator.New()

func validateConfig(cfg *Config) error {
	return errors.WithStack(validate.Struct(cfg))
}
