// Package config holds the conversion settings shared by the whole
// tool.
package config

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ConfigurationError reports a setting that cannot drive a
// conversion.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration %s: %s", e.Field, e.Reason)
}

type Settings struct {
	// Source and requested output sampling rates in frames per
	// second. The effective output rate is clamped to the source
	// rate; the converter never upsamples.
	SourceRate int `yaml:"source_rate"`
	TargetRate int `yaml:"target_rate"`

	// Subtract the first frame's horizontal translation from every
	// frame so the animation starts above the origin.
	CenterOnOrigin bool `yaml:"center_on_origin"`
}

func Default() Settings {
	return Settings{
		SourceRate:     30,
		TargetRate:     30,
		CenterOnOrigin: true,
	}
}

func (s Settings) Validate() error {
	if s.SourceRate <= 0 {
		return &ConfigurationError{Field: "source_rate", Reason: fmt.Sprintf("must be positive, got %d", s.SourceRate)}
	}
	if s.TargetRate <= 0 {
		return &ConfigurationError{Field: "target_rate", Reason: fmt.Sprintf("must be positive, got %d", s.TargetRate)}
	}
	return nil
}

// EffectiveTargetRate is the target rate after the never-upsample
// clamp.
func (s Settings) EffectiveTargetRate() int {
	if s.TargetRate > s.SourceRate {
		return s.SourceRate
	}
	return s.TargetRate
}

// LoadFile reads a YAML settings file over the defaults, so a partial
// file only overrides what it names.
func LoadFile(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return s, errors.Wrapf(err, "failed to read settings %q", path)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, errors.Wrapf(err, "failed to parse settings %q", path)
	}
	return s, s.Validate()
}
