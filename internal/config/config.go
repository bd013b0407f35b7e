// Package config loads graphdef configuration.
//
// Configuration is read from a single YAML file named by the --config flag
// or the GRAPHDEF_CONFIG environment variable. There is no discovery: with
// neither set, Default() is used. Command-line flags override file values.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable holding the config path.
const EnvVar = "GRAPHDEF_CONFIG"

// Output formats.
const (
	FormatText        = "text"
	FormatCBOR        = "cbor"
	FormatSafeTensors = "safetensors"
)

// Config is the graphdef configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Output configures what the CLI writes.
	Output OutputConfig `yaml:"output"`

	// Decode configures tensor decoding.
	Decode DecodeConfig `yaml:"decode"`
}

// OutputConfig configures CLI output.
type OutputConfig struct {
	// Format is "text" (one summary line per tensor), "cbor" or "safetensors".
	Format string `yaml:"format"`

	// Digest adds a BLAKE3 digest of each array to text output.
	Digest bool `yaml:"digest"`
}

// DecodeConfig configures tensor decoding.
type DecodeConfig struct {
	// LegacyFloatValues reads DT_FLOAT explicit values from int_val.
	LegacyFloatValues bool `yaml:"legacy_float_values"`

	// Workers bounds how many files are decoded concurrently.
	// Zero means one per CPU.
	Workers int `yaml:"workers"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Output: OutputConfig{
			Format: FormatText,
		},
	}
}

// Load reads the config at path. An empty path falls back to EnvVar, and
// to Default() when that is unset too. Fields absent from the file keep
// their default values.
//
// Load does not validate: callers merge overrides first, then call Validate.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	var errs []error
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.Output.Format {
	case FormatText, FormatCBOR, FormatSafeTensors:
	default:
		errs = append(errs, fmt.Errorf("output.format must be one of %q, %q, %q: got %q",
			FormatText, FormatCBOR, FormatSafeTensors, c.Output.Format))
	}
	if c.Decode.Workers < 0 {
		errs = append(errs, fmt.Errorf("decode.workers must be >= 0, got %d", c.Decode.Workers))
	}
	return errors.Join(errs...)
}

// ParseLevel maps a log level name to its slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
