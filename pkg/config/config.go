// Package config loads calclex settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/praetorian-inc/calclex/pkg/log"
	"github.com/praetorian-inc/calclex/pkg/types"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".calclex.yaml"

// Output formats.
const (
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatSARIF = "sarif"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds settings shared by the commands. Zero-valued fields in a
// file keep their defaults.
type Config struct {
	Filename      string    `yaml:"filename"`
	Format        string    `yaml:"format"`
	Color         string    `yaml:"color"`
	Datastore     string    `yaml:"datastore"`
	Extensions    []string  `yaml:"extensions,omitempty"`
	IncludeHidden bool      `yaml:"include_hidden"`
	MaxFileSize   int64     `yaml:"max_file_size"`
	Log           LogConfig `yaml:"log"`
}

// LogConfig selects the logger level and encoder.
type LogConfig struct {
	Level string `yaml:"level"`
	Env   string `yaml:"env"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Filename:    types.DefaultFilename,
		Format:      FormatHuman,
		Color:       ColorAuto,
		MaxFileSize: 10 * 1024 * 1024,
		Log: LogConfig{
			Level: "info",
			Env:   string(log.EnvDev),
		},
	}
}

// Load parses YAML bytes over the defaults and validates the result.
func Load(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads a config file. A missing file yields the defaults unless
// required is set.
func LoadFile(path string, required bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated fields and limits.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	switch cfg.Format {
	case FormatHuman, FormatJSON, FormatSARIF:
	default:
		return fmt.Errorf("invalid format %q (want human, json or sarif)", cfg.Format)
	}

	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color %q (want auto, always or never)", cfg.Color)
	}

	if cfg.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size must not be negative")
	}

	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		return err
	}
	switch log.Env(cfg.Log.Env) {
	case log.EnvDev, log.EnvProd, "":
	default:
		return fmt.Errorf("invalid log env %q (want dev or prod)", cfg.Log.Env)
	}

	for i, ext := range cfg.Extensions {
		if ext == "" {
			return fmt.Errorf("extensions[%d] is empty", i)
		}
		if !strings.HasPrefix(ext, ".") {
			cfg.Extensions[i] = "." + ext
		}
	}

	return nil
}
