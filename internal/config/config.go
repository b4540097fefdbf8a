// Package config loads the CLI's optional YAML defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds defaults for CLI flags which are tedious to repeat.
type Config struct {
	Domain              string
	Statement           string
	Armor               bool
	LegacyKeyConversion bool
	LogFormat           string
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Domain:    "localhost",
		Statement: "Sign in with your wallet.",
		LogFormat: "text",
	}
}

type fileConfig struct {
	Domain              string `yaml:"domain"`
	Statement           string `yaml:"statement"`
	Armor               *bool  `yaml:"armor"`
	LegacyKeyConversion *bool  `yaml:"legacy_key_conversion"`
	LogFormat           string `yaml:"log_format"`
}

// Load reads the YAML file at path and merges it over the defaults. An empty path returns the
// defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	var parsed fileConfig

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&parsed); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	merge(&cfg, parsed)

	return cfg, nil
}

func merge(dst *Config, src fileConfig) {
	if src.Domain != "" {
		dst.Domain = src.Domain
	}

	if src.Statement != "" {
		dst.Statement = src.Statement
	}

	if src.Armor != nil {
		dst.Armor = *src.Armor
	}

	if src.LegacyKeyConversion != nil {
		dst.LegacyKeyConversion = *src.LegacyKeyConversion
	}

	if src.LogFormat != "" {
		dst.LogFormat = src.LogFormat
	}
}
