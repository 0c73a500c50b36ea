// Package config loads the analysis configuration. Every knob has a
// default, so a data directory without an analysis.yaml runs with the
// standard heuristics.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/StefanVerhoef/solarroof/pkg/rank"
	"github.com/StefanVerhoef/solarroof/pkg/shading"
)

// FileName is the config file looked up inside a data directory.
const FileName = "analysis.yaml"

// SunObservation pins the analysis to a real sun position instead of
// the fixed default elevation.
type SunObservation struct {
	Time      time.Time `yaml:"time"`
	Latitude  float64   `yaml:"latitude"`
	Longitude float64   `yaml:"longitude"`
}

// Config is the full analysis configuration.
type Config struct {
	Weights rank.Weights    `yaml:"weights"`
	Shading shading.Config  `yaml:"shading"`
	Sun     *SunObservation `yaml:"sun,omitempty"`
	// Workers bounds the shading worker pool; 0 means one per CPU.
	Workers int `yaml:"workers"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Weights: rank.DefaultWeights(),
		Shading: shading.DefaultConfig(),
	}
}

// Load reads a config from a YAML file. Fields left out of the file
// keep their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadProject loads the analysis config from a data directory, falling
// back to defaults when the directory has no config file.
func LoadProject(dataDir string) (Config, error) {
	path := filepath.Join(dataDir, FileName)
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks the configuration for unusable values.
func (c Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if c.Shading.SearchRadius < 0 {
		return fmt.Errorf("shading.search_radius_m must be non-negative, got %g", c.Shading.SearchRadius)
	}
	if c.Shading.HeightDiffNormalizer <= 0 {
		return fmt.Errorf("shading.height_diff_normalizer must be positive, got %g", c.Shading.HeightDiffNormalizer)
	}
	if c.Shading.SizeFactorCap <= 0 {
		return fmt.Errorf("shading.size_factor_cap must be positive, got %g", c.Shading.SizeFactorCap)
	}
	return nil
}
