// Package config loads the fix configuration tree. The file only ever
// decides which fixes are enabled and their numeric parameters; the
// engine itself never reads it.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config mirrors the YAML tree: a master switch gating everything and a
// per-fix subtree underneath.
type Config struct {
	Name         string `yaml:"name"`
	MasterEnable bool   `yaml:"masterEnable"`
	Fixes        Fixes  `yaml:"fixes"`
}

// Fixes holds the per-fix switches and parameters.
type Fixes struct {
	Textures Toggle `yaml:"textures"`
	Zoom     Zoom   `yaml:"zoom"`
}

// Toggle is a bare enable switch.
type Toggle struct {
	Enable bool `yaml:"enable"`
}

// Zoom enables the camera zoom fix and scales the camera distance by
// Factor.
type Zoom struct {
	Enable bool    `yaml:"enable"`
	Factor float64 `yaml:"factor"`
}

// Load reads and parses the configuration file. Loading happens exactly
// once, at startup, and the result is passed to every consumer instead
// of living in package state.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Fixes.Zoom.Factor == 0 {
		cfg.Fixes.Zoom.Factor = 1.0
	}
	return &cfg, nil
}
