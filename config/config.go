// Copyright 2026 The openreel Authors
// SPDX-License-Identifier: MIT

// Package config holds engine configuration loadable from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the tunables of one engine instance.
type Config struct {
	// FrameScale in (0, 1] uniformly shrinks the mapped frame to leave a
	// visual margin around it. 1 means no margin.
	FrameScale float64 `yaml:"frameScale"`

	// DevicePixelRatio converts host canvas units to device pixels.
	DevicePixelRatio float64 `yaml:"devicePixelRatio"`

	// BackgroundColor is the ambient surface background as a hex string.
	BackgroundColor string `yaml:"backgroundColor"`

	// Workers bounds concurrent element projections per rebuild.
	// 0 means one per CPU.
	Workers int `yaml:"workers"`

	// FrameGuide installs the frame boundary outline on resize.
	FrameGuide bool `yaml:"frameGuide"`

	// FontPath optionally points at a TTF/OTF file for text rendering.
	FontPath string `yaml:"fontPath"`
}

// Default returns the configuration used when the host supplies nothing.
func Default() Config {
	return Config{
		FrameScale:       1,
		DevicePixelRatio: 1,
		BackgroundColor:  "#000000",
	}
}

// Load reads and validates a YAML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

// Parse decodes and validates YAML configuration bytes. Unset fields take
// their defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c Config) Validate() error {
	if c.FrameScale <= 0 || c.FrameScale > 1 {
		return fmt.Errorf("config: frameScale %v outside (0, 1]", c.FrameScale)
	}
	if c.DevicePixelRatio <= 0 {
		return fmt.Errorf("config: devicePixelRatio %v must be positive", c.DevicePixelRatio)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers %d must not be negative", c.Workers)
	}
	if !validHex(c.BackgroundColor) {
		return fmt.Errorf("config: backgroundColor %q is not a hex color", c.BackgroundColor)
	}
	return nil
}

func validHex(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '#' {
		s = s[1:]
	}
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
