// SPDX-FileCopyrightText: 2026 The opacity Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the YAML configuration for cmd/opacity-demo.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level opacity-demo configuration file.
type Config struct {
	Reader  ReaderConfig  `yaml:"reader"`
	Host    HostConfig    `yaml:"host"`
	Runtime RuntimeConfig `yaml:"runtime"`
}

// ReaderConfig names the PC/SC reader to connect to.
type ReaderConfig struct {
	Name string `yaml:"name"`
}

// HostConfig carries the deployment-configured host identifier.
type HostConfig struct {
	// IDHHex is the 8-byte host identifier, hex-encoded.
	IDHHex string `yaml:"idh_hex"`
}

// RuntimeConfig controls demo runtime behaviour.
type RuntimeConfig struct {
	// VerifyCVC enables the optional CVC verification hook.
	VerifyCVC *bool `yaml:"verify_cvc"`
	// LogLevel is a zerolog level name, e.g. "info" or "debug".
	LogLevel string `yaml:"log_level"`
}

// Load reads and validates the YAML config at path.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Host.IDHHex) == "" {
		return fmt.Errorf("config.host.idh_hex is required")
	}
	if len(c.Host.IDHHex) != 16 {
		return fmt.Errorf("config.host.idh_hex must decode to exactly 8 bytes")
	}
	if c.Runtime.VerifyCVC == nil {
		b := false
		c.Runtime.VerifyCVC = &b
	}
	if strings.TrimSpace(c.Runtime.LogLevel) == "" {
		c.Runtime.LogLevel = "info"
	}
	return nil
}
