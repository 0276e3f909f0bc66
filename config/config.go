// Copyright © 2026 Tapdrawer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: JSON configuration store for tapdrawer.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"syscall"
)

const configName = "tapdrawer.json"

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

// Load reads the user configuration, applying defaults for missing keys.
// A missing file is not an error: the defaults are written back so the
// user has a file to edit. Values out of valid range are reported here,
// at startup, never silently clamped later.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg, exists, err := readConfig(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyDefaults(cfg)

	if !exists {
		if err := writeConfig(path, cfg); err != nil {
			// Not fatal: the drawer still runs on defaults.
			log.Printf("Config: Failed to write default config %s: %v", path, err)
		}
	}

	if _, err := cfg.Input(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the user config file location.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "tapdrawer", configName), nil
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	// ENOTDIR means a path component is not a directory, so there is no
	// config file there either.
	if os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR) {
		return make(Config), false, nil
	}
	if err != nil {
		return make(Config), false, err
	}

	cfg := make(Config)
	if err := json.Unmarshal(data, &cfg); err != nil {
		return make(Config), true, err
	}
	return cfg, true, nil
}

func writeConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
