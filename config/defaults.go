// Copyright © 2026 Tapdrawer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the tapdrawer configuration file.

package config

func applyDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("input", Section{
		"max_tap_distance":     400.0,
		"velocity_interval_ms": 30,
		"velocity_friction":    0.85,
		"mousewheel_speed":     10.0,
	})
	cfg.RegisterDefaults("drawer", Section{
		"sort_by_usage": true,
	})
}
