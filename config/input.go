// Copyright © 2026 Tapdrawer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/input.go
// Summary: Typed, validated snapshot of the input configuration section.

package config

import (
	"fmt"
	"time"
)

// Input holds the validated touch-input tuning values.
type Input struct {
	// MaxTapDistance is the squared displacement, in layout units, above
	// which a touch sequence becomes a drag. Squared so digitizer noise
	// checks stay off the square-root path.
	MaxTapDistance float64

	// VelocityInterval is the tick cadence for velocity sampling and
	// kinetic animation.
	VelocityInterval time.Duration

	// VelocityFriction is the fraction of velocity retained per kinetic
	// tick, strictly inside (0, 1).
	VelocityFriction float64

	// MousewheelSpeed is the scroll multiplier for wheel input, which
	// arrives as discrete steps rather than touch deltas.
	MousewheelSpeed float64
}

// Input extracts and validates the input section. A friction at or above
// 1 would animate forever and one at or below 0 would die instantly, so
// both are configuration errors rather than values to clamp.
func (c Config) Input() (Input, error) {
	in := Input{
		MaxTapDistance:   c.GetFloat("input", "max_tap_distance", 400.0),
		VelocityInterval: time.Duration(c.GetInt("input", "velocity_interval_ms", 30)) * time.Millisecond,
		VelocityFriction: c.GetFloat("input", "velocity_friction", 0.85),
		MousewheelSpeed:  c.GetFloat("input", "mousewheel_speed", 10.0),
	}
	if err := in.Validate(); err != nil {
		return Input{}, err
	}
	return in, nil
}

// Validate reports the first out-of-range value.
func (in Input) Validate() error {
	if in.MaxTapDistance <= 0 {
		return fmt.Errorf("input.max_tap_distance must be positive, got %v", in.MaxTapDistance)
	}
	if in.VelocityInterval <= 0 {
		return fmt.Errorf("input.velocity_interval_ms must be positive, got %v", in.VelocityInterval)
	}
	if in.VelocityFriction <= 0 || in.VelocityFriction >= 1 {
		return fmt.Errorf("input.velocity_friction must be in (0, 1), got %v", in.VelocityFriction)
	}
	if in.MousewheelSpeed <= 0 {
		return fmt.Errorf("input.mousewheel_speed must be positive, got %v", in.MousewheelSpeed)
	}
	return nil
}
