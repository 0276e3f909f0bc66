// Copyright © 2026 Tapdrawer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: touch/kinetic.go
// Summary: Friction-decay kinetic scroll engine.
// Usage: Start with a release velocity; the host loop calls Tick each
// velocity interval until the animation reports itself finished.

package touch

import (
	"math"

	"tapdrawer/geom"
)

// DefaultStopEpsilon is the velocity magnitude below which a kinetic
// animation terminates instead of trailing off imperceptibly.
const DefaultStopEpsilon = 0.01

// Surface is the scrollable target of a kinetic animation. TickKinetic
// applies one velocity step through the surface's clamp and reports, per
// axis, whether a boundary cut the step short.
type Surface interface {
	TickKinetic(v geom.Point) (clampedX, clampedY bool)
}

// Kinetic animates scroll position after finger lift by applying an
// exponential friction decay, one step per scheduled tick:
//
//	offset += v
//	v *= friction
//
// Exponential decay gives the fast-then-slow curve expected of a flick,
// costs O(1) per tick, and composes trivially with re-interruption by a
// fresh touch. Reaching a boundary hard-stops that axis; there is no
// bounce.
type Kinetic struct {
	friction float64
	epsilon  float64
	vel      geom.Point
	active   bool
}

// NewKinetic creates an engine with the given friction coefficient
// (fraction of velocity retained per tick, in (0,1), validated upstream)
// and stop epsilon.
func NewKinetic(friction, epsilon float64) *Kinetic {
	return &Kinetic{friction: friction, epsilon: epsilon}
}

// Start begins an animation with the given release velocity in units per
// tick. Velocities already below the stop epsilon on both axes are
// ignored.
func (k *Kinetic) Start(v geom.Point) {
	if math.Abs(v.X) < k.epsilon && math.Abs(v.Y) < k.epsilon {
		return
	}
	k.vel = v
	k.active = true
}

// Cancel stops the animation immediately and discards remaining velocity.
// Called when a new Down arrives so that at most one producer moves the
// scroll offset at a time.
func (k *Kinetic) Cancel() {
	k.vel = geom.Point{}
	k.active = false
}

// Active reports whether an animation is in flight.
func (k *Kinetic) Active() bool {
	return k.active
}

// Velocity returns the current animation velocity in units per tick.
func (k *Kinetic) Velocity() geom.Point {
	return k.vel
}

// Tick advances the animation by one interval against the surface and
// reports whether the animation is still running. Axes clamped by the
// surface stop dead; once both axes fall below the stop epsilon the
// animation ends.
func (k *Kinetic) Tick(s Surface) bool {
	if !k.active {
		return false
	}

	clampedX, clampedY := s.TickKinetic(k.vel)
	if clampedX {
		k.vel.X = 0
	}
	if clampedY {
		k.vel.Y = 0
	}
	k.vel = k.vel.Mul(k.friction)

	if math.Abs(k.vel.X) < k.epsilon && math.Abs(k.vel.Y) < k.epsilon {
		k.Cancel()
	}
	return k.active
}
