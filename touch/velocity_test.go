// Copyright 2026 Tapdrawer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package touch

import (
	"math"
	"testing"
	"time"

	"tapdrawer/geom"
)

const testInterval = 30 * time.Millisecond

func approx(a, b geom.Point) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestVelocityZeroWithoutMovement(t *testing.T) {
	e := NewEstimator(testInterval)
	e.Reset(at(0), geom.Pt(50, 50))
	e.Observe(at(40), geom.Pt(50, 50))
	e.Observe(at(80), geom.Pt(50, 50))

	if v := e.Velocity(at(90)); !v.IsZero() {
		t.Errorf("Velocity = %v for stationary sequence, want exactly zero", v)
	}
}

func TestVelocityShortFlickFallback(t *testing.T) {
	e := NewEstimator(testInterval)
	e.Reset(at(0), geom.Pt(0, 0))
	e.Observe(at(10), geom.Pt(0, 25))

	// No full tick elapsed: first-to-last over wall time, scaled to one
	// tick. 25 units over 10ms at a 30ms interval is 75 units/tick.
	if v := e.Velocity(at(10)); !approx(v, geom.Pt(0, 75)) {
		t.Errorf("Velocity = %v, want (0,75)", v)
	}
}

func TestVelocityTickSampling(t *testing.T) {
	e := NewEstimator(testInterval)
	e.Reset(at(0), geom.Pt(0, 0))
	e.Observe(at(30), geom.Pt(0, 10))
	e.Observe(at(60), geom.Pt(0, 20))

	// Two completed ticks at 10 units each, averaged.
	if v := e.Velocity(at(60)); !approx(v, geom.Pt(0, 10)) {
		t.Errorf("Velocity = %v, want (0,10)", v)
	}
}

func TestVelocityIrregularSamplingScalesToTick(t *testing.T) {
	e := NewEstimator(testInterval)
	e.Reset(at(0), geom.Pt(0, 0))
	// One sample after two intervals: 30 units over 60ms is 15 units/tick.
	e.Observe(at(60), geom.Pt(0, 30))

	if v := e.Velocity(at(60)); !approx(v, geom.Pt(0, 15)) {
		t.Errorf("Velocity = %v, want (0,15)", v)
	}
}

func TestVelocityTracksDirectionReversal(t *testing.T) {
	e := NewEstimator(testInterval)
	e.Reset(at(0), geom.Pt(0, 0))
	e.Observe(at(30), geom.Pt(0, 10))
	e.Observe(at(60), geom.Pt(0, 20))
	e.Observe(at(90), geom.Pt(0, 10))
	e.Observe(at(120), geom.Pt(0, 0))

	// Only the last two tick velocities survive; the estimate must point
	// in the reversed direction.
	if v := e.Velocity(at(120)); !approx(v, geom.Pt(0, -10)) {
		t.Errorf("Velocity = %v, want (0,-10)", v)
	}
}

func TestVelocityStationaryHoldBeforeRelease(t *testing.T) {
	e := NewEstimator(testInterval)
	e.Reset(at(0), geom.Pt(0, 0))
	e.Observe(at(30), geom.Pt(0, 30))

	// The finger then rests for two full intervals before lifting. The
	// stationary tail supersedes the old tick, so no fling.
	if v := e.Velocity(at(90)); !v.IsZero() {
		t.Errorf("Velocity = %v after hold, want zero", v)
	}
}

func TestVelocityPerAxisIndependence(t *testing.T) {
	e := NewEstimator(testInterval)
	e.Reset(at(0), geom.Pt(0, 0))
	e.Observe(at(30), geom.Pt(12, -6))

	if v := e.Velocity(at(30)); !approx(v, geom.Pt(12, -6)) {
		t.Errorf("Velocity = %v, want (12,-6)", v)
	}
}

func TestVelocityResetDiscardsHistory(t *testing.T) {
	e := NewEstimator(testInterval)
	e.Reset(at(0), geom.Pt(0, 0))
	e.Observe(at(30), geom.Pt(0, 100))

	e.Reset(at(100), geom.Pt(0, 0))
	if v := e.Velocity(at(100)); !v.IsZero() {
		t.Errorf("Velocity = %v after Reset, want zero", v)
	}
}

func TestVelocitySameTimestampFlickIsZero(t *testing.T) {
	e := NewEstimator(testInterval)
	e.Reset(at(0), geom.Pt(0, 0))
	e.Observe(at(0), geom.Pt(0, 25))

	// Zero elapsed time cannot produce a finite velocity.
	if v := e.Velocity(at(0)); !v.IsZero() {
		t.Errorf("Velocity = %v for zero-duration flick, want zero", v)
	}
}
