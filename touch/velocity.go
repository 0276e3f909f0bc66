// Copyright © 2026 Tapdrawer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: touch/velocity.go
// Summary: Tick-based velocity estimation for drag release.
// Notes: Driven solely by event timestamps so runs are reproducible.

package touch

import (
	"time"

	"tapdrawer/geom"
)

// Estimator maintains a smoothed per-axis velocity estimate for one touch
// sequence, in units per tick. Sampling is tick-based rather than
// event-based: raw events arrive at irregular, bursty rates, so the
// displacement since the last tick boundary is scaled down to one tick
// interval whenever a boundary is crossed. Only the latest two tick
// velocities are retained; older history would just blunt direction
// reversals.
type Estimator struct {
	interval time.Duration

	start Sample // first raw sample of the sequence
	tick  Sample // sample at the last completed tick boundary
	last  Sample // most recent raw sample

	vel   geom.Point // latest tick velocity
	prev  geom.Point // previous tick velocity
	ticks int        // completed tick samples, capped at 2
	moved bool
}

// NewEstimator creates an estimator with the given tick interval.
// The interval must be positive; config validation enforces this upstream.
func NewEstimator(interval time.Duration) *Estimator {
	return &Estimator{interval: interval}
}

// Reset starts a new sequence at the given sample. All history is
// discarded; a sequence that never moves reports exactly zero velocity.
func (e *Estimator) Reset(t time.Time, pos geom.Point) {
	s := Sample{Time: t, Pos: pos}
	e.start, e.tick, e.last = s, s, s
	e.vel, e.prev = geom.Point{}, geom.Point{}
	e.ticks = 0
	e.moved = false
}

// Observe records a raw position sample. If at least one tick interval has
// elapsed since the last boundary, the accumulated displacement is folded
// into a new tick velocity.
func (e *Estimator) Observe(t time.Time, pos geom.Point) {
	if pos != e.last.Pos {
		e.moved = true
	}
	e.last = Sample{Time: t, Pos: pos}

	elapsed := t.Sub(e.tick.Time)
	if elapsed < e.interval {
		return
	}
	// Scale the displacement over the elapsed span down to one tick.
	scale := float64(e.interval) / float64(elapsed)
	e.prev, e.vel = e.vel, pos.Sub(e.tick.Pos).Mul(scale)
	if e.ticks < 2 {
		e.ticks++
	}
	e.tick = e.last
}

// Velocity returns the smoothed release velocity in units per tick as of
// the given time (normally the Up timestamp).
//
// If the sequence ended before a single full tick elapsed, the estimate
// falls back to first-to-last displacement over elapsed wall time so a
// deliberate short flick does not report zero. Conversely, when a full
// interval has passed since the last boundary, the tail displacement
// supersedes older tick samples: a finger held still before release
// reports zero here instead of flinging with stale velocity.
func (e *Estimator) Velocity(now time.Time) geom.Point {
	if !e.moved {
		return geom.Point{}
	}

	if elapsed := now.Sub(e.tick.Time); e.ticks > 0 && elapsed >= e.interval {
		scale := float64(e.interval) / float64(elapsed)
		return e.last.Pos.Sub(e.tick.Pos).Mul(scale)
	}

	switch e.ticks {
	case 0:
		elapsed := e.last.Time.Sub(e.start.Time)
		if elapsed <= 0 {
			return geom.Point{}
		}
		scale := float64(e.interval) / float64(elapsed)
		return e.last.Pos.Sub(e.start.Pos).Mul(scale)
	case 1:
		return e.vel
	default:
		return e.vel.Add(e.prev).Div(2)
	}
}
