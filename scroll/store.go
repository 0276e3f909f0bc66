// Copyright © 2026 Tapdrawer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroll/store.go
// Summary: Single source of truth for the drawer scroll offset.
// Usage: Mutated by drag deltas and kinetic ticks, read once per frame.
// Notes: Single-threaded by contract; both mutators funnel through clamp.

package scroll

import "tapdrawer/geom"

// Store owns the current scroll offset and its valid range.
// It has exactly two mutators, ApplyDelta and TickKinetic, which share one
// clamp path so the offset can never leave [Min, Max].
type Store struct {
	state State
}

// NewStore creates a store with collapsed bounds (no scrollable range).
func NewStore() *Store {
	return &Store{state: NewState(geom.Point{}, geom.Point{})}
}

// State returns a snapshot of the current scroll state.
func (s *Store) State() State {
	return s.state
}

// Offset returns the current scroll offset.
func (s *Store) Offset() geom.Point {
	return s.state.Offset
}

// SetBounds updates the valid offset range and re-clamps the offset.
// Returns true if the offset moved as a result.
func (s *Store) SetBounds(min, max geom.Point) bool {
	old := s.state.Offset
	s.state = s.state.WithBounds(min, max)
	return s.state.Offset != old
}

// ApplyDelta shifts the offset by a direct drag delta, clamped into range.
// Returns true if the offset moved.
func (s *Store) ApplyDelta(d geom.Point) bool {
	moved, _, _ := s.shift(d)
	return moved
}

// TickKinetic shifts the offset by one kinetic velocity step and reports,
// per axis, whether the step was cut short by a boundary. The kinetic
// engine zeroes the velocity component on any clamped axis.
func (s *Store) TickKinetic(v geom.Point) (clampedX, clampedY bool) {
	_, clampedX, clampedY = s.shift(v)
	return clampedX, clampedY
}

// shift is the single clamp funnel shared by both mutators.
func (s *Store) shift(d geom.Point) (moved, clampedX, clampedY bool) {
	target := s.state.Offset.Add(d)
	clamped := target.Clamp(s.state.Min, s.state.Max)
	moved = clamped != s.state.Offset
	s.state.Offset = clamped
	return moved, clamped.X != target.X, clamped.Y != target.Y
}
