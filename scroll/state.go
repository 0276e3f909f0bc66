// Copyright © 2026 Tapdrawer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroll/state.go
// Summary: Immutable scroll state snapshot with per-axis bounds.

package scroll

import "tapdrawer/geom"

// State is a snapshot of the scroll offset and its valid range.
// Offset is always within [Min, Max] on both axes.
type State struct {
	Offset geom.Point
	Min    geom.Point
	Max    geom.Point
}

// NewState creates a state with the given bounds and a zero offset,
// clamped into range. Bounds with Min > Max on an axis collapse to Max.
func NewState(min, max geom.Point) State {
	if min.X > max.X {
		min.X = max.X
	}
	if min.Y > max.Y {
		min.Y = max.Y
	}
	s := State{Min: min, Max: max}
	s.Offset = s.Offset.Clamp(min, max)
	return s
}

// WithBounds returns the state with new bounds, re-clamping the offset.
func (s State) WithBounds(min, max geom.Point) State {
	if min.X > max.X {
		min.X = max.X
	}
	if min.Y > max.Y {
		min.Y = max.Y
	}
	s.Min, s.Max = min, max
	s.Offset = s.Offset.Clamp(min, max)
	return s
}

// CanScroll reports whether there is any scrollable range on either axis.
func (s State) CanScroll() bool {
	return s.Min != s.Max
}
