// Copyright © 2026 Tapdrawer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: touch/events.go
// Summary: Pointer sample and classification result types.
// Usage: The windowing collaborator feeds Events; the classifier emits Results.

package touch

import (
	"time"

	"tapdrawer/geom"
)

// EventKind identifies a raw pointer sample kind.
type EventKind int

const (
	// KindDown starts a touch sequence for a contact point.
	KindDown EventKind = iota
	// KindMove updates the position of a live contact.
	KindMove
	// KindUp ends a touch sequence normally.
	KindUp
	// KindCancel ends a touch sequence without a user action.
	KindCancel
)

func (k EventKind) String() string {
	switch k {
	case KindDown:
		return "Down"
	case KindMove:
		return "Move"
	case KindUp:
		return "Up"
	case KindCancel:
		return "Cancel"
	default:
		return "Unknown"
	}
}

// Event is one timestamped pointer sample from the windowing layer.
// Positions are absolute, in layout units. Timestamps must be monotonic
// per contact; the classifier never consults the wall clock.
type Event struct {
	Contact int32
	Kind    EventKind
	Pos     geom.Point
	Time    time.Time
}

// Sample is a timestamped position, immutable once created.
type Sample struct {
	Time time.Time
	Pos  geom.Point
}

// ResultKind identifies the classification outcome carried by a Result.
type ResultKind int

const (
	// ResultTap reports a contact that never left the tap radius.
	// Pos carries the down-position of the sequence.
	ResultTap ResultKind = iota
	// ResultDragDelta reports scroll displacement. The first delta of a
	// sequence carries the full accumulated displacement from the
	// down-position.
	ResultDragDelta
	// ResultDragEnd reports the end of a drag. Velocity carries the
	// smoothed release velocity in units per tick, zero for cancelled
	// sequences.
	ResultDragEnd
)

func (k ResultKind) String() string {
	switch k {
	case ResultTap:
		return "Tap"
	case ResultDragDelta:
		return "DragDelta"
	case ResultDragEnd:
		return "DragEnd"
	default:
		return "Unknown"
	}
}

// Result is the classifier output for one consumed event.
type Result struct {
	Kind     ResultKind
	Contact  int32
	Pos      geom.Point
	Delta    geom.Point
	Velocity geom.Point
}
