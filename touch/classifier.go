// Copyright © 2026 Tapdrawer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: touch/classifier.go
// Summary: Tap/drag disambiguation state machine for touch sequences.
// Usage: Feed raw pointer events; consume Tap/DragDelta/DragEnd results.
// Notes: One live sequence per contact id; malformed orderings are no-ops.

package touch

import (
	"log"
	"time"

	"tapdrawer/geom"
)

// Classifier decides, per touch sequence, whether the contact is a tap or
// a drag. A sequence starts Undecided; once its displacement from the
// down-position exceeds the tap threshold it commits to Dragging and is
// never reclassified. The comparison uses squared distance to keep the
// square root off the hot input path.
type Classifier struct {
	maxTapDistanceSq float64
	velocityInterval time.Duration
	contacts         map[int32]*sequence
}

type phase int

const (
	phaseUndecided phase = iota
	phaseDragging
)

// sequence tracks one live contact from Down to Up/Cancel.
type sequence struct {
	phase  phase
	origin geom.Point
	last   geom.Point
	est    *Estimator
}

// NewClassifier creates a classifier. maxTapDistanceSq is the squared
// displacement above which a sequence becomes a drag; velocityInterval is
// the tick cadence handed to each sequence's velocity estimator.
func NewClassifier(maxTapDistanceSq float64, velocityInterval time.Duration) *Classifier {
	return &Classifier{
		maxTapDistanceSq: maxTapDistanceSq,
		velocityInterval: velocityInterval,
		contacts:         make(map[int32]*sequence),
	}
}

// Live returns the number of active touch sequences.
func (c *Classifier) Live() int {
	return len(c.contacts)
}

// Feed consumes one pointer event and returns at most one result.
// Events for unknown contacts, and a Down for an already-live contact,
// are dropped: the sample feed is trusted to be mostly well-formed, and a
// transient glitch must never take the drawer down.
func (c *Classifier) Feed(ev Event) (Result, bool) {
	switch ev.Kind {
	case KindDown:
		if _, live := c.contacts[ev.Contact]; live {
			log.Printf("Touch: dropping Down for live contact %d", ev.Contact)
			return Result{}, false
		}
		est := NewEstimator(c.velocityInterval)
		est.Reset(ev.Time, ev.Pos)
		c.contacts[ev.Contact] = &sequence{origin: ev.Pos, last: ev.Pos, est: est}
		return Result{}, false

	case KindMove:
		seq, live := c.contacts[ev.Contact]
		if !live {
			log.Printf("Touch: dropping Move for unknown contact %d", ev.Contact)
			return Result{}, false
		}
		seq.est.Observe(ev.Time, ev.Pos)
		if seq.phase == phaseUndecided {
			disp := ev.Pos.Sub(seq.origin)
			if disp.LengthSquared() <= c.maxTapDistanceSq {
				seq.last = ev.Pos
				return Result{}, false
			}
			// Threshold crossed: commit to dragging and emit the full
			// accumulated displacement as the first delta.
			seq.phase = phaseDragging
			seq.last = ev.Pos
			return Result{Kind: ResultDragDelta, Contact: ev.Contact, Delta: disp}, true
		}
		delta := ev.Pos.Sub(seq.last)
		seq.last = ev.Pos
		return Result{Kind: ResultDragDelta, Contact: ev.Contact, Delta: delta}, true

	case KindUp:
		seq, live := c.contacts[ev.Contact]
		if !live {
			log.Printf("Touch: dropping Up for unknown contact %d", ev.Contact)
			return Result{}, false
		}
		delete(c.contacts, ev.Contact)
		if seq.phase == phaseUndecided {
			return Result{Kind: ResultTap, Contact: ev.Contact, Pos: seq.origin}, true
		}
		return Result{
			Kind:     ResultDragEnd,
			Contact:  ev.Contact,
			Velocity: seq.est.Velocity(ev.Time),
		}, true

	case KindCancel:
		seq, live := c.contacts[ev.Contact]
		if !live {
			return Result{}, false
		}
		delete(c.contacts, ev.Contact)
		if seq.phase == phaseDragging {
			// Cancelled drags stop dead rather than flinging.
			return Result{Kind: ResultDragEnd, Contact: ev.Contact}, true
		}
		// A cancelled contact must not launch anything.
		return Result{}, false
	}

	log.Printf("Touch: dropping event with unknown kind %d", ev.Kind)
	return Result{}, false
}
