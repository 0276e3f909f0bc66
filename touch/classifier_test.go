// Copyright 2026 Tapdrawer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package touch

import (
	"reflect"
	"testing"
	"time"

	"tapdrawer/geom"
)

const testTapDistanceSq = 400.0 // 20 unit radius

var base = time.Unix(1000, 0)

func at(ms int) time.Time {
	return base.Add(time.Duration(ms) * time.Millisecond)
}

func newTestClassifier() *Classifier {
	return NewClassifier(testTapDistanceSq, 30*time.Millisecond)
}

// feed runs a fixed event sequence and collects all emitted results.
func feed(c *Classifier, events []Event) []Result {
	var out []Result
	for _, ev := range events {
		if res, ok := c.Feed(ev); ok {
			out = append(out, res)
		}
	}
	return out
}

func TestTapWithoutMove(t *testing.T) {
	c := newTestClassifier()
	results := feed(c, []Event{
		{Contact: 1, Kind: KindDown, Pos: geom.Pt(0, 0), Time: at(0)},
		{Contact: 1, Kind: KindUp, Time: at(50)},
	})

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Kind != ResultTap || results[0].Pos != geom.Pt(0, 0) {
		t.Errorf("got %v at %v, want Tap at (0,0)", results[0].Kind, results[0].Pos)
	}
	if c.Live() != 0 {
		t.Errorf("Live = %d after Up, want 0", c.Live())
	}
}

func TestTapWithJitterWithinThreshold(t *testing.T) {
	c := newTestClassifier()
	results := feed(c, []Event{
		{Contact: 1, Kind: KindDown, Pos: geom.Pt(100, 100), Time: at(0)},
		{Contact: 1, Kind: KindMove, Pos: geom.Pt(105, 103), Time: at(10)},
		{Contact: 1, Kind: KindMove, Pos: geom.Pt(110, 110), Time: at(20)},
		{Contact: 1, Kind: KindMove, Pos: geom.Pt(95, 95), Time: at(30)},
		{Contact: 1, Kind: KindUp, Time: at(40)},
	})

	if len(results) != 1 {
		t.Fatalf("got %d results, want exactly one Tap", len(results))
	}
	if results[0].Kind != ResultTap {
		t.Fatalf("got %v, want Tap", results[0].Kind)
	}
	// The tap is reported at the down-position, not the last sample.
	if results[0].Pos != geom.Pt(100, 100) {
		t.Errorf("tap at %v, want down-position (100,100)", results[0].Pos)
	}
}

func TestDragCrossingThreshold(t *testing.T) {
	c := newTestClassifier()
	results := feed(c, []Event{
		{Contact: 1, Kind: KindDown, Pos: geom.Pt(0, 0), Time: at(0)},
		{Contact: 1, Kind: KindMove, Pos: geom.Pt(0, 25), Time: at(10)},
		{Contact: 1, Kind: KindUp, Time: at(20)},
	})

	if len(results) != 2 {
		t.Fatalf("got %d results, want DragDelta + DragEnd", len(results))
	}
	if results[0].Kind != ResultDragDelta || results[0].Delta != geom.Pt(0, 25) {
		t.Errorf("got %v delta %v, want DragDelta (0,25)", results[0].Kind, results[0].Delta)
	}
	if results[1].Kind != ResultDragEnd {
		t.Fatalf("got %v, want DragEnd", results[1].Kind)
	}
	if results[1].Velocity.IsZero() {
		t.Error("DragEnd velocity is zero for a fast flick")
	}
	for _, r := range results {
		if r.Kind == ResultTap {
			t.Error("drag sequence emitted a Tap")
		}
	}
}

func TestDragEmitsIncrementalDeltas(t *testing.T) {
	c := newTestClassifier()
	results := feed(c, []Event{
		{Contact: 1, Kind: KindDown, Pos: geom.Pt(0, 0), Time: at(0)},
		{Contact: 1, Kind: KindMove, Pos: geom.Pt(0, 30), Time: at(10)},
		{Contact: 1, Kind: KindMove, Pos: geom.Pt(0, 45), Time: at(20)},
		{Contact: 1, Kind: KindMove, Pos: geom.Pt(0, 40), Time: at(30)},
	})

	want := []geom.Point{{X: 0, Y: 30}, {X: 0, Y: 15}, {X: 0, Y: -5}}
	if len(results) != len(want) {
		t.Fatalf("got %d deltas, want %d", len(results), len(want))
	}
	for i, r := range results {
		if r.Kind != ResultDragDelta || r.Delta != want[i] {
			t.Errorf("result %d: %v delta %v, want DragDelta %v", i, r.Kind, r.Delta, want[i])
		}
	}
}

func TestThresholdCrossedOnLastMoveIsNotATap(t *testing.T) {
	c := newTestClassifier()
	results := feed(c, []Event{
		{Contact: 1, Kind: KindDown, Pos: geom.Pt(0, 0), Time: at(0)},
		{Contact: 1, Kind: KindMove, Pos: geom.Pt(0, 21), Time: at(10)},
		{Contact: 1, Kind: KindUp, Time: at(15)},
	})

	// Committing to Dragging on the crossing is final: no retroactive tap.
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Kind != ResultDragDelta || results[1].Kind != ResultDragEnd {
		t.Errorf("got %v, %v, want DragDelta, DragEnd", results[0].Kind, results[1].Kind)
	}
}

func TestExactThresholdStaysTap(t *testing.T) {
	c := newTestClassifier()
	results := feed(c, []Event{
		{Contact: 1, Kind: KindDown, Pos: geom.Pt(0, 0), Time: at(0)},
		{Contact: 1, Kind: KindMove, Pos: geom.Pt(0, 20), Time: at(10)}, // squared = exactly 400
		{Contact: 1, Kind: KindUp, Time: at(20)},
	})

	if len(results) != 1 || results[0].Kind != ResultTap {
		t.Fatalf("displacement at the threshold must still be a tap, got %v", results)
	}
}

func TestCancelOnTapPathEmitsNothing(t *testing.T) {
	c := newTestClassifier()
	results := feed(c, []Event{
		{Contact: 1, Kind: KindDown, Pos: geom.Pt(0, 0), Time: at(0)},
		{Contact: 1, Kind: KindMove, Pos: geom.Pt(3, 3), Time: at(10)},
		{Contact: 1, Kind: KindCancel, Time: at(20)},
	})

	if len(results) != 0 {
		t.Fatalf("cancelled tap emitted %v, want nothing", results)
	}
	if c.Live() != 0 {
		t.Errorf("Live = %d after Cancel, want 0", c.Live())
	}
}

func TestCancelOnDragPathStopsDead(t *testing.T) {
	c := newTestClassifier()
	results := feed(c, []Event{
		{Contact: 1, Kind: KindDown, Pos: geom.Pt(0, 0), Time: at(0)},
		{Contact: 1, Kind: KindMove, Pos: geom.Pt(0, 50), Time: at(10)},
		{Contact: 1, Kind: KindCancel, Time: at(20)},
	})

	if len(results) != 2 {
		t.Fatalf("got %d results, want DragDelta + DragEnd", len(results))
	}
	last := results[len(results)-1]
	if last.Kind != ResultDragEnd || !last.Velocity.IsZero() {
		t.Errorf("got %v velocity %v, want DragEnd with zero velocity", last.Kind, last.Velocity)
	}
}

func TestMalformedOrderingIsDropped(t *testing.T) {
	c := newTestClassifier()

	if _, ok := c.Feed(Event{Contact: 1, Kind: KindMove, Pos: geom.Pt(5, 5), Time: at(0)}); ok {
		t.Error("Move before Down produced a result")
	}
	if _, ok := c.Feed(Event{Contact: 1, Kind: KindUp, Time: at(10)}); ok {
		t.Error("Up before Down produced a result")
	}
	if _, ok := c.Feed(Event{Contact: 1, Kind: KindCancel, Time: at(20)}); ok {
		t.Error("Cancel before Down produced a result")
	}

	// A second Down for a live contact must not restart the sequence.
	c.Feed(Event{Contact: 1, Kind: KindDown, Pos: geom.Pt(0, 0), Time: at(30)})
	c.Feed(Event{Contact: 1, Kind: KindDown, Pos: geom.Pt(500, 500), Time: at(40)})
	res, ok := c.Feed(Event{Contact: 1, Kind: KindUp, Time: at(50)})
	if !ok || res.Kind != ResultTap || res.Pos != geom.Pt(0, 0) {
		t.Errorf("got %v at %v, want Tap at original down-position", res.Kind, res.Pos)
	}
}

func TestContactsAreIndependent(t *testing.T) {
	c := newTestClassifier()
	results := feed(c, []Event{
		{Contact: 1, Kind: KindDown, Pos: geom.Pt(0, 0), Time: at(0)},
		{Contact: 2, Kind: KindDown, Pos: geom.Pt(200, 200), Time: at(5)},
		{Contact: 2, Kind: KindMove, Pos: geom.Pt(200, 260), Time: at(15)},
		{Contact: 1, Kind: KindUp, Time: at(20)},
		{Contact: 2, Kind: KindUp, Time: at(25)},
	})

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].Kind != ResultDragDelta || results[0].Contact != 2 {
		t.Errorf("result 0: %v contact %d, want DragDelta on contact 2", results[0].Kind, results[0].Contact)
	}
	if results[1].Kind != ResultTap || results[1].Contact != 1 {
		t.Errorf("result 1: %v contact %d, want Tap on contact 1", results[1].Kind, results[1].Contact)
	}
	if results[2].Kind != ResultDragEnd || results[2].Contact != 2 {
		t.Errorf("result 2: %v contact %d, want DragEnd on contact 2", results[2].Kind, results[2].Contact)
	}
}

func TestDeterministicReplay(t *testing.T) {
	events := []Event{
		{Contact: 1, Kind: KindDown, Pos: geom.Pt(10, 10), Time: at(0)},
		{Contact: 1, Kind: KindMove, Pos: geom.Pt(10, 40), Time: at(12)},
		{Contact: 1, Kind: KindMove, Pos: geom.Pt(10, 90), Time: at(37)},
		{Contact: 1, Kind: KindMove, Pos: geom.Pt(10, 130), Time: at(71)},
		{Contact: 1, Kind: KindUp, Time: at(80)},
	}

	first := feed(newTestClassifier(), events)
	second := feed(newTestClassifier(), events)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("replay diverged:\n first: %v\nsecond: %v", first, second)
	}
}
