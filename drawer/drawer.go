// Copyright © 2026 Tapdrawer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: drawer/drawer.go
// Summary: The drawer view: touch classification, scrolling, and tap
// dispatch over the icon grid.
// Usage: The windowing frontend feeds pointer events and drives Tick at
// the velocity interval; the renderer reads Offset and Entries per frame.
// Notes: Single-threaded by contract, like the rest of the core.

package drawer

import (
	"log"
	"sort"

	"tapdrawer/config"
	"tapdrawer/geom"
	"tapdrawer/grid"
	"tapdrawer/scroll"
	"tapdrawer/touch"
	"tapdrawer/xdg"
)

// SystemControl executes the builtin poweroff/reboot entries.
type SystemControl interface {
	PowerOff() error
	Reboot() error
}

// Spawner starts a launched application.
type Spawner interface {
	Spawn(execLine string) error
}

// StateStore persists launch counts and hidden overrides.
type StateStore interface {
	RecordLaunch(id string) error
	Counts() (map[string]int, error)
	SetHidden(id string, hidden bool) error
	Hidden() (map[string]bool, error)
}

// Options configures a Drawer.
type Options struct {
	Input   config.Input
	Entries []xdg.Entry

	System  SystemControl
	Spawner Spawner
	State   StateStore // optional

	// SortByUsage orders the grid by launch count, most used first.
	SortByUsage bool

	// OnLaunched is called after a successful spawn so the host can exit.
	OnLaunched func(entry xdg.Entry)
}

// Drawer owns the scrollable application grid and interprets touch input
// against it. Exactly one velocity producer moves the scroll offset at
// any instant: either a live drag or the kinetic animation, never both.
type Drawer struct {
	input      config.Input
	classifier *touch.Classifier
	kinetic    *touch.Kinetic
	scroll     *scroll.Store
	grid       grid.Grid
	size       geom.Size

	entries []xdg.Entry
	hidden  map[string]bool
	counts  map[string]int

	settings bool
	dirty    bool

	system     SystemControl
	spawner    Spawner
	state      StateStore
	onLaunched func(xdg.Entry)

	sortByUsage bool
}

// New creates a drawer. The input values must already be validated by the
// config package. Call Resize before feeding events.
func New(opts Options) *Drawer {
	d := &Drawer{
		input:       opts.Input,
		classifier:  touch.NewClassifier(opts.Input.MaxTapDistance, opts.Input.VelocityInterval),
		kinetic:     touch.NewKinetic(opts.Input.VelocityFriction, touch.DefaultStopEpsilon),
		scroll:      scroll.NewStore(),
		entries:     opts.Entries,
		hidden:      make(map[string]bool),
		counts:      make(map[string]int),
		system:      opts.System,
		spawner:     opts.Spawner,
		state:       opts.State,
		onLaunched:  opts.OnLaunched,
		sortByUsage: opts.SortByUsage,
	}

	for _, e := range opts.Entries {
		if e.Hidden {
			d.hidden[e.ID] = true
		}
	}
	if d.state != nil {
		if hidden, err := d.state.Hidden(); err != nil {
			log.Printf("Drawer: Failed to load hidden overrides: %v", err)
		} else {
			for id, h := range hidden {
				d.hidden[id] = h
			}
		}
		if counts, err := d.state.Counts(); err != nil {
			log.Printf("Drawer: Failed to load usage counts: %v", err)
		} else {
			d.counts = counts
		}
	}
	return d
}

// Resize rebuilds the grid layout and scroll bounds for a new viewport.
func (d *Drawer) Resize(size geom.Size) {
	d.size = size
	d.grid = grid.New(size)
	d.updateBounds()
	d.dirty = true
}

// Grid returns the current layout for the render collaborator.
func (d *Drawer) Grid() grid.Grid {
	return d.grid
}

// Offset returns the current scroll offset, read once per frame.
func (d *Drawer) Offset() geom.Point {
	return d.scroll.Offset()
}

// Animating reports whether a kinetic animation is in flight; the host
// keeps ticking while it is.
func (d *Drawer) Animating() bool {
	return d.kinetic.Active()
}

// SettingsMode reports whether the drawer is in settings mode, where
// hidden entries are shown and taps toggle visibility.
func (d *Drawer) SettingsMode() bool {
	return d.settings
}

// Dirty reports whether the view changed since the last Drawn call.
func (d *Drawer) Dirty() bool {
	return d.dirty
}

// Drawn marks the current state as rendered.
func (d *Drawer) Drawn() {
	d.dirty = false
}

// Entries returns the grid entries in display order: every entry in
// settings mode, only visible ones otherwise, optionally sorted by usage.
func (d *Drawer) Entries() []xdg.Entry {
	var out []xdg.Entry
	for _, e := range d.entries {
		if d.settings || !d.hidden[e.ID] {
			out = append(out, e)
		}
	}
	if d.sortByUsage {
		// Stable: ties keep the name order from discovery.
		sortByCountDesc(out, d.counts)
	}
	return out
}

// IsHidden reports the current hidden flag for an entry, for the
// settings-mode renderer.
func (d *Drawer) IsHidden(id string) bool {
	return d.hidden[id]
}

// FeedEvent consumes one raw pointer sample from the windowing layer.
// A new contact cancels any in-flight kinetic animation before the event
// reaches the classifier.
func (d *Drawer) FeedEvent(ev touch.Event) {
	if ev.Kind == touch.KindDown {
		d.kinetic.Cancel()
	}

	res, ok := d.classifier.Feed(ev)
	if !ok {
		return
	}
	switch res.Kind {
	case touch.ResultTap:
		d.handleTap(res.Pos)
	case touch.ResultDragDelta:
		if d.scroll.ApplyDelta(res.Delta) {
			d.dirty = true
		}
	case touch.ResultDragEnd:
		d.kinetic.Start(res.Velocity)
	}
}

// FeedWheel applies one mouse wheel step, scaled by the configured
// multiplier. Wheel input scrolls directly and never flings.
func (d *Drawer) FeedWheel(steps float64) {
	d.kinetic.Cancel()
	if d.scroll.ApplyDelta(geom.Pt(0, steps*d.input.MousewheelSpeed)) {
		d.dirty = true
	}
}

// Tick advances the kinetic animation by one interval and reports whether
// it is still running. Scheduled by the host loop; never blocks.
func (d *Drawer) Tick() bool {
	before := d.scroll.Offset()
	active := d.kinetic.Tick(d.scroll)
	if d.scroll.Offset() != before {
		d.dirty = true
	}
	return active
}

// handleTap maps a tap position to a grid cell and dispatches it.
func (d *Drawer) handleTap(pos geom.Point) {
	content := pos.Sub(d.scroll.Offset())
	index := d.grid.IndexAt(content)
	if index < 0 {
		return
	}

	switch index {
	case grid.IndexPoweroff:
		if d.settings {
			return
		}
		if err := d.system.PowerOff(); err != nil {
			log.Printf("Drawer: Shutdown failed: %v", err)
		}
	case grid.IndexSettings:
		d.settings = !d.settings
		d.updateBounds()
		d.dirty = true
	case grid.IndexReboot:
		if d.settings {
			return
		}
		if err := d.system.Reboot(); err != nil {
			log.Printf("Drawer: Reboot failed: %v", err)
		}
	default:
		entries := d.Entries()
		i := index - grid.BuiltinCount
		if i >= len(entries) {
			return
		}
		if d.settings {
			d.toggleHidden(entries[i])
		} else {
			d.launch(entries[i])
		}
	}
}

func (d *Drawer) launch(entry xdg.Entry) {
	if err := d.spawner.Spawn(entry.Exec); err != nil {
		log.Printf("Drawer: Process launch failed: %v", err)
		return
	}
	d.counts[entry.ID]++
	if d.state != nil {
		if err := d.state.RecordLaunch(entry.ID); err != nil {
			log.Printf("Drawer: Failed to record launch: %v", err)
		}
	}
	if d.onLaunched != nil {
		d.onLaunched(entry)
	}
}

func (d *Drawer) toggleHidden(entry xdg.Entry) {
	hidden := !d.hidden[entry.ID]
	d.hidden[entry.ID] = hidden
	if d.state != nil {
		if err := d.state.SetHidden(entry.ID, hidden); err != nil {
			log.Printf("Drawer: Failed to persist hidden flag: %v", err)
		}
	}
	d.updateBounds()
	d.dirty = true
}

// updateBounds recomputes the scrollable range from the displayed entry
// count. The offset scrolls negative, original position at zero.
func (d *Drawer) updateBounds() {
	maxScroll := d.grid.MaxScroll(len(d.Entries()))
	d.scroll.SetBounds(geom.Pt(0, -maxScroll), geom.Pt(0, 0))
}

func sortByCountDesc(entries []xdg.Entry, counts map[string]int) {
	sort.SliceStable(entries, func(i, j int) bool {
		return counts[entries[i].ID] > counts[entries[j].ID]
	})
}
