// Copyright © 2026 Tapdrawer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/frontend/term/frontend.go
// Summary: Terminal frontend for the drawer, used for development and as
// the reference host loop. Mouse button drags stand in for touch contacts.
// Usage: cmd/tapdrawer runs this when no compositor is attached.

package term

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"tapdrawer/drawer"
	"tapdrawer/geom"
	"tapdrawer/grid"
	"tapdrawer/touch"
)

// One terminal cell covers this many layout units, so a 96x112 grid cell
// renders as a 6x4 block of characters.
const (
	unitsPerCellX = 16
	unitsPerCellY = 28
)

// Frontend drives a Drawer from a tcell screen: pointer events in, cell
// grid out. It owns the event loop and the kinetic tick schedule.
type Frontend struct {
	screen tcell.Screen
	drawer *drawer.Drawer
	tick   time.Duration

	quit chan struct{}

	lastButtons tcell.ButtonMask
	contact     int32
}

// New wraps a screen around the given drawer. tick is the velocity
// interval from the input config; the kinetic animation advances once per
// tick.
func New(screen tcell.Screen, d *drawer.Drawer, tick time.Duration) *Frontend {
	return &Frontend{
		screen: screen,
		drawer: d,
		tick:   tick,
		quit:   make(chan struct{}),
	}
}

// Stop terminates the event loop. Safe to call more than once.
func (f *Frontend) Stop() {
	select {
	case <-f.quit:
	default:
		close(f.quit)
	}
}

// Run initializes the screen and blocks in the event loop until Stop, a
// quit key, or a successful launch ends it.
func (f *Frontend) Run() error {
	if err := f.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer f.screen.Fini()

	f.screen.EnableMouse()
	f.screen.SetStyle(tcell.StyleDefault)
	f.screen.HideCursor()
	f.resize()

	// ChannelEvents exits on quit or screen teardown and closes the
	// channel, so the poller never leaks blocked on a send.
	eventChan := make(chan tcell.Event, 10)
	go f.screen.ChannelEvents(eventChan, f.quit)

	ticker := time.NewTicker(f.tick)
	defer ticker.Stop()

	f.draw()
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			f.handleEvent(ev)
			if f.drawer.Dirty() {
				f.draw()
			}
		case <-ticker.C:
			f.drawer.Tick()
			if f.drawer.Dirty() {
				f.draw()
			}
		case <-f.quit:
			return nil
		}
	}
}

func (f *Frontend) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		f.screen.Sync()
		f.resize()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
			f.Stop()
		}
	case *tcell.EventMouse:
		f.handleMouse(ev)
	}
}

// handleMouse translates Button1 press/drag/release edges into touch
// events. Wheel masks bypass the classifier and scroll directly.
func (f *Frontend) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	if dy := wheelDeltaFromMask(buttons); dy != 0 {
		// Wheel down reveals lower content, which is a negative delta.
		f.drawer.FeedWheel(float64(-dy))
		return
	}

	prev := f.lastButtons
	f.lastButtons = buttons

	held := buttons&tcell.Button1 != 0
	was := prev&tcell.Button1 != 0
	if !held && !was {
		return
	}

	pos := geom.Pt(float64(x*unitsPerCellX), float64(y*unitsPerCellY))
	kind := touch.KindMove
	switch {
	case held && !was:
		f.contact++
		kind = touch.KindDown
	case !held && was:
		kind = touch.KindUp
	}
	f.drawer.FeedEvent(touch.Event{
		Contact: f.contact,
		Kind:    kind,
		Pos:     pos,
		Time:    ev.When(),
	})
}

func wheelDeltaFromMask(mask tcell.ButtonMask) int {
	dy := 0
	if mask&tcell.WheelUp != 0 {
		dy--
	}
	if mask&tcell.WheelDown != 0 {
		dy++
	}
	return dy
}

func (f *Frontend) resize() {
	cols, rows := f.screen.Size()
	f.drawer.Resize(geom.Size{
		Width:  float64(cols * unitsPerCellX),
		Height: float64(rows * unitsPerCellY),
	})
}

func (f *Frontend) draw() {
	f.screen.Clear()

	offset := f.drawer.Offset()
	layout := f.drawer.Grid()
	_, rows := f.screen.Size()

	settings := f.drawer.SettingsMode()
	builtin := tcell.StyleDefault.Bold(true)
	f.drawTile(layout.Origin(grid.IndexPoweroff), offset, rows, "Power Off", builtin)
	f.drawTile(layout.Origin(grid.IndexSettings), offset, rows, "Settings", builtin.Reverse(settings))
	f.drawTile(layout.Origin(grid.IndexReboot), offset, rows, "Reboot", builtin)

	for i, e := range f.drawer.Entries() {
		style := tcell.StyleDefault
		if settings && f.drawer.IsHidden(e.ID) {
			style = style.Dim(true)
		}
		f.drawTile(layout.Origin(grid.BuiltinCount+i), offset, rows, e.Name, style)
	}

	f.screen.Show()
	f.drawer.Drawn()
}

// drawTile renders one grid cell as a bordered block with a centered,
// truncated label.
func (f *Frontend) drawTile(origin, offset geom.Point, screenRows int, label string, style tcell.Style) {
	x := int((origin.X + offset.X) / unitsPerCellX)
	y := int((origin.Y + offset.Y) / unitsPerCellY)
	const w = int(grid.DefaultEntryWidth) / unitsPerCellX
	const h = int(grid.DefaultEntryHeight) / unitsPerCellY

	if y+h < 0 || y >= screenRows {
		return
	}

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			ch := ' '
			switch {
			case (row == 0 || row == h-1) && (col == 0 || col == w-1):
				ch = '+'
			case row == 0 || row == h-1:
				ch = '-'
			case col == 0 || col == w-1:
				ch = '|'
			}
			f.screen.SetContent(x+col, y+row, ch, nil, style)
		}
	}

	text := runewidth.Truncate(label, w-2, "…")
	pad := (w - 2 - runewidth.StringWidth(text)) / 2
	for i, ch := range text {
		f.screen.SetContent(x+1+pad+runewidth.StringWidth(text[:i]), y+h/2, ch, nil, style)
	}
}
