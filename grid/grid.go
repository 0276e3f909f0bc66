// Copyright © 2026 Tapdrawer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/grid.go
// Summary: Icon grid layout and hit testing for the drawer view.
// Usage: Rebuilt whenever the viewport resizes; queried per tap and frame.
// Notes: The top row is reserved for the poweroff/settings/reboot builtins.

package grid

import (
	"math"

	"tapdrawer/geom"
)

// Default cell metrics in layout units.
const (
	DefaultEntryWidth  = 96.0
	DefaultEntryHeight = 112.0
	DefaultMinPadding  = 8.0
)

// Builtin entry indices occupying the pinned top row.
const (
	IndexPoweroff = 0
	IndexSettings = 1
	IndexReboot   = 2
	// BuiltinCount is the number of pinned entries before desktop entries.
	BuiltinCount = 3
)

// Grid positions drawer entries in a column grid sized to the viewport.
// Index 0..2 are the builtin poweroff, settings, and reboot cells pinned
// left, centre, and right on the first row; desktop entries flow below.
type Grid struct {
	entrySize geom.Size
	padding   float64
	columns   int
	size      geom.Size
}

// New computes a layout for the given viewport size. Cell metrics are
// fixed; the padding expands so columns distribute evenly across the
// width. Viewports narrower than one cell collapse to a single column.
func New(size geom.Size) Grid {
	entry := geom.Size{Width: DefaultEntryWidth, Height: DefaultEntryHeight}

	columns := int((size.Width - DefaultMinPadding) / (entry.Width + DefaultMinPadding))
	if columns < 1 {
		columns = 1
	}
	padding := (size.Width - float64(columns)*entry.Width) / float64(columns+1)
	if padding < 0 {
		padding = 0
	}

	return Grid{entrySize: entry, padding: padding, columns: columns, size: size}
}

// Columns returns the number of desktop-entry columns.
func (g Grid) Columns() int {
	return g.columns
}

// EntrySize returns the cell size in layout units.
func (g Grid) EntrySize() geom.Size {
	return g.entrySize
}

// Padding returns the computed gutter width.
func (g Grid) Padding() float64 {
	return g.padding
}

// Origin returns the top-left corner of the cell for an entry index.
func (g Grid) Origin(index int) geom.Point {
	switch index {
	case IndexPoweroff:
		return geom.Pt(g.padding, g.padding)
	case IndexSettings:
		return geom.Pt((g.size.Width-g.entrySize.Width)/2, g.padding)
	case IndexReboot:
		return geom.Pt(g.size.Width-g.padding-g.entrySize.Width, g.padding)
	default:
		index -= BuiltinCount
		column := index % g.columns
		row := index/g.columns + 1
		x := (g.entrySize.Width+g.padding)*float64(column) + g.padding
		y := (g.entrySize.Height+g.padding)*float64(row) + g.padding
		return geom.Pt(x, y)
	}
}

// IndexAt returns the entry index under a content-space point, or -1 when
// the point falls in a gutter or outside any cell.
func (g Grid) IndexAt(point geom.Point) int {
	x := point.X - g.padding
	y := point.Y - g.padding
	if x < 0 || y < 0 {
		return -1
	}

	column := int(x / (g.entrySize.Width + g.padding))
	row := int(y / (g.entrySize.Height + g.padding))

	// The settings builtin sits centred on the first row, off the column
	// raster, so it needs its own hit box.
	if row == 0 && column != 0 && column != g.columns-1 {
		if point.X >= (g.size.Width-g.entrySize.Width)/2 &&
			point.X < (g.size.Width+g.entrySize.Width)/2 &&
			y < g.entrySize.Height {
			return IndexSettings
		}
		return -1
	}

	relX := math.Mod(x, g.entrySize.Width+g.padding)
	relY := math.Mod(y, g.entrySize.Height+g.padding)
	if relX >= g.entrySize.Width || relY >= g.entrySize.Height {
		return -1
	}

	if row == 0 {
		if column == 0 {
			return IndexPoweroff
		}
		return IndexReboot
	}
	return (row-1)*g.columns + column + BuiltinCount
}

// TotalHeight returns the content height for the given number of desktop
// entries, including the pinned builtin row.
func (g Grid) TotalHeight(entryCount int) float64 {
	rows := 1 // builtin row
	if entryCount > 0 {
		rows += (entryCount-1)/g.columns + 1
	}
	return (g.entrySize.Height+g.padding)*float64(rows) + g.padding
}

// MaxScroll returns the scrollable range for the given number of desktop
// entries: the amount of content below the viewport, never negative.
func (g Grid) MaxScroll(entryCount int) float64 {
	overflow := g.TotalHeight(entryCount) - g.size.Height
	if overflow < 0 {
		return 0
	}
	return overflow
}
