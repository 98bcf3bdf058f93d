// seehuhn.de/go/dxf - convert font glyphs to DXF drawings
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package outline

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Extents accumulate an integer axis-aligned bounding box over a
// stream of points.  Bounds only ever widen; call Reset to start over.
// The zero value is not ready for use.
type Extents struct {
	MinX, MaxX int64
	MinY, MaxY int64
}

// extentsInit exceeds any coordinate a font can plausibly produce, so
// the first point merged after Reset sets all four bounds.
const extentsInit = 2000000000

// Reset empties the box: min bounds go to +extentsInit, max bounds to
// -extentsInit.
func (e *Extents) Reset() {
	e.MinX, e.MinY = extentsInit, extentsInit
	e.MaxX, e.MaxY = -extentsInit, -extentsInit
}

// AddPoint widens the box to include p.  Coordinates are truncated
// toward zero, matching the integer glyph coordinates the box tracks.
func (e *Extents) AddPoint(p vec.Vec2) {
	x, y := int64(p.X), int64(p.Y)
	if x > e.MaxX {
		e.MaxX = x
	}
	if y > e.MaxY {
		e.MaxY = y
	}
	if x < e.MinX {
		e.MinX = x
	}
	if y < e.MinY {
		e.MinY = y
	}
}

// AddExtents widens e to include all of e2.
func (e *Extents) AddExtents(e2 *Extents) {
	if e2.MaxX > e.MaxX {
		e.MaxX = e2.MaxX
	}
	if e2.MaxY > e.MaxY {
		e.MaxY = e2.MaxY
	}
	if e2.MinX < e.MinX {
		e.MinX = e2.MinX
	}
	if e2.MinY < e.MinY {
		e.MinY = e2.MinY
	}
}

// Rect returns the box as a rectangle.
func (e *Extents) Rect() rect.Rect {
	return rect.Rect{
		LLx: float64(e.MinX),
		LLy: float64(e.MinY),
		URx: float64(e.MaxX),
		URy: float64(e.MaxY),
	}
}
