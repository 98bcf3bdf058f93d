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

package convert

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/dxf/raster"
)

// renderBitmap rasterises the glyph to a 1-bit image for the scanline
// tracing mode.  The pixel grid is anisotropic: 4096 pixels per em
// horizontally, so that pixel columns coincide with output units, and
// LineScale pixels per em vertically.  Returns nil for blank glyphs.
func (c *Converter) renderBitmap(gid glyph.ID) *raster.Bitmap {
	if c.font.Outlines == nil {
		return nil
	}

	upem := float64(c.font.UnitsPerEm)
	xs := 4096 / upem
	ys := float64(c.opts.LineScale) / upem
	px := func(p vec.Vec2) vec.Vec2 {
		return vec.Vec2{X: p.X * xs, Y: p.Y * ys}
	}

	r := raster.New()
	for cmd, pts := range c.font.Outlines.Path(gid) {
		switch cmd {
		case path.CmdMoveTo:
			r.MoveTo(px(pts[0]))
		case path.CmdLineTo:
			r.LineTo(px(pts[0]))
		case path.CmdQuadTo:
			r.QuadTo(px(pts[0]), px(pts[1]))
		case path.CmdCubeTo:
			r.CubeTo(px(pts[0]), px(pts[1]), px(pts[2]))
		case path.CmdClose:
			r.ClosePath()
		}
	}
	return r.Bitmap()
}
