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
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/dxf/raster"
)

// TraceBitmap approximates a monochrome glyph bitmap with horizontal
// pen strokes, one move/line pair per run of set pixels.  lineScale is
// the vertical resolution the bitmap was rendered at, in rows per em.
//
// The emission direction alternates from one row to the next, so that
// consecutive strokes read as a coherent zig-zag path rather than a
// stack of disconnected segments.  The toggle deliberately persists
// across rows and glyphs.  Span edges are pulled in by a fixed 8-pixel
// offset on each side to line up with outline coordinates; runs
// narrower than twice the offset disappear.
//
// This mode bypasses the curve flattener entirely: its output is
// always straight vertices.
func (w *Walker) TraceBitmap(b *raster.Bitmap, lineScale int) {
	for j := 0; j < b.Rows; j++ {
		// row height in output units; integer arithmetic matters here
		y := int64(b.Top-j)*64*64/int64(lineScale) - 64*32/int64(lineScale)

		spans := w.spanBuf[:0]
		oldbit := false
		x := 0
		for i := 0; i < b.Pitch; i++ {
			byteVal := b.Buffer[j*b.Pitch+i]
			for bit := 0; bit < 8; bit++ {
				set := byteVal&(0x80>>bit) != 0
				x = i*8 + bit + b.Left
				switch {
				case set && !oldbit:
					spans = append(spans, x+8)
				case !set && oldbit:
					if end := x - 8; spans[len(spans)-1] < end {
						spans = append(spans, end)
					} else {
						// the adjusted span collapsed; drop its start
						spans = spans[:len(spans)-1]
					}
				}
				oldbit = set
			}
		}
		if oldbit {
			// run extends to the right edge of the bitmap
			spans = append(spans, x-8)
		}
		w.spanBuf = spans

		n := len(spans) / 2
		w.traceOdd = !w.traceOdd
		if w.traceOdd {
			for i := n - 1; i >= 0; i-- {
				w.MoveTo(vec.Vec2{X: float64(spans[2*i+1]), Y: float64(y)})
				w.LineTo(vec.Vec2{X: float64(spans[2*i]), Y: float64(y)})
			}
		} else {
			for i := 0; i < n; i++ {
				w.MoveTo(vec.Vec2{X: float64(spans[2*i]), Y: float64(y)})
				w.LineTo(vec.Vec2{X: float64(spans[2*i+1]), Y: float64(y)})
			}
		}
	}
}
