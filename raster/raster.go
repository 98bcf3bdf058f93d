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

// Package raster renders glyph outlines into monochrome bitmaps.
//
// This is a reduced scanline rasteriser: it fills a single path with
// the nonzero winding rule and quantises the per-pixel coverage to one
// bit at 50%.  The bitmap feeds the scanline tracing mode, which wants
// the kind of 1-bit glyph image a font engine's mono renderer would
// produce.
package raster

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// A Bitmap is a monochrome glyph image: Rows rows of Pitch bytes each,
// top row first, the most significant bit of each byte leftmost.
//
// Left and Top place the bitmap in the path's coordinate system: Left
// is the x coordinate of the leftmost pixel column, Top the y
// coordinate of the upper edge of the top row (y grows upward).
type Bitmap struct {
	Rows   int
	Pitch  int
	Buffer []byte
	Left   int
	Top    int
}

// Bit reports whether the pixel in column i of row j is set.
func (b *Bitmap) Bit(j, i int) bool {
	return b.Buffer[j*b.Pitch+i/8]&(0x80>>(i%8)) != 0
}

// edge is a non-horizontal line segment of the flattened path.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
}

// A Rasteriser accumulates one path, given in pixel coordinates with y
// growing upward, and renders it to a Bitmap.  Subpaths are closed
// automatically, as glyph contours always are.
//
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// Flatness controls curve approximation accuracy in pixels.
	Flatness float64

	edges []edge
	first bool
	xMin, xMax, yMin, yMax float64

	cur   vec.Vec2
	start vec.Vec2
	open  bool
}

// defaultFlatness is below the threshold of visual perception and more
// than accurate enough for a 1-bit result.
const defaultFlatness = 0.25

// horizontalEdgeThreshold is the minimum vertical extent for an edge to
// contribute coverage; flatter edges are skipped as horizontal.
const horizontalEdgeThreshold = 1e-10

// New returns an empty Rasteriser.
func New() *Rasteriser {
	return &Rasteriser{Flatness: defaultFlatness}
}

// Reset discards the accumulated path, keeping allocated buffers.
func (r *Rasteriser) Reset() {
	r.edges = r.edges[:0]
	r.first = false
	r.open = false
}

// MoveTo starts a new subpath at p, closing any open one.
func (r *Rasteriser) MoveTo(p vec.Vec2) {
	r.ClosePath()
	r.cur = p
	r.start = p
	r.open = true
}

// LineTo extends the current subpath with a straight segment to p.
func (r *Rasteriser) LineTo(p vec.Vec2) {
	r.addEdge(r.cur, p)
	r.cur = p
}

// QuadTo extends the current subpath with a quadratic Bézier segment
// with control point c, ending at p.
func (r *Rasteriser) QuadTo(c, p vec.Vec2) {
	p0, p1, p2 := r.cur, c, p

	// error vector e = (P0 - 2*P1 + P2)/4 bounds the distance between
	// the curve and its chord
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)
	n := 1
	if dev := e.Length(); dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		pt := p0.Mul(u * u).Add(p1.Mul(2 * u * t)).Add(p2.Mul(t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
	r.cur = p
}

// CubeTo extends the current subpath with a cubic Bézier segment with
// control points c1 and c2, ending at p.
func (r *Rasteriser) CubeTo(c1, c2, p vec.Vec2) {
	p0, p1, p2, p3 := r.cur, c1, c2, p

	// segment count via Wang's formula
	d1 := p0.Sub(p1.Mul(2)).Add(p2)
	d2 := p1.Sub(p2.Mul(2)).Add(p3)
	m := max(d1.Length(), d2.Length())
	n := 1
	if m > 0 {
		if nf := math.Sqrt(3 * m / (4 * r.Flatness)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		pt := p0.Mul(u * u * u).
			Add(p1.Mul(3 * u * u * t)).
			Add(p2.Mul(3 * u * t * t)).
			Add(p3.Mul(t * t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
	r.cur = p
}

// ClosePath closes the current subpath with a straight segment back to
// its starting point.
func (r *Rasteriser) ClosePath() {
	if !r.open {
		return
	}
	if r.cur != r.start {
		r.addEdge(r.cur, r.start)
	}
	r.open = false
}

func (r *Rasteriser) addEdge(p0, p1 vec.Vec2) {
	if !r.first {
		r.xMin, r.xMax = min(p0.X, p1.X), max(p0.X, p1.X)
		r.yMin, r.yMax = min(p0.Y, p1.Y), max(p0.Y, p1.Y)
		r.first = true
	} else {
		r.xMin = min(r.xMin, min(p0.X, p1.X))
		r.xMax = max(r.xMax, max(p0.X, p1.X))
		r.yMin = min(r.yMin, min(p0.Y, p1.Y))
		r.yMax = max(r.yMax, max(p0.Y, p1.Y))
	}

	dy := p1.Y - p0.Y
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{
		x0: p0.X, y0: p0.Y,
		x1: p1.X, y1: p1.Y,
		dxdy: (p1.X - p0.X) / dy,
	})
}

// Bitmap closes the path and renders it.  The result is nil when the
// path contains no coverage at all.
func (r *Rasteriser) Bitmap() *Bitmap {
	r.ClosePath()
	if len(r.edges) == 0 {
		return nil
	}

	ixMin := int(math.Floor(r.xMin))
	ixMax := int(math.Ceil(r.xMax))
	iyMin := int(math.Floor(r.yMin))
	iyMax := int(math.Ceil(r.yMax))
	width := ixMax - ixMin
	height := iyMax - iyMin
	if width <= 0 || height <= 0 {
		return nil
	}

	// coverage accumulation, as in a scanline fill: cover is the
	// signed vertical extent of edge crossings per pixel, area weights
	// the crossing's horizontal position within the pixel
	cover := make([]float32, width*height)
	area := make([]float32, width*height)

	for i := range r.edges {
		e := &r.edges[i]
		eyMin := int(math.Floor(min(e.y0, e.y1)))
		eyMax := int(math.Floor(max(e.y0, e.y1))) + 1
		eyMin = max(eyMin, iyMin)
		eyMax = min(eyMax, iyMax)
		for y := eyMin; y < eyMax; y++ {
			row := (y - iyMin) * width
			accumulateEdge(e, y, cover[row:row+width], area[row:row+width], ixMin)
		}
	}

	bm := &Bitmap{
		Rows:   height,
		Pitch:  (width + 7) / 8,
		Left:   ixMin,
		Top:    iyMax,
	}
	bm.Buffer = make([]byte, bm.Rows*bm.Pitch)

	// integrate left to right; rows are stored top first, so row j of
	// the bitmap is scanline iyMax-1-j
	for j := range height {
		y := iyMax - 1 - j
		row := (y - iyMin) * width
		var accum float32
		for i := range width {
			raw := accum + area[row+i]
			accum += cover[row+i]
			if raw < 0 {
				raw = -raw
			}
			if raw >= 0.5 {
				bm.Buffer[j*bm.Pitch+i/8] |= 0x80 >> (i % 8)
			}
		}
	}
	return bm
}

// accumulateEdge adds one edge's contribution within scanline [y, y+1)
// to the cover and area buffers, splitting the edge at pixel boundaries
// when it spans several columns.
func accumulateEdge(e *edge, y int, cover, area []float32, xOff int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xAtTop := e.x0 + e.dxdy*(yTop-e.y0)
	xAtBot := e.x0 + e.dxdy*(yBot-e.y0)
	xLeft, xRight := xAtTop, xAtBot
	if xLeft > xRight {
		xLeft, xRight = xRight, xLeft
	}
	pixLeft := int(math.Floor(xLeft))
	pixRight := int(math.Floor(xRight))

	if pixLeft == pixRight {
		coverVal := sign * float32(yBot-yTop)
		xMid := e.x0 + e.dxdy*((yTop+yBot)/2-e.y0)
		idx := clampIdx(pixLeft-xOff, len(cover))
		cover[idx] += coverVal
		area[idx] += coverVal * float32(1-(xMid-float64(pixLeft)))
		return
	}

	dydx := 1 / e.dxdy
	for pix := pixLeft; pix <= pixRight; pix++ {
		yAtL := e.y0 + dydx*(float64(pix)-e.x0)
		yAtR := e.y0 + dydx*(float64(pix+1)-e.x0)
		segYMin := max(min(yAtL, yAtR), yTop)
		segYMax := min(max(yAtL, yAtR), yBot)
		segDy := segYMax - segYMin
		if segDy <= 0 {
			continue
		}
		coverVal := sign * float32(segDy)
		yMid := (segYMin + segYMax) / 2
		xMid := e.x0 + e.dxdy*(yMid-e.y0)
		idx := clampIdx(pix-xOff, len(cover))
		cover[idx] += coverVal
		area[idx] += coverVal * float32(1-(xMid-float64(pix)))
	}
}

// clampIdx guards against float rounding putting a crossing one pixel
// outside the bounding box.
func clampIdx(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
