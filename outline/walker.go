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

// Package outline turns glyph outline events into DXF polyline
// entities.
//
// A Walker consumes the usual segment events (move, line, quadratic,
// cubic, close) and streams LWPOLYLINE records to a dxf.Writer.  Line
// segments pass through unchanged; curve segments are subdivided and
// fitted with tangent-continuous circular arc pairs, so the output
// consists entirely of straight and arc vertices.  Every point the
// walker sees is merged into a per-glyph bounding box.
package outline

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/dxf"
	"seehuhn.de/go/dxf/biarc"
)

// Subdivision parameters.  DefaultCurveSteps is the fixed sample count
// used to estimate a curve's length (and to feed the extents tracker);
// DefaultArcSpacing is the estimated curve length, in font units,
// covered by one biarc pair.  The two are deliberately independent:
// output quality scales with the physical length of the curve, not
// with the estimation resolution.
const (
	DefaultCurveSteps = 100
	DefaultArcSpacing = 200.0
)

// A Walker converts a stream of outline events into DXF records.
// The zero value is not ready for use; call NewWalker.
type Walker struct {
	Out *dxf.Writer

	// CurveSteps is the number of samples used for the polyline
	// estimate of a curve segment's length.
	CurveSteps int

	// ArcSpacing is the estimated curve length covered by one biarc
	// pair.  Each curve segment gets at least two pairs.
	ArcSpacing float64

	// Layer tags every entity the walker starts.  Empty disables the
	// layer tag.
	Layer string

	// GlyphExtents accumulates the bounding box of everything drawn.
	// Reset it before each glyph.
	GlyphExtents Extents

	cur   vec.Vec2 // pen position
	start vec.Vec2 // first point of the current contour

	spanBuf  []int // scratch for TraceBitmap
	traceOdd bool  // row direction toggle, persists across glyphs
}

// NewWalker returns a Walker streaming records to out, with default
// subdivision parameters.
func NewWalker(out *dxf.Writer) *Walker {
	w := &Walker{
		Out:        out,
		CurveSteps: DefaultCurveSteps,
		ArcSpacing: DefaultArcSpacing,
	}
	w.GlyphExtents.Reset()
	return w
}

// MoveTo lifts the pen and starts a new polyline entity at p.  Every
// MoveTo after the first starts a separate entity, so multi-contour
// glyphs come out as several polylines on the same layer.
func (w *Walker) MoveTo(p vec.Vec2) {
	w.Out.Polyline(p, w.Layer)
	w.cur = p
	w.start = p
	w.GlyphExtents.AddPoint(p)
}

// LineTo draws a straight segment from the pen position to p.
func (w *Walker) LineTo(p vec.Vec2) {
	w.Out.Vertex(p)
	w.cur = p
	w.GlyphExtents.AddPoint(p)
}

// ClosePath closes the current contour.  The outline model has an
// explicit close event; the DXF polyline does not, so closing draws a
// final vertex back to the contour's start when the pen is not
// already there.
func (w *Walker) ClosePath() {
	if w.cur != w.start {
		w.LineTo(w.start)
	}
}

// arcSteps is the adaptive biarc subdivision count for a curve of the
// given estimated length: one pair per spacing unit, at least two.
func arcSteps(length, spacing float64) int {
	return int(math.Max(2, length/spacing))
}

// QuadTo draws the quadratic Bézier segment with control point ctrl
// ending at to:
//
//	B(t) = (1-t)^2 A + 2t(1-t) B + t^2 C,  t in [0,1]
//
// The segment is approximated by pairs of circular arcs.
func (w *Walker) QuadTo(ctrl, to vec.Vec2) {
	p0, p1, p2 := w.cur, ctrl, to

	// fixed-resolution polyline estimate of the curve length; the
	// sample points also feed the extents, so the box reflects the
	// true curve rather than the subdivision endpoints
	length := 0.0
	prev := p0
	for i := 1; i <= w.CurveSteps; i++ {
		t := float64(i) / float64(w.CurveSteps)
		u := 1 - t
		pt := p0.Mul(u * u).Add(p1.Mul(2 * u * t)).Add(p2.Mul(t * t))
		length += pt.Sub(prev).Length()
		prev = pt
		w.GlyphExtents.AddPoint(pt)
	}

	// derivative direction from the control polygon differences
	q0 := p1.Sub(p0)
	q1 := p2.Sub(p1)

	steps := arcSteps(length, w.ArcSpacing)
	ps, ts := p0, q0
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		u := 1 - t
		pt := p0.Mul(u * u).Add(p1.Mul(2 * u * t)).Add(p2.Mul(t * t))
		tan := q0.Mul(u).Add(q1.Mul(t))
		biarc.Fit(ps, ts, pt, tan, 1.0, w.emit)
		ps, ts = pt, tan
	}
	w.cur = to
}

// CubeTo draws the cubic Bézier segment with control points c1, c2
// ending at to:
//
//	B(t) = (1-t)^3 A + 3t(1-t)^2 B + 3t^2(1-t) C + t^3 D,  t in [0,1]
func (w *Walker) CubeTo(c1, c2, to vec.Vec2) {
	p0, p1, p2, p3 := w.cur, c1, c2, to

	length := 0.0
	prev := p0
	for i := 1; i <= w.CurveSteps; i++ {
		t := float64(i) / float64(w.CurveSteps)
		u := 1 - t
		pt := p0.Mul(u * u * u).
			Add(p1.Mul(3 * t * u * u)).
			Add(p2.Mul(3 * t * t * u)).
			Add(p3.Mul(t * t * t))
		length += pt.Sub(prev).Length()
		prev = pt
		w.GlyphExtents.AddPoint(pt)
	}

	q0 := p1.Sub(p0)
	q1 := p2.Sub(p1)
	q2 := p3.Sub(p2)

	steps := arcSteps(length, w.ArcSpacing)
	ps, ts := p0, q0
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		u := 1 - t
		pt := p0.Mul(u * u * u).
			Add(p1.Mul(3 * t * u * u)).
			Add(p2.Mul(3 * t * t * u)).
			Add(p3.Mul(t * t * t))
		tan := q0.Mul(u * u).Add(q1.Mul(2 * t * u)).Add(q2.Mul(t * t))
		biarc.Fit(ps, ts, pt, tan, 1.0, w.emit)
		ps, ts = pt, tan
	}
	w.cur = to
}

// emit writes one fitted segment as a polyline vertex.
func (w *Walker) emit(s biarc.Segment) {
	if s.Bulge == 0 {
		w.Out.CurveVertex(s.End)
	} else {
		w.Out.ArcVertex(s.Bulge, s.End)
	}
}
