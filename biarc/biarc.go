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

// Package biarc interpolates point/tangent pairs with pairs of circular
// arcs.
//
// A biarc is two arcs joined tangentially.  It is the standard way to
// approximate a smooth curve when the output format only supports
// straight lines and circular arcs, as DXF polylines do.  Arcs are
// described in the polyline "bulge" parameterisation: the bulge is the
// tangent of one quarter of the arc's included angle, positive for
// counterclockwise arcs.
package biarc

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// A Segment is one polyline step produced by the fitter: a straight
// move to End when Bulge is zero, otherwise a circular arc ending at
// End.  The arc's start point and entry tangent are implied by the
// previously emitted vertex.
type Segment struct {
	End   vec.Vec2
	Bulge float64
}

// arcDenomThreshold is the smallest perpendicular-offset denominator
// for which Arc still produces an arc; below it the chord is treated
// as collinear with the entry tangent.  Empirically tuned, do not
// change without test evidence.
const arcDenomThreshold = 1e-10

// unit returns v scaled to length one.  The zero vector maps to the
// zero vector; callers must tolerate a zero tangent.
func unit(v vec.Vec2) vec.Vec2 {
	m := v.Length()
	if m == 0 {
		return vec.Vec2{}
	}
	return v.Mul(1 / m)
}

// Arc converts the arc from p1 to p2, entered with tangent direction d,
// into a bulge segment.  When p1, p2 and d are (nearly) collinear there
// is no finite arc and a straight segment to p2 is returned instead.
func Arc(p1, p2, d vec.Vec2) Segment {
	d = unit(d)
	p := p2.Sub(p1)
	den := 2 * (p.Y*d.X - p.X*d.Y)
	if math.Abs(den) < arcDenomThreshold {
		return Segment{End: p2}
	}

	// signed radius and center; the sign of r encodes the winding
	r := -p.Dot(p) / den
	c := vec.Vec2{X: p1.X + d.Y*r, Y: p1.Y - d.X*r}

	start := math.Atan2(p1.Y-c.Y, p1.X-c.X)
	end := math.Atan2(p2.Y-c.Y, p2.X-c.X)
	if r < 0 {
		for end <= start {
			end += 2 * math.Pi
		}
	} else {
		for end >= start {
			end -= 2 * math.Pi
		}
	}

	bulge := math.Tan(math.Abs(end-start) / 4)
	if r > 0 {
		bulge = -bulge
	}
	return Segment{End: p2, Bulge: bulge}
}

// Fit interpolates from p0 to p4 with two arcs whose tangents match ts
// at p0 and te at p4, and calls emit for each resulting segment.  ratio
// is the ratio between the two arcs' chord parameters; the flattener
// uses 1.
//
// The chord parameter beta solves a*beta^2 + b*beta + c = 0 with
//
//	v = p0 - p4
//	a = 2*ratio*(ts.te - 1)
//	b = 2*v.(ratio*ts + te)
//	c = v.v
//
// and the larger root is used.  When no positive root exists (parallel
// tangents along the chord, or a negative discriminant) the fit
// degenerates to a single straight segment to p4.  Degeneracy is a
// designed fallback, not an error.
func Fit(p0, ts, p4, te vec.Vec2, ratio float64, emit func(Segment)) {
	ts = unit(ts)
	te = unit(te)

	v := p0.Sub(p4)
	c := v.Dot(v)
	b := 2 * v.Dot(ts.Mul(ratio).Add(te))
	a := 2 * ratio * (ts.Dot(te) - 1)

	disc := b*b - 4*a*c
	if a == 0 || disc < 0 {
		emit(Segment{End: p4})
		return
	}

	disq := math.Sqrt(disc)
	beta := math.Max((-b-disq)/2/a, (-b+disq)/2/a)
	if beta <= 0 {
		emit(Segment{End: p4})
		return
	}

	alpha := beta * ratio
	ab := alpha + beta
	p1 := p0.Add(ts.Mul(alpha))
	p3 := p4.Sub(te.Mul(beta))
	p2 := p1.Mul(beta / ab).Add(p3.Mul(alpha / ab))
	tm := p3.Sub(p2)

	emit(Arc(p0, p2, ts))
	emit(Arc(p2, p4, tm))
}
