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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/dxf"
)

func newTestWalker() (*Walker, *strings.Builder) {
	buf := &strings.Builder{}
	return NewWalker(dxf.NewWriter(buf)), buf
}

func flushWalker(t *testing.T, w *Walker) {
	t.Helper()
	if err := w.Out.Flush(); err != nil {
		t.Fatal(err)
	}
}

func TestArcSteps(t *testing.T) {
	cases := []struct {
		length, spacing float64
		want            int
	}{
		{1000, 200, 5},
		{999, 200, 4},
		{401, 200, 2},
		{100, 200, 2}, // short curves still get two pairs
		{0, 200, 2},
	}
	for _, c := range cases {
		if got := arcSteps(c.length, c.spacing); got != c.want {
			t.Errorf("arcSteps(%g, %g) = %d, want %d",
				c.length, c.spacing, got, c.want)
		}
	}
}

// TestStraightContour pins the output for a contour of line segments
// only: plain vertices at three decimals, no bulge records, and an
// explicit closing vertex back to the start.
func TestStraightContour(t *testing.T) {
	w, buf := newTestWalker()
	w.Layer = "A"

	w.MoveTo(vec.Vec2{X: 0, Y: 0})
	w.LineTo(vec.Vec2{X: 100, Y: 0})
	w.LineTo(vec.Vec2{X: 100, Y: 200})
	w.ClosePath()
	flushWalker(t, w)

	want := "  0\nLWPOLYLINE\n" +
		"  10\n0.000\n 20\n0.000\n" +
		"  8\nA\n" +
		"  10\n100.000\n 20\n0.000\n" +
		"  10\n100.000\n 20\n200.000\n" +
		"  10\n0.000\n 20\n0.000\n"
	if d := cmp.Diff(want, buf.String()); d != "" {
		t.Errorf("output differs (-want +got):\n%s", d)
	}

	want2 := Extents{MinX: 0, MaxX: 100, MinY: 0, MaxY: 200}
	if d := cmp.Diff(want2, w.GlyphExtents); d != "" {
		t.Errorf("extents differ (-want +got):\n%s", d)
	}
}

// A close event with the pen already at the contour start must not
// produce a duplicate vertex.
func TestCloseAtStart(t *testing.T) {
	w, buf := newTestWalker()

	w.MoveTo(vec.Vec2{X: 0, Y: 0})
	w.LineTo(vec.Vec2{X: 100, Y: 0})
	w.LineTo(vec.Vec2{X: 0, Y: 0})
	before := buf.Len()
	w.ClosePath()
	flushWalker(t, w)

	if buf.Len() != before {
		t.Errorf("ClosePath emitted %q", buf.String()[before:])
	}
}

func TestQuadExtents(t *testing.T) {
	w, _ := newTestWalker()

	w.MoveTo(vec.Vec2{X: 0, Y: 0})
	w.QuadTo(vec.Vec2{X: 100, Y: 200}, vec.Vec2{X: 200, Y: 0})
	flushWalker(t, w)

	// the curve's apex is at t=1/2 with y=100; the sample points, not
	// just the arc endpoints, must reach the extents
	want := Extents{MinX: 0, MaxX: 200, MinY: 0, MaxY: 100}
	if d := cmp.Diff(want, w.GlyphExtents); d != "" {
		t.Errorf("extents differ (-want +got):\n%s", d)
	}
}

func TestQuadEmitsArcs(t *testing.T) {
	w, buf := newTestWalker()

	w.MoveTo(vec.Vec2{X: 0, Y: 0})
	w.QuadTo(vec.Vec2{X: 100, Y: 200}, vec.Vec2{X: 200, Y: 0})
	flushWalker(t, w)
	got := buf.String()

	if !strings.Contains(got, "  42\n") {
		t.Error("no arc vertices in output")
	}
	// the fit ends exactly at the curve endpoint, at arc precision
	if !strings.Contains(got, "\n200.0000\n") {
		t.Error("output does not reach the curve endpoint")
	}
	if w.cur != (vec.Vec2{X: 200, Y: 0}) {
		t.Errorf("pen at %v after curve, want (200 0)", w.cur)
	}
}

func TestCubeExtents(t *testing.T) {
	w, _ := newTestWalker()

	// symmetric cubic arch: apex y = 3/4 * 200 = 150 at t=1/2
	w.MoveTo(vec.Vec2{X: 0, Y: 0})
	w.CubeTo(
		vec.Vec2{X: 0, Y: 200},
		vec.Vec2{X: 200, Y: 200},
		vec.Vec2{X: 200, Y: 0},
	)
	flushWalker(t, w)

	want := Extents{MinX: 0, MaxX: 200, MinY: 0, MaxY: 150}
	if d := cmp.Diff(want, w.GlyphExtents); d != "" {
		t.Errorf("extents differ (-want +got):\n%s", d)
	}
}

// TestArcSpacingScales checks that longer curves are cut into more
// biarc pairs.
func TestArcSpacingScales(t *testing.T) {
	countArcs := func(scale float64) int {
		w, buf := newTestWalker()
		w.MoveTo(vec.Vec2{X: 0, Y: 0})
		w.QuadTo(
			vec.Vec2{X: 100 * scale, Y: 200 * scale},
			vec.Vec2{X: 200 * scale, Y: 0},
		)
		if err := w.Out.Flush(); err != nil {
			t.Fatal(err)
		}
		return strings.Count(buf.String(), "  42\n")
	}

	small := countArcs(1)
	large := countArcs(10)
	if large <= small {
		t.Errorf("got %d arcs for the long curve, %d for the short one",
			large, small)
	}
}
