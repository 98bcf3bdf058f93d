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
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/sfnt"
)

func testFont(t *testing.T) *sfnt.Font {
	t.Helper()
	f, err := sfnt.Read(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func run(t *testing.T, opts Options, text string) (string, *Converter) {
	t.Helper()
	buf := &strings.Builder{}
	c, err := New(testFont(t), buf, opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Run(text); err != nil {
		t.Fatal(err)
	}
	return buf.String(), c
}

// pair is one group-code/value line pair of the output.
type pair struct {
	code, val string
}

// parsePairs splits DXF output into its code/value line pairs.
func parsePairs(t *testing.T, out string) []pair {
	t.Helper()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines)%2 != 0 {
		t.Fatalf("odd line count %d", len(lines))
	}
	pairs := make([]pair, 0, len(lines)/2)
	for i := 0; i < len(lines); i += 2 {
		pairs = append(pairs, pair{
			code: strings.TrimSpace(lines[i]),
			val:  lines[i+1],
		})
	}
	return pairs
}

func TestTextMode(t *testing.T) {
	out, c := run(t, Options{}, "A")

	if !strings.HasPrefix(out, "  0\nSECTION\n  2\nENTITIES\n") {
		t.Error("missing entities header")
	}
	if !strings.HasSuffix(out, "  0\nENDSEC\n  0\nEOF\n") {
		t.Error("missing trailer")
	}
	if !strings.Contains(out, "LWPOLYLINE") {
		t.Error("no polylines for 'A'")
	}
	if strings.Contains(out, "DIMENSION") {
		t.Error("DIMENSION records outside font-generation mode")
	}
	if strings.Contains(out, "\n  8\n") {
		t.Error("layer records without a layer name")
	}

	b := c.Bounds()
	if !(b.URx > b.LLx && b.URy > b.LLy) {
		t.Errorf("degenerate bounds %+v", b)
	}
}

// Characters the font has no glyph for are skipped without a trace.
func TestUnmappedRune(t *testing.T) {
	out, c := run(t, Options{}, "\uE000")

	want := "  0\nSECTION\n  2\nENTITIES\n  0\nENDSEC\n  0\nEOF\n"
	if d := cmp.Diff(want, out); d != "" {
		t.Errorf("output differs (-want +got):\n%s", d)
	}
	if b := c.Bounds(); b.LLx <= b.URx {
		t.Errorf("bounds %+v not empty", b)
	}
}

func TestTextAdvance(t *testing.T) {
	_, one := run(t, Options{}, "A")
	_, two := run(t, Options{}, "AA")

	w1 := one.Bounds().URx - one.Bounds().LLx
	w2 := two.Bounds().URx - two.Bounds().LLx
	if !(w2 > w1*1.5) {
		t.Errorf("widths %g and %g, second glyph not advanced", w1, w2)
	}
}

func TestScale(t *testing.T) {
	_, one := run(t, Options{}, "A")
	_, two := run(t, Options{Scale: 2}, "A")

	h1 := one.Bounds().URy
	h2 := two.Bounds().URy
	if !(h2 > h1*1.9 && h2 < h1*2.1) {
		t.Errorf("heights %g and %g, want factor 2", h1, h2)
	}
}

func TestFixedLayer(t *testing.T) {
	out, _ := run(t, Options{Layer: "TEXT"}, "A")

	pairs := parsePairs(t, out)
	seen := false
	for i, p := range pairs {
		if p.val != "LWPOLYLINE" {
			continue
		}
		seen = true
		// entity start, x, y, then the layer record
		if i+3 >= len(pairs) || pairs[i+3] != (pair{"8", "TEXT"}) {
			t.Fatalf("polyline at pair %d not tagged with layer TEXT", i)
		}
	}
	if !seen {
		t.Error("no polylines in output")
	}
}

func TestGenFont(t *testing.T) {
	out, _ := run(t, Options{GenFont: true}, "")
	pairs := parsePairs(t, out)

	// collect the metric sequence per layer, and the polyline layers
	dims := map[string][]string{}
	polyLayers := map[string]bool{}
	for i, p := range pairs {
		switch p.val {
		case "DIMENSION":
			if i+4 >= len(pairs) {
				t.Fatal("truncated DIMENSION record")
			}
			name := pairs[i+2].val
			layer := pairs[i+4].val
			dims[layer] = append(dims[layer], name)
		case "LWPOLYLINE":
			if i+3 < len(pairs) && pairs[i+3].code == "8" {
				polyLayers[pairs[i+3].val] = true
			}
		}
	}

	if len(dims) < 90 {
		t.Fatalf("metrics for %d layers, want one per printable character", len(dims))
	}
	wantOrder := []string{"minx", "maxx", "miny", "maxy", "advx", "advy"}
	for layer, names := range dims {
		if d := cmp.Diff(wantOrder, names); d != "" {
			t.Errorf("layer %q metric order (-want +got):\n%s", layer, d)
		}
	}

	// spot checks: letters draw on their own layer, and the space
	// glyph gets metrics but no outline
	if !polyLayers["A"] {
		t.Error("no polyline on layer A")
	}
	if polyLayers[" "] {
		t.Error("polyline on the space layer")
	}
	if _, ok := dims[" "]; !ok {
		t.Error("no metrics for the space glyph")
	}
}

// Per-glyph extents must reset between glyphs; the metrics of a narrow
// glyph rendered after a wide one must not inherit the wide bounds.
func TestGenFontExtentsReset(t *testing.T) {
	out, _ := run(t, Options{GenFont: true}, "")
	pairs := parsePairs(t, out)

	maxx := map[string]string{}
	for i, p := range pairs {
		if p.val == "DIMENSION" && pairs[i+2].val == "maxx" {
			maxx[pairs[i+4].val] = pairs[i+3].val
		}
	}
	if maxx["."] == maxx["M"] {
		t.Errorf("maxx of '.' and 'M' both %s, extents leak between glyphs",
			maxx["M"])
	}
}

func TestBitmapMode(t *testing.T) {
	out, c := run(t, Options{LineScale: 64, GenFont: false}, "L")

	if !strings.Contains(out, "LWPOLYLINE") {
		t.Error("no strokes in bitmap mode")
	}
	if b := c.Bounds(); !(b.URx > b.LLx) {
		t.Errorf("degenerate bounds %+v", b)
	}

	// the trace rows add many short polylines on top of the outline
	nPlain, _ := run(t, Options{}, "L")
	if n, m := strings.Count(out, "LWPOLYLINE"), strings.Count(nPlain, "LWPOLYLINE"); n <= m {
		t.Errorf("%d polylines with tracing, %d without", n, m)
	}
}
