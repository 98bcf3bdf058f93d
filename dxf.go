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

// Package dxf emits DXF entity records in the group-code text format.
//
// The record layout, including the exact field codes, spacing and
// numeric precision, is what downstream CAD/CAM importers (notably
// OpenSCAD's DXF reader) have been tested against.  Do not "clean up"
// the format strings.
package dxf

import (
	"bufio"
	"fmt"
	"io"

	"seehuhn.de/go/geom/vec"
)

// A Writer emits DXF records to an output stream.  Records are written
// as soon as they are produced; nothing is buffered beyond the
// underlying bufio.Writer, so output is valid up to the last complete
// record even if the process dies.
//
// Write errors are sticky: the first error is retained, later calls
// become no-ops, and the error is reported by Flush.
type Writer struct {
	w   *bufio.Writer
	err error
}

// NewWriter returns a Writer emitting records to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (w *Writer) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

// Flush writes buffered records to the underlying stream and returns
// the first error encountered by any record method.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}

// Header opens the entities section.
func (w *Writer) Header() {
	w.printf("  0\nSECTION\n  2\nENTITIES\n")
}

// Trailer closes the entities section and ends the file.
func (w *Writer) Trailer() {
	w.printf("  0\nENDSEC\n  0\nEOF\n")
}

// Polyline starts a new LWPOLYLINE entity at p, tagged with layer when
// layer is non-empty.
func (w *Writer) Polyline(p vec.Vec2, layer string) {
	w.printf("  0\nLWPOLYLINE\n  10\n%.3f\n 20\n%.3f\n", p.X, p.Y)
	w.Layer(layer)
}

// Vertex appends a straight vertex at p to the current polyline.
// Three decimals: these coordinates come straight from integer glyph
// points.
func (w *Writer) Vertex(p vec.Vec2) {
	w.printf("  10\n%.3f\n 20\n%.3f\n", p.X, p.Y)
}

// CurveVertex appends a straight vertex produced by curve fitting.
// Four decimals, matching the precision of arc vertices.
func (w *Writer) CurveVertex(p vec.Vec2) {
	w.printf("  10\n%.4f\n 20\n%.4f\n", p.X, p.Y)
}

// ArcVertex appends a vertex at p reached by a circular arc from the
// previous vertex.  The bulge (tangent of one quarter of the included
// angle, positive for counterclockwise arcs) is attached to the vertex
// preceding the arc, per the LWPOLYLINE convention.
func (w *Writer) ArcVertex(bulge float64, p vec.Vec2) {
	w.printf("  42\n%.4f\n 10\n%.4f\n  20\n%.4f\n", bulge, p.X, p.Y)
}

// Layer tags the preceding entity with a layer name.  No record is
// emitted for an empty name.
func (w *Writer) Layer(layer string) {
	if layer == "" {
		return
	}
	w.printf("  8\n%s\n", layer)
}

// dimension field layout per metric name.  Horizontal metrics use
// dimension type 70 with the value in group 13, vertical metrics use
// type 6 with group 23.  The group-code spacing (including minx's odd
// leading blank) is load-bearing for existing consumers.
var dimFields = map[string]struct {
	typ  int
	code string
}{
	"minx": {70, " 13"},
	"maxx": {70, "13"},
	"miny": {6, "23"},
	"maxy": {6, "23"},
	"advx": {70, "13"},
	"advy": {6, "23"},
}

// Dimension emits an auxiliary DIMENSION record carrying a named glyph
// metric.  name must be one of minx, maxx, miny, maxy, advx, advy.
func (w *Writer) Dimension(name string, value int64, layer string) {
	f, ok := dimFields[name]
	if !ok {
		if w.err == nil {
			w.err = fmt.Errorf("dxf: unknown dimension metric %q", name)
		}
		return
	}
	w.printf(" 0\nDIMENSION\n 70\n%d\n 1\n%s\n%s\n%d\n", f.typ, name, f.code, value)
	w.Layer(layer)
}
