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

// Package convert drives glyph outlines from a font file into a DXF
// entities section.
//
// Each rendered glyph becomes one or more closed polylines; in
// font-generation mode every glyph additionally gets its own layer and
// six DIMENSION records with its bounding box and advance.  Processing
// is a strict sequential pipeline: each glyph is walked to completion,
// with all records streamed out, before the next one starts.
package convert

import (
	"fmt"
	"io"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"

	"seehuhn.de/go/dxf"
	"seehuhn.de/go/dxf/outline"
)

// Options configure a Converter.  The zero value selects defaults.
type Options struct {
	// ArcSpacing is the estimated curve length, in font units, covered
	// by one biarc pair.  Default 200.
	ArcSpacing float64

	// CurveSteps is the sample count for curve length estimation.
	// Default 100.
	CurveSteps int

	// Scale is an extra factor applied on top of the design-unit
	// basis.  Default 1.
	Scale float64

	// Layer, when non-empty, tags all entities with this fixed layer
	// name.  Ignored in font-generation mode, which derives a layer
	// per glyph.
	Layer string

	// GenFont renders all printable ASCII characters, one layer per
	// glyph, with DIMENSION metrics.
	GenFont bool

	// LineScale, when positive, additionally traces a monochrome
	// rendering of each glyph with LineScale rows per em.
	LineScale int
}

// A Converter renders glyphs from one font into one DXF output stream.
type Converter struct {
	font   *sfnt.Font
	cmap   cmap.Subtable
	out    *dxf.Writer
	walker *outline.Walker
	opts   Options

	// unitScale maps font design units to output units.  The basis
	// 4096/unitsPerEm reproduces 26.6 fixed-point coordinates at a
	// 64-pixel nominal size, so output from different fonts lines up.
	unitScale float64

	offset      float64 // pen x position for text layout
	lineExtents outline.Extents
}

// New returns a Converter writing DXF records for glyphs of f to w.
func New(f *sfnt.Font, w io.Writer, opts Options) (*Converter, error) {
	sub, err := f.CMapTable.GetBest()
	if err != nil {
		return nil, fmt.Errorf("selecting cmap subtable: %w", err)
	}

	if opts.ArcSpacing <= 0 {
		opts.ArcSpacing = outline.DefaultArcSpacing
	}
	if opts.CurveSteps <= 0 {
		opts.CurveSteps = outline.DefaultCurveSteps
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}

	out := dxf.NewWriter(w)
	walker := outline.NewWalker(out)
	walker.ArcSpacing = opts.ArcSpacing
	walker.CurveSteps = opts.CurveSteps

	c := &Converter{
		font:      f,
		cmap:      sub,
		out:       out,
		walker:    walker,
		opts:      opts,
		unitScale: 4096 / float64(f.UnitsPerEm) * opts.Scale,
	}
	c.lineExtents.Reset()
	return c, nil
}

// Run renders one conversion: the section preamble, then either the
// printable ASCII range (font-generation mode) or the glyphs of text,
// then the postamble.  Characters without a glyph in the font are
// skipped silently.
func (c *Converter) Run(text string) error {
	c.out.Header()
	c.lineExtents.Reset()
	c.offset = 0

	if c.opts.GenFont {
		for r := rune(' '); r < 127; r++ {
			adv, ok := c.renderRune(r)
			if !ok {
				continue
			}
			c.lineExtents.AddExtents(&c.walker.GlyphExtents)
			c.writeDimensions(r, adv)
		}
	} else {
		for _, r := range text {
			adv, ok := c.renderRune(r)
			if !ok {
				continue
			}
			c.offset += adv
			c.lineExtents.AddExtents(&c.walker.GlyphExtents)
		}
	}

	c.out.Trailer()
	return c.out.Flush()
}

// Bounds returns the bounding box accumulated over all glyphs rendered
// so far, in output units.
func (c *Converter) Bounds() rect.Rect {
	return c.lineExtents.Rect()
}

// renderRune renders one glyph.  ok is false when the font has no
// glyph for r; in that case nothing is emitted and no state changes.
func (c *Converter) renderRune(r rune) (advance float64, ok bool) {
	gid := c.cmap.Lookup(r)
	if gid == 0 {
		return 0, false
	}

	c.walker.Layer = c.layerName(r)
	c.walker.GlyphExtents.Reset()

	if c.opts.LineScale > 0 {
		if bm := c.renderBitmap(gid); bm != nil {
			bm.Left += int(c.offset)
			c.walker.TraceBitmap(bm, c.opts.LineScale)
		}
	}

	if c.font.Outlines != nil {
		c.walkPath(c.font.Outlines.Path(gid))
	}

	adv := c.font.GlyphWidthPDF(gid) * float64(c.font.UnitsPerEm) / 1000 * c.unitScale
	return adv, true
}

// walkPath feeds the glyph's segment events through the walker,
// mapping coordinates to output units and applying the pen offset.
func (c *Converter) walkPath(p path.Path) {
	w := c.walker
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			w.MoveTo(c.dev(pts[0]))
		case path.CmdLineTo:
			w.LineTo(c.dev(pts[0]))
		case path.CmdQuadTo:
			w.QuadTo(c.dev(pts[0]), c.dev(pts[1]))
		case path.CmdCubeTo:
			w.CubeTo(c.dev(pts[0]), c.dev(pts[1]), c.dev(pts[2]))
		case path.CmdClose:
			w.ClosePath()
		}
	}
}

func (c *Converter) dev(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: p.X*c.unitScale + c.offset,
		Y: p.Y * c.unitScale,
	}
}

// writeDimensions emits the six metric records for the glyph just
// rendered, in the fixed order minx, maxx, miny, maxy, advx, advy.
func (c *Converter) writeDimensions(r rune, adv float64) {
	ext := &c.walker.GlyphExtents
	layer := c.layerName(r)
	c.out.Dimension("minx", ext.MinX, layer)
	c.out.Dimension("maxx", ext.MaxX, layer)
	c.out.Dimension("miny", ext.MinY, layer)
	c.out.Dimension("maxy", ext.MaxY, layer)
	c.out.Dimension("advx", int64(adv), layer)
	c.out.Dimension("advy", 0, layer)
}

// layerName selects the layer tag for a glyph: in font-generation mode
// the literal character for printable ASCII and an underscore-prefixed
// character code otherwise; outside font-generation mode the fixed
// user-supplied name, which may be empty.
func (c *Converter) layerName(r rune) string {
	if c.opts.GenFont {
		if r < ' ' || r > '~' {
			return fmt.Sprintf("_%d", r)
		}
		return string(r)
	}
	return c.opts.Layer
}
