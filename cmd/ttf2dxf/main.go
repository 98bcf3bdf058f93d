// Command ttf2dxf converts the glyphs of a TrueType/OpenType font into
// a DXF file.  In font-generation mode (-F) every printable ASCII
// character becomes its own named layer, with DIMENSION records for
// minx, maxx, miny, maxy, advx and advy; otherwise the trailing
// argument is rendered as a line of text.
//
// Curved outline segments are approximated by tangent-continuous
// circular arc pairs, so the output contains only straight and
// bulge-arc polyline vertices.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/text/encoding/ianaindex"
	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/dxf/convert"
	"seehuhn.de/go/dxf/outline"
)

func main() {
	spacing := flag.Float64("s", outline.DefaultArcSpacing,
		"curve length per arc pair, in font units")
	fontFile := flag.String("f", "",
		"font file to convert (required)")
	genFont := flag.Bool("F", false,
		"render all printable ASCII characters, one layer per glyph")
	scale := flag.Float64("c", 1.0,
		"extra coordinate scale factor")
	lineScale := flag.Int("l", 0,
		"trace a monochrome glyph rendering with this many lines per em")
	layer := flag.String("L", "",
		"layer name for all entities")
	encName := flag.String("e", "",
		"IANA name of the text argument's character encoding (default UTF-8)")
	flag.Parse()

	if *fontFile == "" {
		fmt.Fprintln(os.Stderr, "ttf2dxf: no font file given, use -f")
		flag.Usage()
		os.Exit(99)
	}
	if *lineScale != 0 && *lineScale < 24 {
		*lineScale = 24
	}

	text := flag.Arg(0)
	if *encName != "" && text != "" {
		enc, err := ianaindex.IANA.Encoding(*encName)
		if err != nil || enc == nil {
			fmt.Fprintf(os.Stderr, "ttf2dxf: unknown encoding %q\n", *encName)
			os.Exit(99)
		}
		text, err = enc.NewDecoder().String(text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ttf2dxf: cannot decode text as %s: %v\n",
				*encName, err)
			os.Exit(99)
		}
	}

	font, err := sfnt.ReadFile(*fontFile)
	if err != nil {
		fatal("sfnt.ReadFile", err)
	}

	conv, err := convert.New(font, os.Stdout, convert.Options{
		ArcSpacing: *spacing,
		Scale:      *scale,
		Layer:      *layer,
		GenFont:    *genFont,
		LineScale:  *lineScale,
	})
	if err != nil {
		fatal("convert.New", err)
	}
	if err := conv.Run(text); err != nil {
		fatal("writing DXF", err)
	}
}

func fatal(where string, err error) {
	fmt.Fprintf(os.Stderr, "Fatal error in %s: %v\n", where, err)
	os.Exit(1)
}
