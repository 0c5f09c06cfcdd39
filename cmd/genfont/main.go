// Command genfont rasterizes a handful of ASCII glyphs from a real
// outline font and packs them into a synthetic source font image in this
// module's on-disk format, for use as a non-synthetic fixture by the demo
// and by tests that want a realistic glyph shape rather than a hand-built
// checkerboard bitmap.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/rebble/glyphcache/internal/fonttest"
)

var (
	outPath = flag.String("out", "sample_font.bin", "output path for the generated font image")
	size    = flag.Float64("size", 16, "point size to rasterize glyphs at")
)

const sampleChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789 .,!?"

func main() {
	flag.Parse()

	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("genfont: parse goregular: %v", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    *size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.Fatalf("genfont: build face: %v", err)
	}
	defer face.Close()

	tofu, err := rasterizeGlyph(face, '?')
	if err != nil {
		log.Fatalf("genfont: rasterize tofu glyph: %v", err)
	}

	var glyphs []fonttest.Glyph
	for _, r := range sampleChars {
		g, err := rasterizeGlyph(face, r)
		if err != nil {
			log.Printf("genfont: skipping %q: %v", r, err)
			continue
		}
		glyphs = append(glyphs, g)
	}

	fontImage, err := fonttest.Build(tofu, glyphs, fonttest.Options{
		Version:        2,
		HashTableSize:  64,
		CodepointBytes: 2,
		TwoByteOffset:  true,
	})
	if err != nil {
		log.Fatalf("genfont: build font image: %v", err)
	}

	if err := os.WriteFile(*outPath, fontImage, 0o644); err != nil {
		log.Fatalf("genfont: write %s: %v", *outPath, err)
	}
	fmt.Printf("genfont: wrote %d glyphs (%d bytes) to %s\n", len(glyphs), len(fontImage), *outPath)
}

// rasterizeGlyph draws one rune with face and converts the resulting mask
// into a 1-bit-per-byte bitmap in row-major order, the shape this
// package's glyph records store.
func rasterizeGlyph(face font.Face, r rune) (fonttest.Glyph, error) {
	bounds, advance, ok := face.GlyphBounds(r)
	if !ok {
		return fonttest.Glyph{}, fmt.Errorf("no glyph for %q", r)
	}

	width := (bounds.Max.X - bounds.Min.X).Ceil()
	height := (bounds.Max.Y - bounds.Min.Y).Ceil()
	if width <= 0 || height <= 0 {
		// A space or other zero-ink glyph still occupies advance width.
		width, height = 1, 1
	}
	if width > 255 || height > 255 {
		return fonttest.Glyph{}, fmt.Errorf("glyph %q too large (%dx%d)", r, width, height)
	}

	bitmap := make([]byte, width*height)
	mask, maskOrigin, ok := glyphMask(face, r)
	if ok {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				_, _, _, a := mask.At(maskOrigin.X+x, maskOrigin.Y+y).RGBA()
				if a > 0x7FFF {
					bitmap[y*width+x] = 1
				}
			}
		}
	}

	return fonttest.Glyph{
		Codepoint: r,
		Width:     uint8(width),
		Height:    uint8(height),
		Advance:   uint8(advance.Ceil()),
		Bitmap:    bitmap,
	}, nil
}

func glyphMask(face font.Face, r rune) (image.Image, image.Point, bool) {
	_, mask, maskp, _, ok := face.Glyph(fixed.P(0, 0), r)
	if !ok {
		return nil, image.Point{}, false
	}
	return mask, maskp, true
}
