// Package fonttest builds synthetic font images in this module's on-disk
// format for use by tests and by cmd/genfont. It is a test/tooling helper,
// not part of the public API, and deliberately duplicates none of
// internal/fontimg's reading logic: it is the independent writer half of
// the format, so a round trip through both packages is a meaningful check.
package fonttest

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// Glyph describes one codepoint's entry in a synthetic font.
type Glyph struct {
	Codepoint                rune
	Width, Height             uint8
	LeftBearing, TopBearing   int8
	Advance                   uint8
	Bitmap                    []byte // len must be Width*Height unless AliasTofu
	AliasTofu                 bool   // if true, this codepoint's offset table entry points at the tofu glyph instead of owning a bitmap
}

// Options configures the header fields of a synthetic font image.
type Options struct {
	Version        uint8 // 1 or 2
	HashTableSize  int   // version 2 only; version 1 is fixed at 255
	CodepointBytes int   // version 2 only: 2 or 4; version 1 is fixed at 4
	TwoByteOffset  bool  // version 2 only: selects the 2-byte offset feature
}

const (
	v1Length  = 5
	v2Length  = 8
	hashEntry = 4
	glyphHdr  = 5
)

// Build assembles a font image containing the tofu glyph plus glyphs, in
// this package's on-disk format (see internal/fontimg's package doc for
// the layout this mirrors).
func Build(tofu Glyph, glyphs []Glyph, opts Options) ([]byte, error) {
	var headerSize, hashTableSize, codepointBytes, offsetBytes int
	var features uint8

	switch opts.Version {
	case 1:
		headerSize = v1Length
		hashTableSize = 255
		codepointBytes = 4
		offsetBytes = 4
	case 2:
		headerSize = v2Length
		hashTableSize = opts.HashTableSize
		codepointBytes = opts.CodepointBytes
		if hashTableSize <= 0 || (codepointBytes != 2 && codepointBytes != 4) {
			return nil, fmt.Errorf("fonttest: invalid version-2 options %+v", opts)
		}
		if opts.TwoByteOffset {
			features |= 1
			offsetBytes = 2
		} else {
			offsetBytes = 4
		}
	default:
		return nil, fmt.Errorf("fonttest: unsupported version %d", opts.Version)
	}

	if int(tofu.Width)*int(tofu.Height) != len(tofu.Bitmap) {
		return nil, fmt.Errorf("fonttest: tofu bitmap length %d does not match %dx%d", len(tofu.Bitmap), tofu.Width, tofu.Height)
	}
	for _, g := range glyphs {
		if !g.AliasTofu && int(g.Width)*int(g.Height) != len(g.Bitmap) {
			return nil, fmt.Errorf("fonttest: glyph U+%04X bitmap length %d does not match %dx%d", g.Codepoint, len(g.Bitmap), g.Width, g.Height)
		}
	}

	entrySize := codepointBytes + offsetBytes
	offsetTableOff := headerSize + hashTableSize*hashEntry
	glyphAmount := len(glyphs)
	glyphRegion := offsetTableOff + entrySize*glyphAmount

	// Glyph region: 4 reserved bytes, then the tofu record at offset 4,
	// then every non-alias glyph's record, in order.
	tofuRecSize := glyphHdr + len(tofu.Bitmap)
	type placed struct {
		g      Glyph
		offset int // absolute offset-table offset value (relative to glyphRegion), or tofuOffset alias
	}
	placements := make([]placed, 0, len(glyphs))
	cursor := 4 + tofuRecSize
	for _, g := range glyphs {
		if g.AliasTofu {
			placements = append(placements, placed{g, 4})
			continue
		}
		placements = append(placements, placed{g, cursor})
		cursor += glyphHdr + len(g.Bitmap)
	}
	totalSize := glyphRegion + cursor

	image := make([]byte, totalSize)
	image[0] = opts.Version
	binary.LittleEndian.PutUint16(image[1:3], uint16(headerSize))
	binary.LittleEndian.PutUint16(image[3:5], uint16(glyphAmount))
	if opts.Version == 2 {
		image[5] = byte(hashTableSize)
		image[6] = byte(codepointBytes)
		image[7] = features
	}

	// Bucket entries by hash, preserving per-bucket insertion order, so
	// each bucket's run is contiguous in the offset table.
	buckets := make(map[int][]placed)
	for _, p := range placements {
		b := int(p.g.Codepoint) % hashTableSize
		buckets[b] = append(buckets[b], p)
	}

	offsetTablePos := offsetTableOff
	for b := 0; b < hashTableSize; b++ {
		entries := buckets[b]
		hashPos := headerSize + b*hashEntry
		binary.LittleEndian.PutUint16(image[hashPos:hashPos+2], uint16(offsetTablePos-offsetTableOff))
		binary.LittleEndian.PutUint16(image[hashPos+2:hashPos+4], uint16(len(entries)))
		for _, p := range entries {
			writeCodepoint(image[offsetTablePos:], codepointBytes, uint32(p.g.Codepoint))
			writeOffsetField(image[offsetTablePos+codepointBytes:], offsetBytes, uint32(p.offset))
			offsetTablePos += entrySize
		}
	}

	// Glyph region.
	writeGlyphRecord(image[glyphRegion+4:], tofu.Width, tofu.Height, tofu.LeftBearing, tofu.TopBearing, tofu.Advance, tofu.Bitmap)
	for _, p := range placements {
		if p.g.AliasTofu {
			continue
		}
		writeGlyphRecord(image[glyphRegion+p.offset:], p.g.Width, p.g.Height, p.g.LeftBearing, p.g.TopBearing, p.g.Advance, p.g.Bitmap)
	}

	return image, nil
}

func writeGlyphRecord(b []byte, width, height uint8, left, top int8, advance uint8, bitmap []byte) {
	b[0] = width
	b[1] = height
	b[2] = byte(left)
	b[3] = byte(top)
	b[4] = advance
	copy(b[glyphHdr:], bitmap)
}

func writeCodepoint(b []byte, width int, v uint32) {
	if width == 2 {
		binary.LittleEndian.PutUint16(b, uint16(v))
		return
	}
	binary.LittleEndian.PutUint32(b, v)
}

func writeOffsetField(b []byte, width int, v uint32) {
	if width == 2 {
		binary.LittleEndian.PutUint16(b, uint16(v))
		return
	}
	binary.LittleEndian.PutUint32(b, v)
}

// SortedCodepoints is a small helper for tests that need a deterministic
// iteration order over a set of codepoints.
func SortedCodepoints(cps map[rune]bool) []rune {
	out := make([]rune, 0, len(cps))
	for cp := range cps {
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
