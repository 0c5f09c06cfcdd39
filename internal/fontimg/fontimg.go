// Package fontimg decodes and encodes the on-disk font image format
// consumed by the downstream rasterizer this module does not itself
// implement. A font image is a contiguous byte buffer: a header, a hash
// table, an offset table, and a glyph region, laid out back to back with
// no padding.
//
// Header (little-endian, shared prefix for every version):
//
//	offset 0: version         uint8  (1 or 2)
//	offset 1: fontinfoSize    uint16 (not read: versions 1 and 2 have
//	                                  fixed header sizes, and any other
//	                                  version is rejected as malformed)
//	offset 3: glyphAmount     uint16
//
// Version 2 continues:
//
//	offset 5: hashTableSize   uint8
//	offset 6: codepointBytes  uint8  (2 or 4)
//	offset 7: features       uint8  (bit 0: 2-byte glyph offset)
//
// Version 1 has a fixed header of V1Length bytes, a fixed 255-entry hash
// table, 4-byte codepoints and 4-byte offsets; fields beyond offset 5 are
// absent.
//
// The header is followed immediately by the hash table (HashTableSize
// entries of {offsetTableOffset uint16, offsetTableSize uint16}), then the
// offset table (GlyphAmount entries of {codepoint, offset}, field widths
// per the header), then the glyph region.
//
// A glyph record is GlyphHeaderSize bytes of fixed glyph metadata followed
// by Width*Height bytes of bitmap. An offset table entry's offset field,
// when valid, is relative to the start of the glyph region. The sentinel
// value SentinelAbsent (0xFFFF) means "no glyph for this codepoint"; the
// value TofuOffset (4) means "served by the always-resident tofu glyph",
// which itself lives at glyph-region byte offset TofuOffset.
//
// In a cache image (as opposed to a pristine source font image), every
// appended glyph is preceded by a 4-byte little-endian access timestamp:
// the offset table's offset field still points past the timestamp, at the
// glyph header, so bytes [offset-4 : offset) hold the timestamp and the
// layout remains byte-compatible with a plain source font image.
package fontimg

import "encoding/binary"

// Structural constants of the font image format.
const (
	// V1Length is the fixed header size of a version-1 font image.
	V1Length = 5
	// V2Length is the fixed header size of a version-2 font image.
	V2Length = 8

	// HashTableSizeV1 is the fixed hash-table bucket count for version 1.
	HashTableSizeV1 = 255
	// CodepointBytesV1 is the fixed codepoint field width for version 1.
	CodepointBytesV1 = 4
	// OffsetBytesDefault is the offset field width when the 2-byte-offset
	// feature bit is not set (all of version 1, or version 2 without the
	// feature).
	OffsetBytesDefault = 4
	// OffsetBytes2Byte is the offset field width when the 2-byte-offset
	// feature bit is set.
	OffsetBytes2Byte = 2

	// Feature2ByteGlyphOffset is the features bitfield bit selecting a
	// 2-byte (rather than 4-byte) offset field.
	Feature2ByteGlyphOffset = 1 << 0

	// HashEntrySize is the byte size of one hash-table entry
	// ({offsetTableOffset uint16, offsetTableSize uint16}).
	HashEntrySize = 4

	// GlyphHeaderSize is the fixed size of a glyph's metadata header,
	// preceding its width*height bitmap bytes.
	GlyphHeaderSize = 5

	// TimestampSize is the width of the access timestamp prefix a cache
	// image stores before each inserted glyph record.
	TimestampSize = 4

	// SentinelAbsent marks an offset table entry with no glyph.
	SentinelAbsent = 0xFFFF
	// TofuOffset is both the conventional glyph-region byte offset of the
	// tofu fallback glyph and the offset-table sentinel meaning "serve
	// this codepoint from tofu".
	TofuOffset = 4
)

// GlyphHeader is the fixed-width metadata preceding a glyph's bitmap.
// Side-bearing and advance semantics are opaque to this package and to
// the spec this format serves; they are carried verbatim for the
// rasterizer to interpret.
type GlyphHeader struct {
	Width       uint8
	Height      uint8
	LeftBearing int8
	TopBearing  int8
	Advance     uint8
}

// BitmapSize returns the number of bitmap bytes following the header.
func (h GlyphHeader) BitmapSize() int {
	return int(h.Width) * int(h.Height)
}

// RecordSize returns GlyphHeaderSize + the bitmap size.
func (h GlyphHeader) RecordSize() int {
	return GlyphHeaderSize + h.BitmapSize()
}

// ReadGlyphHeader decodes the glyph header at absolute byte offset at.
func ReadGlyphHeader(image []byte, at int) (GlyphHeader, error) {
	if at < 0 || at+GlyphHeaderSize > len(image) {
		return GlyphHeader{}, Errorf("glyph header at %d out of bounds (len %d)", at, len(image))
	}
	b := image[at : at+GlyphHeaderSize]
	return GlyphHeader{
		Width:       b[0],
		Height:      b[1],
		LeftBearing: int8(b[2]),
		TopBearing:  int8(b[3]),
		Advance:     b[4],
	}, nil
}

// WriteGlyphHeader encodes h at absolute byte offset at.
func WriteGlyphHeader(image []byte, at int, h GlyphHeader) error {
	if at < 0 || at+GlyphHeaderSize > len(image) {
		return Errorf("glyph header at %d out of bounds (len %d)", at, len(image))
	}
	b := image[at : at+GlyphHeaderSize]
	b[0] = h.Width
	b[1] = h.Height
	b[2] = byte(h.LeftBearing)
	b[3] = byte(h.TopBearing)
	b[4] = h.Advance
	return nil
}

// OffsetValid reports whether an offset table value refers to a real,
// inserted glyph record rather than "absent" or "served by tofu".
func OffsetValid(v uint32) bool {
	return v != SentinelAbsent && v != TofuOffset && v != 0
}

// readWidth reads a little-endian unsigned integer of the given byte width.
func readWidth(b []byte, width int) uint32 {
	if width == 2 {
		return uint32(binary.LittleEndian.Uint16(b))
	}
	return binary.LittleEndian.Uint32(b)
}

// writeWidth writes v as a little-endian unsigned integer of the given
// byte width, truncating silently as the original format does.
func writeWidth(b []byte, width int, v uint32) {
	if width == 2 {
		binary.LittleEndian.PutUint16(b, uint16(v))
		return
	}
	binary.LittleEndian.PutUint32(b, v)
}
