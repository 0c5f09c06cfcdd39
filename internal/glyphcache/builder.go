// Package cache implements the mutable cache-image builder: creating an
// empty cache image from a source font image, and appending newly
// requested glyphs to a cache image that is already in use. Eviction lives
// alongside it in evict.go since both operate on the same image layout.
//
// Neither operation mutates its input in place; whenever the image changes,
// the result is a freshly allocated image (AddGlyphs hands back its input
// unchanged when it has nothing to append), matching the immutable-Descriptor contract of
// internal/fontimg and making the growth-by-reallocation behavior of the
// original cache explicit in the Go API.
package cache

import (
	"encoding/binary"

	"github.com/rebble/glyphcache/internal/fontimg"
)

// BuildEmpty derives an empty cache image from a source font image: same
// header, hash table, and offset table, but with every non-tofu offset
// reset to fontimg.SentinelAbsent, and a glyph region holding only the
// tofu glyph (copied from source).
func BuildEmpty(source []byte) (image []byte, size int, err error) {
	desc, err := fontimg.NewDescriptor(source)
	if err != nil {
		return nil, 0, err
	}

	tofuAbs := desc.GlyphRegion + fontimg.TofuOffset
	tofuHeader, err := fontimg.ReadGlyphHeader(source, tofuAbs)
	if err != nil {
		return nil, 0, err
	}
	total := tofuAbs + tofuHeader.RecordSize()
	if total > len(source) {
		return nil, 0, fontimg.Errorf("tofu glyph record at %d overruns source image (len %d)", tofuAbs, len(source))
	}

	image = make([]byte, total)
	copy(image, source[:total])

	desc, err = fontimg.NewDescriptor(image)
	if err != nil {
		return nil, 0, err
	}
	for i := 0; i < desc.GlyphAmount; i++ {
		pos := desc.EntryPos(i)
		offset, err := desc.OffsetAt(image, pos)
		if err != nil {
			return nil, 0, err
		}
		if offset == fontimg.TofuOffset {
			continue
		}
		if err := desc.SetOffsetAt(image, pos, fontimg.SentinelAbsent); err != nil {
			return nil, 0, err
		}
	}
	return image, total, nil
}

// AddGlyphs appends the glyph record for every requested codepoint not
// already cached (and not aliased to tofu) to cacheImage, copying glyph
// data from sourceImage and prefixing each appended record with a 4-byte
// access timestamp. It returns the grown image, its new size, and the
// count of glyphs actually appended.
//
// A codepoint absent from the source font, or whose source offset is
// itself SentinelAbsent, is reported via fontimg.ErrMalformedFont: the
// caller is expected to only request codepoints the source font can
// serve.
func AddGlyphs(cacheImage []byte, cacheSize int, sourceImage []byte, codepoints []uint32, tick uint32, scanBound int) (newImage []byte, newSize int, added int, err error) {
	if len(codepoints) == 0 {
		return cacheImage, cacheSize, 0, nil
	}

	sourceDesc, err := fontimg.NewDescriptor(sourceImage)
	if err != nil {
		return nil, 0, 0, err
	}

	type pending struct {
		codepoint  uint32
		sourceAbs  int
		recordSize int
	}
	var work []pending
	growth := 0

	for _, cp := range codepoints {
		pos, found, err := sourceDesc.Lookup(sourceImage, cp, scanBound)
		if err != nil {
			return nil, 0, 0, err
		}
		if !found {
			return nil, 0, 0, fontimg.Errorf("codepoint %d absent from source font", cp)
		}
		offset, err := sourceDesc.OffsetAt(sourceImage, pos)
		if err != nil {
			return nil, 0, 0, err
		}
		if offset == fontimg.SentinelAbsent {
			return nil, 0, 0, fontimg.Errorf("codepoint %d has no glyph in source font", cp)
		}
		if offset == fontimg.TofuOffset {
			// Already servable by the cache's always-resident tofu glyph.
			continue
		}
		abs := sourceDesc.GlyphAbs(offset)
		header, err := fontimg.ReadGlyphHeader(sourceImage, abs)
		if err != nil {
			return nil, 0, 0, err
		}
		rec := header.RecordSize()
		work = append(work, pending{cp, abs, rec})
		growth += fontimg.TimestampSize + rec
	}

	if len(work) == 0 {
		return cacheImage, cacheSize, 0, nil
	}

	newImage = make([]byte, cacheSize+growth)
	copy(newImage, cacheImage[:cacheSize])

	desc, err := fontimg.NewDescriptor(newImage)
	if err != nil {
		return nil, 0, 0, err
	}

	pos := cacheSize
	for _, p := range work {
		entryPos, found, err := desc.Lookup(newImage, p.codepoint, scanBound)
		if err != nil {
			return nil, 0, 0, err
		}
		if !found {
			return nil, 0, 0, fontimg.Errorf("codepoint %d absent from cache offset table", p.codepoint)
		}
		existing, err := desc.OffsetAt(newImage, entryPos)
		if err != nil {
			return nil, 0, 0, err
		}
		if fontimg.OffsetValid(existing) {
			// Already cached by a previous call; leave it alone.
			continue
		}

		glyphOffset := uint32(pos - desc.GlyphRegion + fontimg.TofuOffset)
		if err := desc.SetOffsetAt(newImage, entryPos, glyphOffset); err != nil {
			return nil, 0, 0, err
		}

		binary.LittleEndian.PutUint32(newImage[pos:pos+fontimg.TimestampSize], tick)
		pos += fontimg.TimestampSize
		copy(newImage[pos:pos+p.recordSize], sourceImage[p.sourceAbs:p.sourceAbs+p.recordSize])
		pos += p.recordSize
		added++
	}

	return newImage[:pos], pos, added, nil
}
