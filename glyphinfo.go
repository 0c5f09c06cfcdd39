package glyphcache

import (
	"fmt"

	"github.com/rebble/glyphcache/internal/fontimg"
)

// GlyphInfo looks up codepoint's metrics and bitmap in e's source font,
// for callers that need glyph metrics (e.g. text layout/measurement)
// without driving a full DrawText. It takes an *Entry rather than a font
// image, so *Registry does not satisfy GlyphInfoAccessor.
//
// Per spec.md §5's resource policy, the source buffer is loaded fresh for
// this single lookup and released before GlyphInfo returns; nothing is
// retained on e.
func (r *Registry) GlyphInfo(e *Entry, codepoint rune) (GlyphHeader, []byte, error) {
	source, err := r.loader.LoadResource(e.resourceID)
	if err != nil {
		return GlyphHeader{}, nil, fmt.Errorf("glyphcache[%s]: loading resource %d: %w", r.role, e.resourceID, err)
	}

	desc, err := fontimg.NewDescriptor(source)
	if err != nil {
		return GlyphHeader{}, nil, wrapMalformed(err)
	}

	pos, found, err := desc.Lookup(source, uint32(codepoint), r.hashScanBound())
	if err != nil {
		return GlyphHeader{}, nil, wrapMalformed(err)
	}
	if !found {
		return GlyphHeader{}, nil, fmt.Errorf("%w: %d", ErrCodepointNotInFont, codepoint)
	}

	offset, err := desc.OffsetAt(source, pos)
	if err != nil {
		return GlyphHeader{}, nil, wrapMalformed(err)
	}
	if offset == fontimg.SentinelAbsent {
		return GlyphHeader{}, nil, fmt.Errorf("%w: %d", ErrCodepointNotInFont, codepoint)
	}

	abs := desc.GlyphAbs(offset)
	raw, err := fontimg.ReadGlyphHeader(source, abs)
	if err != nil {
		return GlyphHeader{}, nil, wrapMalformed(err)
	}
	header := GlyphHeader{
		Width:       raw.Width,
		Height:      raw.Height,
		LeftBearing: raw.LeftBearing,
		TopBearing:  raw.TopBearing,
		Advance:     raw.Advance,
	}

	bitmapStart := abs + fontimg.GlyphHeaderSize
	bitmap := make([]byte, raw.BitmapSize())
	copy(bitmap, source[bitmapStart:bitmapStart+raw.BitmapSize()])

	return header, bitmap, nil
}
