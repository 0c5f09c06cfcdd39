package glyphcache

// ResourceLoader loads a font image by resource id. Implementations own
// the resource table and the transport (flash, DMA, USART) that reads it;
// this package only ever sees the decoded byte slice.
type ResourceLoader interface {
	LoadResource(id uint16) ([]byte, error)
}

// FontKeyResolver maps a caller-facing font key string (e.g. a system
// font name) to the resource id LoadResource expects.
type FontKeyResolver interface {
	ResolveFontKey(key string) (uint16, error)
}

// ThreadRoleOracle reports which ThreadRole the calling context belongs
// to, so the public API can dispatch to the matching registry without
// every call site passing a ThreadRole explicitly.
type ThreadRoleOracle interface {
	CurrentThreadRole() ThreadRole
}

// TickSource supplies the monotonic tick used to timestamp newly cached
// glyphs and to rank them for eviction.
type TickSource interface {
	MonotonicTick() uint32
}

// Rasterizer draws text from a font image. It normally receives the
// font's current cache image; when a draw bypasses the cache for being
// over capacity it receives the pristine source image instead. Either way
// it reads glyph bitmaps directly out of the image it is given.
type Rasterizer interface {
	Rasterize(ctx DrawContext, text string, fontImage []byte, box Box, overflow OverflowMode, align Alignment, attrs TextAttributes) error
}

// GlyphInfoAccessor exposes a single glyph's header and bitmap from a
// font image, for callers that need glyph metrics without going through
// DrawText (e.g. text layout/measurement).
type GlyphInfoAccessor interface {
	GlyphInfo(fontImage []byte, codepoint rune) (GlyphHeader, []byte, error)
}

// GlyphHeader mirrors internal/fontimg.GlyphHeader at the public API
// boundary, so callers of GlyphInfoAccessor need not import an internal
// package.
type GlyphHeader struct {
	Width       uint8
	Height      uint8
	LeftBearing int8
	TopBearing  int8
	Advance     uint8
}
