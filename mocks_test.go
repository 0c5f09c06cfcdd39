package glyphcache_test

import (
	"fmt"

	"github.com/rebble/glyphcache"
	"github.com/rebble/glyphcache/internal/fonttest"
)

type mockResourceLoader struct {
	images map[uint16][]byte
	loads  int
}

func (m *mockResourceLoader) LoadResource(id uint16) ([]byte, error) {
	m.loads++
	img, ok := m.images[id]
	if !ok {
		return nil, fmt.Errorf("mockResourceLoader: no resource %d", id)
	}
	return img, nil
}

type mockFontKeyResolver struct {
	keys map[string]uint16
}

func (m *mockFontKeyResolver) ResolveFontKey(key string) (uint16, error) {
	id, ok := m.keys[key]
	if !ok {
		return 0, fmt.Errorf("mockFontKeyResolver: unknown key %q", key)
	}
	return id, nil
}

type mockTickSource struct {
	tick uint32
}

func (m *mockTickSource) MonotonicTick() uint32 {
	t := m.tick
	m.tick++
	return t
}

type mockThreadRoleOracle struct {
	role glyphcache.ThreadRole
}

func (m mockThreadRoleOracle) CurrentThreadRole() glyphcache.ThreadRole {
	return m.role
}

type rasterizeCall struct {
	text      string
	fontImage []byte
}

type mockRasterizer struct {
	calls []rasterizeCall
}

func (m *mockRasterizer) Rasterize(ctx glyphcache.DrawContext, text string, fontImage []byte, box glyphcache.Box, overflow glyphcache.OverflowMode, align glyphcache.Alignment, attrs glyphcache.TextAttributes) error {
	m.calls = append(m.calls, rasterizeCall{text, fontImage})
	return nil
}

func tofuGlyph() fonttest.Glyph {
	return fonttest.Glyph{
		Width: 2, Height: 2, Advance: 3,
		Bitmap: []byte{1, 1, 1, 1},
	}
}

func asciiGlyph(r rune) fonttest.Glyph {
	return fonttest.Glyph{Codepoint: r, Width: 2, Height: 2, Advance: 3, Bitmap: []byte{1, 1, 1, 1}}
}
