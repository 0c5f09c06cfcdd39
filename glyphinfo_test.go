package glyphcache_test

import (
	"errors"
	"log"
	"testing"

	"github.com/rebble/glyphcache"
)

func TestGlyphInfoReturnsMetricsAndBitmap(t *testing.T) {
	loader := &mockResourceLoader{images: map[uint16][]byte{42: buildFont(t)}}
	r := glyphcache.NewRegistry(glyphcache.MainApp, loader, &mockFontKeyResolver{}, &mockTickSource{}, log.Default())
	e, err := r.LoadByID(42)
	if err != nil {
		t.Fatalf("LoadByID: %v", err)
	}

	header, bitmap, err := r.GlyphInfo(e, 'A')
	if err != nil {
		t.Fatalf("GlyphInfo: %v", err)
	}
	if header.Width == 0 || header.Height == 0 {
		t.Errorf("GlyphInfo returned zero-sized header: %+v", header)
	}
	if len(bitmap) != int(header.Width)*int(header.Height) {
		t.Errorf("len(bitmap) = %d, want %d", len(bitmap), int(header.Width)*int(header.Height))
	}
}

func TestGlyphInfoUnknownCodepoint(t *testing.T) {
	loader := &mockResourceLoader{images: map[uint16][]byte{42: buildFont(t)}}
	r := glyphcache.NewRegistry(glyphcache.MainApp, loader, &mockFontKeyResolver{}, &mockTickSource{}, log.Default())
	e, err := r.LoadByID(42)
	if err != nil {
		t.Fatalf("LoadByID: %v", err)
	}

	if _, _, err := r.GlyphInfo(e, 'あ'); !errors.Is(err, glyphcache.ErrCodepointNotInFont) {
		t.Fatalf("GlyphInfo error = %v, want ErrCodepointNotInFont", err)
	}
}

func TestGlyphInfoReloadsSourceEachCall(t *testing.T) {
	loader := &mockResourceLoader{images: map[uint16][]byte{42: buildFont(t)}}
	r := glyphcache.NewRegistry(glyphcache.MainApp, loader, &mockFontKeyResolver{}, &mockTickSource{}, log.Default())
	e, err := r.LoadByID(42)
	if err != nil {
		t.Fatalf("LoadByID: %v", err)
	}
	loadsAfterInit := loader.loads

	if _, _, err := r.GlyphInfo(e, 'A'); err != nil {
		t.Fatalf("GlyphInfo: %v", err)
	}
	if _, _, err := r.GlyphInfo(e, 'B'); err != nil {
		t.Fatalf("GlyphInfo: %v", err)
	}
	if loader.loads != loadsAfterInit+2 {
		t.Errorf("loader.loads = %d, want %d (one fresh load per GlyphInfo call)", loader.loads, loadsAfterInit+2)
	}
}
