package glyphcache_test

import (
	"log"
	"testing"

	"github.com/rebble/glyphcache"
	"github.com/rebble/glyphcache/config"
	"github.com/rebble/glyphcache/internal/fontimg"
	"github.com/rebble/glyphcache/internal/fonttest"
)

func withCacheCount(t *testing.T, n int) {
	t.Helper()
	orig := config.GetConfig()
	config.SetCacheCount(n)
	t.Cleanup(func() { config.SetConfig(orig) })
}

func setupDraw(t *testing.T, resourceID uint16) (*glyphcache.Registry, *glyphcache.Entry, *mockRasterizer, *mockTickSource) {
	t.Helper()
	loader := &mockResourceLoader{images: map[uint16][]byte{resourceID: buildFont(t)}}
	ticks := &mockTickSource{}
	r := glyphcache.NewRegistry(glyphcache.MainApp, loader, &mockFontKeyResolver{}, ticks, log.Default())
	e, err := r.LoadByID(resourceID)
	if err != nil {
		t.Fatalf("LoadByID: %v", err)
	}
	return r, e, &mockRasterizer{}, ticks
}

// Scenario 1: fresh load, ASCII string.
func TestDrawTextFreshLoadInsertsCodepoints(t *testing.T) {
	r, e, raster, _ := setupDraw(t, 42)

	if err := r.DrawText(e, raster, glyphcache.DrawContext{}, "Hi", glyphcache.Box{}, glyphcache.OverflowClip, glyphcache.AlignLeft, glyphcache.TextAttributes{}); err != nil {
		t.Fatalf("DrawText: %v", err)
	}
	if len(raster.calls) != 1 {
		t.Fatalf("raster.calls = %d, want 1", len(raster.calls))
	}
	if raster.calls[0].text != "Hi" {
		t.Errorf("rasterized text = %q, want %q", raster.calls[0].text, "Hi")
	}
}

// Scenario 2: repeat draw is a no-op insertion-wise (R1).
func TestDrawTextRepeatIsIdempotent(t *testing.T) {
	r, e, raster, _ := setupDraw(t, 42)

	if err := r.DrawText(e, raster, glyphcache.DrawContext{}, "Hi", glyphcache.Box{}, glyphcache.OverflowClip, glyphcache.AlignLeft, glyphcache.TextAttributes{}); err != nil {
		t.Fatalf("DrawText (first): %v", err)
	}
	sizeAfterFirst := len(raster.calls[0].fontImage)

	if err := r.DrawText(e, raster, glyphcache.DrawContext{}, "Hi", glyphcache.Box{}, glyphcache.OverflowClip, glyphcache.AlignLeft, glyphcache.TextAttributes{}); err != nil {
		t.Fatalf("DrawText (second): %v", err)
	}
	if len(raster.calls) != 2 {
		t.Fatalf("raster.calls = %d, want 2", len(raster.calls))
	}
	if len(raster.calls[1].fontImage) != sizeAfterFirst {
		t.Errorf("cache image size changed on repeat draw: %d -> %d", sizeAfterFirst, len(raster.calls[1].fontImage))
	}
}

// Scenario 3: overflow bypass — a draw needing more than CacheCount
// distinct codepoints skips the cache entirely.
func TestDrawTextOverflowBypassesCache(t *testing.T) {
	withCacheCount(t, 4)
	r, e, raster, _ := setupDraw(t, 42)

	if err := r.DrawText(e, raster, glyphcache.DrawContext{}, "ABCDE", glyphcache.Box{}, glyphcache.OverflowClip, glyphcache.AlignLeft, glyphcache.TextAttributes{}); err != nil {
		t.Fatalf("DrawText: %v", err)
	}
	if len(raster.calls) != 1 {
		t.Fatalf("raster.calls = %d, want 1", len(raster.calls))
	}
	// Bypass rasterizes from the pristine source image rather than the
	// cache image.
	if len(raster.calls[0].fontImage) == 0 {
		t.Fatal("expected a non-empty source image to be rasterized on bypass")
	}
}

// Scenario 4/5: eviction removes the oldest entry not in the retained set.
func TestDrawTextEvictsOldestFirst(t *testing.T) {
	withCacheCount(t, 3)
	r, e, raster, _ := setupDraw(t, 42)

	// Prime with three distinct codepoints at increasing ticks, one draw
	// each, so A is the oldest, then B, then C.
	for _, text := range []string{"A", "B", "C"} {
		if err := r.DrawText(e, raster, glyphcache.DrawContext{}, text, glyphcache.Box{}, glyphcache.OverflowClip, glyphcache.AlignLeft, glyphcache.TextAttributes{}); err != nil {
			t.Fatalf("DrawText (prime %q): %v", text, err)
		}
	}

	// Draw with one already-present codepoint (A) and one new (D); this
	// must evict exactly one of {B, C}, the oldest (B), never A.
	if err := r.DrawText(e, raster, glyphcache.DrawContext{}, "AD", glyphcache.Box{}, glyphcache.OverflowClip, glyphcache.AlignLeft, glyphcache.TextAttributes{}); err != nil {
		t.Fatalf("DrawText (evict): %v", err)
	}
	if len(raster.calls) != 4 {
		t.Fatalf("raster.calls = %d, want 4", len(raster.calls))
	}

	image := raster.calls[3].fontImage
	desc, err := fontimg.NewDescriptor(image)
	if err != nil {
		t.Fatalf("NewDescriptor: %v", err)
	}
	for cp, want := range map[rune]bool{'A': true, 'B': false, 'C': true, 'D': true} {
		pos, found, err := desc.Lookup(image, uint32(cp), 0)
		if err != nil || !found {
			t.Fatalf("Lookup(%q): found=%v err=%v", cp, found, err)
		}
		offset, err := desc.OffsetAt(image, pos)
		if err != nil {
			t.Fatalf("OffsetAt(%q): %v", cp, err)
		}
		if got := fontimg.OffsetValid(offset); got != want {
			t.Errorf("%q cached = %v, want %v", cp, got, want)
		}
	}
}

// Scenario 6: a malformed-adjacent but valid 3-byte UTF-8 sequence is
// decoded and cached as a single codepoint.
func TestDrawTextDecodesMultiByteUTF8(t *testing.T) {
	glyphs := []fonttest.Glyph{{Codepoint: 0x20AC, Width: 2, Height: 2, Bitmap: []byte{1, 1, 1, 1}}}
	image, err := fonttest.Build(tofuGlyph(), glyphs, fonttest.Options{Version: 1})
	if err != nil {
		t.Fatalf("fonttest.Build: %v", err)
	}
	loader := &mockResourceLoader{images: map[uint16][]byte{7: image}}
	r := glyphcache.NewRegistry(glyphcache.MainApp, loader, &mockFontKeyResolver{}, &mockTickSource{}, log.Default())
	e, err := r.LoadByID(7)
	if err != nil {
		t.Fatalf("LoadByID: %v", err)
	}
	raster := &mockRasterizer{}
	if err := r.DrawText(e, raster, glyphcache.DrawContext{}, "\xe2\x82\xac", glyphcache.Box{}, glyphcache.OverflowClip, glyphcache.AlignLeft, glyphcache.TextAttributes{}); err != nil {
		t.Fatalf("DrawText: %v", err)
	}
	if len(raster.calls) != 1 {
		t.Fatalf("raster.calls = %d, want 1", len(raster.calls))
	}
}

func TestDrawTextTofuAliasNeverAddedOrEvicted(t *testing.T) {
	withCacheCount(t, 2)
	r, e, raster, _ := setupDraw(t, 42)

	// A draw containing literal codepoint 4 (EOT, an unusual but legal
	// rune) must never attempt to cache or evict it.
	if err := r.DrawText(e, raster, glyphcache.DrawContext{}, "\x04A", glyphcache.Box{}, glyphcache.OverflowClip, glyphcache.AlignLeft, glyphcache.TextAttributes{}); err != nil {
		t.Fatalf("DrawText: %v", err)
	}

	// Fill the cache, then push past it so an eviction runs while 4 is in
	// the already-present set.
	for _, text := range []string{"\x04B", "\x04C"} {
		if err := r.DrawText(e, raster, glyphcache.DrawContext{}, text, glyphcache.Box{}, glyphcache.OverflowClip, glyphcache.AlignLeft, glyphcache.TextAttributes{}); err != nil {
			t.Fatalf("DrawText(%q): %v", text, err)
		}
	}
}
