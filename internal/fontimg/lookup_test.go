package fontimg_test

import (
	"testing"

	"github.com/rebble/glyphcache/internal/fontimg"
	"github.com/rebble/glyphcache/internal/fonttest"
)

func buildLookupFixture(t *testing.T, opts fonttest.Options) ([]byte, fontimg.Descriptor) {
	t.Helper()
	image, err := fonttest.Build(tofuGlyph(), []fonttest.Glyph{
		{Codepoint: 'A', Width: 3, Height: 3, Bitmap: []byte{1, 1, 1, 1, 1, 1, 1, 1, 1}},
		{Codepoint: 'B', Width: 2, Height: 2, Bitmap: []byte{1, 1, 1, 1}},
		{Codepoint: 'C', Width: 1, Height: 1, Bitmap: []byte{1}},
		{Codepoint: 0x4E2D, AliasTofu: true}, // shares the tofu fallback
	}, opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	d, err := fontimg.NewDescriptor(image)
	if err != nil {
		t.Fatalf("NewDescriptor: %v", err)
	}
	return image, d
}

func TestLookupFindsEachCodepoint(t *testing.T) {
	image, d := buildLookupFixture(t, fonttest.Options{Version: 1})

	for _, cp := range []rune{'A', 'B', 'C'} {
		pos, found, err := d.Lookup(image, uint32(cp), 0)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", cp, err)
		}
		if !found {
			t.Fatalf("Lookup(%q): not found", cp)
		}
		got, err := d.CodepointAt(image, pos)
		if err != nil {
			t.Fatalf("CodepointAt: %v", err)
		}
		if got != uint32(cp) {
			t.Errorf("CodepointAt = %d, want %d", got, cp)
		}
	}
}

func TestLookupAliasTofuResolves(t *testing.T) {
	image, d := buildLookupFixture(t, fonttest.Options{Version: 1})

	pos, found, err := d.Lookup(image, 0x4E2D, 0)
	if err != nil || !found {
		t.Fatalf("Lookup(alias): found=%v err=%v", found, err)
	}
	offset, err := d.OffsetAt(image, pos)
	if err != nil {
		t.Fatalf("OffsetAt: %v", err)
	}
	if offset != fontimg.TofuOffset {
		t.Errorf("offset = %d, want TofuOffset", offset)
	}
}

func TestLookupMiss(t *testing.T) {
	image, d := buildLookupFixture(t, fonttest.Options{Version: 1})

	_, found, err := d.Lookup(image, 'Z', 0)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if found {
		t.Fatal("expected miss for codepoint not present in font")
	}
}

func TestLookupScanBoundLimitsSearch(t *testing.T) {
	// Force every codepoint into the same bucket with a single-bucket hash
	// table, then verify a scanBound of 1 only finds the first entry in
	// that bucket's run.
	image, err := fonttest.Build(tofuGlyph(), []fonttest.Glyph{
		{Codepoint: 'A', Width: 1, Height: 1, Bitmap: []byte{1}},
		{Codepoint: 'B', Width: 1, Height: 1, Bitmap: []byte{1}},
	}, fonttest.Options{Version: 2, HashTableSize: 1, CodepointBytes: 4})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	d, err := fontimg.NewDescriptor(image)
	if err != nil {
		t.Fatalf("NewDescriptor: %v", err)
	}

	_, found, err := d.Lookup(image, 'B', 1)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if found {
		t.Fatal("expected scanBound=1 to miss the second bucket entry")
	}

	_, found, err = d.Lookup(image, 'B', 0)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !found {
		t.Fatal("expected unbounded scan to find the second bucket entry")
	}
}

func TestLookupZeroHashTableSize(t *testing.T) {
	d := fontimg.Descriptor{HashTableSize: 0}
	_, _, err := d.Lookup([]byte{1, 2, 3, 4, 5}, 'A', 0)
	if err == nil {
		t.Fatal("expected error for zero hash table size")
	}
}
