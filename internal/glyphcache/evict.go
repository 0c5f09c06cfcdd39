package cache

import (
	"encoding/binary"
	"log"
	"sort"

	"github.com/rebble/glyphcache/internal/fontimg"
)

// Evict reclaims space in a cache image by rebuilding it from scratch:
// every currently-cached glyph not present in keep is a removal candidate,
// candidates are ranked oldest-timestamp-first, removeCount of them are
// dropped, and the survivors (plus keep) are re-inserted into a fresh
// empty image built from sourceImage.
//
// This mirrors the original cache's compacting rebuild rather than
// in-place hole tracking: there is no fragmentation to manage, at the
// cost of rewriting every surviving glyph on every eviction.
func Evict(cacheImage []byte, cacheSize int, sourceImage []byte, keep []uint32, removeCount int, tick uint32, maxCacheCount int, scanBound int) (newImage []byte, newSize int, newCount int, err error) {
	if removeCount <= 0 || cacheImage == nil {
		return cacheImage, cacheSize, 0, nil
	}

	desc, err := fontimg.NewDescriptor(cacheImage[:cacheSize])
	if err != nil {
		return nil, 0, 0, err
	}

	keepSet := make(map[uint32]bool, len(keep))
	for _, cp := range keep {
		keepSet[cp] = true
	}

	type candidate struct {
		codepoint uint32
		timestamp uint32
	}
	var candidates []candidate
	for i := 0; i < desc.GlyphAmount; i++ {
		pos := desc.EntryPos(i)
		offset, err := desc.OffsetAt(cacheImage, pos)
		if err != nil {
			return nil, 0, 0, err
		}
		if !fontimg.OffsetValid(offset) {
			continue
		}
		cp, err := desc.CodepointAt(cacheImage, pos)
		if err != nil {
			return nil, 0, 0, err
		}
		if keepSet[cp] {
			continue
		}
		glyphAbs := desc.GlyphAbs(offset)
		if glyphAbs < fontimg.TimestampSize || glyphAbs > len(cacheImage) {
			return nil, 0, 0, fontimg.Errorf("cached glyph for codepoint %d has no timestamp prefix", cp)
		}
		ts := binary.LittleEndian.Uint32(cacheImage[glyphAbs-fontimg.TimestampSize : glyphAbs])
		candidates = append(candidates, candidate{cp, ts})
	}

	if maxCacheCount > 0 && len(candidates) > maxCacheCount {
		log.Printf("glyphcache: eviction candidate list (%d) exceeds configured cache count (%d); truncating", len(candidates), maxCacheCount)
		candidates = candidates[:maxCacheCount]
	}

	sort.Slice(candidates, func(i, j int) bool {
		return int32(candidates[i].timestamp-candidates[j].timestamp) < 0
	})

	if removeCount > len(candidates) {
		removeCount = len(candidates)
	}
	survivors := candidates[removeCount:]

	roster := make([]uint32, 0, len(keep)+len(survivors))
	roster = append(roster, keep...)
	for _, c := range survivors {
		roster = append(roster, c.codepoint)
	}

	emptyImage, emptySize, err := BuildEmpty(sourceImage)
	if err != nil {
		return nil, 0, 0, err
	}
	newImage, newSize, added, err := AddGlyphs(emptyImage, emptySize, sourceImage, roster, tick, scanBound)
	if err != nil {
		return nil, 0, 0, err
	}
	return newImage, newSize, added, nil
}
