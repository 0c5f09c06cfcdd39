package glyphcache

import (
	"fmt"

	"github.com/rebble/glyphcache/config"
	"github.com/rebble/glyphcache/internal/fontimg"
	cache "github.com/rebble/glyphcache/internal/glyphcache"
)

// DrawText decodes text, ensures every codepoint it needs is resident in
// e's glyph cache, and forwards the draw to raster.
//
// If caching the request's codepoints would require more than the
// registry's configured capacity — either set alone, or the two sets
// together — caching is abandoned for this call entirely: raster is
// invoked directly against the pristine source image and the cache image
// is left untouched. This matches the original cache's behavior of never
// letting one oversized draw evict an entire warm cache.
//
// Codepoint value 4 is never looked up: it is hardcoded as
// always-already-present, matching the original cache's reuse of the
// tofu alias value 4 both as an offset-table sentinel and, separately, as
// a special-cased codepoint short-circuit in its own "is this codepoint
// already cached" check.
func (r *Registry) DrawText(e *Entry, raster Rasterizer, ctx DrawContext, text string, box Box, overflow OverflowMode, align Alignment, attrs TextAttributes) error {
	codepoints := decodeUTF8Legacy(text)

	desc, err := fontimg.NewDescriptor(e.cacheImage[:e.cacheSize])
	if err != nil {
		return wrapMalformed(err)
	}

	seen := make(map[uint32]bool, len(codepoints))
	var toAdd, alreadyPresent []uint32
	for _, cp := range codepoints {
		if seen[cp] {
			continue
		}
		seen[cp] = true

		if cp == fontimg.TofuOffset {
			alreadyPresent = append(alreadyPresent, cp)
			continue
		}

		pos, found, err := desc.Lookup(e.cacheImage, cp, r.hashScanBound())
		if err != nil {
			return wrapMalformed(err)
		}
		if !found {
			// Not a codepoint this font defines at all; leave it out of
			// both sets and let the rasterizer's own handling take over.
			continue
		}

		offset, err := desc.OffsetAt(e.cacheImage, pos)
		if err != nil {
			return wrapMalformed(err)
		}
		if offset == fontimg.TofuOffset || fontimg.OffsetValid(offset) {
			alreadyPresent = append(alreadyPresent, cp)
		} else {
			toAdd = append(toAdd, cp)
		}
	}

	maxCount := r.maxCacheCount()
	if len(toAdd)+len(alreadyPresent) > maxCount || len(toAdd) > maxCount || len(alreadyPresent) > maxCount {
		r.logger.Printf("glyphcache[%s]: draw for resource %d exceeds cache capacity (%d), bypassing cache", r.role, e.resourceID, maxCount)
		source, err := r.loader.LoadResource(e.resourceID)
		if err != nil {
			return fmt.Errorf("glyphcache[%s]: loading resource %d (bypass): %w", r.role, e.resourceID, err)
		}
		err = raster.Rasterize(ctx, text, source, box, overflow, align, attrs)
		source = nil
		if err != nil {
			return fmt.Errorf("glyphcache[%s]: rasterize resource %d (bypass): %w", r.role, e.resourceID, err)
		}
		return nil
	}

	if len(toAdd) > 0 {
		if overflow := e.glyphCount + len(toAdd) - maxCount; overflow > 0 {
			source, err := r.loader.LoadResource(e.resourceID)
			if err != nil {
				return fmt.Errorf("glyphcache[%s]: loading resource %d (evict): %w", r.role, e.resourceID, err)
			}
			// Codepoint 4 is served by tofu and never looked up, so it
			// stays out of the roster Evict re-inserts.
			keep := make([]uint32, 0, len(alreadyPresent))
			for _, cp := range alreadyPresent {
				if cp != fontimg.TofuOffset {
					keep = append(keep, cp)
				}
			}
			newImage, newSize, newCount, err := cache.Evict(
				e.cacheImage, e.cacheSize, source, keep, overflow,
				r.drawTick(), maxCount, r.hashScanBound(),
			)
			source = nil
			if err != nil {
				return wrapMalformed(err)
			}
			e.cacheImage, e.cacheSize, e.glyphCount = newImage, newSize, newCount
			r.logger.Printf("glyphcache[%s]: evicted %d entries from resource %d to fit %d new glyphs", r.role, overflow, e.resourceID, len(toAdd))
		}

		source, err := r.loader.LoadResource(e.resourceID)
		if err != nil {
			return fmt.Errorf("glyphcache[%s]: loading resource %d (add): %w", r.role, e.resourceID, err)
		}
		newImage, newSize, added, err := cache.AddGlyphs(e.cacheImage, e.cacheSize, source, toAdd, r.drawTick(), r.hashScanBound())
		source = nil
		if err != nil {
			return wrapMalformed(err)
		}
		e.cacheImage, e.cacheSize = newImage, newSize
		e.glyphCount += added
		r.logger.Printf("glyphcache[%s]: cached %d new glyphs for resource %d", r.role, added, e.resourceID)
		if config.DebugGlyphDump() {
			r.logger.Printf("glyphcache[%s]: resource %d added codepoints %v", r.role, e.resourceID, toAdd)
		}
	}

	if err := raster.Rasterize(ctx, text, e.cacheImage[:e.cacheSize], box, overflow, align, attrs); err != nil {
		return fmt.Errorf("glyphcache[%s]: rasterize resource %d: %w", r.role, e.resourceID, err)
	}
	return nil
}
