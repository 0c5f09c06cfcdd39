package glyphcache

import (
	"errors"
	"fmt"

	"github.com/rebble/glyphcache/internal/fontimg"
)

// Sentinel errors, matching the taxonomy of failure causes this package
// distinguishes. Wrap with fmt.Errorf("...: %w", err) at call sites that
// have more context to add; compare with errors.Is at call sites that
// need to branch on cause.
var (
	// ErrMalformedFont is the same sentinel internal/fontimg wraps every
	// structural decoding failure with, re-exported so callers do not
	// need to import an internal package to use errors.Is against it.
	ErrMalformedFont = fontimg.ErrMalformedFont

	// ErrUnknownFontKey is returned when FontKeyResolver cannot resolve a
	// requested font key.
	ErrUnknownFontKey = errors.New("glyphcache: unknown font key")

	// ErrCodepointNotInFont is returned when a requested codepoint has no
	// glyph (and no tofu fallback) in the source font.
	ErrCodepointNotInFont = errors.New("glyphcache: codepoint not present in font")

	// ErrUnknownThreadRole is returned when a ThreadRole value outside
	// the known set is used to select a registry.
	ErrUnknownThreadRole = errors.New("glyphcache: unknown thread role")
)

func wrapMalformed(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("glyphcache: %w", err)
}
