package fontimg

import (
	"errors"
	"fmt"
)

// ErrMalformedFont is the sentinel wrapped by every structural decoding
// failure in this package: a descriptor that would overflow the buffer,
// an unsupported version, or a lookup that lands outside the image.
var ErrMalformedFont = errors.New("fontimg: malformed font image")

// Errorf wraps ErrMalformedFont with a formatted detail message.
func Errorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformedFont}, args...)...)
}
