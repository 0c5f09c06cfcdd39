// Package glyphcache manages per-thread-role glyph caches for a
// resource-constrained text renderer. It loads font images through an
// injected resource loader, maintains a bounded on-demand glyph cache per
// loaded font, and dispatches draw requests to an injected rasterizer
// once the requested text's glyphs are resident.
//
// The package does not parse TrueType/OpenType outlines, rasterize
// bitmaps, or own a DMA/USART transport: those are the caller's
// responsibility, expressed here as the ResourceLoader, FontKeyResolver,
// and Rasterizer collaborator interfaces.
package glyphcache

// CacheCount is the default maximum number of non-tofu glyphs a single
// cache entry holds before an insertion triggers eviction. Corresponds to
// the firmware constant CACHE_COUNT; overridable via the config package.
const CacheCount = 22

// ThreadRole selects which independent registry a call operates against.
// The two registries share no state and require no synchronization with
// each other.
type ThreadRole int

const (
	MainApp ThreadRole = iota
	Overlay
)

func (r ThreadRole) String() string {
	switch r {
	case MainApp:
		return "MainApp"
	case Overlay:
		return "Overlay"
	default:
		return "UnknownThreadRole"
	}
}

// Box is an opaque layout rectangle forwarded to the Rasterizer. This
// package never inspects its fields beyond passing them through.
type Box struct {
	X, Y, Width, Height int
}

// OverflowMode controls text-overflow behavior at the Rasterizer.
type OverflowMode int

const (
	OverflowClip OverflowMode = iota
	OverflowEllipsis
	OverflowWrap
)

// Alignment controls text alignment at the Rasterizer.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// TextAttributes carries opaque presentation parameters (color, line
// spacing, and similar) through to the Rasterizer unexamined.
type TextAttributes struct {
	Color       uint32
	LineSpacing int
}

// DrawContext is the opaque drawing surface handle forwarded to the
// Rasterizer; this package does not interpret it.
type DrawContext struct {
	Surface any
}
