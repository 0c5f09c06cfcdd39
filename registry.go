package glyphcache

import (
	"fmt"
	"log"

	"github.com/rebble/glyphcache/config"
	cache "github.com/rebble/glyphcache/internal/glyphcache"
)

// Entry is an opaque handle to one loaded font's glyph cache. It holds the
// cache image only; the source image is reloaded through the registry's
// ResourceLoader whenever it is needed. Callers never construct an Entry
// directly; they receive one from
// Registry.LoadByID or Registry.LoadByKey.
type Entry struct {
	resourceID uint16
	cacheImage []byte
	cacheSize  int
	glyphCount int
}

// ResourceID returns the resource id this entry was loaded from.
func (e *Entry) ResourceID() uint16 {
	return e.resourceID
}

// Registry owns every Entry loaded for one thread role. It holds no
// synchronization of its own: per spec.md's concurrency model it is only
// ever driven cooperatively from the thread role it belongs to.
type Registry struct {
	role      ThreadRole
	loader    ResourceLoader
	resolver  FontKeyResolver
	ticks     TickSource
	logger    *log.Logger
	byID      map[uint16]*Entry
	order     []uint16 // insertion order, for deterministic RemoveAll
}

// Registries holds the two independent per-thread-role registries spec.md
// calls for. Neither registry synchronizes with, nor is aware of, the
// other.
type Registries struct {
	MainApp *Registry
	Overlay *Registry
}

// NewRegistries constructs both per-thread-role registries sharing the
// same collaborators. Use this when a single ResourceLoader/FontKeyResolver
// implementation legitimately serves both roles, which is the common case;
// construct Registry directly when the two roles need distinct loaders.
func NewRegistries(loader ResourceLoader, resolver FontKeyResolver, ticks TickSource, logger *log.Logger) *Registries {
	return &Registries{
		MainApp: NewRegistry(MainApp, loader, resolver, ticks, logger),
		Overlay: NewRegistry(Overlay, loader, resolver, ticks, logger),
	}
}

// For selects the registry for role, or nil if role is not recognized.
func (r *Registries) For(role ThreadRole) *Registry {
	switch role {
	case MainApp:
		return r.MainApp
	case Overlay:
		return r.Overlay
	default:
		return nil
	}
}

// ForCurrentThread asks oracle which role the calling context belongs to
// and returns that role's registry, so a call site that already has a
// ThreadRoleOracle need not also track its own ThreadRole. It returns
// ErrUnknownThreadRole if oracle reports a role outside the known set.
func (r *Registries) ForCurrentThread(oracle ThreadRoleOracle) (*Registry, error) {
	role := oracle.CurrentThreadRole()
	reg := r.For(role)
	if reg == nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownThreadRole, role)
	}
	return reg, nil
}

// NewRegistry constructs an empty registry for one thread role. A nil
// logger defaults to log.Default().
func NewRegistry(role ThreadRole, loader ResourceLoader, resolver FontKeyResolver, ticks TickSource, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{
		role:     role,
		loader:   loader,
		resolver: resolver,
		ticks:    ticks,
		logger:   logger,
		byID:     make(map[uint16]*Entry),
	}
}

// LoadByID returns the cached Entry for resourceID, loading and building
// an empty glyph cache for it on first use.
func (r *Registry) LoadByID(resourceID uint16) (*Entry, error) {
	if e, ok := r.byID[resourceID]; ok {
		r.logger.Printf("glyphcache[%s]: resource %d already cached, skipping load", r.role, resourceID)
		return e, nil
	}

	source, err := r.loader.LoadResource(resourceID)
	if err != nil {
		return nil, fmt.Errorf("glyphcache[%s]: loading resource %d: %w", r.role, resourceID, err)
	}

	image, size, err := cache.BuildEmpty(source)
	if err != nil {
		return nil, wrapMalformed(err)
	}

	e := &Entry{resourceID: resourceID, cacheImage: image, cacheSize: size}
	r.byID[resourceID] = e
	r.order = append(r.order, resourceID)
	r.logger.Printf("glyphcache[%s]: loaded resource %d", r.role, resourceID)
	return e, nil
}

// LoadByKey resolves key to a resource id and delegates to LoadByID, whose
// own already-cached check is the only one made, collapsing the original
// firmware's double lookup into one.
func (r *Registry) LoadByKey(key string) (*Entry, error) {
	id, err := r.resolver.ResolveFontKey(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrUnknownFontKey, key, err)
	}
	return r.LoadByID(id)
}

// RemoveByID evicts resourceID from the registry entirely, freeing its
// cache image. It reports whether an entry was actually present.
func (r *Registry) RemoveByID(resourceID uint16) bool {
	if _, ok := r.byID[resourceID]; !ok {
		return false
	}
	delete(r.byID, resourceID)
	for i, id := range r.order {
		if id == resourceID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.logger.Printf("glyphcache[%s]: removed resource %d", r.role, resourceID)
	return true
}

// RemoveAll clears every entry from the registry, in insertion order.
func (r *Registry) RemoveAll() {
	for _, id := range r.order {
		delete(r.byID, id)
	}
	r.order = r.order[:0]
	r.logger.Printf("glyphcache[%s]: removed all resources", r.role)
}

func (r *Registry) drawTick() uint32 {
	if r.ticks == nil {
		return 0
	}
	return r.ticks.MonotonicTick()
}

func (r *Registry) hashScanBound() int {
	return config.HashScanBound()
}

func (r *Registry) maxCacheCount() int {
	return config.CacheCount()
}
