// Command demo opens an SDL2 window and drives a glyphcache.Registry with
// live keyboard input: every keystroke redraws the whole typed text, so
// typing grows the cache. Once the typed text needs more distinct glyphs
// than the cache holds, each draw bypasses the cache; eviction runs when
// characters are deleted with backspace and new ones typed while the cache
// is full. The window title shows the typed text.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/rebble/glyphcache"
	"github.com/rebble/glyphcache/config"
)

var fontPath = flag.String("font", "sample_font.bin", "path to a font image produced by cmd/genfont")

// fileResourceLoader loads the single demo font from disk regardless of
// the requested resource id, standing in for the firmware's resource
// table for this demo.
type fileResourceLoader struct {
	path string
}

func (f fileResourceLoader) LoadResource(uint16) ([]byte, error) {
	return os.ReadFile(f.path)
}

type staticResolver struct{ id uint16 }

func (s staticResolver) ResolveFontKey(string) (uint16, error) { return s.id, nil }

type sdlTicks struct{ start time.Time }

func (s sdlTicks) MonotonicTick() uint32 { return uint32(time.Since(s.start).Milliseconds()) }

// sdlRasterizer draws a single bar whose width is the length of the font
// image it receives (modulo 400 pixels), so cache growth and shrinkage are
// visible without a real text rasterizer. It does not draw glyphs.
type sdlRasterizer struct {
	renderer *sdl.Renderer
	scale    int32
}

func (r *sdlRasterizer) Rasterize(ctx glyphcache.DrawContext, text string, fontImage []byte, box glyphcache.Box, overflow glyphcache.OverflowMode, align glyphcache.Alignment, attrs glyphcache.TextAttributes) error {
	r.renderer.SetDrawColor(0, 0, 0, 255)
	r.renderer.Clear()
	r.renderer.SetDrawColor(220, 220, 220, 255)
	r.renderer.FillRect(&sdl.Rect{X: 10, Y: 10, W: int32(len(fontImage) % 400), H: 4})
	r.renderer.Present()
	return nil
}

func main() {
	flag.Parse()

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		log.Fatalf("demo: sdl.Init: %v", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow("glyphcache demo", sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, 640, 200, sdl.WINDOW_SHOWN)
	if err != nil {
		log.Fatalf("demo: CreateWindow: %v", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		log.Fatalf("demo: CreateRenderer: %v", err)
	}
	defer renderer.Destroy()

	config.SetCacheCount(8) // small, so eviction is easy to trigger interactively

	reg := glyphcache.NewRegistry(glyphcache.MainApp, fileResourceLoader{*fontPath}, staticResolver{1}, sdlTicks{start: time.Now()}, log.Default())
	entry, err := reg.LoadByID(1)
	if err != nil {
		log.Fatalf("demo: LoadByID: %v (did you run cmd/genfont first?)", err)
	}

	raster := &sdlRasterizer{renderer: renderer, scale: 4}
	var typed []rune

	running := true
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.TextInputEvent:
				text := e.GetText()
				for _, r := range text {
					typed = append(typed, r)
				}
				if err := reg.DrawText(entry, raster, glyphcache.DrawContext{}, string(typed), glyphcache.Box{Width: 640, Height: 200}, glyphcache.OverflowClip, glyphcache.AlignLeft, glyphcache.TextAttributes{}); err != nil {
					log.Printf("demo: DrawText: %v", err)
				}
				window.SetTitle("glyphcache demo — " + string(typed))
			case *sdl.KeyboardEvent:
				if e.Keysym.Sym == sdl.K_ESCAPE {
					running = false
				}
				if e.Keysym.Sym == sdl.K_BACKSPACE && e.Type == sdl.KEYDOWN && len(typed) > 0 {
					typed = typed[:len(typed)-1]
				}
			}
		}
		sdl.Delay(16)
	}
}
