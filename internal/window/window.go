// Package window draws the overlay as a borderless, transparent, click-through ebiten window.
package window

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vedantwpatil/cursor-overlay/internal/cursor"
)

const title = "cursor-overlay"

type image struct {
	size   cursor.Size
	pixels []byte
}

// Window implements overlay.Sink and ebiten.Game. Sink calls may come from any goroutine;
// they are picked up by the next game update.
type Window struct {
	width, height int

	mu      sync.Mutex
	x, y    float64
	moved   bool
	visible bool
	pending *image

	sprite *ebiten.Image
	ctx    context.Context
}

func New(width, height int) *Window {
	return &Window{width: width, height: height, ctx: context.Background()}
}

func (w *Window) SetPosition(x, y float64) {
	w.mu.Lock()
	w.x, w.y, w.moved = x, y, true
	w.mu.Unlock()
}

func (w *Window) SetVisible(visible bool) {
	w.mu.Lock()
	w.visible = visible
	w.mu.Unlock()
}

func (w *Window) SetImage(size cursor.Size, pixels []byte) {
	if size.Width <= 0 || size.Height <= 0 || len(pixels) != size.Width*size.Height*4 {
		return
	}
	buf := make([]byte, len(pixels))
	copy(buf, pixels)

	w.mu.Lock()
	w.pending = &image{size: size, pixels: buf}
	w.mu.Unlock()
}

// Run opens the window and blocks until ctx is done or the window is closed. It must be
// called from the main goroutine.
func (w *Window) Run(ctx context.Context) error {
	w.ctx = ctx

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w.width, w.height)
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowMousePassthrough(true)
	ebiten.SetRunnableOnUnfocused(true)

	err := ebiten.RunGameWithOptions(w, &ebiten.RunGameOptions{
		ScreenTransparent: true,
		SkipTaskbar:       true,
	})
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run overlay window: %w", err)
	}
	return nil
}

func (w *Window) Update() error {
	if w.ctx.Err() != nil {
		return ebiten.Termination
	}

	w.mu.Lock()
	moved, x, y := w.moved, w.x, w.y
	w.moved = false
	pending := w.pending
	w.pending = nil
	w.mu.Unlock()

	if moved {
		ebiten.SetWindowPosition(int(math.Round(x)), int(math.Round(y)))
	}
	if pending != nil {
		if w.sprite != nil {
			w.sprite.Deallocate()
		}
		w.sprite = ebiten.NewImage(pending.size.Width, pending.size.Height)
		w.sprite.WritePixels(pending.pixels)
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	w.mu.Lock()
	visible := w.visible
	w.mu.Unlock()

	if !visible || w.sprite == nil {
		return
	}
	screen.DrawImage(w.sprite, nil)
}

func (w *Window) Layout(_, _ int) (int, int) {
	return w.width, w.height
}
