// Package display describes physical displays, the set of displays the overlay is enabled
// on, and registries that enumerate the displays attached to the machine.
package display

import (
	"fmt"
	"image"
	"sort"
)

// ID identifies a physical display. Values come from the OS and are stable while the display
// stays connected.
type ID uint32

// Point is a position in global desktop coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis aligned rectangle. Containment is half open: [X, X+Width) x [Y, Y+Height).
type Rect struct {
	X, Y, Width, Height float64
}

func RectFromImage(r image.Rectangle) Rect {
	return Rect{
		X:      float64(r.Min.X),
		Y:      float64(r.Min.Y),
		Width:  float64(r.Dx()),
		Height: float64(r.Dy()),
	}
}

func (r Rect) MaxX() float64 { return r.X + r.Width }
func (r Rect) MaxY() float64 { return r.Y + r.Height }

func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

// Intersect returns the overlap of r and o, or the zero Rect when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.MaxX(), o.MaxX()), min(r.MaxY(), o.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}

// Display is one entry of a registry listing.
type Display struct {
	ID   ID
	Name string
	// Bounds covers the whole display.
	Bounds Rect
	// Visible excludes panels and docks reserved by the desktop.
	Visible Rect
}

// Registry enumerates the displays currently attached. Listings carry no ordering guarantee.
type Registry interface {
	Displays() ([]Display, error)
}

// RegistryFunc adapts a function literal to the Registry interface.
type RegistryFunc func() ([]Display, error)

func (f RegistryFunc) Displays() ([]Display, error) {
	return f()
}

// Sorted returns a copy of displays ordered by ascending ID.
func Sorted(displays []Display) []Display {
	out := make([]Display, len(displays))
	copy(out, displays)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Lookup returns the display with the given ID.
func Lookup(displays []Display, id ID) (Display, bool) {
	for _, d := range displays {
		if d.ID == id {
			return d, true
		}
	}
	return Display{}, false
}
