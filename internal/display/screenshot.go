package display

import (
	"fmt"

	"github.com/kbinani/screenshot"
)

// ScreenshotRegistry lists displays through kbinani/screenshot. The library exposes no
// platform display identifiers, so the active display index is used as the ID and the
// visible frame equals the bounds.
type ScreenshotRegistry struct{}

func NewScreenshotRegistry() *ScreenshotRegistry {
	return &ScreenshotRegistry{}
}

func (r *ScreenshotRegistry) Displays() ([]Display, error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return nil, ErrNoDisplays
	}

	displays := make([]Display, 0, n)
	for i := 0; i < n; i++ {
		bounds := RectFromImage(screenshot.GetDisplayBounds(i))
		displays = append(displays, Display{
			ID:      ID(i),
			Name:    fmt.Sprintf("Display %d", i+1),
			Bounds:  bounds,
			Visible: bounds,
		})
	}
	return displays, nil
}
