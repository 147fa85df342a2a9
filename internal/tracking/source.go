// Package tracking produces pointer events from the OS.
package tracking

import (
	"context"
	"errors"
)

// ErrHookStopped is returned when the global hook closes its event channel on its own.
var ErrHookStopped = errors.New("pointer hook stopped")

// Source pushes pointer events to emit until ctx is done. emit must not block.
type Source interface {
	Stream(ctx context.Context, emit func(PointerEvent)) error
}

// SourceFunc adapts a function literal to the Source interface.
type SourceFunc func(ctx context.Context, emit func(PointerEvent)) error

func (f SourceFunc) Stream(ctx context.Context, emit func(PointerEvent)) error {
	return f(ctx, emit)
}
