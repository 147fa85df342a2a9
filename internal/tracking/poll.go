package tracking

import (
	"context"
	"time"

	"github.com/go-vgo/robotgo"
)

// PollSource samples the pointer location with robotgo at a fixed rate and emits an event
// whenever it moved. It is used where a global hook is unavailable.
type PollSource struct {
	interval time.Duration
	locate   func() (int, int)
	clock    func() time.Time
}

func NewPollSource(hz int) *PollSource {
	return &PollSource{
		interval: time.Second / time.Duration(hz),
		locate:   robotgo.Location,
		clock:    time.Now,
	}
}

func (s *PollSource) Stream(ctx context.Context, emit func(PointerEvent)) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	lastX, lastY := s.locate()
	emit(PointerEvent{When: s.clock(), X: float64(lastX), Y: float64(lastY)})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			x, y := s.locate()
			if x == lastX && y == lastY {
				continue
			}
			lastX, lastY = x, y
			emit(PointerEvent{When: s.clock(), X: float64(x), Y: float64(y)})
		}
	}
}
