package tracking

import (
	"context"

	hook "github.com/robotn/gohook"
	"github.com/rs/zerolog/log"
)

// HookSource reads pointer moves and drags from the gohook global event hook. The hook is
// process wide, so only one HookSource may stream at a time.
type HookSource struct{}

func NewHookSource() *HookSource {
	return &HookSource{}
}

func (s *HookSource) Stream(ctx context.Context, emit func(PointerEvent)) error {
	evChan := hook.Start()
	defer hook.End()

	log.Info().Msg("pointer hook started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("pointer hook stopped")
			return ctx.Err()
		case e, ok := <-evChan:
			if !ok {
				return ErrHookStopped
			}
			if ev, ok := fromHook(e); ok {
				emit(ev)
			}
		}
	}
}

func fromHook(e hook.Event) (PointerEvent, bool) {
	var kind Kind
	switch e.Kind {
	case hook.MouseMove:
		kind = KindMove
	case hook.MouseDrag:
		kind = KindDrag
	default:
		return PointerEvent{}, false
	}
	return PointerEvent{
		When: e.When,
		X:    float64(e.X),
		Y:    float64(e.Y),
		Kind: kind,
	}, true
}
