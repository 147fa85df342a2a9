package tracking

import "time"

// Kind distinguishes plain moves from drags. The overlay treats both the same way.
type Kind uint8

const (
	KindMove Kind = iota
	KindDrag
)

func (k Kind) String() string {
	if k == KindDrag {
		return "drag"
	}
	return "move"
}

// PointerEvent is one pointer sample in global desktop coordinates.
type PointerEvent struct {
	When time.Time
	X, Y float64
	Kind Kind
}
