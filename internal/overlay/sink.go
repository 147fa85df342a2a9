package overlay

import (
	"github.com/rs/zerolog/log"

	"github.com/vedantwpatil/cursor-overlay/internal/cursor"
)

// Sink applies overlay window commands. Each call is applied atomically.
type Sink interface {
	SetPosition(x, y float64)
	SetVisible(visible bool)
	SetImage(size cursor.Size, pixels []byte)
}

// LogSink records overlay commands in the log instead of drawing them. Used for headless runs.
type LogSink struct{}

func (LogSink) SetPosition(x, y float64) {
	log.Trace().Float64("x", x).Float64("y", y).Msg("overlay moved")
}

func (LogSink) SetVisible(visible bool) {
	log.Info().Bool("visible", visible).Msg("overlay visibility changed")
}

func (LogSink) SetImage(size cursor.Size, pixels []byte) {
	log.Debug().Stringer("size", size).Int("bytes", len(pixels)).Msg("overlay image changed")
}
