package cursor

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xfixes"
)

// X11Query reads the active cursor image through the XFixes extension.
type X11Query struct {
	conn *xgb.Conn
}

func NewX11Query(conn *xgb.Conn) (*X11Query, error) {
	if err := xfixes.Init(conn); err != nil {
		return nil, fmt.Errorf("init xfixes: %w", err)
	}
	// GetCursorImage needs XFixes 1.0+; the client must announce a version before any request.
	if _, err := xfixes.QueryVersion(conn, 4, 0).Reply(); err != nil {
		return nil, fmt.Errorf("query xfixes version: %w", err)
	}
	return &X11Query{conn: conn}, nil
}

func (q *X11Query) Current() (Descriptor, error) {
	reply, err := xfixes.GetCursorImage(q.conn).Reply()
	if err != nil {
		return Descriptor{}, fmt.Errorf("get cursor image: %w", err)
	}
	if reply.Width == 0 || reply.Height == 0 {
		return Descriptor{}, ErrNoCursor
	}

	return Descriptor{
		Serial: uint64(reply.CursorSerial),
		Size:   Size{Width: int(reply.Width), Height: int(reply.Height)},
		Pixels: argbToRGBA(reply.CursorImage),
	}, nil
}

// argbToRGBA converts XFixes premultiplied ARGB words into RGBA bytes.
func argbToRGBA(argb []uint32) []byte {
	out := make([]byte, len(argb)*4)
	for i, px := range argb {
		out[i*4+0] = byte(px >> 16)
		out[i*4+1] = byte(px >> 8)
		out[i*4+2] = byte(px)
		out[i*4+3] = byte(px >> 24)
	}
	return out
}
