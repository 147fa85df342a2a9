package display

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
)

// X11Registry lists connected RandR outputs. IDs are RandR output numbers, which stay stable
// while the output is connected. The visible frame is the intersection of the output bounds
// with the window manager's _NET_WORKAREA for the current desktop.
type X11Registry struct {
	conn *xgb.Conn
	root xproto.Window
}

func NewX11Registry(conn *xgb.Conn) (*X11Registry, error) {
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("init randr: %w", err)
	}
	if _, err := randr.QueryVersion(conn, 1, 3).Reply(); err != nil {
		return nil, fmt.Errorf("query randr version: %w", err)
	}
	return &X11Registry{
		conn: conn,
		root: xproto.Setup(conn).DefaultScreen(conn).Root,
	}, nil
}

func (r *X11Registry) Displays() ([]Display, error) {
	res, err := randr.GetScreenResourcesCurrent(r.conn, r.root).Reply()
	if err != nil {
		return nil, fmt.Errorf("get screen resources: %w", err)
	}

	workarea, haveWorkarea := r.workarea()

	var displays []Display
	for _, output := range res.Outputs {
		info, err := randr.GetOutputInfo(r.conn, output, res.ConfigTimestamp).Reply()
		if err != nil {
			return nil, fmt.Errorf("get output %d info: %w", output, err)
		}
		if info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
			continue
		}

		crtc, err := randr.GetCrtcInfo(r.conn, info.Crtc, res.ConfigTimestamp).Reply()
		if err != nil {
			return nil, fmt.Errorf("get crtc %d info: %w", info.Crtc, err)
		}
		bounds := Rect{
			X:      float64(crtc.X),
			Y:      float64(crtc.Y),
			Width:  float64(crtc.Width),
			Height: float64(crtc.Height),
		}

		visible := bounds
		if haveWorkarea {
			if v := bounds.Intersect(workarea); !v.Empty() {
				visible = v
			}
		}

		displays = append(displays, Display{
			ID:      ID(output),
			Name:    string(info.Name),
			Bounds:  bounds,
			Visible: visible,
		})
	}

	if len(displays) == 0 {
		return nil, ErrNoDisplays
	}
	return displays, nil
}

func (r *X11Registry) workarea() (Rect, bool) {
	desktop := uint32(0)
	if vals, ok := r.cardinals("_NET_CURRENT_DESKTOP", 1); ok {
		desktop = vals[0]
	}

	vals, ok := r.cardinals("_NET_WORKAREA", 4*(desktop+1))
	if !ok || uint32(len(vals)) < 4*(desktop+1) {
		return Rect{}, false
	}
	v := vals[4*desktop:]
	return Rect{
		X:      float64(int32(v[0])),
		Y:      float64(int32(v[1])),
		Width:  float64(v[2]),
		Height: float64(v[3]),
	}, true
}

// cardinals reads up to n CARDINAL values of a root window property.
func (r *X11Registry) cardinals(name string, n uint32) ([]uint32, bool) {
	atom, err := xproto.InternAtom(r.conn, true, uint16(len(name)), name).Reply()
	if err != nil || atom.Atom == xproto.AtomNone {
		return nil, false
	}
	prop, err := xproto.GetProperty(r.conn, false, r.root, atom.Atom, xproto.AtomCardinal, 0, n).Reply()
	if err != nil || prop.Format != 32 || prop.ValueLen == 0 {
		return nil, false
	}

	vals := make([]uint32, 0, prop.ValueLen)
	for i := 0; i+4 <= len(prop.Value); i += 4 {
		vals = append(vals, xgb.Get32(prop.Value[i:]))
	}
	return vals, true
}
