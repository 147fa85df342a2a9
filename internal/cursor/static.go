package cursor

// StaticQuery always reports the same cursor. It stands in on platforms where the active
// cursor image cannot be read.
type StaticQuery struct {
	desc Descriptor
}

func NewStaticQuery(desc Descriptor) *StaticQuery {
	return &StaticQuery{desc: desc}
}

func (q *StaticQuery) Current() (Descriptor, error) {
	return q.desc, nil
}

// ArrowDescriptor draws a plain arrow of the arrow cursor size: black fill, white outline.
func ArrowDescriptor() Descriptor {
	w, h := ArrowSize.Width, ArrowSize.Height
	pixels := make([]byte, w*h*4)

	// Rows widen by two thirds of a pixel each, then taper over the bottom third.
	inside := func(x, y int) bool {
		if y < 0 || y >= h || x < 0 {
			return false
		}
		limit := y * 2 / 3
		if y > h*2/3 {
			limit = (h - y) / 2
		}
		return x <= limit && x < w
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !inside(x, y) {
				continue
			}
			edge := !inside(x-1, y) || !inside(x+1, y) || !inside(x, y-1) || !inside(x, y+1)
			i := (y*w + x) * 4
			var c byte
			if edge {
				c = 0xff
			}
			pixels[i+0], pixels[i+1], pixels[i+2], pixels[i+3] = c, c, c, 0xff
		}
	}

	return Descriptor{Serial: 1, Size: ArrowSize, Pixels: pixels}
}
