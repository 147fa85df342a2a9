package cursor

import "errors"

var ErrNoCursor = errors.New("no cursor image available")
