package display

import "errors"

var ErrNoDisplays = errors.New("no active displays")
