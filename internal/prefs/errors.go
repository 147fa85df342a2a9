package prefs

import "errors"

var ErrCorrupt = errors.New("corrupt preferences file")
