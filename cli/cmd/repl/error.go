package repl

import "errors"

var ErrOutOfBounds = errors.New("history index out of range")
