package pin

import "errors"

// ErrInvalidLevel is returned by ParseLevel for unrecognised input.
var ErrInvalidLevel = errors.New("pin: invalid level")
