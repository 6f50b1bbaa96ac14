package observer

import "errors"

var (
	// ErrInvalidParameter reports an out-of-range or mutually exclusive argument.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInvalidState reports inputs whose pattern spaces disagree.
	ErrInvalidState = errors.New("invalid state")
)
