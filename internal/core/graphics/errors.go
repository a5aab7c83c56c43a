package graphics

import "errors"

var (
	ErrNilObject         = errors.New("object is nil")
	ErrNoID              = errors.New("object has no id")
	ErrAlreadyRegistered = errors.New("object already registered")
	ErrIDInUse           = errors.New("id already in use")
	ErrInvalidStepSize   = errors.New("step size must be positive")
)
