package imaging

import "errors"

var (
	ErrDecode      = errors.New("imaging: decode failed")
	ErrInvalidSize = errors.New("imaging: target size must be positive")
	ErrEmptySource = errors.New("imaging: source image has no pixels")
)
