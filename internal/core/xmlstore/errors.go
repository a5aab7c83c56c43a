package xmlstore

import "errors"

var (
	ErrUnbound   = errors.New("xmlstore: handler is not bound to a struct type")
	ErrNoID      = errors.New("xmlstore: item id is empty")
	ErrBadID     = errors.New("xmlstore: item id must be a single local file name")
	ErrBadSubdir = errors.New("xmlstore: subdir must be local to the output directory")
	ErrNilItem   = errors.New("xmlstore: item is nil")
	ErrMarshal   = errors.New("xmlstore: marshal failed")
	ErrUnmarshal = errors.New("xmlstore: unmarshal failed")
)
