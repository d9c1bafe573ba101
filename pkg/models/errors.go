package models

import "errors"

// Sentinel errors returned (wrapped) by the loaders. Test with errors.Is.
var (
	ErrUnsupportedFormat = errors.New("models: unsupported format")
	ErrIndexOutOfRange   = errors.New("models: index out of range")
	ErrMalformed         = errors.New("models: malformed data")
)
