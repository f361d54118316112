package cityjson

import "errors"

var (
	ErrSchema              = errors.New("schema error")
	ErrReferenceOutOfRange = errors.New("reference out of range")
)
