package paging

import "errors"

// Sentinel kinds for paging errors.
var (
	ErrPageOutOfRange = errors.New("page out of range")
	ErrInvalidSize    = errors.New("invalid page size")
)
