package board

import "errors"

// Sentinel kinds for recruiting board errors.
var (
	ErrNotFound     = errors.New("recruit not found")
	ErrInvalidLimit = errors.New("invalid board limit")
)
