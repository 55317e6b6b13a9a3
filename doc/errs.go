package doc

import "errors"

var (
	ErrDeleteRoot   = errors.New("cannot delete root")
	ErrNotFound     = errors.New("node not found")
	ErrOutOfBounds  = errors.New("index out of bounds")
	ErrNotContainer = errors.New("not a container")
)
