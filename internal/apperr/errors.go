package apperr

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidID    = errors.New("invalid id")
	ErrInvalidQuery = errors.New("invalid query")
)
