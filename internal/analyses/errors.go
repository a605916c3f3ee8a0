package analyses

import "errors"

var (
	ErrNotFound     = errors.New("analysis not found")
	ErrInvalidInput = errors.New("invalid input")
)
