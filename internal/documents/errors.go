package documents

import "errors"

var (
	ErrNotFound        = errors.New("document not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnsupportedType = errors.New("unsupported document type")
)
