package render

import "errors"

var (
	ErrEmptyPath  = errors.New("output path is empty")
	ErrEmptyTrace = errors.New("trace has no samples")
)
