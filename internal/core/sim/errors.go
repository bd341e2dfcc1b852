package sim

import "errors"

var (
	ErrUnknownPolicy = errors.New("unknown move policy")
	ErrInvalidSpeed  = errors.New("speed must be positive")
	ErrUnreachable   = errors.New("start position is outside the workspace")
)
