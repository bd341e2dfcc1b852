package arm

import "errors"

// Geometry and solver configuration errors
var (
	ErrInvalidLength  = errors.New("link length must be positive")
	ErrInvalidWrist   = errors.New("wrist length must not be negative")
	ErrInvalidGround  = errors.New("ground offset must not be negative")
	ErrInvalidBase    = errors.New("base length must not be negative")
	ErrUnknownVariant = errors.New("unknown solver variant")
)
