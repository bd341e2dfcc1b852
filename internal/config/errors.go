package config

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrEmptyPath     = errors.New("config path is empty")
)
