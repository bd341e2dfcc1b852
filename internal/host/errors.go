package host

import "errors"

var (
	// ErrSchedulerDone is returned by Scheduler.Wait when no ticks remain.
	ErrSchedulerDone   = errors.New("scheduler has no more ticks")
	ErrInvalidInterval = errors.New("tick interval must be positive")
	ErrLoopRunning     = errors.New("loop is already running")
)
