package terminal

import (
	"fmt"

	"golang.org/x/term"
)

// MakeRaw puts fd into raw mode and returns the function that restores it.
func MakeRaw(fd int) (restore func() error, err error) {
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("fd %d is not a terminal", fd)
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() error { return term.Restore(fd, state) }, nil
}
