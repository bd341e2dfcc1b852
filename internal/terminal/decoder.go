// Package terminal turns raw keyboard bytes into simulator input. Terminals
// report key presses (with auto-repeat) but never releases, so a key counts
// as held until it has not repeated for a hold timeout.
package terminal

import "github.com/zeusync/armsim/internal/core/sim"

// ActionKind is a decoded keyboard intent.
type ActionKind uint8

const (
	ActionKey ActionKind = iota
	ActionWristUp
	ActionWristDown
	ActionQuit
	// ActionReleaseAll is queued when the input ends; no more key
	// repeats will arrive to keep anything held.
	ActionReleaseAll
)

type Action struct {
	Kind ActionKind
	Key  sim.Key
}

const (
	esc   = 0x1b
	ctrlC = 0x03
	ctrlD = 0x04
)

// Decoder is a byte-level state machine. Escape sequences may be split
// across reads; partial input is kept until the next Feed.
type Decoder struct {
	pending []byte
}

func (d *Decoder) Feed(b []byte) []Action {
	buf := append(d.pending, b...)
	d.pending = nil

	var out []Action
	for i := 0; i < len(buf); {
		c := buf[i]
		if c == esc {
			if i+1 >= len(buf) {
				d.pending = append(d.pending, buf[i:]...)
				break
			}
			// CSI (ESC [) or SS3 (ESC O) arrow sequences.
			if buf[i+1] == '[' || buf[i+1] == 'O' {
				if i+2 >= len(buf) {
					d.pending = append(d.pending, buf[i:]...)
					break
				}
				if k, ok := arrow(buf[i+2]); ok {
					out = append(out, Action{Kind: ActionKey, Key: k})
				}
				i += 3
				continue
			}
			// A bare escape is ignored.
			i++
			continue
		}
		if a, ok := plain(c); ok {
			out = append(out, a)
		}
		i++
	}
	return out
}

func arrow(c byte) (sim.Key, bool) {
	switch c {
	case 'A':
		return sim.KeyUp, true
	case 'B':
		return sim.KeyDown, true
	case 'C':
		return sim.KeyRight, true
	case 'D':
		return sim.KeyLeft, true
	}
	return sim.KeyNone, false
}

func plain(c byte) (Action, bool) {
	switch c {
	case 'w', 'k':
		return Action{Kind: ActionKey, Key: sim.KeyUp}, true
	case 's', 'j':
		return Action{Kind: ActionKey, Key: sim.KeyDown}, true
	case 'a', 'h':
		return Action{Kind: ActionKey, Key: sim.KeyLeft}, true
	case 'd', 'l':
		return Action{Kind: ActionKey, Key: sim.KeyRight}, true
	case ' ':
		return Action{Kind: ActionKey, Key: sim.KeyFlip}, true
	case ']':
		return Action{Kind: ActionWristUp}, true
	case '[':
		return Action{Kind: ActionWristDown}, true
	case 'q', 'Q', ctrlC, ctrlD:
		return Action{Kind: ActionQuit}, true
	}
	return Action{}, false
}
