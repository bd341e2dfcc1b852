package sim

import "fmt"

// Key is a direction or command the input collaborator can report.
type Key uint8

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	// KeyFlip mirrors the effector across the y axis on the next tick.
	KeyFlip
)

func (k Key) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyFlip:
		return "flip"
	default:
		return fmt.Sprintf("key(%d)", uint8(k))
	}
}

// ParseKey accepts the names produced by Key.String.
func ParseKey(s string) (Key, error) {
	for k := KeyUp; k <= KeyFlip; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	if s == "space" {
		return KeyFlip, nil
	}
	return KeyNone, fmt.Errorf("unknown key %q", s)
}

// Input is the held-key state. The last press on an axis wins, and
// releasing either key of an axis stops that axis.
type Input struct {
	xKey Key
	yKey Key

	flip  bool
	wrist float64
}

func (in *Input) Press(k Key) {
	switch k {
	case KeyUp, KeyDown:
		in.yKey = k
	case KeyLeft, KeyRight:
		in.xKey = k
	case KeyFlip:
		in.flip = true
	}
}

func (in *Input) Release(k Key) {
	switch k {
	case KeyUp, KeyDown:
		in.yKey = KeyNone
	case KeyLeft, KeyRight:
		in.xKey = KeyNone
	}
}

// Velocity is the current direction, each axis in {-1, 0, 1}.
func (in *Input) Velocity() (x, y float64) {
	switch in.xKey {
	case KeyLeft:
		x = -1
	case KeyRight:
		x = 1
	}
	switch in.yKey {
	case KeyUp:
		y = 1
	case KeyDown:
		y = -1
	}
	return x, y
}

// TakeFlip reports a pending flip and clears it.
func (in *Input) TakeFlip() bool {
	f := in.flip
	in.flip = false
	return f
}

func (in *Input) SetWrist(degrees float64) {
	in.wrist = degrees
}

func (in *Input) NudgeWrist(deltaDegrees float64) {
	in.wrist += deltaDegrees
}

// Wrist is the requested absolute wrist orientation in degrees.
func (in *Input) Wrist() float64 {
	return in.wrist
}

// ReleaseAll drops every held key. Pending flips and the wrist survive.
func (in *Input) ReleaseAll() {
	in.xKey, in.yKey = KeyNone, KeyNone
}

// EventKind is what an InputEvent does to Input.
type EventKind uint8

const (
	EventPress EventKind = iota
	EventRelease
	EventSetWrist
	EventNudgeWrist
	EventReleaseAll
)

// InputEvent is a single transition reported by an input collaborator.
// Events may be produced on any goroutine; they are applied by the tick
// loop before the next step.
type InputEvent struct {
	Kind    EventKind
	Key     Key
	Degrees float64
}

func Press(k Key) InputEvent   { return InputEvent{Kind: EventPress, Key: k} }
func Release(k Key) InputEvent { return InputEvent{Kind: EventRelease, Key: k} }

func SetWrist(degrees float64) InputEvent {
	return InputEvent{Kind: EventSetWrist, Degrees: degrees}
}

func NudgeWrist(degrees float64) InputEvent {
	return InputEvent{Kind: EventNudgeWrist, Degrees: degrees}
}

// ReleaseAll stops both axes, for a source that lost its input.
func ReleaseAll() InputEvent {
	return InputEvent{Kind: EventReleaseAll}
}

func (in *Input) Apply(e InputEvent) {
	switch e.Kind {
	case EventPress:
		in.Press(e.Key)
	case EventRelease:
		in.Release(e.Key)
	case EventSetWrist:
		in.SetWrist(e.Degrees)
	case EventNudgeWrist:
		in.NudgeWrist(e.Degrees)
	case EventReleaseAll:
		in.ReleaseAll()
	}
}
