package terminal

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/armsim/internal/core/sim"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestKeyboard() (*Keyboard, *fakeClock) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	k := NewKeyboard(100*time.Millisecond, 5)
	k.now = clock.now
	return k, clock
}

func TestKeyboardHoldAndRelease(t *testing.T) {
	k, clock := newTestKeyboard()

	k.Push(Action{Kind: ActionKey, Key: sim.KeyRight})
	assert.Equal(t, []sim.InputEvent{sim.Press(sim.KeyRight)}, k.Poll(1))

	// Auto-repeat keeps the key held without a second press.
	clock.advance(60 * time.Millisecond)
	k.Push(Action{Kind: ActionKey, Key: sim.KeyRight})
	assert.Empty(t, k.Poll(2))

	clock.advance(60 * time.Millisecond)
	assert.Empty(t, k.Poll(3))

	clock.advance(40 * time.Millisecond)
	assert.Equal(t, []sim.InputEvent{sim.Release(sim.KeyRight)}, k.Poll(4))
	assert.Empty(t, k.Poll(5))
}

func TestKeyboardOppositeKeyTakesOver(t *testing.T) {
	k, clock := newTestKeyboard()

	k.Push(Action{Kind: ActionKey, Key: sim.KeyUp})
	k.Push(Action{Kind: ActionKey, Key: sim.KeyDown})
	assert.Equal(t, []sim.InputEvent{sim.Press(sim.KeyUp), sim.Press(sim.KeyDown)}, k.Poll(1))

	clock.advance(200 * time.Millisecond)
	assert.Equal(t, []sim.InputEvent{sim.Release(sim.KeyDown)}, k.Poll(2))
}

func TestKeyboardFlipAndWrist(t *testing.T) {
	k, _ := newTestKeyboard()
	k.Push(Action{Kind: ActionKey, Key: sim.KeyFlip})
	k.Push(Action{Kind: ActionWristUp})
	k.Push(Action{Kind: ActionWristDown})
	assert.Equal(t, []sim.InputEvent{
		sim.Press(sim.KeyFlip),
		sim.NudgeWrist(5),
		sim.NudgeWrist(-5),
	}, k.Poll(1))
}

func TestKeyboardReadFrom(t *testing.T) {
	k, _ := newTestKeyboard()
	err := k.ReadFrom(context.Background(), strings.NewReader("\x1b[Cq"))
	require.NoError(t, err)

	select {
	case <-k.Quit():
	default:
		t.Fatal("quit not signalled")
	}
	assert.Equal(t, []sim.InputEvent{sim.Press(sim.KeyRight), sim.ReleaseAll()}, k.Poll(1))
	assert.Empty(t, k.Poll(2))
}

func TestKeyboardEOFQuits(t *testing.T) {
	k, _ := newTestKeyboard()
	require.NoError(t, k.ReadFrom(context.Background(), strings.NewReader("")))
	select {
	case <-k.Quit():
	default:
		t.Fatal("quit not signalled on EOF")
	}
	assert.Equal(t, []sim.InputEvent{sim.ReleaseAll()}, k.Poll(1))
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("tty gone") }

func TestKeyboardReadErrorStopsHeldKeys(t *testing.T) {
	k, _ := newTestKeyboard()
	k.Push(Action{Kind: ActionKey, Key: sim.KeyUp})
	require.Equal(t, []sim.InputEvent{sim.Press(sim.KeyUp)}, k.Poll(1))

	require.Error(t, k.ReadFrom(context.Background(), brokenReader{}))
	assert.Equal(t, []sim.InputEvent{sim.ReleaseAll()}, k.Poll(2))

	// Nothing is left held to expire later.
	assert.Empty(t, k.Poll(3))
}
