package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zeusync/armsim/internal/core/sim"
)

func keys(ks ...sim.Key) []Action {
	out := make([]Action, len(ks))
	for i, k := range ks {
		out[i] = Action{Kind: ActionKey, Key: k}
	}
	return out
}

func TestDecoderArrows(t *testing.T) {
	var d Decoder
	got := d.Feed([]byte("\x1b[A\x1b[B\x1b[C\x1b[D\x1bOA"))
	assert.Equal(t, keys(sim.KeyUp, sim.KeyDown, sim.KeyRight, sim.KeyLeft, sim.KeyUp), got)
}

func TestDecoderSplitSequence(t *testing.T) {
	var d Decoder
	assert.Empty(t, d.Feed([]byte{esc}))
	assert.Empty(t, d.Feed([]byte("[")))
	assert.Equal(t, keys(sim.KeyRight), d.Feed([]byte("C")))
}

func TestDecoderPlainKeys(t *testing.T) {
	var d Decoder
	got := d.Feed([]byte("wasd []xq"))
	assert.Equal(t, []Action{
		{Kind: ActionKey, Key: sim.KeyUp},
		{Kind: ActionKey, Key: sim.KeyLeft},
		{Kind: ActionKey, Key: sim.KeyDown},
		{Kind: ActionKey, Key: sim.KeyRight},
		{Kind: ActionKey, Key: sim.KeyFlip},
		{Kind: ActionWristDown},
		{Kind: ActionWristUp},
		{Kind: ActionQuit},
	}, got)
}

func TestDecoderIgnoresUnknownSequences(t *testing.T) {
	var d Decoder
	assert.Empty(t, d.Feed([]byte("\x1b[Z\x1bx")))
	assert.Equal(t, []Action{{Kind: ActionQuit}}, d.Feed([]byte{ctrlC}))
}
