package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func velocity(in *Input) [2]float64 {
	x, y := in.Velocity()
	return [2]float64{x, y}
}

func TestInputLastEventWinsPerAxis(t *testing.T) {
	var in Input

	in.Press(KeyUp)
	in.Press(KeyDown)
	assert.Equal(t, [2]float64{0, -1}, velocity(&in))

	in.Release(KeyDown)
	assert.Equal(t, [2]float64{0, 0}, velocity(&in))

	in.Press(KeyRight)
	in.Press(KeyLeft)
	in.Press(KeyUp)
	assert.Equal(t, [2]float64{-1, 1}, velocity(&in))
}

func TestInputReleaseStopsAxisWhicheverKeyWasPressedLast(t *testing.T) {
	var in Input

	in.Press(KeyUp)
	in.Press(KeyDown)
	in.Release(KeyUp)
	assert.Equal(t, [2]float64{0, 0}, velocity(&in))

	in.Press(KeyLeft)
	in.Press(KeyRight)
	in.Release(KeyLeft)
	assert.Equal(t, [2]float64{0, 0}, velocity(&in))

	// Releasing on a stopped axis changes nothing.
	in.Press(KeyUp)
	in.Release(KeyDown)
	in.Release(KeyDown)
	assert.Equal(t, [2]float64{0, 0}, velocity(&in))
}

func TestInputPressAndReleaseAreIdempotent(t *testing.T) {
	var in Input

	in.Press(KeyRight)
	in.Press(KeyRight)
	assert.Equal(t, [2]float64{1, 0}, velocity(&in))

	in.Release(KeyUp)
	assert.Equal(t, [2]float64{1, 0}, velocity(&in))

	in.Release(KeyRight)
	in.Release(KeyRight)
	assert.Equal(t, [2]float64{0, 0}, velocity(&in))
}

func TestInputFlipIsOneShot(t *testing.T) {
	var in Input
	assert.False(t, in.TakeFlip())

	in.Press(KeyFlip)
	in.Press(KeyFlip)
	assert.True(t, in.TakeFlip())
	assert.False(t, in.TakeFlip())

	in.Release(KeyFlip)
	assert.False(t, in.TakeFlip())
}

func TestInputWristAndReleaseAll(t *testing.T) {
	var in Input
	in.Apply(SetWrist(30))
	in.Apply(NudgeWrist(-45))
	assert.Equal(t, -15.0, in.Wrist())

	in.Apply(Press(KeyUp))
	in.Apply(Press(KeyLeft))
	in.Apply(Press(KeyFlip))
	in.Apply(ReleaseAll())
	assert.Equal(t, [2]float64{0, 0}, velocity(&in))
	assert.True(t, in.TakeFlip())
	assert.Equal(t, -15.0, in.Wrist())
}

func TestParseKey(t *testing.T) {
	for _, k := range []Key{KeyUp, KeyDown, KeyLeft, KeyRight, KeyFlip} {
		got, err := ParseKey(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	got, err := ParseKey("space")
	require.NoError(t, err)
	assert.Equal(t, KeyFlip, got)

	_, err = ParseKey("enter")
	assert.Error(t, err)
}
