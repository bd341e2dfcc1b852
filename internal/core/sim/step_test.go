package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/armsim/internal/core/arm"
	"github.com/zeusync/armsim/internal/core/geometry"
)

func testGeometry(t *testing.T) arm.Geometry {
	t.Helper()
	g, err := arm.NewGeometry(112, 112, 0, 0, 0)
	require.NoError(t, err)
	return g
}

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]Policy{"": Reject, "reject": Reject, "per_axis": PerAxis, "Clamp": Clamp} {
		got, err := ParsePolicy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParsePolicy("slide")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestMotionValidate(t *testing.T) {
	assert.NoError(t, Motion{Speed: 1}.Validate())
	assert.ErrorIs(t, Motion{}.Validate(), ErrInvalidSpeed)
	assert.ErrorIs(t, Motion{Speed: -2}.Validate(), ErrInvalidSpeed)
	assert.ErrorIs(t, Motion{Speed: 1, Policy: Policy(9)}.Validate(), ErrUnknownPolicy)
}

func TestStepMovesInside(t *testing.T) {
	g := testGeometry(t)
	state := EffectorState{Position: geometry.Point{X: 100, Y: 100}}

	next := Step(state, geometry.Point{X: 1, Y: -1}, g, Motion{Speed: 2})
	assert.Equal(t, geometry.Point{X: 102, Y: 98}, next.Position)
	assert.Equal(t, geometry.Point{X: 1, Y: -1}, next.Velocity)

	// Input does not leak into the caller's copy.
	assert.Equal(t, geometry.Point{X: 100, Y: 100}, state.Position)
}

func TestStepRejectsOutwardAtBoundary(t *testing.T) {
	g := testGeometry(t)
	boundary := []struct {
		pos, in geometry.Point
	}{
		{geometry.Point{X: 224, Y: 0}, geometry.Point{X: 1}},
		{geometry.Point{X: -224, Y: 0}, geometry.Point{X: -1}},
		{geometry.Point{X: 0, Y: 224}, geometry.Point{Y: 1}},
		{geometry.Point{X: 50, Y: 0}, geometry.Point{Y: -1}},
		{geometry.Point{X: 224, Y: 0}, geometry.Point{X: 1, Y: 1}},
	}
	for _, tt := range boundary {
		next := Step(EffectorState{Position: tt.pos}, tt.in, g, Motion{Speed: 1})
		assert.Equal(t, tt.pos, next.Position, "from %v by %v", tt.pos, tt.in)
	}
}

func TestStepRejectsWholeDiagonal(t *testing.T) {
	g := testGeometry(t)
	start := geometry.Point{X: 223.5, Y: 0}

	// y alone would be fine; x leaves the circle.
	next := Step(EffectorState{Position: start}, geometry.Point{X: 1, Y: 1}, g, Motion{Speed: 1, Policy: Reject})
	assert.Equal(t, start, next.Position)

	next = Step(EffectorState{Position: start}, geometry.Point{X: 1, Y: 1}, g, Motion{Speed: 1, Policy: PerAxis})
	assert.Equal(t, geometry.Point{X: 223.5, Y: 1}, next.Position)
}

func TestStepPerAxisEvaluatesXFirst(t *testing.T) {
	g := testGeometry(t)
	// Either axis alone fits; both together do not. x is tried first and
	// wins, so y is blocked.
	start := geometry.Point{X: 150, Y: 165}
	next := Step(EffectorState{Position: start}, geometry.Point{X: 1, Y: 1}, g, Motion{Speed: 1, Policy: PerAxis})
	assert.Equal(t, geometry.Point{X: 151, Y: 165}, next.Position)
}

func TestStepClampSlidesOntoBoundary(t *testing.T) {
	g := testGeometry(t)
	next := Step(EffectorState{Position: geometry.Point{X: 224}}, geometry.Point{X: 1, Y: 1}, g, Motion{Speed: 1, Policy: Clamp})

	assert.True(t, g.Workspace().IsReachable(next.Position))
	assert.InDelta(t, 224, geometry.Radius(next.Position), 1e-9)
	assert.Greater(t, next.Position.Y, 0.0)
}
