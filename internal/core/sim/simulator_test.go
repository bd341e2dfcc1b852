package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/armsim/internal/core/arm"
	"github.com/zeusync/armsim/internal/core/geometry"
)

func newSim(t *testing.T, cfg Config) *Simulator {
	t.Helper()
	s, err := New(cfg, nil)
	require.NoError(t, err)
	return s
}

func defaultConfig(t *testing.T) Config {
	return Config{
		Geometry: testGeometry(t),
		Variant:  arm.Atan2,
		Motion:   Motion{Speed: 1},
		Start:    geometry.Point{X: 100, Y: 100},
	}
}

func TestNewValidates(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Start = geometry.Point{X: 500}
	_, err := New(cfg, nil)
	assert.ErrorIs(t, err, ErrUnreachable)

	cfg = defaultConfig(t)
	cfg.Motion.Speed = 0
	_, err = New(cfg, nil)
	assert.ErrorIs(t, err, ErrInvalidSpeed)

	cfg = defaultConfig(t)
	cfg.Variant = arm.SolverVariant(7)
	_, err = New(cfg, nil)
	assert.ErrorIs(t, err, arm.ErrUnknownVariant)

	cfg = defaultConfig(t)
	cfg.Geometry = arm.Geometry{}
	_, err = New(cfg, nil)
	assert.ErrorIs(t, err, arm.ErrInvalidLength)
}

func TestNewSolvesStartPose(t *testing.T) {
	s := newSim(t, defaultConfig(t))
	f := s.Frame()

	assert.Equal(t, uint64(0), f.Tick)
	assert.InDelta(t, 1.672908, f.Angles.Theta1, 1e-6)
	assert.InDelta(t, -1.775019, f.Angles.Theta2, 1e-6)
	assert.InDelta(t, 100, f.Chain.Effector.X, 1e-9)
	assert.InDelta(t, 100, f.Chain.Effector.Y, 1e-9)
}

func TestTickMovesAndResolves(t *testing.T) {
	s := newSim(t, defaultConfig(t))

	s.Apply(Press(KeyRight))
	f := s.Tick()
	assert.Equal(t, uint64(1), f.Tick)
	assert.True(t, f.Moved)
	assert.False(t, f.Blocked)
	assert.Equal(t, geometry.Point{X: 101, Y: 100}, f.State.Position)
	assert.Equal(t, geometry.Point{X: 1}, f.State.Velocity)
	assert.InDelta(t, 101, f.Chain.Effector.X, 1e-9)
	assert.InDelta(t, 100, f.Chain.Effector.Y, 1e-9)

	s.Apply(Release(KeyRight))
	f = s.Tick()
	assert.False(t, f.Moved)
	assert.False(t, f.Blocked)
	assert.Equal(t, geometry.Point{X: 101, Y: 100}, f.State.Position)
}

func TestTickFlipMirrorsX(t *testing.T) {
	s := newSim(t, defaultConfig(t))

	s.Apply(Press(KeyFlip))
	f := s.Tick()
	assert.True(t, f.Flipped)
	assert.Equal(t, geometry.Point{X: -100, Y: 100}, f.State.Position)

	f = s.Tick()
	assert.False(t, f.Flipped)
	assert.Equal(t, geometry.Point{X: -100, Y: 100}, f.State.Position)
}

func TestTickBlockedAtBoundary(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Start = geometry.Point{X: 224}
	s := newSim(t, cfg)

	s.Apply(Press(KeyRight))
	for i := 0; i < 5; i++ {
		f := s.Tick()
		assert.True(t, f.Blocked)
		assert.False(t, f.Moved)
		assert.Equal(t, geometry.Point{X: 224}, f.State.Position)
	}
}

func TestTickWristFollowsInput(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.WristDegrees = 10
	s := newSim(t, cfg)
	assert.InDelta(t, geometry.Radians(10), s.Angles().WristOrientation(), 1e-9)

	s.Apply(SetWrist(-30))
	f := s.Tick()
	assert.Equal(t, -30.0, f.Wrist)
	assert.InDelta(t, geometry.Radians(-30), f.Angles.WristOrientation(), 1e-9)
}

func TestRandomWalkStaysInWorkspace(t *testing.T) {
	keys := []Key{KeyUp, KeyDown, KeyLeft, KeyRight, KeyFlip}
	for _, policy := range []Policy{Reject, PerAxis, Clamp} {
		for _, variant := range []arm.SolverVariant{arm.Atan2, arm.LawOfCosines} {
			g, err := arm.NewGeometry(95.25, 81.838079, 22.609618, 18.0162, 88.10244)
			require.NoError(t, err)
			s := newSim(t, Config{
				Geometry: g,
				Variant:  variant,
				Motion:   Motion{Speed: 7, Policy: policy},
				Start:    geometry.Point{X: 100, Y: 100},
			})
			w := g.Workspace()
			rng := rand.New(rand.NewSource(42))

			for i := 0; i < 3000; i++ {
				k := keys[rng.Intn(len(keys))]
				if rng.Intn(3) == 0 {
					s.Apply(Release(k))
				} else {
					s.Apply(Press(k))
				}
				f := s.Tick()
				require.True(t, w.IsReachable(f.State.Position), "%v %v tick %d: %v", policy, variant, i, f.State.Position)
				for _, v := range []float64{f.Angles.Theta1, f.Angles.Theta2, f.Angles.Theta3} {
					require.False(t, math.IsNaN(v))
				}
				require.True(t, geometry.Finite(f.Chain.Gripper.End))
			}
		}
	}
}
