package arm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeometryValidates(t *testing.T) {
	tests := []struct {
		name                           string
		link1, link2, wrist, gnd, base float64
		wantErr                        error
	}{
		{"ok", 112, 112, 0, 0, 0, nil},
		{"ok with wrist", 95.25, 81.8, 22.6, 18, 88, nil},
		{"zero link1", 0, 112, 0, 0, 0, ErrInvalidLength},
		{"negative link2", 112, -1, 0, 0, 0, ErrInvalidLength},
		{"nan link", math.NaN(), 1, 0, 0, 0, ErrInvalidLength},
		{"infinite link", math.Inf(1), 1, 0, 0, 0, ErrInvalidLength},
		{"negative wrist", 1, 1, -1, 0, 0, ErrInvalidWrist},
		{"negative ground", 1, 1, 0, -0.5, 0, ErrInvalidGround},
		{"negative base", 1, 1, 0, 0, -3, ErrInvalidBase},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGeometry(tt.link1, tt.link2, tt.wrist, tt.gnd, tt.base)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, Geometry{}, g)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.link1, g.Link1Length)
			assert.Equal(t, tt.wrist > 0, g.HasWrist())
		})
	}
}

func TestGeometryWorkspace(t *testing.T) {
	g, err := NewGeometry(95, 80, 20, 18, 0)
	require.NoError(t, err)

	w := g.Workspace()
	assert.Equal(t, 175.0, w.MaxRadius)
	assert.Equal(t, 15.0, w.MinRadius)
	assert.Equal(t, -18.0, w.GroundY)
}
