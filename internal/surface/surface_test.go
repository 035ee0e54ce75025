package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knitscape/punchcard-digitizer/internal/boundary"
	"github.com/knitscape/punchcard-digitizer/pkg/geometry"
)

func rectBoundary(w, h float64) boundary.Boundary {
	return boundary.Boundary{
		Corners: [4]geometry.Point2D{
			{X: 0, Y: 0},
			{X: w, Y: 0},
			{X: w, Y: h},
			{X: 0, Y: h},
		},
	}
}

// TestForwardIdentityMap covers spec property 4: for a rectangular boundary,
// the forward map recovers the obvious linear mapping.
func TestForwardIdentityMap(t *testing.T) {
	const imW, imH = 200.0, 100.0
	s := New(rectBoundary(imW, imH))

	for _, uv := range [][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0.25, 0.75}, {0.5, 0.5}} {
		p := s.Forward(uv[0], uv[1])
		assert.InDelta(t, uv[0]*imW, p.X, 1e-6)
		assert.InDelta(t, uv[1]*imH, p.Y, 1e-6)
	}
}

// TestInverseRoundTrip covers spec property 5: for points well inside the
// patch, Inverse(Forward(u,v)) recovers (u,v) to within 0.01 in u and v on
// a boundary with curved (non-rectangular) edges.
func TestInverseRoundTrip(t *testing.T) {
	b := rectBoundary(200, 150)
	// Bow the top edge outward slightly to exercise the curved-edge path.
	b.Midpoints[boundary.Top] = []geometry.Point2D{{X: 100, Y: -10}}

	s := New(b)

	for _, uv := range [][2]float64{
		{0.1, 0.1}, {0.5, 0.5}, {0.9, 0.1}, {0.1, 0.9}, {0.9, 0.9}, {0.3, 0.7},
	} {
		target := s.Forward(uv[0], uv[1])
		res := s.Inverse(target)
		require.True(t, res.Ok)
		require.False(t, res.Outside)
		assert.InDelta(t, uv[0], res.U, 0.01)
		assert.InDelta(t, uv[1], res.V, 0.01)
	}
}

// TestInverseOutsideDetection covers the "miss" side of spec §7: a point far
// outside the patch must never be reported as a valid in-range match. It is
// either flagged Outside, or the Jacobian goes degenerate under the extreme
// extrapolation and the query is treated as a miss (Ok=false) -- both are
// valid "not a hit" outcomes per the error-handling table.
func TestInverseOutsideDetection(t *testing.T) {
	s := New(rectBoundary(100, 100))
	res := s.Inverse(geometry.Point2D{X: 500, Y: 500})
	if res.Ok {
		assert.True(t, res.Outside)
	}
}
