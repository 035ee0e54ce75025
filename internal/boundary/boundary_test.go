package boundary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knitscape/punchcard-digitizer/pkg/geometry"
)

func rectBoundary(w, h float64) Boundary {
	return Boundary{
		Corners: [4]geometry.Point2D{
			{X: 0, Y: 0},
			{X: w, Y: 0},
			{X: w, Y: h},
			{X: 0, Y: h},
		},
	}
}

func TestValidateAcceptsRectangle(t *testing.T) {
	b := rectBoundary(100, 100)
	assert.NoError(t, b.Validate())
}

func TestValidateRejectsCoincidentCorners(t *testing.T) {
	b := rectBoundary(100, 100)
	b.Corners[TR] = b.Corners[TL]
	assert.Error(t, b.Validate())
}

func TestValidateRejectsSelfIntersectingQuad(t *testing.T) {
	// Swapping TR and BR turns a rectangle into a self-intersecting "bowtie".
	b := rectBoundary(100, 100)
	b.Corners[TR], b.Corners[BR] = b.Corners[BR], b.Corners[TR]
	assert.Error(t, b.Validate())
}

func TestValidateRejectsTooManyMidpoints(t *testing.T) {
	b := rectBoundary(100, 100)
	b.Midpoints[Top] = make([]geometry.Point2D, 6) // 2 corners + 6 = 8 > 7
	assert.Error(t, b.Validate())
}

func TestSplineLinearForTwoPoints(t *testing.T) {
	s := NewSpline([]geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}})

	require.InDelta(t, 10, s.Length(), 1e-6)

	mid := s.Eval(0.5)
	assert.InDelta(t, 5, mid.X, 1e-6)
	assert.InDelta(t, 0, mid.Y, 1e-6)
}

func TestSplinePassesThroughControlPoints(t *testing.T) {
	pts := []geometry.Point2D{{X: 0, Y: 0}, {X: 5, Y: 3}, {X: 10, Y: 0}}
	s := NewSpline(pts)

	start := s.Eval(0)
	end := s.Eval(1)
	assert.InDelta(t, pts[0].X, start.X, 1e-6)
	assert.InDelta(t, pts[0].Y, start.Y, 1e-6)
	assert.InDelta(t, pts[len(pts)-1].X, end.X, 1e-6)
	assert.InDelta(t, pts[len(pts)-1].Y, end.Y, 1e-6)
}

func TestArcTableMonotonic(t *testing.T) {
	pts := []geometry.Point2D{{X: 0, Y: 0}, {X: 3, Y: 8}, {X: 10, Y: 1}, {X: 15, Y: 6}}
	s := NewSpline(pts)

	require.GreaterOrEqual(t, len(s.table.length), 2)
	for i := 1; i < len(s.table.length); i++ {
		assert.GreaterOrEqual(t, s.table.length[i], s.table.length[i-1])
	}
	assert.InDelta(t, s.table.length[len(s.table.length)-1], s.table.total, 1e-9)
}

func TestBuildCurvesOrientationMatchesCorners(t *testing.T) {
	b := rectBoundary(100, 50)
	c := BuildCurves(b)

	assert.Equal(t, b.Corners[TL], c.Edge(Top).Eval(0))
	assert.Equal(t, b.Corners[TR], c.Edge(Top).Eval(1))
	assert.Equal(t, b.Corners[TR], c.Edge(Right).Eval(0))
	assert.Equal(t, b.Corners[BR], c.Edge(Right).Eval(1))
	assert.Equal(t, b.Corners[BR], c.Edge(Bottom).Eval(0))
	assert.Equal(t, b.Corners[BL], c.Edge(Bottom).Eval(1))
	assert.Equal(t, b.Corners[BL], c.Edge(Left).Eval(0))
	assert.Equal(t, b.Corners[TL], c.Edge(Left).Eval(1))
}
