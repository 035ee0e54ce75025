package boundary

import (
	"sort"

	"github.com/knitscape/punchcard-digitizer/pkg/geometry"
)

// arcTableSamples is the number of uniformly-sampled points used to build the
// cumulative chord-length table for arc-length reparameterization (spec §4.1).
const arcTableSamples = 200

// Spline is a Catmull-Rom curve through an edge's defining points (corners
// plus midpoints), reparameterized by arc length so that evaluating it at
// t=0.5 returns the point halfway along its actual length rather than
// halfway through its control-point parameterization.
type Spline struct {
	points []geometry.Point2D // padded with reflected phantom endpoints
	table  arcTable
}

// arcTable holds cumulative chord lengths at arcTableSamples uniform
// parameter samples across [0,1].
type arcTable struct {
	t      []float64 // uniform parameter values, length arcTableSamples
	length []float64 // cumulative arc length at each sample, monotonic nondecreasing
	total  float64
}

// NewSpline builds a Catmull-Rom spline through pts (must have length >= 2).
// For exactly 2 points the "spline" is the straight segment between them.
func NewSpline(pts []geometry.Point2D) Spline {
	padded := make([]geometry.Point2D, len(pts)+2)
	copy(padded[1:len(pts)+1], pts)

	if len(pts) >= 2 {
		padded[0] = pts[0].Scale(2).Sub(pts[1])
		padded[len(padded)-1] = pts[len(pts)-1].Scale(2).Sub(pts[len(pts)-2])
	} else {
		padded[0] = pts[0]
		padded[len(padded)-1] = pts[0]
	}

	s := Spline{points: padded}
	s.table = buildArcTable(s.evalUniform)
	return s
}

// evalUniform evaluates the curve at uniform parameter u in [0,1], without
// arc-length correction. For 2 control points this is linear interpolation;
// for >=3 it is a standard centripetal-agnostic (uniform) Catmull-Rom spline
// with reflected phantom points at both ends.
func (s Spline) evalUniform(u float64) geometry.Point2D {
	n := len(s.points) - 2 // number of real (non-phantom) control points
	if n < 2 {
		return s.points[1]
	}
	if n == 2 {
		return s.points[1].Scale(1 - u).Add(s.points[2].Scale(u))
	}

	segments := n - 1
	if u >= 1 {
		u = 1
	}
	if u < 0 {
		u = 0
	}
	scaled := u * float64(segments)
	idx := int(scaled)
	if idx >= segments {
		idx = segments - 1
	}
	local := scaled - float64(idx)

	// points[] is padded by one phantom on each side, so the real control
	// point i lives at points[i+1]; the Catmull-Rom basis for segment idx
	// needs control points idx-1..idx+2 in real-index space, i.e.
	// points[idx..idx+3] in padded-index space.
	p0 := s.points[idx]
	p1 := s.points[idx+1]
	p2 := s.points[idx+2]
	p3 := s.points[idx+3]

	return catmullRom(p0, p1, p2, p3, local)
}

// catmullRom evaluates the uniform Catmull-Rom basis through p0..p3 at local
// parameter u in [0,1], producing a point between p1 and p2.
func catmullRom(p0, p1, p2, p3 geometry.Point2D, u float64) geometry.Point2D {
	u2 := u * u
	u3 := u2 * u

	c0 := 2 * p1.X
	c1 := -p0.X + p2.X
	c2 := 2*p0.X - 5*p1.X + 4*p2.X - p3.X
	c3 := -p0.X + 3*p1.X - 3*p2.X + p3.X
	x := 0.5 * (c0 + c1*u + c2*u2 + c3*u3)

	d0 := 2 * p1.Y
	d1 := -p0.Y + p2.Y
	d2 := 2*p0.Y - 5*p1.Y + 4*p2.Y - p3.Y
	d3 := -p0.Y + 3*p1.Y - 3*p2.Y + p3.Y
	y := 0.5 * (d0 + d1*u + d2*u2 + d3*u3)

	return geometry.Point2D{X: x, Y: y}
}

// buildArcTable samples eval at arcTableSamples uniform parameter values and
// accumulates chord lengths between consecutive samples.
func buildArcTable(eval func(float64) geometry.Point2D) arcTable {
	tbl := arcTable{
		t:      make([]float64, arcTableSamples),
		length: make([]float64, arcTableSamples),
	}

	prev := eval(0)
	tbl.t[0] = 0
	tbl.length[0] = 0
	for i := 1; i < arcTableSamples; i++ {
		u := float64(i) / float64(arcTableSamples-1)
		p := eval(u)
		tbl.t[i] = u
		tbl.length[i] = tbl.length[i-1] + prev.Distance(p)
		prev = p
	}
	tbl.total = tbl.length[arcTableSamples-1]
	return tbl
}

// Length returns the total arc length of the spline.
func (s Spline) Length() float64 {
	return s.table.total
}

// Eval returns the point at fractional arc length t (t in [0,1]), found by
// binary search in the cumulative chord-length table plus linear
// interpolation between table entries, then evaluating the underlying
// spline at the recovered uniform parameter.
func (s Spline) Eval(t float64) geometry.Point2D {
	if t <= 0 {
		return s.evalUniform(0)
	}
	if t >= 1 {
		return s.evalUniform(1)
	}

	target := t * s.table.total
	if s.table.total == 0 {
		return s.evalUniform(0)
	}

	lengths := s.table.length
	idx := sort.SearchFloat64s(lengths, target)
	if idx <= 0 {
		return s.evalUniform(s.table.t[0])
	}
	if idx >= len(lengths) {
		return s.evalUniform(s.table.t[len(lengths)-1])
	}

	loLen, hiLen := lengths[idx-1], lengths[idx]
	loT, hiT := s.table.t[idx-1], s.table.t[idx]
	if hiLen == loLen {
		return s.evalUniform(loT)
	}
	frac := (target - loLen) / (hiLen - loLen)
	u := loT + frac*(hiT-loT)
	return s.evalUniform(u)
}
