package surface

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/knitscape/punchcard-digitizer/pkg/geometry"
)

const (
	maxNewtonIterations = 15
	newtonInitialGuess  = 0.5
	jacobianStep        = 1e-3
	newtonDamping       = 0.5
	convergenceEpsPx    = 0.5
	outsideMargin       = 1e-3
	degenerateDet       = 1e-4
)

// InverseResult is the outcome of an Inverse query.
type InverseResult struct {
	U, V    float64
	Outside bool // (u,v) after the last iteration fell outside [-eps, 1+eps]
	Ok      bool // false on degenerate Jacobian; caller treats as a miss
}

// Inverse solves Forward(u,v) = p for (u,v) by Newton iteration with a
// central-difference Jacobian, starting from (0.5, 0.5). It returns Ok=false
// if the Jacobian becomes degenerate at any iteration (no retry), and
// Outside=true if the converged point lies outside the patch's parameter
// domain (with a small tolerance).
func (s Surface) Inverse(p geometry.Point2D) InverseResult {
	u, v := newtonInitialGuess, newtonInitialGuess

	for iter := 0; iter < maxNewtonIterations; iter++ {
		current := s.Forward(u, v)
		residual := p.Sub(current)

		if math.Hypot(residual.X, residual.Y) < convergenceEpsPx {
			break
		}

		j11, j21 := s.partial(u, v, true)
		j12, j22 := s.partial(u, v, false)

		det := j11*j22 - j12*j21
		if math.Abs(det) < degenerateDet {
			return InverseResult{Ok: false}
		}

		jac := mat.NewDense(2, 2, []float64{j11, j12, j21, j22})
		rhs := mat.NewVecDense(2, []float64{residual.X, residual.Y})

		var delta mat.VecDense
		if err := delta.SolveVec(jac, rhs); err != nil {
			return InverseResult{Ok: false}
		}

		u += newtonDamping * delta.AtVec(0)
		v += newtonDamping * delta.AtVec(1)
	}

	if u < -outsideMargin || u > 1+outsideMargin || v < -outsideMargin || v > 1+outsideMargin {
		return InverseResult{U: u, V: v, Outside: true, Ok: true}
	}

	return InverseResult{U: u, V: v, Ok: true}
}

// partial returns the central-difference partial derivative of Forward(u,v)
// with respect to u (byU=true) or v (byU=false), as (dX, dY).
func (s Surface) partial(u, v float64, byU bool) (float64, float64) {
	var plus, minus geometry.Point2D
	if byU {
		plus = s.Forward(u+jacobianStep, v)
		minus = s.Forward(u-jacobianStep, v)
	} else {
		plus = s.Forward(u, v+jacobianStep)
		minus = s.Forward(u, v-jacobianStep)
	}
	d := plus.Sub(minus).Scale(1 / (2 * jacobianStep))
	return d.X, d.Y
}
