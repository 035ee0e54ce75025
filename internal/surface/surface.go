// Package surface implements the Coons-patch forward and inverse mapping
// between grid coordinates and image-plane coordinates, bounded by a
// boundary's four edge curves.
package surface

import (
	"github.com/knitscape/punchcard-digitizer/internal/boundary"
	"github.com/knitscape/punchcard-digitizer/pkg/geometry"
)

// Surface is the Coons patch bounded by a Boundary's four edge curves.
type Surface struct {
	curves  boundary.Curves
	corners [4]geometry.Point2D
}

// New builds a Surface from a boundary. The boundary's edge splines (and
// their arc-length tables) are built once here and reused by every
// subsequent Forward/Inverse call.
func New(b boundary.Boundary) Surface {
	return Surface{
		curves:  boundary.BuildCurves(b),
		corners: b.Corners,
	}
}

// top, bottom, left, right return edge-boundary points at parameter u or v
// in [0,1], oriented so that u=0/v=0 is always the TL-adjacent end and
// u=1/v=1 is always the BR-adjacent end, matching the opposite edge's
// orientation (required for the Coons blend below to line up).
func (s Surface) top(u float64) geometry.Point2D    { return s.curves.Edge(boundary.Top).Eval(u) }
func (s Surface) bottom(u float64) geometry.Point2D { return s.curves.Edge(boundary.Bottom).Eval(1 - u) }
func (s Surface) left(v float64) geometry.Point2D   { return s.curves.Edge(boundary.Left).Eval(1 - v) }
func (s Surface) right(v float64) geometry.Point2D  { return s.curves.Edge(boundary.Right).Eval(v) }

// Forward evaluates the Coons patch at parametric coordinates (u,v), each
// nominally in [0,1]. Outside that range the edge splines are not
// extrapolated: each clamps its parameter to [0,1], and only the blend
// weights take the out-of-range values.
func (s Surface) Forward(u, v float64) geometry.Point2D {
	tl, tr, br, bl := s.corners[boundary.TL], s.corners[boundary.TR], s.corners[boundary.BR], s.corners[boundary.BL]

	boundaryTerm := s.top(u).Scale(1 - v).
		Add(s.bottom(u).Scale(v)).
		Add(s.left(v).Scale(1 - u)).
		Add(s.right(v).Scale(u))

	cornerTerm := tl.Scale((1 - u) * (1 - v)).
		Add(tr.Scale(u * (1 - v))).
		Add(br.Scale(u * v)).
		Add(bl.Scale((1 - u) * v))

	return boundaryTerm.Sub(cornerTerm)
}

// ForwardGrid evaluates the forward map at grid coordinate (c,r) with
// c in [0,W], r in [0,H], as used by the rectifier.
func (s Surface) ForwardGrid(c, r, w, h float64) geometry.Point2D {
	return s.Forward(c/w, r/h)
}
