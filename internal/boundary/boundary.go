// Package boundary models the four-corner, curved-edge quadrilateral that
// encloses a photographed card, and the arc-length-parameterized splines
// that run along each of its edges.
package boundary

import (
	"fmt"

	"github.com/knitscape/punchcard-digitizer/pkg/geometry"
)

// Edge indexes one of the four boundary edges, in the order the spec's
// midpoint sequences are given.
type Edge int

const (
	Top Edge = iota
	Right
	Bottom
	Left
)

// Corner indexes one of the four boundary corners, in TL,TR,BR,BL order.
type Corner int

const (
	TL Corner = iota
	TR
	BR
	BL
)

// Boundary is the four-corner, curved-edge quadrilateral enclosing the card.
// Corners are ordered TL, TR, BR, BL. Midpoints[e] holds 0..5 additional
// points along edge e, ordered from the edge's start corner to its end
// corner; it does not include the corners themselves.
type Boundary struct {
	Corners   [4]geometry.Point2D   `json:"corners"`
	Midpoints [4][]geometry.Point2D `json:"midpoints"`
}

// edgeEndpoints returns the (start, end) corners bounding an edge, in the
// order the edge runs.
func edgeEndpoints(corners [4]geometry.Point2D, e Edge) (geometry.Point2D, geometry.Point2D) {
	switch e {
	case Top:
		return corners[TL], corners[TR]
	case Right:
		return corners[TR], corners[BR]
	case Bottom:
		return corners[BR], corners[BL]
	case Left:
		return corners[BL], corners[TL]
	default:
		panic(fmt.Sprintf("boundary: invalid edge %d", e))
	}
}

// DefiningPoints returns the full ordered sequence of points defining edge e:
// its start corner, its midpoints, and its end corner.
func (b Boundary) DefiningPoints(e Edge) []geometry.Point2D {
	start, end := edgeEndpoints(b.Corners, e)
	pts := make([]geometry.Point2D, 0, 2+len(b.Midpoints[e]))
	pts = append(pts, start)
	pts = append(pts, b.Midpoints[e]...)
	pts = append(pts, end)
	return pts
}

// Validate checks the data-model invariants from the spec: corners distinct,
// each edge has between 2 and 7 defining points, and the quadrilateral formed
// by the four corners is simple (non-self-intersecting). A self-intersecting
// boundary makes the inverse-map round-trip property meaningless, so callers
// should reject it before running detection.
func (b Boundary) Validate() error {
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if b.Corners[i] == b.Corners[j] {
				return fmt.Errorf("boundary: corners %d and %d coincide", i, j)
			}
		}
	}

	for e := Top; e <= Left; e++ {
		n := len(b.DefiningPoints(e))
		if n < 2 || n > 7 {
			return fmt.Errorf("boundary: edge %d has %d defining points, want 2..7", e, n)
		}
	}

	// The only possible self-intersection of a quadrilateral is between its
	// two pairs of opposite edges.
	c := b.Corners
	if geometry.SegmentsIntersect(c[TL], c[TR], c[BR], c[BL]) {
		return fmt.Errorf("boundary: top and bottom edges cross")
	}
	if geometry.SegmentsIntersect(c[TR], c[BR], c[BL], c[TL]) {
		return fmt.Errorf("boundary: right and left edges cross")
	}

	return nil
}
