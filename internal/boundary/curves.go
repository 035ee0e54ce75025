package boundary

// Curves holds the four precomputed arc-length-parameterized splines for a
// Boundary, one per edge, in Top, Right, Bottom, Left order. Building it once
// per boundary avoids rebuilding the arc-length table on every surface-map
// evaluation.
type Curves struct {
	edges [4]Spline
}

// BuildCurves constructs the four edge splines of b.
func BuildCurves(b Boundary) Curves {
	var c Curves
	for e := Top; e <= Left; e++ {
		c.edges[e] = NewSpline(b.DefiningPoints(e))
	}
	return c
}

// Edge returns the spline for the given edge.
func (c Curves) Edge(e Edge) Spline {
	return c.edges[e]
}
