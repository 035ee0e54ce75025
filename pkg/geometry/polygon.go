package geometry

import "math"

// crossProduct computes the cross product of vectors OA and OB.
func crossProduct(o, a, b Point2D) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// orientation classifies the turn from a->b->c: positive for counter-clockwise,
// negative for clockwise, zero for collinear.
func orientation(a, b, c Point2D) float64 {
	return crossProduct(a, b, c)
}

// onSegment reports whether point q lies on segment p-r, given p, q, r are collinear.
func onSegment(p, q, r Point2D) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}

// SegmentsIntersect reports whether segment p1-p2 properly or partially overlaps
// segment p3-p4, using the standard orientation/on-segment test. Touching counts
// as an intersection, including a shared endpoint; boundary.Validate only tests
// a quadrilateral's opposite edges, which share no endpoint.
func SegmentsIntersect(p1, p2, p3, p4 Point2D) bool {
	o1 := orientation(p1, p2, p3)
	o2 := orientation(p1, p2, p4)
	o3 := orientation(p3, p4, p1)
	o4 := orientation(p3, p4, p2)

	if o1 != 0 && o2 != 0 && o3 != 0 && o4 != 0 {
		if (o1 > 0) != (o2 > 0) && (o3 > 0) != (o4 > 0) {
			return true
		}
		return false
	}

	if o1 == 0 && onSegment(p1, p3, p2) {
		return true
	}
	if o2 == 0 && onSegment(p1, p4, p2) {
		return true
	}
	if o3 == 0 && onSegment(p3, p1, p4) {
		return true
	}
	if o4 == 0 && onSegment(p3, p2, p4) {
		return true
	}

	return false
}
