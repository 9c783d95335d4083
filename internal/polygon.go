package internal

// A polygon is a loop of points. The last point is implicitly connected to the
// first, so the first point should not be repeated at the end.
type Polygon struct {
	Points []Point
}

// Edge returns the endpoints of the edge leaving vertex i.
func (poly Polygon) Edge(i int) (Point, Point) {
	n := len(poly.Points)
	return poly.Points[CircularIndex(i, n)], poly.Points[CircularIndex(i+1, n)]
}

// Winding number of the loop around p. It is zero only when p is outside.
//
// Each edge contributes when it crosses the horizontal through p: an upward
// crossing with p strictly left of the edge counts +1, a downward crossing with
// p strictly right counts -1. The half open comparisons on Y decide points on
// the boundary, so callers only ever see inside or outside.
func (poly Polygon) WindingNumber(p Point) int {
	wn := 0
	n := len(poly.Points)
	for i := 0; i < n; i++ {
		start, end := poly.Edge(i)
		if start.Y <= p.Y {
			if end.Y > p.Y && IsLeft(start, end, p) > 0 { // upward crossing, p left of edge
				wn++
			}
		} else {
			if end.Y <= p.Y && IsLeft(start, end, p) < 0 { // downward crossing, p right of edge
				wn--
			}
		}
	}
	return wn
}

// Winding rule point-in-polygon.
func (poly Polygon) ContainsPoint(p Point) bool {
	return poly.WindingNumber(p) != 0
}

// Even odd point-in-polygon. This is provided primarily for testing the
// winding rule, which must agree with it on simple polygons.
func (poly Polygon) ContainsPointByEvenOdd(p Point) bool {
	return poly.CrossingCount(p)%2 == 1
}

// Crossing count helper for even odd rule. Counts edges that straddle p
// vertically and lie to the right of it.
func (poly Polygon) CrossingCount(p Point) int {
	crossingCount := 0
	for i := range poly.Points {
		vertex, nextVertex := poly.Edge(i)
		if vertex.Below(p) == nextVertex.Below(p) {
			continue
		}
		// Orient the edge upward so that "right of" is unambiguous
		lower, upper := vertex, nextVertex
		if upper.Below(lower) {
			lower, upper = upper, lower
		}
		if IsLeft(lower, upper, p) > 0 {
			crossingCount++
		}
	}
	return crossingCount
}

func (poly Polygon) Reverse() Polygon {
	newPoly := Polygon{}
	for i := len(poly.Points) - 1; i >= 0; i-- {
		newPoly.Points = append(newPoly.Points, poly.Points[i])
	}
	return newPoly
}

// Shoelace area. Positive for counterclockwise loops.
func (poly Polygon) SignedArea() float64 {
	var area float64
	for i := range poly.Points {
		a, b := poly.Edge(i)
		area += a.Cross(b)
	}
	return area / 2
}

func (poly Polygon) IsCCW() bool {
	return poly.SignedArea() > 0
}

// Check that no two non-adjacent edges cross. This is quadratic, which is fine
// at interactive scale.
func (poly Polygon) IsSimple() bool {
	n := len(poly.Points)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		a, b := poly.Edge(i)
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 { // edges meet at vertex 0
				continue
			}
			c, d := poly.Edge(j)
			if SegmentsIntersect(a, b, c, d) {
				return false
			}
		}
	}
	return true
}

// A loop is y-monotone when it has exactly one local maximum under the
// lexicographic ordering used by Below. The local minimum then follows.
func (poly Polygon) IsYMonotone() bool {
	n := len(poly.Points)
	if n < 3 {
		return false
	}
	maxima := 0
	for i, p := range poly.Points {
		prev := poly.Points[CircularIndex(i-1, n)]
		next := poly.Points[CircularIndex(i+1, n)]
		if prev.Below(p) && next.Below(p) {
			maxima++
		}
	}
	return maxima == 1
}
