package internal

// Ear clipping triangulation for arbitrary simple polygons. This is quadratic
// in the worst case and cubic with the naive containment check used here,
// which is fine for hand drawn polygons. Collinear vertices are kept, so a loop
// of n points always produces exactly n-2 triangles.

// Triangulate a simple loop, returning counterclockwise index triples over the
// input. The loop may wind either way.
func EarClip(loop []Point) (result [][3]int, err error) {
	defer func() {
		recoveredErr := HandleTriangulatePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	if len(loop) < 3 {
		fatalWrapf(ErrDegenerate, "cannot triangulate polygon with point count: %d", len(loop))
	}
	if !(Polygon{loop}).IsSimple() {
		fatalWrapf(ErrNotSimple, "cannot triangulate %d point loop", len(loop))
	}
	polygon, order := counterclockwise(loop)
	return remapTriangles(earClip(polygon), order), nil
}

func earClip(polygon Polygon) [][3]int {
	points := polygon.Points
	n := len(points)
	triangles := make([][3]int, 0, n-2)

	// The remaining loop, as indices into points
	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}

	for len(remaining) > 3 {
		ear := findEar(points, remaining, true)
		if ear < 0 {
			// Only degenerate (zero area) ears are left. Cutting them keeps the
			// triangle count right without changing the covered area.
			ear = findEar(points, remaining, false)
		}
		if ear < 0 {
			fatalWrapf(ErrNoEar, "%d vertices remaining", len(remaining))
		}
		m := len(remaining)
		prev := remaining[CircularIndex(ear-1, m)]
		next := remaining[CircularIndex(ear+1, m)]
		triangles = append(triangles, [3]int{prev, remaining[ear], next})
		remaining = append(remaining[:ear], remaining[ear+1:]...)
	}
	return append(triangles, [3]int{remaining[0], remaining[1], remaining[2]})
}

// Find the position in remaining of a vertex that forms an ear with its
// neighbors, or -1. When strict is set, the ear must have positive area.
func findEar(points []Point, remaining []int, strict bool) int {
	m := len(remaining)
	for i := range remaining {
		a := points[remaining[CircularIndex(i-1, m)]]
		b := points[remaining[i]]
		c := points[remaining[CircularIndex(i+1, m)]]

		area := TriangleArea(a, b, c)
		if area < 0 || (strict && area == 0) {
			continue // reflex, can't be an ear
		}

		// Make sure no other vertex lies inside or on the potential ear
		isEar := true
		for j := 2; j < m-1; j++ {
			p := points[remaining[CircularIndex(i+j, m)]]
			if p == a || p == b || p == c {
				continue
			}
			if pointInTriangle(a, b, c, p) {
				isEar = false
				break
			}
		}
		if isEar {
			return i
		}
	}
	return -1
}

// Closed containment test for a counterclockwise triangle.
func pointInTriangle(a, b, c, p Point) bool {
	return IsLeft(a, b, p) >= 0 && IsLeft(b, c, p) >= 0 && IsLeft(c, a, p) >= 0
}

// Triangulate with the linear monotone sweep when the loop allows it, and fall
// back to ear clipping otherwise.
func Triangulate(loop []Point) ([][3]int, error) {
	if len(loop) > 3 && (Polygon{loop}).IsSimple() && (Polygon{loop}).IsYMonotone() {
		if triangles, err := TriangulateMonotone(loop); err == nil {
			return triangles, nil
		}
	}
	return EarClip(loop)
}
