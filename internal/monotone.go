package internal

// Facilities for converting a Y-monotone polygon into triangles. A Y monotone
// polygon is a simple polygon such that any horizontal line intersects at most
// two edges.
//
// The lexicographic Point.Below() method is used to simulate a slightly rotated
// coordinate system that eliminates horizontal segments but note that this
// affects where horizontal segments are allowed while maintaining strict
// monotonicity. Since IsYMonotone uses the same ordering, any loop it accepts
// can be swept.

// Triangulate a y-monotone loop, returning counterclockwise index triples over
// the input. The loop may wind either way.
func TriangulateMonotone(loop []Point) (result [][3]int, err error) {
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
	if !(Polygon{loop}).IsYMonotone() {
		fatalf("polygon is not y-monotone")
	}
	polygon, order := counterclockwise(loop)
	return remapTriangles(triangulateMonotone(polygon), order), nil
}

// Sweep the CCW monotone polygon from top to bottom, keeping a stack of
// reflex chain vertices.
func triangulateMonotone(polygon Polygon) [][3]int {
	points := polygon.Points
	n := len(points)
	if n == 3 {
		return [][3]int{{0, 1, 2}}
	}

	triangles := make([][3]int, 0, n-2)

	// Find the top point
	var topPointIndex int
	for i, point := range points {
		if point.Above(points[topPointIndex]) {
			topPointIndex = i
		}
	}

	// Sort points so top point is at the top of the array.
	sortedPoints := make([]int, 0, n)
	sortedPoints = append(sortedPoints, topPointIndex)

	// Structure for determining which chain a point is on the left or right chain
	leftChain := make(IndexSet)

	// Merge sort points starting from top, noting which are on the left chain, and track the bottom point separately
	leftOffset := 1
	rightOffset := 1
	var bottomPoint int
	for {
		leftPoint := CircularIndex(topPointIndex+leftOffset, n)
		rightPoint := CircularIndex(topPointIndex-rightOffset, n)

		// If we've met up, we're done. We don't add the bottom point to the list,
		// as it's handled at the very end.
		if leftPoint == rightPoint {
			bottomPoint = leftPoint
			break
		}

		if points[leftPoint].Above(points[rightPoint]) {
			leftChain.Add(leftPoint)
			sortedPoints = append(sortedPoints, leftPoint)
			leftOffset++
		} else {
			sortedPoints = append(sortedPoints, rightPoint)
			rightOffset++
		}
	}

	isCCW := func(tri [3]int) bool {
		return TriangleArea(points[tri[0]], points[tri[1]], points[tri[2]]) > 0
	}
	appendTriangle := func(tri [3]int) {
		if TriangleArea(points[tri[0]], points[tri[1]], points[tri[2]]) < 0 {
			fatalf("triangle is clockwise: %v", tri)
		}
		triangles = append(triangles, tri)
	}

	// Create the stack and populate it with the first two points
	stack := make(IndexStack, 0, n)
	stack.Push(sortedPoints[0])
	stack.Push(sortedPoints[1])
	for i := 2; i < len(sortedPoints); i++ {
		p := sortedPoints[i]
		left := leftChain.Has(p)
		if left != leftChain.Has(stack.Peek()) { // If switched to opposite side chain
			// Monotonicity guarantees that all stack points are visible from the
			// current point, so the whole stack can be emptied into triangles.
			for !stack.Empty() {
				a := stack.Pop()
				if !stack.Empty() {
					b := stack.Peek()
					if left {
						appendTriangle([3]int{p, a, b})
					} else {
						appendTriangle([3]int{a, p, b})
					}
				}
			}
			// Put the last two points on the stack
			stack.Push(sortedPoints[i-1])
			stack.Push(p)
		} else { // Same side chain
			// Always pop the last point off. If we don't create any triangles this
			// time, we'll put it back
			v := stack.Pop()
			for !stack.Empty() {
				topOfStack := stack.Peek()
				// The easiest way to see if the point "sees" the top of the stack is to
				// try creating the triangle, and see if it's CCW
				var potentialTriangle [3]int
				if left {
					potentialTriangle = [3]int{p, topOfStack, v}
				} else {
					potentialTriangle = [3]int{p, v, topOfStack}
				}
				if !isCCW(potentialTriangle) {
					break
				}
				v = stack.Pop()
				triangles = append(triangles, potentialTriangle)
			}
			stack.Push(v)
			stack.Push(p)
		}
	}

	// Finally, add triangles for all remaining points on the stack. Note that we
	// always have two points.
	l := stack.Pop()
	for !stack.Empty() {
		p := stack.Pop()
		if leftChain.Has(l) {
			appendTriangle([3]int{bottomPoint, p, l})
		} else {
			appendTriangle([3]int{bottomPoint, l, p})
		}
		l = p
	}
	if len(triangles) != n-2 {
		fatalf("monotone sweep produced %d triangles for %d points", len(triangles), n)
	}
	return triangles
}

// Return the loop in counterclockwise order along with the original index of
// each reordered point.
func counterclockwise(loop []Point) (Polygon, []int) {
	n := len(loop)
	order := make([]int, n)
	points := make([]Point, n)
	reverse := !(Polygon{loop}).IsCCW()
	for i := range loop {
		j := i
		if reverse {
			j = n - 1 - i
		}
		order[i] = j
		points[i] = loop[j]
	}
	return Polygon{points}, order
}

func remapTriangles(triangles [][3]int, order []int) [][3]int {
	for i, tri := range triangles {
		triangles[i] = [3]int{order[tri[0]], order[tri[1]], order[tri[2]]}
	}
	return triangles
}
