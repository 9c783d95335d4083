package internal

import "math"

// Points are plain values. Structural checks such as "did the loop close" use
// exact equality, so a point should never be rebuilt from its coordinates when
// the original value is available.
type Point struct {
	X float64
	Y float64
}

func (p Point) Add(other Point) Point {
	return Point{p.X + other.X, p.Y + other.Y}
}

func (p Point) Sub(other Point) Point {
	return Point{p.X - other.X, p.Y - other.Y}
}

func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// 2D cross product of the two points treated as vectors from the origin.
func (p Point) Cross(other Point) float64 {
	return p.X*other.Y - p.Y*other.X
}

func Distance(a, b Point) float64 {
	xs := a.X - b.X
	ys := a.Y - b.Y
	return math.Sqrt(xs*xs + ys*ys)
}

// Tests if p2 is left of, on, or right of the infinite line through p0 and p1.
// The result is >0 for left, 0 for on the line, and <0 for right. With a y-down
// screen coordinate system, "left" is visually on the right, but every
// predicate in this package uses the same convention so it does not matter.
func IsLeft(p0, p1, p2 Point) float64 {
	return (p1.X-p0.X)*(p2.Y-p0.Y) - (p2.X-p0.X)*(p1.Y-p0.Y)
}

// Strict counterclockwise orientation of the triple a, b, c.
func CCW(a, b, c Point) bool {
	return (c.Y-a.Y)*(b.X-a.X) > (b.Y-a.Y)*(c.X-a.X)
}

// Check whether segment AB crosses segment CD. Segments that chain together
// (B == C) never count as crossing, since that is how consecutive polygon edges
// meet. Collinear overlaps are not detected.
func SegmentsIntersect(a, b, c, d Point) bool {
	if b == c {
		return false
	}
	return CCW(a, c, d) != CCW(b, c, d) && CCW(a, b, c) != CCW(a, b, d)
}

func Midpoint(a, b Point) Point {
	return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

// Arithmetic mean of the three points.
func Centroid(a, b, c Point) Point {
	return Point{(a.X + b.X + c.X) / 3, (a.Y + b.Y + c.Y) / 3}
}

// Signed area of a triangle. Positive for counterclockwise winding.
func TriangleArea(a, b, c Point) float64 {
	return IsLeft(a, b, c) / 2
}
