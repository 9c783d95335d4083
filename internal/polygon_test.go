package internal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Grid sampling over the padded bounding box of the polygon. The offset keeps
// samples off the integer lattice the fixtures are drawn on, so no sample lands
// exactly on a boundary.
func samplePoints(poly Polygon, steps int) []Point {
	minX, minY, maxX, maxY := math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
	for _, p := range poly.Points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	xPadding := (maxX - minX) * 0.1
	yPadding := (maxY - minY) * 0.1
	minX -= xPadding
	minY -= yPadding
	maxX += xPadding
	maxY += yPadding

	step := math.Max(maxX-minX, maxY-minY) / float64(steps)
	var points []Point
	for y := minY + 0.01373; y <= maxY; y += step {
		for x := minX + 0.00917; x <= maxX; x += step {
			points = append(points, Point{X: x, Y: y})
		}
	}
	return points
}

func convexContains(poly Polygon, p Point) bool {
	for i := range poly.Points {
		a, b := poly.Edge(i)
		if IsLeft(a, b, p) <= 0 {
			return false
		}
	}
	return true
}

func regularPolygon(n int, radius float64) Polygon {
	var points []Point
	for i := 0; i < n; i++ {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.1
		points = append(points, Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)})
	}
	return Polygon{points}
}

func TestWindingNumber_AgreesWithCrossProductOnConvex(t *testing.T) {
	for _, poly := range []Polygon{Square(), FlatHexagon(), LoadFixture("hexagon"), regularPolygon(7, 3), regularPolygon(23, 10)} {
		for _, p := range samplePoints(poly, 40) {
			expected := convexContains(poly, p)
			assert.Equal(t, expected, poly.ContainsPoint(p), "point %v", p)
			// Winding direction must not matter
			assert.Equal(t, expected, poly.Reverse().ContainsPoint(p), "point %v reversed", p)
		}
	}
}

func TestWindingNumber_AgreesWithEvenOdd(t *testing.T) {
	for _, name := range []string{"spiral", "comb", "hexagon"} {
		t.Run(name, func(t *testing.T) {
			poly := LoadFixture(name)
			for _, p := range samplePoints(poly, 50) {
				assert.Equal(t, poly.ContainsPointByEvenOdd(p), poly.ContainsPoint(p), "point %v", p)
			}
		})
	}
	t.Run("star", func(t *testing.T) {
		poly := SimpleStar()
		for _, p := range samplePoints(poly, 50) {
			assert.Equal(t, poly.ContainsPointByEvenOdd(p), poly.ContainsPoint(p), "point %v", p)
		}
	})
}

func TestWindingNumber_Sign(t *testing.T) {
	square := Square()
	assert.Equal(t, 1, square.WindingNumber(Point{0.5, 0.5}))
	assert.Equal(t, -1, square.Reverse().WindingNumber(Point{0.5, 0.5}))
	assert.Equal(t, 0, square.WindingNumber(Point{10, 0.5}))
	assert.False(t, Polygon{}.ContainsPoint(Point{0, 0}))
}

func TestWindingNumber_ClosedTriangleLoop(t *testing.T) {
	// A triangle given with its first point repeated, as a closed 4 point loop,
	// must behave like the plain triangle.
	a, b, c := Point{0, 0}, Point{4, 0}, Point{0, 4}
	closed := Polygon{[]Point{a, b, c, a}}
	open := Polygon{[]Point{a, b, c}}
	for _, p := range samplePoints(open, 20) {
		assert.Equal(t, open.ContainsPoint(p), closed.ContainsPoint(p), "point %v", p)
	}
}

func TestSignedArea(t *testing.T) {
	assert.InDelta(t, 100.0, Square().SignedArea(), Tolerance)
	assert.InDelta(t, -100.0, Square().Reverse().SignedArea(), Tolerance)
	assert.InDelta(t, 60.0, LoadFixture("spiral").SignedArea(), Tolerance)
	assert.True(t, LoadFixture("comb").IsCCW())
}

func TestIsSimple(t *testing.T) {
	assert.True(t, Square().IsSimple())
	assert.True(t, LoadFixture("spiral").IsSimple())
	assert.True(t, LoadFixture("comb").IsSimple())
	assert.True(t, SimpleStar().IsSimple())

	bowtie := Polygon{[]Point{{0, 0}, {2, 2}, {2, 0}, {0, 2}}}
	assert.False(t, bowtie.IsSimple())
	assert.False(t, Polygon{[]Point{{0, 0}, {1, 1}}}.IsSimple())
}

func TestIsYMonotone(t *testing.T) {
	assert.True(t, Square().IsYMonotone())
	assert.True(t, FlatHexagon().IsYMonotone())
	assert.True(t, MonotoneZigzag().IsYMonotone())
	assert.True(t, MonotoneZigzag().Reverse().IsYMonotone())
	assert.False(t, LoadFixture("comb").IsYMonotone())
	assert.False(t, LoadFixture("spiral").IsYMonotone())
	assert.False(t, SimpleStar().IsYMonotone())
}
