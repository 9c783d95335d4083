package internal

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to check that a triangulation is valid. The rules are:
// 1. There are exactly n-2 triangles.
// 2. Every index of the polygon is used, and no other index is.
// 3. Every edge of the polygon is an edge of some triangle.
// 4. Every triangle is counterclockwise.
// 5. The sum of the areas of all triangles is equal to the area of the polygon.
func AssertValidTriangulation(t *testing.T, polygon Polygon, triangles [][3]int) {
	n := len(polygon.Points)
	require.Len(t, triangles, n-2, "triangle count")

	used := make(IndexSet)
	edges := make(map[[2]int]struct{})
	addEdge := func(a, b int) {
		if a > b {
			a, b = b, a
		}
		edges[[2]int{a, b}] = struct{}{}
	}
	var triangleArea float64
	for _, tri := range triangles {
		for _, i := range tri {
			require.True(t, i >= 0 && i < n, "index %d out of range", i)
			used.Add(i)
		}
		a, b, c := polygon.Points[tri[0]], polygon.Points[tri[1]], polygon.Points[tri[2]]
		area := TriangleArea(a, b, c)
		require.GreaterOrEqual(t, area, 0.0, "clockwise triangle: %v", tri)
		triangleArea += area
		addEdge(tri[0], tri[1])
		addEdge(tri[1], tri[2])
		addEdge(tri[2], tri[0])
	}
	assert.Len(t, used, n, "set of indexes in the triangles must equal the set of indexes in the polygon")

	for i := 0; i < n; i++ {
		a, b := i, CircularIndex(i+1, n)
		if a > b {
			a, b = b, a
		}
		_, ok := edges[[2]int{a, b}]
		assert.True(t, ok, "segment %d-%d of the polygon is not in the triangles", i, CircularIndex(i+1, n))
	}

	expectedArea := polygon.SignedArea()
	if expectedArea < 0 {
		expectedArea = -expectedArea
	}
	assert.InDelta(t, expectedArea, triangleArea, Tolerance, "sum of the areas of all triangles is equal to the area of the polygon")
}

// Every sample inside the polygon must be inside exactly one triangle, and
// every sample outside must be in none.
func validateTrianglesBySampling(t *testing.T, polygon Polygon, triangles [][3]int) {
	for _, p := range samplePoints(polygon, 50) {
		count := 0
		for _, tri := range triangles {
			loop := Polygon{[]Point{polygon.Points[tri[0]], polygon.Points[tri[1]], polygon.Points[tri[2]]}}
			if loop.ContainsPoint(p) {
				count++
			}
		}
		if polygon.ContainsPoint(p) {
			assert.Equal(t, 1, count, "point %v should be in exactly one triangle", p)
		} else {
			assert.Equal(t, 0, count, "point %v should not be in any triangle", p)
		}
	}
}

func fixturePolygons() map[string]Polygon {
	return map[string]Polygon{
		"spiral":          LoadFixture("spiral"),
		"comb":            LoadFixture("comb"),
		"hexagon":         LoadFixture("hexagon"),
		"star":            SimpleStar(),
		"square":          Square(),
		"monotone zigzag": MonotoneZigzag(),
		"flat hexagon":    FlatHexagon(),
	}
}

func TestEarClip(t *testing.T) {
	for name, polygon := range fixturePolygons() {
		polygon := polygon
		t.Run(name, func(t *testing.T) {
			triangles, err := EarClip(polygon.Points)
			require.NoError(t, err)
			AssertValidTriangulation(t, polygon, triangles)
			validateTrianglesBySampling(t, polygon, triangles)
		})
		t.Run(name+" clockwise", func(t *testing.T) {
			reversed := polygon.Reverse()
			triangles, err := EarClip(reversed.Points)
			require.NoError(t, err)
			AssertValidTriangulation(t, reversed, triangles)
		})
	}
}

func TestEarClip_CollinearVertices(t *testing.T) {
	// A square with extra points along its bottom edge
	polygon := Polygon{[]Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {3, 3}, {0, 3}}}
	triangles, err := EarClip(polygon.Points)
	require.NoError(t, err)
	AssertValidTriangulation(t, polygon, triangles)
}

func TestTriangulateMonotone(t *testing.T) {
	for _, polygon := range []Polygon{Square(), FlatHexagon(), MonotoneZigzag(), MonotoneZigzag().Reverse(), LoadFixture("hexagon")} {
		triangles, err := TriangulateMonotone(polygon.Points)
		require.NoError(t, err)
		AssertValidTriangulation(t, polygon, triangles)
		validateTrianglesBySampling(t, polygon, triangles)
	}
}

func TestTriangulateMonotone_RejectsNonMonotone(t *testing.T) {
	_, err := TriangulateMonotone(LoadFixture("comb").Points)
	assert.EqualError(t, err, "polygon is not y-monotone")
}

func TestTriangulate(t *testing.T) {
	for name, polygon := range fixturePolygons() {
		polygon := polygon
		t.Run(name, func(t *testing.T) {
			triangles, err := Triangulate(polygon.Points)
			require.NoError(t, err)
			AssertValidTriangulation(t, polygon, triangles)
		})
	}
}

func TestTriangulate_Errors(t *testing.T) {
	_, err := Triangulate([]Point{{0, 0}, {1, 1}})
	assert.True(t, errors.Is(err, ErrDegenerate))

	_, err = Triangulate([]Point{{0, 0}, {2, 2}, {2, 0}, {0, 2}})
	assert.True(t, errors.Is(err, ErrNotSimple))
}
