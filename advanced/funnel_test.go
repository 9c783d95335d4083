package advanced

import (
	"math"
	"testing"

	"github.com/osuushi/polypath/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPathNear(t *testing.T, expected, actual []Point) {
	t.Helper()
	require.Len(t, actual, len(expected), "path %v", actual)
	for i := range expected {
		assert.InDelta(t, expected[i].X, actual[i].X, internal.Tolerance, "point %d", i)
		assert.InDelta(t, expected[i].Y, actual[i].Y, internal.Tolerance, "point %d", i)
	}
}

func distanceToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	lengthSquared := ab.X*ab.X + ab.Y*ab.Y
	if lengthSquared == 0 {
		return internal.Distance(p, a)
	}
	t := math.Max(0, math.Min(1, ((p.X-a.X)*ab.X+(p.Y-a.Y)*ab.Y)/lengthSquared))
	return internal.Distance(p, a.Add(ab.Scale(t)))
}

// Sample along every segment of the path. Each sample must be inside the
// polygon or on its boundary.
func assertPathInside(t *testing.T, loop []Point, path []Point) {
	t.Helper()
	polygon := Polygon{Points: loop}
	for i := 1; i < len(path); i++ {
		for step := 1; step < 10; step++ {
			p := path[i-1].Add(path[i].Sub(path[i-1]).Scale(float64(step) / 10))
			if polygon.ContainsPoint(p) {
				continue
			}
			onBoundary := false
			for j := range loop {
				if distanceToSegment(p, loop[j], loop[internal.CircularIndex(j+1, len(loop))]) < internal.Tolerance {
					onBoundary = true
					break
				}
			}
			assert.True(t, onBoundary, "segment %d of %v leaves the polygon at %v", i, path, p)
		}
	}
}

func TestRoute(t *testing.T) {
	zigzag := []Point{{X: 2, Y: 8}, {X: 5, Y: 3}, {X: 15, Y: 3}, {X: 18, Y: 8}}

	t.Run("zigzag", func(t *testing.T) {
		loop := loadFixture(t, "zigzag")
		route, err := buildMesh(t, loop).Route(Point{X: 2, Y: 8}, Point{X: 18, Y: 8})
		require.NoError(t, err)
		assertPathNear(t, zigzag, route.Path)
		assert.InDelta(t, 21.6619, PathLength(route.Path), 1e-4)
		assertPathInside(t, loop, route.Path)
	})

	t.Run("zigzag reversed winding", func(t *testing.T) {
		loop := reversed(loadFixture(t, "zigzag"))
		route, err := buildMesh(t, loop).Route(Point{X: 2, Y: 8}, Point{X: 18, Y: 8})
		require.NoError(t, err)
		assertPathNear(t, zigzag, route.Path)
	})

	t.Run("zigzag backward", func(t *testing.T) {
		route, err := buildMesh(t, loadFixture(t, "zigzag")).Route(Point{X: 18, Y: 8}, Point{X: 2, Y: 8})
		require.NoError(t, err)
		assertPathNear(t, reversed(zigzag), route.Path)
	})

	t.Run("zigzag halfway", func(t *testing.T) {
		route, err := buildMesh(t, loadFixture(t, "zigzag")).Route(Point{X: 10, Y: 9}, Point{X: 2, Y: 9})
		require.NoError(t, err)
		assertPathNear(t, []Point{{X: 10, Y: 9}, {X: 8, Y: 3}, {X: 5, Y: 3}, {X: 2, Y: 9}}, route.Path)
	})

	t.Run("spiral", func(t *testing.T) {
		loop := loadFixture(t, "spiral")
		route, err := buildMesh(t, loop).Route(Point{X: 1, Y: 1}, Point{X: 5, Y: 5})
		require.NoError(t, err)
		assertPathNear(t, []Point{
			{X: 1, Y: 1}, {X: 8, Y: 2}, {X: 8, Y: 8}, {X: 4, Y: 8}, {X: 4, Y: 6}, {X: 5, Y: 5},
		}, route.Path)
		assert.InDelta(t, 20.4853, PathLength(route.Path), 1e-4)
		assert.InDelta(t, 28.0, PathLength(MidpointWalk(route.Portals)), 1e-4)
		assertPathInside(t, loop, route.Path)
	})

	t.Run("same triangle", func(t *testing.T) {
		a, b := Point{X: 1, Y: 2}, Point{X: 3, Y: 1}
		route, err := buildMesh(t, square()).Route(a, b)
		require.NoError(t, err)
		assert.Len(t, route.Corridor, 1)
		assert.Equal(t, []Point{a, b}, route.Path)
	})

	t.Run("same point", func(t *testing.T) {
		a := Point{X: 1, Y: 2}
		route, err := buildMesh(t, square()).Route(a, a)
		require.NoError(t, err)
		assert.Equal(t, []Point{a, a}, route.Path)
	})

	t.Run("outside", func(t *testing.T) {
		mesh := buildMesh(t, square())
		_, err := mesh.Route(Point{X: 1, Y: 1}, Point{X: 11, Y: 1})
		assert.ErrorIs(t, err, ErrNotLocated)
		_, err = mesh.Route(Point{X: -1, Y: 1}, Point{X: 1, Y: 1})
		assert.ErrorIs(t, err, ErrNotLocated)
	})
}

// Between any two triangle centers, the funnel path starts and ends exactly at
// the endpoints, stays inside, and is never longer than the midpoint walk.
func TestRouteProperties(t *testing.T) {
	for _, name := range []string{"spiral", "zigzag"} {
		t.Run(name, func(t *testing.T) {
			loop := loadFixture(t, name)
			mesh := buildMesh(t, loop)
			for _, a := range mesh.Centers() {
				for _, b := range mesh.Centers() {
					route, err := mesh.Route(a, b)
					require.NoError(t, err)
					require.GreaterOrEqual(t, len(route.Path), 2)
					assert.Equal(t, a, route.Path[0])
					assert.Equal(t, b, route.Path[len(route.Path)-1])
					assert.LessOrEqual(t, PathLength(route.Path), PathLength(MidpointWalk(route.Portals))+internal.Tolerance)
					assertPathInside(t, loop, route.Path)
				}
			}
		})
	}
}

func TestPortals(t *testing.T) {
	mesh := buildMesh(t, loadFixture(t, "zigzag"))
	a, b := Point{X: 2, Y: 8}, Point{X: 18, Y: 8}
	route, err := mesh.Route(a, b)
	require.NoError(t, err)

	require.Len(t, route.Portals, len(route.Corridor)+1)
	assert.Equal(t, Portal{a, a}, route.Portals[0])
	assert.Equal(t, Portal{b, b}, route.Portals[len(route.Portals)-1])

	// Walking forward, the left side of each portal is on the left of the
	// line from the previous portal's midpoint
	for i := 1; i < len(route.Portals)-1; i++ {
		from := internal.Midpoint(route.Portals[i-1].Left, route.Portals[i-1].Right)
		portal := route.Portals[i]
		assert.GreaterOrEqual(t, internal.IsLeft(portal.Right, portal.Left, from), 0.0, "portal %d", i)
	}

	edges, err := mesh.PortalEdges([]int{route.Corridor[0]})
	require.NoError(t, err)
	assert.Empty(t, edges)

	_, err = mesh.PortalEdges([]int{0, 0})
	assert.Error(t, err)
}

func TestFunnel(t *testing.T) {
	assert.Nil(t, Funnel(nil))

	// A single doorway in the middle of a straight walk doesn't bend the path
	a, b := Point{X: 0, Y: 0}, Point{X: 10, Y: 0}
	path := Funnel([]Portal{{a, a}, {Left: Point{X: 5, Y: 1}, Right: Point{X: 5, Y: -1}}, {b, b}})
	assert.Equal(t, []Point{a, b}, path)

	// A doorway entirely to the left pulls the path to its right post
	path = Funnel([]Portal{{a, a}, {Left: Point{X: 5, Y: 4}, Right: Point{X: 5, Y: 2}}, {b, b}})
	assert.Equal(t, []Point{a, {X: 5, Y: 2}, b}, path)

	// And one entirely to the right pulls it to the left post
	path = Funnel([]Portal{{a, a}, {Left: Point{X: 5, Y: -2}, Right: Point{X: 5, Y: -4}}, {b, b}})
	assert.Equal(t, []Point{a, {X: 5, Y: -2}, b}, path)
}

func TestSubPolygon(t *testing.T) {
	mesh := buildMesh(t, loadFixture(t, "zigzag"))
	route, err := mesh.Route(Point{X: 2, Y: 8}, Point{X: 18, Y: 8})
	require.NoError(t, err)

	outline, err := mesh.SubPolygon(route.Corridor)
	require.NoError(t, err)
	assert.Len(t, outline, len(route.Corridor)+2)

	var corridorArea float64
	for _, i := range route.Corridor {
		corridorArea += math.Abs(mesh.Loop(i).SignedArea())
	}
	points := make([]Point, len(outline))
	for i, v := range outline {
		points[i] = mesh.Vertices[v]
	}
	assert.InDelta(t, corridorArea, math.Abs(Polygon{Points: points}.SignedArea()), internal.Tolerance)

	single, err := mesh.SubPolygon(route.Corridor[:1])
	require.NoError(t, err)
	assert.Len(t, single, 3)

	empty, err := mesh.SubPolygon(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
