package advanced

import (
	"embed"
	"strconv"
	"strings"
	"testing"

	"github.com/JoshVarga/svgparser"
	"github.com/stretchr/testify/require"
)

// Fixtures are loaded by name from fixtures/, sans extension. Only the first
// polygon element is read, and points keep the order they have in the file.

//go:embed fixtures
var fixtures embed.FS

func loadFixture(t *testing.T, name string) []Point {
	t.Helper()
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	require.NoError(t, err, "fixture %q", name)
	defer fixture.Close()

	root, err := svgparser.Parse(fixture, true)
	require.NoError(t, err, "fixture %q", name)
	polygons := root.FindAll("polygon")
	require.NotEmpty(t, polygons, "no polygon in fixture %q", name)

	var points []Point
	for _, pair := range strings.Fields(polygons[0].Attributes["points"]) {
		coords := strings.Split(pair, ",")
		require.Len(t, coords, 2, "invalid point %q", pair)
		x, err := strconv.ParseFloat(coords[0], 64)
		require.NoError(t, err)
		y, err := strconv.ParseFloat(coords[1], 64)
		require.NoError(t, err)
		points = append(points, Point{X: x, Y: y})
	}
	return points
}

func reversed(points []Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}

func square() []Point {
	return []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
}

func buildMesh(t *testing.T, loop []Point) *Mesh {
	t.Helper()
	mesh, err := BuildMesh(loop, EarClip, nil)
	require.NoError(t, err)
	return mesh
}
