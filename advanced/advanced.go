// The advanced package exposes each stage of the pathfinding pipeline on its
// own: building a triangle mesh and its dual graph from a closed loop,
// locating points in the mesh, searching for a corridor of triangles, and
// pulling a taut path through that corridor with the funnel algorithm.
//
// Most users want the session package or the top level polypath package
// instead. This package is useful when the intermediate products (portals,
// corridors, the dual graph) are needed for display or testing.
package advanced

import "github.com/osuushi/polypath/internal"

type Point = internal.Point
type Polygon = internal.Polygon

// A Triangulator converts a simple loop into triangles given as index triples
// over the loop. Any primitive that covers the loop without gaps or overlaps
// can be substituted.
type Triangulator func(loop []Point) ([][3]int, error)

var (
	// Ear clipping. Works on any simple polygon.
	EarClip Triangulator = internal.EarClip
	// Linear sweep. Only accepts y-monotone polygons.
	TriangulateMonotone Triangulator = internal.TriangulateMonotone
	// Monotone sweep when possible, ear clipping otherwise.
	Triangulate Triangulator = internal.Triangulate
)

// Creates the points a mesh synthesizes (centers and midpoints) rather than
// copies from the polygon.
type PointFactory func(x, y float64) Point

func DefaultPointFactory(x, y float64) Point {
	return Point{X: x, Y: y}
}
