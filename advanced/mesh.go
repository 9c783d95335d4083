package advanced

import (
	"github.com/osuushi/polypath/internal"
	"github.com/pkg/errors"
)

// A triangle of the mesh. A, B and C are indexes into the mesh's vertices. The
// center and midpoints are computed once when the mesh is built, and the
// triangle is never mutated afterward.
type Triangle struct {
	A, B, C             int
	Center              Point
	MidAB, MidBC, MidCA Point
	// Indexes of the triangles sharing an edge with this one, in the order they
	// were discovered. At most three.
	Neighbors []int
}

// An undirected edge between two vertex indexes. Edges are always normalized
// so that A < B, which makes them usable as map keys regardless of the order
// the triangle listed them in.
type Edge struct {
	A, B int
}

func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{a, b}
}

func (t *Triangle) Indexes() [3]int {
	return [3]int{t.A, t.B, t.C}
}

func (t *Triangle) Edges() [3]Edge {
	return [3]Edge{NewEdge(t.A, t.B), NewEdge(t.B, t.C), NewEdge(t.C, t.A)}
}

func (t *Triangle) HasVertex(i int) bool {
	return t.A == i || t.B == i || t.C == i
}

// The vertex of the triangle that is not on the given edge, or -1 if the edge
// is not an edge of the triangle.
func (t *Triangle) Opposite(e Edge) int {
	if !t.HasVertex(e.A) || !t.HasVertex(e.B) {
		return -1
	}
	for _, i := range t.Indexes() {
		if i != e.A && i != e.B {
			return i
		}
	}
	return -1
}

// The edge this triangle shares with other, if any.
func (t *Triangle) SharedEdge(other *Triangle) (Edge, bool) {
	var shared []int
	for _, i := range t.Indexes() {
		if other.HasVertex(i) {
			shared = append(shared, i)
		}
	}
	if len(shared) != 2 {
		return Edge{}, false
	}
	return NewEdge(shared[0], shared[1]), true
}

func (t *Triangle) clone() Triangle {
	c := *t
	c.Neighbors = append([]int(nil), t.Neighbors...)
	return c
}

// A mesh is the triangulation of one polygon snapshot. It owns its triangles
// and a copy of the polygon's vertices.
type Mesh struct {
	Vertices  []Point
	Triangles []Triangle
}

// Triangulate the closed loop and build the mesh with its dual graph. The
// loop must not repeat its first point at the end.
func BuildMesh(loop []Point, triangulate Triangulator, newPoint PointFactory) (*Mesh, error) {
	if len(loop) < 3 {
		return nil, errors.Wrapf(internal.ErrDegenerate, "cannot build mesh from %d vertices", len(loop))
	}
	if triangulate == nil {
		triangulate = Triangulate
	}
	triples, err := triangulate(loop)
	if err != nil {
		return nil, errors.Wrap(err, "triangulation failed")
	}
	for _, triple := range triples {
		for _, i := range triple {
			if i < 0 || i >= len(loop) {
				return nil, errors.Errorf("triangulation produced out of range index %d", i)
			}
		}
	}
	return NewMesh(loop, triples, newPoint), nil
}

// Build a mesh from triangles already computed over vertices.
func NewMesh(vertices []Point, triples [][3]int, newPoint PointFactory) *Mesh {
	if newPoint == nil {
		newPoint = DefaultPointFactory
	}
	mesh := &Mesh{
		Vertices:  append([]Point(nil), vertices...),
		Triangles: make([]Triangle, len(triples)),
	}
	synthesize := func(p Point) Point {
		return newPoint(p.X, p.Y)
	}
	for i, triple := range triples {
		a, b, c := vertices[triple[0]], vertices[triple[1]], vertices[triple[2]]
		mesh.Triangles[i] = Triangle{
			A:      triple[0],
			B:      triple[1],
			C:      triple[2],
			Center: synthesize(internal.Centroid(a, b, c)),
			MidAB:  synthesize(internal.Midpoint(a, b)),
			MidBC:  synthesize(internal.Midpoint(b, c)),
			MidCA:  synthesize(internal.Midpoint(c, a)),
		}
	}
	mesh.linkNeighbors()
	return mesh
}

func (m *Mesh) Len() int {
	return len(m.Triangles)
}

func (m *Mesh) Empty() bool {
	return m == nil || len(m.Triangles) == 0
}

// The triangle's corners as a closed loop of points.
func (m *Mesh) Loop(i int) Polygon {
	t := &m.Triangles[i]
	return Polygon{Points: []Point{m.Vertices[t.A], m.Vertices[t.B], m.Vertices[t.C], m.Vertices[t.A]}}
}

// Triangle centers in mesh order.
func (m *Mesh) Centers() []Point {
	centers := make([]Point, len(m.Triangles))
	for i := range m.Triangles {
		centers[i] = m.Triangles[i].Center
	}
	return centers
}

// Deep copy, so snapshots never share neighbor slices with the live mesh.
func (m *Mesh) Clone() *Mesh {
	if m == nil {
		return nil
	}
	c := &Mesh{
		Vertices:  append([]Point(nil), m.Vertices...),
		Triangles: make([]Triangle, len(m.Triangles)),
	}
	for i := range m.Triangles {
		c.Triangles[i] = m.Triangles[i].clone()
	}
	return c
}
