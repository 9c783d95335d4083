package session

import (
	"strconv"
	"strings"

	"github.com/osuushi/polypath/advanced"
)

// A Snapshot is a copy of the session state. Nothing in it is shared with the
// session, so it can be kept, compared, or handed to another goroutine.
type Snapshot struct {
	Mode     Mode
	Vertices []Point
	// Neighboring vertex indexes along the outline, per vertex. Two each once
	// closed, one each for the free ends while drawing.
	Adjacency [][]int
	// The outline is closed
	Closed bool
	// Both endpoints are chosen
	Done bool
	// Last placed vertex, which the next edge starts from. Nil before the first
	// vertex.
	Cursor *Point
	PointA *Point
	PointB *Point

	// Nil until the closed outline is triangulated
	Mesh       *advanced.Mesh
	Centers    []Point
	Corridor   []int
	Portals    []advanced.Portal
	Path       []Point
	SubPolygon []Point

	ShowDual          bool
	ShowTriangulation bool
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	snapshot := Snapshot{
		Mode:              s.mode,
		Vertices:          append([]Point(nil), s.vertices...),
		Adjacency:         adjacency(len(s.vertices), s.closed),
		Closed:            s.closed,
		Done:              s.mode == Done,
		Cursor:            copyPoint(s.cursor()),
		PointA:            copyPoint(s.pointA),
		PointB:            copyPoint(s.pointB),
		Mesh:              s.mesh.Clone(),
		SubPolygon:        append([]Point(nil), s.subPolygon...),
		ShowDual:          s.showDual,
		ShowTriangulation: s.showTriangulation,
	}
	if s.mesh != nil {
		snapshot.Centers = s.mesh.Centers()
	}
	if s.route != nil {
		snapshot.Corridor = append([]int(nil), s.route.Corridor...)
		snapshot.Portals = append([]advanced.Portal(nil), s.route.Portals...)
		snapshot.Path = append([]Point(nil), s.route.Path...)
	}
	return snapshot
}

func (s *Session) cursor() *Point {
	if len(s.vertices) == 0 {
		return nil
	}
	if s.closed {
		return &s.vertices[0]
	}
	return &s.vertices[len(s.vertices)-1]
}

func copyPoint(p *Point) *Point {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func adjacency(n int, closed bool) [][]int {
	if n == 0 {
		return nil
	}
	neighbors := make([][]int, n)
	link := func(a, b int) {
		neighbors[a] = append(neighbors[a], b)
		neighbors[b] = append(neighbors[b], a)
	}
	for i := 0; i+1 < n; i++ {
		link(i, i+1)
	}
	if closed && n > 2 {
		link(n-1, 0)
	}
	return neighbors
}

func (snapshot Snapshot) AwaitingPointA() bool {
	return snapshot.Mode == AwaitingPointA
}

func (snapshot Snapshot) AwaitingPointB() bool {
	return snapshot.Mode == AwaitingPointB
}

// Ready reports whether a mesh is available.
func (snapshot Snapshot) Ready() bool {
	return !snapshot.Mesh.Empty()
}

// TriangleOutline formats triangle i as a closed SVG point list,
// "ax,ay bx,by cx,cy ax,ay". It is empty while the triangulation is hidden.
func (snapshot Snapshot) TriangleOutline(i int) string {
	if !snapshot.ShowTriangulation || snapshot.Mesh == nil || i < 0 || i >= snapshot.Mesh.Len() {
		return ""
	}
	loop := snapshot.Mesh.Loop(i)
	pairs := make([]string, len(loop.Points))
	for k, p := range loop.Points {
		pairs[k] = formatFloat(p.X) + "," + formatFloat(p.Y)
	}
	return strings.Join(pairs, " ")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
