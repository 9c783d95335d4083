package advanced

import (
	"github.com/osuushi/polypath/internal"
	"github.com/pkg/errors"
)

// Everything computed on the way from a to b.
type Route struct {
	Source, Destination int
	Corridor            []int
	Portals             []Portal
	Path                []Point
}

// Locate both endpoints, search the corridor, and pull the path through it.
// The path starts exactly at a and ends exactly at b.
func (m *Mesh) Route(a, b Point) (*Route, error) {
	source, ok := m.Locate(a)
	if !ok {
		return nil, errors.Wrapf(ErrNotLocated, "start %v", a)
	}
	destination, ok := m.Locate(b)
	if !ok {
		return nil, errors.Wrapf(ErrNotLocated, "end %v", b)
	}
	corridor, err := m.Corridor(source, destination)
	if err != nil {
		return nil, err
	}
	portals, err := m.Portals(corridor, a, b)
	if err != nil {
		return nil, err
	}
	return &Route{
		Source:      source,
		Destination: destination,
		Corridor:    corridor,
		Portals:     portals,
		Path:        Funnel(portals),
	}, nil
}

// Outline of the union of the corridor's triangles, as vertex indexes. Walks
// up the left rail and back down the right one, so the outline winds
// clockwise.
func (m *Mesh) SubPolygon(corridor []int) ([]int, error) {
	if len(corridor) == 0 {
		return nil, nil
	}
	if len(corridor) == 1 {
		t := m.Triangles[corridor[0]]
		return []int{t.A, t.B, t.C}, nil
	}
	edges, err := m.PortalEdges(corridor)
	if err != nil {
		return nil, err
	}
	first := &m.Triangles[corridor[0]]
	last := &m.Triangles[corridor[len(corridor)-1]]
	lastEdge := edges[len(edges)-1]

	outline := []int{first.Opposite(NewEdge(edges[0].Left, edges[0].Right))}
	appendVertex := func(i int) {
		if outline[len(outline)-1] != i {
			outline = append(outline, i)
		}
	}
	for _, edge := range edges {
		appendVertex(edge.Left)
	}
	appendVertex(last.Opposite(NewEdge(lastEdge.Left, lastEdge.Right)))
	for k := len(edges) - 1; k >= 0; k-- {
		appendVertex(edges[k].Right)
	}
	return outline, nil
}

// Total length of a polyline.
func PathLength(path []Point) float64 {
	var length float64
	for i := 1; i < len(path); i++ {
		length += internal.Distance(path[i-1], path[i])
	}
	return length
}

// The naive walk through a corridor, from the first portal point through the
// midpoint of every portal to the last. It always stays inside the corridor,
// so it bounds the funnel path's length from above.
func MidpointWalk(portals []Portal) []Point {
	walk := make([]Point, 0, len(portals))
	for _, portal := range portals {
		walk = append(walk, internal.Midpoint(portal.Left, portal.Right))
	}
	return walk
}
