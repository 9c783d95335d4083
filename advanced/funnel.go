package advanced

import (
	"github.com/osuushi/polypath/internal"
	"github.com/pkg/errors"
)

// A portal is the gate between two consecutive corridor triangles. Left and
// right are relative to the direction of travel, using the same sign
// convention as internal.IsLeft.
type Portal struct {
	Left, Right Point
}

// The shared edge of a portal, as vertex indexes.
type PortalEdge struct {
	Left, Right int
}

// Orient the shared edges along the corridor. The first edge is oriented
// geometrically against the vertex it faces away from. Each later edge shares
// exactly one vertex with the edge before it (both are edges of the same
// triangle), and that vertex keeps its side.
func (m *Mesh) PortalEdges(corridor []int) ([]PortalEdge, error) {
	if len(corridor) < 2 {
		return nil, nil
	}
	edges := make([]PortalEdge, 0, len(corridor)-1)
	for k := 0; k+1 < len(corridor); k++ {
		from := &m.Triangles[corridor[k]]
		to := &m.Triangles[corridor[k+1]]
		shared, ok := from.SharedEdge(to)
		if !ok {
			return nil, errors.Errorf("corridor triangles %d and %d are not adjacent", corridor[k], corridor[k+1])
		}

		if k == 0 {
			behind := m.Vertices[from.Opposite(shared)]
			u, v := m.Vertices[shared.A], m.Vertices[shared.B]
			if internal.IsLeft(behind, u, v) > 0 {
				edges = append(edges, PortalEdge{Left: shared.B, Right: shared.A})
			} else {
				edges = append(edges, PortalEdge{Left: shared.A, Right: shared.B})
			}
			continue
		}

		previous := edges[k-1]
		switch {
		case shared.A == previous.Left:
			edges = append(edges, PortalEdge{Left: shared.A, Right: shared.B})
		case shared.B == previous.Left:
			edges = append(edges, PortalEdge{Left: shared.B, Right: shared.A})
		case shared.A == previous.Right:
			edges = append(edges, PortalEdge{Left: shared.B, Right: shared.A})
		case shared.B == previous.Right:
			edges = append(edges, PortalEdge{Left: shared.A, Right: shared.B})
		default:
			return nil, errors.Errorf("portals %d and %d share no vertex", k-1, k)
		}
	}
	return edges, nil
}

// The full portal list for a walk from a to b: a degenerate portal at each
// end, with the oriented shared edges between.
func (m *Mesh) Portals(corridor []int, a, b Point) ([]Portal, error) {
	edges, err := m.PortalEdges(corridor)
	if err != nil {
		return nil, err
	}
	portals := make([]Portal, 0, len(edges)+2)
	portals = append(portals, Portal{a, a})
	for _, edge := range edges {
		portals = append(portals, Portal{Left: m.Vertices[edge.Left], Right: m.Vertices[edge.Right]})
	}
	return append(portals, Portal{b, b}), nil
}

// Pull a taut path through the portals with the simple stupid funnel
// algorithm. The apex starts at the first portal, and the left and right rails
// narrow as long as they don't cross. When one rail would cross the other, the
// other rail's point becomes the new apex and the scan restarts from the
// portal that point came from.
//
// The first portal and the last portal must be degenerate (both sides equal);
// they are the start and end of the path.
func Funnel(portals []Portal) []Point {
	if len(portals) == 0 {
		return nil
	}
	apex := portals[0].Left
	left := portals[0].Left
	right := portals[0].Right
	var apexIndex, leftIndex, rightIndex int

	path := []Point{apex}
	for i := 1; i < len(portals); i++ {
		portalLeft := portals[i].Left
		portalRight := portals[i].Right

		// Update the right rail
		if internal.IsLeft(apex, right, portalRight) >= 0 {
			if apex == right || internal.IsLeft(apex, left, portalRight) < 0 {
				// Tighten the funnel
				right = portalRight
				rightIndex = i
			} else {
				// Right over left, so left becomes the next apex
				apex = left
				apexIndex = leftIndex
				path = appendDistinct(path, apex)
				left, right = apex, apex
				leftIndex, rightIndex = apexIndex, apexIndex
				i = apexIndex
				continue
			}
		}

		// Update the left rail
		if internal.IsLeft(apex, left, portalLeft) <= 0 {
			if apex == left || internal.IsLeft(apex, right, portalLeft) > 0 {
				// Tighten the funnel
				left = portalLeft
				leftIndex = i
			} else {
				// Left over right, so right becomes the next apex
				apex = right
				apexIndex = rightIndex
				path = appendDistinct(path, apex)
				left, right = apex, apex
				leftIndex, rightIndex = apexIndex, apexIndex
				i = apexIndex
				continue
			}
		}
	}

	end := portals[len(portals)-1].Left
	if len(path) == 1 || path[len(path)-1] != end {
		path = append(path, end)
	}
	return path
}

func appendDistinct(path []Point, p Point) []Point {
	if len(path) > 0 && path[len(path)-1] == p {
		return path
	}
	return append(path, p)
}
