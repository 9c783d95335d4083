package advanced

// The dual graph has one node per triangle and an edge wherever two triangles
// share a polygon edge. It is stored implicitly in Triangle.Neighbors.

// Index every edge by the first triangle seen containing it. When a second
// triangle turns up with the same edge, the two become neighbors.
func (m *Mesh) linkNeighbors() {
	firstOwner := make(map[Edge]int, len(m.Triangles)*3)
	for i := range m.Triangles {
		for _, edge := range m.Triangles[i].Edges() {
			owner, ok := firstOwner[edge]
			if !ok {
				firstOwner[edge] = i
				continue
			}
			m.Triangles[owner].Neighbors = append(m.Triangles[owner].Neighbors, i)
			m.Triangles[i].Neighbors = append(m.Triangles[i].Neighbors, owner)
		}
	}
}

// An edge of the dual graph, with the polygon edge the two triangles share.
type DualEdge struct {
	From, To int
	Shared   Edge
}

// Every dual edge once, with From < To.
func (m *Mesh) DualEdges() []DualEdge {
	var edges []DualEdge
	for i := range m.Triangles {
		for _, j := range m.Triangles[i].Neighbors {
			if j < i {
				continue
			}
			shared, _ := m.Triangles[i].SharedEdge(&m.Triangles[j])
			edges = append(edges, DualEdge{From: i, To: j, Shared: shared})
		}
	}
	return edges
}

// Count of triangles reachable from the first triangle.
func (m *Mesh) connectedCount() int {
	if len(m.Triangles) == 0 {
		return 0
	}
	seen := make([]bool, len(m.Triangles))
	seen[0] = true
	queue := []int{0}
	count := 1
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range m.Triangles[current].Neighbors {
			if !seen[next] {
				seen[next] = true
				count++
				queue = append(queue, next)
			}
		}
	}
	return count
}

// The dual graph of a triangulated simple polygon is a tree: connected with
// one fewer edge than triangles.
func (m *Mesh) IsTree() bool {
	if len(m.Triangles) == 0 {
		return false
	}
	return len(m.DualEdges()) == len(m.Triangles)-1 && m.connectedCount() == len(m.Triangles)
}
