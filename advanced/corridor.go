package advanced

import "github.com/pkg/errors"

// No parent. Triangle 0 is a valid parent, so zero can't be used.
const noParent = -1

// Breadth first search over the dual graph from source to destination. The
// result includes both ends. The search stops when the destination is dequeued,
// so the corridor has the fewest possible triangles. For a triangulated simple
// polygon the dual graph is a tree, so that corridor is also the only one.
func (m *Mesh) Corridor(source, destination int) ([]int, error) {
	n := len(m.Triangles)
	if source < 0 || source >= n || destination < 0 || destination >= n {
		return nil, errors.Errorf("corridor endpoints %d, %d out of range for %d triangles", source, destination, n)
	}

	parent := make([]int, n)
	discovered := make([]bool, n)
	visited := make([]bool, n)
	for i := range parent {
		parent[i] = noParent
	}

	queue := []int{source}
	discovered[source] = true
	found := false
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		if current == destination {
			found = true
			break
		}
		for _, next := range m.Triangles[current].Neighbors {
			if !discovered[next] {
				discovered[next] = true
				parent[next] = current
				queue = append(queue, next)
			}
		}
	}
	if !found {
		return nil, errors.Wrapf(ErrNoCorridor, "from %d to %d", source, destination)
	}

	var corridor []int
	for current := destination; current != noParent; current = parent[current] {
		corridor = append(corridor, current)
	}
	// Walked from the destination, so flip it around
	for i, j := 0, len(corridor)-1; i < j; i, j = i+1, j-1 {
		corridor[i], corridor[j] = corridor[j], corridor[i]
	}
	return corridor, nil
}
