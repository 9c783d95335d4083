package advanced

import (
	"github.com/pkg/errors"
)

var (
	ErrNotLocated = errors.New("point is not inside any triangle")
	ErrNoCorridor = errors.New("no corridor between triangles")
)

// Find the first triangle containing p, using the same winding rule as the
// polygon containment test. Reports false when no triangle contains it, which
// happens for points outside the polygon and, rarely, for points exactly on a
// shared edge.
func (m *Mesh) Locate(p Point) (int, bool) {
	if m == nil {
		return -1, false
	}
	for i := range m.Triangles {
		if m.Loop(i).ContainsPoint(p) {
			return i, true
		}
	}
	return -1, false
}
