package advanced

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/polypath/dbg"
)

// This is for debugging purposes only

type triangleKey struct {
	mesh  *Mesh
	index int
}

// Readable name of a triangle, stable for the life of the process.
func (m *Mesh) TriangleName(i int) string {
	return dbg.Name(triangleKey{m, i})
}

// Write one line per triangle: its name, corners, center, and neighbors.
// Triangles on the route, if given, are highlighted.
func (m *Mesh) Dump(w io.Writer, colorize bool, route *Route) error {
	au := aurora.NewAurora(colorize)
	onRoute := make(map[int]bool)
	if route != nil {
		for _, i := range route.Corridor {
			onRoute[i] = true
		}
	}

	for i := range m.Triangles {
		t := &m.Triangles[i]
		name := au.Cyan(m.TriangleName(i)).String()
		if onRoute[i] {
			name = au.Green(m.TriangleName(i)).String()
		}
		var neighbors []string
		for _, j := range t.Neighbors {
			neighbors = append(neighbors, m.TriangleName(j))
		}
		_, err := fmt.Fprintf(w, "%3d %s (%d, %d, %d) center (%.2f, %.2f) neighbors [%s]\n",
			i, name, t.A, t.B, t.C, t.Center.X, t.Center.Y, strings.Join(neighbors, ", "))
		if err != nil {
			return err
		}
	}
	if route == nil {
		return nil
	}

	var steps []string
	for _, p := range route.Path {
		steps = append(steps, fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y))
	}
	_, err := fmt.Fprintf(w, "%s %s\n", au.Yellow("path"), strings.Join(steps, " -> "))
	return err
}
