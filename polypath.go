// Package polypath finds the shortest path between two points inside a simple
// polygon. The polygon is triangulated, the triangles are linked into their
// dual graph, a breadth first search finds the corridor of triangles between
// the two points, and the funnel algorithm pulls the path taut through it.
//
// For one-off queries use ShortestPath. For interactive drawing, where the
// polygon is built a point at a time, use NewSession. The advanced package
// exposes each stage separately.
package polypath

import (
	"log/slog"

	"github.com/osuushi/polypath/advanced"
	"github.com/osuushi/polypath/internal"
	"github.com/osuushi/polypath/session"
	"github.com/pkg/errors"
)

type Point = internal.Point
type Polygon = internal.Polygon

type Session = session.Session
type Snapshot = session.Snapshot

var (
	ErrDegenerate = internal.ErrDegenerate
	ErrNotSimple  = internal.ErrNotSimple
	ErrNotLocated = advanced.ErrNotLocated
	ErrNoCorridor = advanced.ErrNoCorridor
)

// ShortestPath returns the shortest path from a to b that stays inside the
// polygon, starting exactly at a and ending exactly at b. The polygon may wind
// either way and must not repeat its first point at the end.
func ShortestPath(polygon []Point, a, b Point) ([]Point, error) {
	mesh, err := advanced.BuildMesh(polygon, advanced.Triangulate, nil)
	if err != nil {
		return nil, err
	}
	route, err := mesh.Route(a, b)
	if err != nil {
		return nil, errors.Wrap(err, "shortest path")
	}
	return route.Path, nil
}

func NewSession(options ...session.Option) *Session {
	return session.New(options...)
}

// SetLogger configures logging for polypath and all its sub-packages. By
// default nothing is logged. Pass nil to restore the silent default.
func SetLogger(l *slog.Logger) {
	internal.SetLogger(l)
}

func Logger() *slog.Logger {
	return internal.Logger()
}
