// Package session holds the interactive drawing state: the outline being
// drawn, the two endpoints chosen inside it, and the mesh and path computed
// from them.
//
// Every method runs to completion and leaves the session consistent. Input
// that would break the outline (a crossing edge, an endpoint outside the
// polygon) is refused without changing anything; nothing here returns an
// error. Callers learn what happened by reading a Snapshot.
package session

import (
	"log/slog"
	"sync"

	"github.com/osuushi/polypath/advanced"
	"github.com/osuushi/polypath/internal"
)

type Point = advanced.Point

// Mode is the stage of the session. Adding a point means something different
// in each one.
type Mode int

const (
	// Points extend the outline
	Drawing Mode = iota
	// The outline is closed, and the next point inside it becomes the start
	AwaitingPointA
	// The next point inside becomes the end
	AwaitingPointB
	// Both endpoints are chosen. Further points are ignored
	Done
)

func (m Mode) String() string {
	switch m {
	case Drawing:
		return "drawing"
	case AwaitingPointA:
		return "awaiting point A"
	case AwaitingPointB:
		return "awaiting point B"
	case Done:
		return "done"
	}
	return "unknown"
}

type Session struct {
	mu sync.Mutex

	closeThreshold float64
	triangulate    advanced.Triangulator
	newPoint       advanced.PointFactory
	log            *slog.Logger

	mode     Mode
	vertices []Point
	closed   bool
	pointA   *Point
	pointB   *Point

	mesh *advanced.Mesh
	// Whether the mesh was already built when point B was chosen, so undoing
	// the choice knows whether the mesh belongs to the earlier state
	meshBeforeB bool
	route       *advanced.Route
	subPolygon  []Point

	showDual          bool
	showTriangulation bool

	subscribers  map[int]func(Snapshot)
	nextListener int
}

func New(options ...Option) *Session {
	s := &Session{
		closeThreshold: DefaultCloseThreshold,
		triangulate:    advanced.Triangulate,
		newPoint:       advanced.DefaultPointFactory,
		showDual:       true,
		subscribers:    make(map[int]func(Snapshot)),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Session) logger() *slog.Logger {
	if s.log != nil {
		return s.log
	}
	return internal.Logger()
}

// AddVertex feeds a point to the session. While drawing it extends the outline
// or closes it, and once the outline is closed it chooses the endpoints.
// Reports whether the point was accepted.
func (s *Session) AddVertex(p Point) bool {
	s.mu.Lock()
	accepted := s.addVertex(p)
	s.mu.Unlock()
	if accepted {
		s.notify()
	}
	return accepted
}

func (s *Session) addVertex(p Point) bool {
	switch s.mode {
	case Drawing:
		return s.extend(p)
	case AwaitingPointA, AwaitingPointB:
		if !s.polygon().ContainsPoint(p) {
			s.logger().Debug("point rejected", "reason", "outside polygon", "x", p.X, "y", p.Y, "mode", s.mode.String())
			return false
		}
		p := p
		if s.mode == AwaitingPointA {
			s.pointA = &p
			s.mode = AwaitingPointB
			return true
		}
		s.pointB = &p
		s.mode = Done
		s.meshBeforeB = s.mesh != nil
		if s.mesh != nil {
			s.solve()
		}
		return true
	}
	s.logger().Debug("point rejected", "reason", "closed", "x", p.X, "y", p.Y)
	return false
}

// Append p to the outline, or close the outline if p lands near the first
// vertex. Either way the new edge must not cross the outline.
func (s *Session) extend(p Point) bool {
	n := len(s.vertices)
	if n == 0 {
		s.vertices = append(s.vertices, p)
		return true
	}
	last := s.vertices[n-1]
	first := s.vertices[0]

	if internal.Distance(p, first) < s.closeThreshold {
		// The closing edge touches the first and last edges, so skip those
		for i := 1; i+2 < n; i++ {
			if internal.SegmentsIntersect(last, first, s.vertices[i], s.vertices[i+1]) {
				s.logger().Debug("close rejected", "reason", "crosses edge", "edge", i)
				return false
			}
		}
		s.closed = true
		s.mode = AwaitingPointA
		s.logger().Debug("outline closed", "vertices", n)
		return true
	}

	// The new edge touches the last edge, so skip it
	for i := 0; i+2 < n; i++ {
		if internal.SegmentsIntersect(last, p, s.vertices[i], s.vertices[i+1]) {
			s.logger().Debug("point rejected", "reason", "crosses edge", "edge", i, "x", p.X, "y", p.Y)
			return false
		}
	}
	s.vertices = append(s.vertices, p)
	return true
}

// Undo steps the session back one stage. While drawing that removes the last
// vertex.
func (s *Session) Undo() {
	s.mu.Lock()
	changed := s.undo()
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

func (s *Session) undo() bool {
	switch s.mode {
	case Done:
		s.pointB = nil
		s.clearRoute()
		if !s.meshBeforeB {
			s.mesh = nil
		}
		s.mode = AwaitingPointB
	case AwaitingPointB:
		s.pointA = nil
		s.mode = AwaitingPointA
	case AwaitingPointA:
		s.closed = false
		s.mesh = nil
		s.mode = Drawing
	case Drawing:
		if len(s.vertices) == 0 {
			return false
		}
		s.vertices = s.vertices[:len(s.vertices)-1]
	}
	return true
}

// Clear resets everything except the display toggles.
func (s *Session) Clear() {
	s.mu.Lock()
	s.mode = Drawing
	s.vertices = nil
	s.closed = false
	s.pointA = nil
	s.pointB = nil
	s.mesh = nil
	s.meshBeforeB = false
	s.clearRoute()
	s.mu.Unlock()
	s.notify()
}

// Triangulate rebuilds the mesh from the closed outline. When both endpoints
// are chosen it also solves the path. An open or degenerate outline, or one the
// triangulator refuses, leaves the mesh empty.
func (s *Session) Triangulate() {
	s.mu.Lock()
	s.rebuild()
	s.mu.Unlock()
	s.notify()
}

func (s *Session) rebuild() {
	s.mesh = nil
	s.clearRoute()
	if !s.closed || len(s.vertices) < 3 {
		s.logger().Debug("triangulate skipped", "closed", s.closed, "vertices", len(s.vertices))
		return
	}
	mesh, err := advanced.BuildMesh(s.vertices, s.triangulate, s.newPoint)
	if err != nil {
		s.logger().Warn("triangulation failed", "vertices", len(s.vertices), "error", err)
		return
	}
	s.mesh = mesh
	s.logger().Info("triangulated", "vertices", len(s.vertices), "triangles", mesh.Len(), "tree", mesh.IsTree())
	if s.pointA != nil && s.pointB != nil {
		s.solve()
	}
}

func (s *Session) solve() {
	s.clearRoute()
	route, err := s.mesh.Route(*s.pointA, *s.pointB)
	if err != nil {
		s.logger().Warn("no path", "error", err)
		return
	}
	s.route = route

	outline, err := s.mesh.SubPolygon(route.Corridor)
	if err != nil {
		s.logger().Warn("no corridor outline", "error", err)
	}
	for _, i := range outline {
		s.subPolygon = append(s.subPolygon, s.mesh.Vertices[i])
	}
	s.logger().Info("path solved",
		"corridor", len(route.Corridor),
		"points", len(route.Path),
		"length", advanced.PathLength(route.Path))
}

func (s *Session) clearRoute() {
	s.route = nil
	s.subPolygon = nil
}

func (s *Session) SetShowDual(show bool) {
	s.mu.Lock()
	s.showDual = show
	s.mu.Unlock()
	s.notify()
}

func (s *Session) SetShowTriangulation(show bool) {
	s.mu.Lock()
	s.showTriangulation = show
	s.mu.Unlock()
	s.notify()
}

// Subscribe registers fn to receive a snapshot after every change. It is
// called synchronously, on the goroutine that made the change, without the
// session locked. The returned function removes the subscription.
func (s *Session) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextListener
	s.nextListener++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *Session) notify() {
	s.mu.Lock()
	if len(s.subscribers) == 0 {
		s.mu.Unlock()
		return
	}
	snapshot := s.snapshot()
	listeners := make([]func(Snapshot), 0, len(s.subscribers))
	for id := 0; id < s.nextListener; id++ {
		if fn, ok := s.subscribers[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

func (s *Session) polygon() internal.Polygon {
	return internal.Polygon{Points: s.vertices}
}
