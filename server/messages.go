package server

import (
	"github.com/osuushi/polypath/advanced"
	"github.com/osuushi/polypath/session"
)

// A request from the client. Which fields matter depends on the op.
type request struct {
	Op string  `json:"op"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	// The screen CTM of the drawing surface. When present, x and y are screen
	// coordinates and are mapped back to local space through its inverse.
	CTM   []float64 `json:"ctm,omitempty"`
	Value bool      `json:"value"`
}

const (
	opAdd               = "add"
	opUndo              = "undo"
	opClear             = "clear"
	opTriangulate       = "triangulate"
	opShowDual          = "show_dual"
	opShowTriangulation = "show_triangulation"
)

type errorMessage struct {
	Error string `json:"error"`
}

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type triangle struct {
	Vertices  [3]int `json:"vertices"`
	Center    point  `json:"center"`
	Neighbors []int  `json:"neighbors"`
	// Empty while the triangulation is hidden
	Outline string `json:"outline,omitempty"`
}

type snapshotMessage struct {
	Session           string     `json:"session"`
	Mode              string     `json:"mode"`
	Vertices          []point    `json:"vertices"`
	Closed            bool       `json:"closed"`
	Done              bool       `json:"done"`
	Cursor            *point     `json:"cursor"`
	PointA            *point     `json:"point_a"`
	PointB            *point     `json:"point_b"`
	Triangles         []triangle `json:"triangles"`
	Centers           []point    `json:"centers"`
	Corridor          []int      `json:"corridor"`
	Path              []point    `json:"path"`
	SubPolygon        []point    `json:"sub_polygon"`
	ShowDual          bool       `json:"show_dual"`
	ShowTriangulation bool       `json:"show_triangulation"`
}

func toPoint(p advanced.Point) point {
	return point{X: p.X, Y: p.Y}
}

func toPointPtr(p *advanced.Point) *point {
	if p == nil {
		return nil
	}
	c := toPoint(*p)
	return &c
}

func toPoints(ps []advanced.Point) []point {
	out := make([]point, len(ps))
	for i, p := range ps {
		out[i] = toPoint(p)
	}
	return out
}

func newSnapshotMessage(id string, snapshot session.Snapshot) snapshotMessage {
	message := snapshotMessage{
		Session:           id,
		Mode:              snapshot.Mode.String(),
		Vertices:          toPoints(snapshot.Vertices),
		Closed:            snapshot.Closed,
		Done:              snapshot.Done,
		Cursor:            toPointPtr(snapshot.Cursor),
		PointA:            toPointPtr(snapshot.PointA),
		PointB:            toPointPtr(snapshot.PointB),
		Centers:           toPoints(snapshot.Centers),
		Corridor:          append([]int{}, snapshot.Corridor...),
		Path:              toPoints(snapshot.Path),
		SubPolygon:        toPoints(snapshot.SubPolygon),
		ShowDual:          snapshot.ShowDual,
		ShowTriangulation: snapshot.ShowTriangulation,
		Triangles:         []triangle{},
	}
	if snapshot.Mesh != nil {
		for i, t := range snapshot.Mesh.Triangles {
			message.Triangles = append(message.Triangles, triangle{
				Vertices:  t.Indexes(),
				Center:    toPoint(t.Center),
				Neighbors: append([]int{}, t.Neighbors...),
				Outline:   snapshot.TriangleOutline(i),
			})
		}
	}
	return message
}
