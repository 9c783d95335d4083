// Command polydraw is a desktop drawing surface for polygon sessions.
//
// Click to place vertices, and click near the first one to close the outline.
// Then click twice inside to choose the endpoints of the path.
//
//	U     undo
//	C     clear
//	T     triangulate
//	D     toggle the dual graph
//	G     toggle the triangulation
//	wheel zoom, right drag to pan
package main

import (
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/osuushi/polypath"
	"github.com/osuushi/polypath/advanced"
	"github.com/osuushi/polypath/config"
	"github.com/osuushi/polypath/internal"
	"github.com/osuushi/polypath/session"
	"github.com/osuushi/polypath/viewport"
	"gopkg.in/alecthomas/kingpin.v2"
)

type Point = advanced.Point

const zoomStep = 1.1

var (
	configPath = kingpin.Flag("config", "YAML config file.").Short('c').String()
	verbose    = kingpin.Flag("verbose", "Log session events to stderr.").Short('v').Bool()
)

type Game struct {
	width, height int

	session  *session.Session
	snapshot session.Snapshot
	view     viewport.View

	isDragging   bool
	lastX, lastY int
}

func NewGame(c config.Config) *Game {
	g := &Game{
		width:   c.Draw.Width,
		height:  c.Draw.Height,
		session: polypath.NewSession(c.Session.Options()...),
		view:    viewport.Identity(),
	}
	g.session.SetShowDual(c.Render.ShowDual)
	g.session.SetShowTriangulation(c.Render.ShowTriangulation)
	g.snapshot = g.session.Snapshot()
	// Listeners run on whichever goroutine changed the session, which is
	// always Update here.
	g.session.Subscribe(func(snapshot session.Snapshot) {
		g.snapshot = snapshot
	})
	return g
}

func (g *Game) Update() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.session.AddVertex(g.view.ToLocal(float64(x), float64(y)))
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyU):
		g.session.Undo()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.session.Clear()
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		g.session.Triangulate()
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.session.SetShowDual(!g.snapshot.ShowDual)
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.session.SetShowTriangulation(!g.snapshot.ShowTriangulation)
	}

	// Pan
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.isDragging = true
		g.lastX, g.lastY = ebiten.CursorPosition()
	}
	if g.isDragging {
		x, y := ebiten.CursorPosition()
		g.view = g.view.Pan(float64(x-g.lastX), float64(y-g.lastY))
		g.lastX, g.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight) {
		g.isDragging = false
	}

	// Zoom
	if _, dy := ebiten.Wheel(); dy != 0 {
		x, y := ebiten.CursorPosition()
		g.view = g.view.ZoomAt(math.Pow(zoomStep, dy), float64(x), float64(y))
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	snapshot := g.snapshot
	mesh := snapshot.Mesh

	if mesh != nil {
		fillTriangles(screen, g.corners(mesh, nil), fillColor)
		fillTriangles(screen, g.corners(mesh, snapshot.Corridor), corridorFill)
	}
	if mesh != nil && snapshot.ShowTriangulation {
		for i := range mesh.Triangles {
			strokePolyline(screen, g.view, mesh.Loop(i).Points, false, 1, meshColor)
		}
	}
	strokePolyline(screen, g.view, snapshot.Vertices, snapshot.Closed, 2, outlineColor)
	if mesh != nil && snapshot.ShowDual {
		g.drawDual(screen, mesh)
	}
	strokePolyline(screen, g.view, snapshot.Path, false, 2, pathColor)

	if snapshot.Cursor != nil && snapshot.Mode == session.Drawing {
		dot(screen, g.view, *snapshot.Cursor, 4, cursorColor)
		x, y := ebiten.CursorPosition()
		strokeSegment(screen, g.view, *snapshot.Cursor, g.view.ToLocal(float64(x), float64(y)), 1, cursorColor)
	}
	for _, p := range []*Point{snapshot.PointA, snapshot.PointB} {
		if p != nil {
			dot(screen, g.view, *p, 5, pathColor)
		}
	}

	status := fmt.Sprintf("%s  vertices: %d", snapshot.Mode, len(snapshot.Vertices))
	if mesh != nil {
		status += fmt.Sprintf("  triangles: %d", mesh.Len())
	}
	if len(snapshot.Path) > 0 {
		status += fmt.Sprintf("  length: %.2f", advanced.PathLength(snapshot.Path))
	}
	ebitenutil.DebugPrintAt(screen, status, 8, 8)
	ebitenutil.DebugPrintAt(screen, "U undo  C clear  T triangulate  D dual  G triangulation", 8, g.height-20)
}

// Screen corners of the given triangles, or of every triangle when indexes is
// nil.
func (g *Game) corners(mesh *advanced.Mesh, indexes []int) [][3][2]float32 {
	if indexes == nil {
		indexes = make([]int, mesh.Len())
		for i := range indexes {
			indexes[i] = i
		}
	}
	corners := make([][3][2]float32, 0, len(indexes))
	for _, i := range indexes {
		var triangle [3][2]float32
		for k, p := range mesh.Loop(i).Points {
			if k == 3 {
				break
			}
			x, y := screenPoint(g.view, p)
			triangle[k] = [2]float32{x, y}
		}
		corners = append(corners, triangle)
	}
	return corners
}

func (g *Game) drawDual(screen *ebiten.Image, mesh *advanced.Mesh) {
	for _, edge := range mesh.DualEdges() {
		from, to := &mesh.Triangles[edge.From], &mesh.Triangles[edge.To]
		midpoint := internal.Midpoint(mesh.Vertices[edge.Shared.A], mesh.Vertices[edge.Shared.B])
		strokeSegment(screen, g.view, from.Center, midpoint, 1, dualColor)
		strokeSegment(screen, g.view, midpoint, to.Center, 1, dualColor)
	}
	for _, center := range mesh.Centers() {
		dot(screen, g.view, center, 2, dualColor)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func main() {
	kingpin.Parse()
	if *verbose {
		polypath.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	c, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	g := NewGame(c)
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(c.Draw.Title)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
