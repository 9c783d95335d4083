// Package render draws session snapshots: PNG images through gg, previews in
// the terminal, and plain SVG documents. It also reads polygons back out of
// SVG files.
package render

import (
	"io"
	"math"
	"os"
	"strconv"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/polypath/advanced"
	"github.com/osuushi/polypath/session"
	"github.com/pkg/errors"
	"golang.org/x/image/font/basicfont"
)

type Point = advanced.Point

type Options struct {
	// Pixels per local unit
	Scale float64
	// Margin around the drawing, in pixels
	Padding   float64
	LineWidth float64
	// Put the origin at the bottom left, for y-up coordinates. Screen
	// coordinates are y-down and shouldn't be flipped.
	FlipY bool
	// Write triangle indexes at their centers
	Labels bool
}

func DefaultOptions() Options {
	return Options{Scale: 1, Padding: 20, LineWidth: 2}
}

type bounds struct {
	minX, minY, maxX, maxY float64
}

func snapshotBounds(snapshot session.Snapshot) bounds {
	b := bounds{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	extend := func(p Point) {
		b.minX = math.Min(b.minX, p.X)
		b.minY = math.Min(b.minY, p.Y)
		b.maxX = math.Max(b.maxX, p.X)
		b.maxY = math.Max(b.maxY, p.Y)
	}
	for _, p := range snapshot.Vertices {
		extend(p)
	}
	for _, p := range []*Point{snapshot.PointA, snapshot.PointB} {
		if p != nil {
			extend(*p)
		}
	}
	if math.IsInf(b.minX, 1) {
		return bounds{}
	}
	return b
}

// Draw renders the snapshot into a new context sized to fit it.
func Draw(snapshot session.Snapshot, opts Options) *gg.Context {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	b := snapshotBounds(snapshot)
	width := int(math.Ceil(opts.Scale*(b.maxX-b.minX)+opts.Padding*2)) + 1
	height := int(math.Ceil(opts.Scale*(b.maxY-b.minY)+opts.Padding*2)) + 1
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	if opts.FlipY {
		// Flip the context so the origin is at the bottom left
		c.Translate(0, float64(height))
		c.Scale(1, -1)
	}
	c.Translate(opts.Padding, opts.Padding)
	c.Scale(opts.Scale, opts.Scale)
	c.Translate(-b.minX, -b.minY)

	// Line widths are in pixels regardless of scale
	line := func(width float64) {
		c.SetLineWidth(width * opts.LineWidth / opts.Scale)
	}
	radius := 3 * opts.LineWidth / opts.Scale

	if len(snapshot.Vertices) > 0 {
		tracePolyline(c, snapshot.Vertices, snapshot.Closed)
		if snapshot.Closed {
			c.SetRGB(0, 0.3, 0)
			c.FillPreserve()
		}
		c.SetRGB(0, 1, 1)
		line(1)
		c.Stroke()
	}

	if len(snapshot.SubPolygon) > 2 {
		tracePolyline(c, snapshot.SubPolygon, true)
		c.SetRGBA(0.3, 0.2, 1, 0.5)
		c.Fill()
	}

	if mesh := snapshot.Mesh; mesh != nil {
		if snapshot.ShowTriangulation {
			for i := 0; i < mesh.Len(); i++ {
				tracePolyline(c, mesh.Loop(i).Points, true)
			}
			c.SetRGBA(0, 1, 0, 0.7)
			line(0.5)
			c.Stroke()
		}
		if snapshot.ShowDual {
			// Each dual edge goes from center to center through the midpoint of
			// the shared edge
			for _, edge := range mesh.DualEdges() {
				from := mesh.Triangles[edge.From].Center
				to := mesh.Triangles[edge.To].Center
				mid := mesh.Vertices[edge.Shared.A].Add(mesh.Vertices[edge.Shared.B]).Scale(0.5)
				c.MoveTo(from.X, from.Y)
				c.LineTo(mid.X, mid.Y)
				c.LineTo(to.X, to.Y)
			}
			c.SetRGBA(1, 1, 0, 0.6)
			line(0.5)
			c.Stroke()
			for _, center := range mesh.Centers() {
				c.DrawCircle(center.X, center.Y, radius/2)
			}
			c.SetRGB(1, 1, 0)
			c.Fill()
		}
	}

	if len(snapshot.Path) > 1 {
		tracePolyline(c, snapshot.Path, false)
		c.SetRGB(1, 0.3, 0.3)
		line(1.5)
		c.Stroke()
	}

	if snapshot.Cursor != nil && snapshot.Mode == session.Drawing {
		c.DrawCircle(snapshot.Cursor.X, snapshot.Cursor.Y, radius)
		c.SetRGB(1, 1, 1)
		c.Fill()
	}

	c.SetFontFace(basicfont.Face7x13)
	for _, endpoint := range []struct {
		p     *Point
		label string
	}{{snapshot.PointA, "A"}, {snapshot.PointB, "B"}} {
		if endpoint.p == nil {
			continue
		}
		c.DrawCircle(endpoint.p.X, endpoint.p.Y, radius)
		c.SetRGB(1, 0.3, 0.3)
		c.Fill()
		label(c, endpoint.label, *endpoint.p, 0, 1.2)
	}
	if opts.Labels && snapshot.Mesh != nil {
		for i, center := range snapshot.Mesh.Centers() {
			label(c, strconv.Itoa(i), center, 0.5, 0.5)
		}
	}
	return c
}

// Labels are drawn untransformed so the text isn't scaled or flipped, so get
// the point in native coordinates first.
func label(c *gg.Context, text string, p Point, ax, ay float64) {
	x, y := c.TransformPoint(p.X, p.Y)
	c.Push()
	c.Identity()
	c.SetRGB(1, 1, 1)
	c.DrawStringAnchored(text, x+4, y, ax, ay)
	c.Pop()
}

func tracePolyline(c *gg.Context, points []Point, closed bool) {
	c.NewSubPath()
	c.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		c.LineTo(p.X, p.Y)
	}
	if closed {
		c.ClosePath()
	}
}

func PNG(w io.Writer, snapshot session.Snapshot, opts Options) error {
	return errors.Wrap(Draw(snapshot, opts).EncodePNG(w), "encoding png")
}

func SavePNG(path string, snapshot session.Snapshot, opts Options) error {
	return errors.Wrapf(Draw(snapshot, opts).SavePNG(path), "saving %s", path)
}

// Preview prints the rendered snapshot to the terminal (iTerm only).
func Preview(w io.Writer, snapshot session.Snapshot, opts Options) error {
	f, err := os.CreateTemp("", "polypath-*.png")
	if err != nil {
		return errors.Wrap(err, "preview")
	}
	defer os.Remove(f.Name())
	err = PNG(f, snapshot, opts)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	return errors.Wrap(imgcat.CatFile(f.Name(), w), "preview")
}
