package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/osuushi/polypath/viewport"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

var (
	background   = color.RGBA{0xfa, 0xfa, 0xf7, 0xff}
	outlineColor = color.RGBA{0x22, 0x22, 0x22, 0xff}
	fillColor    = color.RGBA{0xdd, 0xe6, 0xf0, 0xff}
	corridorFill = color.RGBA{0xf6, 0xe3, 0xa8, 0xff}
	meshColor    = color.RGBA{0x99, 0x99, 0x99, 0xff}
	dualColor    = color.RGBA{0x3a, 0x8f, 0x5c, 0xff}
	pathColor    = color.RGBA{0xd0, 0x33, 0x33, 0xff}
	cursorColor  = color.RGBA{0x33, 0x66, 0xcc, 0xff}
)

// Fill triangles, given as flat screen space corner triples.
func fillTriangles(screen *ebiten.Image, corners [][3][2]float32, clr color.RGBA) {
	if len(corners) == 0 {
		return
	}
	cr := float32(clr.R) / 255.0
	cg := float32(clr.G) / 255.0
	cb := float32(clr.B) / 255.0
	ca := float32(clr.A) / 255.0

	vertices := make([]ebiten.Vertex, 0, len(corners)*3)
	indices := make([]uint16, 0, len(corners)*3)
	for _, triangle := range corners {
		for _, corner := range triangle {
			indices = append(indices, uint16(len(vertices)))
			vertices = append(vertices, ebiten.Vertex{
				DstX:   corner[0],
				DstY:   corner[1],
				SrcX:   1,
				SrcY:   1,
				ColorR: cr,
				ColorG: cg,
				ColorB: cb,
				ColorA: ca,
			})
		}
	}
	screen.DrawTriangles(vertices, indices, whiteSub, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func screenPoint(view viewport.View, p Point) (float32, float32) {
	x, y := view.ToScreen(p)
	return float32(x), float32(y)
}

func strokeSegment(screen *ebiten.Image, view viewport.View, a, b Point, width float32, clr color.Color) {
	ax, ay := screenPoint(view, a)
	bx, by := screenPoint(view, b)
	vector.StrokeLine(screen, ax, ay, bx, by, width, clr, true)
}

func strokePolyline(screen *ebiten.Image, view viewport.View, points []Point, closed bool, width float32, clr color.Color) {
	for i := 1; i < len(points); i++ {
		strokeSegment(screen, view, points[i-1], points[i], width, clr)
	}
	if closed && len(points) > 2 {
		strokeSegment(screen, view, points[len(points)-1], points[0], width, clr)
	}
}

func dot(screen *ebiten.Image, view viewport.View, p Point, radius float32, clr color.Color) {
	x, y := screenPoint(view, p)
	vector.DrawFilledCircle(screen, x, y, radius, clr, true)
}
