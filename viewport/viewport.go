// Package viewport maps raw screen coordinates to the local coordinates the
// session works in, and back. A View is an affine transform from local space
// to screen space, the same shape as an SVG current transformation matrix.
package viewport

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/osuushi/polypath/advanced"
)

type Point = advanced.Point

const (
	MinScale = 0.05
	MaxScale = 50
)

// View maps local space to screen space. The zero value is not usable; start
// from Identity or FromCTM.
type View struct {
	toScreen mgl64.Mat3
}

func Identity() View {
	return View{toScreen: mgl64.Ident3()}
}

// FromCTM builds a view from the six SVG matrix values, as returned by
// getScreenCTM: x' = a*x + c*y + e, y' = b*x + d*y + f.
func FromCTM(a, b, c, d, e, f float64) View {
	// mgl64 matrices are column major
	return View{toScreen: mgl64.Mat3{a, b, 0, c, d, 0, e, f, 1}}
}

// Invertible reports whether screen points can be mapped back to local space.
func (v View) Invertible() bool {
	det := v.toScreen.Det()
	return det > 1e-12 || det < -1e-12
}

func (v View) ToScreen(p Point) (x, y float64) {
	s := v.toScreen.Mul3x1(mgl64.Vec3{p.X, p.Y, 1})
	return s.X(), s.Y()
}

// ToLocal maps a screen point back into local space. A view that can't be
// inverted maps everything to the origin.
func (v View) ToLocal(x, y float64) Point {
	if !v.Invertible() {
		return Point{}
	}
	l := v.toScreen.Inv().Mul3x1(mgl64.Vec3{x, y, 1})
	return Point{X: l.X(), Y: l.Y()}
}

// Pan shifts the view by a screen space offset.
func (v View) Pan(dx, dy float64) View {
	return View{toScreen: mgl64.Translate2D(dx, dy).Mul3(v.toScreen)}
}

// ZoomAt scales the view by factor around the screen point (x, y), which stays
// put. The overall scale is clamped to [MinScale, MaxScale].
func (v View) ZoomAt(factor, x, y float64) View {
	scale := v.Scale()
	if scale*factor < MinScale {
		factor = MinScale / scale
	}
	if scale*factor > MaxScale {
		factor = MaxScale / scale
	}
	zoom := mgl64.Translate2D(x, y).Mul3(mgl64.Scale2D(factor, factor)).Mul3(mgl64.Translate2D(-x, -y))
	return View{toScreen: zoom.Mul3(v.toScreen)}
}

// Scale is the view's uniform scale factor, the square root of the absolute
// determinant of its linear part.
func (v View) Scale() float64 {
	det := v.toScreen.Det()
	if det < 0 {
		det = -det
	}
	return math.Sqrt(det)
}

// CTM returns the six SVG matrix values for the view.
func (v View) CTM() [6]float64 {
	m := v.toScreen
	return [6]float64{m[0], m[1], m[3], m[4], m[6], m[7]}
}
