package shaderpixel

import (
	"math"
)

// Mandelbrot is the flat escape-time program drawn on a wall quad.
type Mandelbrot struct {
	MaxIter int
	Center  [2]Real
	Zoom    Real // width of the view in the complex plane at Time == 0
	ZoomHz  Real // zoom cycles per second, 0 for static
}

func NewMandelbrot() *Mandelbrot {
	return &Mandelbrot{MaxIter: 128, Center: [2]Real{-0.745, 0.186}, Zoom: 3, ZoomHz: 0.05}
}

func init() {
	Register("mandelbrot", func() Program { return NewMandelbrot() })
}

func (m *Mandelbrot) Name() string { return "mandelbrot" }
func (m *Mandelbrot) Is3D() bool   { return false }

// Escape returns the smooth iteration count at c, or MaxIter when c is inside the set.
func (m *Mandelbrot) Escape(cx, cy Real) Real {
	x, y := 0.0, 0.0
	for i := 0; i < m.MaxIter; i++ {
		x, y = x*x-y*y+cx, 2*x*y+cy
		r2 := x*x + y*y
		if r2 > 256 {
			return Real(i) + 1 - math.Log2(0.5*math.Log2(r2))
		}
	}
	return Real(m.MaxIter)
}

func (m *Mandelbrot) Shade(in FragmentInput) Premul {
	zoom := m.Zoom
	if m.ZoomHz > 0 {
		// breathe between full view and a 200x close-up
		k := 0.5 - 0.5*math.Cos(2*math.Pi*m.ZoomHz*in.Time)
		zoom *= math.Pow(0.005, k)
	}
	cx := m.Center[0] + (in.UV[0]-0.5)*zoom
	cy := m.Center[1] + (in.UV[1]-0.5)*zoom
	n := m.Escape(cx, cy)
	if n >= Real(m.MaxIter) {
		return Opaque(RGB{})
	}
	c := cosPalette(n*0.02, Vec3{0.5, 0.5, 0.5}, Vec3{0.5, 0.5, 0.5}, Vec3{1, 1, 1}, Vec3{0, 0.1, 0.2})
	return Opaque(c.clamp01())
}
