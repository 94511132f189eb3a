package shaderpixel

import (
	"image/color"
	"math"
)

// RGB stores color components; each should be in [0,1].
type RGB struct {
	R, G, B Real
}

func (c RGB) Vec() Vec3 { return Vec3{c.R, c.G, c.B} }

func rgb(v Vec3) RGB { return RGB{v[0], v[1], v[2]} }

// clamp01 clamps each channel to [0,1].
func (c RGB) clamp01() RGB { return RGB{clamp01(c.R), clamp01(c.G), clamp01(c.B)} }

// Premul is premultiplied RGBA: color channels are already scaled by A.
type Premul struct {
	R, G, B, A Real
}

// Transparent is the empty premultiplied color.
var Transparent = Premul{}

// Opaque returns c with alpha 1.
func Opaque(c RGB) Premul { return Premul{c.R, c.G, c.B, 1} }

// WithAlpha premultiplies a straight color by a.
func WithAlpha(c RGB, a Real) Premul {
	a = clamp01(a)
	return Premul{c.R * a, c.G * a, c.B * a, a}
}

// Over composites top over bottom.
func Over(top, bottom Premul) Premul {
	k := 1 - top.A
	return Premul{
		R: top.R + bottom.R*k,
		G: top.G + bottom.G*k,
		B: top.B + bottom.B*k,
		A: top.A + bottom.A*k,
	}
}

// Straight converts to straight (non-premultiplied) alpha. Fully transparent maps to zero.
func (p Premul) Straight() (RGB, Real) {
	if p.A <= 0 {
		return RGB{}, 0
	}
	return RGB{p.R / p.A, p.G / p.A, p.B / p.A}, p.A
}

// ApproxEqual compares channel by channel.
func (p Premul) ApproxEqual(q Premul, eps Real) bool {
	return math.Abs(p.R-q.R) <= eps && math.Abs(p.G-q.G) <= eps &&
		math.Abs(p.B-q.B) <= eps && math.Abs(p.A-q.A) <= eps
}

// NRGBA quantizes to an 8-bit straight-alpha color.
func (p Premul) NRGBA() color.NRGBA {
	c, a := p.Straight()
	c = c.clamp01()
	q := func(x Real) uint8 { return uint8(math.Round(clamp01(x) * 255)) }
	return color.NRGBA{R: q(c.R), G: q(c.G), B: q(c.B), A: q(a)}
}

// PremulFromColor converts any image color.
func PremulFromColor(c color.Color) Premul {
	r, g, b, a := c.RGBA() // already premultiplied, 16-bit
	const k = 1.0 / 0xffff
	return Premul{Real(r) * k, Real(g) * k, Real(b) * k, Real(a) * k}
}
