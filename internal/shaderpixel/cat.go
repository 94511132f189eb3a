package shaderpixel

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Cat is a flat cartoon cat built from 2D distance functions: a round head with ears,
// blinking eyes, a nose and whiskers. It is drawn on a wall quad.
type Cat struct {
	Fur, InnerEar, Eye, Pupil, Nose, Whisker RGB
	Sky, Floor                               RGB  // background gradient, top and bottom
	BlinkPeriod                              Real // seconds between blinks, 0 never blinks
}

// feature tags, picked by the nearest-wins union
const (
	catEye Material = iota + 1
	catNose
	catWhisker
)

var (
	catHead    = mgl64.Vec2{0, -0.1}
	catEyes    = [2]mgl64.Vec2{{-0.2, 0.05}, {0.2, 0.05}}
	catEyeSize = 0.1
)

func NewCat() *Cat {
	return &Cat{
		Fur:         RGB{0.85, 0.55, 0.25},
		InnerEar:    RGB{0.95, 0.65, 0.65},
		Eye:         RGB{0.95, 0.95, 0.85},
		Pupil:       RGB{0.08, 0.1, 0.05},
		Nose:        RGB{0.8, 0.35, 0.4},
		Whisker:     RGB{0.2, 0.15, 0.1},
		Sky:         RGB{0.55, 0.7, 0.85},
		Floor:       RGB{0.35, 0.5, 0.65},
		BlinkPeriod: 4,
	}
}

func init() {
	Register("cat", func() Program { return NewCat() })
}

func (c *Cat) Name() string { return "cat" }
func (c *Cat) Is3D() bool   { return false }

func sdCircle(p mgl64.Vec2, r Real) Real { return p.Len() - r }

// sdSegment is a capsule of radius r around the segment ab.
func sdSegment(p, a, b mgl64.Vec2, r Real) Real {
	pa, ba := p.Sub(a), b.Sub(a)
	h := clamp01(pa.Dot(ba) / ba.Dot(ba))
	return pa.Sub(ba.Mul(h)).Len() - r
}

// sdTriangle is the exact signed distance to triangle abc, either winding.
func sdTriangle(p, a, b, c mgl64.Vec2) Real {
	e := [3]mgl64.Vec2{b.Sub(a), c.Sub(b), a.Sub(c)}
	v := [3]mgl64.Vec2{p.Sub(a), p.Sub(b), p.Sub(c)}
	s := math.Copysign(1, e[0][0]*e[2][1]-e[0][1]*e[2][0])
	d2, side := math.Inf(1), math.Inf(1)
	for i := range e {
		q := v[i].Sub(e[i].Mul(clamp01(v[i].Dot(e[i]) / e[i].Dot(e[i]))))
		d2 = math.Min(d2, q.Dot(q))
		side = math.Min(side, s*(v[i][0]*e[i][1]-v[i][1]*e[i][0]))
	}
	return -math.Sqrt(d2) * math.Copysign(1, side)
}

// openness is 1 for open eyes and dips to 0 halfway through every blink period.
func (c *Cat) openness(time Real) Real {
	if c.BlinkPeriod <= 0 {
		return 1
	}
	phase := time - c.BlinkPeriod*math.Floor(time/c.BlinkPeriod)
	return smoothstep(0, 0.08, math.Abs(phase-c.BlinkPeriod/2))
}

// Head is the fur silhouette: the head circle and both ears.
func (c *Cat) Head(p mgl64.Vec2) Sample {
	return UnionAll(
		Sample{Dist: sdCircle(p.Sub(catHead), 0.5)},
		Sample{Dist: sdTriangle(p, mgl64.Vec2{-0.48, 0.1}, mgl64.Vec2{-0.12, 0.32}, mgl64.Vec2{-0.42, 0.72})},
		Sample{Dist: sdTriangle(p, mgl64.Vec2{0.48, 0.1}, mgl64.Vec2{0.12, 0.32}, mgl64.Vec2{0.42, 0.72})},
	)
}

func (c *Cat) innerEars(p mgl64.Vec2) Real {
	return math.Min(
		sdTriangle(p, mgl64.Vec2{-0.4, 0.22}, mgl64.Vec2{-0.22, 0.33}, mgl64.Vec2{-0.4, 0.6}),
		sdTriangle(p, mgl64.Vec2{0.4, 0.22}, mgl64.Vec2{0.22, 0.33}, mgl64.Vec2{0.4, 0.6}),
	)
}

// Features is the nearest of eyes, nose and whiskers. Eyes squash vertically with open.
func (c *Cat) Features(p mgl64.Vec2, open Real) Sample {
	k := math.Max(open, 0.05)
	s := Sample{Dist: math.Inf(1)}
	for _, e := range catEyes {
		q := mgl64.Vec2{p[0] - e[0], (p[1] - e[1]) / k}
		s = Union(s, Sample{Dist: sdCircle(q, catEyeSize) * k, Mat: catEye})
	}
	nose := sdTriangle(p, mgl64.Vec2{-0.06, -0.12}, mgl64.Vec2{0.06, -0.12}, mgl64.Vec2{0, -0.19})
	s = Union(s, Sample{Dist: nose, Mat: catNose})
	for _, side := range []Real{-1, 1} {
		for _, dy := range []Real{-0.03, 0.03} {
			a := mgl64.Vec2{side * 0.15, -0.2 + dy}
			b := mgl64.Vec2{side * 0.75, -0.2 + 3*dy}
			s = Union(s, Sample{Dist: sdSegment(p, a, b, 0.008), Mat: catWhisker})
		}
	}
	return s
}

func (c *Cat) pupils(p mgl64.Vec2, open Real) Real {
	k := math.Max(open, 0.05)
	d := math.Inf(1)
	for _, e := range catEyes {
		q := mgl64.Vec2{p[0], e[1] + (p[1]-e[1])/k}
		d = math.Min(d, sdSegment(q, mgl64.Vec2{e[0], e[1] - 0.06}, mgl64.Vec2{e[0], e[1] + 0.06}, 0.025)*k)
	}
	return d
}

func (c *Cat) featureColor(m Material) RGB {
	switch m {
	case catEye:
		return c.Eye
	case catNose:
		return c.Nose
	}
	return c.Whisker
}

func (c *Cat) Shade(in FragmentInput) Premul {
	p := mgl64.Vec2{(in.UV[0] - 0.5) * 2, (in.UV[1] - 0.5) * 2}
	aa := 0.01
	if r := math.Min(in.Resolution[0], in.Resolution[1]); r > 0 {
		aa = 3 / r
	}
	cover := func(d Real) Real { return 1 - smoothstep(-aa, aa, d) }
	open := c.openness(in.Time)

	col := Opaque(rgb(vmix(c.Floor.Vec(), c.Sky.Vec(), clamp01(0.5+0.5*p[1]))))
	col = Over(WithAlpha(c.Fur, cover(c.Head(p).Dist)), col)
	col = Over(WithAlpha(c.InnerEar, cover(c.innerEars(p))), col)
	f := c.Features(p, open)
	col = Over(WithAlpha(c.featureColor(f.Mat), cover(f.Dist)), col)
	col = Over(WithAlpha(c.Pupil, cover(c.pupils(p, open))), col)
	return col
}
