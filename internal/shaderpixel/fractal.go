package shaderpixel

import "math"

// BoxFold reflects each component back into [-limit, limit].
func BoxFold(p Vec3, limit Real) Vec3 {
	f := func(x Real) Real {
		if x > limit {
			return 2*limit - x
		}
		if x < -limit {
			return -2*limit - x
		}
		return x
	}
	return Vec3{f(p[0]), f(p[1]), f(p[2])}
}

// SphereFold inverts points inside the fixed radius. It returns the folded point and the
// factor the running derivative must be multiplied by.
func SphereFold(p Vec3, minR2, fixedR2 Real) (Vec3, Real) {
	r2 := p.Dot(p)
	if r2 < minR2 {
		k := fixedR2 / minR2
		return p.Mul(k), k
	}
	if r2 < fixedR2 {
		k := fixedR2 / r2
		return p.Mul(k), k
	}
	return p, 1
}

// MandelboxDE is the escape-time distance estimator of the Mandelbox.
type MandelboxDE struct {
	Scale      Real
	Iterations int
	FoldLimit  Real
	MinR2      Real
	FixedR2    Real

	c1, c2 Real
}

func NewMandelboxDE(scale Real, iterations int) MandelboxDE {
	if iterations <= 0 {
		iterations = 10
	}
	return MandelboxDE{
		Scale:      scale,
		Iterations: iterations,
		FoldLimit:  1,
		MinR2:      0.25,
		FixedR2:    1,
		c1:         math.Abs(scale - 1),
		c2:         math.Pow(math.Abs(scale), Real(1-iterations)),
	}
}

// Extent is the half size of the set along each axis, used to fit it into the container.
func (m MandelboxDE) Extent() Real {
	s := math.Abs(m.Scale)
	if s <= 1 {
		return 4
	}
	return 2 * (s + 1) / (s - 1)
}

// Dist returns the distance estimate at p and the minimum squared radius reached (orbit trap).
func (m MandelboxDE) Dist(p Vec3) (Real, Real) {
	z := p
	dr := 1.0
	trap := math.Inf(1)
	for i := 0; i < m.Iterations; i++ {
		z = BoxFold(z, m.FoldLimit)
		var k Real
		z, k = SphereFold(z, m.MinR2, m.FixedR2)
		dr *= k
		z = z.Mul(m.Scale).Add(p)
		dr = dr*math.Abs(m.Scale) + 1
		trap = math.Min(trap, z.Dot(z))
	}
	return (z.Len()-m.c1)/math.Abs(dr) - m.c2, trap
}

// MengerDE is the iterated cross-subtraction sponge inside a box of half size 1.
type MengerDE struct {
	Iterations int
}

// Dist returns the distance to the sponge and the level of the last carved cross (for coloring).
func (m MengerDE) Dist(p Vec3) (Real, int) {
	d := sdBox(p, Vec3{1, 1, 1})
	s := 1.0
	level := 0
	for i := 0; i < m.Iterations; i++ {
		a := vmod(p.Mul(s), 2).Sub(Vec3{1, 1, 1})
		s *= 3
		r := vabs(Vec3{1, 1, 1}.Sub(vabs(a).Mul(3)))
		da := math.Max(r[0], r[1])
		db := math.Max(r[1], r[2])
		dc := math.Max(r[2], r[0])
		c := (math.Min(da, math.Min(db, dc)) - 1) / s
		if c > d {
			d = c
			level = i + 1
		}
	}
	return d, level
}
