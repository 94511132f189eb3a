package shaderpixel

import (
	"math"
)

// Mandelbox renders the Mandelbox fractal fitted into the container.
type Mandelbox struct {
	DE       MandelboxDE
	Fill     Real // fraction of the container the set's bounding box occupies
	Relax    Real
	Spin     Real // radians per second about Y
	LightDir Vec3
}

func NewMandelbox() *Mandelbox {
	return &Mandelbox{
		DE:       NewMandelboxDE(2, 10),
		Fill:     0.95,
		Relax:    0.8,
		Spin:     0.15,
		LightDir: norm(Vec3{-0.5, 0.8, 0.4}),
	}
}

func init() {
	Register("mandelbox", func() Program { return NewMandelbox() })
}

func (m *Mandelbox) Name() string { return "mandelbox" }
func (m *Mandelbox) Is3D() bool   { return true }

func (m *Mandelbox) field(time Real) Field {
	k := m.DE.Extent() / m.Fill
	DebugLogOnce("Mandelbox: scale=%.2f, iterations=%d, extent=%.4f, fit=%.4f", m.DE.Scale, m.DE.Iterations, m.DE.Extent(), k)
	angle := time * m.Spin
	return FieldFunc(func(p Vec3) Sample {
		q := rotateY(p, angle).Mul(k)
		d, _ := m.DE.Dist(q)
		return Sample{Dist: d / k, Mat: MatFractal}
	})
}

func (m *Mandelbox) Shade(in FragmentInput) Premul {
	r := in.Ray()
	t0, t1, ok := marchSpan(in, r)
	if !ok {
		return Transparent
	}
	f := m.field(in.Time)
	mr := Marcher{
		MaxSteps:  MaxSteps,
		Relax:     m.Relax,
		MinDist:   t0,
		MaxDist:   t1,
		Tolerance: ScaledTolerance(5e-4, 1e-4),
	}
	res := mr.March(r, f)
	recordMarch(m.Name(), res.Status)
	if !res.Hit() {
		return Transparent
	}
	k := m.DE.Extent() / m.Fill
	_, trap := m.DE.Dist(rotateY(res.Pos, in.Time*m.Spin).Mul(k))
	albedo := cosPalette(math.Sqrt(trap)*0.08,
		Vec3{0.5, 0.5, 0.5}, Vec3{0.5, 0.5, 0.5}, Vec3{1, 1, 1}, Vec3{0.0, 0.1, 0.2})
	n := Normal(f, res.Pos, NormalEps)
	ao := 1 - Real(res.Steps)/Real(MaxSteps)
	c := shadeDiffuse(albedo.clamp01(), n, m.LightDir, 1, 0.25)
	return Opaque(RGB{c.R * ao, c.G * ao, c.B * ao}.clamp01())
}
