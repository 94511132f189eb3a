package shaderpixel

import (
	"math"
)

// Menger renders a Menger sponge. The second variant is deeper and tumbles over time.
type Menger struct {
	Variant int
	DE      MengerDE
	Size    Real // half size inside the container
	Relax   Real
	Spin    Real
}

func NewMenger() *Menger {
	return &Menger{Variant: 1, DE: MengerDE{Iterations: 4}, Size: 0.8, Relax: 0.9}
}

func NewMenger2() *Menger {
	return &Menger{Variant: 2, DE: MengerDE{Iterations: 5}, Size: 0.7, Relax: 0.9, Spin: 0.4}
}

func init() {
	Register("menger", func() Program { return NewMenger() })
	Register("menger2", func() Program { return NewMenger2() })
}

func (m *Menger) Name() string {
	if m.Variant == 2 {
		return "menger2"
	}
	return "menger"
}

func (m *Menger) Is3D() bool { return true }

func (m *Menger) local(p Vec3, time Real) Vec3 {
	if m.Spin != 0 {
		p = rotateX(rotateY(p, time*m.Spin), time*m.Spin*0.6)
	}
	return p.Mul(1 / m.Size)
}

func (m *Menger) field(time Real) Field {
	return FieldFunc(func(p Vec3) Sample {
		d, _ := m.DE.Dist(m.local(p, time))
		return Sample{Dist: d * m.Size, Mat: MatFractal}
	})
}

func (m *Menger) Shade(in FragmentInput) Premul {
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
		Tolerance: ScaledTolerance(4e-4, 5e-5),
	}
	res := mr.March(r, f)
	recordMarch(m.Name(), res.Status)
	if !res.Hit() {
		return Transparent
	}
	_, level := m.DE.Dist(m.local(res.Pos, in.Time))
	shift := 0.0
	if m.Variant == 2 {
		shift = in.Time * 0.1
	}
	albedo := cosPalette(Real(level)/Real(imax(1, m.DE.Iterations))+shift,
		Vec3{0.55, 0.5, 0.45}, Vec3{0.45, 0.4, 0.35}, Vec3{1, 1, 1}, Vec3{0.3, 0.2, 0.2})
	n := Normal(f, res.Pos, NormalEps)
	l := norm(Vec3{0.4, 0.9, -0.3})
	ao := math.Pow(1-Real(res.Steps)/Real(MaxSteps), 1.5)
	c := shadeDiffuse(albedo.clamp01(), n, l, 1, 0.3)
	return Opaque(RGB{c.R * ao, c.G * ao, c.B * ao}.clamp01())
}
