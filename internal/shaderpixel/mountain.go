package shaderpixel

import (
	"math"
)

// Mountain is a fractal height-field terrain cut to the container, with a water plane and
// a couple of floating decorations. Version 1 and 2 differ only in tuning: octave count
// and the convergence tolerance formula. Neither is the "right" one.
type Mountain struct {
	Version    int
	Octaves    int
	WaterLevel Real
	Tolerance  Tolerance
	LightDir   Vec3
	SkyColor   RGB
}

// NewMountain uses a single distance-scaled tolerance for every material.
func NewMountain() *Mountain {
	return &Mountain{
		Version:    1,
		Octaves:    6,
		WaterLevel: -0.45,
		Tolerance:  ScaledTolerance(1e-3, 1e-4),
		LightDir:   norm(Vec3{0.6, 0.8, 0.3}),
		SkyColor:   RGB{0.62, 0.75, 0.9},
	}
}

// NewMountain2 refines decorations more than the large smooth terrain.
func NewMountain2() *Mountain {
	m := NewMountain()
	m.Version = 2
	m.Octaves = 8
	m.Tolerance = func(t Real, mat Material) Real {
		switch mat {
		case MatTerrain:
			return math.Max(2e-4, 2e-3*t)
		case MatWater:
			return math.Max(1e-4, 1e-3*t)
		default:
			return 2e-4
		}
	}
	return m
}

func init() {
	Register("mountain", func() Program { return NewMountain() })
	Register("mountain2", func() Program { return NewMountain2() })
}

func (m *Mountain) Name() string {
	if m.Version == 2 {
		return "mountain2"
	}
	return "mountain"
}

func (m *Mountain) Is3D() bool { return true }

// Height is the terrain surface height at (x, z).
func (m *Mountain) Height(x, z Real) Real {
	f := FBM(1.3*x+3.1, 1.3*z-1.7, m.Octaves)
	return -0.8 + 1.5*f*f
}

var containerInner = Vec3{0.999, 0.999, 0.999}

// Sample is the scene distance field.
func (m *Mountain) Sample(p Vec3) Sample {
	bound := Sample{Dist: sdBox(p, containerInner)}
	terrain := Intersect(Sample{Dist: 0.6 * sdHeightField(p, m.Height), Mat: MatTerrain}, bound)
	water := Intersect(Sample{Dist: sdPlaneY(p, m.WaterLevel), Mat: MatWater}, bound)
	deco := Union(
		Sample{Dist: sdSphere(p.Sub(Vec3{0.5, 0.65, -0.35}), 0.08), Mat: MatDecoration},
		Sample{Dist: sdSphere(p.Sub(Vec3{-0.45, 0.75, 0.3}), 0.05), Mat: MatDecoration},
	)
	return UnionAll(terrain, water, deco)
}

func (m *Mountain) Shade(in FragmentInput) Premul {
	r := in.Ray()
	t0, t1, ok := marchSpan(in, r)
	if !ok {
		return Transparent
	}
	field := FieldFunc(m.Sample)
	mr := Marcher{
		MaxSteps:  MaxSteps,
		Relax:     Relax,
		MinDist:   t0,
		MaxDist:   t1 + 1e-3,
		Tolerance: m.Tolerance,
	}
	res := mr.March(r, field)
	recordMarch(m.Name(), res.Status)
	if !res.Hit() {
		return Transparent
	}
	n := Normal(field, res.Pos, NormalEps)
	lit := m.softShadow(res.Pos.Add(n.Mul(2e-3)), field)
	var c RGB
	switch res.Mat {
	case MatWater:
		c = shadeDiffuse(RGB{0.1, 0.3, 0.55}, n, m.LightDir, lit, 0.3)
		h := norm(m.LightDir.Sub(r.Dir))
		spec := math.Pow(math.Max(0, n.Dot(h)), 60) * lit
		c = RGB{c.R + spec, c.G + spec, c.B + spec}
	case MatDecoration:
		c = shadeDiffuse(RGB{0.9, 0.35, 0.2}, n, m.LightDir, lit, 0.25)
	default:
		c = shadeDiffuse(m.terrainAlbedo(res.Pos, n), n, m.LightDir, lit, 0.2)
	}
	c = fog(c, m.SkyColor, res.T-t0, 0.35)
	return Opaque(c.clamp01())
}

func (m *Mountain) terrainAlbedo(p, n Vec3) RGB {
	grass := Vec3{0.25, 0.45, 0.15}
	rock := Vec3{0.45, 0.4, 0.35}
	snow := Vec3{0.95, 0.95, 0.97}
	// container walls cut through the terrain: show the strata
	if math.Abs(n[1]) < 0.2 && maxComp(vabs(p)) > 0.99 {
		band := 0.5 + 0.5*math.Sin(p[1]*40)
		return rgb(vmix(Vec3{0.35, 0.25, 0.18}, Vec3{0.5, 0.38, 0.26}, band))
	}
	c := vmix(rock, grass, smoothstep(0.6, 0.85, n[1]))
	c = vmix(c, snow, smoothstep(0.25, 0.4, p[1])*smoothstep(0.5, 0.7, n[1]))
	return rgb(c)
}

// softShadow marches towards the light and darkens by the closest near-miss.
func (m *Mountain) softShadow(p Vec3, f Field) Real {
	res := 1.0
	t := 0.01
	for i := 0; i < 48 && t < 2; i++ {
		h := f.Sample(p.Add(m.LightDir.Mul(t))).Dist
		if h < 1e-4 {
			return 0
		}
		res = math.Min(res, 8*h/t)
		t += clamp(h, 0.01, 0.2)
	}
	return clamp01(res)
}
