package shaderpixel

import (
	"math"
)

// Solar is a sun, an earth and a moon inside the container. Every body is an analytic
// sphere; the earth and the moon shadow each other with cone shadows.
type Solar struct {
	SunRadius   Real
	EarthOrbit  Real
	EarthRadius Real
	MoonOrbit   Real
	MoonRadius  Real
	EarthSpeed  Real // radians per second
	MoonSpeed   Real
	Tilt        Real // moon orbit inclination, radians

	SunColor   RGB
	EarthColor RGB
	LandColor  RGB
	MoonColor  RGB
	Ambient    Real
	GlassAlpha Real // container faces opacity
}

func NewSolar() *Solar {
	return &Solar{
		SunRadius:   0.22,
		EarthOrbit:  0.65,
		EarthRadius: 0.09,
		MoonOrbit:   0.2,
		MoonRadius:  0.035,
		EarthSpeed:  0.3,
		MoonSpeed:   1.3,
		Tilt:        0.25,
		SunColor:    RGB{1.0, 0.78, 0.3},
		EarthColor:  RGB{0.12, 0.3, 0.75},
		LandColor:   RGB{0.25, 0.55, 0.2},
		MoonColor:   RGB{0.7, 0.7, 0.68},
		Ambient:     0.04,
		GlassAlpha:  0.06,
	}
}

func init() {
	Register("solar", func() Program { return NewSolar() })
}

func (s *Solar) Name() string { return "solar" }
func (s *Solar) Is3D() bool   { return true }

// Bodies returns sun, earth and moon at time t.
func (s *Solar) Bodies(t Real) (sun, earth, moon Sphere) {
	sun = Sphere{Center: Vec3{}, Radius: s.SunRadius}
	ea := t * s.EarthSpeed
	earth = Sphere{
		Center: Vec3{s.EarthOrbit * math.Cos(ea), 0, s.EarthOrbit * math.Sin(ea)},
		Radius: s.EarthRadius,
	}
	ma := t * s.MoonSpeed
	off := rotateX(Vec3{s.MoonOrbit * math.Cos(ma), 0, s.MoonOrbit * math.Sin(ma)}, s.Tilt)
	moon = Sphere{Center: earth.Center.Add(off), Radius: s.MoonRadius}
	return
}

func (s *Solar) Shade(in FragmentInput) Premul {
	r := in.Ray()
	sun, earth, moon := s.Bodies(in.Time)
	cands := make([]Candidate, 0, 5)

	if near, far, ok := IntersectSphere(r, sun); ok {
		if t, ok := firstForward(near, far); ok {
			p := r.At(t)
			n := sun.Normal(p)
			// limb darkening
			mu := math.Max(0, -n.Dot(r.Dir))
			k := 0.6 + 0.4*math.Sqrt(mu)
			cands = append(cands, Candidate{Dist: t, Color: Opaque(RGB{s.SunColor.R * k, s.SunColor.G * k, s.SunColor.B * k})})
		}
	}
	// corona: faint glow around the sun, placed at the closest approach
	if tc := sun.Center.Sub(r.Origin).Dot(r.Dir); tc > 0 {
		d := r.At(tc).Sub(sun.Center).Len()
		if d > sun.Radius {
			g := 0.35 * math.Exp(-12*(d-sun.Radius))
			if g > 1e-3 {
				cands = append(cands, Candidate{Dist: tc, Color: WithAlpha(s.SunColor, g)})
			}
		}
	}
	if near, far, ok := IntersectSphere(r, earth); ok {
		if t, ok := firstForward(near, far); ok {
			p := r.At(t)
			cands = append(cands, Candidate{Dist: t, Color: Opaque(s.shadeEarth(p, sun, earth, moon, in.Time))})
		}
	}
	if near, far, ok := IntersectSphere(r, moon); ok {
		if t, ok := firstForward(near, far); ok {
			p := r.At(t)
			n := moon.Normal(p)
			l := norm(sun.Center.Sub(p))
			lit := ConeShadow(sun, earth, p, PenumbraBand)
			cands = append(cands, Candidate{Dist: t, Color: Opaque(shadeDiffuse(s.MoonColor, n, l, lit, s.Ambient))})
		}
	}
	if hit, ok := IntersectBox(r, UnitContainer); ok {
		for i := 0; i < hit.N; i++ {
			c := hit.C[i]
			if c.T < 0 {
				continue
			}
			cands = append(cands, Candidate{Dist: c.T, Color: WithAlpha(faceTint(c.Face), s.GlassAlpha)})
		}
	}
	return Composite(cands...)
}

func (s *Solar) shadeEarth(p Vec3, sun, earth, moon Sphere, t Real) RGB {
	n := earth.Normal(p)
	l := norm(sun.Center.Sub(p))
	// continents: noise over the rotating surface
	spin := rotateY(n, t*0.8)
	lon := math.Atan2(spin[2], spin[0])
	lat := math.Asin(clamp(spin[1], -1, 1))
	land := smoothstep(0.5, 0.56, FBM(lon*1.6+4, lat*3.2, 5))
	albedo := rgb(vmix(s.EarthColor.Vec(), s.LandColor.Vec(), land))
	if math.Abs(lat) > 1.25 {
		albedo = RGB{0.92, 0.94, 0.96}
	}
	lit := ConeShadow(sun, moon, p, PenumbraBand)
	return shadeDiffuse(albedo, n, l, lit, s.Ambient)
}

// faceTint gives each container face its own hue.
func faceTint(f Face) RGB {
	switch f {
	case FaceNegX, FacePosX:
		return RGB{0.9, 0.4, 0.4}
	case FaceNegY, FacePosY:
		return RGB{0.4, 0.9, 0.4}
	case FaceNegZ, FacePosZ:
		return RGB{0.4, 0.5, 0.95}
	}
	return RGB{1, 1, 1}
}
