package shaderpixel

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestRegistry(t *testing.T) {
	want := []string{"cat", "mandelbox", "mandelbrot", "menger", "menger2", "mountain", "mountain2", "solar"}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
		p, err := Lookup(want[i])
		if err != nil {
			t.Fatal(err)
		}
		if p.Name() != want[i] {
			t.Fatalf("program %q reports name %q", want[i], p.Name())
		}
	}
	if _, err := Lookup("nope"); !errors.Is(err, ErrUnknownProgram) {
		t.Fatalf("unknown program error: %v", err)
	}
}

func TestRegisterTwicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Register("solar", func() Program { return NewSolar() })
}

func validPremul(p Premul) bool {
	for _, v := range []Real{p.R, p.G, p.B, p.A} {
		if !isFinite(v) {
			return false
		}
	}
	return p.A >= 0 && p.A <= 1+1e-9
}

func TestProgramsProduceValidColors(t *testing.T) {
	dirs := []Vec3{{0, 0, -1}, {0.2, -0.3, -1}, {-0.4, 0.1, -1}}
	for _, name := range Names() {
		p, _ := Lookup(name)
		for _, d := range dirs {
			cam := Vec3{0.1, 0.2, 3}
			in := FragmentInput{Cam: cam, Dir: norm(d), Pos: cam, UV: [2]Real{0.3, 0.6}, Time: 1.5}
			if c := p.Shade(in); !validPremul(c) {
				t.Fatalf("%s: invalid color %+v for dir %v", name, c, d)
			}
		}
	}
}

func TestSolar(t *testing.T) {
	s := NewSolar()
	// straight at the sun through one glass face
	c := s.Shade(FragmentInput{Cam: Vec3{0, 0, 3}, Dir: Vec3{0, 0, -1}})
	if math.Abs(c.A-1) > 1e-9 {
		t.Fatalf("sun must be opaque, got %+v", c)
	}
	col, _ := c.Straight()
	if !(col.R > col.B) {
		t.Fatalf("sun should be warm: %+v", col)
	}
	// only the two glass faces
	c = s.Shade(FragmentInput{Cam: Vec3{0.9, 0.9, 3}, Dir: Vec3{0, 0, -1}})
	wantA := 1 - (1-s.GlassAlpha)*(1-s.GlassAlpha)
	if math.Abs(c.A-wantA) > 1e-9 {
		t.Fatalf("glass alpha %g, want %g", c.A, wantA)
	}
	// the box is missed entirely
	if c = s.Shade(FragmentInput{Cam: Vec3{3, 3, 3}, Dir: Vec3{0, 0, -1}}); c != Transparent {
		t.Fatalf("outside the container: %+v", c)
	}
}

func TestSolarBodiesOrbit(t *testing.T) {
	s := NewSolar()
	_, e0, m0 := s.Bodies(0)
	_, e1, m1 := s.Bodies(2)
	if math.Abs(e0.Center.Len()-s.EarthOrbit) > 1e-12 || math.Abs(e1.Center.Len()-s.EarthOrbit) > 1e-12 {
		t.Fatal("earth left its orbit")
	}
	if math.Abs(m0.Center.Sub(e0.Center).Len()-s.MoonOrbit) > 1e-12 || math.Abs(m1.Center.Sub(e1.Center).Len()-s.MoonOrbit) > 1e-12 {
		t.Fatal("moon left its orbit")
	}
}

func TestMountainHitsTerrainFromAbove(t *testing.T) {
	for _, m := range []*Mountain{NewMountain(), NewMountain2()} {
		resetMarchStats()
		Debug = true
		c := m.Shade(FragmentInput{Cam: Vec3{0, 3, 0.01}, Dir: Vec3{0, -1, 0}, ContainerDist: 2})
		Debug = false
		if math.Abs(c.A-1) > 1e-12 {
			t.Fatalf("%s: looking down must hit ground or water, got %+v", m.Name(), c)
		}
		if st := MarchStats()[m.Name()]; st[Hit] != 1 {
			t.Fatalf("%s: march stats %v", m.Name(), st)
		}
	}
}

func TestMountainTolerances(t *testing.T) {
	m1, m2 := NewMountain(), NewMountain2()
	if m1.Tolerance(10, MatDecoration) != m1.Tolerance(10, MatTerrain) {
		t.Fatal("v1 tolerance must not depend on material")
	}
	if !(m2.Tolerance(1, MatDecoration) < m2.Tolerance(1, MatTerrain)) {
		t.Fatal("v2 must refine decorations more than terrain")
	}
}

func TestMandelbrot(t *testing.T) {
	m := &Mandelbrot{MaxIter: 64, Center: [2]Real{0, 0}, Zoom: 3}
	if m.Escape(0, 0) != 64 {
		t.Fatal("origin is in the set")
	}
	if n := m.Escape(2, 2); n >= 3 {
		t.Fatalf("(2,2) escapes immediately, got %g", n)
	}
	if c := m.Shade(FragmentInput{UV: [2]Real{0.5, 0.5}}); c != Opaque(RGB{}) {
		t.Fatalf("inside the set must be black, got %+v", c)
	}
	if m.Is3D() {
		t.Fatal("mandelbrot is flat")
	}
}

func TestContainerDistStartsMarch(t *testing.T) {
	old := Debug
	t.Cleanup(func() { Debug = old; resetMarchStats() })
	Debug = true
	m := NewMountain()
	// the ray enters at y=1 (distance 2) and leaves at y=-1 (distance 4)
	in := FragmentInput{Cam: Vec3{0, 3, 0.01}, Dir: Vec3{0, -1, 0}, ContainerDist: 2}
	resetMarchStats()
	if c := m.Shade(in); c.A != 1 {
		t.Fatalf("marching from the entry face must hit, got %+v", c)
	}
	in.ContainerDist = 4.5
	resetMarchStats()
	if c := m.Shade(in); c.A != 0 {
		t.Fatalf("marching from beyond the exit face must miss, got %+v", c)
	}
	if st := MarchStats()["mountain"]; st[Miss] != 1 {
		t.Fatalf("march stats %v", st)
	}
}

func TestMarchSpan(t *testing.T) {
	r := NewRay(Vec3{0, 0, 5}, Vec3{0, 0, -1})
	t0, t1, ok := marchSpan(FragmentInput{Cam: r.Origin, Dir: r.Dir, ContainerDist: 4}, r)
	if !ok || t0 != 4 || math.Abs(t1-6) > 1e-12 {
		t.Fatalf("outside span %g..%g %v", t0, t1, ok)
	}
	r = NewRay(Vec3{0, 0, 0.5}, Vec3{0, 0, -1})
	t0, t1, ok = marchSpan(FragmentInput{Cam: r.Origin, Dir: r.Dir, ContainerDist: 1.5}, r)
	if !ok || t0 != 0 || math.Abs(t1-1.5) > 1e-12 {
		t.Fatalf("inside span %g..%g %v", t0, t1, ok)
	}
	r = NewRay(Vec3{0, 5, 5}, Vec3{0, 0, -1})
	if _, _, ok := marchSpan(FragmentInput{Cam: r.Origin, Dir: r.Dir}, r); ok {
		t.Fatal("ray passing above the container")
	}
}

func TestCat(t *testing.T) {
	c := NewCat()
	if c.Is3D() || c.Name() != "cat" {
		t.Fatal("cat is a flat program")
	}
	at := func(x, y, time Real) RGB {
		col, a := c.Shade(FragmentInput{UV: [2]Real{x/2 + 0.5, y/2 + 0.5}, Resolution: [2]Real{1000, 1000}, Time: time}).Straight()
		if math.Abs(a-1) > 1e-12 {
			t.Fatalf("cat must be opaque, alpha %g", a)
		}
		return col
	}
	near := func(a, b RGB) bool {
		return math.Abs(a.R-b.R) < 0.02 && math.Abs(a.G-b.G) < 0.02 && math.Abs(a.B-b.B) < 0.02
	}
	e := catEyes[0]
	if got := at(e[0], e[1], 0); !near(got, c.Pupil) {
		t.Fatalf("eye center %+v, want pupil", got)
	}
	// beside the pupil: white while open, fur halfway through the blink
	if got := at(e[0]+0.06, e[1]+0.02, 0); !near(got, c.Eye) {
		t.Fatalf("open eye %+v", got)
	}
	if got := at(e[0]+0.06, e[1]+0.02, c.BlinkPeriod/2); !near(got, c.Fur) {
		t.Fatalf("closed eye %+v", got)
	}
	if got := at(0, -0.45, 0); !near(got, c.Fur) {
		t.Fatalf("chin %+v", got)
	}
	if got := at(-0.96, 0.96, 0); near(got, c.Fur) {
		t.Fatalf("corner should be background, got fur")
	}
}

func TestSDF2D(t *testing.T) {
	a, b, c := mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, mgl64.Vec2{0, 1}
	if d := sdTriangle(mgl64.Vec2{0.2, 0.2}, a, b, c); !(d < 0) {
		t.Fatalf("inside triangle %g", d)
	}
	if d := sdTriangle(mgl64.Vec2{-1, 0.5}, a, c, b); math.Abs(d-1) > 1e-12 {
		t.Fatalf("outside triangle %g, want 1 for either winding", d)
	}
	if d := sdSegment(mgl64.Vec2{0.5, 0.3}, a, b, 0.1); math.Abs(d-0.2) > 1e-12 {
		t.Fatalf("segment %g", d)
	}
	if d := sdCircle(mgl64.Vec2{3, 4}, 1); d != 4 {
		t.Fatalf("circle %g", d)
	}
}
