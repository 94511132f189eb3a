package shaderpixel

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/fogleman/fauxgl"
	"github.com/go-gl/mathgl/mgl64"
)

func TestCarousel(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"b.png", "a.png"} {
		if err := imaging.Save(imaging.New(2, 2, color.NRGBA{R: 200, A: 255}), filepath.Join(dir, n)); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := NewCarousel(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Paths) != 2 {
		t.Fatalf("paths %v", c.Paths)
	}
	for _, want := range []string{"a.png", "b.png", "a.png"} {
		tex, p, err := c.Next()
		if err != nil {
			t.Fatal(err)
		}
		if filepath.Base(p) != want || tex == nil {
			t.Fatalf("got %s, want %s", p, want)
		}
	}
	if _, err := NewCarousel(t.TempDir()); err == nil {
		t.Fatal("empty dir accepted")
	}
}

func TestMeshShaderFragment(t *testing.T) {
	cam := NewCamera()
	s := NewMeshShader(mgl64.Ident4(), cam.View(), cam.Projection(1))
	v := fauxgl.Vertex{Normal: fvec(s.LightDir)}
	// facing the light fully lit, no vertex color falls back to BaseColor
	c := s.Fragment(v)
	if math.Abs(c.R-s.BaseColor.R) > 1e-9 || c.A != 1 {
		t.Fatalf("base color %+v", c)
	}
	s.Texture = fauxgl.NewImageTexture(imaging.New(2, 2, color.NRGBA{G: 255, A: 255}))
	s.TextureWeight = 1
	c = s.Fragment(v)
	if c.R > 1e-9 || math.Abs(c.G-1) > 1e-6 {
		t.Fatalf("textured %+v", c)
	}
	if _, err := LoadTexture(filepath.Join(t.TempDir(), "none.png")); err == nil {
		t.Fatal("missing texture accepted")
	}
}
