package shaderpixel

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func solidFaces(w, h int) [6]image.Image {
	var faces [6]image.Image
	for i := range faces {
		faces[i] = imaging.New(w, h, color.NRGBA{uint8(40 * i), 0, 0, 255})
	}
	return faces
}

func TestNewCubemapSizeMismatch(t *testing.T) {
	faces := solidFaces(8, 8)
	faces[3] = imaging.New(8, 9, color.NRGBA{A: 255})
	if _, err := NewCubemap(faces); !errors.Is(err, ErrCubemapSize) {
		t.Fatalf("want ErrCubemapSize, got %v", err)
	}
	if _, err := NewCubemap(solidFaces(4, 4)); err != nil {
		t.Fatal(err)
	}
}

func TestLoadCubemap(t *testing.T) {
	dir := t.TempDir()
	var paths [6]string
	for i, im := range solidFaces(4, 4) {
		paths[i] = filepath.Join(dir, fmt.Sprintf("face%d.png", i))
		if err := imaging.Save(im, paths[i]); err != nil {
			t.Fatal(err)
		}
	}
	cm, err := LoadCubemap(paths)
	if err != nil {
		t.Fatal(err)
	}
	// each face is a solid color, so sampling picks the face by direction
	for face, d := range []Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}} {
		c := cm.Sample(d)
		want := Real(40*face) / 255
		if diff := c.R - want; diff > 1e-3 || diff < -1e-3 {
			t.Fatalf("dir %v sampled R=%g, want %g (face %d)", d, c.R, want, face)
		}
	}
	paths[5] = filepath.Join(dir, "missing.png")
	if _, err := LoadCubemap(paths); err == nil {
		t.Fatal("missing face must fail")
	}
}

func TestCubeFaceRoundTrip(t *testing.T) {
	for f := 0; f < 6; f++ {
		for _, uv := range [][2]Real{{0.5, 0.5}, {0.1, 0.8}, {0.9, 0.2}} {
			d := faceDir(f, uv[0], uv[1])
			gf, u, v := cubeFace(d)
			if gf != f || abs(u-uv[0]) > 1e-9 || abs(v-uv[1]) > 1e-9 {
				t.Fatalf("face %d uv %v -> face %d uv (%g,%g)", f, uv, gf, u, v)
			}
		}
	}
}

func abs(x Real) Real {
	if x < 0 {
		return -x
	}
	return x
}

func TestProceduralSky(t *testing.T) {
	sky := ProceduralSky(16)
	if sky.W != 16 || sky.H != 16 {
		t.Fatalf("size %dx%d", sky.W, sky.H)
	}
	up := sky.Sample(Vec3{0, 1, 0})
	if up.A != 1 || !(up.B > up.R) {
		t.Fatalf("zenith should be opaque blue: %+v", up)
	}
	for f, im := range sky.Faces {
		if im == nil || im.Bounds().Dx() != 16 {
			t.Fatalf("face %d not built", f)
		}
	}
	if d := ProceduralSky(0); d.W != SkySize || d.H != SkySize {
		t.Fatalf("default size %dx%d", d.W, d.H)
	}
	down := sky.Sample(Vec3{0, -1, 0})
	if !(down.B < up.B) {
		t.Fatalf("ground darker than sky: %+v vs %+v", down, up)
	}
}
