package shaderpixel

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func tinyFrame(name string) *Frame {
	f := NewFrame(4, 3)
	f.Name = name
	// a single bright pixel so files are not empty/black
	f.Set(1, 1, Opaque(RGB{1, 0.5, 0.25}))
	f.Set(2, 1, WithAlpha(RGB{0, 0, 1}, 0.5))
	return f
}

func TestFrameSetAt(t *testing.T) {
	f := tinyFrame("t")
	if got := f.At(2, 1); !got.ApproxEqual(WithAlpha(RGB{0, 0, 1}, 0.5), 1e-12) {
		t.Fatalf("At = %+v", got)
	}
	im := f.Image(1)
	if c := im.NRGBAAt(1, 1); c.R != 255 || c.G != 128 || c.A != 255 {
		t.Fatalf("pixel %+v", c)
	}
	back := FrameFromImage(im)
	if back.W != 4 || back.H != 3 {
		t.Fatalf("size %dx%d", back.W, back.H)
	}
	if a := back.At(2, 1).A; a < 0.49 || a > 0.51 {
		t.Fatalf("alpha lost: %g", a)
	}
}

func TestDownsample(t *testing.T) {
	f := NewFrame(8, 6)
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			f.Set(x, y, Opaque(RGB{0.5, 0.5, 0.5}))
		}
	}
	small := Downsample(f, 4, 3)
	if small.W != 4 || small.H != 3 {
		t.Fatalf("size %dx%d", small.W, small.H)
	}
	c := small.At(2, 1)
	if c.R < 0.45 || c.R > 0.55 || c.A < 0.99 {
		t.Fatalf("uniform gray changed: %+v", c)
	}
	if Downsample(f, 8, 6) != f {
		t.Fatal("same size must be a no-op")
	}
}

func TestSaveAnimatedGIF(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "out.gif")
	frames := []*Frame{tinyFrame("a"), tinyFrame("b")}
	if err := SaveAnimatedGIF(frames, tmp, 5, 0.8, RGB{}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(tmp); err != nil {
		t.Fatalf("gif not written: %v", err)
	}
	if err := SaveAnimatedGIF(nil, tmp, 5, 1, RGB{}); !errors.Is(err, ErrNoOutput) {
		t.Fatalf("empty gif: %v", err)
	}
}

func TestSavePNGSequence16(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "frame")
	names, err := SavePNGSequence16([]*Frame{tinyFrame("a")}, prefix, 0.8)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != prefix+"_0.png" {
		t.Fatalf("names %v", names)
	}
	// Only one frame => "_0.png"
	f, err := os.Open(prefix + "_0.png")
	if err != nil {
		t.Fatalf("png not written: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 4 || cfg.Height != 3 {
		t.Fatalf("decoded %dx%d", cfg.Width, cfg.Height)
	}
}

func TestSavePNGSequence16Padding(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "seq")
	frames := make([]*Frame, 11)
	for i := range frames {
		frames[i] = tinyFrame("x")
	}
	names, err := SavePNGSequence16(frames, prefix, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 11 || names[10] != prefix+"_10.png" {
		t.Fatalf("names %v", names)
	}
	for _, name := range []string{"_00.png", "_10.png"} {
		if _, err := os.Stat(prefix + name); err != nil {
			t.Fatalf("%s missing: %v", name, err)
		}
	}
}

func TestSavePNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "one.png")
	if err := SavePNG(tinyFrame("a"), out, 1); err != nil {
		t.Fatal(err)
	}
	if err := SavePNG(nil, out, 1); !errors.Is(err, ErrNoOutput) {
		t.Fatalf("nil frame: %v", err)
	}
}

func TestContactSheet(t *testing.T) {
	frames := []*Frame{tinyFrame("a"), tinyFrame("b"), tinyFrame("c")}
	sheet, err := ContactSheet(frames, []string{"first"}, 2, 40, 1)
	if err != nil {
		t.Fatal(err)
	}
	// 2 columns of 40, tiles 30 high plus the label strip, 2 rows
	if b := sheet.Bounds(); b.Dx() != 80 || b.Dy() != 2*(30+sheetLabelH) {
		t.Fatalf("sheet bounds %v", b)
	}
	if _, err := ContactSheet(nil, nil, 2, 40, 1); !errors.Is(err, ErrNoOutput) {
		t.Fatalf("empty sheet: %v", err)
	}
	out := filepath.Join(t.TempDir(), "sheet.png")
	if err := SaveContactSheet(frames, nil, 0, 0, 1, out); err != nil {
		t.Fatal(err)
	}
}
