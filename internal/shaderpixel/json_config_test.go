package shaderpixel

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseConfig([]byte(`{"arts":[{"program":"solar"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != Width || cfg.Height != Height || cfg.Supersample != Supersample {
		t.Fatalf("size defaults: %+v", cfg)
	}
	if cfg.Frames != Frames || cfg.FrameStep != FrameStep || cfg.GIFDelay != GIFDelay || cfg.Gamma != Gamma {
		t.Fatalf("output defaults: %+v", cfg)
	}
	if cfg.OutDir != "out" || cfg.SkySize != SkySize {
		t.Fatalf("dir/sky defaults: %+v", cfg)
	}
}

func TestParseConfigValidation(t *testing.T) {
	if _, err := parseConfig([]byte(`{}`)); err == nil {
		t.Fatal("empty config accepted")
	}
	if _, err := parseConfig([]byte(`{"arts":[{"program":"teapot"}]}`)); !errors.Is(err, ErrUnknownProgram) {
		t.Fatalf("unknown program: %v", err)
	}
	if _, err := parseConfig([]byte(`{"arts":[{"program":"solar"}],"cubemap":["a","b"]}`)); err == nil {
		t.Fatal("cubemap with 2 faces accepted")
	}
	if _, err := parseConfig([]byte(`{"arts":`)); err == nil {
		t.Fatal("broken json accepted")
	}
	cfg, err := parseConfig([]byte(`{"gallery":{"enabled":true}}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Gallery.Cameras) != 1 {
		t.Fatalf("gallery gets a default camera, got %d", len(cfg.Gallery.Cameras))
	}
}

func TestCameraCfg(t *testing.T) {
	cfg, err := parseConfig([]byte(`{"gallery":{"enabled":true,"cameras":[{"position":[1,2,3],"yawDeg":90,"fly":true},{}]}}`))
	if err != nil {
		t.Fatal(err)
	}
	c := cfg.Gallery.Cameras[0].Camera()
	if c.Position != (Vec3{1, 2, 3}) || math.Abs(c.Yaw-math.Pi/2) > 1e-12 || !c.FlyMode {
		t.Fatalf("camera %+v", c)
	}
	if c := cfg.Gallery.Cameras[1].Camera(); c.Position != StartPosition {
		t.Fatalf("default camera position %v", c.Position)
	}
}

func TestLoadConfigFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(p, []byte(`{"width":32,"height":24,"arts":[{"program":"mandelbrot"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 32 || cfg.Height != 24 || cfg.Arts[0].Program != "mandelbrot" {
		t.Fatalf("loaded %+v", cfg)
	}
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("missing file accepted")
	}
}
