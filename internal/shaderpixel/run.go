package shaderpixel

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"
)

// sequence is the frames rendered for one art piece or gallery view.
type sequence struct {
	name   string
	frames []*Frame
}

func Run(ctx context.Context, cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return err
	}

	var sky *Cubemap
	if len(cfg.Cubemap) == 6 {
		var paths [6]string
		copy(paths[:], cfg.Cubemap)
		if sky, err = LoadCubemap(paths); err != nil {
			return err
		}
	} else {
		sky = ProceduralSky(cfg.SkySize)
	}

	start := time.Now()
	var seqs []sequence
	for i, a := range cfg.Arts {
		p, err := Lookup(a.Program)
		if err != nil {
			return err
		}
		s := sequence{name: fmt.Sprintf("%02d_%s", i, a.Program)}
		for k := 0; k < cfg.Frames; k++ {
			t := cfg.StartTime + Real(k)*cfg.FrameStep
			opts := RenderOptions{
				Width:       cfg.Width,
				Height:      cfg.Height,
				Supersample: cfg.Supersample,
				Time:        t,
				Distance:    a.Distance,
				Yaw:         (a.YawDeg + a.SpinDeg*t) * math.Pi / 180,
				Elevation:   a.ElevationDeg * math.Pi / 180,
			}
			if cfg.ArtSky {
				opts.Sky = sky
			}
			f, err := RenderArt(ctx, p, opts)
			if err != nil {
				return err
			}
			s.frames = append(s.frames, f)
		}
		seqs = append(seqs, s)
	}

	if cfg.Gallery.Enabled {
		g, err := buildGallery(cfg, sky)
		if err != nil {
			return err
		}
		for ci, cc := range cfg.Gallery.Cameras {
			cam := cc.Camera()
			s := sequence{name: fmt.Sprintf("gallery_%02d", ci)}
			for k := 0; k < cfg.Frames; k++ {
				t := cfg.StartTime + Real(k)*cfg.FrameStep
				f, err := g.Render(ctx, cam, t, cfg.Width*cfg.Supersample, cfg.Height*cfg.Supersample)
				if err != nil {
					return err
				}
				if cfg.Supersample > 1 {
					f = Downsample(f, cfg.Width, cfg.Height)
				}
				s.frames = append(s.frames, f)
			}
			seqs = append(seqs, s)
		}
	}
	DebugLog("Rendered %d sequences x %d frames in %s", len(seqs), cfg.Frames, time.Since(start))

	if Debug {
		marchStats()
	}

	written, err := writeOutputs(cfg, seqs)
	if err != nil {
		return err
	}

	up := cfg.Upload.FromEnv()
	if up.Enabled() {
		u, err := NewUploader(up)
		if err != nil {
			return err
		}
		if err := u.UploadAll(ctx, written); err != nil {
			return err
		}
	}
	return nil
}

func buildGallery(cfg *Config, sky *Cubemap) (*Gallery, error) {
	arts, err := DefaultArts()
	if err != nil {
		return nil, err
	}
	g := NewGallery(arts, sky)
	g.ShowSky = !cfg.Gallery.HideSky
	if cfg.Gallery.Texture != "" {
		tex, err := LoadTexture(cfg.Gallery.Texture)
		if err != nil {
			return nil, err
		}
		g.Texture, g.TextureWeight = tex, clamp01(cfg.Gallery.TextureWeight)
	}
	if cfg.Gallery.Model != "" {
		mesh, m, err := LoadModel(cfg.Gallery.Model)
		if err != nil {
			return nil, err
		}
		pos := DefaultModelPos
		if cfg.Gallery.ModelPos != nil {
			pos = *cfg.Gallery.ModelPos
		}
		g.PlaceModel(mesh, m, pos)
	}
	return g, nil
}

// writeOutputs saves every sequence and returns the written paths.
func writeOutputs(cfg *Config, seqs []sequence) ([]string, error) {
	var written []string
	firsts := make([]*Frame, 0, len(seqs))
	labels := make([]string, 0, len(seqs))
	for _, s := range seqs {
		base := filepath.Join(cfg.OutDir, s.name)
		switch {
		case PNG:
			names, err := SavePNGSequence16(s.frames, base, cfg.Gamma)
			if err != nil {
				return nil, err
			}
			DebugLog("Saved PNG sequence with prefix: %s", base)
			written = append(written, names...)
		case GIF || len(s.frames) > 1:
			out := base + ".gif"
			if err := SaveAnimatedGIF(s.frames, out, cfg.GIFDelay, cfg.Gamma, cfg.Background); err != nil {
				return nil, err
			}
			DebugLog("Saved animated GIF: %s", out)
			written = append(written, out)
		default:
			out := base + ".png"
			if err := SavePNG(s.frames[0], out, cfg.Gamma); err != nil {
				return nil, err
			}
			DebugLog("Saved PNG: %s", out)
			written = append(written, out)
		}
		firsts = append(firsts, s.frames[0])
		labels = append(labels, s.name)
	}
	if cfg.Sheet.Out != "" && len(firsts) > 0 {
		out := filepath.Join(cfg.OutDir, cfg.Sheet.Out)
		if err := SaveContactSheet(firsts, labels, cfg.Sheet.Cols, cfg.Sheet.Tile, cfg.Gamma, out); err != nil {
			return nil, err
		}
		written = append(written, out)
	}
	return written, nil
}
