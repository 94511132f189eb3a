package shaderpixel

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// ArtCfg asks for a direct render of one program.
type ArtCfg struct {
	Program      string `json:"program"`
	Distance     Real   `json:"distance,omitempty"`
	YawDeg       Real   `json:"yawDeg,omitempty"`
	ElevationDeg Real   `json:"elevationDeg,omitempty"`
	SpinDeg      Real   `json:"spinDeg,omitempty"` // orbit degrees per second of scene time
}

// CameraCfg positions the gallery camera.
type CameraCfg struct {
	Position *Vec3 `json:"position,omitempty"`
	YawDeg   Real  `json:"yawDeg,omitempty"`
	PitchDeg Real  `json:"pitchDeg,omitempty"`
	Fly      bool  `json:"fly,omitempty"`
}

func (c CameraCfg) Camera() *Camera {
	cam := NewCamera()
	if c.Position != nil {
		cam.Position = *c.Position
	}
	cam.Yaw = c.YawDeg * math.Pi / 180
	cam.Pitch = c.PitchDeg * math.Pi / 180
	cam.FlyMode = c.Fly
	return cam
}

// GalleryCfg enables rasterized views of the whole room.
type GalleryCfg struct {
	Enabled       bool        `json:"enabled"`
	Cameras       []CameraCfg `json:"cameras,omitempty"`
	Model         string      `json:"model,omitempty"`         // OBJ file shown in the room
	ModelPos      *Vec3       `json:"modelPos,omitempty"`      // where the normalized model stands
	Texture       string      `json:"texture,omitempty"`       // image blended onto the room mesh
	TextureWeight Real        `json:"textureWeight,omitempty"` // 0..1
	HideSky       bool        `json:"hideSky,omitempty"`
}

// SheetCfg writes a contact sheet of the first frame of every sequence.
type SheetCfg struct {
	Out  string `json:"out,omitempty"`
	Cols int    `json:"cols,omitempty"`
	Tile int    `json:"tile,omitempty"`
}

type Config struct {
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	Supersample int        `json:"supersample,omitempty"`
	Frames      int        `json:"frames,omitempty"`
	FrameStep   Real       `json:"frameStep,omitempty"` // seconds of scene time between frames
	StartTime   Real       `json:"startTime,omitempty"`
	OutDir      string     `json:"outDir,omitempty"`
	GIFDelay    int        `json:"gifDelay,omitempty"`
	Gamma       Real       `json:"gamma,omitempty"`
	Background  RGB        `json:"background,omitempty"` // GIF flattening color
	Cubemap     []string   `json:"cubemap,omitempty"`    // +X, -X, +Y, -Y, +Z, -Z
	ArtSky      bool       `json:"artSky,omitempty"`     // draw the sky behind direct renders
	SkySize     int        `json:"skySize,omitempty"`
	Arts        []ArtCfg   `json:"arts,omitempty"`
	Gallery     GalleryCfg `json:"gallery,omitempty"`
	Sheet       SheetCfg   `json:"sheet,omitempty"`
	Upload      UploadCfg  `json:"upload,omitempty"`
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	// Defaults / validation
	if cfg.Width <= 0 {
		cfg.Width = Width
	}
	if cfg.Height <= 0 {
		cfg.Height = Height
	}
	if cfg.Supersample <= 0 {
		cfg.Supersample = Supersample
	}
	if cfg.Frames <= 0 {
		cfg.Frames = Frames
	}
	if cfg.FrameStep <= 0 {
		cfg.FrameStep = FrameStep
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "out"
	}
	if cfg.GIFDelay <= 0 {
		cfg.GIFDelay = GIFDelay
	}
	if cfg.Gamma <= 0 {
		cfg.Gamma = Gamma
	}
	if cfg.SkySize <= 0 {
		cfg.SkySize = SkySize
	}
	if n := len(cfg.Cubemap); n != 0 && n != 6 {
		return nil, fmt.Errorf("cubemap needs 6 faces, got %d", n)
	}
	for i, a := range cfg.Arts {
		if _, err := Lookup(a.Program); err != nil {
			return nil, fmt.Errorf("arts[%d]: %w", i, err)
		}
	}
	if cfg.Gallery.Enabled && len(cfg.Gallery.Cameras) == 0 {
		cfg.Gallery.Cameras = []CameraCfg{{}}
	}
	if len(cfg.Arts) == 0 && !cfg.Gallery.Enabled {
		return nil, fmt.Errorf("config renders nothing: no arts and gallery disabled")
	}
	DebugLog("Loaded config: size=(%d, %d)x%d, frames=%d, arts=%d, gallery=%v, gamma=%f", cfg.Width, cfg.Height, cfg.Supersample, cfg.Frames, len(cfg.Arts), cfg.Gallery.Enabled, cfg.Gamma)
	return &cfg, nil
}
