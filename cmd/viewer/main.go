package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/joho/godotenv"

	"github.com/lukaszgryglicki/shaderpixel/internal/shaderpixel"
)

type viewer struct {
	g        *shaderpixel.Gallery
	cam      *shaderpixel.Camera
	carousel *shaderpixel.Carousel
	fbImg    *ebiten.Image
	w, h     int
	start    time.Time
	last     time.Time
	texOn    bool
	looking  bool
	mx, my   int
}

func (v *viewer) input() shaderpixel.Input {
	in := shaderpixel.Input{
		Forward: ebiten.IsKeyPressed(ebiten.KeyW),
		Back:    ebiten.IsKeyPressed(ebiten.KeyS),
		Left:    ebiten.IsKeyPressed(ebiten.KeyA),
		Right:   ebiten.IsKeyPressed(ebiten.KeyD),
		Up:      ebiten.IsKeyPressed(ebiten.KeySpace),
		Down:    ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight),
	}
	_, wy := ebiten.Wheel()
	in.Scroll = wy
	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		if v.looking {
			in.LookDX, in.LookDY = float64(x-v.mx), float64(y-v.my)
		}
		v.looking = true
	} else {
		v.looking = false
	}
	v.mx, v.my = x, y
	return in
}

func (v *viewer) Update() error {
	now := time.Now()
	dt := now.Sub(v.last).Seconds()
	v.last = now

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyControlLeft) {
		v.cam.FlyMode = !v.cam.FlyMode
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		v.g.ShowSky = !v.g.ShowSky
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		v.texOn = !v.texOn
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		v.cam.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) && v.carousel != nil {
		tex, path, err := v.carousel.Next()
		if err != nil {
			shaderpixel.Logger().Warn("texture", "path", path, "err", err)
		} else {
			v.g.Texture = tex
			v.texOn = true
		}
	}
	v.g.FadeTexture(v.texOn && v.g.Texture != nil, dt)
	v.cam.Move(v.input(), dt)
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	t := time.Since(v.start).Seconds()
	im, err := v.g.RenderImage(context.Background(), v.cam, t, v.w, v.h)
	if err != nil {
		shaderpixel.Logger().Error("render", "err", err)
		return
	}
	if v.fbImg == nil {
		v.fbImg = ebiten.NewImage(v.w, v.h)
	}
	v.fbImg.WritePixels(im.Pix)
	screen.DrawImage(v.fbImg, nil)
	ebiten.SetWindowTitle(fmt.Sprintf("shaderpixel %.1f fps", ebiten.ActualFPS()))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.w, v.h
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func main() {
	_ = godotenv.Load()
	shaderpixel.Debug = os.Getenv("DEBUG") != ""
	shaderpixel.Progress = false
	level := slog.LevelInfo
	if shaderpixel.Debug {
		level = slog.LevelDebug
	}
	shaderpixel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	arts, err := shaderpixel.DefaultArts()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	v := &viewer{
		g:     shaderpixel.NewGallery(arts, nil),
		cam:   shaderpixel.NewCamera(),
		w:     envInt("VIEW_W", 400),
		h:     envInt("VIEW_H", 300),
		start: time.Now(),
		last:  time.Now(),
	}
	if dir := os.Getenv("TEXTURES"); dir != "" {
		if v.carousel, err = shaderpixel.NewCarousel(dir); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
	if obj := os.Getenv("MODEL"); obj != "" {
		mesh, m, err := shaderpixel.LoadModel(obj)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		v.g.PlaceModel(mesh, m, shaderpixel.DefaultModelPos)
	}

	scale := envInt("VIEW_SCALE", 2)
	ebiten.SetWindowTitle("shaderpixel")
	ebiten.SetWindowSize(v.w*scale, v.h*scale)
	ebiten.SetTPS(30)
	if err := ebiten.RunGame(v); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
