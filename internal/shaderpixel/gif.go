package shaderpixel

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
)

// SaveAnimatedGIF writes one GIF frame per rendered frame, flattened over bg
// since GIF has no partial transparency.
// delay is in 100ths of a second (e.g., 4 => 25 fps).
func SaveAnimatedGIF(frames []*Frame, path string, delay int, gamma Real, bg RGB) error {
	n := len(frames)
	if n == 0 {
		return ErrNoOutput
	}
	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, n),
		Delay:     make([]int, 0, n),
		LoopCount: 0,
	}
	for k, f := range frames {
		if Progress && k%imax(1, n/100) == 0 { // ~1% steps
			fmt.Printf("[GIF] %.2f%%\n", Real(k+1)*100/Real(n))
		}
		flat := &Frame{W: f.W, H: f.H, Buf: append([]Real(nil), f.Buf...)}
		flat.Flatten(bg)
		rgba := flat.Image(gamma)

		// quantize to paletted for GIF
		pimg := image.NewPaletted(rgba.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), rgba, image.Point{})

		out.Image = append(out.Image, pimg)
		out.Delay = append(out.Delay, delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, out)
}
