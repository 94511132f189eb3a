package shaderpixel

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"github.com/nfnt/resize"
)

// ErrNoOutput is returned by writers given nothing to write.
var ErrNoOutput = errors.New("no frames to write")

// Downsample shrinks a supersampled frame with bilinear filtering.
func Downsample(f *Frame, w, h int) *Frame {
	if f.W == w && f.H == h {
		return f
	}
	small := resize.Resize(uint(w), uint(h), f.Image16(), resize.Bilinear)
	out := FrameFromImage(small)
	out.Time, out.Name = f.Time, f.Name
	return out
}

// SavePNG writes a single 8-bit PNG.
func SavePNG(f *Frame, path string, gamma Real) error {
	if f == nil {
		return ErrNoOutput
	}
	return writePNG(path, f.Image(gamma))
}

func writePNG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression} // still lossless
	if err := enc.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// SavePNGSequence16 writes one 16-bit PNG per frame, named prefix_<k>.png with k
// zero-padded to the width of the last index. It returns the written file names in order.
func SavePNGSequence16(frames []*Frame, prefix string, gamma Real) ([]string, error) {
	n := len(frames)
	if n == 0 {
		return nil, ErrNoOutput
	}

	toU16 := func(v Real) uint16 {
		if v <= 0 {
			return 0
		}
		if v > 1 {
			v = 1
		}
		if gamma != 1 {
			v = math.Pow(v, 1.0/gamma)
		}
		return uint16(math.Round(v * 65535.0))
	}

	width := 1
	if n > 1 {
		width = int(math.Log10(Real(n-1))) + 1
	}

	step := 1
	if n >= 100 {
		step = n / 100
	}

	names := make([]string, 0, n)
	for k, f := range frames {
		if Progress && k%step == 0 {
			fmt.Printf("[PNG]  %.2f%%\n", Real(k+1)*100/Real(n))
		}
		img := image.NewNRGBA64(image.Rect(0, 0, f.W, f.H))
		const pxBytes = 8 // 4 channels * 2 bytes/channel
		for y := 0; y < f.H; y++ {
			rowOff := y * img.Stride
			for x := 0; x < f.W; x++ {
				i := f.idx(x, y)
				r := toU16(f.Buf[i+ChR])
				g := toU16(f.Buf[i+ChG])
				b := toU16(f.Buf[i+ChB])
				a := uint16(math.Round(clamp01(f.Buf[i+ChA]) * 65535.0))

				p := rowOff + x*pxBytes
				// NRGBA64 stores big-endian uint16 per channel: R, G, B, A.
				img.Pix[p+0] = uint8(r >> 8)
				img.Pix[p+1] = uint8(r)
				img.Pix[p+2] = uint8(g >> 8)
				img.Pix[p+3] = uint8(g)
				img.Pix[p+4] = uint8(b >> 8)
				img.Pix[p+5] = uint8(b)
				img.Pix[p+6] = uint8(a >> 8)
				img.Pix[p+7] = uint8(a)
			}
		}
		full := fmt.Sprintf("%s_%0*d.png", prefix, width, k)
		if err := writePNG(full, img); err != nil {
			return names, fmt.Errorf("write %s: %w", full, err)
		}
		names = append(names, full)
	}
	return names, nil
}
