package shaderpixel

import (
	"image"
	"image/color"
	"math"
)

// Frame is a rendered picture: W*H pixels of straight-alpha RGBA floats, row 0 on top.
type Frame struct {
	W, H int
	Buf  []Real
	Time Real   // scene time the frame was rendered at
	Name string // program or view name, used for labels
}

func NewFrame(w, h int) *Frame {
	return &Frame{W: w, H: h, Buf: make([]Real, w*h*4)}
}

func (f *Frame) idx(x, y int) int { return (y*f.W + x) * 4 }

// Set stores a premultiplied color.
func (f *Frame) Set(x, y int, p Premul) {
	c, a := p.Straight()
	i := f.idx(x, y)
	f.Buf[i+ChR] = c.R
	f.Buf[i+ChG] = c.G
	f.Buf[i+ChB] = c.B
	f.Buf[i+ChA] = a
}

// At returns the premultiplied color of a pixel.
func (f *Frame) At(x, y int) Premul {
	i := f.idx(x, y)
	a := f.Buf[i+ChA]
	return Premul{f.Buf[i+ChR] * a, f.Buf[i+ChG] * a, f.Buf[i+ChB] * a, a}
}

// Image quantizes the frame to 8 bits per channel.
func (f *Frame) Image(gamma Real) *image.NRGBA {
	im := image.NewNRGBA(image.Rect(0, 0, f.W, f.H))
	toByte := func(v Real) uint8 {
		v = clamp01(v)
		if gamma != 1 && gamma > 0 {
			v = math.Pow(v, 1.0/gamma)
		}
		return uint8(math.Round(v * 255))
	}
	for y := 0; y < f.H; y++ {
		rowOff := y * im.Stride
		for x := 0; x < f.W; x++ {
			i := f.idx(x, y)
			p := rowOff + x*4
			im.Pix[p+0] = toByte(f.Buf[i+ChR])
			im.Pix[p+1] = toByte(f.Buf[i+ChG])
			im.Pix[p+2] = toByte(f.Buf[i+ChB])
			im.Pix[p+3] = uint8(math.Round(clamp01(f.Buf[i+ChA]) * 255))
		}
	}
	return im
}

// Image16 converts to 16 bits per channel without gamma.
func (f *Frame) Image16() *image.NRGBA64 {
	im := image.NewNRGBA64(image.Rect(0, 0, f.W, f.H))
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			i := f.idx(x, y)
			q := func(v Real) uint16 { return uint16(math.Round(clamp01(v) * 0xffff)) }
			im.SetNRGBA64(x, y, color.NRGBA64{R: q(f.Buf[i+ChR]), G: q(f.Buf[i+ChG]), B: q(f.Buf[i+ChB]), A: q(f.Buf[i+ChA])})
		}
	}
	return im
}

// FrameFromImage converts any image into a frame.
func FrameFromImage(im image.Image) *Frame {
	b := im.Bounds()
	f := NewFrame(b.Dx(), b.Dy())
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			c := color.NRGBA64Model.Convert(im.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
			i := f.idx(x, y)
			f.Buf[i+ChR] = Real(c.R) / 0xffff
			f.Buf[i+ChG] = Real(c.G) / 0xffff
			f.Buf[i+ChB] = Real(c.B) / 0xffff
			f.Buf[i+ChA] = Real(c.A) / 0xffff
		}
	}
	return f
}

// Flatten composites the frame over an opaque background color.
func (f *Frame) Flatten(bg RGB) {
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			f.Set(x, y, Over(f.At(x, y), Opaque(bg)))
		}
	}
}
