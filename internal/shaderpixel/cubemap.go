package shaderpixel

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// ErrCubemapSize is returned when cubemap faces do not all share one size.
var ErrCubemapSize = errors.New("cubemap images must have all the same size")

// Cube face order: +X, -X, +Y, -Y, +Z, -Z.
const (
	CubePosX = iota
	CubeNegX
	CubePosY
	CubeNegY
	CubePosZ
	CubeNegZ
)

// Cubemap is six square-ish faces sampled by direction.
type Cubemap struct {
	Faces [6]*image.NRGBA
	W, H  int
}

// LoadCubemap reads six face images in +X, -X, +Y, -Y, +Z, -Z order.
func LoadCubemap(paths [6]string) (*Cubemap, error) {
	var faces [6]image.Image
	for i, p := range paths {
		im, err := imaging.Open(p)
		if err != nil {
			return nil, fmt.Errorf("failed to open cubemap face %q: %w", p, err)
		}
		faces[i] = im
	}
	return NewCubemap(faces)
}

// NewCubemap wraps six decoded faces.
func NewCubemap(faces [6]image.Image) (*Cubemap, error) {
	cm := &Cubemap{}
	for i, im := range faces {
		if im == nil {
			return nil, fmt.Errorf("cubemap face %d is missing", i)
		}
		b := im.Bounds()
		if i == 0 {
			cm.W, cm.H = b.Dx(), b.Dy()
		} else if b.Dx() != cm.W || b.Dy() != cm.H {
			return nil, fmt.Errorf("%w: face %d is %dx%d, face 0 is %dx%d", ErrCubemapSize, i, b.Dx(), b.Dy(), cm.W, cm.H)
		}
		cm.Faces[i] = imaging.Clone(im)
	}
	if cm.W == 0 || cm.H == 0 {
		return nil, fmt.Errorf("%w: empty faces", ErrCubemapSize)
	}
	DebugLog("Created cubemap %dx%d", cm.W, cm.H)
	return cm, nil
}

// cubeFace maps a direction to a face and (u, v) in [0,1], v growing downwards.
func cubeFace(d Vec3) (face int, u, v Real) {
	ax, ay, az := math.Abs(d[0]), math.Abs(d[1]), math.Abs(d[2])
	var sc, tc, ma Real
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if d[0] > 0 {
			face, sc, tc = CubePosX, -d[2], -d[1]
		} else {
			face, sc, tc = CubeNegX, d[2], -d[1]
		}
	case ay >= az:
		ma = ay
		if d[1] > 0 {
			face, sc, tc = CubePosY, d[0], d[2]
		} else {
			face, sc, tc = CubeNegY, d[0], -d[2]
		}
	default:
		ma = az
		if d[2] > 0 {
			face, sc, tc = CubePosZ, d[0], -d[1]
		} else {
			face, sc, tc = CubeNegZ, -d[0], -d[1]
		}
	}
	if ma == 0 {
		return CubePosZ, 0.5, 0.5
	}
	return face, 0.5 * (sc/ma + 1), 0.5 * (tc/ma + 1)
}

// faceDir is the inverse of cubeFace.
func faceDir(face int, u, v Real) Vec3 {
	sc, tc := 2*u-1, 2*v-1
	switch face {
	case CubePosX:
		return norm(Vec3{1, -tc, -sc})
	case CubeNegX:
		return norm(Vec3{-1, -tc, sc})
	case CubePosY:
		return norm(Vec3{sc, 1, tc})
	case CubeNegY:
		return norm(Vec3{sc, -1, -tc})
	case CubePosZ:
		return norm(Vec3{sc, -tc, 1})
	default:
		return norm(Vec3{-sc, -tc, -1})
	}
}

// Sample returns the bilinear-filtered color seen in direction d.
func (c *Cubemap) Sample(d Vec3) Premul {
	face, u, v := cubeFace(d)
	im := c.Faces[face]
	x := clamp(u*Real(c.W)-0.5, 0, Real(c.W-1))
	y := clamp(v*Real(c.H)-0.5, 0, Real(c.H-1))
	x0, y0 := int(x), int(y)
	x1, y1 := x0+1, y0+1
	if x1 >= c.W {
		x1 = c.W - 1
	}
	if y1 >= c.H {
		y1 = c.H - 1
	}
	fx, fy := x-Real(x0), y-Real(y0)
	px := func(x, y int) Premul { return PremulFromColor(im.NRGBAAt(x, y)) }
	lerp := func(a, b Premul, t Real) Premul {
		return Premul{mix(a.R, b.R, t), mix(a.G, b.G, t), mix(a.B, b.B, t), mix(a.A, b.A, t)}
	}
	top := lerp(px(x0, y0), px(x1, y0), fx)
	bot := lerp(px(x0, y1), px(x1, y1), fx)
	return lerp(top, bot, fy)
}

// ProceduralSky builds a gradient sky with a soft sun, used when no faces are configured.
func ProceduralSky(size int) *Cubemap {
	if size <= 0 {
		size = SkySize
	}
	sun := norm(Vec3{0.4, 0.5, -0.6})
	zenith := Vec3{0.18, 0.32, 0.62}
	horizon := Vec3{0.72, 0.8, 0.9}
	ground := Vec3{0.22, 0.2, 0.18}
	// every face is built here at the same non-empty size, so nothing needs validating
	cm := &Cubemap{W: size, H: size}
	for f := range cm.Faces {
		im := imaging.New(size, size, color.NRGBA{A: 255})
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				d := faceDir(f, (Real(x)+0.5)/Real(size), (Real(y)+0.5)/Real(size))
				var c Vec3
				if d[1] >= 0 {
					c = vmix(horizon, zenith, math.Pow(d[1], 0.6))
				} else {
					c = vmix(horizon, ground, math.Pow(-d[1], 0.4))
				}
				s := math.Pow(math.Max(0, d.Dot(sun)), 256)
				c = c.Add(Vec3{s, s * 0.9, s * 0.7})
				im.SetNRGBA(x, y, Opaque(rgb(c)).NRGBA())
			}
		}
		cm.Faces[f] = im
	}
	DebugLog("Created procedural sky %dx%d", size, size)
	return cm
}
