package shaderpixel

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
)

// RenderOptions frames a single art piece.
type RenderOptions struct {
	Width, Height int
	Supersample   int
	Time          Real
	Distance      Real // orbit radius around the container
	Yaw           Real // radians
	Elevation     Real // radians
	Sky           *Cubemap
}

func (o *RenderOptions) defaults() {
	if o.Width <= 0 {
		o.Width = Width
	}
	if o.Height <= 0 {
		o.Height = Height
	}
	if o.Supersample <= 0 {
		o.Supersample = Supersample
	}
	if o.Distance <= 0 {
		o.Distance = 3.2
	}
}

// pixelRays turns pixel centers into world-space view rays for a camera.
type pixelRays struct {
	origin  Vec3
	camToW  mgl64.Mat4
	tanHalf Real
	aspect  Real
	invW    Real
	invH    Real
}

func newPixelRays(cam *Camera, w, h int) pixelRays {
	return pixelRays{
		origin:  cam.Position,
		camToW:  cam.View().Inv(),
		tanHalf: math.Tan(mgl64.DegToRad(FovYDeg) / 2),
		aspect:  Real(w) / Real(h),
		invW:    1 / Real(w),
		invH:    1 / Real(h),
	}
}

func (pr pixelRays) at(x, y int) Ray {
	dx := (2*(Real(x)+0.5)*pr.invW - 1) * pr.tanHalf * pr.aspect
	dy := (1 - 2*(Real(y)+0.5)*pr.invH) * pr.tanHalf
	return NewRay(pr.origin, mulDir(pr.camToW, Vec3{dx, dy, -1}))
}

// RenderArt renders one program directly per pixel. 3D programs are seen through an
// orbit camera looking at the container at the origin; 2D programs fill the frame.
// Rows are spread over all CPUs; ctx is checked between rows.
func RenderArt(ctx context.Context, p Program, opts RenderOptions) (*Frame, error) {
	opts.defaults()
	w, h := opts.Width*opts.Supersample, opts.Height*opts.Supersample
	f := NewFrame(w, h)
	f.Time, f.Name = opts.Time, p.Name()

	var shade func(x, y int) Premul
	if p.Is3D() {
		cam := OrbitCamera(Vec3{}, opts.Distance, opts.Yaw, opts.Elevation)
		rays := newPixelRays(cam, w, h)
		res := [2]Real{Real(w), Real(h)}
		shade = func(x, y int) Premul {
			r := rays.at(x, y)
			c := Transparent
			if ok, tNear, _ := RayBox(r, UnitContainer); ok {
				entry := r.At(math.Max(tNear, 0))
				c = p.Shade(FragmentInput{
					Pos:           entry,
					Cam:           r.Origin,
					Dir:           r.Dir,
					ContainerDist: math.Max(tNear, 0),
					Resolution:    res,
					Time:          opts.Time,
				})
			}
			if opts.Sky != nil {
				c = Over(c, opts.Sky.Sample(r.Dir))
			}
			return c
		}
	} else {
		res := [2]Real{Real(w), Real(h)}
		shade = func(x, y int) Premul {
			uv := [2]Real{(Real(x) + 0.5) / Real(w), 1 - (Real(y)+0.5)/Real(h)}
			return p.Shade(FragmentInput{UV: uv, Resolution: res, Time: opts.Time})
		}
	}

	if err := forEachRow(ctx, h, func(y int) {
		for x := 0; x < w; x++ {
			f.Set(x, y, shade(x, y))
		}
	}); err != nil {
		return nil, fmt.Errorf("render %s: %w", p.Name(), err)
	}
	DebugLog("Rendered %s at t=%.3f: %dx%d", p.Name(), opts.Time, w, h)
	if opts.Supersample > 1 {
		f = Downsample(f, opts.Width, opts.Height)
	}
	return f, nil
}

// forEachRow runs fn for every row in [0, rows) on runtime.NumCPU() workers.
func forEachRow(ctx context.Context, rows int, fn func(y int)) error {
	if rows <= 0 {
		return nil
	}
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > rows {
		workers = rows
	}

	var next, done int64
	nextPrint := int64(1)
	if rows >= 100 {
		nextPrint = int64(rows / 100) // ~1%
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				if ctx.Err() != nil {
					return
				}
				y := int(atomic.AddInt64(&next, 1) - 1)
				if y >= rows {
					return
				}
				fn(y)
				n := atomic.AddInt64(&done, 1)
				if Progress && n%nextPrint == 0 {
					fmt.Printf("[PROGRESS] %.2f%%\n", Real(n)*100/Real(rows))
				}
			}
		}()
	}
	wg.Wait()
	return ctx.Err()
}
