package shaderpixel

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
)

// ErrUnknownProgram is returned by Lookup for names nobody registered.
var ErrUnknownProgram = errors.New("unknown program")

// FragmentInput is everything a fragment program receives from the host and the vertex stage.
type FragmentInput struct {
	Pos           Vec3    // fragment position on the container surface, object space
	Cam           Vec3    // camera position, object space
	Dir           Vec3    // unit view ray, object space
	ContainerDist Real    // camera to container surface, interpolated from the vertex stage
	UV            [2]Real // surface coordinates for flat (2D) programs, in [0,1]
	Resolution    [2]Real
	Time          Real // seconds
}

// Ray returns the object-space view ray.
func (in FragmentInput) Ray() Ray { return NewRay(in.Cam, in.Dir) }

// Program is one fragment program. Shade must be a pure function of its input:
// it is called concurrently for many pixels.
type Program interface {
	Name() string
	Is3D() bool
	Shade(in FragmentInput) Premul
}

// Factory builds a fresh program instance.
type Factory func() Program

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes a program available by name. Registering the same name twice panics.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[name]; dup {
		panic("shaderpixel: program registered twice: " + name)
	}
	registry[name] = f
}

// Lookup builds the program registered under name.
func Lookup(name string) (Program, error) {
	registryMu.RLock()
	f, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownProgram, name, Names())
	}
	return f(), nil
}

// Names lists the registered programs in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// containerSpan is the part of the view ray inside the container: from the camera (if inside)
// or the entry face, to the exit face.
func containerSpan(r Ray) (tStart, tEnd Real, ok bool) {
	hit, ok := IntersectBox(r, UnitContainer)
	if !ok {
		return 0, 0, false
	}
	far := hit.Far().T
	if far < 0 {
		return 0, 0, false
	}
	if hit.N < 2 {
		// grazing an edge or corner from outside
		if UnitContainer.Contains(r.Origin) {
			return 0, far, true
		}
		return 0, 0, false
	}
	near := hit.Near().T
	if near < 0 {
		near = 0
	}
	return near, far, true
}

// marchSpan is the part of the view ray a container program marches. Outside the
// container the march starts at the vertex stage's ContainerDist; inside it starts at the
// camera. The exit face bounds it; a start past the exit is a miss for the marcher.
func marchSpan(in FragmentInput, r Ray) (tStart, tEnd Real, ok bool) {
	_, tEnd, ok = containerSpan(r)
	if !ok {
		return 0, 0, false
	}
	if UnitContainer.Contains(in.Cam) {
		return 0, tEnd, true
	}
	return math.Max(in.ContainerDist, 0), tEnd, true
}

// cosPalette is a cosine color ramp: a + b*cos(2π(c*t + d)).
func cosPalette(t Real, a, b, c, d Vec3) RGB {
	tau := 2 * math.Pi
	return RGB{
		a[0] + b[0]*math.Cos(tau*(c[0]*t+d[0])),
		a[1] + b[1]*math.Cos(tau*(c[1]*t+d[1])),
		a[2] + b[2]*math.Cos(tau*(c[2]*t+d[2])),
	}
}
