package shaderpixel

import "math"

// MarchStatus is the outcome of a raymarch.
type MarchStatus uint8

const (
	Hit       MarchStatus = iota // converged on a surface
	Miss                         // travelled past MaxDist
	Exhausted                    // step budget ran out without converging
)

func (s MarchStatus) String() string {
	switch s {
	case Hit:
		return "hit"
	case Miss:
		return "miss"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

// MarchResult is where the march stopped. T is always in [MinDist, MaxDist].
type MarchResult struct {
	Status MarchStatus
	T      Real
	Pos    Vec3
	Mat    Material
	Steps  int
}

// Hit reports whether the march converged on a surface.
func (m MarchResult) Hit() bool { return m.Status == Hit }

// Tolerance is the convergence threshold at travel distance t for material mat.
type Tolerance func(t Real, mat Material) Real

// ConstTolerance ignores distance and material.
func ConstTolerance(eps Real) Tolerance {
	return func(Real, Material) Real { return eps }
}

// ScaledTolerance grows linearly with travel distance, floored at min.
func ScaledTolerance(k, min Real) Tolerance {
	return func(t Real, _ Material) Real { return math.Max(min, k*t) }
}

// Marcher holds the loop parameters. The zero value is not usable; see NewMarcher.
type Marcher struct {
	MaxSteps  int
	Relax     Real // fraction of the sampled distance taken each step, in (0, 1]
	MinDist   Real
	MaxDist   Real
	Tolerance Tolerance
}

func NewMarcher(maxDist Real) Marcher {
	return Marcher{
		MaxSteps:  MaxSteps,
		Relax:     Relax,
		MaxDist:   maxDist,
		Tolerance: ScaledTolerance(1e-3, 1e-4),
	}
}

// March steps along r through f starting at MinDist.
func (m Marcher) March(r Ray, f Field) MarchResult {
	steps := m.MaxSteps
	if steps <= 0 {
		steps = MaxSteps
	}
	relax := m.Relax
	if relax <= 0 || relax > 1 {
		relax = Relax
	}
	tol := m.Tolerance
	if tol == nil {
		tol = ConstTolerance(1e-4)
	}
	start := math.Max(m.MinDist, 0)
	t := start
	if r.degenerate() || !(m.MaxDist > t) {
		return MarchResult{Status: Miss, T: start, Pos: r.At(start)}
	}
	var last Sample
	for i := 0; i < steps; i++ {
		p := r.At(t)
		last = f.Sample(p)
		if !isFinite(last.Dist) {
			// a broken field gives no usable position
			return MarchResult{Status: Miss, T: m.MaxDist, Pos: r.At(m.MaxDist), Steps: i + 1}
		}
		if last.Dist < tol(t, last.Mat) {
			return MarchResult{Status: Hit, T: t, Pos: p, Mat: last.Mat, Steps: i + 1}
		}
		t += relax * last.Dist
		if t > m.MaxDist {
			return MarchResult{Status: Miss, T: m.MaxDist, Pos: r.At(m.MaxDist), Steps: i + 1}
		}
		if t < start {
			// a negative sample can push us backwards; never report a distance before the start
			t = start
		}
	}
	return MarchResult{Status: Exhausted, T: t, Pos: r.At(t), Mat: last.Mat, Steps: steps}
}
