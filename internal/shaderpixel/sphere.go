package shaderpixel

import (
	"fmt"
	"math"
)

// Sphere is a center and a positive radius.
type Sphere struct {
	Center Vec3
	Radius Real
}

func NewSphere(center Vec3, radius Real) (Sphere, error) {
	if !(radius > 0) || !isFinite(radius) {
		return Sphere{}, fmt.Errorf("sphere radius must be > 0, got %g", radius)
	}
	return Sphere{Center: center, Radius: radius}, nil
}

// Normal is the outward unit normal at p (p assumed on the surface).
func (s Sphere) Normal(p Vec3) Vec3 { return norm(p.Sub(s.Center)) }

// Dist is the signed distance from p to the sphere surface.
func (s Sphere) Dist(p Vec3) Real { return p.Sub(s.Center).Len() - s.Radius }

// IntersectSphere solves |o + t*d - c|^2 = r^2.
// Both roots are returned with near <= far; negative roots mean the origin is inside
// or the sphere is behind the ray. ok is false when the discriminant is negative.
func IntersectSphere(r Ray, s Sphere) (near, far Real, ok bool) {
	if r.degenerate() {
		return 0, 0, false
	}
	oc := r.Origin.Sub(s.Center)
	a := r.Dir.Dot(r.Dir)
	b := 2 * oc.Dot(r.Dir)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, 0, false
	}
	sqrtD := math.Sqrt(disc)
	// numerically stable form: avoid cancellation between -b and sqrtD
	var q Real
	if b < 0 {
		q = -0.5 * (b - sqrtD)
	} else {
		q = -0.5 * (b + sqrtD)
	}
	if q == 0 {
		// b == 0 and disc == 0: tangent at t = 0
		return 0, 0, true
	}
	t0 := q / a
	t1 := c / q
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return t0, t1, true
}

// firstForward picks the nearest non-negative root, or reports false.
func firstForward(near, far Real) (Real, bool) {
	if near >= 0 {
		return near, true
	}
	if far >= 0 {
		return far, true
	}
	return 0, false
}
