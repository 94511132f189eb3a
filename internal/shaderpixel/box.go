package shaderpixel

import (
	"math"
	"sort"
)

// AABB is an axis-aligned box, Min <= Max componentwise.
type AABB struct {
	Min, Max Vec3
}

// UnitContainer is the object-space volume every 3D program renders into.
var UnitContainer = AABB{Min: Vec3{-1, -1, -1}, Max: Vec3{1, 1, 1}}

// Contains reports whether p lies inside the box (inclusive).
func (b AABB) Contains(p Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// Face identifies one of the six box faces.
type Face uint8

const (
	FaceNone Face = iota
	FaceNegX
	FacePosX
	FaceNegY
	FacePosY
	FaceNegZ
	FacePosZ
)

func (f Face) String() string {
	switch f {
	case FaceNegX:
		return "-x"
	case FacePosX:
		return "+x"
	case FaceNegY:
		return "-y"
	case FacePosY:
		return "+y"
	case FaceNegZ:
		return "-z"
	case FacePosZ:
		return "+z"
	}
	return "none"
}

// Normal returns the outward normal of the face.
func (f Face) Normal() Vec3 {
	switch f {
	case FaceNegX:
		return Vec3{-1, 0, 0}
	case FacePosX:
		return Vec3{1, 0, 0}
	case FaceNegY:
		return Vec3{0, -1, 0}
	case FacePosY:
		return Vec3{0, 1, 0}
	case FaceNegZ:
		return Vec3{0, 0, -1}
	case FacePosZ:
		return Vec3{0, 0, 1}
	}
	return Vec3{}
}

// Crossing is one place where a ray crosses a box face.
type Crossing struct {
	T    Real
	Face Face
}

// BoxHit holds up to two crossings ordered by T. N is the number of valid entries.
type BoxHit struct {
	C [2]Crossing
	N int
}

func (h BoxHit) Near() Crossing { return h.C[0] }

// Far returns the second crossing, or the first one if only one was found.
func (h BoxHit) Far() Crossing {
	if h.N < 2 {
		return h.C[0]
	}
	return h.C[1]
}

// Forward returns the first crossing with T >= 0.
func (h BoxHit) Forward() (Crossing, bool) {
	for i := 0; i < h.N; i++ {
		if h.C[i].T >= 0 {
			return h.C[i], true
		}
	}
	return Crossing{}, false
}

// IntersectBox tests the six face planes one by one. A crossing counts when the
// point on the plane is inside the other two axes' bounds within BoxEpsilon.
// Axes the ray is parallel to are skipped.
func IntersectBox(r Ray, b AABB) (BoxHit, bool) {
	var found [6]Crossing
	n := 0
	add := func(t Real, f Face) {
		for i := 0; i < n; i++ {
			// shared edge or corner: the same crossing reached through two planes
			if math.Abs(found[i].T-t) < BoxEpsilon {
				return
			}
		}
		found[n] = Crossing{T: t, Face: f}
		n++
	}
	for axis := 0; axis < 3; axis++ {
		d := r.Dir[axis]
		if math.Abs(d) < epsDist {
			continue
		}
		u, v := (axis+1)%3, (axis+2)%3
		for side := 0; side < 2; side++ {
			plane := b.Min[axis]
			if side == 1 {
				plane = b.Max[axis]
			}
			t := (plane - r.Origin[axis]) / d
			p := r.At(t)
			if p[u] < b.Min[u]-BoxEpsilon || p[u] > b.Max[u]+BoxEpsilon ||
				p[v] < b.Min[v]-BoxEpsilon || p[v] > b.Max[v]+BoxEpsilon {
				continue
			}
			add(t, Face(1+axis*2+side))
		}
	}
	if n == 0 {
		return BoxHit{}, false
	}
	sort.Slice(found[:n], func(i, j int) bool { return found[i].T < found[j].T })
	var h BoxHit
	h.N = n
	if h.N > 2 {
		// more than two distinct crossings can only come from epsilon slack at a corner;
		// keep the outermost pair
		found[1] = found[n-1]
		h.N = 2
	}
	copy(h.C[:], found[:h.N])
	return h, true
}

type rayRecips struct {
	invX, invY, invZ Real
	parX, parY, parZ bool // parallel flags (|D| < eps)
}

func newRayRecips(d Vec3) rayRecips {
	const eps = 1e-12
	rr := rayRecips{
		parX: math.Abs(d[0]) < eps,
		parY: math.Abs(d[1]) < eps,
		parZ: math.Abs(d[2]) < eps,
	}
	if !rr.parX {
		rr.invX = 1 / d[0]
	}
	if !rr.parY {
		rr.invY = 1 / d[1]
	}
	if !rr.parZ {
		rr.invZ = 1 / d[2]
	}
	return rr
}

// RayBox is the slab test: entry and exit distances of the ray's line through the box.
// ok is false when the box is missed or lies entirely behind the origin.
func RayBox(r Ray, b AABB) (ok bool, tNear, tFar Real) {
	return rayAABB(r.Origin, b.Min, b.Max, newRayRecips(r.Dir))
}

func rayAABB(O, minP, maxP Vec3, rr rayRecips) (bool, Real, Real) {
	tmin, tmax := -1e300, 1e300
	slab := func(o, lo, hi, inv Real, par bool) bool {
		if par {
			return o >= lo && o <= hi
		}
		t1 := (lo - o) * inv
		t2 := (hi - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		return true
	}
	if !slab(O[0], minP[0], maxP[0], rr.invX, rr.parX) ||
		!slab(O[1], minP[1], maxP[1], rr.invY, rr.parY) ||
		!slab(O[2], minP[2], maxP[2], rr.invZ, rr.parZ) {
		return false, 0, 0
	}
	if tmax < 0 || tmin > tmax {
		return false, 0, 0
	}
	return true, tmin, tmax
}
