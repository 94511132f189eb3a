package shaderpixel

import "math"

// Material tags used by the built-in scenes. Zero means "nothing".
type Material = Real

const (
	MatNone Material = iota
	MatTerrain
	MatWater
	MatDecoration
	MatFractal
	MatContainer
)

// Sample is a signed distance to the nearest surface plus the material tag of that surface.
type Sample struct {
	Dist Real
	Mat  Material
}

// Union keeps the closer sample. On an exact tie the first argument wins.
func Union(a, b Sample) Sample {
	if a.Dist < b.Dist {
		return a
	}
	if b.Dist < a.Dist {
		return b
	}
	return a
}

// UnionAll folds Union over samples left to right.
func UnionAll(samples ...Sample) Sample {
	if len(samples) == 0 {
		return Sample{Dist: math.Inf(1)}
	}
	acc := samples[0]
	for _, s := range samples[1:] {
		acc = Union(acc, s)
	}
	return acc
}

// Intersect keeps the farther sample (CSG intersection); the material comes from a.
func Intersect(a, b Sample) Sample {
	return Sample{Dist: math.Max(a.Dist, b.Dist), Mat: a.Mat}
}

// Subtract removes b from a.
func Subtract(a, b Sample) Sample {
	return Sample{Dist: math.Max(a.Dist, -b.Dist), Mat: a.Mat}
}

// Field maps a point to the nearest surface.
type Field interface {
	Sample(p Vec3) Sample
}

// FieldFunc adapts a function into a Field.
type FieldFunc func(Vec3) Sample

func (f FieldFunc) Sample(p Vec3) Sample { return f(p) }

func sdSphere(p Vec3, r Real) Real { return p.Len() - r }

// sdBox is the exact distance to a box of half extents b centered at the origin.
func sdBox(p, b Vec3) Real {
	q := vabs(p).Sub(b)
	return vmaxs(q, 0).Len() + math.Min(maxComp(q), 0)
}

// sdPlaneY is the distance to the horizontal plane y = h.
func sdPlaneY(p Vec3, h Real) Real { return p[1] - h }

// sdHeightField is a bound, not an exact distance: the vertical gap to the surface y = height(x, z).
// Callers compensate with Marcher.Relax.
func sdHeightField(p Vec3, height func(x, z Real) Real) Real {
	return p[1] - height(p[0], p[2])
}

// Normal estimates the field gradient with central differences at the fixed step eps.
func Normal(f Field, p Vec3, eps Real) Vec3 {
	if eps <= 0 {
		eps = NormalEps
	}
	dx := Vec3{eps, 0, 0}
	dy := Vec3{0, eps, 0}
	dz := Vec3{0, 0, eps}
	n := Vec3{
		f.Sample(p.Add(dx)).Dist - f.Sample(p.Sub(dx)).Dist,
		f.Sample(p.Add(dy)).Dist - f.Sample(p.Sub(dy)).Dist,
		f.Sample(p.Add(dz)).Dist - f.Sample(p.Sub(dz)).Dist,
	}
	return norm(n)
}
