package shaderpixel

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is the working 3-vector for every program (positions, directions, RGB).
type Vec3 = mgl64.Vec3

// norm returns a unit-length version of v, or v unchanged if it is (near) zero.
func norm(v Vec3) Vec3 {
	l := v.Len()
	if l < epsDist {
		return v
	}
	return v.Mul(1 / l)
}

func vabs(v Vec3) Vec3 { return Vec3{math.Abs(v[0]), math.Abs(v[1]), math.Abs(v[2])} }

func vmax(a, b Vec3) Vec3 {
	return Vec3{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2])}
}

func vmaxs(v Vec3, s Real) Vec3 { return vmax(v, Vec3{s, s, s}) }

func vmix(a, b Vec3, t Real) Vec3 { return a.Add(b.Sub(a).Mul(t)) }

// vmod is a floored modulo: x - y*floor(x/y), always in [0, y) for y > 0.
func vmod(v Vec3, y Real) Vec3 {
	m := func(x Real) Real { return x - y*math.Floor(x/y) }
	return Vec3{m(v[0]), m(v[1]), m(v[2])}
}

func maxComp(v Vec3) Real { return math.Max(v[0], math.Max(v[1], v[2])) }

// mulPos applies a homogeneous transform to a point.
func mulPos(m mgl64.Mat4, p Vec3) Vec3 {
	r := m.Mul4x1(p.Vec4(1))
	if r[3] != 0 && r[3] != 1 {
		return r.Vec3().Mul(1 / r[3])
	}
	return r.Vec3()
}

// mulDir applies the linear part of a transform to a direction.
func mulDir(m mgl64.Mat4, d Vec3) Vec3 { return m.Mul4x1(d.Vec4(0)).Vec3() }

// rotateY rotates v about the Y axis by angle radians.
func rotateY(v Vec3, angle Real) Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vec3{c*v[0] + s*v[2], v[1], -s*v[0] + c*v[2]}
}

// rotateX rotates v about the X axis by angle radians.
func rotateX(v Vec3, angle Real) Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vec3{v[0], c*v[1] - s*v[2], s*v[1] + c*v[2]}
}
