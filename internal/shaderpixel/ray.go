package shaderpixel

// Ray is an origin plus a unit direction. It is never mutated during an evaluation.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// NewRay normalizes dir. A zero direction is kept as is; every intersector treats it as "no hit".
func NewRay(origin, dir Vec3) Ray {
	return Ray{Origin: origin, Dir: norm(dir)}
}

// At returns Origin + t*Dir.
func (r Ray) At(t Real) Vec3 { return r.Origin.Add(r.Dir.Mul(t)) }

func (r Ray) degenerate() bool { return r.Dir.Dot(r.Dir) < epsDist }
