package shaderpixel

import "math"

// Hash2 is the classic sin-dot hash: deterministic, seed fixed in the constants.
func Hash2(x, y Real) Real {
	return fract(math.Sin(x*127.1+y*311.7) * 43758.5453123)
}

// ValueNoise2 interpolates lattice hashes with a smoothstep curve. Output in [0, 1).
func ValueNoise2(x, y Real) Real {
	ix, iy := math.Floor(x), math.Floor(y)
	fx, fy := x-ix, y-iy
	ux := fx * fx * (3 - 2*fx)
	uy := fy * fy * (3 - 2*fy)
	a := Hash2(ix, iy)
	b := Hash2(ix+1, iy)
	c := Hash2(ix, iy+1)
	d := Hash2(ix+1, iy+1)
	return mix(mix(a, b, ux), mix(c, d, ux), uy)
}

// FBMDamping slightly shrinks the per-octave amplitude below one half.
const FBMDamping = 0.98

// FBM sums octaves of value noise, doubling the frequency and roughly halving the amplitude
// each time. The result is normalized to [0, 1).
func FBM(x, y Real, octaves int) Real {
	if octaves <= 0 {
		return 0
	}
	sum, amp, total := 0.0, 0.5, 0.0
	for i := 0; i < octaves; i++ {
		sum += amp * ValueNoise2(x, y)
		total += amp
		// rotate-and-scale by 2: doubles the frequency and breaks lattice alignment
		x, y = 1.6*x+1.2*y, -1.2*x+1.6*y
		amp *= 0.5 * FBMDamping
	}
	return sum / total
}
