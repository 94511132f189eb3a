package shaderpixel

import (
	"math"
)

type Real = float64

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

func clamp(x, lo, hi Real) Real {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func clamp01(x Real) Real { return clamp(x, 0, 1) }

func mix(a, b, t Real) Real { return a + (b-a)*t }

func fract(x Real) Real { return x - math.Floor(x) }

func smoothstep(e0, e1, x Real) Real {
	if e0 == e1 {
		if x < e0 {
			return 0
		}
		return 1
	}
	t := clamp01((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}

func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}
