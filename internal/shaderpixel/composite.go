package shaderpixel

import (
	"math"
	"sort"
)

// Candidate is one surface a pixel could show: its distance along the view ray and its color.
type Candidate struct {
	Dist  Real
	Color Premul
}

// Accumulator blends candidates nearest-wins. The zero value is not ready; use NewAccumulator.
type Accumulator struct {
	Dist  Real
	Color Premul
}

func NewAccumulator() Accumulator {
	return Accumulator{Dist: math.Inf(1)}
}

// Add places c on top of the accumulated color when it is strictly nearer, underneath otherwise.
// Fully transparent candidates are ignored.
func (a *Accumulator) Add(dist Real, c Premul) {
	if !(c.A > 0) {
		return
	}
	if dist < a.Dist {
		a.Color = Over(c, a.Color)
		a.Dist = dist
		return
	}
	a.Color = Over(a.Color, c)
}

// Composite sorts the candidates by distance and blends them front to back.
// The result does not depend on input order; on equal distances the first listed is in front.
func Composite(cands ...Candidate) Premul {
	sorted := make([]Candidate, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Dist < sorted[j].Dist })
	acc := NewAccumulator()
	for _, c := range sorted {
		acc.Add(c.Dist, c.Color)
	}
	return acc.Color
}
