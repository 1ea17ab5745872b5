// Package precision decomposes float64 values into float32 pairs for
// evaluators that only have single precision available.
//
// A value v is carried as hi + lo where hi is the float32 nearest to v and
// lo is the float32 rounding of the residual v - hi. The two halves never
// overlap: |lo| is at most half a float32 ulp of hi. A double-single
// evaluator rebuilds roughly 48 bits of mantissa from the pair.
package precision

import "math"

// Split is a non-overlapping (hi, lo) float32 pair.
type Split struct {
	Hi float32
	Lo float32
}

// Value reconstructs the float64 the pair represents.
func (s Split) Value() float64 {
	return float64(s.Hi) + float64(s.Lo)
}

// SplitDouble returns the double-single decomposition of v.
//
// The residual is taken in float64 so no discarded bit of v is lost, then
// the pair is renormalized with a quick-two-sum step. Finite inputs beyond
// the float32 range, NaN and Inf propagate non-finite halves.
func SplitDouble(v float64) Split {
	hi := float32(v)
	residual := v - float64(hi)
	lo := float32(residual)

	sum := float64(hi) + float64(lo)
	sumR := float32(sum)
	if sumR != hi {
		err := residual - (float64(sumR) - float64(hi))
		return Split{Hi: sumR, Lo: float32(err)}
	}
	return Split{Hi: hi, Lo: lo}
}

// SplitPair splits both components of a 2D coordinate.
func SplitPair(x, y float64) (Split, Split) {
	return SplitDouble(x), SplitDouble(y)
}

// ULP returns the float32 unit in the last place at the magnitude of f.
func ULP(f float32) float64 {
	a := float32(math.Abs(float64(f)))
	return float64(math.Nextafter32(a, float32(math.Inf(1)))) - float64(a)
}

// Error is the absolute reconstruction error of s against v.
func (s Split) Error(v float64) float64 {
	return math.Abs(v - s.Value())
}
