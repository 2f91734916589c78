package piano

import "github.com/gordonklaus/piano/maths"

// Peak returns the largest absolute sample value in x.
func Peak(x []float32) float32 {
	var peak float32
	for _, x := range x {
		peak = maths.Max(peak, maths.Abs(x))
	}
	return peak
}

// Normalize scales x so that its peak equals target, and returns the
// original peak. Silence is left alone.
func Normalize(x []float32, target float32) float32 {
	peak := Peak(x)
	if peak == 0 {
		return 0
	}
	// dividing first makes the peak sample land on target exactly
	for i := range x {
		x[i] = x[i] / peak * target
	}
	return peak
}
