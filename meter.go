package piano

import "github.com/gordonklaus/piano/maths"

// Stats summarizes a rendered buffer.
type Stats struct {
	Samples   int
	Peak, RMS float32
}

func Measure(x []float32) Stats {
	s := Stats{Samples: len(x), Peak: Peak(x)}
	if len(x) == 0 {
		return s
	}
	var sum float64
	for _, x := range x {
		sum += float64(x) * float64(x)
	}
	s.RMS = float32(maths.Pow(sum/float64(len(x)), 0.5))
	return s
}
