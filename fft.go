package piano

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/ktye/fft"
)

// Spectrum returns the magnitudes of bins 0..size/2 of the Hann-windowed
// transform of x[offset:offset+size]. Size must be a power of two; samples
// past the end of x count as silence.
func Spectrum(x []float32, offset, size int) ([]float64, error) {
	if size < 4 {
		return nil, fmt.Errorf("spectrum size %d too small", size)
	}
	f, err := fft.New(size)
	if err != nil {
		return nil, err
	}
	if offset < 0 {
		return nil, fmt.Errorf("negative offset %d", offset)
	}
	buf := make([]complex128, size)
	for i := range buf {
		if j := offset + i; j < len(x) {
			env := (1 - math.Cos(2*math.Pi*float64(i)/float64(size))) / 2
			buf[i] = complex(float64(x[j])*env, 0)
		}
	}
	buf = f.Transform(buf)
	mag := make([]float64, size/2+1)
	for i := range mag {
		mag[i] = cmplx.Abs(buf[i])
	}
	return mag, nil
}

// DominantFrequency returns the centre frequency of the strongest non-DC
// bin of Spectrum(x, offset, size).
func DominantFrequency(x []float32, sampleRate, offset, size int) (float64, error) {
	mag, err := Spectrum(x, offset, size)
	if err != nil {
		return 0, err
	}
	best := 1
	for i := 2; i < len(mag); i++ {
		if mag[i] > mag[best] {
			best = i
		}
	}
	return float64(best) * float64(sampleRate) / float64(size), nil
}
