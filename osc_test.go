package piano

import (
	"math"
	"testing"
)

func TestSineOsc(t *testing.T) {
	const sampleRate = 48000
	for _, freq := range []float64{27.5, 440, 4186, 23000} {
		o := newSineOsc(freq, sampleRate)
		for i := 0; i < 2*sampleRate; i++ {
			want := math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
			if got := o.Sine(); math.Abs(float64(got)-want) > 1e-4 {
				t.Fatalf("freq=%v sample %d: got %v, want %v", freq, i, got, want)
			}
		}
	}
}

func BenchmarkSineOsc(b *testing.B) {
	o := newSineOsc(1234, 48000)
	for i := 0; i < b.N; i++ {
		o.Sine()
	}
}
