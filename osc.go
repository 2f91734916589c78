package piano

import "github.com/gordonklaus/piano/maths"

// sineOsc is a fixed-frequency sine starting at phase 0. The phase is kept in
// cycles and wrapped so precision does not degrade over long notes.
type sineOsc struct {
	phase, inc float64
}

func newSineOsc(freq, sampleRate float64) *sineOsc {
	return &sineOsc{inc: freq / sampleRate}
}

func (o *sineOsc) Sine() float32 {
	x := maths.Sin(2 * maths.Pi * o.phase)
	if o.phase += o.inc; o.phase >= 1 {
		o.phase -= maths.Floor(o.phase)
	}
	return float32(x)
}
