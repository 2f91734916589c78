package piano

import "github.com/gordonklaus/piano/maths"

// A Predictor yields the log-amplitude of one harmonic of a note at time
// seconds after onset. Pitch, velocity and harmonic are normalized to [0, 1].
// *model.Model is a Predictor.
type Predictor interface {
	Predict(pitch, velocity, harmonic, time float32) float32
}

// A Synthesizer renders single notes as a sum of harmonics whose amplitude
// curves come from a Predictor. It holds no per-note state and may be used
// from several goroutines if its Predictor can.
type Synthesizer struct {
	model  Predictor
	cfg    Config
	period int
}

func NewSynthesizer(model Predictor, cfg Config) (*Synthesizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Synthesizer{model: model, cfg: cfg, period: cfg.knotPeriod()}, nil
}

func (s *Synthesizer) Config() Config { return s.cfg }

// NoteLength returns the number of samples in a note of the given duration,
// including its release tail. It fails with ErrBufferTooLarge when the note
// would exceed Config.MaxSamples.
func (s *Synthesizer) NoteLength(duration float32) (int, error) {
	n, ok := s.noteLength(duration)
	return n, s.cfg.fits(n, ok)
}

func (s *Synthesizer) noteLength(duration float32) (int, bool) {
	if !(duration > 0) {
		return 0, true
	}
	return s.cfg.samples(float64(duration) + float64(s.cfg.FadeOut))
}

// Synthesize returns a note lasting duration seconds plus the release tail.
// A note without duration yields no samples.
func (s *Synthesizer) Synthesize(pitch, velocity int, duration float32) ([]float32, error) {
	n, err := s.NoteLength(duration)
	if err != nil {
		return nil, err
	}
	return s.synthesize(pitch, velocity, duration, n), nil
}

// synthesize renders at most limit samples of a note. The note's own peak
// normalization sees only the samples rendered.
func (s *Synthesizer) synthesize(pitch, velocity int, duration float32, limit int) []float32 {
	n, _ := s.noteLength(duration)
	n = min(n, limit)
	if n <= 0 {
		return nil
	}
	buf := make([]float32, n)

	rate := float32(s.cfg.SampleRate)
	p, v := float32(pitch)/127, float32(velocity)/127
	f0 := Frequency(pitch)
	env := newFade(s.cfg, duration)
	for h := 0; h < s.cfg.Harmonics; h++ {
		f := f0 * float32(h+1)
		if f > rate/2 {
			break
		}
		hn := float32(0)
		if s.cfg.Harmonics > 1 {
			hn = float32(h) / float32(s.cfg.Harmonics-1)
		}
		amp := newKnots(func(t float32) float32 {
			a := maths.Min(maths.Exp(s.model.Predict(p, v, hn, t)), 1)
			return a * env.level(t)
		}, s.period, rate)
		osc := newSineOsc(float64(f), float64(rate))
		for i := range buf {
			buf[i] += amp.Sing() * osc.Sine()
		}
	}

	Normalize(buf, s.cfg.NoteLevel.target(v))
	return buf
}
