package piano

import (
	"errors"
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"

	"github.com/gordonklaus/piano/maths"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the synthesis constants. It is fixed once a Synthesizer or
// Renderer has been built from it.
type Config struct {
	SampleRate int
	Harmonics  int

	FadeIn, FadeOut float32 // seconds
	EstimationRate  float32 // model evaluations per second

	NoteLevel NoteLevel
	Headroom  float32

	// Workers bounds the number of notes synthesized concurrently.
	Workers int

	// MaxSamples bounds the buffers Render and Synthesize allocate.
	MaxSamples int
}

// NoteLevel is the peak each synthesized note is normalized to.
type NoteLevel struct {
	Peak float32

	// ScaleByVelocity makes the target Peak·velocity/127.
	ScaleByVelocity bool
}

func FixedLevel(peak float32) NoteLevel    { return NoteLevel{Peak: peak} }
func VelocityLevel(peak float32) NoteLevel { return NoteLevel{Peak: peak, ScaleByVelocity: true} }

func (l NoteLevel) target(velocity float32) float32 {
	if l.ScaleByVelocity {
		return l.Peak * velocity
	}
	return l.Peak
}

func (l NoteLevel) String() string {
	if l.ScaleByVelocity {
		return fmt.Sprintf("%g·velocity", l.Peak)
	}
	return fmt.Sprint(l.Peak)
}

func DefaultConfig() Config {
	return Config{
		SampleRate:     48000,
		Harmonics:      32,
		FadeIn:         0.1,
		FadeOut:        1,
		EstimationRate: 10,
		NoteLevel:      FixedLevel(0.2),
		Headroom:       0.95,
		Workers:        1,
		MaxSamples:     48000 * 60 * 30,
	}
}

// LoadConfig returns DefaultConfig overlaid with any PIANO_* environment
// variables. Unparsable values are reported, not ignored.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	var errs []error
	envInt := func(name string, dst *int) {
		if s := os.Getenv(name); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, name, s))
				return
			}
			*dst = v
		}
	}
	envFloat := func(name string, dst *float32) {
		if s := os.Getenv(name); s != "" {
			v, err := strconv.ParseFloat(s, 32)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, name, s))
				return
			}
			*dst = float32(v)
		}
	}

	envInt("PIANO_SAMPLE_RATE", &cfg.SampleRate)
	envFloat("PIANO_FADE_IN", &cfg.FadeIn)
	envFloat("PIANO_FADE_OUT", &cfg.FadeOut)
	envFloat("PIANO_ESTIMATION_RATE", &cfg.EstimationRate)
	envFloat("PIANO_HEADROOM", &cfg.Headroom)
	envFloat("PIANO_NOTE_LEVEL", &cfg.NoteLevel.Peak)
	if s := os.Getenv("PIANO_VELOCITY_LEVEL"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: PIANO_VELOCITY_LEVEL=%q", ErrInvalidConfig, s))
		} else {
			cfg.NoteLevel.ScaleByVelocity = v
		}
	}
	envInt("PIANO_WORKERS", &cfg.Workers)
	envInt("PIANO_MAX_SAMPLES", &cfg.MaxSamples)

	if err := errors.Join(errs...); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.SampleRate)
	case c.Harmonics < 1:
		return fmt.Errorf("%w: %d harmonics", ErrInvalidConfig, c.Harmonics)
	case !positive(c.FadeIn):
		return fmt.Errorf("%w: fade-in %v", ErrInvalidConfig, c.FadeIn)
	case !positive(c.FadeOut):
		return fmt.Errorf("%w: fade-out %v", ErrInvalidConfig, c.FadeOut)
	case !positive(c.EstimationRate):
		return fmt.Errorf("%w: estimation rate %v", ErrInvalidConfig, c.EstimationRate)
	case !positive(c.NoteLevel.Peak):
		return fmt.Errorf("%w: note level %v", ErrInvalidConfig, c.NoteLevel)
	case !positive(c.Headroom):
		return fmt.Errorf("%w: headroom %v", ErrInvalidConfig, c.Headroom)
	case c.Workers < 0:
		return fmt.Errorf("%w: %d workers", ErrInvalidConfig, c.Workers)
	case c.MaxSamples <= 0:
		return fmt.Errorf("%w: max samples %d", ErrInvalidConfig, c.MaxSamples)
	}
	return nil
}

// positive reports whether x is finite and greater than zero.
func positive(x float32) bool {
	return x > 0 && !math.IsInf(float64(x), 1)
}

// workers resolves Workers, where 0 means one per CPU.
func (c Config) workers() int {
	if c.Workers == 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Workers
}

// knotPeriod is the number of samples between model evaluations.
func (c Config) knotPeriod() int {
	return max(1, int(float32(c.SampleRate)/c.EstimationRate))
}

// samples converts seconds to whole samples. ok is false when the count
// does not fit in an int, in which case n is math.MaxInt.
func (c Config) samples(secs float64) (n int, ok bool) {
	x := maths.Floor(secs * float64(c.SampleRate))
	if !(x < 0x1p63) {
		return math.MaxInt, false
	}
	return int(x), true
}

// fits returns ErrBufferTooLarge unless a buffer of n samples is allowed.
func (c Config) fits(n int, ok bool) error {
	if !ok {
		return fmt.Errorf("%w: sample count overflows", ErrBufferTooLarge)
	}
	if n > c.MaxSamples {
		return fmt.Errorf("%w: %d samples, limit %d", ErrBufferTooLarge, n, c.MaxSamples)
	}
	return nil
}
