// Package piano renders note sequences to audio by additive synthesis. Each
// harmonic's amplitude over time comes from a small fixed model, sampled
// sparsely and interpolated.
package piano

import (
	"errors"
	"fmt"
	"math"

	"github.com/gordonklaus/piano/maths"
)

const (
	TicksPerQuarter = 480
	DefaultBPM      = 120
)

var (
	ErrTickOverflow = errors.New("note end overflows tick range")
	ErrInvalidTempo = errors.New("tempo must be positive")
	ErrInvalidNote  = errors.New("pitch and velocity must be in 0..127")
)

// A Note is one key press. Start and Duration are in ticks.
type Note struct {
	Pitch, Velocity uint8
	Start, Duration uint32
}

func (n Note) End() uint32 { return n.Start + n.Duration }

// A Song is an immutable list of notes in declaration order, which may
// overlap.
type Song struct {
	notes      []Note
	bpm        uint16
	totalTicks uint32
}

func NewSong(bpm uint16, notes ...Note) (*Song, error) {
	if bpm == 0 {
		return nil, ErrInvalidTempo
	}
	s := &Song{notes: append([]Note(nil), notes...), bpm: bpm}
	for i, n := range notes {
		if n.Pitch > 127 || n.Velocity > 127 {
			return nil, fmt.Errorf("%w: note %d has pitch %d, velocity %d", ErrInvalidNote, i, n.Pitch, n.Velocity)
		}
		if n.Duration > math.MaxUint32-n.Start {
			return nil, fmt.Errorf("%w: note %d starts at %d and lasts %d", ErrTickOverflow, i, n.Start, n.Duration)
		}
		s.totalTicks = max(s.totalTicks, n.End())
	}
	return s, nil
}

func (s *Song) Notes() []Note      { return append([]Note(nil), s.notes...) }
func (s *Song) Len() int           { return len(s.notes) }
func (s *Song) BPM() uint16        { return s.bpm }
func (s *Song) TotalTicks() uint32 { return s.totalTicks }

// TickDuration returns the length of a tick in seconds.
func (s *Song) TickDuration() float64 { return 60 / (float64(s.bpm) * TicksPerQuarter) }

// Seconds converts a tick count to seconds without rounding through a
// tick-length intermediate.
func (s *Song) Seconds(ticks uint32) float64 {
	return float64(ticks) * 60 / (float64(s.bpm) * TicksPerQuarter)
}

// Duration returns the nominal song length in seconds, excluding any
// release tail.
func (s *Song) Duration() float64 { return s.Seconds(s.totalTicks) }

// Frequency returns the equal-tempered frequency of a key, with key 69 at
// 440 Hz.
func Frequency(pitch int) float32 {
	return float32(440 * maths.Pow(2, float64(pitch-69)/12))
}
