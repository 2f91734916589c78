// Package midi loads Standard MIDI Files as songs.
package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/gordonklaus/piano"
	"github.com/gordonklaus/piano/maths"
)

var ErrNoNotes = errors.New("midi: file contains no notes")

type Options struct {
	// Grid snaps note starts and ends to multiples of this many ticks
	// (at 480 per quarter). Zero disables it.
	Grid uint32

	// MaxDuration drops everything after this many seconds. Zero
	// disables it.
	MaxDuration float64
}

func Load(path string, opt Options) (*piano.Song, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading midi file: %w", err)
	}
	return Decode(bytes.NewReader(dat), opt)
}

func Decode(r io.Reader, opt Options) (_ *piano.Song, err error) {
	// smf panics on some malformed input
	defer func() {
		if x := recover(); x != nil {
			err = fmt.Errorf("parsing midi file: %v", x)
		}
	}()

	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("parsing midi file: %w", err)
	}
	return Convert(s, opt)
}

type key struct{ channel, key uint8 }

type onset struct {
	tick     uint32
	velocity uint8
	seq      int // order in which the key started sounding
}

// Convert extracts the notes of s. The tempo is the first tempo event found,
// rounded to whole beats per minute; ticks are rescaled to 480 per quarter.
func Convert(s *smf.SMF, opt Options) (*piano.Song, error) {
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok || mt == 0 {
		return nil, fmt.Errorf("midi: unsupported time format %v", s.TimeFormat)
	}
	resolution := uint64(mt)
	bpm := tempo(s)

	var limit uint64
	if opt.MaxDuration > 0 {
		limit = uint64(opt.MaxDuration * float64(bpm) * piano.TicksPerQuarter / 60)
	}

	var notes []piano.Note
	sounding := map[key]onset{}
	started := 0
	for _, track := range s.Tracks {
		var abs uint64
		for _, ev := range track {
			abs += uint64(ev.Delta)
			at := abs * piano.TicksPerQuarter / resolution
			if limit > 0 && at > limit {
				break
			}
			if at > maxTick {
				return nil, fmt.Errorf("%w: event at tick %d", piano.ErrTickOverflow, at)
			}
			tick := snap(at, opt.Grid)

			var ch, k, vel uint8
			switch {
			case ev.Message.GetNoteOn(&ch, &k, &vel) && vel > 0:
				seq := started
				if on, ok := sounding[key{ch, k}]; ok {
					seq = on.seq
				} else {
					started++
				}
				sounding[key{ch, k}] = onset{tick, vel, seq}
			case ev.Message.GetNoteOn(&ch, &k, &vel), ev.Message.GetNoteOff(&ch, &k, &vel):
				on, ok := sounding[key{ch, k}]
				if !ok {
					continue
				}
				delete(sounding, key{ch, k})
				notes = append(notes, note(k, on, tick))
			}
		}
	}
	hanging := make([]key, 0, len(sounding))
	for k := range sounding {
		hanging = append(hanging, k)
	}
	sort.Slice(hanging, func(i, j int) bool { return sounding[hanging[i]].seq < sounding[hanging[j]].seq })
	for _, k := range hanging {
		on := sounding[k]
		notes = append(notes, note(k.key, on, on.tick+piano.TicksPerQuarter))
	}
	if len(notes) == 0 {
		return nil, ErrNoNotes
	}

	// Notes starting together keep the order in which they ended.
	sort.SliceStable(notes, func(i, j int) bool { return notes[i].Start < notes[j].Start })
	return piano.NewSong(bpm, notes...)
}

const maxTick = 1<<32 - 1 - piano.TicksPerQuarter

func note(pitch uint8, on onset, end uint32) piano.Note {
	dur := uint32(1)
	if end > on.tick {
		dur = end - on.tick
	}
	return piano.Note{
		Pitch:    maths.Min(pitch, 127),
		Velocity: maths.Max(maths.Min(on.velocity, 127), 1),
		Start:    on.tick,
		Duration: dur,
	}
}

// snap rounds tick to the nearest multiple of grid, keeping room for a
// quarter note after it.
func snap(tick uint64, grid uint32) uint32 {
	if grid > 0 {
		g := uint64(grid)
		tick = (tick + g/2) / g * g
	}
	return uint32(min(tick, maxTick))
}

func tempo(s *smf.SMF) uint16 {
	for _, track := range s.Tracks {
		for _, ev := range track {
			var bpm float64
			if ev.Message.GetMetaTempo(&bpm) {
				return uint16(maths.Max(maths.Min(maths.Floor(bpm+0.5), 65535), 1))
			}
		}
	}
	return piano.DefaultBPM
}
