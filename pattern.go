package piano

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

var ErrBufferTooLarge = errors.New("buffer too large")

// A Renderer mixes the notes of a Song into one buffer and normalizes it to
// the configured headroom.
type Renderer struct {
	synth *Synthesizer
	cfg   Config
}

func NewRenderer(model Predictor, cfg Config) (*Renderer, error) {
	s, err := NewSynthesizer(model, cfg)
	if err != nil {
		return nil, err
	}
	return &Renderer{synth: s, cfg: cfg}, nil
}

func (r *Renderer) Synthesizer() *Synthesizer { return r.synth }
func (r *Renderer) Config() Config            { return r.cfg }

// Length returns the number of samples in the rendering of song: its
// nominal length plus one release tail. An empty song has length 0. It fails
// with ErrBufferTooLarge when the count does not fit in an int.
func (r *Renderer) Length(song *Song) (int, error) {
	n, ok := r.length(song)
	if !ok {
		return 0, fmt.Errorf("%w: sample count overflows", ErrBufferTooLarge)
	}
	return n, nil
}

func (r *Renderer) length(song *Song) (int, bool) {
	if song.TotalTicks() == 0 {
		return 0, true
	}
	return r.cfg.samples(song.Duration() + float64(r.cfg.FadeOut))
}

func (r *Renderer) offset(song *Song, tick uint32) int {
	n, _ := r.cfg.samples(song.Seconds(tick))
	return n
}

// Render allocates a buffer for song and renders into it.
func (r *Renderer) Render(ctx context.Context, song *Song) ([]float32, error) {
	n, ok := r.length(song)
	if err := r.cfg.fits(n, ok); err != nil {
		return nil, err
	}
	buf := make([]float32, n)
	if _, err := r.RenderInto(ctx, buf, song); err != nil {
		return nil, err
	}
	return buf, nil
}

// RenderInto renders song into dst, truncating it to len(dst) samples, and
// returns the number of samples written.
func (r *Renderer) RenderInto(ctx context.Context, dst []float32, song *Song) (int, error) {
	n, _ := r.length(song)
	dst = dst[:min(n, len(dst))]
	clear(dst)
	if err := r.Mix(ctx, dst, song); err != nil {
		return 0, err
	}
	Normalize(dst, r.cfg.Headroom)
	return len(dst), nil
}

// Mix adds every note of song into dst at its scheduled offset, without
// normalizing. Notes are synthesized by up to Config.Workers goroutines and
// added in declaration order, so the result does not depend on the worker
// count.
func (r *Renderer) Mix(ctx context.Context, dst []float32, song *Song) error {
	notes := song.notes
	batch := r.cfg.workers()
	waves := make([][]float32, batch)
	for len(notes) > 0 {
		b := notes[:min(batch, len(notes))]
		notes = notes[len(b):]

		g, ctx := errgroup.WithContext(ctx)
		for i, n := range b {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				waves[i] = r.note(dst, song, n)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i, n := range b {
			if waves[i] != nil {
				add(dst[r.offset(song, n.Start):], waves[i])
				waves[i] = nil
			}
		}
	}
	return ctx.Err()
}

// note synthesizes the part of n that fits in dst.
func (r *Renderer) note(dst []float32, song *Song, n Note) []float32 {
	start := r.offset(song, n.Start)
	if n.Duration == 0 || start >= len(dst) {
		return nil
	}
	dur := float32(song.Seconds(n.Duration))
	return r.synth.synthesize(int(n.Pitch), int(n.Velocity), dur, len(dst)-start)
}

func add(dst, x []float32) {
	for i, x := range x {
		dst[i] += x
	}
}
