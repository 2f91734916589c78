// Package play routes rendered buffers to a live audio device. The device
// drivers live in subpackages; this package holds what they share.
package play

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"sync"
)

// A Player plays mono float samples, blocking until they have been heard or
// ctx is done.
type Player interface {
	Play(ctx context.Context, x []float32, sampleRate int) error
}

// Reader streams samples as float32 little-endian PCM.
type Reader struct {
	x   []float32
	pos int // in bytes
}

func NewReader(x []float32) *Reader { return &Reader{x: x} }

func (r *Reader) Read(p []byte) (int, error) {
	n := 0
	var b [4]byte
	for n < len(p) {
		i := r.pos / 4
		if i >= len(r.x) {
			break
		}
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(r.x[i]))
		c := copy(p[n:], b[r.pos%4:])
		n += c
		r.pos += c
	}
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Remaining returns the number of samples not yet completely read.
func (r *Reader) Remaining() int { return len(r.x) - r.pos/4 }

// Feeder copies samples into fixed-size device buffers, padding with
// silence once the samples run out.
type Feeder struct {
	mu sync.Mutex
	x  []float32
}

func NewFeeder(x []float32) *Feeder { return &Feeder{x: x} }

// Fill fills out and reports whether any samples remain.
func (f *Feeder) Fill(out []float32) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := copy(out, f.x)
	clear(out[n:])
	f.x = f.x[n:]
	return len(f.x) > 0
}

// A Control stops and awaits a playback started by Async.
type Control struct {
	stop context.CancelFunc
	done chan struct{}
	err  error
}

// Async starts playing x on p and returns immediately.
func Async(ctx context.Context, p Player, x []float32, sampleRate int) *Control {
	ctx, cancel := context.WithCancel(ctx)
	c := &Control{stop: cancel, done: make(chan struct{})}
	go func() {
		defer close(c.done)
		defer cancel()
		c.err = p.Play(ctx, x, sampleRate)
	}()
	return c
}

func (c *Control) Stop() { c.stop() }

// Done is closed when playback has finished.
func (c *Control) Done() <-chan struct{} { return c.done }

// Wait blocks until playback has finished and returns its error. A stopped
// playback is not an error.
func (c *Control) Wait() error {
	<-c.done
	if errors.Is(c.err, context.Canceled) {
		return nil
	}
	return c.err
}
