// Package oto plays buffers through oto, which needs no C audio library on
// most platforms.
package oto

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/gordonklaus/piano/play"
)

// Player opens one oto context on first use. Oto allows a single context
// per process, so later calls must use the same sample rate.
type Player struct {
	ctx        *oto.Context
	sampleRate int
}

var _ play.Player = (*Player)(nil)

func (p *Player) open(sampleRate int) error {
	if p.ctx != nil {
		if sampleRate != p.sampleRate {
			return fmt.Errorf("oto: context is open at %d Hz, not %d Hz", p.sampleRate, sampleRate)
		}
		return nil
	}
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return err
	}
	<-ready
	p.ctx, p.sampleRate = ctx, sampleRate
	return nil
}

func (p *Player) Play(ctx context.Context, x []float32, sampleRate int) error {
	if err := p.open(sampleRate); err != nil {
		return err
	}
	pl := p.ctx.NewPlayer(play.NewReader(x))
	defer pl.Close()

	slog.Debug("oto player start", "sampleRate", sampleRate, "samples", len(x))
	pl.Play()
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	for pl.IsPlaying() {
		select {
		case <-tick.C:
		case <-ctx.Done():
			pl.Pause()
			return ctx.Err()
		}
	}
	return pl.Err()
}
