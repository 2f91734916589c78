// Package portaudio plays buffers through the default PortAudio output
// device.
package portaudio

import (
	"context"
	"log/slog"

	"github.com/gordonklaus/portaudio"

	"github.com/gordonklaus/piano/play"
)

const framesPerBuffer = 1024

type Player struct{}

var _ play.Player = Player{}

func (Player) Play(ctx context.Context, x []float32, sampleRate int) error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	defer portaudio.Terminate()

	feed := play.NewFeeder(x)
	done := make(chan struct{})
	var finished bool
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(sampleRate), framesPerBuffer, func(out []float32) {
		if !feed.Fill(out) && !finished {
			finished = true
			close(done)
		}
	})
	if err != nil {
		return err
	}
	defer stream.Close()

	slog.Debug("portaudio stream open", "sampleRate", sampleRate, "samples", len(x))
	if err := stream.Start(); err != nil {
		return err
	}
	select {
	case <-done:
	case <-ctx.Done():
		if err := stream.Abort(); err != nil {
			slog.Debug("portaudio abort", "err", err)
		}
		return ctx.Err()
	}
	return stream.Stop()
}
