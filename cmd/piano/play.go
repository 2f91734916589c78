package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/gordonklaus/piano/play"
	"github.com/gordonklaus/piano/play/oto"
	"github.com/gordonklaus/piano/play/portaudio"
)

var backend string

func init() {
	rootCmd.AddCommand(playCmd)
	addSongFlags(playCmd)
	playCmd.Flags().StringVar(&backend, "backend", "portaudio", "audio backend: portaudio or oto")
}

func player(name string) (play.Player, error) {
	switch name {
	case "portaudio":
		return portaudio.Player{}, nil
	case "oto":
		return &oto.Player{}, nil
	}
	return nil, fmt.Errorf("unknown backend %q", name)
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Render a song and play it on the default output device",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := player(backend)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		x, err := renderSong(ctx)
		if err != nil {
			return err
		}
		c := play.Async(ctx, p, x, flags.cfg.SampleRate)
		logger.Debug("playing", "backend", backend)
		return c.Wait()
	},
}
