package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gordonklaus/piano"
	"github.com/gordonklaus/piano/export"
	"github.com/gordonklaus/piano/midi"
)

var songFlags struct {
	midi        string
	grid        uint32
	maxDuration float64
}

var out string

func init() {
	rootCmd.AddCommand(renderCmd)
	addSongFlags(renderCmd)
	renderCmd.Flags().StringVarP(&out, "out", "o", "out.wav", "output file (.wav or .txt)")
}

func addSongFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&songFlags.midi, "midi", "", "standard MIDI file to render (default: built-in demo)")
	f.Uint32Var(&songFlags.grid, "grid", 0, "snap note starts and ends to this many ticks")
	f.Float64Var(&songFlags.maxDuration, "max-duration", 0, "ignore MIDI events after this many seconds")
}

func loadSong() (*piano.Song, error) {
	if songFlags.midi == "" {
		return demoSong()
	}
	return midi.Load(songFlags.midi, midi.Options{Grid: songFlags.grid, MaxDuration: songFlags.maxDuration})
}

// renderSong loads the song and renders it with the configured model.
func renderSong(ctx context.Context) ([]float32, error) {
	song, err := loadSong()
	if err != nil {
		return nil, err
	}
	r, err := newRenderer()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	x, err := r.Render(ctx, song)
	if err != nil {
		return nil, err
	}
	st := piano.Measure(x)
	logger.Info("rendered", "notes", song.Len(), "seconds", song.Duration(), "samples", st.Samples, "peak", st.Peak, "rms", st.RMS, "elapsed", time.Since(start))
	return x, nil
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a song to a file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := renderSong(cmd.Context())
		if err != nil {
			return err
		}
		rate := flags.cfg.SampleRate
		switch strings.ToLower(filepath.Ext(out)) {
		case ".wav":
			err = export.WriteWAVFile(out, x, rate)
		case ".txt":
			err = writeText(out, x, rate)
		default:
			return fmt.Errorf("unknown output format %q", filepath.Ext(out))
		}
		if err != nil {
			return err
		}
		logger.Info("wrote", "path", out)
		return nil
	},
}

func writeText(path string, x []float32, sampleRate int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, f.Close()) }()
	return export.Text(f, x, sampleRate)
}
