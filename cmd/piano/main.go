// Command piano renders, plays and inspects songs synthesized by the
// harmonic amplitude model.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gordonklaus/piano"
	"github.com/gordonklaus/piano/model"
)

var logger = slog.Default()

func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	logger = slog.New(h)
	slog.SetDefault(logger)
}

var flags struct {
	debug         bool
	weights       string
	cfg           piano.Config
	velocityLevel bool
}

var rootCmd = &cobra.Command{
	Use:           "piano",
	Short:         "Additive piano synthesizer",
	Long:          `Renders note sequences to audio, with each harmonic's amplitude predicted by a small fixed neural network.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initLogger(flags.debug)
		return loadConfig(cmd)
	},
}

func init() {
	def := piano.DefaultConfig()
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flags.debug, "debug", false, "debug logging")
	pf.StringVar(&flags.weights, "weights", "", "JSON weight file (default: built-in model)")
	pf.IntVar(&flags.cfg.SampleRate, "sample-rate", def.SampleRate, "output sample rate in Hz")
	pf.Float32Var(&flags.cfg.FadeIn, "fade-in", def.FadeIn, "attack time in seconds")
	pf.Float32Var(&flags.cfg.FadeOut, "fade-out", def.FadeOut, "release time in seconds")
	pf.Float32Var(&flags.cfg.EstimationRate, "estimation-rate", def.EstimationRate, "model evaluations per second")
	pf.Float32Var(&flags.cfg.Headroom, "headroom", def.Headroom, "peak level of the rendered song")
	pf.Float32Var(&flags.cfg.NoteLevel.Peak, "note-level", def.NoteLevel.Peak, "peak level of each note")
	pf.BoolVar(&flags.velocityLevel, "velocity-level", false, "scale each note's peak by its velocity")
	pf.IntVar(&flags.cfg.Workers, "workers", def.Workers, "notes synthesized concurrently (0: one per CPU)")
	pf.IntVar(&flags.cfg.MaxSamples, "max-samples", def.MaxSamples, "largest song buffer to allocate")
}

// loadConfig resolves the configuration: defaults, then PIANO_* environment
// variables, then flags given on the command line.
func loadConfig(cmd *cobra.Command) error {
	cfg, err := piano.LoadConfig()
	if err != nil {
		return err
	}
	pf := cmd.Flags()
	set := func(name string, apply func()) {
		if pf.Changed(name) {
			apply()
		}
	}
	set("sample-rate", func() { cfg.SampleRate = flags.cfg.SampleRate })
	set("fade-in", func() { cfg.FadeIn = flags.cfg.FadeIn })
	set("fade-out", func() { cfg.FadeOut = flags.cfg.FadeOut })
	set("estimation-rate", func() { cfg.EstimationRate = flags.cfg.EstimationRate })
	set("headroom", func() { cfg.Headroom = flags.cfg.Headroom })
	set("note-level", func() { cfg.NoteLevel.Peak = flags.cfg.NoteLevel.Peak })
	set("velocity-level", func() { cfg.NoteLevel.ScaleByVelocity = flags.velocityLevel })
	set("workers", func() { cfg.Workers = flags.cfg.Workers })
	set("max-samples", func() { cfg.MaxSamples = flags.cfg.MaxSamples })
	flags.cfg = cfg
	logger.Debug("config", "sampleRate", cfg.SampleRate, "noteLevel", cfg.NoteLevel, "headroom", cfg.Headroom, "workers", cfg.Workers)
	return cfg.Validate()
}

func loadModel() (*model.Model, error) {
	if flags.weights == "" {
		return model.Default(), nil
	}
	m, err := model.Load(flags.weights)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded weights", "path", flags.weights, "sizes", m.Sizes())
	return m, nil
}

func newRenderer() (*piano.Renderer, error) {
	m, err := loadModel()
	if err != nil {
		return nil, err
	}
	return piano.NewRenderer(m, flags.cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
