package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gordonklaus/piano/maths"
)

var predictFlags struct {
	pitch, velocity, harmonic, time float32
}

func init() {
	rootCmd.AddCommand(predictCmd)
	f := predictCmd.Flags()
	f.Float32Var(&predictFlags.pitch, "pitch", 0.5, "normalized pitch in [0, 1]")
	f.Float32Var(&predictFlags.velocity, "velocity", 0.5, "normalized velocity in [0, 1]")
	f.Float32Var(&predictFlags.harmonic, "harmonic", 0, "normalized harmonic index in [0, 1]")
	f.Float32Var(&predictFlags.time, "time", 0, "seconds since note onset")
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Evaluate the amplitude model at one point",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadModel()
		if err != nil {
			return err
		}
		p := predictFlags
		y := m.Predict(p.pitch, p.velocity, p.harmonic, p.time)
		fmt.Fprintf(cmd.OutOrStdout(), "log-amplitude %.7f\namplitude     %.7f\n", y, maths.Min(maths.Exp(y), 1))
		return nil
	},
}
