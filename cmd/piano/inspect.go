package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gordonklaus/piano"
)

var fftSize int

func init() {
	rootCmd.AddCommand(inspectCmd)
	addSongFlags(inspectCmd)
	inspectCmd.Flags().IntVar(&fftSize, "fft-size", 8192, "spectrum window in samples")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print level and spectrum statistics of a rendered song",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := renderSong(cmd.Context())
		if err != nil {
			return err
		}
		st := piano.Measure(x)
		rate := flags.cfg.SampleRate
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "samples  %d (%.3fs)\n", st.Samples, float64(st.Samples)/float64(rate))
		fmt.Fprintf(w, "peak     %.6f\n", st.Peak)
		fmt.Fprintf(w, "rms      %.6f\n", st.RMS)
		if len(x) == 0 {
			return nil
		}
		f, err := piano.DominantFrequency(x, rate, 0, fftSize)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "dominant %.1f Hz\n", f)
		return nil
	},
}
