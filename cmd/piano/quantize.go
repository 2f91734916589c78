package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/gordonklaus/piano/model"
)

var quantizeCmd = &cobra.Command{
	Use:   "quantize [out.json]",
	Short: "Write the model's weights with 8-bit quantization",
	Long:  `Quantizes every tensor of the model (--weights, or the built-in one) to 256 levels between its minimum and maximum and writes the result as JSON.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		m, err := loadModel()
		if err != nil {
			return err
		}
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		defer func() { err = errors.Join(err, f.Close()) }()
		if err := model.Encode(f, model.QuantizeModel(m)); err != nil {
			return err
		}
		logger.Info("wrote quantized weights", "path", args[0])
		return nil
	},
}

func init() { rootCmd.AddCommand(quantizeCmd) }
