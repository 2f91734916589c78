package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type fileModel struct {
	Layers []fileLayer `json:"layers"`
}

type fileLayer struct {
	In      int        `json:"in"`
	Out     int        `json:"out"`
	Weights fileTensor `json:"weights"`
	Biases  fileTensor `json:"biases"`
}

// A fileTensor holds either plain values or base64 codes with a range.
type fileTensor struct {
	Values []float32 `json:"values,omitempty"`
	Codes  []byte    `json:"codes,omitempty"`
	Min    *float32  `json:"min,omitempty"`
	Max    *float32  `json:"max,omitempty"`
}

func (t fileTensor) tensor() (Tensor, error) {
	switch {
	case t.Codes != nil && t.Values != nil:
		return nil, fmt.Errorf("%w: tensor has both values and codes", ErrShape)
	case t.Codes != nil:
		if t.Min == nil || t.Max == nil {
			return nil, fmt.Errorf("%w: quantized tensor needs min and max", ErrShape)
		}
		return Quantized{Codes: t.Codes, Min: *t.Min, Max: *t.Max}, nil
	}
	return Floats(t.Values), nil
}

func toFile(t Tensor) fileTensor {
	if q, ok := t.(Quantized); ok {
		return fileTensor{Codes: q.Codes, Min: &q.Min, Max: &q.Max}
	}
	return fileTensor{Values: floats(t)}
}

// Decode reads a JSON weight file.
func Decode(r io.Reader) (*Model, error) {
	var f fileModel
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("model: decoding weights: %w", err)
	}
	layers := make([]Layer, len(f.Layers))
	for i, l := range f.Layers {
		w, err := l.Weights.tensor()
		if err != nil {
			return nil, fmt.Errorf("layer %d weights: %w", i, err)
		}
		b, err := l.Biases.tensor()
		if err != nil {
			return nil, fmt.Errorf("layer %d biases: %w", i, err)
		}
		layers[i] = Layer{In: l.In, Out: l.Out, Weights: w, Biases: b}
	}
	return New(layers...)
}

// Encode writes m as a JSON weight file readable by Decode.
func Encode(w io.Writer, m *Model) error {
	f := fileModel{}
	for _, l := range m.layers {
		f.Layers = append(f.Layers, fileLayer{
			In:      l.In,
			Out:     l.Out,
			Weights: toFile(l.Weights),
			Biases:  toFile(l.Biases),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
