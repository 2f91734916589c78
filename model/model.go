// Package model implements the harmonic amplitude predictor: a fixed
// four-layer perceptron mapping (pitch, velocity, harmonic, time) to the
// natural log of a partial's amplitude.
//
// Weights are frozen. A Model never changes after New returns and may be
// shared by any number of goroutines.
package model

import (
	"errors"
	"fmt"

	"github.com/gordonklaus/piano/maths"
)

const (
	NumLayers  = 4
	InputSize  = 4
	OutputSize = 1
)

var ErrShape = errors.New("model: tensor shape mismatch")

// A Layer computes out[i] = bias[i] + Σ_j in[j]·weight[i*In+j].
type Layer struct {
	In, Out int
	Weights Tensor
	Biases  Tensor
}

type Model struct {
	layers [NumLayers]Layer
	width  int
}

func New(layers ...Layer) (*Model, error) {
	if len(layers) != NumLayers {
		return nil, fmt.Errorf("%w: %d layers, want %d", ErrShape, len(layers), NumLayers)
	}
	m := &Model{}
	in := InputSize
	for i, l := range layers {
		switch {
		case l.In != in:
			return nil, fmt.Errorf("%w: layer %d takes %d inputs, previous layer yields %d", ErrShape, i, l.In, in)
		case l.Out <= 0:
			return nil, fmt.Errorf("%w: layer %d has %d outputs", ErrShape, i, l.Out)
		case l.Weights == nil || l.Weights.Len() != l.In*l.Out:
			return nil, fmt.Errorf("%w: layer %d weights must hold %dx%d values", ErrShape, i, l.Out, l.In)
		case l.Biases == nil || l.Biases.Len() != l.Out:
			return nil, fmt.Errorf("%w: layer %d biases must hold %d values", ErrShape, i, l.Out)
		}
		m.layers[i] = l
		m.width = maths.Max(m.width, l.Out)
		in = l.Out
	}
	if in != OutputSize {
		return nil, fmt.Errorf("%w: output layer yields %d values, want %d", ErrShape, in, OutputSize)
	}
	return m, nil
}

func (m *Model) Layers() []Layer { return m.layers[:] }

// Sizes returns the width of every activation, input first.
func (m *Model) Sizes() []int {
	s := []int{InputSize}
	for _, l := range m.layers {
		s = append(s, l.Out)
	}
	return s
}

// Predict returns the predicted log-amplitude. Pitch, velocity and harmonic
// are normalized to [0, 1]; time is in seconds since note onset.
func (m *Model) Predict(pitch, velocity, harmonic, time float32) float32 {
	var stack [2][64]float32
	a, b := stack[0][:], stack[1][:]
	if m.width > len(a) {
		a, b = make([]float32, m.width), make([]float32, m.width)
	}
	a[0], a[1], a[2], a[3] = pitch, velocity, harmonic, time

	in := a[:InputSize]
	for i, l := range m.layers {
		out := b[:l.Out]
		linear(l, in, out)
		if i < NumLayers-1 {
			for j, x := range out {
				out[j] = SiLU(x)
			}
		}
		in, a, b = out, b, a
	}
	return in[0]
}

func linear(l Layer, in, out []float32) {
	for i := range out {
		sum := l.Biases.At(i)
		for j, x := range in {
			sum += x * l.Weights.At(i*l.In+j)
		}
		out[i] = sum
	}
}

// SiLU is x·sigmoid(x).
func SiLU(x float32) float32 {
	return x / (1 + maths.Exp(-x))
}

// QuantizeModel returns a copy of m with every tensor quantized.
func QuantizeModel(m *Model) *Model {
	q := &Model{width: m.width}
	for i, l := range m.layers {
		l.Weights = Quantize(l.Weights)
		l.Biases = Quantize(l.Biases)
		q.layers[i] = l
	}
	return q
}

// DequantizeModel returns a copy of m holding full-precision tensors, trading
// memory for a cheaper Predict.
func DequantizeModel(m *Model) *Model {
	d := &Model{width: m.width}
	for i, l := range m.layers {
		l.Weights = floats(l.Weights)
		l.Biases = floats(l.Biases)
		d.layers[i] = l
	}
	return d
}
