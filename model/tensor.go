package model

import "github.com/gordonklaus/piano/maths"

// A Tensor yields weight values by flat, row-major index.
type Tensor interface {
	At(i int) float32
	Len() int
}

// Floats is a tensor stored at full precision.
type Floats []float32

func (f Floats) At(i int) float32 { return f[i] }
func (f Floats) Len() int         { return len(f) }

// Quantized is a tensor of 8-bit codes mapped linearly onto [Min, Max].
type Quantized struct {
	Codes    []uint8
	Min, Max float32
}

func (q Quantized) At(i int) float32 { return DequantizeCode(q.Codes[i], q.Min, q.Max) }
func (q Quantized) Len() int         { return len(q.Codes) }

// Dequantize materializes every value of q.
func (q Quantized) Dequantize() Floats {
	f := make(Floats, len(q.Codes))
	for i, c := range q.Codes {
		f[i] = DequantizeCode(c, q.Min, q.Max)
	}
	return f
}

func DequantizeCode(code uint8, min, max float32) float32 {
	return min + float32(code)/255*(max-min)
}

// Quantize encodes t with a single affine range spanning its smallest and
// largest values. A constant tensor quantizes to all-zero codes.
func Quantize(t Tensor) Quantized {
	q := Quantized{Codes: make([]uint8, t.Len())}
	if t.Len() == 0 {
		return q
	}
	q.Min, q.Max = t.At(0), t.At(0)
	for i := 1; i < t.Len(); i++ {
		q.Min = maths.Min(q.Min, t.At(i))
		q.Max = maths.Max(q.Max, t.At(i))
	}
	if q.Max == q.Min {
		return q
	}
	scale := 255 / (q.Max - q.Min)
	for i := range q.Codes {
		q.Codes[i] = uint8(maths.Floor(float64((t.At(i)-q.Min)*scale) + 0.5))
	}
	return q
}

func floats(t Tensor) Floats {
	switch t := t.(type) {
	case Floats:
		return t
	case Quantized:
		return t.Dequantize()
	}
	f := make(Floats, t.Len())
	for i := range f {
		f[i] = t.At(i)
	}
	return f
}
