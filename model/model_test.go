package model

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestPredict(t *testing.T) {
	m := Default()
	for _, c := range []struct {
		in   [4]float32
		want float64
	}{
		{[4]float32{0.5, 0.5, 0, 0}, -6.370939},
		{[4]float32{0.5, 0.8, 0.1, 0.3}, -6.1698277},
		{[4]float32{0, 0.5, 0, 0}, -5.2182341},
		{[4]float32{1, 1, 1, 1}, -19.774067},
		{[4]float32{0.25, 0.6, 0.5, 0.8}, -7.053267},
	} {
		got := m.Predict(c.in[0], c.in[1], c.in[2], c.in[3])
		if math.Abs(float64(got)-c.want) > 1e-3 {
			t.Errorf("Predict%v = %v, want %v", c.in, got, c.want)
		}
		if again := m.Predict(c.in[0], c.in[1], c.in[2], c.in[3]); again != got {
			t.Errorf("Predict%v not deterministic: %v then %v", c.in, got, again)
		}
	}
}

func TestSiLU(t *testing.T) {
	for x, want := range map[float32]float64{
		0:   0,
		1:   0.7310585786,
		-1:  -0.2689414214,
		10:  9.999546021,
		-20: -4.122307e-8,
	} {
		if got := SiLU(x); math.Abs(float64(got)-want) > 1e-6 {
			t.Errorf("SiLU(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestQuantize(t *testing.T) {
	f := Floats{-1, 0, 0.5, 3}
	q := Quantize(f)
	if q.Min != -1 || q.Max != 3 {
		t.Fatalf("range = [%v, %v], want [-1, 3]", q.Min, q.Max)
	}
	if q.Codes[0] != 0 || q.Codes[3] != 255 {
		t.Errorf("endpoint codes = %d, %d; want 0, 255", q.Codes[0], q.Codes[3])
	}
	step := (q.Max - q.Min) / 255
	for i := range f {
		if d := math.Abs(float64(q.At(i) - f[i])); d > float64(step)/2+1e-6 {
			t.Errorf("At(%d) = %v, want %v within %v", i, q.At(i), f[i], step/2)
		}
	}
	d := q.Dequantize()
	for i := range d {
		if d[i] != q.At(i) {
			t.Errorf("Dequantize()[%d] = %v, At = %v", i, d[i], q.At(i))
		}
	}

	c := Quantize(Floats{0.25, 0.25})
	for i, code := range c.Codes {
		if code != 0 || c.At(i) != 0.25 {
			t.Errorf("constant tensor: code %d yields %v", code, c.At(i))
		}
	}
}

func TestQuantizeModel(t *testing.T) {
	m := Default()
	q := QuantizeModel(m)
	for _, l := range q.Layers() {
		if _, ok := l.Weights.(Quantized); !ok {
			t.Fatalf("weights are %T, want Quantized", l.Weights)
		}
	}
	grid := []float32{0, 0.25, 0.5, 0.75, 1}
	for _, p := range grid {
		for _, v := range grid {
			for _, h := range grid {
				for _, tm := range []float32{0, 0.5, 1, 2} {
					a, b := m.Predict(p, v, h, tm), q.Predict(p, v, h, tm)
					if math.Abs(float64(a-b)) > 0.75 {
						t.Errorf("Predict(%v, %v, %v, %v): float %v, quantized %v", p, v, h, tm, a, b)
					}
				}
			}
		}
	}
	d := DequantizeModel(q)
	if a, b := q.Predict(0.5, 0.5, 0.1, 0.2), d.Predict(0.5, 0.5, 0.1, 0.2); a != b {
		t.Errorf("dequantized model predicts %v, quantized %v", b, a)
	}
}

func TestNewShape(t *testing.T) {
	ok := func() []Layer {
		return []Layer{
			{In: 4, Out: 2, Weights: make(Floats, 8), Biases: make(Floats, 2)},
			{In: 2, Out: 2, Weights: make(Floats, 4), Biases: make(Floats, 2)},
			{In: 2, Out: 2, Weights: make(Floats, 4), Biases: make(Floats, 2)},
			{In: 2, Out: 1, Weights: make(Floats, 2), Biases: make(Floats, 1)},
		}
	}
	if _, err := New(ok()...); err != nil {
		t.Fatal(err)
	}
	for name, mutate := range map[string]func([]Layer) []Layer{
		"too few layers": func(l []Layer) []Layer { return l[:3] },
		"broken chain":   func(l []Layer) []Layer { l[1].In = 3; return l },
		"short weights":  func(l []Layer) []Layer { l[2].Weights = make(Floats, 3); return l },
		"missing biases": func(l []Layer) []Layer { l[0].Biases = nil; return l },
		"wide output": func(l []Layer) []Layer {
			l[3] = Layer{In: 2, Out: 2, Weights: make(Floats, 4), Biases: make(Floats, 2)}
			return l
		},
	} {
		if _, err := New(mutate(ok())...); !errors.Is(err, ErrShape) {
			t.Errorf("%s: err = %v, want ErrShape", name, err)
		}
	}
}

func TestWideLayer(t *testing.T) {
	const wide = 100
	w := make(Floats, wide*4)
	for i := 0; i < wide; i++ {
		w[i*4] = 1
	}
	out := make(Floats, wide)
	for i := range out {
		out[i] = 1
	}
	m, err := New(
		Layer{In: 4, Out: wide, Weights: w, Biases: make(Floats, wide)},
		Layer{In: wide, Out: 1, Weights: out, Biases: Floats{0}},
		Layer{In: 1, Out: 1, Weights: Floats{1}, Biases: Floats{0}},
		Layer{In: 1, Out: 1, Weights: Floats{1}, Biases: Floats{0}},
	)
	if err != nil {
		t.Fatal(err)
	}
	// silu(silu(100·silu(2)))
	want := float64(SiLU(SiLU(wide * SiLU(2))))
	if got := m.Predict(2, 0, 0, 0); math.Abs(float64(got)-want) > 1e-2 {
		t.Errorf("Predict = %v, want %v", got, want)
	}
}

func TestFile(t *testing.T) {
	for name, m := range map[string]*Model{
		"float":     Default(),
		"quantized": QuantizeModel(Default()),
	} {
		var buf bytes.Buffer
		if err := Encode(&buf, m); err != nil {
			t.Fatal(err)
		}
		d, err := Decode(&buf)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if a, b := m.Predict(0.3, 0.7, 0.2, 0.4), d.Predict(0.3, 0.7, 0.2, 0.4); a != b {
			t.Errorf("%s: decoded model predicts %v, want %v", name, b, a)
		}
	}

	for _, doc := range []string{
		`{"layers":[]}`,
		`{"layers":[{"in":4,"out":1,"weights":{"codes":"AAEC"},"biases":{"values":[0]}}]}`,
		`{"layers":[{"in":4,"out":1,"weights":{"values":[1,2,3,4],"codes":"AA==","min":0,"max":1},"biases":{"values":[0]}}]}`,
	} {
		if _, err := Decode(strings.NewReader(doc)); !errors.Is(err, ErrShape) {
			t.Errorf("Decode(%s): err = %v, want ErrShape", doc, err)
		}
	}
}

func BenchmarkPredict(b *testing.B) {
	m := Default()
	for i := 0; i < b.N; i++ {
		m.Predict(0.5, 0.8, float32(i&31)/31, 0.3)
	}
}

func BenchmarkPredictQuantized(b *testing.B) {
	m := QuantizeModel(Default())
	for i := 0; i < b.N; i++ {
		m.Predict(0.5, 0.8, float32(i&31)/31, 0.3)
	}
}
