package model

import "sync"

// Trained weights of the compact 4-8-8-4-1 network.
var (
	w1 = Floats{
		-2.09316516, -1.43079710, -1.29498386, -0.05881727,
		1.79933953, 0.04013823, 1.54859054, 0.66007185,
		-0.35424069, 0.20324609, 1.92994249, 0.34582090,
		0.36931449, 0.93159723, -1.80349684, 0.69984466,
		-1.74909854, 0.12884228, 0.01581155, 0.85631216,
		0.60396791, 0.53168601, 3.97497034, 0.47461030,
		1.09487212, -0.31953043, 1.07259381, 0.47504169,
		0.62364024, -0.43365508, 0.46448421, 0.14089498,
	}
	b1 = Floats{
		1.11608028, -0.28256902, 0.95281458, 1.14453685, 0.96012980, 0.02843913, 0.71194404, 1.27347505,
	}
	w2 = Floats{
		-2.81435776, -2.20845819, 0.71511692, 0.11667145, 1.66500568, 0.24216947, -1.02269864, -0.14472079,
		1.90842104, 0.02481720, -0.22068590, -0.63903946, 0.62857872, -0.12289757, -0.46261254, -0.44045642,
		1.13736391, 0.22760388, 0.44835392, 0.09814782, -0.83320153, -0.22175658, 0.55373174, 0.92866361,
		2.16354680, -0.49548608, -0.57473290, -1.14448762, 1.44584608, -0.41098613, 0.42950106, -0.03957656,
		-3.37893558, -1.71634269, -0.25681531, 0.93743539, 1.72348666, -1.40868175, -0.62138331, 0.00412035,
		1.39531326, -0.13822936, 0.56472754, 0.21714863, -0.28162831, 0.28251272, 0.75062907, 0.86219555,
		0.74221689, 0.35093093, 0.64415181, -0.20691113, -0.23840953, 0.02362772, 0.71537286, 0.46022895,
		-0.29547310, -0.11674355, 0.50104362, 0.35605940, -1.16282940, 0.38088879, 0.12538572, 0.49788058,
	}
	b2 = Floats{
		0.90745878, -0.27056691, 0.97890466, -0.87176430, 1.44071269, 0.46699560, 0.67943835, 0.73488837,
	}
	w3 = Floats{
		-0.06958607, -1.24924409, 0.53410387, -1.53071654, -0.00067429, 0.50945127, 0.36035204, 0.23790587,
		-0.79188609, -0.68681997, 0.48218569, -2.27809906, 0.25128087, 0.28316751, 0.19183828, -0.10106967,
		-0.39787582, -1.12188363, 0.35159457, -1.93978071, 0.30040053, 0.44952655, 0.35552385, 0.24149604,
		-4.11042500, -0.01547927, -0.00208680, 0.73187536, -4.16671801, -0.06500108, -0.00985010, 0.57544899,
	}
	b3 = Floats{
		0.69261050, 0.70203942, 0.44852042, 0.13995726,
	}
	w4 = Floats{
		-0.80249029, -0.53604174, -0.34038734, -1.94901061,
	}
	b4 = Floats{
		0.19641364,
	}
)

var defaultModel = sync.OnceValue(func() *Model {
	m, err := New(
		Layer{In: 4, Out: 8, Weights: w1, Biases: b1},
		Layer{In: 8, Out: 8, Weights: w2, Biases: b2},
		Layer{In: 8, Out: 4, Weights: w3, Biases: b3},
		Layer{In: 4, Out: 1, Weights: w4, Biases: b4},
	)
	if err != nil {
		panic(err)
	}
	return m
})

// Default returns the built-in model. The result is shared; it is safe for
// concurrent use.
func Default() *Model { return defaultModel() }
