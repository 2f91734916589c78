// Package maths implements the scalar functions the synthesizer is built on.
// Nothing here calls into the platform math library, so rendered audio is
// identical on every architecture.
//
// The transcendental functions are generic over float32 and float64. They
// evaluate in float64 and round once to the caller's type.
package maths

import (
	"math"

	"golang.org/x/exp/constraints"
)

const (
	Pi  = 3.14159265358979323846264338327950288419716939937510582097494459
	Ln2 = 0.693147180559945309417232121458176568075500134360255254120680009

	// LnSentinel is returned by Ln for arguments outside its domain.
	LnSentinel = -1000

	log2e  = 1 / Ln2
	sqrt2  = 1.41421356237309504880168872420969807856967187537694807317667974
	halfPi = Pi / 2

	// 2π split into a head and a tail for argument reduction.
	twoPiHi = 6.28318530717958623200e+00
	twoPiLo = 2.44929359829470635445e-16
)

func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func Abs[T constraints.Signed | constraints.Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

func Sin[F constraints.Float](x F) F { return F(sin(float64(x))) }

// Exp returns e**x. It underflows to 0 for strongly negative x.
func Exp[F constraints.Float](x F) F { return F(exp(float64(x))) }

// Exp2 returns 2**x.
func Exp2[F constraints.Float](x F) F { return F(exp2(float64(x))) }

// Ln returns the natural logarithm of x, or LnSentinel if x <= 0.
func Ln[F constraints.Float](x F) F {
	if x <= 0 {
		return LnSentinel
	}
	return F(ln(float64(x)))
}

// Pow returns base**exp. Pow(b, 0) is 1 for every b; otherwise a
// non-positive base yields 0.
func Pow[F constraints.Float](base, exp F) F {
	switch {
	case exp == 0:
		return 1
	case base <= 0:
		return 0
	case base == 2:
		return F(exp2(float64(exp)))
	}
	return F(expLn(float64(exp), float64(base)))
}

func expLn(y, x float64) float64 { return exp(y * ln(x)) }

func sin(x float64) float64 {
	if x != x || x > math.MaxFloat64 || x < -math.MaxFloat64 {
		return x - x
	}
	k := round(x / twoPiHi)
	r := (x - k*twoPiHi) - k*twoPiLo

	// fold [-π, π] onto [-π/2, π/2]
	if r > halfPi {
		r = Pi - r
	} else if r < -halfPi {
		r = -Pi - r
	}

	r2 := r * r
	return r * (1 + r2*(-1.0/6+r2*(1.0/120+r2*(-1.0/5040+r2*(1.0/362880+r2*(-1.0/39916800+r2*(1.0/6227020800)))))))
}

func exp(x float64) float64 {
	if x != x {
		return x
	}
	return exp2(x * log2e)
}

// exp2 splits y into an integer n and a remainder f in [-0.5, 0.5], so that
// 2**y = 2**f * 2**n. 2**f comes from a series, 2**n from the exponent bits.
func exp2(y float64) float64 {
	switch {
	case y != y:
		return y
	case y > 1024:
		return math.Inf(1)
	case y < -1080:
		return 0
	}
	n := round(y)
	z := (y - n) * Ln2
	p := 1 + z*(1+z*(1.0/2+z*(1.0/6+z*(1.0/24+z*(1.0/120+z*(1.0/720+z*(1.0/5040+z*(1.0/40320+z*(1.0/362880+z*(1.0/3628800+z*(1.0/39916800)))))))))))
	return ldexp(p, int(n))
}

func ldexp(frac float64, n int) float64 {
	for n > 1023 {
		frac *= 0x1p1023
		n -= 1023
	}
	for n < -1022 {
		frac *= 0x1p-1022
		n += 1022
	}
	return frac * math.Float64frombits(uint64(n+1023)<<52)
}

// ln reduces x to m·2**e with m in [√½, √2] and sums the atanh series for
// ln(m).
func ln(x float64) float64 {
	if x != x || x > math.MaxFloat64 {
		return x
	}
	bits := math.Float64bits(x)
	e := int(bits >> 52 & 0x7ff)
	if e == 0 {
		bits = math.Float64bits(x * 0x1p52)
		e = int(bits>>52&0x7ff) - 52
	}
	e -= 1023
	m := math.Float64frombits(bits&^(0x7ff<<52) | 1023<<52)
	if m > sqrt2 {
		m /= 2
		e++
	}

	s := (m - 1) / (m + 1)
	s2 := s * s
	sum := s * (2 + s2*(2.0/3+s2*(2.0/5+s2*(2.0/7+s2*(2.0/9+s2*(2.0/11+s2*(2.0/13+s2*(2.0/15+s2*(2.0/17)))))))))
	return float64(e)*Ln2 + sum
}

// Floor returns the greatest integer value less than or equal to x.
func Floor(x float64) float64 {
	if x != x || x >= 0x1p52 || x <= -0x1p52 {
		return x
	}
	t := float64(int64(x))
	if t > x {
		t--
	}
	return t
}

func round(x float64) float64 {
	if x < 0 {
		return -Floor(-x + 0.5)
	}
	return Floor(x + 0.5)
}
