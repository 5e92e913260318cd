package core

import (
	"math"
	"math/cmplx"
)

// JonesVector is the transverse polarization state of a monochromatic ray in
// the world (x, y) frame: a pair of complex amplitudes (Ex, Ey). Go's native
// complex128 is used for the scalar amplitudes rather than a hand-rolled
// {re, im} struct — it already carries the arithmetic spec.md's Complex
// scalar needs.
type JonesVector struct {
	Ex, Ey complex128
}

// NewLinearJones builds a real, unit-amplitude linear Jones vector at angle theta.
func NewLinearJones(theta float64) JonesVector {
	return JonesVector{
		Ex: complex(math.Cos(theta), 0),
		Ey: complex(math.Sin(theta), 0),
	}
}

// NewCircularJones builds a unit-intensity circular Jones vector; right=true for
// right-circular, (1, -i)/sqrt2, false for left-circular, (1, i)/sqrt2.
//
// Convention note: this follows the common optics-engineering sign convention
// (right circular lags in +i); it is internally consistent for the tracer's
// own invariants even though conventions vary across optics texts.
func NewCircularJones(right bool) JonesVector {
	const invSqrt2 = 0.7071067811865476
	if right {
		return JonesVector{Ex: complex(invSqrt2, 0), Ey: complex(0, -invSqrt2)}
	}
	return JonesVector{Ex: complex(invSqrt2, 0), Ey: complex(0, invSqrt2)}
}

// Intensity returns |Ex|^2 + |Ey|^2.
func (j JonesVector) Intensity() float64 {
	return cmplx.Abs(j.Ex)*cmplx.Abs(j.Ex) + cmplx.Abs(j.Ey)*cmplx.Abs(j.Ey)
}

// Scale returns j with both amplitudes scaled by a real factor.
func (j JonesVector) Scale(factor float64) JonesVector {
	s := complex(factor, 0)
	return JonesVector{Ex: j.Ex * s, Ey: j.Ey * s}
}

// Normalized returns j rescaled to unit intensity, or the zero vector if j is
// (numerically) zero.
func (j JonesVector) Normalized() JonesVector {
	i := j.Intensity()
	if i < 1e-18 {
		return JonesVector{}
	}
	return j.Scale(1 / math.Sqrt(i))
}

// IsZero reports whether the vector carries no energy.
func (j JonesVector) IsZero() bool {
	return j.Intensity() < 1e-18
}
