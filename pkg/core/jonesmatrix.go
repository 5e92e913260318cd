package core

import (
	"math"

	"gonum.org/v1/gonum/cmplxs"
)

// JonesMatrix is a 2x2 complex Jones matrix in the world (x, y) frame, stored
// as two row vectors so each row can be reduced with gonum's cmplxs.Dot
// instead of hand-expanding the four complex products.
type JonesMatrix struct {
	Row0, Row1 [2]complex128
}

// IdentityJonesMatrix returns the 2x2 identity.
func IdentityJonesMatrix() JonesMatrix {
	return JonesMatrix{
		Row0: [2]complex128{1, 0},
		Row1: [2]complex128{0, 1},
	}
}

// RotationJonesMatrix returns the Jones rotation matrix R(theta):
// [[cos, -sin], [sin, cos]].
func RotationJonesMatrix(theta float64) JonesMatrix {
	c, s := math.Cos(theta), math.Sin(theta)
	return JonesMatrix{
		Row0: [2]complex128{complex(c, 0), complex(-s, 0)},
		Row1: [2]complex128{complex(s, 0), complex(c, 0)},
	}
}

// DiagJonesMatrix returns diag(a, b), used for retarder matrices in the fast/
// slow-axis frame (e.g. diag(1, -1) for a half-wave plate, diag(1, i) for a
// quarter-wave plate).
func DiagJonesMatrix(a, b complex128) JonesMatrix {
	return JonesMatrix{
		Row0: [2]complex128{a, 0},
		Row1: [2]complex128{0, b},
	}
}

// Mul returns the matrix product m * other.
func (m JonesMatrix) Mul(other JonesMatrix) JonesMatrix {
	col0 := [2]complex128{other.Row0[0], other.Row1[0]}
	col1 := [2]complex128{other.Row0[1], other.Row1[1]}
	return JonesMatrix{
		Row0: [2]complex128{
			cmplxs.Dot(m.Row0[:], col0[:]),
			cmplxs.Dot(m.Row0[:], col1[:]),
		},
		Row1: [2]complex128{
			cmplxs.Dot(m.Row1[:], col0[:]),
			cmplxs.Dot(m.Row1[:], col1[:]),
		},
	}
}

// ApplyTo transforms a Jones vector by this matrix.
func (m JonesMatrix) ApplyTo(j JonesVector) JonesVector {
	v := [2]complex128{j.Ex, j.Ey}
	return JonesVector{
		Ex: cmplxs.Dot(m.Row0[:], v[:]),
		Ey: cmplxs.Dot(m.Row1[:], v[:]),
	}
}

// InFrame conjugates a retarder matrix (defined in a fast/slow-axis frame)
// into the world frame rotated by theta: R(theta) * retarder * R(-theta).
// This is the construction spec.md's half/quarter-wave plates share.
func (retarder JonesMatrix) InFrame(theta float64) JonesMatrix {
	return RotationJonesMatrix(theta).Mul(retarder).Mul(RotationJonesMatrix(-theta))
}
