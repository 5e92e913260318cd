package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagJonesMatrix_Polarizer(t *testing.T) {
	// A horizontal polarizer (diag(1,0)) fully passes horizontal light and
	// fully blocks vertical light.
	m := DiagJonesMatrix(1, 0)
	h := m.ApplyTo(NewLinearJones(0))
	v := m.ApplyTo(NewLinearJones(math.Pi / 2))
	assert.InDelta(t, 1.0, h.Intensity(), 1e-9)
	assert.InDelta(t, 0.0, v.Intensity(), 1e-9)
}

func TestJonesMatrix_InFrame_MalusLaw(t *testing.T) {
	// A linear polarizer rotated by theta passes cos^2(theta) of incident
	// horizontally-polarized intensity (Malus's law), spec.md §8.
	polarizer := DiagJonesMatrix(1, 0)
	incident := NewLinearJones(0)
	for _, theta := range []float64{0, math.Pi / 6, math.Pi / 4, math.Pi / 3, math.Pi / 2} {
		out := polarizer.InFrame(theta).ApplyTo(incident)
		expected := math.Cos(theta) * math.Cos(theta)
		assert.InDelta(t, expected, out.Intensity(), 1e-9)
	}
}

func TestHalfWaveRetarder_Reflection(t *testing.T) {
	// diag(1,-1) at 0deg leaves horizontal/vertical light unchanged in
	// intensity but flips the sign of the vertical component.
	retarder := DiagJonesMatrix(1, -1)
	j := retarder.ApplyTo(JonesVector{Ex: 1, Ey: 1})
	assert.InDelta(t, 1.0, real(j.Ex), 1e-9)
	assert.InDelta(t, -1.0, real(j.Ey), 1e-9)
}

func TestRotationJonesMatrix_Identity(t *testing.T) {
	m := RotationJonesMatrix(0)
	id := IdentityJonesMatrix()
	assert.Equal(t, id, m)
}

func TestJonesMatrix_Mul_Associative(t *testing.T) {
	a := RotationJonesMatrix(0.3)
	b := DiagJonesMatrix(1, -1)
	c := RotationJonesMatrix(-0.3)
	left := a.Mul(b).Mul(c)
	right := a.Mul(b.Mul(c))
	assert.InDelta(t, real(left.Row0[0]), real(right.Row0[0]), 1e-9)
	assert.InDelta(t, real(left.Row1[1]), real(right.Row1[1]), 1e-9)
}
