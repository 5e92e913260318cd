package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSellmeier_BK7_NormalDispersion(t *testing.T) {
	// Index should decrease monotonically with wavelength across the
	// visible band (normal dispersion) for all four tabulated glasses.
	for _, m := range []SellmeierMaterial{BK7, SF11, FusedSilica, FlintGlass} {
		nBlue := m.RefractiveIndex(450)
		nRed := m.RefractiveIndex(650)
		assert.Greater(t, nBlue, nRed, "%s: expected blue index > red index", m.Name)
	}
}

func TestSellmeier_BK7_KnownValue(t *testing.T) {
	// BK7 at d-line (587.6nm) is documented around n=1.5168.
	n := BK7.RefractiveIndex(587.6)
	assert.InDelta(t, 1.5168, n, 0.001)
}

func TestSellmeierByName(t *testing.T) {
	m, ok := SellmeierByName("BK7")
	assert.True(t, ok)
	assert.Equal(t, BK7, m)

	_, ok = SellmeierByName("Unobtanium")
	assert.False(t, ok)
}

func TestCauchyIndex_MatchesN0At550(t *testing.T) {
	n := CauchyIndex(1.5, 0.004, 550)
	assert.InDelta(t, 1.5, n, 1e-9)
}

func TestCauchyIndex_NormalDispersion(t *testing.T) {
	nBlue := CauchyIndex(1.5, 0.004, 450)
	nRed := CauchyIndex(1.5, 0.004, 650)
	assert.Greater(t, nBlue, nRed)
}
