package dispersive

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-optics-lab/pkg/config"
	"github.com/df07/go-optics-lab/pkg/core"
)

func bk7Prism() *Prism {
	vertices := [3]core.Vector2{
		core.NewVector2(150, -40), core.NewVector2(150, 40), core.NewVector2(220, 0),
	}
	return NewSellmeierPrism("p", "BK7 Prism", vertices, config.BK7)
}

func TestPrism_IndexAt_FollowsSellmeierDispersion(t *testing.T) {
	p := bk7Prism()
	nBlue := p.indexAt(486.1)
	nRed := p.indexAt(656.3)
	assert.Greater(t, nBlue, nRed) // normal dispersion: shorter wavelength bends more
}

func TestPrism_CauchyIndex_MatchesConfiguredN0At550(t *testing.T) {
	vertices := [3]core.Vector2{
		core.NewVector2(150, -40), core.NewVector2(150, 40), core.NewVector2(220, 0),
	}
	p := NewCauchyPrism("p", "Cauchy Prism", vertices, 1.52, 0.004)
	assert.InDelta(t, 1.52, p.indexAt(550), 1e-9)
}

func TestPrism_NormalIncidenceSplitsEnergyConservingly(t *testing.T) {
	p := bk7Prism()
	origin := core.NewVector2(0, 0)
	dir := core.NewVector2(1, 0)
	hits := p.Intersect(origin, dir)
	require.NotEmpty(t, hits)

	ray := core.NewRay(core.NewRayParams{Origin: origin, Direction: dir, Intensity: 1, MediumIndex: 1, WavelengthNM: 587.6})
	successors := p.Interact(&ray, hits[0], newRayCtor())
	require.NotEmpty(t, successors)

	total := 0.0
	for _, s := range successors {
		total += s.Intensity
	}
	assert.InDelta(t, 1.0, total, 1e-9)
	assert.Equal(t, core.EndReason("split"), ray.EndReason)
}

func TestPrism_TIROnlyReflects(t *testing.T) {
	p := bk7Prism()
	glassIndex := p.indexAt(587.6)

	// Ray inside the glass hitting an edge beyond the critical angle,
	// built the same way as DielectricBlock's TIR fixture: direction and
	// hit normal both derived from the incidence angle directly.
	critical := math.Asin(1.0 / glassIndex)
	theta := critical + 0.15
	dir := core.NewVector2(math.Sin(theta), -math.Cos(theta))
	normal := core.NewVector2(0, 1)
	hit := core.Hit{
		Distance: 10, Point: core.NewVector2(150, -40), Normal: normal,
		Surface: "edge0", Extra: map[string]float64{"raw_normal_x": 0, "raw_normal_y": -1},
	}
	ray := core.NewRay(core.NewRayParams{
		Origin: core.NewVector2(150, -50), Direction: dir, Intensity: 1, MediumIndex: glassIndex, WavelengthNM: 587.6,
	})
	successors := p.Interact(&ray, hit, newRayCtor())
	require.Len(t, successors, 1)
	assert.InDelta(t, 1.0, successors[0].Intensity, 1e-9)
	assert.Equal(t, core.EndReason("tir"), ray.EndReason)
}
