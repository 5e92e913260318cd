package polarization

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-optics-lab/pkg/core"
)

func newRayCtor() core.RayCtor {
	return func(p core.NewRayParams) core.Ray { return core.NewRay(p) }
}

func tracePolarizer(t *testing.T, axisAngle float64, incidentAngle float64) core.Ray {
	t.Helper()
	pol := NewPolarizer("p", "Polarizer", core.NewVector2(100, 0), math.Pi/2, 20, axisAngle)
	origin := core.NewVector2(0, 0)
	dir := core.NewVector2(1, 0)
	hits := pol.Intersect(origin, dir)
	require.Len(t, hits, 1)

	ray := core.NewRay(core.NewRayParams{Origin: origin, Direction: dir, Intensity: 1, MediumIndex: 1})
	ray.SetLinearPolarization(incidentAngle)
	successors := pol.Interact(&ray, hits[0], newRayCtor())
	require.Len(t, successors, 1)
	return successors[0]
}

func TestPolarizer_MalusLaw(t *testing.T) {
	for _, theta := range []float64{0, math.Pi / 6, math.Pi / 4, math.Pi / 3} {
		out := tracePolarizer(t, theta, 0)
		expected := math.Cos(theta) * math.Cos(theta)
		assert.InDelta(t, expected, out.Intensity, 1e-9)
	}
}

func TestPolarizer_Idempotent(t *testing.T) {
	// Passing already-polarized light through a second, identically-aligned
	// polarizer should not attenuate it further (spec.md §8).
	first := tracePolarizer(t, math.Pi/5, 0)

	pol2 := NewPolarizer("p2", "Polarizer 2", core.NewVector2(200, 0), math.Pi/2, 20, math.Pi/5)
	origin := first.Origin
	dir := first.Direction
	hits := pol2.Intersect(origin, dir)
	require.Len(t, hits, 1)
	successors := pol2.Interact(&first, hits[0], newRayCtor())
	require.Len(t, successors, 1)
	assert.InDelta(t, first.Intensity, successors[0].Intensity, 1e-6)
}

func TestPolarizer_CrossedBlocksAllLight(t *testing.T) {
	out := tracePolarizer(t, math.Pi/2, 0)
	assert.InDelta(t, 0.0, out.Intensity, 1e-9)
}

func TestPolarizer_UnpolarizedInputPassesHalfIntensityRegardlessOfAxis(t *testing.T) {
	for _, axis := range []float64{0, math.Pi / 2, math.Pi / 3} {
		pol := NewPolarizer("p", "Polarizer", core.NewVector2(100, 0), math.Pi/2, 20, axis)
		origin := core.NewVector2(0, 0)
		dir := core.NewVector2(1, 0)
		hits := pol.Intersect(origin, dir)
		require.Len(t, hits, 1)

		// A ray with no Jones state set (the unpolarized convention) must not
		// follow Malus's law, unlike a ray explicitly polarized at angle 0.
		ray := core.NewRay(core.NewRayParams{Origin: origin, Direction: dir, Intensity: 1, MediumIndex: 1})
		require.Nil(t, ray.Jones)

		successors := pol.Interact(&ray, hits[0], newRayCtor())
		require.Len(t, successors, 1)
		assert.InDelta(t, 0.5, successors[0].Intensity, 1e-9)
		require.NotNil(t, successors[0].Jones)
		assert.InDelta(t, axis, math.Atan2(real(successors[0].Jones.Ey), real(successors[0].Jones.Ex)), 1e-9)
	}
}
