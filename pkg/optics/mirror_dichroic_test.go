package optics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-optics-lab/pkg/core"
)

func TestDichroicMirror_HighPassReflectsAboveCutoff(t *testing.T) {
	mirror := NewDichroicMirror("dm", "Dichroic", core.NewVector2(100, 0), math.Pi*3/4, 50, 500, true)
	origin := core.NewVector2(0, 0)
	dir := core.NewVector2(1, 0)
	hits := mirror.Intersect(origin, dir)
	require.Len(t, hits, 1)

	above := core.NewRay(core.NewRayParams{Origin: origin, Direction: dir, Intensity: 1, MediumIndex: 1, WavelengthNM: 600})
	aboveSuccessors := mirror.Interact(&above, hits[0], newRayCtor())
	require.Len(t, aboveSuccessors, 2)
	assert.InDelta(t, 0.98, aboveSuccessors[0].Intensity, 0.02)

	below := core.NewRay(core.NewRayParams{Origin: origin, Direction: dir, Intensity: 1, MediumIndex: 1, WavelengthNM: 400})
	belowSuccessors := mirror.Interact(&below, hits[0], newRayCtor())
	require.Len(t, belowSuccessors, 2)
	assert.InDelta(t, 0.02, belowSuccessors[0].Intensity, 0.02)
}

func TestDichroicMirror_ConservesEnergyAcrossTransmitAndReflect(t *testing.T) {
	mirror := NewDichroicMirror("dm", "Dichroic", core.NewVector2(100, 0), math.Pi*3/4, 50, 500, false)
	origin := core.NewVector2(0, 0)
	dir := core.NewVector2(1, 0)
	hits := mirror.Intersect(origin, dir)
	require.Len(t, hits, 1)

	ray := core.NewRay(core.NewRayParams{Origin: origin, Direction: dir, Intensity: 1, MediumIndex: 1, WavelengthNM: 480})
	successors := mirror.Interact(&ray, hits[0], newRayCtor())
	require.Len(t, successors, 2)

	total := 0.0
	for _, s := range successors {
		total += s.Intensity
	}
	assert.InDelta(t, 1.0, total, 1e-9)
	assert.Equal(t, core.EndReason("split"), ray.EndReason)
}
