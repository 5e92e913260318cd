package polarization

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-optics-lab/pkg/core"
)

func TestWollastonPrism_ConservesEnergy(t *testing.T) {
	prism := NewWollastonPrism("w", "Wollaston", core.NewVector2(100, 0), math.Pi/2, 20, math.Pi/6, math.Pi/7)
	origin := core.NewVector2(0, 0)
	dir := core.NewVector2(1, 0)
	hits := prism.Intersect(origin, dir)
	require.Len(t, hits, 1)

	for _, polAngle := range []float64{0, math.Pi / 9, math.Pi / 3} {
		ray := core.NewRay(core.NewRayParams{Origin: origin, Direction: dir, Intensity: 1, MediumIndex: 1})
		ray.SetLinearPolarization(polAngle)
		successors := prism.Interact(&ray, hits[0], newRayCtor())

		total := 0.0
		for _, s := range successors {
			total += s.Intensity
		}
		assert.InDelta(t, 1.0, total, 1e-9)
	}
}

func TestWollastonPrism_DeviatesSymmetrically(t *testing.T) {
	prism := NewWollastonPrism("w", "Wollaston", core.NewVector2(100, 0), math.Pi/2, 20, math.Pi/6, 0)
	origin := core.NewVector2(0, 0)
	dir := core.NewVector2(1, 0)
	hits := prism.Intersect(origin, dir)
	require.Len(t, hits, 1)

	ray := core.NewRay(core.NewRayParams{Origin: origin, Direction: dir, Intensity: 1, MediumIndex: 1})
	ray.SetLinearPolarization(math.Pi / 4)
	successors := prism.Interact(&ray, hits[0], newRayCtor())
	require.Len(t, successors, 2)

	a0 := successors[0].Direction.Angle()
	a1 := successors[1].Direction.Angle()
	assert.InDelta(t, math.Pi/6, math.Abs(a0-a1), 1e-6)
}

func TestWollastonPrism_UnpolarizedInputSplitsFiftyFifty(t *testing.T) {
	prism := NewWollastonPrism("w", "Wollaston", core.NewVector2(100, 0), math.Pi/2, 20, math.Pi/6, math.Pi/7)
	origin := core.NewVector2(0, 0)
	dir := core.NewVector2(1, 0)
	hits := prism.Intersect(origin, dir)
	require.Len(t, hits, 1)

	ray := core.NewRay(core.NewRayParams{Origin: origin, Direction: dir, Intensity: 1, MediumIndex: 1})
	require.Nil(t, ray.Jones)
	successors := prism.Interact(&ray, hits[0], newRayCtor())
	require.Len(t, successors, 2)
	assert.InDelta(t, 0.5, successors[0].Intensity, 1e-9)
	assert.InDelta(t, 0.5, successors[1].Intensity, 1e-9)
}
