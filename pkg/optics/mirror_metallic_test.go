package optics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-optics-lab/pkg/core"
)

func TestMetallicMirror_ReflectivityScalesIntensity(t *testing.T) {
	mirror := NewMetallicMirror("mm", "Metallic Mirror", core.NewVector2(100, 0), math.Pi*3/4, 50, 0.92)
	origin := core.NewVector2(0, 0)
	dir := core.NewVector2(1, 0)
	hits := mirror.Intersect(origin, dir)
	require.Len(t, hits, 1)

	ray := core.NewRay(core.NewRayParams{Origin: origin, Direction: dir, Intensity: 1, MediumIndex: 1})
	successors := mirror.Interact(&ray, hits[0], newRayCtor())
	require.Len(t, successors, 1)
	assert.InDelta(t, 0.92, successors[0].Intensity, 1e-9)
	assert.Equal(t, core.EndReason("reflected"), ray.EndReason)
}

func TestMetallicMirror_FortyFiveDegreeReflectsNinetyDegrees(t *testing.T) {
	mirror := NewMetallicMirror("mm", "Metallic Mirror", core.NewVector2(100, 0), math.Pi*3/4, 50, 0.95)
	origin := core.NewVector2(0, 0)
	dir := core.NewVector2(1, 0)
	hits := mirror.Intersect(origin, dir)
	require.Len(t, hits, 1)

	ray := core.NewRay(core.NewRayParams{Origin: origin, Direction: dir, Intensity: 1, MediumIndex: 1})
	successors := mirror.Interact(&ray, hits[0], newRayCtor())
	require.Len(t, successors, 1)
	assert.InDelta(t, 0, successors[0].Direction.Dot(dir), 1e-9)
}
