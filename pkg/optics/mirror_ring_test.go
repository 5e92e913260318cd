package optics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-optics-lab/pkg/core"
)

func TestRingMirror_FullCircleReflectsFromInteriorSurface(t *testing.T) {
	mirror := NewRingMirror("rm", "Ring Mirror", core.NewVector2(0, 0), 100, 1.0)
	origin := core.NewVector2(0, 0)
	dir := core.NewVector2(1, 0)
	hits := mirror.Intersect(origin, dir)
	require.Len(t, hits, 1)
	// Interior normal points back toward the center, opposing the ray.
	assert.InDelta(t, -1, hits[0].Normal.X, 1e-9)

	ray := core.NewRay(core.NewRayParams{Origin: origin, Direction: dir, Intensity: 1, MediumIndex: 1})
	successors := mirror.Interact(&ray, hits[0], newRayCtor())
	require.Len(t, successors, 1)
	assert.InDelta(t, -1, successors[0].Direction.X, 1e-9)
}

func TestRingMirror_ArcExcludesPointsOutsideSpan(t *testing.T) {
	mirror := NewRingMirrorArc("rm", "Ring Arc", core.NewVector2(0, 0), 100, 0, math.Pi/2, 1.0)

	within := core.NewVector2(100*math.Cos(math.Pi/4), 100*math.Sin(math.Pi/4))
	assert.True(t, mirror.ContainsPoint(within))

	outside := core.NewVector2(-100, 0) // angle pi, outside [0, pi/2]
	assert.False(t, mirror.ContainsPoint(outside))
}

func TestRingMirror_ReflectivityScalesIntensity(t *testing.T) {
	mirror := NewRingMirror("rm", "Ring Mirror", core.NewVector2(0, 0), 100, 0.8)
	origin := core.NewVector2(0, 0)
	dir := core.NewVector2(1, 0)
	hits := mirror.Intersect(origin, dir)
	require.Len(t, hits, 1)

	ray := core.NewRay(core.NewRayParams{Origin: origin, Direction: dir, Intensity: 1, MediumIndex: 1})
	successors := mirror.Interact(&ray, hits[0], newRayCtor())
	require.Len(t, successors, 1)
	assert.InDelta(t, 0.8, successors[0].Intensity, 1e-9)
}
