package optics

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

func TestFlatMirror_NormalIncidenceReflectsBack(t *testing.T) {
	mirror := NewFlatMirror("m", "Mirror", core.NewVector2(100, 0), math.Pi/2, 50, 1.0)
	origin := core.NewVector2(0, 0)
	dir := core.NewVector2(1, 0)

	hits := mirror.Intersect(origin, dir)
	require.Len(t, hits, 1)

	ray := core.NewRay(core.NewRayParams{Origin: origin, Direction: dir, Intensity: 1, MediumIndex: 1})
	successors := mirror.Interact(&ray, hits[0], newRayCtor())
	require.Len(t, successors, 1)

	assert.InDelta(t, -1.0, successors[0].Direction.X, 1e-9)
	assert.InDelta(t, 0.0, successors[0].Direction.Y, 1e-9)
	assert.InDelta(t, 1.0, successors[0].Intensity, 1e-9)
	assert.True(t, ray.Terminated)
	assert.Equal(t, core.EndReason("reflected"), ray.EndReason)
}

func TestFlatMirror_ReflectivityScalesIntensity(t *testing.T) {
	mirror := NewFlatMirror("m", "Mirror", core.NewVector2(100, 0), math.Pi/2, 50, 0.5)
	origin := core.NewVector2(0, 0)
	dir := core.NewVector2(1, 0)
	hits := mirror.Intersect(origin, dir)
	require.Len(t, hits, 1)

	ray := core.NewRay(core.NewRayParams{Origin: origin, Direction: dir, Intensity: 2, MediumIndex: 1})
	successors := mirror.Interact(&ray, hits[0], newRayCtor())
	require.Len(t, successors, 1)
	assert.InDelta(t, 1.0, successors[0].Intensity, 1e-9)
}

func TestSphericalMirror_FocusesParallelBeamNearFocalPoint(t *testing.T) {
	// A concave spherical mirror of radius R has focal length R/2; a ray
	// parallel to the axis, close to the vertex, should cross the axis near
	// the focal point after reflecting.
	radius := 200.0
	mirror := NewSphericalMirror("sm", "Spherical Mirror", core.NewVector2(300, 0), math.Pi, radius, 80, 1.0)

	origin := core.NewVector2(0, 5)
	dir := core.NewVector2(1, 0)
	hits := mirror.Intersect(origin, dir)
	require.NotEmpty(t, hits)

	ray := core.NewRay(core.NewRayParams{Origin: origin, Direction: dir, Intensity: 1, MediumIndex: 1})
	successors := mirror.Interact(&ray, hits[0], newRayCtor())
	require.Len(t, successors, 1)

	// Extrapolate the reflected ray to where it crosses y=0.
	s := successors[0]
	if math.Abs(s.Direction.Y) > 1e-9 {
		param := -s.Origin.Y / s.Direction.Y
		crossX := s.Origin.X + s.Direction.X*param
		focalX := mirror.pos.X - radius/2
		assert.InDelta(t, focalX, crossX, 10) // loose tolerance, paraxial approx
	}
}
