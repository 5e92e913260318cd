package dispersive

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-optics-lab/pkg/core"
)

// hitChopperAt builds a ray that strikes the chopper disk at world angle
// theta (measured from its center), approaching radially from outside.
func hitChopperAt(c *OpticalChopper, theta float64) (core.Ray, core.Hit) {
	point := c.pos.Add(core.Vector2FromAngle(theta).Multiply(c.Radius))
	dir := core.Vector2FromAngle(theta).Negate()
	origin := point.Subtract(dir.Multiply(50))
	hits := c.Intersect(origin, dir)
	ray := core.NewRay(core.NewRayParams{Origin: origin, Direction: dir, Intensity: 1, MediumIndex: 1})
	return ray, hits[0]
}

func TestOpticalChopper_BlocksWithinClosedSector(t *testing.T) {
	chopper := NewOpticalChopper("c", "Chopper", core.NewVector2(100, 0), 50, 4, 0.5)
	ray, hit := hitChopperAt(chopper, 0.01) // just inside the blocked sector [0, pi/4)
	successors := chopper.Interact(&ray, hit, newRayCtor())
	assert.Empty(t, successors)
	assert.Equal(t, core.EndReason("blocked_by_chopper"), ray.EndReason)
}

func TestOpticalChopper_TransmitsWithinOpenSector(t *testing.T) {
	chopper := NewOpticalChopper("c", "Chopper", core.NewVector2(100, 0), 50, 4, 0.5)
	slotPeriod := 2 * math.Pi / float64(chopper.NumSlots)
	blockedWidth := (1 - chopper.DutyCycle) * slotPeriod
	ray, hit := hitChopperAt(chopper, blockedWidth+0.1)
	successors := chopper.Interact(&ray, hit, newRayCtor())
	require.Len(t, successors, 1)
	assert.InDelta(t, 1.0, successors[0].Intensity, 1e-9)
	assert.Equal(t, core.EndReason("passed_chopper"), ray.EndReason)
}

func TestOpticalChopper_PhaseShiftsBlockedSector(t *testing.T) {
	chopper := NewOpticalChopper("c", "Chopper", core.NewVector2(100, 0), 50, 4, 0.5)
	chopper.PhaseRad = 0.2
	// theta=0.21 sits just inside the blocked sector once shifted by phase.
	ray, hit := hitChopperAt(chopper, 0.21)
	successors := chopper.Interact(&ray, hit, newRayCtor())
	assert.Empty(t, successors)
	assert.Equal(t, core.EndReason("blocked_by_chopper"), ray.EndReason)
}
