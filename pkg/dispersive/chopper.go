package dispersive

import (
	"math"

	"github.com/df07/go-optics-lab/pkg/core"
)

// OpticalChopper is a rotating disk with NumSlots blades and duty cycle D:
// a ray hitting the disk is blocked if its angular position modulo
// 2*pi/NumSlots falls within the closed blocked sector
// [0, (1-D)*2*pi/NumSlots), else transmitted unchanged (spec.md §4.7).
// PhaseRad models the disk's current rotational offset.
type OpticalChopper struct {
	base
	Radius   float64
	NumSlots int
	DutyCycle float64
	PhaseRad float64
}

// NewOpticalChopper creates a chopper disk of the given radius, slot
// count, and duty cycle (fraction of each slot period left open).
func NewOpticalChopper(id core.ComponentId, label string, pos core.Vector2, radius float64, numSlots int, dutyCycle float64) *OpticalChopper {
	return &OpticalChopper{
		base: newBase(id, label, pos, 0), Radius: radius, NumSlots: numSlots, DutyCycle: dutyCycle,
	}
}

func (c *OpticalChopper) BoundingBox() core.Bounds2D {
	r := c.Radius
	return core.NewBounds2D(core.NewVector2(c.pos.X-r, c.pos.Y-r), core.NewVector2(c.pos.X+r, c.pos.Y+r))
}

func (c *OpticalChopper) ContainsPoint(p core.Vector2) bool {
	return c.pos.DistanceTo(p) <= c.Radius+epsilon
}

func (c *OpticalChopper) Intersect(origin, direction core.Vector2) []core.Hit {
	disk := circle{Center: c.pos, Radius: c.Radius}
	ts := disk.IntersectRay(origin, direction)
	if len(ts) == 0 {
		return nil
	}
	t := ts[0]
	point := origin.Add(direction.Multiply(t))
	n := point.Subtract(c.pos).Normalize()
	if n.Dot(direction) > 0 {
		n = n.Negate()
	}
	return []core.Hit{{Distance: t, Point: point, Normal: n, Surface: "disk"}}
}

func (c *OpticalChopper) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	rel := hit.Point.Subtract(c.pos)
	theta := math.Atan2(rel.Y, rel.X) - c.PhaseRad
	slotPeriod := 2 * math.Pi / float64(c.NumSlots)
	pos := math.Mod(theta, slotPeriod)
	if pos < 0 {
		pos += slotPeriod
	}

	blockedWidth := (1 - c.DutyCycle) * slotPeriod
	if pos < blockedWidth {
		ray.Terminate(core.EndReason("blocked_by_chopper"))
		return nil
	}

	transmitted := buildSuccessor(ray, hit, newRay, ray.Direction, ray.Intensity, ray.MediumRefractiveIndex)
	ray.Terminate(core.EndReason("passed_chopper"))
	return []core.Ray{transmitted}
}

func (c *OpticalChopper) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{
		"radius":     {Float: c.Radius},
		"num_slots":  {Float: float64(c.NumSlots)},
		"duty_cycle": {Float: c.DutyCycle},
		"phase_rad":  {Float: c.PhaseRad},
	}
}

func (c *OpticalChopper) SetProperty(name string, value core.PropertyValue) core.Changed {
	switch name {
	case "duty_cycle":
		c.DutyCycle = value.Float
		return core.Retrace
	case "phase_rad":
		c.PhaseRad = value.Float
		return core.Retrace
	case "num_slots":
		c.NumSlots = int(value.Float)
		return core.Retrace
	case "enabled":
		return c.SetEnabled(value.Bool)
	default:
		return core.Unchanged
	}
}
