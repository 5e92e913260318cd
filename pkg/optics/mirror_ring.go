package optics

import (
	"math"

	"github.com/df07/go-optics-lab/pkg/core"
)

// RingMirror is a circular-arc mirror reflecting off the inside of a full
// or partial ring, used to build closed or near-closed cavity loops
// (spec.md §4.5's mirror family). Center is the ring's geometric center;
// unlike SphericalMirror, Pose()'s angle is always 0 and unused: a partial
// arc is set by StartAngleRad/EndAngleRad alone.
type RingMirror struct {
	base
	Radius         float64
	StartAngleRad  float64
	EndAngleRad    float64
	FullCircle     bool
	Reflectivity   float64

	circ circle
}

// NewRingMirror creates a full ring mirror of the given radius centered at
// pos, reflecting off its interior surface.
func NewRingMirror(id core.ComponentId, label string, pos core.Vector2, radius, reflectivity float64) *RingMirror {
	return &RingMirror{
		base:         newBase(id, label, pos, 0),
		Radius:       radius,
		FullCircle:   true,
		Reflectivity: reflectivity,
		circ:         circle{Center: pos, Radius: radius},
	}
}

// NewRingMirrorArc creates a partial ring mirror covering only the angular
// span [startAngleRad, endAngleRad], both ends included, measured from the
// center.
func NewRingMirrorArc(id core.ComponentId, label string, pos core.Vector2, radius, startAngleRad, endAngleRad, reflectivity float64) *RingMirror {
	return &RingMirror{
		base:          newBase(id, label, pos, 0),
		Radius:        radius,
		StartAngleRad: startAngleRad,
		EndAngleRad:   endAngleRad,
		Reflectivity:  reflectivity,
		circ:          circle{Center: pos, Radius: radius},
	}
}

func (m *RingMirror) BoundingBox() core.Bounds2D {
	r := m.Radius
	return core.NewBounds2D(
		core.NewVector2(m.pos.X-r, m.pos.Y-r),
		core.NewVector2(m.pos.X+r, m.pos.Y+r),
	)
}

func (m *RingMirror) ContainsPoint(p core.Vector2) bool {
	d := m.pos.DistanceTo(p)
	if math.Abs(d-m.Radius) > epsilon {
		return false
	}
	return m.FullCircle || m.withinArc(p)
}

func (m *RingMirror) withinArc(p core.Vector2) bool {
	a := math.Atan2(p.Y-m.pos.Y, p.X-m.pos.X)
	span := normalizeAngleSpan(m.StartAngleRad, m.EndAngleRad)
	rel := normalizeAngleSpan(m.StartAngleRad, a)
	return rel <= span
}

func normalizeAngleSpan(start, end float64) float64 {
	span := end - start
	for span < 0 {
		span += 2 * math.Pi
	}
	for span > 2*math.Pi {
		span -= 2 * math.Pi
	}
	return span
}

func (m *RingMirror) Intersect(origin, direction core.Vector2) []core.Hit {
	ts := m.circ.IntersectRay(origin, direction)

	var hits []core.Hit
	for _, t := range ts {
		point := origin.Add(direction.Multiply(t))
		if !m.FullCircle && !m.withinArc(point) {
			continue
		}

		// Interior surface: normal points from the point toward the center.
		n := m.circ.Center.Subtract(point).Normalize()
		if n.Dot(direction) > 0 {
			n = n.Negate()
		}

		hits = append(hits, core.Hit{Distance: t, Point: point, Normal: n, Surface: "arc"})
	}
	return hits
}

func (m *RingMirror) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	reflectivity := m.Reflectivity
	if reflectivity <= 0 {
		reflectivity = 1
	}
	reflected := reflectRay(ray, hit, newRay, reflectivity)
	ray.Terminate(core.EndReason("reflected"))
	return []core.Ray{reflected}
}

func (m *RingMirror) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{
		"radius":          {Float: m.Radius},
		"start_angle_rad": {Float: m.StartAngleRad},
		"end_angle_rad":   {Float: m.EndAngleRad},
		"full_circle":     {Bool: m.FullCircle},
		"reflectivity":    {Float: m.Reflectivity},
	}
}

func (m *RingMirror) SetProperty(name string, value core.PropertyValue) core.Changed {
	switch name {
	case "radius":
		m.Radius = value.Float
		m.circ.Radius = value.Float
		return core.Retrace
	case "full_circle":
		m.FullCircle = value.Bool
		return core.Retrace
	case "start_angle_rad":
		m.StartAngleRad = value.Float
		return core.Retrace
	case "end_angle_rad":
		m.EndAngleRad = value.Float
		return core.Retrace
	case "reflectivity":
		m.Reflectivity = value.Float
		return core.Retrace
	case "enabled":
		return m.SetEnabled(value.Bool)
	default:
		return core.Unchanged
	}
}
