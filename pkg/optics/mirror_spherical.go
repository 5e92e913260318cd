package optics

import "github.com/df07/go-optics-lab/pkg/core"

// SphericalMirror is a circular-arc mirror: positive Radius curves toward
// the side the mirror faces (concave), negative Radius curves away
// (convex). ApertureWidth bounds the usable patch of the underlying circle
// to a finite mirror around the vertex (spec.md §4.5).
type SphericalMirror struct {
	base
	Radius        float64
	ApertureWidth float64
	Reflectivity  float64

	circ circle
}

// NewSphericalMirror creates a spherical-arc mirror. pos is the vertex
// (center of the usable patch); angleRad is the direction the mirror faces
// (its nominal front-surface normal at the vertex).
func NewSphericalMirror(id core.ComponentId, label string, pos core.Vector2, angleRad, radius, apertureWidth, reflectivity float64) *SphericalMirror {
	m := &SphericalMirror{
		base:          newBase(id, label, pos, angleRad),
		Radius:        radius,
		ApertureWidth: apertureWidth,
		Reflectivity:  reflectivity,
	}
	m.recompute()
	return m
}

func (m *SphericalMirror) recompute() {
	facing := core.Vector2FromAngle(m.angle)
	center := m.pos.Add(facing.Multiply(m.Radius))
	radiusAbs := m.Radius
	if radiusAbs < 0 {
		radiusAbs = -radiusAbs
	}
	m.circ = circle{Center: center, Radius: radiusAbs}
}

func (m *SphericalMirror) BoundingBox() core.Bounds2D {
	half := m.ApertureWidth / 2
	return core.NewBounds2D(
		core.NewVector2(m.pos.X-half, m.pos.Y-half),
		core.NewVector2(m.pos.X+half, m.pos.Y+half),
	)
}

func (m *SphericalMirror) ContainsPoint(p core.Vector2) bool {
	return m.pos.DistanceTo(p) <= m.ApertureWidth/2+epsilon
}

func (m *SphericalMirror) Intersect(origin, direction core.Vector2) []core.Hit {
	ts := m.circ.IntersectRay(origin, direction)
	facing := core.Vector2FromAngle(m.angle)

	var hits []core.Hit
	for _, t := range ts {
		point := origin.Add(direction.Multiply(t))
		if m.pos.DistanceTo(point) > m.ApertureWidth/2 {
			continue // outside the finite mirror patch
		}

		raw := point.Subtract(m.circ.Center).Normalize()
		// Orient the normal to the side the mirror nominally faces, then
		// flip it to oppose the incident ray (spec.md §4.3).
		n := raw
		if n.Dot(facing) < 0 {
			n = n.Negate()
		}
		if n.Dot(direction) > 0 {
			n = n.Negate()
		}

		hits = append(hits, core.Hit{Distance: t, Point: point, Normal: n, Surface: "arc"})
	}
	return hits
}

func (m *SphericalMirror) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	reflectivity := m.Reflectivity
	if reflectivity <= 0 {
		reflectivity = 1
	}
	reflected := reflectRay(ray, hit, newRay, reflectivity)
	ray.Terminate(core.EndReason("reflected"))
	return []core.Ray{reflected}
}

func (m *SphericalMirror) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{
		"radius":         {Float: m.Radius},
		"aperture_width": {Float: m.ApertureWidth},
		"reflectivity":   {Float: m.Reflectivity},
	}
}

func (m *SphericalMirror) SetProperty(name string, value core.PropertyValue) core.Changed {
	switch name {
	case "radius":
		m.Radius = value.Float
		m.recompute()
		return core.Retrace
	case "aperture_width":
		m.ApertureWidth = value.Float
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
