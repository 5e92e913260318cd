package optics

import (
	"math"

	"github.com/df07/go-optics-lab/pkg/core"
)

// ParabolicMirror is a parabolic-arc mirror: in the local frame with its
// vertex at pos and axis along angleRad, the surface satisfies
// s = w^2/(4*FocalLength), where s runs along the axis and w perpendicular
// to it. FocalLength is signed the same way SphericalMirror.Radius is:
// positive opens toward the side the mirror faces (spec.md §4.5).
type ParabolicMirror struct {
	base
	FocalLength   float64
	ApertureWidth float64
	Reflectivity  float64
}

// NewParabolicMirror creates a parabolic mirror with the given focal length
// (vertex at pos, axis along angleRad) and aperture width.
func NewParabolicMirror(id core.ComponentId, label string, pos core.Vector2, angleRad, focalLength, apertureWidth, reflectivity float64) *ParabolicMirror {
	return &ParabolicMirror{
		base:          newBase(id, label, pos, angleRad),
		FocalLength:   focalLength,
		ApertureWidth: apertureWidth,
		Reflectivity:  reflectivity,
	}
}

func (m *ParabolicMirror) axes() (u, v core.Vector2) {
	u = core.Vector2FromAngle(m.angle)
	v = u.Rotate(math.Pi / 2)
	return
}

func (m *ParabolicMirror) BoundingBox() core.Bounds2D {
	half := m.ApertureWidth
	return core.NewBounds2D(
		core.NewVector2(m.pos.X-half, m.pos.Y-half),
		core.NewVector2(m.pos.X+half, m.pos.Y+half),
	)
}

func (m *ParabolicMirror) ContainsPoint(p core.Vector2) bool {
	_, v := m.axes()
	w := p.Subtract(m.pos).Dot(v)
	return math.Abs(w) <= m.ApertureWidth/2+epsilon
}

func (m *ParabolicMirror) Intersect(origin, direction core.Vector2) []core.Hit {
	u, v := m.axes()
	f := m.FocalLength
	if math.Abs(f) < epsilon {
		return nil
	}

	rel := origin.Subtract(m.pos)
	os, ow := rel.Dot(u), rel.Dot(v)
	ds, dw := direction.Dot(u), direction.Dot(v)

	// dw^2 t^2 + (2*ow*dw - 4f*ds) t + (ow^2 - 4f*os) = 0
	a := dw * dw
	b := 2*ow*dw - 4*f*ds
	c := ow*ow - 4*f*os

	var ts []float64
	if math.Abs(a) < 1e-12 {
		if math.Abs(b) > 1e-12 {
			ts = append(ts, -c/b)
		}
	} else {
		disc := b*b - 4*a*c
		if disc < 0 {
			return nil
		}
		sq := math.Sqrt(disc)
		ts = append(ts, (-b-sq)/(2*a), (-b+sq)/(2*a))
	}

	var hits []core.Hit
	for _, t := range ts {
		if t <= epsilon {
			continue
		}
		w := ow + t*dw
		if math.Abs(w) > m.ApertureWidth/2 {
			continue
		}
		point := origin.Add(direction.Multiply(t))

		// Tangent to the parabola at this w, parametrized by w: d(point)/dw
		// has axis-component w/(2f) and perpendicular-component 1.
		tangent := u.Multiply(w / (2 * f)).Add(v).Normalize()
		n := tangent.Rotate(math.Pi / 2)
		if n.Dot(u) < 0 {
			n = n.Negate() // orient toward the side the mirror nominally faces
		}
		if n.Dot(direction) > 0 {
			n = n.Negate() // oppose the incident ray (spec.md §4.3)
		}

		hits = append(hits, core.Hit{Distance: t, Point: point, Normal: n, Surface: "arc"})
	}
	return hits
}

func (m *ParabolicMirror) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	reflectivity := m.Reflectivity
	if reflectivity <= 0 {
		reflectivity = 1
	}
	reflected := reflectRay(ray, hit, newRay, reflectivity)
	ray.Terminate(core.EndReason("reflected"))
	return []core.Ray{reflected}
}

func (m *ParabolicMirror) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{
		"focal_length":   {Float: m.FocalLength},
		"aperture_width": {Float: m.ApertureWidth},
		"reflectivity":   {Float: m.Reflectivity},
	}
}

func (m *ParabolicMirror) SetProperty(name string, value core.PropertyValue) core.Changed {
	switch name {
	case "focal_length":
		m.FocalLength = value.Float
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
