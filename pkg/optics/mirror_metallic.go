package optics

import "github.com/df07/go-optics-lab/pkg/core"

// MetallicMirror is a flat-segment mirror whose reflectivity is fixed below
// unity to model ordinary metal-coated optics, as distinct from an
// idealized FlatMirror (spec.md §4.5's mirror family lists Metallic
// alongside Flat).
type MetallicMirror struct {
	base
	seg          segment
	Length       float64
	Reflectivity float64
}

// NewMetallicMirror creates a metallic mirror with the given reflectivity,
// typically in [0.85, 0.98] for common coatings.
func NewMetallicMirror(id core.ComponentId, label string, pos core.Vector2, angleRad, length, reflectivity float64) *MetallicMirror {
	return &MetallicMirror{
		base:         newBase(id, label, pos, angleRad),
		seg:          segmentAt(pos, angleRad, length),
		Length:       length,
		Reflectivity: reflectivity,
	}
}

func (m *MetallicMirror) BoundingBox() core.Bounds2D        { return m.seg.Bounds() }
func (m *MetallicMirror) ContainsPoint(p core.Vector2) bool { return m.seg.Bounds().Contains(p) }

func (m *MetallicMirror) Intersect(origin, direction core.Vector2) []core.Hit {
	dist, point, normal, ok := m.seg.IntersectRay(origin, direction)
	if !ok {
		return nil
	}
	return []core.Hit{{Distance: dist, Point: point, Normal: normal, Surface: "face"}}
}

func (m *MetallicMirror) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	reflected := reflectRay(ray, hit, newRay, m.Reflectivity)
	ray.Terminate(core.EndReason("reflected"))
	return []core.Ray{reflected}
}

func (m *MetallicMirror) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{"length": {Float: m.Length}, "reflectivity": {Float: m.Reflectivity}}
}

func (m *MetallicMirror) SetProperty(name string, value core.PropertyValue) core.Changed {
	switch name {
	case "reflectivity":
		m.Reflectivity = value.Float
		return core.Retrace
	case "enabled":
		return m.SetEnabled(value.Bool)
	default:
		return core.Unchanged
	}
}
