package optics

import "github.com/df07/go-optics-lab/pkg/core"

// FlatMirror reflects incident rays off a line segment: d' = d - 2(d.n)n,
// scaling intensity by Reflectivity and adding pi to phase (spec.md §4.5).
type FlatMirror struct {
	base
	seg          segment
	Length       float64
	Reflectivity float64
}

// NewFlatMirror creates a flat mirror segment of the given length, centered
// at pos and oriented along angleRad, with reflectivity in (0,1].
func NewFlatMirror(id core.ComponentId, label string, pos core.Vector2, angleRad, length, reflectivity float64) *FlatMirror {
	return &FlatMirror{
		base:         newBase(id, label, pos, angleRad),
		seg:          segmentAt(pos, angleRad, length),
		Length:       length,
		Reflectivity: reflectivity,
	}
}

func (m *FlatMirror) BoundingBox() core.Bounds2D        { return m.seg.Bounds() }
func (m *FlatMirror) ContainsPoint(p core.Vector2) bool { return m.seg.Bounds().Contains(p) }

func (m *FlatMirror) Intersect(origin, direction core.Vector2) []core.Hit {
	dist, point, normal, ok := m.seg.IntersectRay(origin, direction)
	if !ok {
		return nil
	}
	return []core.Hit{{Distance: dist, Point: point, Normal: normal, Surface: "face"}}
}

func (m *FlatMirror) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	reflected := reflectRay(ray, hit, newRay, m.reflectivityAt(ray.WavelengthNM))
	ray.Terminate(core.EndReason("reflected"))
	return []core.Ray{reflected}
}

func (m *FlatMirror) reflectivityAt(wavelengthNM float64) float64 {
	r := m.Reflectivity
	if r <= 0 {
		return 1
	}
	return r
}

func (m *FlatMirror) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{
		"length":       {Float: m.Length},
		"reflectivity": {Float: m.Reflectivity},
		"enabled":      {Bool: m.enabled},
	}
}

func (m *FlatMirror) SetProperty(name string, value core.PropertyValue) core.Changed {
	switch name {
	case "reflectivity":
		m.Reflectivity = value.Float
		return core.Retrace
	case "length":
		m.Length = value.Float
		m.seg = segmentAt(m.pos, m.angle, m.Length)
		return core.Retrace
	case "enabled":
		return m.SetEnabled(value.Bool)
	default:
		return core.Unchanged
	}
}

// reflectRay builds the common reflected successor used by every mirror
// variant: flip direction about hit.Normal, scale intensity by
// reflectivity, add pi to phase, advance bounces.
func reflectRay(ray *core.Ray, hit core.Hit, newRay core.RayCtor, reflectivity float64) core.Ray {
	reflectedDir := ray.Direction.Reflect(hit.Normal)
	r := newRay(core.NewRayParams{
		Origin:            hit.Point,
		Direction:         reflectedDir,
		WavelengthNM:      ray.WavelengthNM,
		Intensity:         ray.Intensity * reflectivity,
		Phase:             ray.Phase + 3.141592653589793,
		BouncesSoFar:      ray.BouncesSoFar + 1,
		MediumIndex:       ray.MediumRefractiveIndex,
		SourceID:          ray.SourceID,
		PolarizationAngle: ray.PolarizationAngle,
		IgnoreDecay:       ray.IgnoreDecay,
		History:           append(append([]core.Vector2{}, ray.History...)),
		BeamDiameter:      ray.BeamDiameter,
	})
	if ray.Jones != nil {
		j := *ray.Jones
		r.Jones = &j
	}
	return r
}
