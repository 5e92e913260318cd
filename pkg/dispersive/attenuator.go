package dispersive

import (
	"math"

	"github.com/df07/go-optics-lab/pkg/core"
)

// VariableAttenuator scales intensity by T, clamped to [0.001, 1]; optical
// density OD = -log10(T) is derived for reporting (spec.md §4.7).
type VariableAttenuator struct {
	base
	seg    segment
	Length float64
	T      float64
}

// NewVariableAttenuator creates an attenuator segment with transmission T.
func NewVariableAttenuator(id core.ComponentId, label string, pos core.Vector2, angleRad, length, t float64) *VariableAttenuator {
	return &VariableAttenuator{
		base: newBase(id, label, pos, angleRad), seg: segmentAt(pos, angleRad, length),
		Length: length, T: clampTransmission(t),
	}
}

func clampTransmission(t float64) float64 {
	if t < 0.001 {
		return 0.001
	}
	if t > 1 {
		return 1
	}
	return t
}

func (a *VariableAttenuator) BoundingBox() core.Bounds2D        { return a.seg.Bounds() }
func (a *VariableAttenuator) ContainsPoint(p core.Vector2) bool { return a.seg.Bounds().Contains(p) }

func (a *VariableAttenuator) Intersect(origin, direction core.Vector2) []core.Hit {
	dist, point, normal, ok := a.seg.IntersectRay(origin, direction)
	if !ok {
		return nil
	}
	return []core.Hit{{Distance: dist, Point: point, Normal: normal, Surface: "face"}}
}

// OpticalDensity returns OD = -log10(T).
func (a *VariableAttenuator) OpticalDensity() float64 {
	return -math.Log10(a.T)
}

func (a *VariableAttenuator) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	transmitted := buildSuccessor(ray, hit, newRay, ray.Direction, ray.Intensity*a.T, ray.MediumRefractiveIndex)
	ray.Terminate(core.EndReason("attenuated"))
	return []core.Ray{transmitted}
}

func (a *VariableAttenuator) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{
		"length":         {Float: a.Length},
		"transmission":   {Float: a.T},
		"optical_density": {Float: a.OpticalDensity()},
	}
}

func (a *VariableAttenuator) SetProperty(name string, value core.PropertyValue) core.Changed {
	switch name {
	case "transmission":
		a.T = clampTransmission(value.Float)
		return core.Retrace
	case "enabled":
		return a.SetEnabled(value.Bool)
	default:
		return core.Unchanged
	}
}
