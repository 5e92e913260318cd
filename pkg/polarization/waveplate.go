package polarization

import "github.com/df07/go-optics-lab/pkg/core"

// HalfWavePlate applies a retardance of pi between its fast and slow axes,
// the Jones matrix R(theta)*diag(1,-1)*R(-theta) for fast axis at theta:
// it mirrors the incident polarization about its fast axis (spec.md §4.6).
type HalfWavePlate struct {
	base
	seg           segment
	Length        float64
	FastAxisAngle float64
}

func NewHalfWavePlate(id core.ComponentId, label string, pos core.Vector2, angleRad, length, fastAxisAngle float64) *HalfWavePlate {
	return &HalfWavePlate{
		base: newBase(id, label, pos, angleRad), seg: segmentAt(pos, angleRad, length),
		Length: length, FastAxisAngle: fastAxisAngle,
	}
}

func (w *HalfWavePlate) BoundingBox() core.Bounds2D        { return w.seg.Bounds() }
func (w *HalfWavePlate) ContainsPoint(v core.Vector2) bool { return w.seg.Bounds().Contains(v) }

func (w *HalfWavePlate) Intersect(origin, direction core.Vector2) []core.Hit {
	dist, point, normal, ok := w.seg.IntersectRay(origin, direction)
	if !ok {
		return nil
	}
	return []core.Hit{{Distance: dist, Point: point, Normal: normal, Surface: "face"}}
}

func (w *HalfWavePlate) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	m := core.DiagJonesMatrix(1, -1).InFrame(w.FastAxisAngle)
	r := passThrough(ray, hit, newRay, m.ApplyTo)
	ray.Terminate(core.EndReason("wave_plate"))
	return []core.Ray{r}
}

func (w *HalfWavePlate) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{"length": {Float: w.Length}, "fast_axis_angle": {Float: w.FastAxisAngle}}
}

func (w *HalfWavePlate) SetProperty(name string, value core.PropertyValue) core.Changed {
	switch name {
	case "fast_axis_angle":
		w.FastAxisAngle = value.Float
		return core.Retrace
	case "enabled":
		return w.SetEnabled(value.Bool)
	default:
		return core.Unchanged
	}
}

// QuarterWavePlate applies a retardance of pi/2 between its fast and slow
// axes, the Jones matrix R(theta)*diag(1,i)*R(-theta) for fast axis at
// theta: at 45 degrees to linear input it produces circular polarization
// (spec.md §4.6).
type QuarterWavePlate struct {
	base
	seg           segment
	Length        float64
	FastAxisAngle float64
}

func NewQuarterWavePlate(id core.ComponentId, label string, pos core.Vector2, angleRad, length, fastAxisAngle float64) *QuarterWavePlate {
	return &QuarterWavePlate{
		base: newBase(id, label, pos, angleRad), seg: segmentAt(pos, angleRad, length),
		Length: length, FastAxisAngle: fastAxisAngle,
	}
}

func (w *QuarterWavePlate) BoundingBox() core.Bounds2D        { return w.seg.Bounds() }
func (w *QuarterWavePlate) ContainsPoint(v core.Vector2) bool { return w.seg.Bounds().Contains(v) }

func (w *QuarterWavePlate) Intersect(origin, direction core.Vector2) []core.Hit {
	dist, point, normal, ok := w.seg.IntersectRay(origin, direction)
	if !ok {
		return nil
	}
	return []core.Hit{{Distance: dist, Point: point, Normal: normal, Surface: "face"}}
}

func (w *QuarterWavePlate) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	m := core.DiagJonesMatrix(1, complex(0, 1)).InFrame(w.FastAxisAngle)
	r := passThrough(ray, hit, newRay, m.ApplyTo)
	ray.Terminate(core.EndReason("wave_plate"))
	return []core.Ray{r}
}

func (w *QuarterWavePlate) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{"length": {Float: w.Length}, "fast_axis_angle": {Float: w.FastAxisAngle}}
}

func (w *QuarterWavePlate) SetProperty(name string, value core.PropertyValue) core.Changed {
	switch name {
	case "fast_axis_angle":
		w.FastAxisAngle = value.Float
		return core.Retrace
	case "enabled":
		return w.SetEnabled(value.Bool)
	default:
		return core.Unchanged
	}
}
