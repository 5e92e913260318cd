package polarization

import "github.com/df07/go-optics-lab/pkg/core"

// FaradayRotator applies a fixed, non-reciprocal polarization rotation
// (the magneto-optic Faraday effect): unlike optical activity, the
// rotation sense is tied to the magnetic field direction rather than the
// propagation direction, so this simulator applies the same rotation angle
// regardless of which way the ray is traveling (spec.md §4.6).
type FaradayRotator struct {
	base
	seg          segment
	Length       float64
	RotationRad  float64
}

func NewFaradayRotator(id core.ComponentId, label string, pos core.Vector2, angleRad, length, rotationRad float64) *FaradayRotator {
	return &FaradayRotator{
		base: newBase(id, label, pos, angleRad), seg: segmentAt(pos, angleRad, length),
		Length: length, RotationRad: rotationRad,
	}
}

func (f *FaradayRotator) BoundingBox() core.Bounds2D        { return f.seg.Bounds() }
func (f *FaradayRotator) ContainsPoint(v core.Vector2) bool { return f.seg.Bounds().Contains(v) }

func (f *FaradayRotator) Intersect(origin, direction core.Vector2) []core.Hit {
	dist, point, normal, ok := f.seg.IntersectRay(origin, direction)
	if !ok {
		return nil
	}
	return []core.Hit{{Distance: dist, Point: point, Normal: normal, Surface: "face"}}
}

func (f *FaradayRotator) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	m := core.RotationJonesMatrix(f.RotationRad)
	r := passThrough(ray, hit, newRay, m.ApplyTo)
	ray.Terminate(core.EndReason("faraday_rotated"))
	return []core.Ray{r}
}

func (f *FaradayRotator) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{"length": {Float: f.Length}, "rotation_rad": {Float: f.RotationRad}}
}

func (f *FaradayRotator) SetProperty(name string, value core.PropertyValue) core.Changed {
	switch name {
	case "rotation_rad":
		f.RotationRad = value.Float
		return core.Retrace
	case "enabled":
		return f.SetEnabled(value.Bool)
	default:
		return core.Unchanged
	}
}

// FaradayIsolator composes an entrance polarizer, a 45-degree Faraday
// rotator, and an exit polarizer at 45 degrees: forward-traveling light
// polarized along the entrance axis passes through both polarizers, while
// light reflected back into the isolator arrives rotated a further 45
// degrees by the non-reciprocal rotator and lands cross-polarized to the
// entrance axis, blocking it. This simulator does not reverse ray
// direction through a component, so it models only the forward pass: the
// entrance polarizer, then the rotator, then the exit polarizer, in order
// (spec.md §4.6).
type FaradayIsolator struct {
	base
	seg              segment
	Length           float64
	EntranceAxisAngle float64
}

func NewFaradayIsolator(id core.ComponentId, label string, pos core.Vector2, angleRad, length, entranceAxisAngle float64) *FaradayIsolator {
	return &FaradayIsolator{
		base: newBase(id, label, pos, angleRad), seg: segmentAt(pos, angleRad, length),
		Length: length, EntranceAxisAngle: entranceAxisAngle,
	}
}

func (iso *FaradayIsolator) BoundingBox() core.Bounds2D        { return iso.seg.Bounds() }
func (iso *FaradayIsolator) ContainsPoint(v core.Vector2) bool { return iso.seg.Bounds().Contains(v) }

func (iso *FaradayIsolator) Intersect(origin, direction core.Vector2) []core.Hit {
	dist, point, normal, ok := iso.seg.IntersectRay(origin, direction)
	if !ok {
		return nil
	}
	return []core.Hit{{Distance: dist, Point: point, Normal: normal, Surface: "face"}}
}

func (iso *FaradayIsolator) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	const rotationRad = 0.7853981633974483 // pi/4
	exitAxisAngle := iso.EntranceAxisAngle + rotationRad

	entrance := core.DiagJonesMatrix(1, 0).InFrame(iso.EntranceAxisAngle)
	rotator := core.RotationJonesMatrix(rotationRad)
	exit := core.DiagJonesMatrix(1, 0).InFrame(exitAxisAngle)

	r := passThrough(ray, hit, newRay, func(j core.JonesVector) core.JonesVector {
		j = entrance.ApplyTo(j)
		j = rotator.ApplyTo(j)
		j = exit.ApplyTo(j)
		return j
	})
	ray.Terminate(core.EndReason("isolated"))
	if r.Intensity < core.MinIntensity {
		r.Terminate(core.EndReason("low_intensity"))
		return nil
	}
	return []core.Ray{r}
}

func (iso *FaradayIsolator) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{
		"length":              {Float: iso.Length},
		"entrance_axis_angle": {Float: iso.EntranceAxisAngle},
	}
}

func (iso *FaradayIsolator) SetProperty(name string, value core.PropertyValue) core.Changed {
	switch name {
	case "entrance_axis_angle":
		iso.EntranceAxisAngle = value.Float
		return core.Retrace
	case "enabled":
		return iso.SetEnabled(value.Bool)
	default:
		return core.Unchanged
	}
}
