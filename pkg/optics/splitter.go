package optics

import "github.com/df07/go-optics-lab/pkg/core"

// BeamSplitter is a flat segment that splits every incident ray into a
// transmitted and a reflected successor by intensity, with transmission
// fraction T (reflection fraction 1-T), neither wavelength- nor
// polarization-dependent (spec.md §4.5; the wavelength-dependent variant is
// DichroicMirror).
type BeamSplitter struct {
	base
	seg    segment
	Length float64
	T      float64 // transmission fraction, in [0,1]
}

// NewBeamSplitter creates a beam splitter segment with transmission
// fraction t.
func NewBeamSplitter(id core.ComponentId, label string, pos core.Vector2, angleRad, length, t float64) *BeamSplitter {
	return &BeamSplitter{
		base:   newBase(id, label, pos, angleRad),
		seg:    segmentAt(pos, angleRad, length),
		Length: length,
		T:      t,
	}
}

func (b *BeamSplitter) BoundingBox() core.Bounds2D        { return b.seg.Bounds() }
func (b *BeamSplitter) ContainsPoint(p core.Vector2) bool { return b.seg.Bounds().Contains(p) }

func (b *BeamSplitter) Intersect(origin, direction core.Vector2) []core.Hit {
	dist, point, normal, ok := b.seg.IntersectRay(origin, direction)
	if !ok {
		return nil
	}
	return []core.Hit{{Distance: dist, Point: point, Normal: normal, Surface: "face"}}
}

func (b *BeamSplitter) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	t := b.T
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	var successors []core.Ray
	if t > 0 {
		transmitted := newRay(core.NewRayParams{
			Origin: hit.Point, Direction: ray.Direction, WavelengthNM: ray.WavelengthNM,
			Intensity: ray.Intensity * t, Phase: ray.Phase, BouncesSoFar: ray.BouncesSoFar + 1,
			MediumIndex: ray.MediumRefractiveIndex, SourceID: ray.SourceID,
			PolarizationAngle: ray.PolarizationAngle, IgnoreDecay: ray.IgnoreDecay,
			History: append([]core.Vector2{}, ray.History...), BeamDiameter: ray.BeamDiameter,
		})
		if ray.Jones != nil {
			j := *ray.Jones
			transmitted.Jones = &j
		}
		successors = append(successors, transmitted)
	}
	if t < 1 {
		successors = append(successors, reflectRay(ray, hit, newRay, 1-t))
	}

	ray.Terminate(core.EndReason("split"))
	return successors
}

func (b *BeamSplitter) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{"length": {Float: b.Length}, "transmission": {Float: b.T}}
}

func (b *BeamSplitter) SetProperty(name string, value core.PropertyValue) core.Changed {
	switch name {
	case "transmission":
		b.T = value.Float
		return core.Retrace
	case "enabled":
		return b.SetEnabled(value.Bool)
	default:
		return core.Unchanged
	}
}
