package polarization

import (
	"math"

	"github.com/df07/go-optics-lab/pkg/core"
)

// WollastonPrism splits an incident ray into two linearly polarized beams
// diverging symmetrically by SplitAngleRad: the "ordinary" beam carries the
// component of the incident Jones vector along OpticAxisAngle, deviated by
// -SplitAngleRad/2, and the "extraordinary" beam carries the orthogonal
// component, deviated by +SplitAngleRad/2 (spec.md §4.6). Treating the two
// output polarizations as an orthogonal basis conserves energy exactly:
// the sum of the two output intensities equals the input intensity. An
// incident ray with no Jones state (unpolarized) splits 50/50 instead of
// following the incident amplitude.
type WollastonPrism struct {
	base
	seg             segment
	Length          float64
	SplitAngleRad   float64
	OpticAxisAngle  float64
}

func NewWollastonPrism(id core.ComponentId, label string, pos core.Vector2, angleRad, length, splitAngleRad, opticAxisAngle float64) *WollastonPrism {
	return &WollastonPrism{
		base: newBase(id, label, pos, angleRad), seg: segmentAt(pos, angleRad, length),
		Length: length, SplitAngleRad: splitAngleRad, OpticAxisAngle: opticAxisAngle,
	}
}

func (w *WollastonPrism) BoundingBox() core.Bounds2D        { return w.seg.Bounds() }
func (w *WollastonPrism) ContainsPoint(v core.Vector2) bool { return w.seg.Bounds().Contains(v) }

func (w *WollastonPrism) Intersect(origin, direction core.Vector2) []core.Hit {
	dist, point, normal, ok := w.seg.IntersectRay(origin, direction)
	if !ok {
		return nil
	}
	return []core.Hit{{Distance: dist, Point: point, Normal: normal, Surface: "face"}}
}

func (w *WollastonPrism) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	// Unpolarized fallback (spec.md §4.6): without a Jones state to project,
	// the split is a flat 50/50 rather than following the incident amplitude.
	unpolarized := ray.Jones == nil

	var ordFraction, extFraction float64
	var jOrd, jExt core.JonesVector
	if unpolarized {
		ordFraction, extFraction = 0.5, 0.5
		jOrd = core.NewLinearJones(w.OpticAxisAngle).Scale(math.Sqrt(ray.Intensity * ordFraction))
		jExt = core.NewLinearJones(w.OpticAxisAngle + math.Pi/2).Scale(math.Sqrt(ray.Intensity * extFraction))
	} else {
		jIn := *ray.Jones
		ordinaryM := core.DiagJonesMatrix(1, 0).InFrame(w.OpticAxisAngle)
		extraordinaryM := core.DiagJonesMatrix(0, 1).InFrame(w.OpticAxisAngle)
		jOrd = ordinaryM.ApplyTo(jIn)
		jExt = extraordinaryM.ApplyTo(jIn)

		inI := math.Max(jIn.Intensity(), epsilon)
		ordFraction = jOrd.Intensity() / inI
		extFraction = jExt.Intensity() / inI
	}

	half := w.SplitAngleRad / 2

	ordinary := newRay(core.NewRayParams{
		Origin: hit.Point, Direction: ray.Direction.Rotate(-half), WavelengthNM: ray.WavelengthNM,
		Intensity: ray.Intensity * ordFraction, Phase: ray.Phase, BouncesSoFar: ray.BouncesSoFar + 1,
		MediumIndex: ray.MediumRefractiveIndex, SourceID: ray.SourceID,
		PolarizationAngle: ray.PolarizationAngle, IgnoreDecay: ray.IgnoreDecay,
		History: append([]core.Vector2{}, ray.History...), BeamDiameter: ray.BeamDiameter,
	})
	ordinary.Jones = &jOrd

	extraordinary := newRay(core.NewRayParams{
		Origin: hit.Point, Direction: ray.Direction.Rotate(half), WavelengthNM: ray.WavelengthNM,
		Intensity: ray.Intensity * extFraction, Phase: ray.Phase, BouncesSoFar: ray.BouncesSoFar + 1,
		MediumIndex: ray.MediumRefractiveIndex, SourceID: ray.SourceID,
		PolarizationAngle: ray.PolarizationAngle, IgnoreDecay: ray.IgnoreDecay,
		History: append([]core.Vector2{}, ray.History...), BeamDiameter: ray.BeamDiameter,
	})
	extraordinary.Jones = &jExt

	ray.Terminate(core.EndReason("wollaston_split"))

	var out []core.Ray
	if ordinary.Intensity >= core.MinIntensity {
		out = append(out, ordinary)
	}
	if extraordinary.Intensity >= core.MinIntensity {
		out = append(out, extraordinary)
	}
	return out
}

func (w *WollastonPrism) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{
		"length":           {Float: w.Length},
		"split_angle_rad":  {Float: w.SplitAngleRad},
		"optic_axis_angle": {Float: w.OpticAxisAngle},
	}
}

func (w *WollastonPrism) SetProperty(name string, value core.PropertyValue) core.Changed {
	switch name {
	case "split_angle_rad":
		w.SplitAngleRad = value.Float
		return core.Retrace
	case "optic_axis_angle":
		w.OpticAxisAngle = value.Float
		return core.Retrace
	case "enabled":
		return w.SetEnabled(value.Bool)
	default:
		return core.Unchanged
	}
}
