package optics

import "github.com/df07/go-optics-lab/pkg/core"

// DichroicMirror reflects above or below a cutoff wavelength and transmits
// the rest, per a smooth band-pass reflectivity curve (spec.md §4.5; see
// SPEC_FULL.md for the exact curve shape this implements).
type DichroicMirror struct {
	base
	seg segment

	Length     float64
	CutoffNM   float64
	HighPass   bool // true: reflects above CutoffNM; false: reflects below
	curve      func(float64) float64
}

// NewDichroicMirror creates a dichroic mirror. When highPass is true, the
// mirror reflects wavelengths above cutoffNM and transmits the rest.
func NewDichroicMirror(id core.ComponentId, label string, pos core.Vector2, angleRad, length, cutoffNM float64, highPass bool) *DichroicMirror {
	const transitionWidthNM = 20
	return &DichroicMirror{
		base:     newBase(id, label, pos, angleRad),
		seg:      segmentAt(pos, angleRad, length),
		Length:   length,
		CutoffNM: cutoffNM,
		HighPass: highPass,
		curve:    smoothstepBandpass(cutoffNM, transitionWidthNM, 0.02, 0.98, highPass),
	}
}

func (m *DichroicMirror) BoundingBox() core.Bounds2D        { return m.seg.Bounds() }
func (m *DichroicMirror) ContainsPoint(p core.Vector2) bool { return m.seg.Bounds().Contains(p) }

func (m *DichroicMirror) Intersect(origin, direction core.Vector2) []core.Hit {
	dist, point, normal, ok := m.seg.IntersectRay(origin, direction)
	if !ok {
		return nil
	}
	return []core.Hit{{Distance: dist, Point: point, Normal: normal, Surface: "face"}}
}

// Interact reflects the wavelength-weighted portion of the ray and
// transmits the rest straight through undeviated, both advancing bounces.
func (m *DichroicMirror) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	R := m.curve(ray.WavelengthNM)

	var successors []core.Ray
	if R > 0 {
		successors = append(successors, reflectRay(ray, hit, newRay, R))
	}
	if R < 1 {
		transmitted := newRay(core.NewRayParams{
			Origin:            hit.Point,
			Direction:         ray.Direction,
			WavelengthNM:      ray.WavelengthNM,
			Intensity:         ray.Intensity * (1 - R),
			BouncesSoFar:      ray.BouncesSoFar + 1,
			MediumIndex:       ray.MediumRefractiveIndex,
			SourceID:          ray.SourceID,
			PolarizationAngle: ray.PolarizationAngle,
			IgnoreDecay:       ray.IgnoreDecay,
			History:           append([]core.Vector2{}, ray.History...),
			BeamDiameter:      ray.BeamDiameter,
		})
		if ray.Jones != nil {
			j := *ray.Jones
			transmitted.Jones = &j
		}
		successors = append(successors, transmitted)
	}

	ray.Terminate(core.EndReason("split"))
	return successors
}

func (m *DichroicMirror) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{
		"length":    {Float: m.Length},
		"cutoff_nm": {Float: m.CutoffNM},
		"high_pass": {Bool: m.HighPass},
	}
}

func (m *DichroicMirror) SetProperty(name string, value core.PropertyValue) core.Changed {
	const transitionWidthNM = 20
	switch name {
	case "cutoff_nm":
		m.CutoffNM = value.Float
		m.curve = smoothstepBandpass(m.CutoffNM, transitionWidthNM, 0.02, 0.98, m.HighPass)
		return core.Retrace
	case "high_pass":
		m.HighPass = value.Bool
		m.curve = smoothstepBandpass(m.CutoffNM, transitionWidthNM, 0.02, 0.98, m.HighPass)
		return core.Retrace
	case "enabled":
		return m.SetEnabled(value.Bool)
	default:
		return core.Unchanged
	}
}
