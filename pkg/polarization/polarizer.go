package polarization

import (
	"math"

	"github.com/df07/go-optics-lab/pkg/core"
)

// Polarizer is an ideal linear polarizer: it projects the incident Jones
// vector onto its transmission axis, so transmitted intensity follows
// Malus's law (I = I0*cos^2(theta)) for the angle between the incident
// polarization and AxisAngle. A ray with no Jones state (unpolarized)
// instead transmits a flat 0.5*I with polarization set to AxisAngle
// (spec.md §4.6).
type Polarizer struct {
	base
	seg       segment
	Length    float64
	AxisAngle float64 // transmission axis orientation, radians
}

// NewPolarizer creates a polarizer segment with the given transmission
// axis angle.
func NewPolarizer(id core.ComponentId, label string, pos core.Vector2, angleRad, length, axisAngle float64) *Polarizer {
	return &Polarizer{
		base: newBase(id, label, pos, angleRad), seg: segmentAt(pos, angleRad, length),
		Length: length, AxisAngle: axisAngle,
	}
}

func (p *Polarizer) BoundingBox() core.Bounds2D        { return p.seg.Bounds() }
func (p *Polarizer) ContainsPoint(v core.Vector2) bool { return p.seg.Bounds().Contains(v) }

func (p *Polarizer) Intersect(origin, direction core.Vector2) []core.Hit {
	dist, point, normal, ok := p.seg.IntersectRay(origin, direction)
	if !ok {
		return nil
	}
	return []core.Hit{{Distance: dist, Point: point, Normal: normal, Surface: "face"}}
}

func (p *Polarizer) jonesMatrix() core.JonesMatrix {
	return core.DiagJonesMatrix(1, 0).InFrame(p.AxisAngle)
}

func (p *Polarizer) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	var r core.Ray
	if ray.Jones == nil {
		// Unpolarized fallback (spec.md §4.6): half the intensity passes
		// regardless of axis, with the output polarization set to the
		// transmission axis rather than following Malus's law.
		outIntensity := ray.Intensity * 0.5
		r = newRay(core.NewRayParams{
			Origin: hit.Point, Direction: ray.Direction, WavelengthNM: ray.WavelengthNM,
			Intensity: outIntensity, Phase: ray.Phase, BouncesSoFar: ray.BouncesSoFar + 1,
			MediumIndex: ray.MediumRefractiveIndex, SourceID: ray.SourceID,
			PolarizationAngle: p.AxisAngle, IgnoreDecay: ray.IgnoreDecay,
			History: append([]core.Vector2{}, ray.History...), BeamDiameter: ray.BeamDiameter,
		})
		j := core.NewLinearJones(p.AxisAngle).Scale(math.Sqrt(math.Max(0, outIntensity)))
		r.Jones = &j
	} else {
		m := p.jonesMatrix()
		r = passThrough(ray, hit, newRay, m.ApplyTo)
	}
	ray.Terminate(core.EndReason("polarized"))
	if r.Intensity < core.MinIntensity {
		r.Terminate(core.EndReason("low_intensity"))
		return nil
	}
	return []core.Ray{r}
}

func (p *Polarizer) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{"length": {Float: p.Length}, "axis_angle": {Float: p.AxisAngle}}
}

func (p *Polarizer) SetProperty(name string, value core.PropertyValue) core.Changed {
	switch name {
	case "axis_angle":
		p.AxisAngle = value.Float
		return core.Retrace
	case "enabled":
		return p.SetEnabled(value.Bool)
	default:
		return core.Unchanged
	}
}
