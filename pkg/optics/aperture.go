package optics

import "github.com/df07/go-optics-lab/pkg/core"

// Aperture is a finite line segment with one or more open spans along its
// length; rays landing inside a span pass through undeviated, clamping
// BeamDiameter to the span width, and rays landing outside any span are
// absorbed (spec.md §4.5).
type Aperture struct {
	base
	seg    segment
	Length float64
	// Openings are [start,end] fractions of Length measured from seg.Start,
	// each in [0,1]. A single centered opening of width w is
	// {(Length-w)/(2*Length), (Length+w)/(2*Length)}.
	Openings [][2]float64
}

// NewAperture creates an aperture segment of the given length, centered at
// pos and oriented along angleRad, with a single centered opening of width
// openingWidth.
func NewAperture(id core.ComponentId, label string, pos core.Vector2, angleRad, length, openingWidth float64) *Aperture {
	lo := (length - openingWidth) / (2 * length)
	hi := (length + openingWidth) / (2 * length)
	return &Aperture{
		base:     newBase(id, label, pos, angleRad),
		seg:      segmentAt(pos, angleRad, length),
		Length:   length,
		Openings: [][2]float64{{lo, hi}},
	}
}

func (a *Aperture) BoundingBox() core.Bounds2D        { return a.seg.Bounds() }
func (a *Aperture) ContainsPoint(p core.Vector2) bool { return a.seg.Bounds().Contains(p) }

func (a *Aperture) Intersect(origin, direction core.Vector2) []core.Hit {
	dist, point, normal, ok := a.seg.IntersectRay(origin, direction)
	if !ok {
		return nil
	}
	return []core.Hit{{Distance: dist, Point: point, Normal: normal, Surface: "face"}}
}

func (a *Aperture) fractionAlong(point core.Vector2) float64 {
	total := a.seg.End.Subtract(a.seg.Start)
	rel := point.Subtract(a.seg.Start)
	length := total.Length()
	if length < epsilon {
		return 0
	}
	return rel.Dot(total.Normalize()) / length
}

func (a *Aperture) openWidthAt(frac float64) (open bool, widthFraction float64) {
	for _, span := range a.Openings {
		if frac >= span[0] && frac <= span[1] {
			return true, span[1] - span[0]
		}
	}
	return false, 0
}

func (a *Aperture) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	frac := a.fractionAlong(hit.Point)
	open, widthFraction := a.openWidthAt(frac)
	if !open {
		ray.Terminate(core.EndReason("blocked"))
		return nil
	}

	beamDiameter := ray.BeamDiameter
	openWidth := widthFraction * a.Length
	if beamDiameter <= 0 || openWidth < beamDiameter {
		beamDiameter = openWidth
	}

	transmitted := newRay(core.NewRayParams{
		Origin: hit.Point, Direction: ray.Direction, WavelengthNM: ray.WavelengthNM,
		Intensity: ray.Intensity, Phase: ray.Phase, BouncesSoFar: ray.BouncesSoFar + 1,
		MediumIndex: ray.MediumRefractiveIndex, SourceID: ray.SourceID,
		PolarizationAngle: ray.PolarizationAngle, IgnoreDecay: ray.IgnoreDecay,
		History: append([]core.Vector2{}, ray.History...), BeamDiameter: beamDiameter,
	})
	if ray.Jones != nil {
		j := *ray.Jones
		transmitted.Jones = &j
	}

	ray.Terminate(core.EndReason("pass_aperture_opening"))
	return []core.Ray{transmitted}
}

func (a *Aperture) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{"length": {Float: a.Length}}
}

func (a *Aperture) SetProperty(name string, value core.PropertyValue) core.Changed {
	switch name {
	case "opening_width":
		lo := (a.Length - value.Float) / (2 * a.Length)
		hi := (a.Length + value.Float) / (2 * a.Length)
		a.Openings = [][2]float64{{lo, hi}}
		return core.Retrace
	case "enabled":
		return a.SetEnabled(value.Bool)
	default:
		return core.Unchanged
	}
}
