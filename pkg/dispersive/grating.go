package dispersive

import (
	"math"

	"github.com/df07/go-optics-lab/pkg/config"
	"github.com/df07/go-optics-lab/pkg/core"
)

// DiffractionGrating is a line segment ruled with period PeriodPixels. On
// hit it emits one successor per diffraction order m satisfying
// |sin(theta_m)| <= 1, where sin(theta_m) = sin(theta_i) + m*lambda/d
// (lambda converted to pixels via Constants.PixelsPerNanometer), each
// scaled by Constants.EfficiencyForOrder(|m|) (spec.md §4.7).
type DiffractionGrating struct {
	base
	seg          segment
	Length       float64
	PeriodPixels float64
	MaxOrder     int
	Constants    config.Constants
}

// NewDiffractionGrating creates a grating segment with the given ruling
// period (in pixels) and maximum diffraction order to consider.
func NewDiffractionGrating(id core.ComponentId, label string, pos core.Vector2, angleRad, length, periodPixels float64, maxOrder int) *DiffractionGrating {
	return &DiffractionGrating{
		base: newBase(id, label, pos, angleRad), seg: segmentAt(pos, angleRad, length),
		Length: length, PeriodPixels: periodPixels, MaxOrder: maxOrder,
		Constants: config.Defaults(),
	}
}

func (g *DiffractionGrating) BoundingBox() core.Bounds2D        { return g.seg.Bounds() }
func (g *DiffractionGrating) ContainsPoint(p core.Vector2) bool { return g.seg.Bounds().Contains(p) }

func (g *DiffractionGrating) Intersect(origin, direction core.Vector2) []core.Hit {
	dist, point, normal, ok := g.seg.IntersectRay(origin, direction)
	if !ok {
		return nil
	}
	return []core.Hit{{Distance: dist, Point: point, Normal: normal, Surface: "ruled_face"}}
}

func (g *DiffractionGrating) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	along := g.seg.End.Subtract(g.seg.Start).Normalize()
	forward := hit.Normal.Negate()

	cosThetaI := ray.Direction.Dot(forward)
	sinThetaI := ray.Direction.Dot(along)
	lambdaPixels := ray.WavelengthNM * g.Constants.PixelsPerNanometer
	sign := 1.0
	if cosThetaI < 0 {
		sign = -1.0
	}

	var successors []core.Ray
	for m := -g.MaxOrder; m <= g.MaxOrder; m++ {
		sinThetaM := sinThetaI + float64(m)*lambdaPixels/g.PeriodPixels
		if math.Abs(sinThetaM) > 1 {
			continue
		}
		eta := g.Constants.EfficiencyForOrder(m)
		if eta <= 0 {
			continue
		}
		cosThetaM := sign * math.Sqrt(math.Max(0, 1-sinThetaM*sinThetaM))
		dir := forward.Multiply(cosThetaM).Add(along.Multiply(sinThetaM)).Normalize()

		successors = append(successors, buildSuccessor(ray, hit, newRay, dir, ray.Intensity*eta, ray.MediumRefractiveIndex))
	}

	ray.Terminate(core.EndReason("diffracted"))
	return successors
}

func (g *DiffractionGrating) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{
		"length":        {Float: g.Length},
		"period_pixels": {Float: g.PeriodPixels},
		"max_order":     {Float: float64(g.MaxOrder)},
	}
}

func (g *DiffractionGrating) SetProperty(name string, value core.PropertyValue) core.Changed {
	switch name {
	case "period_pixels":
		g.PeriodPixels = value.Float
		return core.Retrace
	case "max_order":
		g.MaxOrder = int(value.Float)
		return core.Retrace
	case "enabled":
		return g.SetEnabled(value.Bool)
	default:
		return core.Unchanged
	}
}
