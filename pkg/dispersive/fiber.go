package dispersive

import (
	"math"

	"github.com/df07/go-optics-lab/pkg/core"
)

// pendingCoupling is one unit of energy the fiber has accepted at its
// input cap, awaiting the next GenerateOutputRays call.
type pendingCoupling struct {
	intensity    float64
	wavelengthNM float64
	phase        float64
	jones        *core.JonesVector
	sourceID     core.ComponentId
}

// OpticalFiber models two circular end caps connected by an abstract
// lossy channel: a ray hitting the input cap within the acceptance cone
// arcsin(NA) is absorbed and its energy queued; a subsequent
// GenerateOutputRays call emits one ray per queued coupling from the
// output cap (spec.md §4.7).
type OpticalFiber struct {
	base
	InputCenter  core.Vector2
	InputRadius  float64
	InputAngle   float64 // cap normal direction (acceptance cone axis)
	OutputCenter core.Vector2
	OutputRadius float64
	OutputAngle  float64
	NA           float64
	LossFraction float64 // fraction of intensity lost end-to-end, in [0,1)

	pending []pendingCoupling
}

// NewOpticalFiber creates a fiber with the given input/output caps,
// numerical aperture, and end-to-end loss fraction.
func NewOpticalFiber(id core.ComponentId, label string, inputCenter core.Vector2, inputAngle, inputRadius float64, outputCenter core.Vector2, outputAngle, outputRadius, na, lossFraction float64) *OpticalFiber {
	return &OpticalFiber{
		base:         newBase(id, label, inputCenter, inputAngle),
		InputCenter:  inputCenter, InputRadius: inputRadius, InputAngle: inputAngle,
		OutputCenter: outputCenter, OutputRadius: outputRadius, OutputAngle: outputAngle,
		NA: na, LossFraction: lossFraction,
	}
}

func (f *OpticalFiber) BoundingBox() core.Bounds2D {
	b := core.NewBounds2DFromPoints(
		core.NewVector2(f.InputCenter.X-f.InputRadius, f.InputCenter.Y-f.InputRadius),
		core.NewVector2(f.InputCenter.X+f.InputRadius, f.InputCenter.Y+f.InputRadius),
	)
	return b.Union(core.NewBounds2DFromPoints(
		core.NewVector2(f.OutputCenter.X-f.OutputRadius, f.OutputCenter.Y-f.OutputRadius),
		core.NewVector2(f.OutputCenter.X+f.OutputRadius, f.OutputCenter.Y+f.OutputRadius),
	))
}

func (f *OpticalFiber) ContainsPoint(p core.Vector2) bool {
	return f.InputCenter.DistanceTo(p) <= f.InputRadius || f.OutputCenter.DistanceTo(p) <= f.OutputRadius
}

// Intersect reports no ordinary geometric hits: the input cap is probed
// separately via ProbeInputCoupling (it competes on distance, not as a
// normal component hit), and the output cap only ever emits rays, never
// receives them, per spec.md §4.8.
func (f *OpticalFiber) Intersect(origin, direction core.Vector2) []core.Hit {
	return nil
}

func (f *OpticalFiber) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	ray.Terminate(core.EndReason("fiber_self_hit"))
	return nil
}

// ProbeInputCoupling intersects the ray with the input cap circle and
// checks the incidence angle against the acceptance cone half-angle
// arcsin(NA).
func (f *OpticalFiber) ProbeInputCoupling(origin, direction core.Vector2) (core.Hit, bool) {
	c := circle{Center: f.InputCenter, Radius: f.InputRadius}
	ts := c.IntersectRay(origin, direction)
	if len(ts) == 0 {
		return core.Hit{}, false
	}
	t := ts[0]
	point := origin.Add(direction.Multiply(t))

	capNormal := core.Vector2FromAngle(f.InputAngle)
	n := capNormal
	if n.Dot(direction) > 0 {
		n = n.Negate()
	}

	cosTheta := math.Abs(direction.Dot(n))
	acceptanceHalfAngle := math.Asin(math.Min(1, f.NA))
	if math.Acos(math.Min(1, cosTheta)) > acceptanceHalfAngle {
		return core.Hit{}, false // outside the acceptance cone
	}

	return core.Hit{Distance: t, Point: point, Normal: n, Surface: "input_cap"}, true
}

func (f *OpticalFiber) HandleInputInteraction(ray *core.Ray, hit core.Hit) {
	var jones *core.JonesVector
	if ray.Jones != nil {
		j := *ray.Jones
		jones = &j
	}
	f.pending = append(f.pending, pendingCoupling{
		intensity: ray.Intensity * (1 - f.LossFraction), wavelengthNM: ray.WavelengthNM,
		phase: ray.Phase, jones: jones, sourceID: ray.SourceID,
	})
	ray.Terminate(core.EndReason("coupled_into_fiber"))
}

func (f *OpticalFiber) GenerateOutputRays(newRay core.RayCtor) []core.Ray {
	outputs := make([]core.Ray, 0, len(f.pending))
	dir := core.Vector2FromAngle(f.OutputAngle)
	for _, p := range f.pending {
		r := newRay(core.NewRayParams{
			Origin: f.OutputCenter, Direction: dir, WavelengthNM: p.wavelengthNM,
			Intensity: p.intensity, Phase: p.phase, SourceID: p.sourceID,
		})
		if p.jones != nil {
			j := *p.jones
			r.Jones = &j
		}
		outputs = append(outputs, r)
	}
	f.pending = nil
	return outputs
}

func (f *OpticalFiber) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{
		"input_radius":  {Float: f.InputRadius},
		"output_radius": {Float: f.OutputRadius},
		"na":            {Float: f.NA},
		"loss_fraction": {Float: f.LossFraction},
	}
}

func (f *OpticalFiber) SetProperty(name string, value core.PropertyValue) core.Changed {
	switch name {
	case "na":
		f.NA = value.Float
		return core.Retrace
	case "loss_fraction":
		f.LossFraction = value.Float
		return core.Retrace
	case "enabled":
		return f.SetEnabled(value.Bool)
	default:
		return core.Unchanged
	}
}
