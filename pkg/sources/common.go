// Package sources implements the Source family from spec.md §4.4: Laser,
// Fan, Line, WhiteLight, Point, LED, and PulsedLaser. Each owns an on/off
// switch, wavelength, intensity, polarization spec, and IgnoreDecay, and
// produces its initial ray set from GenerateRays.
package sources

import (
	"github.com/df07/go-optics-lab/pkg/core"
)

// PolarizationKind selects how a source seeds each ray's polarization.
type PolarizationKind int

const (
	Unpolarized PolarizationKind = iota
	Linear
	CircularRight
	CircularLeft
)

// Polarization describes a source's emitted polarization state.
type Polarization struct {
	Kind  PolarizationKind
	Angle float64 // radians, used when Kind == Linear
}

// applyTo seeds ray's polarization fields according to p.
func (p Polarization) applyTo(r *core.Ray) {
	switch p.Kind {
	case Linear:
		r.SetLinearPolarization(p.Angle)
	case CircularRight:
		r.SetCircularPolarization(true)
	case CircularLeft:
		r.SetCircularPolarization(false)
	default:
		r.SetUnpolarized()
	}
}

// base holds the fields every source variant shares.
type base struct {
	id      core.ComponentId
	label   string
	pos     core.Vector2
	angle   float64
	enabled bool

	wavelengthNM float64
	intensity    float64
	polarization Polarization
	ignoreDecay  bool
	beamDiameter float64
}

func newBase(id core.ComponentId, label string, pos core.Vector2, angleRad float64) base {
	return base{
		id:           id,
		label:        label,
		pos:          pos,
		angle:        angleRad,
		enabled:      true,
		wavelengthNM: 550,
		intensity:    1.0,
		beamDiameter: 4.0,
	}
}

// SetPolarization overrides how this source seeds each emitted ray's
// Jones state; the zero value (Unpolarized) is the default.
func (b *base) SetPolarization(p Polarization) { b.polarization = p }

func (b *base) ID() core.ComponentId                        { return b.id }
func (b *base) Label() string                                { return b.label }
func (b *base) Pose() (core.Vector2, float64)                { return b.pos, b.angle }
func (b *base) Enabled() bool                                { return b.enabled }
func (b *base) BoundingBox() core.Bounds2D                    { return core.NewBounds2D(b.pos, b.pos).Expand(2) }
func (b *base) ContainsPoint(p core.Vector2) bool             { return b.pos.DistanceTo(p) < 4 }
func (b *base) Intersect(origin, direction core.Vector2) []core.Hit {
	return nil // sources are not hit by rays, so no ray ever re-hits its own source
}
func (b *base) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	ray.Terminate(core.EndReason("source_self_hit"))
	return nil
}

func (b *base) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{
		"wavelength_nm": {Float: b.wavelengthNM},
		"intensity":     {Float: b.intensity},
		"enabled":       {Bool: b.enabled},
		"ignore_decay":  {Bool: b.ignoreDecay},
	}
}

func (b *base) SetProperty(name string, value core.PropertyValue) core.Changed {
	switch name {
	case "wavelength_nm":
		b.wavelengthNM = value.Float
	case "intensity":
		b.intensity = value.Float
	case "enabled":
		b.enabled = value.Bool
	case "ignore_decay":
		b.ignoreDecay = value.Bool
	case "angle_rad":
		b.angle = value.Float
	default:
		return core.Unchanged
	}
	return core.Retrace
}

// makeRay builds one emitted ray from this source's shared state, applying
// polarization and seeding history at origin.
func (b *base) makeRay(newRay core.RayCtor, origin, direction core.Vector2, intensity float64) core.Ray {
	r := newRay(core.NewRayParams{
		Origin:       origin,
		Direction:    direction,
		WavelengthNM: b.wavelengthNM,
		Intensity:    intensity,
		MediumIndex:  1.0,
		SourceID:     b.id,
		IgnoreDecay:  b.ignoreDecay,
		BeamDiameter: b.beamDiameter,
	})
	b.polarization.applyTo(&r)
	return r
}

// fanAngles returns n angles uniformly spread across [center-spread/2,
// center+spread/2]; for n==1 it returns just the center angle (spec.md
// §4.4's Fan/Laser-with-spread rule).
func fanAngles(center, spread float64, n int) []float64 {
	if n <= 1 {
		return []float64{center}
	}
	angles := make([]float64, n)
	step := spread / float64(n-1)
	start := center - spread/2
	for i := 0; i < n; i++ {
		angles[i] = start + step*float64(i)
	}
	return angles
}

// clampRayCount applies MAX_RAYS_PER_SOURCE (spec.md §6).
func clampRayCount(requested, maxAllowed int) int {
	if requested > maxAllowed {
		return maxAllowed
	}
	if requested < 1 {
		return 1
	}
	return requested
}
