package sources

import "github.com/df07/go-optics-lab/pkg/core"

// PulsedLaser has the same geometric output as Laser — PeakPower is the
// per-ray intensity — but the tracer does not model time; PulseWidthS and
// RepRateHz are reported via properties only (spec.md §4.4).
type PulsedLaser struct {
	base

	PeakPower   float64
	PulseWidthS float64
	RepRateHz   float64
}

// NewPulsedLaser creates a pulsed-laser source along angleRad.
func NewPulsedLaser(id core.ComponentId, label string, pos core.Vector2, angleRad, peakPower, pulseWidthS, repRateHz float64) *PulsedLaser {
	p := &PulsedLaser{
		base:        newBase(id, label, pos, angleRad),
		PeakPower:   peakPower,
		PulseWidthS: pulseWidthS,
		RepRateHz:   repRateHz,
	}
	p.intensity = peakPower
	return p
}

func (p *PulsedLaser) GenerateRays(newRay core.RayCtor) []core.Ray {
	if !p.enabled {
		return nil
	}
	dir := core.Vector2FromAngle(p.angle)
	return []core.Ray{p.makeRay(newRay, p.pos, dir, p.PeakPower)}
}

func (p *PulsedLaser) GetProperties() map[string]core.PropertyValue {
	props := p.base.GetProperties()
	props["peak_power"] = core.PropertyValue{Float: p.PeakPower}
	props["pulse_width_s"] = core.PropertyValue{Float: p.PulseWidthS}
	props["rep_rate_hz"] = core.PropertyValue{Float: p.RepRateHz}
	return props
}

func (p *PulsedLaser) SetProperty(name string, value core.PropertyValue) core.Changed {
	switch name {
	case "peak_power":
		p.PeakPower = value.Float
		p.intensity = value.Float
		return core.Retrace
	case "pulse_width_s":
		p.PulseWidthS = value.Float
		return core.Retrace
	case "rep_rate_hz":
		p.RepRateHz = value.Float
		return core.Retrace
	default:
		return p.base.SetProperty(name, value)
	}
}
