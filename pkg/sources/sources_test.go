package sources

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-optics-lab/pkg/core"
)

func newRayCtor() core.RayCtor {
	return func(p core.NewRayParams) core.Ray { return core.NewRay(p) }
}

func TestLaser_SingleRay(t *testing.T) {
	laser := NewLaser("laser", "Laser", core.NewVector2(0, 0), 0)
	rays := laser.GenerateRays(newRayCtor())
	require.Len(t, rays, 1)
	assert.InDelta(t, 1.0, rays[0].Intensity, 1e-9)
	assert.InDelta(t, 1.0, rays[0].Direction.Length(), 1e-9)
}

func TestLaser_Disabled(t *testing.T) {
	laser := NewLaser("laser", "Laser", core.NewVector2(0, 0), 0)
	laser.SetProperty("enabled", core.PropertyValue{Bool: false})
	assert.Nil(t, laser.GenerateRays(newRayCtor()))
}

func TestFan_ConservesTotalIntensity(t *testing.T) {
	fan := NewFan("fan", "Fan", core.NewVector2(0, 0), 0, 0.5, 11)
	rays := fan.GenerateRays(newRayCtor())
	require.Len(t, rays, 11)
	total := 0.0
	for _, r := range rays {
		total += r.Intensity
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestFan_ClampsToMaxRaysPerSource(t *testing.T) {
	fan := NewFan("fan", "Fan", core.NewVector2(0, 0), 0, 0.5, 5000)
	rays := fan.GenerateRays(newRayCtor())
	assert.LessOrEqual(t, len(rays), 1001)
}

func TestWhiteLight_SpansBand(t *testing.T) {
	light := NewWhiteLight("light", "White Light", core.NewVector2(0, 0), 0, 7)
	rays := light.GenerateRays(newRayCtor())
	require.Len(t, rays, 7)
	assert.InDelta(t, 380.0, rays[0].WavelengthNM, 1e-9)
	assert.InDelta(t, 780.0, rays[6].WavelengthNM, 1e-9)

	total := 0.0
	for _, r := range rays {
		total += r.Intensity
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestLaser_LinearPolarizationApplied(t *testing.T) {
	laser := NewLaser("laser", "Laser", core.NewVector2(0, 0), 0)
	laser.SetPolarization(Polarization{Kind: Linear, Angle: 0})
	rays := laser.GenerateRays(newRayCtor())
	require.Len(t, rays, 1)
	require.NotNil(t, rays[0].Jones)
	assert.InDelta(t, 1.0, rays[0].Jones.Intensity(), 1e-9)
}

func TestLine_ConservesTotalIntensityAndSpreadsOrigins(t *testing.T) {
	line := NewLine("line", "Line", core.NewVector2(0, 0), 0, 10, 5)
	rays := line.GenerateRays(newRayCtor())
	require.Len(t, rays, 5)

	total := 0.0
	for _, r := range rays {
		total += r.Intensity
		assert.InDelta(t, 1.0, r.Direction.Length(), 1e-9)
		// All rays share the same direction, perpendicular to the spread axis.
		assert.InDelta(t, 1.0, r.Direction.Dot(core.NewVector2(1, 0)), 1e-9)
	}
	assert.InDelta(t, 1.0, total, 1e-9)

	// Origins span the full length, centered on the source position.
	first := rays[0].Origin
	last := rays[4].Origin
	assert.InDelta(t, 10.0, first.DistanceTo(last), 1e-9)
}

func TestLine_SingleRayFiresFromCenter(t *testing.T) {
	line := NewLine("line", "Line", core.NewVector2(3, 4), 0, 10, 1)
	rays := line.GenerateRays(newRayCtor())
	require.Len(t, rays, 1)
	assert.InDelta(t, 0, rays[0].Origin.DistanceTo(core.NewVector2(3, 4)), 1e-9)
}

func TestPoint_EmitsIsotropicallyAndConservesIntensity(t *testing.T) {
	point := NewPoint("pt", "Point", core.NewVector2(0, 0), 8)
	rays := point.GenerateRays(newRayCtor())
	require.Len(t, rays, 8)

	total := 0.0
	for _, r := range rays {
		total += r.Intensity
		assert.InDelta(t, 0, r.Origin.DistanceTo(core.NewVector2(0, 0)), 1e-9)
		assert.InDelta(t, 1.0, r.Direction.Length(), 1e-9)
	}
	assert.InDelta(t, 1.0, total, 1e-9)

	// First ray fires along angle 0.
	assert.InDelta(t, 1.0, rays[0].Direction.Dot(core.NewVector2(1, 0)), 1e-9)
	// A quarter of the way around the circle, the ray should fire at +90 degrees.
	assert.InDelta(t, 1.0, rays[2].Direction.Dot(core.NewVector2(0, 1)), 1e-9)
}

func TestPoint_DisabledProducesNoRays(t *testing.T) {
	point := NewPoint("pt", "Point", core.NewVector2(0, 0), 8)
	point.SetProperty("enabled", core.PropertyValue{Bool: false})
	assert.Nil(t, point.GenerateRays(newRayCtor()))
}

func TestLED_ConservesTotalIntensityAndPeaksOnAxis(t *testing.T) {
	led := NewLED("led", "LED", core.NewVector2(0, 0), 0, math.Pi/4, 9)
	rays := led.GenerateRays(newRayCtor())
	require.Len(t, rays, 9)

	total := 0.0
	for _, r := range rays {
		total += r.Intensity
	}
	assert.InDelta(t, 1.0, total, 1e-9)

	// The on-axis ray (center of the fan) carries the most intensity, since
	// cos(0) > cos(offset) for any nonzero offset within the lobe.
	mid := rays[4]
	for i, r := range rays {
		if i == 4 {
			continue
		}
		assert.GreaterOrEqual(t, mid.Intensity, r.Intensity)
	}
}

func TestLED_SingleRayFiresOnAxisAtFullIntensity(t *testing.T) {
	led := NewLED("led", "LED", core.NewVector2(0, 0), math.Pi/2, math.Pi/6, 1)
	rays := led.GenerateRays(newRayCtor())
	require.Len(t, rays, 1)
	assert.InDelta(t, 1.0, rays[0].Intensity, 1e-9)
	assert.InDelta(t, 1.0, rays[0].Direction.Dot(core.NewVector2(0, 1)), 1e-9)
}

func TestPulsedLaser_EmitsSingleRayAtPeakPower(t *testing.T) {
	pulsed := NewPulsedLaser("pl", "Pulsed Laser", core.NewVector2(0, 0), 0, 50, 1e-9, 1000)
	rays := pulsed.GenerateRays(newRayCtor())
	require.Len(t, rays, 1)
	assert.InDelta(t, 50, rays[0].Intensity, 1e-9)
}

func TestPulsedLaser_PropertiesReportPulseParameters(t *testing.T) {
	pulsed := NewPulsedLaser("pl", "Pulsed Laser", core.NewVector2(0, 0), 0, 50, 1e-9, 1000)
	props := pulsed.GetProperties()
	assert.InDelta(t, 50, props["peak_power"].Float, 1e-9)
	assert.InDelta(t, 1e-9, props["pulse_width_s"].Float, 1e-12)
	assert.InDelta(t, 1000, props["rep_rate_hz"].Float, 1e-9)
}

func TestPulsedLaser_SetPeakPowerUpdatesIntensity(t *testing.T) {
	pulsed := NewPulsedLaser("pl", "Pulsed Laser", core.NewVector2(0, 0), 0, 50, 1e-9, 1000)
	changed := pulsed.SetProperty("peak_power", core.PropertyValue{Float: 75})
	assert.Equal(t, core.Retrace, changed)
	rays := pulsed.GenerateRays(newRayCtor())
	require.Len(t, rays, 1)
	assert.InDelta(t, 75, rays[0].Intensity, 1e-9)
}
