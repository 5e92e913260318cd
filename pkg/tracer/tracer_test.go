package tracer

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-optics-lab/pkg/config"
	"github.com/df07/go-optics-lab/pkg/core"
	"github.com/df07/go-optics-lab/pkg/scene"
	"github.com/df07/go-optics-lab/pkg/sources"
)

func TestTraceAllRays_SingleMirrorSceneCompletes(t *testing.T) {
	s := scene.SingleMirror()
	result := TraceAllRays(context.Background(), s.Components, Options{Constants: config.Defaults()})
	require.NotEmpty(t, result.Completed)

	for _, r := range result.Completed {
		assert.True(t, r.Terminated)
		assert.LessOrEqual(t, r.Intensity, 1.0+1e-9)
	}

	// At least one ray should have bounced off the mirror and landed on
	// the screen.
	foundScreenHit := false
	for _, r := range result.Completed {
		if r.EndReason == "screen_hit" {
			foundScreenHit = true
		}
	}
	assert.True(t, foundScreenHit)
}

func TestTraceAllRays_IntensityNeverIncreases(t *testing.T) {
	s := scene.PrismDispersion()
	result := TraceAllRays(context.Background(), s.Components, Options{Constants: config.Defaults()})
	require.NotEmpty(t, result.Completed)
	for _, r := range result.Completed {
		assert.LessOrEqual(t, r.Intensity, 1.0+1e-9)
		assert.GreaterOrEqual(t, r.Intensity, 0.0)
	}
}

func TestTraceAllRays_BouncesSoFarNeverExceedsMaxBounces(t *testing.T) {
	s := scene.GratingOrders()
	constants := config.Defaults()
	result := TraceAllRays(context.Background(), s.Components, Options{Constants: constants})
	require.NotEmpty(t, result.Completed)
	for _, r := range result.Completed {
		assert.LessOrEqual(t, r.BouncesSoFar, constants.MaxBounces)
	}
}

func TestTraceAllRays_RayWithNoSceneHitsExitsOutOfBounds(t *testing.T) {
	// A laser with nothing else in the scene must still terminate, rather
	// than loop or hang, by exiting out of bounds.
	laser := sources.NewLaser("laser", "Laser", core.NewVector2(0, 0), 0)
	laserOnly := scene.New("laser_only", laser)
	result := TraceAllRays(context.Background(), laserOnly.Components, Options{Constants: config.Defaults()})
	require.Len(t, result.Completed, 1)
	assert.Equal(t, core.EndOutOfBounds, result.Completed[0].EndReason)
}

func TestTraceAllRays_PolarizerPairFollowsMalusLaw(t *testing.T) {
	for _, thetaDeg := range []float64{0, 30, 60, 90} {
		theta := thetaDeg * math.Pi / 180
		s := scene.PolarizerPair(theta)
		result := TraceAllRays(context.Background(), s.Components, Options{Constants: config.Defaults()})
		require.NotEmpty(t, result.Completed)

		var meterIntensity float64
		found := false
		for _, r := range result.Completed {
			if r.EndReason == "power_meter_hit" {
				meterIntensity = r.Intensity
				found = true
			}
		}
		expected := math.Pow(math.Cos(theta), 2)
		if !found {
			assert.InDelta(t, 0, expected, 0.01)
			continue
		}
		assert.InDelta(t, expected, meterIntensity, 0.05)
	}
}

func TestTraceAllRays_MaxTotalRaysCapsOutput(t *testing.T) {
	s := scene.ApertureDoubleSlit()
	constants := config.Defaults()
	constants.MaxTotalRays = 3
	result := TraceAllRays(context.Background(), s.Components, Options{Constants: constants})
	assert.LessOrEqual(t, len(result.Completed), 3)
}

func TestTraceAllRays_CancelledContextTerminatesQueuedRays(t *testing.T) {
	s := scene.PrismDispersion()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := TraceAllRays(ctx, s.Components, Options{Constants: config.Defaults()})
	for _, r := range result.Completed {
		assert.True(t, r.Terminated)
	}
}
