package tracer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-optics-lab/pkg/config"
	"github.com/df07/go-optics-lab/pkg/scene"
)

func TestTraceAllRaysParallel_MatchesSequentialCompletedCount(t *testing.T) {
	s := scene.PrismDispersion()
	seq := TraceAllRays(context.Background(), s.Components, Options{Constants: config.Defaults()})
	par := TraceAllRaysParallel(context.Background(), s.Components, Options{Constants: config.Defaults()}, 4)

	require.Equal(t, len(seq.Completed), len(par.Completed))
	for i := range seq.Completed {
		assert.Equal(t, seq.Completed[i].EndReason, par.Completed[i].EndReason)
		assert.InDelta(t, seq.Completed[i].Intensity, par.Completed[i].Intensity, 1e-9)
	}
}

func TestTraceAllRaysParallel_UnboundedConcurrencyMatchesSequential(t *testing.T) {
	s := scene.GratingOrders()
	seq := TraceAllRays(context.Background(), s.Components, Options{Constants: config.Defaults()})
	par := TraceAllRaysParallel(context.Background(), s.Components, Options{Constants: config.Defaults()}, 0)

	require.Equal(t, len(seq.Completed), len(par.Completed))
}
