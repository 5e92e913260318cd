package tracer

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/df07/go-optics-lab/pkg/config"
	"github.com/df07/go-optics-lab/pkg/core"
)

// TraceAllRaysParallel generates every source's initial rays concurrently
// (spec.md §5: sources are independent, so their GenerateRays calls have no
// shared state to race on), then runs the same sequential main loop
// TraceAllRays uses. MaxConcurrency caps how many sources generate at
// once; 0 means unbounded.
func TraceAllRaysParallel(ctx context.Context, scene []core.OpticalComponent, opts Options, maxConcurrency int64) Result {
	constants := opts.Constants
	if constants.MaxTotalRays == 0 {
		constants = config.Defaults()
	}

	type indexedRays struct {
		sceneIndex int
		rays       []core.Ray
	}

	sources := make([]struct {
		index int
		src   core.Source
	}, 0)
	for i, c := range scene {
		if src, ok := c.(core.Source); ok && src.Enabled() {
			sources = append(sources, struct {
				index int
				src   core.Source
			}{i, src})
		}
	}

	results := make([]indexedRays, len(sources))
	newRay := func(p core.NewRayParams) core.Ray { return core.NewRay(p) }

	g, gctx := errgroup.WithContext(ctx)
	var sem *semaphore.Weighted
	if maxConcurrency > 0 {
		sem = semaphore.NewWeighted(maxConcurrency)
	}

	for i, s := range sources {
		i, s := i, s
		g.Go(func() error {
			if sem != nil {
				if err := sem.Acquire(gctx, 1); err != nil {
					return err
				}
				defer sem.Release(1)
			}
			results[i] = indexedRays{sceneIndex: s.index, rays: s.src.GenerateRays(newRay)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Context cancelled mid-generation: fall back to the sequential
		// path, which honors ctx.Done() itself on every queue pop.
		return TraceAllRays(ctx, scene, opts)
	}

	// Deterministic reordering: flatten strictly in scene order, matching
	// TraceAllRays's sequential generation order exactly (spec.md §5's
	// "Ordering guarantees" apply to completed output regardless of how
	// generation was parallelized).
	var seedRays []core.Ray
	for _, r := range results {
		seedRays = append(seedRays, r.rays...)
	}
	seedRays = append(seedRays, opts.SeedRays...)

	seqOpts := opts
	seqOpts.SeedRays = seedRays
	seqOpts.SkipSourceGeneration = true
	seqOpts.Constants = constants
	return TraceAllRays(ctx, scene, seqOpts)
}
