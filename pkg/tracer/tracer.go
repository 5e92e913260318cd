// Package tracer implements the scheduler spec.md §4.8 describes: initial-
// ray generation from scene sources, an active-ray queue processed to a
// fixed point against scene-order intersection, fiber-coupling probing,
// successor enqueuing with arrow-animation-flag propagation, and fiber
// output generation for the next frame.
package tracer

import (
	"context"

	"github.com/df07/go-optics-lab/pkg/config"
	"github.com/df07/go-optics-lab/pkg/core"
	"github.com/df07/go-optics-lab/pkg/dispersive"
	"github.com/df07/go-optics-lab/pkg/optics"
)

// Result is the outcome of a single TraceAllRays call: every ray that
// reached a terminal state, plus fiber outputs to seed the next frame's
// call (spec.md §4.8 step 6).
type Result struct {
	Completed    []core.Ray
	FiberOutputs []core.Ray
}

// Options configures a trace beyond the scene itself.
type Options struct {
	Constants config.Constants
	Logger    core.Logger
	// SeedRays are rays handed in from a prior frame (e.g. fiber outputs)
	// to enqueue alongside freshly generated source rays (spec.md §4.8 step 2).
	SeedRays []core.Ray
	// SkipSourceGeneration omits step 1 (per-source GenerateRays calls);
	// set by TraceAllRaysParallel, which performs that step itself
	// concurrently and passes its output through SeedRays instead.
	SkipSourceGeneration bool
}

// raySeq is a monotonic counter standing in for the source language's
// object-identity based RayCtor bookkeeping; TraceAllRays advances it for
// every ray it constructs but never reads it; spec.md assigns no intrinsic
// identity to a Ray beyond its fields.
type raySeq struct{ n int }

func (s *raySeq) next() int { s.n++; return s.n }

// TraceAllRays runs a single trace to completion. scene is the ordered
// component list (scene order breaks intersection-distance ties and fixes
// source generation order, per spec.md §5).
func TraceAllRays(ctx context.Context, scene []core.OpticalComponent, opts Options) Result {
	constants := opts.Constants
	if constants.MaxTotalRays == 0 {
		constants = config.Defaults()
	}
	logger := opts.Logger
	if logger == nil {
		logger = core.NopLogger{}
	}

	seq := &raySeq{}
	newRay := func(p core.NewRayParams) core.Ray {
		seq.next()
		return core.NewRay(p)
	}

	var completed []core.Ray
	var queue []core.Ray
	totalRays := 0

	enqueueOrComplete := func(r core.Ray, animate bool) {
		if totalRays >= constants.MaxTotalRays {
			return // spec.md §4.8 invariant: discard past the total-ray cap
		}
		totalRays++
		r.AnimateArrow = animate
		if r.ShouldTerminate(constants.MaxBounces) {
			if !r.Terminated {
				r.Terminate(core.EndSegmentEndDefault)
			}
			completed = append(completed, r)
			return
		}
		queue = append(queue, r)
	}

	// Step 1: initial generation, in scene order.
	if !opts.SkipSourceGeneration {
		for _, c := range scene {
			src, ok := c.(core.Source)
			if !ok || !src.Enabled() {
				continue
			}
			for _, r := range src.GenerateRays(newRay) {
				enqueueOrComplete(r, true)
			}
		}
	}

	// Step 2: seed seen rays from a prior frame (e.g. fiber outputs).
	for _, r := range opts.SeedRays {
		enqueueOrComplete(r, true)
	}

	fibers := make([]core.FiberCoupler, 0)
	for _, c := range scene {
		if fc, ok := c.(core.FiberCoupler); ok && fc.Enabled() {
			fibers = append(fibers, fc)
		}
	}

	// Step 3: main loop.
	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			for _, r := range queue {
				r.Terminate(core.EndCancelled)
				completed = append(completed, r)
			}
			queue = nil
			return Result{Completed: completed, FiberOutputs: generateFiberOutputs(fibers, newRay)}
		default:
		}

		r := queue[0]
		queue = queue[1:]

		if r.BouncesSoFar >= constants.MaxBounces {
			r.Terminate(core.EndMaxBounces)
			completed = append(completed, r)
			continue
		}
		if r.ShouldTerminate(constants.MaxBounces) {
			completed = append(completed, r)
			continue
		}

		bestDist := -1.0
		var bestHit core.Hit
		var bestComponent core.OpticalComponent
		var bestFiber core.FiberCoupler
		var bestFiberHit core.Hit

		for _, c := range scene {
			if !c.Enabled() {
				continue
			}
			for _, h := range c.Intersect(r.Origin, r.Direction) {
				if h.Distance <= 1e-6 {
					continue
				}
				if !h.IsValid() {
					r.Terminate(core.EndInvalidHitPoint)
					continue
				}
				if bestDist < 0 || h.Distance < bestDist {
					bestDist = h.Distance
					bestHit = h
					bestComponent = c
					bestFiber = nil
				}
			}
		}
		if r.Terminated {
			completed = append(completed, r)
			continue
		}

		for _, fc := range fibers {
			h, ok := fc.ProbeInputCoupling(r.Origin, r.Direction)
			if !ok || h.Distance <= 1e-6 {
				continue
			}
			if bestDist < 0 || h.Distance < bestDist {
				bestDist = h.Distance
				bestFiberHit = h
				bestFiber = fc
				bestComponent = nil
			}
		}

		if bestDist < 0 {
			exitDist := 2 * boundsScale(scene)
			exit := r.Origin.Add(r.Direction.Multiply(exitDist))
			r.AddHistoryPoint(exit)
			r.Terminate(core.EndOutOfBounds)
			completed = append(completed, r)
			continue
		}

		if bestFiber != nil {
			r.AddHistoryPoint(bestFiberHit.Point)
			bestFiber.HandleInputInteraction(&r, bestFiberHit)
			completed = append(completed, r)
			continue
		}

		r.AddHistoryPoint(bestHit.Point)
		successors := safeInteract(logger, bestComponent, &r, bestHit, newRay)
		if !r.Terminated {
			r.Terminate(core.EndSegmentEndDefault)
		}
		completed = append(completed, r)

		animated := pickAnimatedSuccessors(bestComponent, r.EndReason, r.AnimateArrow, r.Intensity, successors)
		for i, s := range successors {
			enqueueOrComplete(s, r.AnimateArrow && animated[i])
		}
	}

	// Step 5 is implicit: the loop above only exits when queue is empty, so
	// nothing remains "stuck" unless MaxTotalRays truncation left gaps;
	// that path is handled by enqueueOrComplete's discard, matching
	// spec.md §4.8's "further rays are discarded" invariant.

	return Result{Completed: completed, FiberOutputs: generateFiberOutputs(fibers, newRay)}
}

func generateFiberOutputs(fibers []core.FiberCoupler, newRay core.RayCtor) []core.Ray {
	var out []core.Ray
	for _, fc := range fibers {
		out = append(out, fc.GenerateOutputRays(newRay)...)
	}
	return out
}

// safeInteract recovers from a panicking component's Interact, terminating
// the ray with EndInteractionError instead of crashing the trace (spec.md
// §4.8 failure semantics: "any per-component exception is caught, logged").
func safeInteract(logger core.Logger, c core.OpticalComponent, r *core.Ray, hit core.Hit, newRay core.RayCtor) (successors []core.Ray) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Printf("tracer: component %s interaction panicked: %v", c.ID(), rec)
			r.Terminate(core.EndInteractionError)
			successors = nil
		}
	}()
	return c.Interact(r, hit, newRay)
}

// boundsScale returns max(w,h) across every component's bounding box,
// enabled or not, for the out-of-bounds exit-point distance spec.md §4.8 step 3 wants
// ("2*max(w,h)").
func boundsScale(scene []core.OpticalComponent) float64 {
	scale := 1000.0 // sane default when the scene is empty or degenerate
	first := true
	var union core.Bounds2D
	for _, c := range scene {
		b := c.BoundingBox()
		if first {
			union = b
			first = false
			continue
		}
		union = union.Union(b)
	}
	if first {
		return scale
	}
	w := union.Max.X - union.Min.X
	h := union.Max.Y - union.Min.Y
	if w <= 0 && h <= 0 {
		return scale
	}
	if w > h {
		return w
	}
	return h
}

// pickAnimatedSuccessors implements spec.md §4.8 step 4's arrow-animation
// rule: the returned slice (len(successors)) marks which descendants inherit
// the parent's animation flag. A type switch on the interacting component
// picks its specific rule (DielectricBlock's TIR/refraction cases,
// BeamSplitter's dual-survivor case); anything else falls back to the
// default rule.
func pickAnimatedSuccessors(component core.OpticalComponent, endReason core.EndReason, parentAnimated bool, parentIntensity float64, successors []core.Ray) []bool {
	marks := make([]bool, len(successors))
	if !parentAnimated || len(successors) == 0 {
		return marks
	}

	switch component.(type) {
	case *dispersive.DielectricBlock:
		pickDielectricBlockSuccessor(endReason, successors, marks)
		return marks
	case *optics.BeamSplitter:
		pickBeamSplitterSuccessors(parentIntensity, successors, marks)
		return marks
	}

	best := highestIntensityIndex(successors)
	if successors[best].Intensity >= 0.1*parentIntensity {
		marks[best] = true
	}
	return marks
}

// pickDielectricBlockSuccessor applies DielectricBlock's rules: on TIR the
// (sole) reflected successor always animates; on refraction, Interact
// appends the reflected successor before the transmitted one, so whichever
// is at least 80% of the other's intensity animates, defaulting to
// transmitted when both qualify or neither does.
func pickDielectricBlockSuccessor(endReason core.EndReason, successors []core.Ray, marks []bool) {
	if endReason == core.EndReason("tir") || len(successors) == 1 {
		marks[0] = true
		return
	}
	reflected, transmitted := successors[0], successors[1]
	if transmitted.Intensity >= 0.8*reflected.Intensity {
		marks[1] = true
	} else if reflected.Intensity >= 0.8*transmitted.Intensity {
		marks[0] = true
	} else {
		marks[1] = true
	}
}

// pickBeamSplitterSuccessors applies BeamSplitter's rule: Interact appends
// the transmitted successor before the reflected one when both exist; if
// both clear 30% of the parent's intensity, both animate, otherwise the
// stronger animates if it clears 10%.
func pickBeamSplitterSuccessors(parentIntensity float64, successors []core.Ray, marks []bool) {
	if len(successors) == 1 {
		if successors[0].Intensity >= 0.1*parentIntensity {
			marks[0] = true
		}
		return
	}
	transmitted, reflected := successors[0], successors[1]
	if transmitted.Intensity >= 0.3*parentIntensity && reflected.Intensity >= 0.3*parentIntensity {
		marks[0] = true
		marks[1] = true
		return
	}
	best := highestIntensityIndex(successors)
	if successors[best].Intensity >= 0.1*parentIntensity {
		marks[best] = true
	}
}

func highestIntensityIndex(successors []core.Ray) int {
	best := 0
	for i, s := range successors[1:] {
		if s.Intensity > successors[best].Intensity {
			best = i + 1
		}
	}
	return best
}
