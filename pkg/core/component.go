package core

// Hit describes a ray-component intersection, as returned by
// OpticalComponent.Intersect. Distance must be > 1e-6 (spec.md §4.3: rays
// don't intersect their immediate origin); Normal points against the
// incident ray direction, flipped from the raw geometric outward normal if
// needed.
type Hit struct {
	Distance float64
	Point    Vector2
	Normal   Vector2
	Surface  string // surface identifier, e.g. which edge of a prism or which cap of a fiber
	Extra    map[string]float64
}

// IsValid reports whether the hit's point and normal are finite — an
// invalid hit terminates its ray with EndInvalidHitPoint rather than
// propagating (spec.md §7).
func (h Hit) IsValid() bool {
	return h.Point.IsFinite() && h.Normal.IsFinite() && !isNaN(h.Distance)
}

func isNaN(f float64) bool { return f != f }

// RayCtor is the value-constructor every component receives to build
// successor rays, replacing the source language's "new RayClass" injection
// (spec.md DESIGN NOTES §9): in a statically typed implementation this is
// just a plain function value, not a class reference threaded through every
// component's constructor.
type RayCtor func(NewRayParams) Ray

// Changed reports whether a SetProperty call altered state that should
// trigger a retrace. This replaces the shared global mutable flags
// (window.needsRetrace and friends) spec.md's DESIGN NOTES §9 calls out:
// set_property is a pure setter, and the caller — not the core — decides
// what to do with Changed.
type Changed bool

const (
	Unchanged Changed = false
	Retrace   Changed = true
)

// PropertyValue is the property-bag payload for OpticalComponent's
// get/set_property contract (spec.md §4.3), used by external UI; the tracer
// never reads it.
type PropertyValue struct {
	Float  float64
	String string
	Bool   bool
}

// OpticalComponent is the capability set spec.md §3/§4.3 gives every
// component kind: identity, pose, hit-testing, intersection, interaction,
// optional ray generation, and a property model. A Go interface replaces
// the source language's virtual-dispatch class hierarchy (DESIGN NOTES §9);
// the tracer never needs to sniff a constructor name because the scene's
// component variants already satisfy this single contract uniformly, with
// Source-only behavior split into the separate Source interface below.
type OpticalComponent interface {
	ID() ComponentId
	Label() string
	Pose() (pos Vector2, angleRad float64)
	Enabled() bool

	// BoundingBox and ContainsPoint serve external selection UI; the tracer
	// does not call them.
	BoundingBox() Bounds2D
	ContainsPoint(p Vector2) bool

	// Intersect returns every intersection of the ray (origin, direction)
	// with this component; hits need not be sorted, and hits with
	// Distance <= 1e-6 must be excluded by the implementation.
	Intersect(origin, direction Vector2) []Hit

	// Interact terminates ray (recording an EndReason) and returns zero or
	// more successor rays, each carrying BouncesSoFar = ray.BouncesSoFar+1.
	Interact(ray *Ray, hit Hit, newRay RayCtor) []Ray

	GetProperties() map[string]PropertyValue
	SetProperty(name string, value PropertyValue) Changed
}

// Source is the additional capability sources implement (spec.md §4.3,
// §4.4): generating the initial ray set for a trace.
type Source interface {
	OpticalComponent
	GenerateRays(newRay RayCtor) []Ray
}

// FiberCoupler is the additional capability an optical fiber implements
// (spec.md §4.7, §4.8 step 3/6): the tracer probes every fiber's input cap
// alongside the normal component intersections on each ray pop, and once
// per trace (after the main loop drains) asks every fiber to emit its
// accumulated output rays for the next frame.
type FiberCoupler interface {
	OpticalComponent

	// ProbeInputCoupling checks whether the ray (origin, direction) falls
	// within the input cap's acceptance cone, returning the coupling hit
	// and ok=true if so. The tracer races this distance against every
	// other component's nearest hit.
	ProbeInputCoupling(origin, direction Vector2) (Hit, bool)

	// HandleInputInteraction terminates ray with EndReason
	// "coupled_into_fiber" and queues its energy for the next
	// GenerateOutputRays call; it returns no successors in the current
	// frame.
	HandleInputInteraction(ray *Ray, hit Hit)

	// GenerateOutputRays emits one ray per queued input coupling at the
	// configured output cap, then clears the queue.
	GenerateOutputRays(newRay RayCtor) []Ray
}
