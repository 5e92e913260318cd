package core

import "math"

// EndReason tags why a ray stopped propagating. Values are the component-
// specific and exhaustion tags enumerated in spec.md §7.
type EndReason string

const (
	EndInvalidConstruction EndReason = "invalid_construction"
	EndInvalidHitPoint     EndReason = "invalid_hit_point"
	EndInteractionError    EndReason = "interaction_error"
	EndLowIntensity        EndReason = "low_intensity"
	EndMaxBounces          EndReason = "max_bounces"
	EndOutOfBounds         EndReason = "out_of_bounds"
	EndStuckInQueue        EndReason = "stuck_in_queue"
	EndCancelled           EndReason = "cancelled"
	EndSegmentEndDefault   EndReason = "segment_end_after_interaction"
)

// Ray is a single traced ray: its geometry, radiometric/polarization state,
// and the polyline history an external renderer draws. A ray is owned by
// exactly one of {the tracer's active queue, a completed list, a next-frame
// list} at any moment; nothing here mutates once Terminate has been called.
type Ray struct {
	Origin    Vector2
	Direction Vector2 // always unit length after construction

	WavelengthNM float64
	Intensity    float64
	Phase        float64

	BouncesSoFar          uint32
	MediumRefractiveIndex float64
	SourceID              ComponentId

	PolarizationAngle float64
	Jones             *JonesVector // nil until a polarization-sensitive component touches the ray

	IgnoreDecay bool

	History       []Vector2
	BeamDiameter  float64
	Terminated    bool
	EndReason     EndReason
	AnimateArrow  bool
}

// NewRayParams bundles Ray construction inputs (spec.md §4.2).
type NewRayParams struct {
	Origin            Vector2
	Direction         Vector2
	WavelengthNM      float64
	Intensity         float64
	Phase             float64
	BouncesSoFar      uint32
	MediumIndex       float64
	SourceID          ComponentId
	PolarizationAngle float64
	IgnoreDecay       bool
	History           []Vector2 // optional; if provided it is cloned verbatim, origin is NOT appended
	BeamDiameter      float64
}

// NewRay constructs a ray from p, normalizing Direction and seeding History
// with Origin when none was supplied. If Origin or Direction is non-finite
// (or Direction normalizes to the zero vector), the returned ray is already
// terminated with EndInvalidConstruction — per spec.md §4.2's failure
// semantics, the tracer is expected to drop such a ray immediately rather
// than treat construction as a panic condition.
func NewRay(p NewRayParams) Ray {
	dir := p.Direction.Normalize()
	valid := p.Origin.IsFinite() && p.Direction.IsFinite() && dir.Length() > 0.5 &&
		!math.IsNaN(p.WavelengthNM) && !math.IsNaN(p.Intensity)

	history := p.History
	if history == nil {
		history = []Vector2{p.Origin}
	} else {
		cloned := make([]Vector2, len(history))
		copy(cloned, history)
		history = cloned
	}

	r := Ray{
		Origin:                p.Origin,
		Direction:             dir,
		WavelengthNM:          p.WavelengthNM,
		Intensity:             p.Intensity,
		Phase:                 p.Phase,
		BouncesSoFar:          p.BouncesSoFar,
		MediumRefractiveIndex: p.MediumIndex,
		SourceID:              p.SourceID,
		PolarizationAngle:     p.PolarizationAngle,
		IgnoreDecay:           p.IgnoreDecay,
		History:               history,
		BeamDiameter:          p.BeamDiameter,
	}

	if !valid {
		r.Terminate(EndInvalidConstruction)
	}
	return r
}

// EnsureJonesVector seeds Jones from PolarizationAngle (as a real linear
// state scaled to the ray's current intensity) if it hasn't been set yet.
func (r *Ray) EnsureJonesVector() {
	if r.Jones != nil {
		return
	}
	amp := math.Sqrt(math.Max(0, r.Intensity))
	j := NewLinearJones(r.PolarizationAngle).Scale(amp)
	r.Jones = &j
}

// SetLinearPolarization sets the Jones state to unit-amplitude linear
// polarization at angle theta.
func (r *Ray) SetLinearPolarization(theta float64) {
	r.PolarizationAngle = theta
	j := NewLinearJones(theta)
	r.Jones = &j
}

// SetCircularPolarization sets the Jones state to unit-intensity circular
// polarization.
func (r *Ray) SetCircularPolarization(right bool) {
	j := NewCircularJones(right)
	r.Jones = &j
}

// SetUnpolarized clears the Jones state; downstream polarization components
// treat a nil Jones as 50/50 unpolarized light.
func (r *Ray) SetUnpolarized() {
	r.Jones = nil
}

// JonesIntensity returns |Ex|^2 + |Ey|^2, or 0 if Jones is unset.
func (r *Ray) JonesIntensity() float64 {
	if r.Jones == nil {
		return 0
	}
	return r.Jones.Intensity()
}

// AddHistoryPoint appends p to History unless it is within 1e-6 of the last
// recorded point.
func (r *Ray) AddHistoryPoint(p Vector2) {
	if len(r.History) > 0 && r.History[len(r.History)-1].DistanceTo(p) < 1e-6 {
		return
	}
	r.History = append(r.History, p)
}

// Terminate marks the ray completed with the given reason. No further
// mutation is permitted on a terminated ray.
func (r *Ray) Terminate(reason EndReason) {
	r.Terminated = true
	r.EndReason = reason
}

// MinIntensity is the energy floor below which an active ray is culled
// (spec.md §6); it mirrors config.MinIntensity but lives here too so Ray's
// invariants are self-contained without importing pkg/config.
const MinIntensity = 1e-4

// MaxBounces is the default bounce ceiling (spec.md §6); the tracer accepts
// a configurable override per spec.md §4.8.
const MaxBounces = 40

// ShouldTerminate reports whether r is terminated, exhausted on intensity
// (unless IgnoreDecay is set), or has reached maxBounces.
func (r *Ray) ShouldTerminate(maxBounces uint32) bool {
	if r.Terminated {
		return true
	}
	if !r.IgnoreDecay && r.Intensity < MinIntensity {
		return true
	}
	if r.BouncesSoFar >= maxBounces {
		return true
	}
	return false
}

// Clone returns a deep-enough copy of r suitable for producing an
// independent successor ray (History is copied, not shared).
func (r Ray) Clone() Ray {
	history := make([]Vector2, len(r.History))
	copy(history, r.History)
	r.History = history
	if r.Jones != nil {
		j := *r.Jones
		r.Jones = &j
	}
	return r
}
