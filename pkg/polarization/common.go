// Package polarization implements the Jones-calculus components of
// spec.md §4.6: polarizers, wave plates, Faraday rotators/isolators, and a
// Wollaston beam-splitting prism. The wave plates and Faraday components
// act on core.Ray.Jones (initializing it from core.Ray.PolarizationAngle
// via core.Ray.EnsureJonesVector when absent) and leave the ray's direction
// unchanged. Polarizer and WollastonPrism instead treat a ray with no Jones
// state as unpolarized, and WollastonPrism also deviates its two output
// beams.
package polarization

import (
	"math"

	"github.com/df07/go-optics-lab/pkg/core"
)

const epsilon = 1e-6

// base holds the fields every polarization component shares.
type base struct {
	id      core.ComponentId
	label   string
	pos     core.Vector2
	angle   float64
	enabled bool
}

func newBase(id core.ComponentId, label string, pos core.Vector2, angleRad float64) base {
	return base{id: id, label: label, pos: pos, angle: angleRad, enabled: true}
}

func (b *base) ID() core.ComponentId          { return b.id }
func (b *base) Label() string                 { return b.label }
func (b *base) Pose() (core.Vector2, float64) { return b.pos, b.angle }
func (b *base) Enabled() bool                 { return b.enabled }

func (b *base) SetEnabled(v bool) core.Changed {
	if b.enabled == v {
		return core.Unchanged
	}
	b.enabled = v
	return core.Retrace
}

// segment is a finite line segment, the geometry every polarization
// component here is built on (spec.md §4.6 describes each as a normal-
// incidence plane element along the beam).
type segment struct {
	Start, End core.Vector2
}

func segmentAt(pos core.Vector2, angleRad, length float64) segment {
	dir := core.Vector2FromAngle(angleRad)
	half := dir.Multiply(length / 2)
	return segment{Start: pos.Subtract(half), End: pos.Add(half)}
}

func (s segment) Normal() core.Vector2 {
	dir := s.End.Subtract(s.Start).Normalize()
	return dir.Rotate(math.Pi / 2)
}

func (s segment) Bounds() core.Bounds2D {
	return core.NewBounds2DFromPoints(s.Start, s.End).Expand(1)
}

func (s segment) IntersectRay(origin, direction core.Vector2) (dist float64, point, normal core.Vector2, ok bool) {
	edge := s.End.Subtract(s.Start)
	denom := direction.Cross(edge)
	if math.Abs(denom) < 1e-12 {
		return 0, core.Vector2{}, core.Vector2{}, false
	}
	diff := s.Start.Subtract(origin)
	t := diff.Cross(edge) / denom
	u := diff.Cross(direction) / denom
	if t <= epsilon || u < 0 || u > 1 {
		return 0, core.Vector2{}, core.Vector2{}, false
	}
	point = origin.Add(direction.Multiply(t))
	n := s.Normal()
	if n.Dot(direction) > 0 {
		n = n.Negate()
	}
	return t, point, n, true
}

// passThrough builds the successor ray for a component that transforms the
// Jones vector in place without deviating the ray geometrically.
func passThrough(ray *core.Ray, hit core.Hit, newRay core.RayCtor, apply func(core.JonesVector) core.JonesVector) core.Ray {
	ray.EnsureJonesVector()
	jIn := *ray.Jones
	jOut := apply(jIn)

	r := newRay(core.NewRayParams{
		Origin: hit.Point, Direction: ray.Direction, WavelengthNM: ray.WavelengthNM,
		Intensity: ray.Intensity * jOut.Intensity() / math.Max(jIn.Intensity(), epsilon),
		Phase: ray.Phase, BouncesSoFar: ray.BouncesSoFar + 1,
		MediumIndex: ray.MediumRefractiveIndex, SourceID: ray.SourceID,
		PolarizationAngle: ray.PolarizationAngle, IgnoreDecay: ray.IgnoreDecay,
		History: append([]core.Vector2{}, ray.History...), BeamDiameter: ray.BeamDiameter,
	})
	r.Jones = &jOut
	return r
}
