// Package optics implements the passive geometric components of spec.md
// §4.5: mirrors, lenses, apertures, screens/detectors, and beam splitters.
// Every variant here is a finite line segment, a circular arc, or (the
// parabolic mirror) a parabolic arc in the scene plane; none carries Fresnel/dispersion physics (that lives in
// pkg/dispersive) or Jones-matrix transforms (pkg/polarization).
package optics

import (
	"math"

	"github.com/df07/go-optics-lab/pkg/core"
)

const epsilon = 1e-6

// base holds the fields every optics component shares: identity, pose, and
// enablement. Concrete components embed it and add their own geometry.
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

func (b *base) ID() core.ComponentId             { return b.id }
func (b *base) Label() string                    { return b.label }
func (b *base) Pose() (core.Vector2, float64)    { return b.pos, b.angle }
func (b *base) Enabled() bool                    { return b.enabled }

func (b *base) SetEnabled(v bool) core.Changed {
	if b.enabled == v {
		return core.Unchanged
	}
	b.enabled = v
	return core.Retrace
}

// segment is a finite line segment, the shared geometry for mirrors,
// lenses, apertures, splitters, and detectors (spec.md §4.5 describes each
// of them as "line segment" variants).
type segment struct {
	Start, End core.Vector2
}

// segmentAt builds the line segment centered at pos, oriented along angleRad,
// with the given total length.
func segmentAt(pos core.Vector2, angleRad, length float64) segment {
	dir := core.Vector2FromAngle(angleRad)
	half := dir.Multiply(length / 2)
	return segment{Start: pos.Subtract(half), End: pos.Add(half)}
}

// Normal returns the segment's unit normal, rotated +90 degrees from its
// direction (Start->End).
func (s segment) Normal() core.Vector2 {
	dir := s.End.Subtract(s.Start).Normalize()
	return dir.Rotate(math.Pi / 2)
}

// Length returns the segment's length.
func (s segment) Length() float64 {
	return s.Start.DistanceTo(s.End)
}

// Bounds returns the segment's axis-aligned bounding box.
func (s segment) Bounds() core.Bounds2D {
	return core.NewBounds2DFromPoints(s.Start, s.End).Expand(1)
}

// IntersectRay intersects a ray (origin, direction) with the segment,
// returning ok=false if there is no hit with distance > epsilon or the hit
// falls outside [0,1] along the segment. The returned normal is flipped to
// oppose direction, per spec.md §4.3.
func (s segment) IntersectRay(origin, direction core.Vector2) (dist float64, point, normal core.Vector2, ok bool) {
	edge := s.End.Subtract(s.Start)
	denom := direction.Cross(edge)
	if math.Abs(denom) < 1e-12 {
		return 0, core.Vector2{}, core.Vector2{}, false // parallel
	}

	diff := s.Start.Subtract(origin)
	t := diff.Cross(edge) / denom // distance along ray
	u := diff.Cross(direction) / denom // parameter along segment, [0,1]

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

// circle is a full circle in the plane, the shared geometry for spherical
// mirrors and ring mirrors.
type circle struct {
	Center core.Vector2
	Radius float64
}

// IntersectRay returns up to two intersection parameters (sorted ascending)
// of a ray with the circle boundary.
func (c circle) IntersectRay(origin, direction core.Vector2) []float64 {
	oc := origin.Subtract(c.Center)
	a := direction.Dot(direction)
	halfB := oc.Dot(direction)
	cc := oc.Dot(oc) - c.Radius*c.Radius
	disc := halfB*halfB - a*cc
	if disc < 0 {
		return nil
	}
	sqrtD := math.Sqrt(disc)
	t1 := (-halfB - sqrtD) / a
	t2 := (-halfB + sqrtD) / a
	var out []float64
	if t1 > epsilon {
		out = append(out, t1)
	}
	if t2 > epsilon {
		out = append(out, t2)
	}
	return out
}

// reflectivityConst returns a constant reflectivity function for flat/
// metallic mirrors.
func reflectivityConst(r float64) func(float64) float64 {
	return func(float64) float64 { return r }
}

// smoothstepBandpass returns a reflectivity curve that ramps from loValue to
// hiValue over a width-nm window centered on cutoffNM — the dichroic-mirror
// band-pass curve spec.md §4.5 leaves unspecified beyond "band-pass
// above/below cutoff" (see SPEC_FULL.md's supplemented-features note).
func smoothstepBandpass(cutoffNM, widthNM, loValue, hiValue float64, highPass bool) func(float64) float64 {
	return func(nm float64) float64 {
		t := (nm - (cutoffNM - widthNM/2)) / widthNM
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		smooth := t * t * (3 - 2*t)
		if highPass {
			return loValue + (hiValue-loValue)*smooth
		}
		return hiValue + (loValue-hiValue)*smooth
	}
}
