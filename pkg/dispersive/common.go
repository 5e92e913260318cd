// Package dispersive implements the wavelength-dependent components of
// spec.md §4.7: a dispersive prism, diffraction grating, dielectric block,
// optical fiber, optical chopper, and variable attenuator. Fresnel
// reflectance here follows material/dielectric.go's reflect/refract
// vector math, extended from the teacher's Schlick approximation to the
// exact s/p-averaged Fresnel equations spec.md §4.5/§4.7 specify.
package dispersive

import (
	"math"

	"github.com/df07/go-optics-lab/pkg/core"
)

const epsilon = 1e-6

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

// segment is a finite line segment (one edge of a prism or dielectric
// block, a grating's ruled face, or an attenuator plane).
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

func (s segment) Length() float64 { return s.Start.DistanceTo(s.End) }

func (s segment) Bounds() core.Bounds2D {
	return core.NewBounds2DFromPoints(s.Start, s.End).Expand(1)
}

// intersectRayRaw intersects without flipping the normal, needed by
// components (like DielectricBlock) that must know the raw outward normal
// to decide entering vs exiting a medium.
func (s segment) intersectRayRaw(origin, direction core.Vector2) (dist float64, point, normal core.Vector2, ok bool) {
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
	return t, point, s.Normal(), true
}

func (s segment) IntersectRay(origin, direction core.Vector2) (dist float64, point, normal core.Vector2, ok bool) {
	t, p, n, ok := s.intersectRayRaw(origin, direction)
	if !ok {
		return 0, core.Vector2{}, core.Vector2{}, false
	}
	if n.Dot(direction) > 0 {
		n = n.Negate()
	}
	return t, p, n, true
}

// circle is a full circle in the plane, used by OpticalFiber's end caps.
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

// reflectDirection mirrors material/dielectric.go's reflectVector, in 2D:
// r = d - 2*(d.n)*n.
func reflectDirection(d, n core.Vector2) core.Vector2 {
	return d.Subtract(n.Multiply(2 * d.Dot(n)))
}

// refractDirection mirrors material/dielectric.go's refractVector, in 2D,
// given the ratio eta = n1/n2 and an outward normal opposing d.
func refractDirection(d, n core.Vector2, eta float64) (core.Vector2, bool) {
	cosThetaI := math.Min(-d.Dot(n), 1.0)
	sin2ThetaT := eta * eta * (1 - cosThetaI*cosThetaI)
	if sin2ThetaT > 1 {
		return core.Vector2{}, false // total internal reflection
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)
	perp := d.Add(n.Multiply(cosThetaI)).Multiply(eta)
	parallel := n.Multiply(-cosThetaT)
	return perp.Add(parallel).Normalize(), true
}

// fresnelAverage computes the s/p-averaged Fresnel reflectance for
// unpolarized intensity bookkeeping, per spec.md §4.5/§4.7:
// R_s = ((n1*cosThetaI - n2*cosThetaT)/(n1*cosThetaI + n2*cosThetaT))^2,
// analogous for R_p with n1,n2 swapped in the numerator/denominator roles;
// R = (R_s + R_p)/2. ok=false signals total internal reflection (R=1).
func fresnelAverage(cosThetaI, n1, n2 float64) (r float64, ok bool) {
	sinThetaI := math.Sqrt(math.Max(0, 1-cosThetaI*cosThetaI))
	sinThetaT := (n1 / n2) * sinThetaI
	if sinThetaT >= 1 {
		return 1, false
	}
	cosThetaT := math.Sqrt(1 - sinThetaT*sinThetaT)

	rs := (n1*cosThetaI - n2*cosThetaT) / (n1*cosThetaI + n2*cosThetaT)
	rp := (n2*cosThetaI - n1*cosThetaT) / (n2*cosThetaI + n1*cosThetaT)
	return (rs*rs + rp*rp) / 2, true
}
