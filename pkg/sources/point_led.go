package sources

import (
	"math"

	"github.com/df07/go-optics-lab/pkg/core"
)

// Point emits NumRays rays isotropically (uniformly over the full 2*pi
// circle) from a single origin (spec.md §4.4).
type Point struct {
	base

	NumRays int
}

// NewPoint creates an isotropic point source.
func NewPoint(id core.ComponentId, label string, pos core.Vector2, numRays int) *Point {
	return &Point{base: newBase(id, label, pos, 0), NumRays: numRays}
}

func (p *Point) GenerateRays(newRay core.RayCtor) []core.Ray {
	if !p.enabled {
		return nil
	}
	n := p.NumRays
	if n < 1 {
		n = 1
	}

	const twoPi = 6.283185307179586
	perRayIntensity := p.intensity / float64(n)

	rays := make([]core.Ray, 0, n)
	for i := 0; i < n; i++ {
		a := twoPi * float64(i) / float64(n)
		dir := core.Vector2FromAngle(a)
		rays = append(rays, p.makeRay(newRay, p.pos, dir, perRayIntensity))
	}
	return rays
}

// LED emits NumRays rays over a Lambertian lobe centered on angle, spanning
// +/-HalfAngleRad, with per-ray intensity weighted by cos(offset from the
// normal) — the 2D proxy for a Lambertian solid-angle falloff spec.md §4.4
// calls for (real Lambertian emitters fall off as cos(theta) from the
// surface normal; this samples that falloff across a fixed angular fan
// rather than integrating the 3D solid angle, which is out of scope per
// spec.md §1's 3D-optics Non-goal).
type LED struct {
	base

	NumRays     int
	HalfAngleRad float64
}

// NewLED creates a Lambertian LED source pointed along angleRad.
func NewLED(id core.ComponentId, label string, pos core.Vector2, angleRad, halfAngleRad float64, numRays int) *LED {
	return &LED{base: newBase(id, label, pos, angleRad), NumRays: numRays, HalfAngleRad: halfAngleRad}
}

func (l *LED) GenerateRays(newRay core.RayCtor) []core.Ray {
	if !l.enabled {
		return nil
	}
	n := l.NumRays
	if n < 1 {
		n = 1
	}

	angles := fanAngles(l.angle, 2*l.HalfAngleRad, n)

	// Lambertian weight per ray, normalized so weights sum to 1.
	weights := make([]float64, n)
	var total float64
	for i, a := range angles {
		offset := a - l.angle
		w := cosClamped(offset)
		weights[i] = w
		total += w
	}
	if total <= 0 {
		total = 1
	}

	rays := make([]core.Ray, 0, n)
	for i, a := range angles {
		dir := core.Vector2FromAngle(a)
		rays = append(rays, l.makeRay(newRay, l.pos, dir, l.intensity*weights[i]/total))
	}
	return rays
}

func cosClamped(theta float64) float64 {
	c := math.Cos(theta)
	if c < 0 {
		return 0
	}
	return c
}
