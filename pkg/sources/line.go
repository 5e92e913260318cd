package sources

import "github.com/df07/go-optics-lab/pkg/core"

// Line emits NumRays parallel rays, all along the same direction, from
// evenly spaced origins along a segment of length Length perpendicular to
// that direction (spec.md §4.4).
type Line struct {
	base

	Length  float64
	NumRays int
}

// NewLine creates a line source centered at pos, firing along angleRad.
func NewLine(id core.ComponentId, label string, pos core.Vector2, angleRad, length float64, numRays int) *Line {
	return &Line{
		base:    newBase(id, label, pos, angleRad),
		Length:  length,
		NumRays: numRays,
	}
}

func (l *Line) GenerateRays(newRay core.RayCtor) []core.Ray {
	if !l.enabled {
		return nil
	}

	n := l.NumRays
	if n < 1 {
		n = 1
	}

	dir := core.Vector2FromAngle(l.angle)
	perp := core.Vector2FromAngle(l.angle + 1.5707963267948966) // +90 degrees

	perRayIntensity := l.intensity / float64(n)
	rays := make([]core.Ray, 0, n)

	if n == 1 {
		rays = append(rays, l.makeRay(newRay, l.pos, dir, perRayIntensity))
		return rays
	}

	for i := 0; i < n; i++ {
		t := float64(i)/float64(n-1) - 0.5 // -0.5 .. 0.5
		origin := l.pos.Add(perp.Multiply(t * l.Length))
		rays = append(rays, l.makeRay(newRay, origin, dir, perRayIntensity))
	}
	return rays
}
