package sources

import "github.com/df07/go-optics-lab/pkg/core"

// Laser emits one ray along angle, or — when NumRays > 1 and SpreadRad > 0 —
// a fan of NumRays rays across +/-SpreadRad/2, each carrying Intensity/NumRays
// (spec.md §4.4).
type Laser struct {
	base

	NumRays   int
	SpreadRad float64

	MaxRaysPerSource int
}

// NewLaser creates a laser source pointed along angleRad.
func NewLaser(id core.ComponentId, label string, pos core.Vector2, angleRad float64) *Laser {
	return &Laser{
		base:             newBase(id, label, pos, angleRad),
		NumRays:          1,
		MaxRaysPerSource: 1001,
	}
}

func (l *Laser) GenerateRays(newRay core.RayCtor) []core.Ray {
	if !l.enabled {
		return nil
	}

	n := 1
	if l.NumRays > 1 && l.SpreadRad > 0 {
		n = clampRayCount(l.NumRays, l.MaxRaysPerSource)
	}

	angles := fanAngles(l.angle, l.SpreadRad, n)
	perRayIntensity := l.intensity / float64(n)

	rays := make([]core.Ray, 0, n)
	for _, a := range angles {
		dir := core.Vector2FromAngle(a)
		rays = append(rays, l.makeRay(newRay, l.pos, dir, perRayIntensity))
	}
	return rays
}
