package sources

import "github.com/df07/go-optics-lab/pkg/core"

// Fan emits N = min(RayCount, MAX_RAYS_PER_SOURCE) rays uniformly across
// [angle-Spread/2, angle+Spread/2]; for N=1 the single ray takes the center
// angle (spec.md §4.4).
type Fan struct {
	base

	RayCount         int
	SpreadRad        float64
	MaxRaysPerSource int
}

// NewFan creates a fan source pointed along angleRad with total angular
// spread spreadRad.
func NewFan(id core.ComponentId, label string, pos core.Vector2, angleRad, spreadRad float64, rayCount int) *Fan {
	return &Fan{
		base:             newBase(id, label, pos, angleRad),
		RayCount:         rayCount,
		SpreadRad:        spreadRad,
		MaxRaysPerSource: 1001,
	}
}

func (f *Fan) GenerateRays(newRay core.RayCtor) []core.Ray {
	if !f.enabled {
		return nil
	}

	n := clampRayCount(f.RayCount, f.MaxRaysPerSource)
	angles := fanAngles(f.angle, f.SpreadRad, n)
	perRayIntensity := f.intensity / float64(n)

	rays := make([]core.Ray, 0, n)
	for _, a := range angles {
		dir := core.Vector2FromAngle(a)
		rays = append(rays, f.makeRay(newRay, f.pos, dir, perRayIntensity))
	}
	return rays
}
