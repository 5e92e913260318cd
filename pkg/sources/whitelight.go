package sources

import "github.com/df07/go-optics-lab/pkg/core"

// WhiteLight emits K wavelengths uniformly spaced across [BandLowNM,
// BandHighNM] (defaulting to the visible band, 380-780nm), each with
// Intensity/K (spec.md §4.4).
type WhiteLight struct {
	base

	NumWavelengths int
	BandLowNM      float64
	BandHighNM     float64
}

// NewWhiteLight creates a white-light source firing K wavelengths along
// angleRad across the default visible band.
func NewWhiteLight(id core.ComponentId, label string, pos core.Vector2, angleRad float64, numWavelengths int) *WhiteLight {
	return &WhiteLight{
		base:           newBase(id, label, pos, angleRad),
		NumWavelengths: numWavelengths,
		BandLowNM:      380,
		BandHighNM:     780,
	}
}

func (w *WhiteLight) GenerateRays(newRay core.RayCtor) []core.Ray {
	if !w.enabled {
		return nil
	}

	k := w.NumWavelengths
	if k < 1 {
		k = 1
	}

	dir := core.Vector2FromAngle(w.angle)
	perRayIntensity := w.intensity / float64(k)

	rays := make([]core.Ray, 0, k)
	for i := 0; i < k; i++ {
		var lambda float64
		if k == 1 {
			lambda = (w.BandLowNM + w.BandHighNM) / 2
		} else {
			lambda = w.BandLowNM + (w.BandHighNM-w.BandLowNM)*float64(i)/float64(k-1)
		}
		r := newRay(core.NewRayParams{
			Origin:       w.pos,
			Direction:    dir,
			WavelengthNM: lambda,
			Intensity:    perRayIntensity,
			MediumIndex:  1.0,
			SourceID:     w.id,
			IgnoreDecay:  w.ignoreDecay,
			BeamDiameter: w.beamDiameter,
		})
		w.polarization.applyTo(&r)
		rays = append(rays, r)
	}
	return rays
}
