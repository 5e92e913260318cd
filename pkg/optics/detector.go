package optics

import "github.com/df07/go-optics-lab/pkg/core"

// Detectors are terminal components: they never emit successor rays.
// Per spec.md §1/§6, accumulating measurements (counts, spectra, Stokes
// parameters) from terminated rays is an external analyzer's job, not the
// tracer's; every detector here just tags the ray with a distinct
// EndReason so an external analyzer can filter core.Ray.History by it.

// Screen is a simple line-segment detector, absorbing every ray that hits
// it.
type Screen struct {
	base
	seg    segment
	Length float64
}

// NewScreen creates a screen segment of the given length.
func NewScreen(id core.ComponentId, label string, pos core.Vector2, angleRad, length float64) *Screen {
	return &Screen{base: newBase(id, label, pos, angleRad), seg: segmentAt(pos, angleRad, length), Length: length}
}

func (s *Screen) BoundingBox() core.Bounds2D        { return s.seg.Bounds() }
func (s *Screen) ContainsPoint(p core.Vector2) bool { return s.seg.Bounds().Contains(p) }

func (s *Screen) Intersect(origin, direction core.Vector2) []core.Hit {
	dist, point, normal, ok := s.seg.IntersectRay(origin, direction)
	if !ok {
		return nil
	}
	return []core.Hit{{Distance: dist, Point: point, Normal: normal, Surface: "face"}}
}

func (s *Screen) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	ray.Terminate(core.EndReason("screen_hit"))
	return nil
}

func (s *Screen) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{"length": {Float: s.Length}}
}

func (s *Screen) SetProperty(name string, value core.PropertyValue) core.Changed {
	switch name {
	case "enabled":
		return s.SetEnabled(value.Bool)
	default:
		return core.Unchanged
	}
}

// Photodiode is a small screen variant tagging its own EndReason so an
// external analyzer can tell a point-sensor hit from a full screen hit.
type Photodiode struct {
	base
	seg    segment
	Length float64
}

func NewPhotodiode(id core.ComponentId, label string, pos core.Vector2, angleRad, length float64) *Photodiode {
	return &Photodiode{base: newBase(id, label, pos, angleRad), seg: segmentAt(pos, angleRad, length), Length: length}
}

func (d *Photodiode) BoundingBox() core.Bounds2D        { return d.seg.Bounds() }
func (d *Photodiode) ContainsPoint(p core.Vector2) bool { return d.seg.Bounds().Contains(p) }

func (d *Photodiode) Intersect(origin, direction core.Vector2) []core.Hit {
	dist, point, normal, ok := d.seg.IntersectRay(origin, direction)
	if !ok {
		return nil
	}
	return []core.Hit{{Distance: dist, Point: point, Normal: normal, Surface: "face"}}
}

func (d *Photodiode) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	ray.Terminate(core.EndReason("photodiode_hit"))
	return nil
}

func (d *Photodiode) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{"length": {Float: d.Length}}
}

func (d *Photodiode) SetProperty(name string, value core.PropertyValue) core.Changed {
	if name == "enabled" {
		return d.SetEnabled(value.Bool)
	}
	return core.Unchanged
}

// CCD is a segmented-sensor screen variant: identical physically to Screen,
// distinguished for external analyzers that bin hits by pixel position
// along the sensor (spec.md §4.5 lists CCD separately from Screen).
type CCD struct {
	base
	seg        segment
	Length     float64
	PixelCount int
}

func NewCCD(id core.ComponentId, label string, pos core.Vector2, angleRad, length float64, pixelCount int) *CCD {
	return &CCD{base: newBase(id, label, pos, angleRad), seg: segmentAt(pos, angleRad, length), Length: length, PixelCount: pixelCount}
}

func (c *CCD) BoundingBox() core.Bounds2D        { return c.seg.Bounds() }
func (c *CCD) ContainsPoint(p core.Vector2) bool { return c.seg.Bounds().Contains(p) }

func (c *CCD) Intersect(origin, direction core.Vector2) []core.Hit {
	dist, point, normal, ok := c.seg.IntersectRay(origin, direction)
	if !ok {
		return nil
	}
	return []core.Hit{{Distance: dist, Point: point, Normal: normal, Surface: "face"}}
}

func (c *CCD) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	ray.Terminate(core.EndReason("ccd_hit"))
	return nil
}

func (c *CCD) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{"length": {Float: c.Length}, "pixel_count": {Float: float64(c.PixelCount)}}
}

func (c *CCD) SetProperty(name string, value core.PropertyValue) core.Changed {
	if name == "enabled" {
		return c.SetEnabled(value.Bool)
	}
	return core.Unchanged
}

// Spectrometer absorbs rays, tagging its EndReason so an external analyzer
// can bin terminated rays by core.Ray.WavelengthNM to build a spectrum.
type Spectrometer struct {
	base
	seg    segment
	Length float64
}

func NewSpectrometer(id core.ComponentId, label string, pos core.Vector2, angleRad, length float64) *Spectrometer {
	return &Spectrometer{base: newBase(id, label, pos, angleRad), seg: segmentAt(pos, angleRad, length), Length: length}
}

func (s *Spectrometer) BoundingBox() core.Bounds2D        { return s.seg.Bounds() }
func (s *Spectrometer) ContainsPoint(p core.Vector2) bool { return s.seg.Bounds().Contains(p) }

func (s *Spectrometer) Intersect(origin, direction core.Vector2) []core.Hit {
	dist, point, normal, ok := s.seg.IntersectRay(origin, direction)
	if !ok {
		return nil
	}
	return []core.Hit{{Distance: dist, Point: point, Normal: normal, Surface: "face"}}
}

func (s *Spectrometer) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	ray.Terminate(core.EndReason("spectrometer_hit"))
	return nil
}

func (s *Spectrometer) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{"length": {Float: s.Length}}
}

func (s *Spectrometer) SetProperty(name string, value core.PropertyValue) core.Changed {
	if name == "enabled" {
		return s.SetEnabled(value.Bool)
	}
	return core.Unchanged
}

// PowerMeter absorbs rays, tagging its EndReason so an external analyzer
// can sum core.Ray.Intensity across terminated rays for a total-power
// reading.
type PowerMeter struct {
	base
	seg    segment
	Length float64
}

func NewPowerMeter(id core.ComponentId, label string, pos core.Vector2, angleRad, length float64) *PowerMeter {
	return &PowerMeter{base: newBase(id, label, pos, angleRad), seg: segmentAt(pos, angleRad, length), Length: length}
}

func (p *PowerMeter) BoundingBox() core.Bounds2D        { return p.seg.Bounds() }
func (p *PowerMeter) ContainsPoint(pt core.Vector2) bool { return p.seg.Bounds().Contains(pt) }

func (p *PowerMeter) Intersect(origin, direction core.Vector2) []core.Hit {
	dist, point, normal, ok := p.seg.IntersectRay(origin, direction)
	if !ok {
		return nil
	}
	return []core.Hit{{Distance: dist, Point: point, Normal: normal, Surface: "face"}}
}

func (p *PowerMeter) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	ray.Terminate(core.EndReason("power_meter_hit"))
	return nil
}

func (p *PowerMeter) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{"length": {Float: p.Length}}
}

func (p *PowerMeter) SetProperty(name string, value core.PropertyValue) core.Changed {
	if name == "enabled" {
		return p.SetEnabled(value.Bool)
	}
	return core.Unchanged
}

// PolarizationAnalyzer absorbs rays, tagging its EndReason and leaving the
// ray's Jones vector on the terminated ray so an external analyzer can
// recover the Stokes parameters of the incident beam without the tracer
// itself interpreting polarization state. It writes nothing to Hit.Extra.
type PolarizationAnalyzer struct {
	base
	seg    segment
	Length float64
}

func NewPolarizationAnalyzer(id core.ComponentId, label string, pos core.Vector2, angleRad, length float64) *PolarizationAnalyzer {
	return &PolarizationAnalyzer{base: newBase(id, label, pos, angleRad), seg: segmentAt(pos, angleRad, length), Length: length}
}

func (a *PolarizationAnalyzer) BoundingBox() core.Bounds2D        { return a.seg.Bounds() }
func (a *PolarizationAnalyzer) ContainsPoint(p core.Vector2) bool { return a.seg.Bounds().Contains(p) }

func (a *PolarizationAnalyzer) Intersect(origin, direction core.Vector2) []core.Hit {
	dist, point, normal, ok := a.seg.IntersectRay(origin, direction)
	if !ok {
		return nil
	}
	return []core.Hit{{Distance: dist, Point: point, Normal: normal, Surface: "face"}}
}

// Interact terminates the ray without altering core.Ray.Jones, leaving the
// incident Jones vector intact on the terminated ray for an external
// analyzer to recover the Stokes parameters from.
func (a *PolarizationAnalyzer) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	ray.Terminate(core.EndReason("polarization_analyzer_hit"))
	return nil
}

func (a *PolarizationAnalyzer) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{"length": {Float: a.Length}}
}

func (a *PolarizationAnalyzer) SetProperty(name string, value core.PropertyValue) core.Changed {
	if name == "enabled" {
		return a.SetEnabled(value.Bool)
	}
	return core.Unchanged
}
