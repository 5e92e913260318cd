package optics

import (
	"math"

	"github.com/df07/go-optics-lab/pkg/core"
)

// paraxialTransfer applies the thin-lens ABCD ray-transfer matrix
// [[1,0],[-1/f,1]] to a ray's (height, angle) pair relative to the local
// optical axis: height is unchanged crossing the lens plane, angle picks up
// -h/f. This is the standard paraxial approximation used throughout laser
// resonator and imaging design.
func paraxialTransfer(h, theta, f float64) (hOut, thetaOut float64) {
	return h, theta - h/f
}

// localAxisFrame returns the lens's propagation axis u and its
// perpendicular v (along the lens extent).
func localAxisFrame(angleRad float64) (u, v core.Vector2) {
	u = core.Vector2FromAngle(angleRad)
	v = u.Rotate(math.Pi / 2)
	return
}

// heightAndAngle decomposes a hit point and incoming direction into the
// local (height, angle) pair used by the paraxial transfer matrices: height
// is the perpendicular offset from the lens center, angle is measured from
// the optical axis u.
func heightAndAngle(center, point, direction, u, v core.Vector2) (h, theta float64) {
	h = point.Subtract(center).Dot(v)
	theta = math.Atan2(direction.Dot(v), direction.Dot(u))
	return
}

// directionFromAngle reconstructs a unit direction from a local angle
// measured off axis u, in the (u,v) plane.
func directionFromAngle(theta float64, u, v core.Vector2) core.Vector2 {
	return u.Multiply(math.Cos(theta)).Add(v.Multiply(math.Sin(theta)))
}

// refractThroughLens builds the successor ray after a paraxial thin-lens
// transfer at hit, given the lens's focal length (already evaluated at the
// ray's wavelength, if chromatic).
func refractThroughLens(ray *core.Ray, hit core.Hit, newRay core.RayCtor, center core.Vector2, axisAngle, focalLength float64) core.Ray {
	u, v := localAxisFrame(axisAngle)
	h, theta := heightAndAngle(center, hit.Point, ray.Direction, u, v)
	_, thetaOut := paraxialTransfer(h, theta, focalLength)
	dir := directionFromAngle(thetaOut, u, v)

	r := newRay(core.NewRayParams{
		Origin:            hit.Point,
		Direction:         dir,
		WavelengthNM:      ray.WavelengthNM,
		Intensity:         ray.Intensity,
		Phase:             ray.Phase,
		BouncesSoFar:      ray.BouncesSoFar + 1,
		MediumIndex:       ray.MediumRefractiveIndex,
		SourceID:          ray.SourceID,
		PolarizationAngle: ray.PolarizationAngle,
		IgnoreDecay:       ray.IgnoreDecay,
		History:           append([]core.Vector2{}, ray.History...),
		BeamDiameter:      ray.BeamDiameter,
	})
	if ray.Jones != nil {
		j := *ray.Jones
		r.Jones = &j
	}
	return r
}

// ThinLens is an ideal paraxial thin lens: positive FocalLength converges,
// negative diverges (spec.md §4.5).
type ThinLens struct {
	base
	seg             segment
	ApertureWidth   float64
	FocalLength     float64
	ChromaticCoeff  float64 // fractional change in f per unit (wavelengthNM-550)/550, 0 = achromatic
}

// NewThinLens creates a thin lens of the given aperture width and focal
// length, centered at pos and oriented perpendicular to angleRad (i.e.
// angleRad is the optical axis direction).
func NewThinLens(id core.ComponentId, label string, pos core.Vector2, angleRad, apertureWidth, focalLength float64) *ThinLens {
	perp := angleRad + math.Pi/2
	return &ThinLens{
		base:          newBase(id, label, pos, angleRad),
		seg:           segmentAt(pos, perp, apertureWidth),
		ApertureWidth: apertureWidth,
		FocalLength:   focalLength,
	}
}

func (l *ThinLens) BoundingBox() core.Bounds2D        { return l.seg.Bounds() }
func (l *ThinLens) ContainsPoint(p core.Vector2) bool { return l.seg.Bounds().Contains(p) }

func (l *ThinLens) Intersect(origin, direction core.Vector2) []core.Hit {
	dist, point, normal, ok := l.seg.IntersectRay(origin, direction)
	if !ok {
		return nil
	}
	return []core.Hit{{Distance: dist, Point: point, Normal: normal, Surface: "face"}}
}

func (l *ThinLens) focalLengthAt(wavelengthNM float64) float64 {
	if l.ChromaticCoeff == 0 {
		return l.FocalLength
	}
	return l.FocalLength * (1 + l.ChromaticCoeff*(wavelengthNM-550)/550)
}

func (l *ThinLens) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	f := l.focalLengthAt(ray.WavelengthNM)
	refracted := refractThroughLens(ray, hit, newRay, l.pos, l.angle, f)
	ray.Terminate(core.EndReason("refracted"))
	return []core.Ray{refracted}
}

func (l *ThinLens) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{
		"aperture_width":  {Float: l.ApertureWidth},
		"focal_length":    {Float: l.FocalLength},
		"chromatic_coeff": {Float: l.ChromaticCoeff},
	}
}

func (l *ThinLens) SetProperty(name string, value core.PropertyValue) core.Changed {
	switch name {
	case "focal_length":
		l.FocalLength = value.Float
		return core.Retrace
	case "chromatic_coeff":
		l.ChromaticCoeff = value.Float
		return core.Retrace
	case "aperture_width":
		l.ApertureWidth = value.Float
		perp := l.angle + math.Pi/2
		l.seg = segmentAt(l.pos, perp, l.ApertureWidth)
		return core.Retrace
	case "enabled":
		return l.SetEnabled(value.Bool)
	default:
		return core.Unchanged
	}
}

// CylindricalLens focuses only along the plane this simulator models, so in
// 2D its ray transfer is identical to ThinLens; it is kept as a distinct
// type to preserve the spec's component inventory and so callers can tell
// cylindrical and spherical lens elements apart (spec.md §4.5).
type CylindricalLens struct {
	ThinLens
}

// NewCylindricalLens creates a cylindrical lens; parameters match ThinLens.
func NewCylindricalLens(id core.ComponentId, label string, pos core.Vector2, angleRad, apertureWidth, focalLength float64) *CylindricalLens {
	return &CylindricalLens{ThinLens: *NewThinLens(id, label, pos, angleRad, apertureWidth, focalLength)}
}

// AsphericLens reduces the edge-ray angle error of a basic paraxial lens by
// lengthening the effective focal length as height grows (for a positive
// AsphericCoeff, fEff = FocalLength*(1+AsphericCoeff*(h/(ApertureWidth/2))^2)),
// modeling the aberration correction an aspheric profile buys over a
// spherical one.
type AsphericLens struct {
	base
	seg            segment
	ApertureWidth  float64
	FocalLength    float64
	AsphericCoeff  float64
}

// NewAsphericLens creates an aspheric lens. asphericCoeff of 0 reduces to an
// ideal thin lens; positive values suppress the h/f correction term at
// large heights (reducing spherical aberration).
func NewAsphericLens(id core.ComponentId, label string, pos core.Vector2, angleRad, apertureWidth, focalLength, asphericCoeff float64) *AsphericLens {
	perp := angleRad + math.Pi/2
	return &AsphericLens{
		base:          newBase(id, label, pos, angleRad),
		seg:           segmentAt(pos, perp, apertureWidth),
		ApertureWidth: apertureWidth,
		FocalLength:   focalLength,
		AsphericCoeff: asphericCoeff,
	}
}

func (l *AsphericLens) BoundingBox() core.Bounds2D        { return l.seg.Bounds() }
func (l *AsphericLens) ContainsPoint(p core.Vector2) bool { return l.seg.Bounds().Contains(p) }

func (l *AsphericLens) Intersect(origin, direction core.Vector2) []core.Hit {
	dist, point, normal, ok := l.seg.IntersectRay(origin, direction)
	if !ok {
		return nil
	}
	return []core.Hit{{Distance: dist, Point: point, Normal: normal, Surface: "face"}}
}

func (l *AsphericLens) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	u, v := localAxisFrame(l.angle)
	h, theta := heightAndAngle(l.pos, hit.Point, ray.Direction, u, v)

	norm := h / (l.ApertureWidth / 2)
	fEff := l.FocalLength * (1 + l.AsphericCoeff*norm*norm)
	_, thetaOut := paraxialTransfer(h, theta, fEff)
	dir := directionFromAngle(thetaOut, u, v)

	refracted := newRay(core.NewRayParams{
		Origin: hit.Point, Direction: dir, WavelengthNM: ray.WavelengthNM,
		Intensity: ray.Intensity, Phase: ray.Phase, BouncesSoFar: ray.BouncesSoFar + 1,
		MediumIndex: ray.MediumRefractiveIndex, SourceID: ray.SourceID,
		PolarizationAngle: ray.PolarizationAngle, IgnoreDecay: ray.IgnoreDecay,
		History: append([]core.Vector2{}, ray.History...), BeamDiameter: ray.BeamDiameter,
	})
	if ray.Jones != nil {
		j := *ray.Jones
		refracted.Jones = &j
	}

	ray.Terminate(core.EndReason("refracted"))
	return []core.Ray{refracted}
}

func (l *AsphericLens) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{
		"aperture_width": {Float: l.ApertureWidth},
		"focal_length":   {Float: l.FocalLength},
		"aspheric_coeff": {Float: l.AsphericCoeff},
	}
}

func (l *AsphericLens) SetProperty(name string, value core.PropertyValue) core.Changed {
	switch name {
	case "focal_length":
		l.FocalLength = value.Float
		return core.Retrace
	case "aspheric_coeff":
		l.AsphericCoeff = value.Float
		return core.Retrace
	case "enabled":
		return l.SetEnabled(value.Bool)
	default:
		return core.Unchanged
	}
}

// GRINLens is a gradient-index rod of finite length: the index profile
// n(r) = n0 - 0.5*g^2*r^2 gives rays inside it a sinusoidal trajectory,
// captured exactly by the GRIN ray-transfer matrix
// [[cos(gL), sin(gL)/g], [-g*sin(gL), cos(gL)]] (standard fiber/GRIN-rod
// optics; spec.md §4.5 lists GRIN as a lens variant without prescribing the
// transfer model).
type GRINLens struct {
	base
	seg           segment
	ApertureWidth float64
	GradientConst float64 // g, 1/length units
	Length        float64
}

// NewGRINLens creates a GRIN rod entry face at pos, oriented along
// angleRad, with the given gradient constant and physical length.
func NewGRINLens(id core.ComponentId, label string, pos core.Vector2, angleRad, apertureWidth, gradientConst, length float64) *GRINLens {
	perp := angleRad + math.Pi/2
	return &GRINLens{
		base:          newBase(id, label, pos, angleRad),
		seg:           segmentAt(pos, perp, apertureWidth),
		ApertureWidth: apertureWidth,
		GradientConst: gradientConst,
		Length:        length,
	}
}

func (l *GRINLens) BoundingBox() core.Bounds2D        { return l.seg.Bounds() }
func (l *GRINLens) ContainsPoint(p core.Vector2) bool { return l.seg.Bounds().Contains(p) }

func (l *GRINLens) Intersect(origin, direction core.Vector2) []core.Hit {
	dist, point, normal, ok := l.seg.IntersectRay(origin, direction)
	if !ok {
		return nil
	}
	return []core.Hit{{Distance: dist, Point: point, Normal: normal, Surface: "entry_face"}}
}

func (l *GRINLens) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	u, v := localAxisFrame(l.angle)
	h, theta := heightAndAngle(l.pos, hit.Point, ray.Direction, u, v)

	g := l.GradientConst
	var hOut, thetaOut float64
	if math.Abs(g) < 1e-9 {
		hOut, thetaOut = h+l.Length*math.Tan(theta), theta
	} else {
		gl := g * l.Length
		hOut = h*math.Cos(gl) + (theta/g)*math.Sin(gl)
		thetaOut = -h*g*math.Sin(gl) + theta*math.Cos(gl)
	}

	exitPoint := hit.Point.Add(u.Multiply(l.Length)).Add(v.Multiply(hOut - h))
	dir := directionFromAngle(thetaOut, u, v)

	refracted := newRay(core.NewRayParams{
		Origin: exitPoint, Direction: dir, WavelengthNM: ray.WavelengthNM,
		Intensity: ray.Intensity, Phase: ray.Phase, BouncesSoFar: ray.BouncesSoFar + 1,
		MediumIndex: ray.MediumRefractiveIndex, SourceID: ray.SourceID,
		PolarizationAngle: ray.PolarizationAngle, IgnoreDecay: ray.IgnoreDecay,
		History: append([]core.Vector2{}, ray.History...), BeamDiameter: ray.BeamDiameter,
	})
	if ray.Jones != nil {
		j := *ray.Jones
		refracted.Jones = &j
	}

	ray.Terminate(core.EndReason("refracted"))
	return []core.Ray{refracted}
}

func (l *GRINLens) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{
		"aperture_width": {Float: l.ApertureWidth},
		"gradient_const": {Float: l.GradientConst},
		"length":         {Float: l.Length},
	}
}

func (l *GRINLens) SetProperty(name string, value core.PropertyValue) core.Changed {
	switch name {
	case "gradient_const":
		l.GradientConst = value.Float
		return core.Retrace
	case "length":
		l.Length = value.Float
		return core.Retrace
	case "enabled":
		return l.SetEnabled(value.Bool)
	default:
		return core.Unchanged
	}
}
