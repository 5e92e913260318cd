package dispersive

import (
	"math"

	"github.com/df07/go-optics-lab/pkg/core"
	"github.com/df07/go-optics-lab/pkg/config"
)

// Prism is a triangular dispersive element: three edges, nearest-edge
// intersection, and a wavelength-dependent refractive index evaluated
// either from a named Sellmeier material or a Cauchy two-term model
// (spec.md §4.7). Fresnel reflectance and Snell refraction follow
// DielectricBlock's implementation exactly.
type Prism struct {
	base
	Vertices [3]core.Vector2

	UseSellmeier bool
	Material     config.SellmeierMaterial // used when UseSellmeier
	CauchyN0     float64                  // used when !UseSellmeier
	CauchyB      float64

	edges [3]segment
}

// NewSellmeierPrism creates a prism whose index follows a named Sellmeier
// material (see config.SellmeierByName).
func NewSellmeierPrism(id core.ComponentId, label string, vertices [3]core.Vector2, material config.SellmeierMaterial) *Prism {
	return &Prism{
		base: newBase(id, label, centroidOf(vertices[:]), 0), Vertices: vertices,
		UseSellmeier: true, Material: material, edges: edgesOf(vertices),
	}
}

// NewCauchyPrism creates a prism whose index follows the Cauchy two-term
// model n(lambda) = n0Adj + b/lambda^2 with n(550nm) == n0.
func NewCauchyPrism(id core.ComponentId, label string, vertices [3]core.Vector2, n0, b float64) *Prism {
	return &Prism{
		base: newBase(id, label, centroidOf(vertices[:]), 0), Vertices: vertices,
		UseSellmeier: false, CauchyN0: n0, CauchyB: b, edges: edgesOf(vertices),
	}
}

func centroidOf(vertices []core.Vector2) core.Vector2 {
	c := core.Vector2{}
	for _, v := range vertices {
		c = c.Add(v)
	}
	return c.Multiply(1 / float64(len(vertices)))
}

func edgesOf(vertices [3]core.Vector2) [3]segment {
	return [3]segment{
		{Start: vertices[0], End: vertices[1]},
		{Start: vertices[1], End: vertices[2]},
		{Start: vertices[2], End: vertices[0]},
	}
}

func (p *Prism) indexAt(wavelengthNM float64) float64 {
	if p.UseSellmeier {
		return p.Material.RefractiveIndex(wavelengthNM)
	}
	return config.CauchyIndex(p.CauchyN0, p.CauchyB, wavelengthNM)
}

func (p *Prism) BoundingBox() core.Bounds2D {
	b := core.NewBounds2DFromPoints(p.Vertices[0], p.Vertices[1])
	b = b.Union(core.NewBounds2DFromPoints(p.Vertices[2], p.Vertices[2]))
	return b.Expand(1)
}

func (p *Prism) ContainsPoint(pt core.Vector2) bool {
	v := p.Vertices
	sign := func(a, b, c core.Vector2) float64 {
		return (a.X-c.X)*(b.Y-c.Y) - (b.X-c.X)*(a.Y-c.Y)
	}
	d1 := sign(pt, v[0], v[1])
	d2 := sign(pt, v[1], v[2])
	d3 := sign(pt, v[2], v[0])
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func (p *Prism) Intersect(origin, direction core.Vector2) []core.Hit {
	var hits []core.Hit
	for i, e := range p.edges {
		dist, point, normal, ok := e.intersectRayRaw(origin, direction)
		if !ok {
			continue
		}
		n := normal
		if n.Dot(direction) > 0 {
			n = n.Negate()
		}
		hits = append(hits, core.Hit{
			Distance: dist, Point: point, Normal: n, Surface: edgeSurfaceName(i),
			Extra: map[string]float64{"raw_normal_x": normal.X, "raw_normal_y": normal.Y},
		})
	}
	return hits
}

func (p *Prism) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	rawNormal := core.NewVector2(hit.Extra["raw_normal_x"], hit.Extra["raw_normal_y"])
	entering := rawNormal.Dot(ray.Direction) < 0

	prismIndex := p.indexAt(ray.WavelengthNM)
	var n1, n2 float64
	if entering {
		n1, n2 = ray.MediumRefractiveIndex, prismIndex
	} else {
		n1, n2 = ray.MediumRefractiveIndex, 1.0
	}

	cosThetaI := -ray.Direction.Dot(hit.Normal)
	if math.Abs(cosThetaI) < 1e-9 {
		reflected := buildSuccessor(ray, hit, newRay, reflectDirection(ray.Direction, hit.Normal), ray.Intensity, ray.MediumRefractiveIndex)
		ray.Terminate(core.EndReason("grazing"))
		return []core.Ray{reflected}
	}

	r, ok := fresnelAverage(math.Abs(cosThetaI), n1, n2)
	if !ok {
		reflected := buildSuccessor(ray, hit, newRay, reflectDirection(ray.Direction, hit.Normal), ray.Intensity, ray.MediumRefractiveIndex)
		ray.Terminate(core.EndReason("tir"))
		return []core.Ray{reflected}
	}

	var successors []core.Ray
	if r > 0 {
		successors = append(successors, buildSuccessor(ray, hit, newRay, reflectDirection(ray.Direction, hit.Normal), ray.Intensity*r, ray.MediumRefractiveIndex))
	}
	if r < 1 {
		eta := n1 / n2
		if refractedDir, ok := refractDirection(ray.Direction, hit.Normal, eta); ok {
			successors = append(successors, buildSuccessor(ray, hit, newRay, refractedDir, ray.Intensity*(1-r), n2))
		}
	}

	ray.Terminate(core.EndReason("split"))
	return successors
}

func (p *Prism) GetProperties() map[string]core.PropertyValue {
	props := map[string]core.PropertyValue{"use_sellmeier": {Bool: p.UseSellmeier}}
	if p.UseSellmeier {
		props["material"] = core.PropertyValue{String: p.Material.Name}
	} else {
		props["cauchy_n0"] = core.PropertyValue{Float: p.CauchyN0}
		props["cauchy_b"] = core.PropertyValue{Float: p.CauchyB}
	}
	return props
}

func (p *Prism) SetProperty(name string, value core.PropertyValue) core.Changed {
	switch name {
	case "material":
		if m, ok := config.SellmeierByName(value.String); ok {
			p.UseSellmeier = true
			p.Material = m
			return core.Retrace
		}
		return core.Unchanged
	case "cauchy_n0":
		p.UseSellmeier = false
		p.CauchyN0 = value.Float
		return core.Retrace
	case "cauchy_b":
		p.UseSellmeier = false
		p.CauchyB = value.Float
		return core.Retrace
	case "enabled":
		return p.SetEnabled(value.Bool)
	default:
		return core.Unchanged
	}
}
