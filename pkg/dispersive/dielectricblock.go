package dispersive

import (
	"math"

	"github.com/df07/go-optics-lab/pkg/core"
)

// DielectricBlock is a filled polygon of refractive index RefractiveIndex:
// intersect tests every edge and takes the nearest, then applies the exact
// s/p-averaged Fresnel reflectance to split the ray into reflected and
// (unless TIR) transmitted successors (spec.md §4.5).
type DielectricBlock struct {
	base
	Vertices        []core.Vector2
	RefractiveIndex float64

	edges []segment
}

// NewDielectricBlock creates a dielectric block from its polygon vertices
// (in order; the polygon is implicitly closed).
func NewDielectricBlock(id core.ComponentId, label string, vertices []core.Vector2, refractiveIndex float64) *DielectricBlock {
	centroid := core.Vector2{}
	for _, v := range vertices {
		centroid = centroid.Add(v)
	}
	centroid = centroid.Multiply(1 / float64(len(vertices)))

	// Run every edge clockwise so segment.Normal (Start->End rotated +90
	// degrees) is the outward normal whichever way the vertices wind.
	area2 := 0.0
	for i := range vertices {
		area2 += vertices[i].Cross(vertices[(i+1)%len(vertices)])
	}
	edges := make([]segment, len(vertices))
	for i := range vertices {
		a, b := vertices[i], vertices[(i+1)%len(vertices)]
		if area2 > 0 {
			a, b = b, a
		}
		edges[i] = segment{Start: a, End: b}
	}

	return &DielectricBlock{
		base:            newBase(id, label, centroid, 0),
		Vertices:        vertices,
		RefractiveIndex: refractiveIndex,
		edges:           edges,
	}
}

func (d *DielectricBlock) BoundingBox() core.Bounds2D {
	b := core.NewBounds2DFromPoints(d.Vertices[0], d.Vertices[0])
	for _, v := range d.Vertices {
		b = b.Union(core.NewBounds2DFromPoints(v, v))
	}
	return b.Expand(1)
}

func (d *DielectricBlock) ContainsPoint(p core.Vector2) bool {
	inside := false
	n := len(d.Vertices)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := d.Vertices[i], d.Vertices[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) &&
			p.X < (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
	}
	return inside
}

func (d *DielectricBlock) Intersect(origin, direction core.Vector2) []core.Hit {
	var hits []core.Hit
	for i, e := range d.edges {
		dist, point, normal, ok := e.intersectRayRaw(origin, direction)
		if !ok {
			continue
		}
		n := normal
		if n.Dot(direction) > 0 {
			n = n.Negate()
		}
		hits = append(hits, core.Hit{
			Distance: dist, Point: point, Normal: n,
			Surface: edgeSurfaceName(i),
			Extra:   map[string]float64{"raw_normal_x": normal.X, "raw_normal_y": normal.Y},
		})
	}
	return hits
}

func edgeSurfaceName(i int) string {
	names := []string{"edge0", "edge1", "edge2", "edge3", "edge4", "edge5"}
	if i < len(names) {
		return names[i]
	}
	return "edge"
}

// Interact applies Snell's law and the s/p-averaged Fresnel reflectance at
// the hit edge. It treats the ray as entering when the edge's raw normal
// (hit.Extra) opposes the ray direction and as exiting otherwise, and takes
// the far side of an exit to be air (n=1) (spec.md §4.5).
func (d *DielectricBlock) Interact(ray *core.Ray, hit core.Hit, newRay core.RayCtor) []core.Ray {
	rawNormal := core.NewVector2(hit.Extra["raw_normal_x"], hit.Extra["raw_normal_y"])
	entering := rawNormal.Dot(ray.Direction) < 0

	var n1, n2 float64
	if entering {
		n1, n2 = ray.MediumRefractiveIndex, d.RefractiveIndex
	} else {
		n1, n2 = ray.MediumRefractiveIndex, 1.0 // assume exiting to air
	}

	cosThetaI := -ray.Direction.Dot(hit.Normal)
	if math.Abs(cosThetaI) < 1e-9 {
		// Grazing incidence: spec.md §4.5 says produce only a reflected ray.
		reflected := buildSuccessor(ray, hit, newRay, reflectDirection(ray.Direction, hit.Normal), ray.Intensity, ray.MediumRefractiveIndex)
		ray.Terminate(core.EndReason("grazing"))
		return []core.Ray{reflected}
	}

	r, ok := fresnelAverage(math.Abs(cosThetaI), n1, n2)
	var successors []core.Ray
	if !ok {
		// Total internal reflection.
		reflected := buildSuccessor(ray, hit, newRay, reflectDirection(ray.Direction, hit.Normal), ray.Intensity, ray.MediumRefractiveIndex)
		successors = append(successors, reflected)
		ray.Terminate(core.EndReason("tir"))
		return successors
	}

	if r > 0 {
		reflected := buildSuccessor(ray, hit, newRay, reflectDirection(ray.Direction, hit.Normal), ray.Intensity*r, ray.MediumRefractiveIndex)
		successors = append(successors, reflected)
	}
	if r < 1 {
		eta := n1 / n2
		refractedDir, ok := refractDirection(ray.Direction, hit.Normal, eta)
		if ok {
			transmitted := buildSuccessor(ray, hit, newRay, refractedDir, ray.Intensity*(1-r), n2)
			successors = append(successors, transmitted)
		}
	}

	ray.Terminate(core.EndReason("split"))
	return successors
}

func buildSuccessor(ray *core.Ray, hit core.Hit, newRay core.RayCtor, direction core.Vector2, intensity, mediumIndex float64) core.Ray {
	r := newRay(core.NewRayParams{
		Origin: hit.Point, Direction: direction, WavelengthNM: ray.WavelengthNM,
		Intensity: intensity, Phase: ray.Phase, BouncesSoFar: ray.BouncesSoFar + 1,
		MediumIndex: mediumIndex, SourceID: ray.SourceID,
		PolarizationAngle: ray.PolarizationAngle, IgnoreDecay: ray.IgnoreDecay,
		History: append([]core.Vector2{}, ray.History...), BeamDiameter: ray.BeamDiameter,
	})
	if ray.Jones != nil {
		j := *ray.Jones
		r.Jones = &j
	}
	return r
}

func (d *DielectricBlock) GetProperties() map[string]core.PropertyValue {
	return map[string]core.PropertyValue{"refractive_index": {Float: d.RefractiveIndex}}
}

func (d *DielectricBlock) SetProperty(name string, value core.PropertyValue) core.Changed {
	switch name {
	case "refractive_index":
		d.RefractiveIndex = value.Float
		return core.Retrace
	case "enabled":
		return d.SetEnabled(value.Bool)
	default:
		return core.Unchanged
	}
}
