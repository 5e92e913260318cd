package core

import "math"

// Bounds2D is an axis-aligned bounding rectangle. spec.md §4.3 requires
// every component to expose bounding_box/contains_point for external
// selection UI; the tracer itself never uses Bounds2D for hit-testing (scene
// order, not spatial partitioning, governs which component wins a race — see
// spec.md §5), so this stays a plain rectangle rather than an acceleration
// structure.
type Bounds2D struct {
	Min Vector2
	Max Vector2
}

// NewBounds2D builds a rectangle from its corners, normalizing Min/Max.
func NewBounds2D(min, max Vector2) Bounds2D {
	if min.X > max.X {
		min.X, max.X = max.X, min.X
	}
	if min.Y > max.Y {
		min.Y, max.Y = max.Y, min.Y
	}
	return Bounds2D{Min: min, Max: max}
}

// NewBounds2DFromPoints returns the rectangle bounding all given points.
func NewBounds2DFromPoints(points ...Vector2) Bounds2D {
	if len(points) == 0 {
		return Bounds2D{}
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return Bounds2D{Min: min, Max: max}
}

// Union returns a rectangle bounding both b and other.
func (b Bounds2D) Union(other Bounds2D) Bounds2D {
	return NewBounds2DFromPoints(b.Min, b.Max, other.Min, other.Max)
}

// Contains reports whether p lies within the rectangle.
func (b Bounds2D) Contains(p Vector2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Expand returns b grown by amount on every side; used to pad a point or
// segment bounding box before hit-testing in screen space.
func (b Bounds2D) Expand(amount float64) Bounds2D {
	pad := Vector2{X: amount, Y: amount}
	return Bounds2D{Min: b.Min.Subtract(pad), Max: b.Max.Add(pad)}
}

// Center returns the midpoint of the rectangle.
func (b Bounds2D) Center() Vector2 {
	return b.Min.Add(b.Max).Multiply(0.5)
}
