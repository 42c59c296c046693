package geometry

import "math"

// Bounds represents an axis-aligned 2D bounding box
type Bounds struct {
	Min Vector2
	Max Vector2
}

// NewBounds creates an empty bounding box that any point will extend
func NewBounds() Bounds {
	return Bounds{
		Min: Vector2{X: math.MaxFloat64, Y: math.MaxFloat64},
		Max: Vector2{X: -math.MaxFloat64, Y: -math.MaxFloat64},
	}
}

// BoundsOf returns the bounding box of the given points
func BoundsOf(points []Vector2) Bounds {
	b := NewBounds()
	for _, p := range points {
		b.Extend(p)
	}
	return b
}

// Extend expands the bounding box to include a point
func (b *Bounds) Extend(p Vector2) {
	b.Min = Vector2{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y)}
	b.Max = Vector2{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y)}
}

// Empty reports whether no point has been added
func (b Bounds) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

// Size returns the width and height of the bounding box
func (b Bounds) Size() Vector2 {
	if b.Empty() {
		return Vector2{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounding box
func (b Bounds) Center() Vector2 {
	return Vector2{
		X: (b.Min.X + b.Max.X) / 2.0,
		Y: (b.Min.Y + b.Max.Y) / 2.0,
	}
}

// Diagonal returns the length of the bounding box diagonal
func (b Bounds) Diagonal() float64 {
	return b.Size().Length()
}
