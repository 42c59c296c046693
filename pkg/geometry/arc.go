package geometry

import (
	"iter"
	"math"
	"math/rand/v2"
	"slices"
)

const (
	// DefaultArcPoints is the number of points in the reference test arc
	DefaultArcPoints = 360

	// DefaultArcSpan is the angular range of the reference test arc, 1/32 of a turn
	DefaultArcSpan = math.Pi / 16
)

// Arc yields n points on the circle with the given center and radius. Point i
// lies at angle i*span/n, so the arc starts at angle 0 and stops one step
// short of span.
func Arc(center Vector2, radius float64, n int, span float64) iter.Seq[Vector2] {
	return func(yield func(Vector2) bool) {
		if n <= 0 {
			return
		}
		c := NewCircle(center, radius)
		step := span / float64(n)
		for i := 0; i < n; i++ {
			if !yield(c.PointAt(step * float64(i))) {
				return
			}
		}
	}
}

// ArcPoints collects Arc into a slice
func ArcPoints(center Vector2, radius float64, n int, span float64) []Vector2 {
	points := slices.Collect(Arc(center, radius, n, span))
	if points == nil {
		return []Vector2{}
	}
	return points
}

// Perturb returns a copy of points with independent Gaussian noise of
// standard deviation sigma added to each coordinate
func Perturb(points []Vector2, sigma float64, rng *rand.Rand) []Vector2 {
	out := make([]Vector2, len(points))
	for i, p := range points {
		out[i] = Vector2{
			X: p.X + rng.NormFloat64()*sigma,
			Y: p.Y + rng.NormFloat64()*sigma,
		}
	}
	return out
}
