package analysis

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/philipparndt/circlefit/pkg/geometry"
)

// PointResidual describes how far one input point lies from the fitted circle
type PointResidual struct {
	Index    int
	Point    geometry.Vector2
	Distance float64 // distance to the circle center
	Residual float64 // Distance minus radius
}

// FitAnalysis contains quality measurements of a circle fit
type FitAnalysis struct {
	Circle     geometry.Circle
	PointCount int
	Bounds     geometry.Bounds
	Residuals  []PointResidual
	RMS        float64 // root mean square residual
	Mean       float64 // mean signed residual
	MaxAbs     float64 // largest absolute residual
	Coverage   float64 // angle in radians spanned by the points around the center
}

// Analyze measures how well circle describes points
func Analyze(points []geometry.Vector2, circle geometry.Circle) *FitAnalysis {
	result := &FitAnalysis{
		Circle:     circle,
		PointCount: len(points),
		Bounds:     geometry.BoundsOf(points),
		Residuals:  make([]PointResidual, 0, len(points)),
	}

	if len(points) == 0 {
		return result
	}

	var sum, sumSq float64
	angles := make([]float64, len(points))
	for i, p := range points {
		distance := p.Distance(circle.Center)
		residual := distance - circle.Radius
		result.Residuals = append(result.Residuals, PointResidual{
			Index:    i,
			Point:    p,
			Distance: distance,
			Residual: residual,
		})

		sum += residual
		sumSq += residual * residual
		result.MaxAbs = math.Max(result.MaxAbs, math.Abs(residual))
		angles[i] = p.Sub(circle.Center).Angle()
	}

	n := float64(len(points))
	result.Mean = sum / n
	result.RMS = math.Sqrt(sumSq / n)
	result.Coverage = angularCoverage(angles)

	return result
}

// CoverageFraction returns Coverage as a fraction of a full turn
func (a *FitAnalysis) CoverageFraction() float64 {
	return a.Coverage / (2 * math.Pi)
}

// angularCoverage returns 2π minus the largest gap between neighboring angles
func angularCoverage(angles []float64) float64 {
	if len(angles) < 2 {
		return 0
	}

	sorted := slices.Clone(angles)
	slices.Sort(sorted)

	maxGap := sorted[0] + 2*math.Pi - sorted[len(sorted)-1]
	for i := 1; i < len(sorted); i++ {
		maxGap = math.Max(maxGap, sorted[i]-sorted[i-1])
	}
	return 2*math.Pi - maxGap
}

// FindWorstPoints returns the count points with the largest absolute residual
func FindWorstPoints(result *FitAnalysis, count int) []PointResidual {
	residuals := make([]PointResidual, len(result.Residuals))
	copy(residuals, result.Residuals)

	sort.SliceStable(residuals, func(i, j int) bool {
		return math.Abs(residuals[i].Residual) > math.Abs(residuals[j].Residual)
	})

	if count > len(residuals) {
		count = len(residuals)
	}
	if count < 0 {
		count = 0
	}

	return residuals[:count]
}

// FindPointsBeyond returns all points whose absolute residual exceeds tolerance
func FindPointsBeyond(result *FitAnalysis, tolerance float64) []PointResidual {
	var points []PointResidual
	for _, r := range result.Residuals {
		if math.Abs(r.Residual) > tolerance {
			points = append(points, r)
		}
	}
	return points
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 2D vector
func FormatVector(v geometry.Vector2) string {
	return fmt.Sprintf("(%.6f, %.6f)", v.X, v.Y)
}
