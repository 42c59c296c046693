package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/circlefit/pkg/geometry"
)

func TestAnalyzeExactFit(t *testing.T) {
	circle := geometry.NewCircle(geometry.NewVector2(500, 500), 300)
	points := geometry.ArcPoints(circle.Center, circle.Radius, geometry.DefaultArcPoints, geometry.DefaultArcSpan)

	result := Analyze(points, circle)

	assert.Equal(t, len(points), result.PointCount)
	require.Len(t, result.Residuals, len(points))
	assert.InDelta(t, 0.0, result.RMS, 1e-9)
	assert.InDelta(t, 0.0, result.MaxAbs, 1e-9)

	span := geometry.DefaultArcSpan * float64(geometry.DefaultArcPoints-1) / geometry.DefaultArcPoints
	assert.InDelta(t, span, result.Coverage, 1e-9)
	assert.InDelta(t, span/(2*math.Pi), result.CoverageFraction(), 1e-9)
}

func TestAnalyzeResiduals(t *testing.T) {
	circle := geometry.NewCircle(geometry.NewVector2(0, 0), 10)
	points := []geometry.Vector2{{X: 11, Y: 0}, {X: 0, Y: 9}, {X: -10, Y: 0}, {X: 0, Y: -12}}

	result := Analyze(points, circle)

	assert.InDelta(t, 0.5, result.Mean, 1e-12)
	assert.InDelta(t, 2.0, result.MaxAbs, 1e-12)
	assert.InDelta(t, math.Sqrt(6.0/4.0), result.RMS, 1e-12)
	assert.InDelta(t, 1.5*math.Pi, result.Coverage, 1e-12)
	assert.Equal(t, geometry.NewVector2(-10, -12), result.Bounds.Min)
}

func TestAnalyzeEmpty(t *testing.T) {
	result := Analyze(nil, geometry.Circle{})

	assert.Equal(t, 0, result.PointCount)
	assert.Empty(t, result.Residuals)
	assert.Equal(t, 0.0, result.RMS)
	assert.Equal(t, 0.0, result.Coverage)
}

func TestFindWorstPoints(t *testing.T) {
	circle := geometry.NewCircle(geometry.NewVector2(0, 0), 10)
	points := []geometry.Vector2{{X: 11, Y: 0}, {X: 0, Y: 7}, {X: -10, Y: 0}, {X: 0, Y: -12}}
	result := Analyze(points, circle)

	worst := FindWorstPoints(result, 2)
	require.Len(t, worst, 2)
	assert.Equal(t, 1, worst[0].Index)
	assert.Equal(t, 3, worst[1].Index)

	assert.Len(t, FindWorstPoints(result, 10), 4)
	assert.Empty(t, FindWorstPoints(result, -1))
}

func TestFindPointsBeyond(t *testing.T) {
	circle := geometry.NewCircle(geometry.NewVector2(0, 0), 10)
	points := []geometry.Vector2{{X: 11, Y: 0}, {X: 0, Y: 7}, {X: -10, Y: 0}}
	result := Analyze(points, circle)

	beyond := FindPointsBeyond(result, 1.5)
	require.Len(t, beyond, 1)
	assert.Equal(t, 1, beyond[0].Index)
	assert.InDelta(t, -3.0, beyond[0].Residual, 1e-12)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "(1.500000, -2.000000)", FormatVector(geometry.NewVector2(1.5, -2)))
	assert.Equal(t, "3.000000 units", FormatMeasurement(3, ""))
	assert.Equal(t, "3.000000 mm", FormatMeasurement(3, "mm"))
}
