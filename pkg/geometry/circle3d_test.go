package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitCircleToPoints3D(t *testing.T) {
	tests := []struct {
		name   string
		axis   Axis
		lift   func(p Vector2) Vector3
		center Vector3
	}{
		{"yz plane", AxisX, func(p Vector2) Vector3 { return NewVector3(7, p.X, p.Y) }, NewVector3(7, 2, -3)},
		{"xz plane", AxisY, func(p Vector2) Vector3 { return NewVector3(p.X, 7, p.Y) }, NewVector3(2, 7, -3)},
		{"xy plane", AxisZ, func(p Vector2) Vector3 { return NewVector3(p.X, p.Y, 7) }, NewVector3(2, -3, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var points []Vector3
			for p := range Arc(NewVector2(2, -3), 4, 24, math.Pi) {
				points = append(points, tt.lift(p))
			}

			fit, err := FitCircleToPoints3D(points, tt.axis, DefaultFitOptions())
			require.NoError(t, err)

			assert.InDelta(t, tt.center.X, fit.Center.X, 1e-9)
			assert.InDelta(t, tt.center.Y, fit.Center.Y, 1e-9)
			assert.InDelta(t, tt.center.Z, fit.Center.Z, 1e-9)
			assert.InDelta(t, 4.0, fit.Radius, 1e-9)
			assert.InDelta(t, 0.0, fit.StdDev, 1e-9)
			assert.Equal(t, tt.axis.Normal(), fit.Normal)
		})
	}
}

func TestFitCircleToPoints3DErrors(t *testing.T) {
	points := []Vector3{{0, 0, 0}, {1, 0, 1}, {2, 0, 0}}

	_, err := FitCircleToPoints3D(points, Axis(5), DefaultFitOptions())
	assert.Error(t, err)

	_, err = FitCircleToPoints3D(points[:2], AxisY, DefaultFitOptions())
	assert.ErrorIs(t, err, ErrInsufficientPoints)

	// Projected onto yz every point collapses to a line.
	_, err = FitCircleToPoints3D(points, AxisX, DefaultFitOptions())
	assert.ErrorIs(t, err, ErrDegenerateFit)
}

func TestParsePlane(t *testing.T) {
	for name, expected := range map[string]Axis{"xy": AxisZ, "XZ": AxisY, "yz": AxisX, "zx": AxisY} {
		axis, err := ParsePlane(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, axis, name)
	}

	_, err := ParsePlane("xx")
	assert.Error(t, err)
}
