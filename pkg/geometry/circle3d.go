package geometry

import (
	"fmt"
	"math"
	"strings"
)

// Axis selects one of the coordinate axes
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// ParsePlane maps a plane name ("yz", "xz" or "xy") to the axis that is
// constant on that plane
func ParsePlane(name string) (Axis, error) {
	switch strings.ToLower(name) {
	case "yz", "zy":
		return AxisX, nil
	case "xz", "zx":
		return AxisY, nil
	case "xy", "yx":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("invalid plane %q (must be xy, xz or yz)", name)
}

// Normal returns the unit vector along the axis
func (a Axis) Normal() Vector3 {
	switch a {
	case AxisX:
		return NewVector3(1, 0, 0)
	case AxisY:
		return NewVector3(0, 1, 0)
	default:
		return NewVector3(0, 0, 1)
	}
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// project drops the coordinate along the axis
func (a Axis) project(p Vector3) Vector2 {
	switch a {
	case AxisX:
		return Vector2{X: p.Y, Y: p.Z}
	case AxisY:
		return Vector2{X: p.X, Y: p.Z}
	default:
		return Vector2{X: p.X, Y: p.Y}
	}
}

// lift is the inverse of project with the given constant coordinate
func (a Axis) lift(p Vector2, constant float64) Vector3 {
	switch a {
	case AxisX:
		return NewVector3(constant, p.X, p.Y)
	case AxisY:
		return NewVector3(p.X, constant, p.Y)
	default:
		return NewVector3(p.X, p.Y, constant)
	}
}

// CircleFit3D represents the result of fitting a circle to points on a plane
type CircleFit3D struct {
	Center Vector3 // Circle center in 3D
	Radius float64 // Circle radius
	Normal Vector3 // Normal vector of the plane containing the circle
	StdDev float64 // RMS radial deviation of the points (quality measure)
}

// FitCircleToPoints3D fits a circle to 3D points lying on the plane where the
// constraint axis is constant. The points are projected onto that plane, fitted
// with FitCircleWith, and the center is lifted back using the first point's
// coordinate along the constraint axis.
func FitCircleToPoints3D(points []Vector3, constraintAxis Axis, opts FitOptions) (*CircleFit3D, error) {
	if constraintAxis < AxisX || constraintAxis > AxisZ {
		return nil, fmt.Errorf("invalid constraint axis: %d (must be 0, 1, or 2)", constraintAxis)
	}
	if len(points) < MinFitPoints {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientPoints, len(points))
	}

	planar := make([]Vector2, len(points))
	for i, p := range points {
		if !p.IsFinite() {
			return nil, fmt.Errorf("%w: point %d", ErrNonFinitePoint, i)
		}
		planar[i] = constraintAxis.project(p)
	}

	// A zero circle from a flat 3D measurement is never useful, so always
	// report the negative radius case as an error here.
	opts.Strict = true
	circle, err := FitCircleWith(planar, opts)
	if err != nil {
		return nil, err
	}

	var sumSq float64
	for _, p := range planar {
		r := circle.Residual(p)
		sumSq += r * r
	}

	return &CircleFit3D{
		Center: constraintAxis.lift(circle.Center, points[0].Component(constraintAxis)),
		Radius: circle.Radius,
		Normal: constraintAxis.Normal(),
		StdDev: math.Sqrt(sumSq / float64(len(planar))),
	}, nil
}
