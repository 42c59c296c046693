package geometry

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// MinFitPoints is the smallest point count for which a circle fit is defined
	MinFitPoints = 3

	// DefaultConditionLimit is the largest condition number of the normal
	// matrix that is still accepted as a solvable system. It matches the
	// tolerance gonum applies when solving.
	DefaultConditionLimit = mat.ConditionTolerance
)

var (
	ErrInsufficientPoints    = errors.New("need at least 3 points to fit a circle")
	ErrDegenerateFit         = errors.New("points do not determine a unique circle")
	ErrNegativeRadiusSquared = errors.New("fitted radius squared is negative")
	ErrNonFinitePoint        = errors.New("point has a non-finite coordinate")
)

// Circle is a fitted circle. Radius is never negative.
type Circle struct {
	Center Vector2
	Radius float64
}

// NewCircle creates a circle from its center and radius
func NewCircle(center Vector2, radius float64) Circle {
	return Circle{Center: center, Radius: radius}
}

// IsZero reports whether c is the zero-radius circle at the origin, which
// FitCircle returns when the fitted radius squared comes out negative.
// Callers should treat it as a failed fit.
func (c Circle) IsZero() bool {
	return c == Circle{}
}

// PointAt returns the point on the circle at the given angle in radians
func (c Circle) PointAt(angle float64) Vector2 {
	return Vector2{
		X: c.Center.X + math.Cos(angle)*c.Radius,
		Y: c.Center.Y + math.Sin(angle)*c.Radius,
	}
}

// Residual returns the signed radial distance of p from the circle
func (c Circle) Residual(p Vector2) float64 {
	return p.Distance(c.Center) - c.Radius
}

func (c Circle) String() string {
	return fmt.Sprintf("center (%.6f, %.6f) radius %.6f", c.Center.X, c.Center.Y, c.Radius)
}

// FitOptions tunes FitCircleWith and FitCircleDetailed
type FitOptions struct {
	// ConditionLimit rejects normal matrices whose condition estimate exceeds
	// it. Zero or negative selects DefaultConditionLimit.
	ConditionLimit float64

	// Strict turns a negative radius squared into ErrNegativeRadiusSquared
	// instead of returning the zero circle.
	Strict bool
}

// DefaultFitOptions returns the options used by FitCircle
func DefaultFitOptions() FitOptions {
	return FitOptions{ConditionLimit: DefaultConditionLimit}
}

// Fit carries a fitted circle together with solver diagnostics
type Fit struct {
	Circle

	// RadiusSquared is C + x0² + y0² as solved, before the sign check
	RadiusSquared float64

	// Condition is the condition estimate of the normal matrix
	Condition float64

	// Points is the number of input points
	Points int

	// Sentinel is set when RadiusSquared was negative and Circle was
	// replaced by the zero circle
	Sentinel bool
}

// FitCircle fits a circle to points using the linearized least-squares method
// with the default options. See FitCircleDetailed.
func FitCircle(points []Vector2) (Circle, error) {
	return FitCircleWith(points, DefaultFitOptions())
}

// FitCircleWith is FitCircle with explicit options
func FitCircleWith(points []Vector2, opts FitOptions) (Circle, error) {
	fit, err := FitCircleDetailed(points, opts)
	if err != nil {
		return Circle{}, err
	}
	return fit.Circle, nil
}

// FitCircleDetailed fits a circle to points and returns solver diagnostics.
//
// The circle equation (xi-x0)² + (yi-y0)² = r² is rewritten as
//
//	2·xi·x0 + 2·yi·y0 + C = xi² + yi²,  C = r² - x0² - y0²
//
// which is linear in X = [x0, y0, C]. With rows A = [2xi, 2yi, 1] and targets
// Y = xi² + yi², X solves the normal equations (AᵗA)X = AᵗY. AᵗA is built from
// its closed-form sums:
//
//	| 4Σx²   4Σxy   2Σx |
//	| 4Σxy   4Σy²   2Σy |
//	| 2Σx    2Σy    n   |
//
// and factorized with Cholesky. A matrix that is not positive definite, or
// whose condition estimate exceeds opts.ConditionLimit, yields ErrDegenerateFit.
//
// A negative r² yields the zero circle with Sentinel set, or
// ErrNegativeRadiusSquared when opts.Strict is true.
func FitCircleDetailed(points []Vector2, opts FitOptions) (Fit, error) {
	if len(points) < MinFitPoints {
		return Fit{}, fmt.Errorf("%w: got %d", ErrInsufficientPoints, len(points))
	}

	limit := opts.ConditionLimit
	if limit <= 0 {
		limit = DefaultConditionLimit
	}

	var sumX, sumY, sumXX, sumYY, sumXY float64
	var sumZ, sumXZ, sumYZ float64
	for i, p := range points {
		if !p.IsFinite() {
			return Fit{}, fmt.Errorf("%w: point %d is (%v, %v)", ErrNonFinitePoint, i, p.X, p.Y)
		}
		z := p.X*p.X + p.Y*p.Y
		sumX += p.X
		sumY += p.Y
		sumXX += p.X * p.X
		sumYY += p.Y * p.Y
		sumXY += p.X * p.Y
		sumZ += z
		sumXZ += p.X * z
		sumYZ += p.Y * z
	}

	n := float64(len(points))
	ata := mat.NewSymDense(3, []float64{
		4 * sumXX, 4 * sumXY, 2 * sumX,
		4 * sumXY, 4 * sumYY, 2 * sumY,
		2 * sumX, 2 * sumY, n,
	})
	aty := mat.NewVecDense(3, []float64{2 * sumXZ, 2 * sumYZ, sumZ})

	var chol mat.Cholesky
	if ok := chol.Factorize(ata); !ok {
		return Fit{}, fmt.Errorf("%w: normal matrix is singular", ErrDegenerateFit)
	}

	cond := chol.Cond()
	if math.IsNaN(cond) || cond > limit {
		return Fit{}, fmt.Errorf("%w: normal matrix condition %.3g exceeds %.3g", ErrDegenerateFit, cond, limit)
	}

	var x mat.VecDense
	if err := chol.SolveVecTo(&x, aty); err != nil {
		return Fit{}, fmt.Errorf("%w: %v", ErrDegenerateFit, err)
	}

	return fitFromSolution(x.AtVec(0), x.AtVec(1), x.AtVec(2), cond, len(points), opts.Strict)
}

// fitFromSolution turns a solved X = [x0, y0, C] into a Fit, applying the
// negative radius squared policy
func fitFromSolution(x0, y0, c, cond float64, points int, strict bool) (Fit, error) {
	circle, r2, ok := circleFromSolution(x0, y0, c)
	if !isFinite(x0) || !isFinite(y0) || !isFinite(r2) {
		return Fit{}, fmt.Errorf("%w: solution is not finite", ErrDegenerateFit)
	}
	if !ok && strict {
		return Fit{}, fmt.Errorf("%w: %g", ErrNegativeRadiusSquared, r2)
	}

	return Fit{
		Circle:        circle,
		RadiusSquared: r2,
		Condition:     cond,
		Points:        points,
		Sentinel:      !ok,
	}, nil
}

// circleFromSolution recovers the circle from X = [x0, y0, C]. The radius
// squared of an exact least-squares solution is the mean squared distance of
// the points to the center, so a negative value only comes from rounding on
// ill-conditioned input; it maps to the zero circle and ok == false.
func circleFromSolution(x0, y0, c float64) (circle Circle, r2 float64, ok bool) {
	r2 = c + x0*x0 + y0*y0
	if r2 < 0 {
		return Circle{}, r2, false
	}
	return Circle{Center: Vector2{X: x0, Y: y0}, Radius: math.Sqrt(r2)}, r2, true
}
