package sim

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// G is the gravitational acceleration in m/s².
const G = 9.81

// QuadratureIntervals is the number of equal trapezoid subintervals per integral.
const QuadratureIntervals = 100

// MinSpan is the smallest vertical span (m) treated as non-degenerate.
const MinSpan = 1e-9

// FillingCrossSection is the time-varying geometry of one filling opening.
// All methods are pure functions of t, the elapsed time (s) since the opening began
// moving, or of h, a height (m) above the opening's sill.
type FillingCrossSection interface {
	// Area is the geometric open area at time t.
	Area(t float64) float64
	// ReleasedHeight is the exposed vertical extent at time t, saturating at full height.
	ReleasedHeight(t float64) float64
	// ReleasedWidth is the width of the opening at local height h.
	ReleasedWidth(h float64) float64
	// IsFullyOpened reports whether the opening has reached its full height at time t.
	IsFullyOpened(t float64) bool
	// WeirLossCoefficient is the discharge coefficient for free overflow.
	WeirLossCoefficient(lock *Lock, potentialHead, lowerHeadDepth, t float64) float64
	// SubmergedLossCoefficient is the discharge coefficient for submerged (orifice) flow.
	SubmergedLossCoefficient(lock *Lock, potentialHead, lowerHeadDepth, t float64) float64
}

// velocity is Torricelli's outflow velocity for a head difference dh.
// A non-positive head difference carries no flow.
func velocity(dh float64) float64 {
	if dh <= 0 {
		return 0
	}
	return math.Sqrt(2 * G * dh)
}

// trapezoid integrates f over [lo, hi] with QuadratureIntervals subintervals.
// A collapsed or inverted span integrates to 0.
func trapezoid(lo, hi float64, f func(h float64) float64) float64 {
	if hi-lo < MinSpan {
		return 0
	}
	xs := floats.Span(make([]float64, QuadratureIntervals+1), lo, hi)
	ys := make([]float64, len(xs))
	for i, h := range xs {
		ys[i] = f(h)
	}
	return integrate.Trapezoidal(xs, ys)
}

// QuadratureSubmerged integrates the submerged (orifice) discharge of cs at time t.
// The downstream level drowns the span [0, min(released, submergedHeight)], so the
// velocity depends only on the head difference across the opening.
func QuadratureSubmerged(cs FillingCrossSection, potentialHead, submergedHeight, t float64) float64 {
	upper := math.Min(cs.ReleasedHeight(t), submergedHeight)
	v := velocity(potentialHead - submergedHeight)
	return trapezoid(0, upper, func(h float64) float64 {
		return cs.ReleasedWidth(h) * v
	})
}

// QuadratureWeir integrates the free-overflow discharge of cs at time t over the part
// of the opening above submergedHeight. It is exactly 0 when the released height lies
// below submergedHeight.
func QuadratureWeir(cs FillingCrossSection, potentialHead, submergedHeight, t float64) float64 {
	released := cs.ReleasedHeight(t)
	if released < submergedHeight {
		return 0
	}
	return trapezoid(submergedHeight, released, func(h float64) float64 {
		return cs.ReleasedWidth(h) * velocity(potentialHead-h)
	})
}
