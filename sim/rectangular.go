package sim

import "math"

// Loss terms of the submerged discharge coefficient.
const (
	entranceLoss    = 0.5
	contractionLoss = 0.5
	expansionLoss   = 1.2
)

// RectangularFillingCrossSection is a rectangular opening uncovered by a gate that
// lifts vertically at a constant Speed.
type RectangularFillingCrossSection struct {
	Speed  float64 // gate lift rate (m/s)
	Width  float64 // full width (m)
	Height float64 // full height (m)
}

// NewRectangularFillingCrossSection creates a rectangular opening.
func NewRectangularFillingCrossSection(speed, width, height float64) *RectangularFillingCrossSection {
	return &RectangularFillingCrossSection{Speed: speed, Width: width, Height: height}
}

func (r *RectangularFillingCrossSection) Area(t float64) float64 {
	return r.Width * r.ReleasedHeight(t)
}

func (r *RectangularFillingCrossSection) ReleasedHeight(t float64) float64 {
	return math.Min(r.Speed*t, r.Height)
}

func (r *RectangularFillingCrossSection) ReleasedWidth(_ float64) float64 {
	return r.Width
}

func (r *RectangularFillingCrossSection) IsFullyOpened(t float64) bool {
	return r.Speed*t > r.Height
}

// WeirLossCoefficient evaluates the empirical fourth-order fit
//
//	mu(x) = 0.673 - 0.0511667x - 0.0105x² - 0.047333x³ + 0.018x⁴
//
// where x is the overflowed height over the equivalent width of the open area.
func (r *RectangularFillingCrossSection) WeirLossCoefficient(_ *Lock, _, lowerHeadDepth, t float64) float64 {
	span := r.ReleasedHeight(t) - lowerHeadDepth
	x := 0.0
	if math.Abs(span) >= MinSpan {
		b := r.Area(t) / span
		x = span / b
	}
	return 0.673 + x*(-0.0511667+x*(-0.0105+x*(-0.047333+x*0.018)))
}

// SubmergedLossCoefficient combines entrance, contraction and expansion losses.
// Contraction compares the open to the full opening, expansion compares the open
// opening to the wetted chamber section at the current chamber level.
func (r *RectangularFillingCrossSection) SubmergedLossCoefficient(lock *Lock, _, lowerHeadDepth, t float64) float64 {
	released := r.ReleasedHeight(t)
	dhFull := hydraulicDiameter(r.Width*r.Height, 2*(r.Width+r.Height))
	dhOpen := hydraulicDiameter(r.Width*released, 2*(r.Width+released))

	level := lowerHeadDepth + lock.SillOffset()
	width := lock.Chamber.Width
	dhChamber := hydraulicDiameter(width*level, width+2*level)

	z2 := contractionLoss * sq(1-dhFull/dhOpen)
	z3 := expansionLoss * sq(1-dhOpen/dhChamber)
	return 1 / math.Sqrt(1+entranceLoss+math.Max(z2, 0)+math.Max(z3, 0))
}

func hydraulicDiameter(area, perimeter float64) float64 {
	return 4 * area / perimeter
}

func sq(x float64) float64 { return x * x }
