package sim

import "github.com/lock-sim/lock-sim/sim/internal/testutil"

// newTestUnit builds the single rectangular unit described by g.
func newTestUnit(g testutil.ReferenceGeometry) *FillingCrossSectionUnit {
	return NewFillingCrossSectionUnit(
		NewRectangularFillingCrossSection(g.OpeningSpeed, g.OpeningWidth, g.OpeningHeight),
		g.ReferenceHeight,
		g.StartTime,
	)
}

// newTestLock builds a lock from g with n identical openings.
func newTestLock(g testutil.ReferenceGeometry, n int) *Lock {
	units := make([]*FillingCrossSectionUnit, n)
	for i := range units {
		units[i] = newTestUnit(g)
	}
	return NewLock(
		LockChamber{Width: g.ChamberWidth, Length: g.ChamberLength},
		UpperHead{Surface: g.UpperSurface, Sill: g.UpperSill, ChannelWidth: g.ChamberWidth},
		LowerHead{Surface: g.LowerSurface, Sill: g.LowerSill, ChannelWidth: g.ChamberWidth},
		NewFillingSystem(units...),
	)
}

// triangle is a V-shaped opening whose width equals the local height.
// It exercises the shape-independent quadrature.
type triangle struct{ height float64 }

func (tr triangle) Area(t float64) float64           { h := tr.ReleasedHeight(t); return h * h / 2 }
func (tr triangle) ReleasedHeight(t float64) float64 { return min(t, tr.height) }
func (tr triangle) ReleasedWidth(h float64) float64  { return h }
func (tr triangle) IsFullyOpened(t float64) bool     { return t > tr.height }
func (tr triangle) WeirLossCoefficient(*Lock, float64, float64, float64) float64 {
	return 0.6
}
func (tr triangle) SubmergedLossCoefficient(*Lock, float64, float64, float64) float64 {
	return 0.8
}

func nan() float64 {
	zero := 0.0
	return zero / zero
}
