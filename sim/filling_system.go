package sim

// FillingSystem is the ordered set of openings feeding one chamber.
// Order only affects event reporting.
type FillingSystem struct {
	Units []*FillingCrossSectionUnit
}

// NewFillingSystem creates a FillingSystem from the given units.
func NewFillingSystem(units ...*FillingCrossSectionUnit) *FillingSystem {
	return &FillingSystem{Units: units}
}

// TotalDischarge sums the discharge of every unit at time t.
func (fs *FillingSystem) TotalDischarge(lock *Lock, lowerHeadLevel, upperHeadLevel, t float64) float64 {
	total := 0.0
	for _, u := range fs.Units {
		total += u.Discharge(lock, upperHeadLevel, lowerHeadLevel, t)
	}
	return total
}

// Breakdown returns the per-unit discharge details at time t, in unit order.
func (fs *FillingSystem) Breakdown(lock *Lock, lowerHeadLevel, upperHeadLevel, t float64) []UnitDischarge {
	out := make([]UnitDischarge, len(fs.Units))
	for i, u := range fs.Units {
		out[i] = u.Breakdown(lock, upperHeadLevel, lowerHeadLevel, t)
	}
	return out
}

// OpeningStatus classifies every unit's gate movement at time t.
func (fs *FillingSystem) OpeningStatus(t float64) []FillingSystemStatus {
	out := make([]FillingSystemStatus, len(fs.Units))
	for i, u := range fs.Units {
		switch {
		case u.IsOpeningStarted(t) && u.IsFullyOpened(t):
			out[i] = StatusFullyOpened
		case u.IsOpeningStarted(t):
			out[i] = StatusOpeningStarted
		default:
			out[i] = StatusUnknown
		}
	}
	return out
}

// SubmergenceStatus classifies how far every unit is drowned by the downstream level.
// A unit whose gate has not started moving reports StatusUnknown.
func (fs *FillingSystem) SubmergenceStatus(lowerHeadLevel, t float64) []FillingSystemStatus {
	out := make([]FillingSystemStatus, len(fs.Units))
	for i, u := range fs.Units {
		switch {
		case !u.IsOpeningStarted(t):
			out[i] = StatusUnknown
		case u.IsFullySubmerged(lowerHeadLevel, t):
			out[i] = StatusFullySubmerged
		case u.IsSubmergenceStarted(lowerHeadLevel):
			out[i] = StatusSubmergenceStarted
		default:
			out[i] = StatusUnknown
		}
	}
	return out
}
