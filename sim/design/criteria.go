// Package design searches opening geometries and gate speeds that fill a lock
// within time and water-surface slope limits.
package design

import (
	"math"

	"github.com/lock-sim/lock-sim/sim"
	"github.com/lock-sim/lock-sim/sim/lockspec"
)

// Reason names the first acceptance limit a run violates.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonNotConverged  Reason = "not-converged"
	ReasonFillingTime   Reason = "filling-time"
	ReasonSurfaceSlope  Reason = "surface-slope"
	ReasonDischarge     Reason = "discharge"
	ReasonDischargeRate Reason = "discharge-rate"
)

// Bounds is a closed interval.
type Bounds struct {
	Min, Max float64
}

// Contains reports whether v lies within the bounds.
func (b Bounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Criteria are the acceptance limits of a filling run.
type Criteria struct {
	MaxFillingTime  float64 // s
	MaxSurfaceSlope float64 // mm/m
	Discharge       *Bounds // optional, m³/s
	DischargeRate   *Bounds // optional, m³/s²
}

// CriteriaFromSpec converts the YAML criteria section.
func CriteriaFromSpec(c *lockspec.CriteriaSpec) Criteria {
	out := Criteria{
		MaxFillingTime:  c.MaxFillingTime,
		MaxSurfaceSlope: c.MaxSurfaceSlope,
	}
	if len(c.Discharge) == 2 {
		out.Discharge = &Bounds{Min: c.Discharge[0], Max: c.Discharge[1]}
	}
	if len(c.DischargeRate) == 2 {
		out.DischargeRate = &Bounds{Min: c.DischargeRate[0], Max: c.DischargeRate[1]}
	}
	return out
}

// Check returns the first violated limit, or ReasonNone if m is acceptable.
func (c Criteria) Check(m *sim.Metrics) Reason {
	switch {
	case !m.Converged:
		return ReasonNotConverged
	case m.FillingTime >= c.MaxFillingTime:
		return ReasonFillingTime
	case m.MaxSurfaceSlope >= c.MaxSurfaceSlope:
		return ReasonSurfaceSlope
	case c.Discharge != nil && !(c.Discharge.Contains(m.MinDischarge) && c.Discharge.Contains(m.MaxDischarge)):
		return ReasonDischarge
	case c.DischargeRate != nil && !(c.DischargeRate.Contains(m.MinDischargeRate) && c.DischargeRate.Contains(m.MaxDischargeRate)):
		return ReasonDischargeRate
	}
	return ReasonNone
}

// Limiting returns whichever of filling time and surface slope exceeds its limit by
// the larger ratio.
func (c Criteria) Limiting(m *sim.Metrics) Reason {
	timeRatio := m.FillingTime / c.MaxFillingTime
	slopeRatio := m.MaxSurfaceSlope / c.MaxSurfaceSlope
	if timeRatio > slopeRatio || math.IsNaN(slopeRatio) {
		return ReasonFillingTime
	}
	return ReasonSurfaceSlope
}
