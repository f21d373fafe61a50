// Evaluates a filling run: filling time, convergence, discharge extremes and
// the water-surface slope indicator that governs mooring forces.

package sim

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Metrics aggregates statistics about one filling run for final reporting
// and for feasibility checks in design searches.
type Metrics struct {
	Steps            int     // number of emitted steps
	Converged        bool    // chamber reached the upstream level before the iteration cap
	FillingTime      float64 // s
	FinalLevel       float64 // m above the lower sill
	MaxDischarge     float64 // m³/s
	MinDischarge     float64 // m³/s
	MaxDischargeRate float64 // m³/s²
	MinDischargeRate float64 // m³/s²
	MaxSurfaceSlope  float64 // mm/m
	P95SurfaceSlope  float64 // mm/m
	FullyOpenedCount int     // units that reached StatusFullyOpened
	EventCount       int
}

// NewMetrics evaluates res, produced by filling lock.
func NewMetrics(lock *Lock, res *Result) *Metrics {
	m := &Metrics{
		Steps:       len(res.Steps),
		Converged:   res.Converged,
		FillingTime: res.FillingTime,
		FinalLevel:  res.FinalLevel,
		EventCount:  len(res.Events),
	}
	for _, ev := range res.Events {
		if ev.Status == StatusFullyOpened {
			m.FullyOpenedCount++
		}
	}
	if len(res.Steps) == 0 {
		return m
	}

	discharge := make([]float64, len(res.Steps))
	rate := make([]float64, len(res.Steps))
	slope := make([]float64, len(res.Steps))
	for i, s := range res.Steps {
		discharge[i] = s.Discharge
		rate[i] = s.DischargeRate
		slope[i] = SurfaceSlope(lock.Chamber.Width, s.DischargeRate)
	}
	m.MaxDischarge = floats.Max(discharge)
	m.MinDischarge = floats.Min(discharge)
	m.MaxDischargeRate = floats.Max(rate)
	m.MinDischargeRate = floats.Min(rate)
	m.MaxSurfaceSlope = floats.Max(slope)

	sort.Float64s(slope)
	m.P95SurfaceSlope = CalculatePercentile(slope, 95)
	return m
}

// Print writes the metrics in a human-readable block.
func (m *Metrics) Print(w io.Writer) {
	_, _ = fmt.Fprintln(w, "=== Filling Metrics ===")
	_, _ = fmt.Fprintf(w, "Steps                : %d\n", m.Steps)
	_, _ = fmt.Fprintf(w, "Converged            : %t\n", m.Converged)
	_, _ = fmt.Fprintf(w, "Filling Time         : %.0f s (%.1f min)\n", m.FillingTime, m.FillingTime/60)
	_, _ = fmt.Fprintf(w, "Final Level          : %.3f m\n", m.FinalLevel)
	_, _ = fmt.Fprintf(w, "Max Discharge        : %.3f m³/s\n", m.MaxDischarge)
	_, _ = fmt.Fprintf(w, "Discharge Rate       : %.5f .. %.5f m³/s²\n", m.MinDischargeRate, m.MaxDischargeRate)
	_, _ = fmt.Fprintf(w, "Max Surface Slope    : %.4f mm/m\n", m.MaxSurfaceSlope)
	_, _ = fmt.Fprintf(w, "P95 Surface Slope    : %.4f mm/m\n", m.P95SurfaceSlope)
	_, _ = fmt.Fprintf(w, "Fully Opened Units   : %d\n", m.FullyOpenedCount)
}
