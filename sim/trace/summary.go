package trace

import "math"

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalRecords  int
	RegimeCounts  map[string]int // regime → number of records
	MeanMuBlend   float64        // over records with flow
	MinMuBlend    float64
	MaxMuBlend    float64
	PeakDischarge float64 // largest single-unit discharge
	PeakUnit      int     // unit of PeakDischarge (-1 if none)
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		RegimeCounts: make(map[string]int),
		PeakUnit:     -1,
	}
	if st == nil {
		return summary
	}

	summary.TotalRecords = len(st.Discharges)
	flowing := 0
	total := 0.0
	summary.MinMuBlend = math.Inf(1)
	for _, r := range st.Discharges {
		summary.RegimeCounts[r.Regime]++
		if r.Discharge > summary.PeakDischarge {
			summary.PeakDischarge = r.Discharge
			summary.PeakUnit = r.Unit
		}
		if r.Regime == "closed" || math.IsNaN(r.MuBlend) {
			continue
		}
		flowing++
		total += r.MuBlend
		summary.MinMuBlend = math.Min(summary.MinMuBlend, r.MuBlend)
		summary.MaxMuBlend = math.Max(summary.MaxMuBlend, r.MuBlend)
	}
	if flowing == 0 {
		summary.MinMuBlend = 0
		return summary
	}
	summary.MeanMuBlend = total / float64(flowing)
	return summary
}
