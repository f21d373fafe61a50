package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/lock-sim/lock-sim/sim"
	"github.com/lock-sim/lock-sim/sim/trace"
)

// Summary is the JSON record of one filling run.
type Summary struct {
	RunID            string              `json:"run_id"`
	CreatedAt        time.Time           `json:"created_at"`
	Lift             float64             `json:"lift_m"`
	ChamberWidth     float64             `json:"chamber_width_m"`
	ChamberLength    float64             `json:"chamber_length_m"`
	Openings         int                 `json:"openings"`
	Steps            int                 `json:"steps"`
	Converged        bool                `json:"converged"`
	FillingTime      float64             `json:"filling_time_s"`
	FinalLevel       float64             `json:"final_level_m"`
	MaxDischarge     float64             `json:"max_discharge_m3s"`
	MinDischargeRate float64             `json:"min_discharge_rate_m3s2"`
	MaxDischargeRate float64             `json:"max_discharge_rate_m3s2"`
	MaxSurfaceSlope  float64             `json:"max_surface_slope_mm_per_m"`
	P95SurfaceSlope  float64             `json:"p95_surface_slope_mm_per_m"`
	FullyOpened      int                 `json:"fully_opened_units"`
	Events           int                 `json:"events"`
	Trace            *trace.TraceSummary `json:"trace,omitempty"`
}

// NewSummary builds the JSON summary of a run. st may be nil.
func NewSummary(lock *sim.Lock, m *sim.Metrics, st *trace.SimulationTrace) *Summary {
	s := &Summary{
		RunID:            uuid.NewString(),
		CreatedAt:        time.Now().UTC(),
		Lift:             lock.Lift(),
		ChamberWidth:     lock.Chamber.Width,
		ChamberLength:    lock.Chamber.Length,
		Openings:         len(lock.Filling.Units),
		Steps:            m.Steps,
		Converged:        m.Converged,
		FillingTime:      m.FillingTime,
		FinalLevel:       m.FinalLevel,
		MaxDischarge:     m.MaxDischarge,
		MinDischargeRate: m.MinDischargeRate,
		MaxDischargeRate: m.MaxDischargeRate,
		MaxSurfaceSlope:  m.MaxSurfaceSlope,
		P95SurfaceSlope:  m.P95SurfaceSlope,
		FullyOpened:      m.FullyOpenedCount,
		Events:           m.EventCount,
	}
	if st.Enabled() {
		s.Trace = trace.Summarize(st)
	}
	return s
}

// WriteJSON writes the summary as indented JSON.
func (s *Summary) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling summary: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
