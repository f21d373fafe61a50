// sim/simulator.go
package sim

import (
	"iter"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/lock-sim/lock-sim/sim/trace"
)

// Step is the state of the lock after one fixed time step.
type Step struct {
	Iteration     int
	Time          float64 // elapsed time (s)
	ChamberLevel  float64 // chamber level above the lower sill at the start of the step (m)
	Discharge     float64 // total inflow during the step (m³/s)
	DischargeRate float64 // change of discharge against the previous step (m³/s²)
	Events        []Event
}

// TimedEvent is an Event together with the step it was emitted at.
type TimedEvent struct {
	Iteration int
	Time      float64
	Event
}

// Result is the collected outcome of a filling run.
type Result struct {
	Steps  []Step
	Events []TimedEvent
	// Converged is false when the run stopped at the iteration cap before the
	// chamber reached the upstream level.
	Converged   bool
	FinalLevel  float64
	FillingTime float64
}

// Steps returns the filling run as a lazy sequence. Every call to the returned
// sequence restarts the run from the downstream level, so the lock can be reused.
// Stopping the iteration early stops the simulation.
func (l *Lock) Steps(cfg FillConfig) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		area := l.Chamber.PlanArea()
		target := l.TargetLevel()
		upperLevel := l.Upper.Depth()
		volume := l.InitialVolume()
		level := volume / area

		n := len(l.Filling.Units)
		opening := make([]FillingSystemStatus, n)
		submergence := make([]FillingSystemStatus, n)
		previous := 0.0

		for i := 1; level < target && i < cfg.MaxIterations; i++ {
			level = volume / area
			lowerLevel := math.Max(level-l.SillOffset(), 0)
			t := cfg.TimeStep * float64(i)

			q := l.discharge(cfg.Trace, i, lowerLevel, upperLevel, t)
			volume += q * cfg.TimeStep

			var events []Event
			events = advanceStatus(events, opening, l.Filling.OpeningStatus(t))
			events = advanceStatus(events, submergence, l.Filling.SubmergenceStatus(lowerLevel, t))

			step := Step{
				Iteration:     i,
				Time:          t,
				ChamberLevel:  level,
				Discharge:     q,
				DischargeRate: (q - previous) / cfg.TimeStep,
				Events:        events,
			}
			previous = q

			logrus.Debugf("[step %06d] t=%.1fs level=%.4fm Q=%.4fm³/s dQ=%.5fm³/s²",
				i, t, level, q, step.DischargeRate)
			for _, ev := range events {
				logrus.Debugf("[step %06d] unit %d %s", i, ev.Unit, ev.Status)
			}

			if !yield(step) {
				return
			}
		}
	}
}

// discharge is the total inflow at time t. NaN from a degenerate opening counts as no flow.
func (l *Lock) discharge(st *trace.SimulationTrace, iteration int, lowerLevel, upperLevel, t float64) float64 {
	if !st.Enabled() {
		return finiteOrZero(l.Filling.TotalDischarge(l, lowerLevel, upperLevel, t))
	}
	total := 0.0
	for unit, d := range l.Filling.Breakdown(l, lowerLevel, upperLevel, t) {
		st.RecordDischarge(trace.DischargeRecord{
			Iteration:   iteration,
			Time:        t,
			Unit:        unit,
			Regime:      string(d.Regime),
			MuWeir:      d.MuWeir,
			MuSubmerged: d.MuSubmerged,
			MuBlend:     d.MuBlend,
			Discharge:   d.Discharge,
		})
		total += d.Discharge
	}
	return finiteOrZero(total)
}

// advanceStatus moves every recorded status forward to current and appends an Event
// per advanced unit. Statuses never move backwards.
func advanceStatus(events []Event, recorded, current []FillingSystemStatus) []Event {
	for unit, s := range current {
		if s > recorded[unit] {
			recorded[unit] = s
			events = append(events, newEvent(unit, s))
		}
	}
	return events
}

func finiteOrZero(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return x
}

// Fill runs the simulation to completion and collects steps and events.
func (l *Lock) Fill(cfg FillConfig) *Result {
	logrus.Debugf("Filling lock: lift=%.2fm, chamber=%.1fm x %.1fm, %d opening(s)",
		l.Lift(), l.Chamber.Width, l.Chamber.Length, len(l.Filling.Units))

	res := &Result{FinalLevel: l.Lower.Depth()}
	for step := range l.Steps(cfg) {
		res.Steps = append(res.Steps, step)
		for _, ev := range step.Events {
			res.Events = append(res.Events, TimedEvent{Iteration: step.Iteration, Time: step.Time, Event: ev})
		}
		res.FinalLevel = step.ChamberLevel
		res.FillingTime = step.Time
	}
	res.Converged = res.FinalLevel >= l.TargetLevel()

	if res.Converged {
		logrus.Debugf("Lock filled after %.0fs (%d steps)", res.FillingTime, len(res.Steps))
	} else {
		logrus.Debugf("Iteration cap %d reached at level %.3fm of %.3fm", cfg.MaxIterations, res.FinalLevel, l.TargetLevel())
	}
	return res
}
