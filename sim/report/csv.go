// Package report writes simulation and design-search results as CSV and JSON.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/lock-sim/lock-sim/sim"
	"github.com/lock-sim/lock-sim/sim/design"
	"github.com/lock-sim/lock-sim/sim/trace"
)

func f64(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// writeCSV writes a header and rows, flushing at the end.
func writeCSV(w io.Writer, header []string, rows func(emit func(...string) error) error) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := rows(func(rec ...string) error { return cw.Write(rec) }); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteSteps writes one row per simulation step.
func WriteSteps(w io.Writer, steps []sim.Step) error {
	header := []string{"iteration", "time", "chamber_level", "discharge", "discharge_rate"}
	return writeCSV(w, header, func(emit func(...string) error) error {
		for _, s := range steps {
			if err := emit(strconv.Itoa(s.Iteration), f64(s.Time), f64(s.ChamberLevel), f64(s.Discharge), f64(s.DischargeRate)); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteEvents writes one row per status change.
func WriteEvents(w io.Writer, events []sim.TimedEvent) error {
	header := []string{"time", "iteration", "unit", "code", "status"}
	return writeCSV(w, header, func(emit func(...string) error) error {
		for _, ev := range events {
			if err := emit(f64(ev.Time), strconv.Itoa(ev.Iteration), strconv.Itoa(ev.Unit), ev.Code, ev.Status.String()); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteTrace writes the per-unit discharge records of a traced run.
func WriteTrace(w io.Writer, st *trace.SimulationTrace) error {
	header := []string{"iteration", "time", "unit", "regime", "mu_weir", "mu_submerged", "mu_blend", "discharge"}
	return writeCSV(w, header, func(emit func(...string) error) error {
		if st == nil {
			return nil
		}
		for _, r := range st.Discharges {
			if err := emit(strconv.Itoa(r.Iteration), f64(r.Time), strconv.Itoa(r.Unit), r.Regime,
				f64(r.MuWeir), f64(r.MuSubmerged), f64(r.MuBlend), f64(r.Discharge)); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteEvaluations writes the candidates of a sweep.
func WriteEvaluations(w io.Writer, evs []design.Evaluation) error {
	header := []string{"width", "height", "speed", "filling_time", "max_surface_slope", "fully_opened", "feasible", "reason"}
	return writeCSV(w, header, func(emit func(...string) error) error {
		for _, ev := range evs {
			var fillingTime, slope float64
			var opened int
			if ev.Metrics != nil {
				fillingTime, slope, opened = ev.Metrics.FillingTime, ev.Metrics.MaxSurfaceSlope, ev.Metrics.FullyOpenedCount
			}
			if err := emit(f64(ev.Width), f64(ev.Height), f64(ev.Speed), f64(fillingTime), f64(slope),
				strconv.Itoa(opened), strconv.FormatBool(ev.Feasible), string(ev.Reason)); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteSpeedWindows writes an interaction diagram.
func WriteSpeedWindows(w io.Writer, wins []design.SpeedWindow) error {
	header := []string{"width", "height", "min_speed", "max_speed", "reason"}
	return writeCSV(w, header, func(emit func(...string) error) error {
		for _, win := range wins {
			if err := emit(f64(win.Width), f64(win.Height), f64(win.MinSpeed), f64(win.MaxSpeed), string(win.Reason)); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteHeights writes minimum opening heights.
func WriteHeights(w io.Writer, res []design.HeightResult) error {
	header := []string{"width", "speed", "min_height"}
	return writeCSV(w, header, func(emit func(...string) error) error {
		for _, r := range res {
			if err := emit(f64(r.Width), f64(r.Speed), f64(r.MinHeight)); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteFile creates path and fills it with write.
func WriteFile(path string, write func(w io.Writer) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, closeErr)
		}
	}()
	if err := write(file); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logrus.Infof("Successfully wrote to %s", path)
	return nil
}
