package design

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// MaxFeasibleSpeed scans the speed range from fastest to slowest and returns the
// first feasible evaluation for the given opening width and height.
func (e *Evaluator) MaxFeasibleSpeed(ctx context.Context, width, height float64, speeds Range) (Evaluation, error) {
	n := speeds.Len()
	for i := n - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return Evaluation{}, err
		}
		ev, err := e.Evaluate(Dimensions{Width: width, Height: height, Speed: speeds.At(i)})
		if err != nil {
			return Evaluation{}, err
		}
		if ev.Feasible {
			logrus.Infof("Maximum feasible speed v=%.5f m/s (w=%.3f m, h=%.3f m)", ev.Speed, width, height)
			return ev, nil
		}
	}
	return Evaluation{}, fmt.Errorf("speed in [%g, %g] for w=%g h=%g: %w", speeds.Min, speeds.Max, width, height, ErrNoFeasibleDesign)
}

// Grid spans the candidate geometries of a sweep.
type Grid struct {
	Width  Range
	Height Range
	Speed  Range
}

// Size is the number of candidates in the grid.
func (g Grid) Size() int {
	return g.Width.Len() * g.Height.Len() * g.Speed.Len()
}

// At returns the i-th candidate; speed varies slowest and width fastest.
func (g Grid) At(i int) Dimensions {
	nw, nh := g.Width.Len(), g.Height.Len()
	return Dimensions{
		Width:  g.Width.At(i % nw),
		Height: g.Height.At((i / nw) % nh),
		Speed:  g.Speed.At(i / (nw * nh)),
	}
}

// Sweep evaluates every candidate of the grid on at most workers goroutines.
// Results are returned in grid order regardless of scheduling.
func (e *Evaluator) Sweep(ctx context.Context, grid Grid, workers int) ([]Evaluation, error) {
	out := make([]Evaluation, grid.Size())
	err := forEach(ctx, len(out), workers, func(_ context.Context, i int) error {
		ev, err := e.Evaluate(grid.At(i))
		if err != nil {
			return err
		}
		out[i] = ev
		return nil
	})
	if err != nil {
		return nil, err
	}
	logrus.Infof("Sweep evaluated %d candidates, %d feasible", len(out), countFeasible(out))
	return out, nil
}

func countFeasible(evs []Evaluation) int {
	n := 0
	for _, ev := range evs {
		if ev.Feasible {
			n++
		}
	}
	return n
}

// SpeedWindow is the band of feasible gate speeds for one opening geometry.
// MinSpeed and MaxSpeed are NaN when no speed is feasible; Reason then names the
// limit that dominates at the fastest speed.
type SpeedWindow struct {
	Width    float64
	Height   float64
	MinSpeed float64
	MaxSpeed float64
	Reason   Reason
}

// InteractionDiagram finds, for every width and height, the slowest and the fastest
// feasible gate speed.
func (e *Evaluator) InteractionDiagram(ctx context.Context, widths, heights, speeds Range, workers int) ([]SpeedWindow, error) {
	nw := widths.Len()
	out := make([]SpeedWindow, nw*heights.Len())
	err := forEach(ctx, len(out), workers, func(ctx context.Context, i int) error {
		w, h := widths.At(i%nw), heights.At(i/nw)
		win, err := e.speedWindow(ctx, w, h, speeds)
		if err != nil {
			return err
		}
		out[i] = win
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Evaluator) speedWindow(ctx context.Context, width, height float64, speeds Range) (SpeedWindow, error) {
	win := SpeedWindow{Width: width, Height: height, MinSpeed: math.NaN(), MaxSpeed: math.NaN()}
	n := speeds.Len()
	var fastest Evaluation
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return win, err
		}
		ev, err := e.Evaluate(Dimensions{Width: width, Height: height, Speed: speeds.At(i)})
		if err != nil {
			return win, err
		}
		fastest = ev
		if ev.Feasible {
			win.MinSpeed = ev.Speed
			break
		}
	}
	if math.IsNaN(win.MinSpeed) {
		win.Reason = e.Criteria.Limiting(fastest.Metrics)
		return win, nil
	}
	for i := n - 1; i >= 0; i-- {
		ev, err := e.Evaluate(Dimensions{Width: width, Height: height, Speed: speeds.At(i)})
		if err != nil {
			return win, err
		}
		if ev.Feasible {
			win.MaxSpeed = ev.Speed
			break
		}
	}
	return win, nil
}

// HeightResult is the smallest feasible opening height for one width and speed;
// MinHeight is NaN when no height in the range is feasible.
type HeightResult struct {
	Width     float64
	Speed     float64
	MinHeight float64
}

// MinimumHeight finds, for every width and speed, the lowest feasible opening height.
func (e *Evaluator) MinimumHeight(ctx context.Context, widths, speeds, heights Range, workers int) ([]HeightResult, error) {
	nw := widths.Len()
	out := make([]HeightResult, nw*speeds.Len())
	err := forEach(ctx, len(out), workers, func(ctx context.Context, i int) error {
		res := HeightResult{Width: widths.At(i % nw), Speed: speeds.At(i / nw), MinHeight: math.NaN()}
		for j := 0; j < heights.Len(); j++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			ev, err := e.Evaluate(Dimensions{Width: res.Width, Height: heights.At(j), Speed: res.Speed})
			if err != nil {
				return err
			}
			if ev.Feasible {
				res.MinHeight = ev.Height
				break
			}
		}
		out[i] = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
