package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lock-sim/lock-sim/sim/design"
	"github.com/lock-sim/lock-sim/sim/report"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search opening dimensions and gate speeds against the criteria",
	Long:  "Fill variants of the lock in --config, replacing every opening's width, height and speed, and check them against the criteria section. Ranges are given as min,max,steps.",
}

var (
	widthRange  []float64
	heightRange []float64
	speedRange  []float64
	workers     int
	searchOut   string
)

// --- lock-sim search speed ---

var searchSpeedCmd = &cobra.Command{
	Use:   "speed",
	Short: "Find the fastest feasible gate speed for one opening",
	Run: func(cmd *cobra.Command, args []string) {
		ev := newEvaluator()
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		widths, heights, speeds := mustRange("width", widthRange), mustRange("height", heightRange), mustRange("speed", speedRange)
		best, err := ev.MaxFeasibleSpeed(ctx, widths.Min, heights.Min, speeds)
		if err != nil {
			logrus.Fatalf("Speed search failed: %v", err)
		}
		fmt.Printf("max feasible speed: %g m/s (filling time %.0f s, max slope %.4f mm/m)\n",
			best.Speed, best.Metrics.FillingTime, best.Metrics.MaxSurfaceSlope)
		writeSearchOut(func(w io.Writer) error { return report.WriteEvaluations(w, []design.Evaluation{best}) })
	},
}

// --- lock-sim search grid ---

var searchGridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Evaluate every width, height and speed combination",
	Run: func(cmd *cobra.Command, args []string) {
		ev := newEvaluator()
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		grid := design.Grid{Width: mustRange("width", widthRange), Height: mustRange("height", heightRange), Speed: mustRange("speed", speedRange)}
		logrus.Infof("Sweeping %d candidates", grid.Size())
		evs, err := ev.Sweep(ctx, grid, workers)
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
		writeSearchOut(func(w io.Writer) error { return report.WriteEvaluations(w, evs) })
	},
}

// --- lock-sim search interaction ---

var searchInteractionCmd = &cobra.Command{
	Use:   "interaction",
	Short: "Find the feasible speed window for every width and height",
	Run: func(cmd *cobra.Command, args []string) {
		ev := newEvaluator()
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		wins, err := ev.InteractionDiagram(ctx, mustRange("width", widthRange), mustRange("height", heightRange), mustRange("speed", speedRange), workers)
		if err != nil {
			logrus.Fatalf("Interaction diagram failed: %v", err)
		}
		writeSearchOut(func(w io.Writer) error { return report.WriteSpeedWindows(w, wins) })
	},
}

// --- lock-sim search height ---

var searchHeightCmd = &cobra.Command{
	Use:   "height",
	Short: "Find the lowest feasible opening height for every width and speed",
	Run: func(cmd *cobra.Command, args []string) {
		ev := newEvaluator()
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		res, err := ev.MinimumHeight(ctx, mustRange("width", widthRange), mustRange("speed", speedRange), mustRange("height", heightRange), workers)
		if err != nil {
			logrus.Fatalf("Height search failed: %v", err)
		}
		writeSearchOut(func(w io.Writer) error { return report.WriteHeights(w, res) })
	},
}

// newEvaluator loads --config and its criteria section, or exits.
func newEvaluator() *design.Evaluator {
	spec := loadSpec(configPath)
	if spec.Criteria == nil {
		logrus.Fatalf("%s has no criteria section; searches need one", configPath)
	}
	if err := spec.Validate(); err != nil {
		logrus.Fatalf("Invalid lock spec: %v", err)
	}
	return design.NewEvaluator(spec, design.CriteriaFromSpec(spec.Criteria))
}

// parseRange converts a min,max,steps flag value.
func parseRange(name string, vals []float64) (design.Range, error) {
	switch len(vals) {
	case 1:
		return design.Range{Min: vals[0], Max: vals[0], Steps: 1}, nil
	case 3:
	default:
		return design.Range{}, fmt.Errorf("--%s takes min,max,steps or a single value, got %d values", name, len(vals))
	}
	r := design.Range{Min: vals[0], Max: vals[1], Steps: int(vals[2])}
	if r.Min <= 0 || r.Max < r.Min {
		return design.Range{}, fmt.Errorf("--%s: need 0 < min <= max, got %g,%g", name, r.Min, r.Max)
	}
	if r.Steps < 1 || float64(r.Steps) != vals[2] {
		return design.Range{}, fmt.Errorf("--%s: steps must be a positive integer, got %g", name, vals[2])
	}
	return r, nil
}

func mustRange(name string, vals []float64) design.Range {
	r, err := parseRange(name, vals)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	return r
}

// writeSearchOut writes the result CSV to --out, or to stdout when unset.
func writeSearchOut(write func(w io.Writer) error) {
	if searchOut == "" {
		if err := write(os.Stdout); err != nil {
			logrus.Fatalf("Writing results failed: %v", err)
		}
		return
	}
	if err := report.WriteFile(searchOut, write); err != nil {
		logrus.Fatalf("%v", err)
	}
}

func init() {
	searchCmd.PersistentFlags().Float64SliceVar(&widthRange, "width", nil, "Opening width range (m) as min,max,steps")
	searchCmd.PersistentFlags().Float64SliceVar(&heightRange, "height", nil, "Opening height range (m) as min,max,steps")
	searchCmd.PersistentFlags().Float64SliceVar(&speedRange, "speed", nil, "Gate speed range (m/s) as min,max,steps")
	searchCmd.PersistentFlags().IntVar(&workers, "workers", 0, "Concurrent evaluations (0 = GOMAXPROCS)")
	searchCmd.PersistentFlags().StringVar(&searchOut, "out", "", "Write results CSV to this path (default stdout)")

	searchCmd.AddCommand(searchSpeedCmd)
	searchCmd.AddCommand(searchGridCmd)
	searchCmd.AddCommand(searchInteractionCmd)
	searchCmd.AddCommand(searchHeightCmd)
}
