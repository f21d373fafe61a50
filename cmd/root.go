package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lock-sim/lock-sim/sim"
	"github.com/lock-sim/lock-sim/sim/lockspec"
	"github.com/lock-sim/lock-sim/sim/report"
	"github.com/lock-sim/lock-sim/sim/trace"
)

var (
	logLevel   string // Log verbosity level
	configPath string // Path to the lock YAML

	// run overrides; zero keeps the value from the config file
	timeStep      float64 // Integration step (s)
	maxIterations int     // Iteration cap
	traceLevel    string  // Trace level override

	// run outputs; empty skips the file
	stepsOut   string
	eventsOut  string
	traceOut   string
	summaryOut string
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "lock-sim",
	Short: "Filling simulator for navigation lock chambers",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runOutputs names the files a run writes besides the stdout metrics.
type runOutputs struct {
	Steps   string
	Events  string
	Trace   string
	Summary string
}

// runCmd fills the lock described by --config and prints the filling metrics
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate filling one lock chamber",
	Run: func(cmd *cobra.Command, args []string) {
		spec := loadSpec(configPath)
		if cmd.Flags().Changed("time-step") {
			spec.Simulation.TimeStep = timeStep
		}
		if cmd.Flags().Changed("max-iterations") {
			spec.Simulation.MaxIterations = maxIterations
		}
		if cmd.Flags().Changed("trace") {
			spec.Simulation.Trace = traceLevel
		}
		if traceOut != "" && spec.Simulation.Trace == "" {
			spec.Simulation.Trace = string(trace.TraceLevelDischarge)
		}

		outputs := runOutputs{Steps: stepsOut, Events: eventsOut, Trace: traceOut, Summary: summaryOut}
		if err := runFill(spec, outputs, os.Stdout); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// loadSpec reads the lock YAML or exits.
func loadSpec(path string) *lockspec.LockSpec {
	if path == "" {
		logrus.Fatalf("--config is required")
	}
	spec, err := lockspec.LoadLockSpec(path)
	if err != nil {
		logrus.Fatalf("Failed to load lock spec: %v", err)
	}
	return spec
}

// runFill fills the lock, prints its metrics to stdout and writes the requested files.
func runFill(spec *lockspec.LockSpec, out runOutputs, stdout io.Writer) error {
	lock, err := spec.Build()
	if err != nil {
		return fmt.Errorf("invalid lock spec: %w", err)
	}
	cfg := spec.FillConfig()

	logrus.Infof("Starting simulation: lift=%.2fm, %d opening(s), dt=%gs, cap=%d",
		lock.Lift(), len(lock.Filling.Units), cfg.TimeStep, cfg.MaxIterations)
	startTime := time.Now()
	res := lock.Fill(cfg)
	logrus.Infof("Filled in %d steps (wall %s)", len(res.Steps), time.Since(startTime))
	if !res.Converged {
		logrus.Warnf("Iteration cap %d reached before the chamber was full", cfg.MaxIterations)
	}

	m := sim.NewMetrics(lock, res)
	m.Print(stdout)

	if out.Steps != "" {
		if err := report.WriteFile(out.Steps, func(w io.Writer) error { return report.WriteSteps(w, res.Steps) }); err != nil {
			return err
		}
	}
	if out.Events != "" {
		if err := report.WriteFile(out.Events, func(w io.Writer) error { return report.WriteEvents(w, res.Events) }); err != nil {
			return err
		}
	}
	if out.Trace != "" {
		if err := report.WriteFile(out.Trace, func(w io.Writer) error { return report.WriteTrace(w, cfg.Trace) }); err != nil {
			return err
		}
	}
	if out.Summary != "" {
		summary := report.NewSummary(lock, m, cfg.Trace)
		if err := report.WriteFile(out.Summary, summary.WriteJSON); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the lock YAML")

	runCmd.Flags().Float64Var(&timeStep, "time-step", sim.DefaultTimeStep, "Integration time step (s)")
	runCmd.Flags().IntVar(&maxIterations, "max-iterations", sim.DefaultMaxIterations, "Iteration cap")
	runCmd.Flags().StringVar(&traceLevel, "trace", "", "Trace level (none, discharge)")
	runCmd.Flags().StringVar(&stepsOut, "steps-out", "", "Write per-step CSV to this path")
	runCmd.Flags().StringVar(&eventsOut, "events-out", "", "Write status events CSV to this path")
	runCmd.Flags().StringVar(&traceOut, "trace-out", "", "Write per-unit discharge trace CSV to this path (enables tracing)")
	runCmd.Flags().StringVar(&summaryOut, "summary-out", "", "Write JSON run summary to this path")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(searchCmd)
}
