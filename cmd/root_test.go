package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lock-sim/lock-sim/sim/design"
	"github.com/lock-sim/lock-sim/sim/lockspec"
)

const smallLockYAML = `
version: "1"
chamber: {width: 10, length: 100}
upper_head: {surface: 10, sill: 0}
lower_head: {surface: 2, sill: 0}
openings:
  - {width: 2, height: 1, speed: 0.001}
`

func parseSpec(t *testing.T, doc string) *lockspec.LockSpec {
	t.Helper()
	spec, err := lockspec.ParseLockSpec([]byte(doc))
	require.NoError(t, err)
	return spec
}

func TestRunFill_MetricsPrintedToStdout(t *testing.T) {
	// GIVEN a valid lock
	spec := parseSpec(t, smallLockYAML)

	// WHEN it is filled without file outputs
	var stdout bytes.Buffer
	err := runFill(spec, runOutputs{}, &stdout)

	// THEN the metrics block MUST appear on stdout
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Filling Metrics")
	assert.Contains(t, stdout.String(), "Converged            : true")
}

func TestRunFill_WritesRequestedFiles(t *testing.T) {
	// GIVEN a traced run with every output requested
	spec := parseSpec(t, smallLockYAML)
	spec.Simulation.Trace = "discharge"
	dir := t.TempDir()
	out := runOutputs{
		Steps:   filepath.Join(dir, "steps.csv"),
		Events:  filepath.Join(dir, "events.csv"),
		Trace:   filepath.Join(dir, "trace.csv"),
		Summary: filepath.Join(dir, "summary.json"),
	}

	// WHEN the lock is filled
	require.NoError(t, runFill(spec, out, &bytes.Buffer{}))

	// THEN every file exists with its header or content
	steps, err := os.ReadFile(out.Steps)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(steps), "iteration,time,chamber_level"))

	events, err := os.ReadFile(out.Events)
	require.NoError(t, err)
	assert.Contains(t, string(events), ",OS,opening-started")
	assert.Contains(t, string(events), ",FO,fully-opened")

	tr, err := os.ReadFile(out.Trace)
	require.NoError(t, err)
	assert.Greater(t, strings.Count(string(tr), "\n"), 1)

	summary, err := os.ReadFile(out.Summary)
	require.NoError(t, err)
	assert.Contains(t, string(summary), `"run_id"`)
	assert.Contains(t, string(summary), `"converged": true`)
}

func TestRunFill_InvalidSpec_ReturnsError(t *testing.T) {
	// GIVEN a lock without openings
	spec := parseSpec(t, `
chamber: {width: 10, length: 100}
upper_head: {surface: 10, sill: 0}
lower_head: {surface: 2, sill: 0}
`)

	// WHEN it is filled
	err := runFill(spec, runOutputs{}, &bytes.Buffer{})

	// THEN the validation error is reported and nothing is printed
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one opening")
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		name    string
		vals    []float64
		want    design.Range
		wantErr bool
	}{
		{name: "single value", vals: []float64{2}, want: design.Range{Min: 2, Max: 2, Steps: 1}},
		{name: "min max steps", vals: []float64{1, 3, 5}, want: design.Range{Min: 1, Max: 3, Steps: 5}},
		{name: "two values", vals: []float64{1, 3}, wantErr: true},
		{name: "empty", vals: nil, wantErr: true},
		{name: "max below min", vals: []float64{3, 1, 2}, wantErr: true},
		{name: "non-positive min", vals: []float64{0, 1, 2}, wantErr: true},
		{name: "fractional steps", vals: []float64{1, 2, 2.5}, wantErr: true},
		{name: "zero steps", vals: []float64{1, 2, 0}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseRange("width", tc.vals)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["run"])
	assert.True(t, names["search"])

	sub := map[string]bool{}
	for _, c := range searchCmd.Commands() {
		sub[c.Name()] = true
	}
	for _, name := range []string{"speed", "grid", "interaction", "height"} {
		assert.True(t, sub[name], "missing search %s", name)
	}
}
