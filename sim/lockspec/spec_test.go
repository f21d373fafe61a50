package lockspec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lock-sim/lock-sim/sim"
	"github.com/lock-sim/lock-sim/sim/trace"
)

const validYAML = `
version: "1"
chamber: {width: 12.5, length: 190}
upper_head: {surface: 10, sill: 0, channel_width: 40}
lower_head: {surface: 2, sill: 0, channel_width: 40}
openings:
  - {shape: rectangular, width: 2.3, height: 0.35, speed: 0.002, reference_height: 0, start_time: 0, count: 4}
simulation: {time_step: 1, max_iterations: 5000}
criteria:
  max_filling_time: 1260
  max_surface_slope: 0.4
  discharge: [-1, 58.26]
  discharge_rate: [-0.7299, 0.1962]
`

func writeSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lock.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadLockSpec_Valid(t *testing.T) {
	// GIVEN a complete lock file
	path := writeSpec(t, validYAML)

	// WHEN loaded and validated
	spec, err := LoadLockSpec(path)
	require.NoError(t, err)
	require.NoError(t, spec.Validate())

	// THEN every section is populated
	assert.Equal(t, 12.5, spec.Chamber.Width)
	assert.Equal(t, 10.0, spec.UpperHead.Surface)
	require.Len(t, spec.Openings, 1)
	assert.Equal(t, 4, spec.Openings[0].Count)
	require.NotNil(t, spec.Criteria)
	assert.Equal(t, []float64{-0.7299, 0.1962}, spec.Criteria.DischargeRate)
}

func TestLoadLockSpec_UnknownField_Rejected(t *testing.T) {
	// GIVEN a typo in a key
	path := writeSpec(t, "chamber: {width: 12.5, lenght: 190}\n")

	// THEN strict parsing fails
	_, err := LoadLockSpec(path)
	assert.Error(t, err)
}

func TestLoadLockSpec_MissingFile(t *testing.T) {
	_, err := LoadLockSpec(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading lock spec")
}

func TestParseLockSpec_DefaultsVersion(t *testing.T) {
	spec, err := ParseLockSpec([]byte("chamber: {width: 1, length: 1}\n"))
	require.NoError(t, err)
	assert.Equal(t, "1", spec.Version)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *LockSpec)
		want   string
	}{
		{"zero chamber width", func(s *LockSpec) { s.Chamber.Width = 0 }, "chamber.width"},
		{"surface below sill", func(s *LockSpec) { s.LowerHead.Sill = 5 }, "lower_head"},
		{"upper below lower", func(s *LockSpec) { s.UpperHead.Surface = 1 }, "upper_head.surface"},
		{"no openings", func(s *LockSpec) { s.Openings = nil }, "at least one opening"},
		{"unknown shape", func(s *LockSpec) { s.Openings[0].Shape = "circular" }, "unknown shape"},
		{"zero speed", func(s *LockSpec) { s.Openings[0].Speed = 0 }, "opening[0].speed"},
		{"negative start", func(s *LockSpec) { s.Openings[0].StartTime = -1 }, "start_time"},
		{"bad trace", func(s *LockSpec) { s.Simulation.Trace = "verbose" }, "simulation.trace"},
		{"bad bounds", func(s *LockSpec) { s.Criteria.Discharge = []float64{5, 1} }, "criteria.discharge"},
		{"bad version", func(s *LockSpec) { s.Version = "2" }, "unsupported version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ParseLockSpec([]byte(validYAML))
			require.NoError(t, err)
			tt.mutate(spec)
			err = spec.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBuild_ExpandsCount(t *testing.T) {
	spec, err := ParseLockSpec([]byte(validYAML))
	require.NoError(t, err)

	lock, err := spec.Build()
	require.NoError(t, err)

	require.Len(t, lock.Filling.Units, 4)
	rect, ok := lock.Filling.Units[3].Section.(*sim.RectangularFillingCrossSection)
	require.True(t, ok)
	assert.Equal(t, 2.3, rect.Width)
	assert.Equal(t, 0.35, rect.Height)
	assert.Equal(t, 0.002, rect.Speed)
	assert.Equal(t, 190.0, lock.Chamber.Length)
	assert.Equal(t, 40.0, lock.Lower.ChannelWidth)
}

func TestBuild_InvalidSpec(t *testing.T) {
	spec, err := ParseLockSpec([]byte(validYAML))
	require.NoError(t, err)
	spec.Chamber.Length = -1

	_, err = spec.Build()
	assert.Error(t, err)
}

func TestFillConfig_DefaultsAndTrace(t *testing.T) {
	spec, err := ParseLockSpec([]byte(validYAML))
	require.NoError(t, err)

	cfg := spec.FillConfig()
	assert.Equal(t, 1.0, cfg.TimeStep)
	assert.Equal(t, 5000, cfg.MaxIterations)
	assert.Nil(t, cfg.Trace)

	spec.Simulation = SimulationSpec{Trace: "discharge"}
	cfg = spec.FillConfig()
	assert.Equal(t, sim.DefaultTimeStep, cfg.TimeStep)
	assert.Equal(t, sim.DefaultMaxIterations, cfg.MaxIterations)
	require.NotNil(t, cfg.Trace)
	assert.Equal(t, trace.TraceLevelDischarge, cfg.Trace.Config.Level)
}

func TestWithOpeningDimensions_CopiesSpec(t *testing.T) {
	spec, err := ParseLockSpec([]byte(validYAML))
	require.NoError(t, err)

	variant := spec.WithOpeningDimensions(3, 0.5, 0.001)

	assert.Equal(t, 3.0, variant.Openings[0].Width)
	assert.Equal(t, 0.5, variant.Openings[0].Height)
	assert.Equal(t, 0.001, variant.Openings[0].Speed)
	assert.Equal(t, 4, variant.Openings[0].Count)
	// the receiver is untouched
	assert.Equal(t, 2.3, spec.Openings[0].Width)
}
