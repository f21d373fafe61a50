// Package trace records per-unit discharge details of a filling run.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// TraceLevel controls the verbosity of discharge tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDischarge captures loss coefficients and discharge of every unit at every step.
	TraceLevelDischarge TraceLevel = "discharge"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDischarge: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects discharge records during a filling run.
type SimulationTrace struct {
	Config     TraceConfig
	Discharges []DischargeRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:     config,
		Discharges: make([]DischargeRecord, 0),
	}
}

// Enabled reports whether records should be collected. Safe on a nil trace.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelDischarge
}

// RecordDischarge appends a discharge record.
func (st *SimulationTrace) RecordDischarge(record DischargeRecord) {
	st.Discharges = append(st.Discharges, record)
}
