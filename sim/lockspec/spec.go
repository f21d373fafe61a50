// Package lockspec loads lock descriptions from YAML and builds sim.Lock values.
package lockspec

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lock-sim/lock-sim/sim"
	"github.com/lock-sim/lock-sim/sim/trace"
)

// ShapeRectangular is the only opening shape currently supported.
const ShapeRectangular = "rectangular"

var validShapes = map[string]bool{
	ShapeRectangular: true,
	"":               true, // empty defaults to rectangular
}

// LockSpec is the top-level lock configuration.
// Loaded from YAML via LoadLockSpec(path).
type LockSpec struct {
	Version    string         `yaml:"version"`
	Chamber    ChamberSpec    `yaml:"chamber"`
	UpperHead  HeadSpec       `yaml:"upper_head"`
	LowerHead  HeadSpec       `yaml:"lower_head"`
	Openings   []OpeningSpec  `yaml:"openings"`
	Simulation SimulationSpec `yaml:"simulation"`
	Criteria   *CriteriaSpec  `yaml:"criteria,omitempty"`
}

// ChamberSpec is the plan geometry of the chamber.
type ChamberSpec struct {
	Width  float64 `yaml:"width"`
	Length float64 `yaml:"length"`
}

// HeadSpec describes one head: water surface, sill and approach channel width.
type HeadSpec struct {
	Surface      float64 `yaml:"surface"`
	Sill         float64 `yaml:"sill"`
	ChannelWidth float64 `yaml:"channel_width"`
}

// OpeningSpec describes Count identical filling openings.
type OpeningSpec struct {
	Shape           string  `yaml:"shape"`
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	Speed           float64 `yaml:"speed"`
	ReferenceHeight float64 `yaml:"reference_height"`
	StartTime       float64 `yaml:"start_time"`
	Count           int     `yaml:"count,omitempty"` // 0 = 1
}

// SimulationSpec holds the integration settings; zero values take the sim defaults.
type SimulationSpec struct {
	TimeStep      float64 `yaml:"time_step,omitempty"`
	MaxIterations int     `yaml:"max_iterations,omitempty"`
	Trace         string  `yaml:"trace,omitempty"` // "none" or "discharge"
}

// CriteriaSpec holds the acceptance limits used by design searches.
type CriteriaSpec struct {
	MaxFillingTime  float64   `yaml:"max_filling_time"`
	MaxSurfaceSlope float64   `yaml:"max_surface_slope"`
	Discharge       []float64 `yaml:"discharge,omitempty"`      // [min, max] m³/s
	DischargeRate   []float64 `yaml:"discharge_rate,omitempty"` // [min, max] m³/s²
}

// LoadLockSpec reads and parses a lock configuration. Unknown keys are errors.
func LoadLockSpec(path string) (*LockSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lock spec: %w", err)
	}
	return ParseLockSpec(data)
}

// ParseLockSpec parses a lock configuration from YAML bytes.
func ParseLockSpec(data []byte) (*LockSpec, error) {
	var spec LockSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing lock spec: %w", err)
	}
	if spec.Version == "" {
		spec.Version = "1"
	}
	return &spec, nil
}

// Validate checks that all fields in the spec are valid.
func (s *LockSpec) Validate() error {
	if s.Version != "1" {
		return fmt.Errorf("unsupported version %q; valid: 1", s.Version)
	}
	if err := validateFinitePositive("chamber.width", s.Chamber.Width); err != nil {
		return err
	}
	if err := validateFinitePositive("chamber.length", s.Chamber.Length); err != nil {
		return err
	}
	if err := validateHead("upper_head", s.UpperHead); err != nil {
		return err
	}
	if err := validateHead("lower_head", s.LowerHead); err != nil {
		return err
	}
	if s.UpperHead.Surface < s.LowerHead.Surface {
		return fmt.Errorf("upper_head.surface (%g) must not lie below lower_head.surface (%g)",
			s.UpperHead.Surface, s.LowerHead.Surface)
	}
	if len(s.Openings) == 0 {
		return fmt.Errorf("at least one opening required")
	}
	for i, o := range s.Openings {
		if err := validateOpening(&o, i); err != nil {
			return err
		}
	}
	if err := s.Simulation.validate(); err != nil {
		return err
	}
	if s.Criteria != nil {
		return s.Criteria.validate()
	}
	return nil
}

func validateHead(prefix string, h HeadSpec) error {
	if h.Surface < h.Sill {
		return fmt.Errorf("%s: surface (%g) must not lie below sill (%g)", prefix, h.Surface, h.Sill)
	}
	if h.ChannelWidth < 0 {
		return fmt.Errorf("%s.channel_width must be non-negative, got %g", prefix, h.ChannelWidth)
	}
	return nil
}

func validateOpening(o *OpeningSpec, idx int) error {
	prefix := fmt.Sprintf("opening[%d]", idx)
	if !validShapes[o.Shape] {
		return fmt.Errorf("%s: unknown shape %q; valid: rectangular", prefix, o.Shape)
	}
	if err := validateFinitePositive(prefix+".width", o.Width); err != nil {
		return err
	}
	if err := validateFinitePositive(prefix+".height", o.Height); err != nil {
		return err
	}
	if err := validateFinitePositive(prefix+".speed", o.Speed); err != nil {
		return err
	}
	if o.StartTime < 0 {
		return fmt.Errorf("%s.start_time must be non-negative, got %g", prefix, o.StartTime)
	}
	if o.Count < 0 {
		return fmt.Errorf("%s.count must be non-negative, got %d", prefix, o.Count)
	}
	return nil
}

func (s SimulationSpec) validate() error {
	if s.TimeStep < 0 || math.IsNaN(s.TimeStep) || math.IsInf(s.TimeStep, 0) {
		return fmt.Errorf("simulation.time_step must be a finite positive number, got %g", s.TimeStep)
	}
	if s.MaxIterations < 0 {
		return fmt.Errorf("simulation.max_iterations must be non-negative, got %d", s.MaxIterations)
	}
	if !trace.IsValidTraceLevel(s.Trace) {
		return fmt.Errorf("simulation.trace: unknown level %q; valid: none, discharge", s.Trace)
	}
	return nil
}

func (c *CriteriaSpec) validate() error {
	if err := validateFinitePositive("criteria.max_filling_time", c.MaxFillingTime); err != nil {
		return err
	}
	if err := validateFinitePositive("criteria.max_surface_slope", c.MaxSurfaceSlope); err != nil {
		return err
	}
	if err := validateBounds("criteria.discharge", c.Discharge); err != nil {
		return err
	}
	return validateBounds("criteria.discharge_rate", c.DischargeRate)
}

func validateBounds(name string, b []float64) error {
	if len(b) == 0 {
		return nil
	}
	if len(b) != 2 {
		return fmt.Errorf("%s must have exactly 2 elements [min, max], got %d", name, len(b))
	}
	if b[0] > b[1] {
		return fmt.Errorf("%s: min (%g) exceeds max (%g)", name, b[0], b[1])
	}
	return nil
}

func validateFinitePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%s must be a finite positive number, got %g", name, v)
	}
	return nil
}

// Build validates the spec and constructs the lock it describes.
func (s *LockSpec) Build() (*sim.Lock, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	var units []*sim.FillingCrossSectionUnit
	for _, o := range s.Openings {
		for range max(o.Count, 1) {
			section := sim.NewRectangularFillingCrossSection(o.Speed, o.Width, o.Height)
			units = append(units, sim.NewFillingCrossSectionUnit(section, o.ReferenceHeight, o.StartTime))
		}
	}
	return sim.NewLock(
		sim.LockChamber{Width: s.Chamber.Width, Length: s.Chamber.Length},
		sim.UpperHead{Surface: s.UpperHead.Surface, Sill: s.UpperHead.Sill, ChannelWidth: s.UpperHead.ChannelWidth},
		sim.LowerHead{Surface: s.LowerHead.Surface, Sill: s.LowerHead.Sill, ChannelWidth: s.LowerHead.ChannelWidth},
		sim.NewFillingSystem(units...),
	), nil
}

// FillConfig returns the run configuration with defaults applied and a trace
// attached when the spec asks for one.
func (s *LockSpec) FillConfig() sim.FillConfig {
	cfg := sim.DefaultFillConfig()
	if s.Simulation.TimeStep > 0 {
		cfg.TimeStep = s.Simulation.TimeStep
	}
	if s.Simulation.MaxIterations > 0 {
		cfg.MaxIterations = s.Simulation.MaxIterations
	}
	if trace.TraceLevel(s.Simulation.Trace) == trace.TraceLevelDischarge {
		cfg.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDischarge})
	}
	return cfg
}

// WithOpeningDimensions returns a copy of the spec in which every opening has the
// given width, height and speed. Position, start time and count are kept.
func (s *LockSpec) WithOpeningDimensions(width, height, speed float64) *LockSpec {
	out := *s
	out.Openings = make([]OpeningSpec, len(s.Openings))
	for i, o := range s.Openings {
		o.Width, o.Height, o.Speed = width, height, speed
		out.Openings[i] = o
	}
	return &out
}
