package design

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lock-sim/lock-sim/sim"
	"github.com/lock-sim/lock-sim/sim/lockspec"
)

// ErrNoFeasibleDesign is returned when no candidate satisfies the criteria.
var ErrNoFeasibleDesign = errors.New("no feasible design")

// Dimensions is the geometry and gate speed applied to every opening of a lock.
type Dimensions struct {
	Width  float64 // m
	Height float64 // m
	Speed  float64 // m/s
}

// Evaluation is the outcome of filling one candidate.
type Evaluation struct {
	Dimensions
	Metrics  *sim.Metrics
	Feasible bool
	Reason   Reason
}

// Evaluator fills lock variants derived from a base spec.
type Evaluator struct {
	Base     *lockspec.LockSpec
	Criteria Criteria
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(base *lockspec.LockSpec, criteria Criteria) *Evaluator {
	return &Evaluator{Base: base, Criteria: criteria}
}

// Evaluate fills the base lock with every opening replaced by d and checks the criteria.
func (e *Evaluator) Evaluate(d Dimensions) (Evaluation, error) {
	spec := e.Base.WithOpeningDimensions(d.Width, d.Height, d.Speed)
	lock, err := spec.Build()
	if err != nil {
		return Evaluation{}, fmt.Errorf("building candidate %+v: %w", d, err)
	}
	cfg := spec.FillConfig()
	cfg.Trace = nil

	m := sim.NewMetrics(lock, lock.Fill(cfg))
	reason := e.Criteria.Check(m)
	if reason != ReasonNone {
		logrus.Debugf("candidate w=%.3f h=%.3f v=%.5f rejected: %s", d.Width, d.Height, d.Speed, reason)
	}
	return Evaluation{
		Dimensions: d,
		Metrics:    m,
		Feasible:   reason == ReasonNone,
		Reason:     reason,
	}, nil
}
