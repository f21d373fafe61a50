package sim

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lock-sim/lock-sim/sim/internal/testutil"
)

func TestNewMetrics_SyntheticResult(t *testing.T) {
	// GIVEN a hand-made result on a 10 m wide chamber
	lock := newTestLock(testutil.SmallLock, 1)
	res := &Result{
		Steps: []Step{
			{Iteration: 1, Time: 1, Discharge: 1, DischargeRate: 1},
			{Iteration: 2, Time: 2, Discharge: 3, DischargeRate: 2},
			{Iteration: 3, Time: 3, Discharge: 2, DischargeRate: -1},
		},
		Events: []TimedEvent{
			{Iteration: 1, Event: newEvent(0, StatusOpeningStarted)},
			{Iteration: 3, Event: newEvent(0, StatusFullyOpened)},
		},
		Converged:   true,
		FinalLevel:  10.2,
		FillingTime: 3,
	}

	// WHEN evaluated
	m := NewMetrics(lock, res)

	// THEN extremes and counts are taken over all steps
	assert.Equal(t, 3, m.Steps)
	assert.Equal(t, 3.0, m.MaxDischarge)
	assert.Equal(t, 1.0, m.MinDischarge)
	assert.Equal(t, 2.0, m.MaxDischargeRate)
	assert.Equal(t, -1.0, m.MinDischargeRate)
	assert.Equal(t, 1, m.FullyOpenedCount)
	assert.Equal(t, 2, m.EventCount)
	testutil.AssertFloat64Equal(t, "max slope", 2.0/(10*4*G)*1000, m.MaxSurfaceSlope, 1e-12)
}

func TestNewMetrics_EmptyResult(t *testing.T) {
	lock := newTestLock(testutil.SmallLock, 1)
	m := NewMetrics(lock, &Result{Converged: true, FinalLevel: 10})
	assert.Equal(t, 0, m.Steps)
	assert.Equal(t, 0.0, m.MaxSurfaceSlope)
	assert.True(t, m.Converged)
}

func TestMetrics_Print(t *testing.T) {
	lock := newTestLock(testutil.SmallLock, 1)
	m := NewMetrics(lock, lock.Fill(DefaultFillConfig()))

	var buf bytes.Buffer
	m.Print(&buf)

	assert.Contains(t, buf.String(), "=== Filling Metrics ===")
	assert.Contains(t, buf.String(), "Converged            : true")
}

func TestSurfaceSlope(t *testing.T) {
	// 1 m³/s² in a 12.5 m chamber
	assert.InDelta(t, 1000/(12.5*4*9.81), SurfaceSlope(12.5, 1), 1e-12)
	assert.Equal(t, 0.0, SurfaceSlope(12.5, 0))
}

func TestCalculatePercentile(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, 0.0, CalculatePercentile([]float64{}, 50))
	assert.Equal(t, 3.0, CalculatePercentile(data, 50))
	assert.Equal(t, 5.0, CalculatePercentile(data, 100))
	assert.InDelta(t, 4.8, CalculatePercentile(data, 95), 1e-12)
}
