// Package testutil provides shared test infrastructure for the lock filling simulator.
// It consolidates reference geometries and float assertion helpers used across
// sim/ and its sub-package tests. It has no dependency on sim/ so that package-internal
// tests of sim can import it.
package testutil

import (
	"math"
	"testing"
)

// ReferenceGeometry is the plain-number description of a lock used by several tests.
type ReferenceGeometry struct {
	ChamberWidth, ChamberLength float64
	UpperSurface, UpperSill     float64
	LowerSurface, LowerSill     float64
	OpeningWidth, OpeningHeight float64
	OpeningSpeed                float64
	ReferenceHeight, StartTime  float64
}

// SmallLock is a 10 m x 100 m chamber lifted from 2 m to 10 m through one
// 2 m x 1 m gate that opens at 1 mm/s from t=0.
var SmallLock = ReferenceGeometry{
	ChamberWidth:  10,
	ChamberLength: 100,
	UpperSurface:  10,
	LowerSurface:  2,
	OpeningWidth:  2,
	OpeningHeight: 1,
	OpeningSpeed:  0.001,
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
