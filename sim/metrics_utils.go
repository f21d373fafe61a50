// sim/metrics_utils.go
package sim

import "math"

// SurfaceSlope converts a discharge rate of change into the longitudinal
// water-surface slope indicator (mm/m) of a chamber of the given width.
func SurfaceSlope(chamberWidth, dischargeRate float64) float64 {
	return dischargeRate / (chamberWidth * 4 * G) * 1000
}

type IntOrFloat64 interface {
	int | int64 | float64
}

// CalculatePercentile is a util function that calculates the p-th percentile of a
// sorted data list by linear interpolation between the neighbouring ranks.
func CalculatePercentile[T IntOrFloat64](data []T, p float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}

	rank := p / 100.0 * float64(n-1)
	lowerIdx := int(math.Floor(rank))
	upperIdx := int(math.Ceil(rank))

	if upperIdx >= n {
		return float64(data[n-1])
	}
	if lowerIdx == upperIdx {
		return float64(data[lowerIdx])
	}
	lowerVal := float64(data[lowerIdx])
	upperVal := float64(data[upperIdx])
	return lowerVal + (upperVal-lowerVal)*(rank-float64(lowerIdx))
}
