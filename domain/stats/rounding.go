package stats

import (
	"math"
	"strconv"
)

// Rounding policy for statistics written to CSV and reports. Values are
// always formatted through these helpers so that a written table, once
// reloaded, reproduces the statistic exactly.
const (
	PlacesF    = 3 // F statistics
	PlacesP    = 4 // p-values
	PlacesEta  = 3 // eta squared
	PlacesMean = 2 // means, standard deviations, ranges
)

// Round rounds half away from zero to the given decimal places
func Round(v float64, places int) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}

// Format renders a statistic under the rounding policy. Infinite F values
// (exact group separation) render as "Inf".
func Format(v float64, places int) string {
	if math.IsInf(v, 1) {
		return "Inf"
	}
	if math.IsInf(v, -1) {
		return "-Inf"
	}
	return strconv.FormatFloat(Round(v, places), 'f', places, 64)
}
