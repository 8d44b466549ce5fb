package plot

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// kdePoints is the resolution of the density curve along the value axis.
const kdePoints = 64

// densityCurve estimates a Gaussian kernel density over the sample range
// using Silverman's rule of thumb for the bandwidth. It returns grid
// positions and the density at each.
func densityCurve(values []float64) (grid, density []float64) {
	n := len(values)
	if n == 0 {
		return nil, nil
	}

	_, std := stat.MeanStdDev(values, nil)
	if math.IsNaN(std) || std == 0 {
		// Degenerate sample: render a thin spike around the single value.
		std = math.Max(math.Abs(values[0])*0.01, 0.01)
	}
	bw := 1.06 * std * math.Pow(float64(n), -0.2)

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	lo -= 2 * bw
	hi += 2 * bw

	grid = make([]float64, kdePoints)
	density = make([]float64, kdePoints)
	step := (hi - lo) / float64(kdePoints-1)
	norm := 1.0 / (float64(n) * bw * math.Sqrt(2*math.Pi))
	for i := 0; i < kdePoints; i++ {
		x := lo + float64(i)*step
		grid[i] = x
		var d float64
		for _, v := range values {
			z := (x - v) / bw
			d += math.Exp(-0.5 * z * z)
		}
		density[i] = d * norm
	}
	return grid, density
}
