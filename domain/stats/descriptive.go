package stats

import (
	mstats "github.com/montanaflynn/stats"

	"liwclens/internal/errors"
)

// Summary captures the descriptive statistics reported for a score column
type Summary struct {
	N      int
	Mean   float64
	Std    float64
	Min    float64
	Max    float64
	Median float64
}

// Describe computes the standard descriptive summary of a value slice
func Describe(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, errors.InvalidInput("cannot describe an empty series")
	}
	mean, err := mstats.Mean(values)
	if err != nil {
		return Summary{}, errors.Wrap(err, "mean")
	}
	std := 0.0
	if len(values) > 1 {
		std, err = mstats.StandardDeviationSample(values)
		if err != nil {
			return Summary{}, errors.Wrap(err, "standard deviation")
		}
	}
	min, err := mstats.Min(values)
	if err != nil {
		return Summary{}, errors.Wrap(err, "min")
	}
	max, err := mstats.Max(values)
	if err != nil {
		return Summary{}, errors.Wrap(err, "max")
	}
	median, err := mstats.Median(values)
	if err != nil {
		return Summary{}, errors.Wrap(err, "median")
	}
	return Summary{
		N:      len(values),
		Mean:   mean,
		Std:    std,
		Min:    min,
		Max:    max,
		Median: median,
	}, nil
}

// Correlation computes the Pearson correlation of two equal-length series
func Correlation(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, errors.InvalidInput("correlation series must have equal length")
	}
	if len(x) < 2 {
		return 0, errors.InvalidInput("correlation needs at least two observations")
	}
	r, err := mstats.Pearson(x, y)
	if err != nil {
		return 0, errors.Wrap(err, "pearson correlation")
	}
	return r, nil
}

// Mean is a convenience wrapper returning 0 for an empty slice
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m, err := mstats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}
