package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// MinGroupSize is the smallest group that may enter a variance test.
// Smaller groups are excluded and flagged rather than failing the run.
const MinGroupSize = 2

// Outcome is the raw result of a one-way ANOVA across named groups
type Outcome struct {
	FStatistic float64
	PValue     float64
	DFBetween  int
	DFWithin   int
	EtaSquared float64

	TotalN      int
	OverallMean float64
	OverallStd  float64

	Groups   []GroupStat
	Excluded []GroupStat

	// Insufficient means fewer than two groups had MinGroupSize
	// observations; no F or p was computed.
	Insufficient bool
}

// OneWay runs a one-way ANOVA testing whether the group means differ.
// Group order in the result is sorted by group name for determinism.
func OneWay(groups map[string][]float64) Outcome {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	var out Outcome
	var used [][]float64
	var all []float64

	for _, name := range names {
		vals := groups[name]
		if len(vals) == 0 {
			continue
		}
		gs := groupStat(name, vals)
		if len(vals) < MinGroupSize {
			out.Excluded = append(out.Excluded, gs)
			continue
		}
		out.Groups = append(out.Groups, gs)
		used = append(used, vals)
		all = append(all, vals...)
	}

	if len(used) < 2 {
		out.Insufficient = true
		return out
	}

	sum, err := Describe(all)
	if err != nil {
		out.Insufficient = true
		return out
	}
	out.TotalN = sum.N
	out.OverallMean = sum.Mean
	out.OverallStd = sum.Std

	grandMean := sum.Mean

	// Between-group and within-group sums of squares.
	var ssb, ssw float64
	for i, vals := range used {
		gm := out.Groups[i].Mean
		ssb += float64(len(vals)) * (gm - grandMean) * (gm - grandMean)
		for _, v := range vals {
			ssw += (v - gm) * (v - gm)
		}
	}

	out.DFBetween = len(used) - 1
	out.DFWithin = len(all) - len(used)

	msb := ssb / float64(out.DFBetween)
	msw := ssw / float64(out.DFWithin)

	switch {
	case msw > 0:
		out.FStatistic = msb / msw
		fDist := distuv.F{D1: float64(out.DFBetween), D2: float64(out.DFWithin)}
		out.PValue = 1 - fDist.CDF(out.FStatistic)
	case msb > 0:
		// Zero within-group variance with distinct group means: the
		// separation is exact, so the tail probability is zero.
		out.FStatistic = math.Inf(1)
		out.PValue = 0
	default:
		// All observations identical.
		out.FStatistic = 0
		out.PValue = 1
	}

	sst := ssb + ssw
	if sst > 0 {
		out.EtaSquared = ssb / sst
	}

	return out
}

func groupStat(name string, vals []float64) GroupStat {
	sum, err := Describe(vals)
	if err != nil {
		return GroupStat{Value: name, N: len(vals)}
	}
	return GroupStat{
		Value:  name,
		N:      sum.N,
		Mean:   sum.Mean,
		Std:    sum.Std,
		Min:    sum.Min,
		Max:    sum.Max,
		Median: sum.Median,
	}
}
