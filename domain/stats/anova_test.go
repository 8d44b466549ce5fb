package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneWay_ExactSeparationIsSignificant(t *testing.T) {
	// Identical values within each group, large shift between groups.
	groups := map[string][]float64{
		"low":  {1, 1, 1, 1, 1},
		"high": {9, 9, 9, 9, 9},
	}

	out := OneWay(groups)

	require.False(t, out.Insufficient)
	assert.True(t, math.IsInf(out.FStatistic, 1))
	assert.Equal(t, 0.0, out.PValue)
	assert.True(t, ClassifySignificance(out.PValue).Significant())
	assert.InDelta(t, 1.0, out.EtaSquared, 1e-12)
}

func TestOneWay_EqualMeansNotSignificant(t *testing.T) {
	// Same spread around the same mean in both groups.
	groups := map[string][]float64{
		"a": {4, 5, 6, 5, 4, 6},
		"b": {5, 4, 6, 4, 6, 5},
	}

	out := OneWay(groups)

	require.False(t, out.Insufficient)
	assert.Greater(t, out.PValue, Alpha)
	assert.Equal(t, SigNone, ClassifySignificance(out.PValue))
}

func TestOneWay_AllIdentical(t *testing.T) {
	groups := map[string][]float64{
		"a": {3, 3, 3},
		"b": {3, 3, 3},
	}

	out := OneWay(groups)

	require.False(t, out.Insufficient)
	assert.Equal(t, 0.0, out.FStatistic)
	assert.Equal(t, 1.0, out.PValue)
}

func TestOneWay_ExcludesSmallGroups(t *testing.T) {
	groups := map[string][]float64{
		"a":    {1, 2, 3, 4},
		"b":    {2, 3, 4, 5},
		"tiny": {7},
	}

	out := OneWay(groups)

	require.False(t, out.Insufficient)
	assert.Len(t, out.Groups, 2)
	require.Len(t, out.Excluded, 1)
	assert.Equal(t, "tiny", out.Excluded[0].Value)
	assert.Equal(t, 1, out.Excluded[0].N)
	// Excluded observations do not enter the test.
	assert.Equal(t, 8, out.TotalN)
}

func TestOneWay_InsufficientGroups(t *testing.T) {
	groups := map[string][]float64{
		"only": {1, 2, 3},
		"tiny": {9},
	}

	out := OneWay(groups)

	assert.True(t, out.Insufficient)
	assert.Zero(t, out.FStatistic)
	assert.Len(t, out.Excluded, 1)
}

func TestOneWay_GroupOrderIsSorted(t *testing.T) {
	groups := map[string][]float64{
		"zebra": {1, 2},
		"apple": {3, 4},
		"mango": {5, 6},
	}

	out := OneWay(groups)

	require.Len(t, out.Groups, 3)
	assert.Equal(t, "apple", out.Groups[0].Value)
	assert.Equal(t, "mango", out.Groups[1].Value)
	assert.Equal(t, "zebra", out.Groups[2].Value)
}

func TestOneWay_LargerShiftLowersP(t *testing.T) {
	base := []float64{4.8, 5.1, 5.0, 4.9, 5.2, 5.0, 4.7, 5.3}
	shifted := func(d float64) []float64 {
		out := make([]float64, len(base))
		for i, v := range base {
			out[i] = v + d
		}
		return out
	}

	small := OneWay(map[string][]float64{"a": base, "b": shifted(0.2)})
	large := OneWay(map[string][]float64{"a": base, "b": shifted(3.0)})

	assert.Less(t, large.PValue, small.PValue)
	assert.GreaterOrEqual(t,
		ClassifySignificance(large.PValue).Rank(),
		ClassifySignificance(small.PValue).Rank())
}

func TestClassifySignificance_Thresholds(t *testing.T) {
	cases := []struct {
		p    float64
		want Significance
	}{
		{0.0005, SigHigh},
		{0.005, SigMedium},
		{0.03, SigLow},
		{0.05, SigNone},
		{0.5, SigNone},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifySignificance(tc.p), "p = %v", tc.p)
	}
}

func TestClassifyEffect_Bands(t *testing.T) {
	assert.Equal(t, EffectSmall, ClassifyEffect(0.02))
	assert.Equal(t, EffectMedium, ClassifyEffect(0.06))
	assert.Equal(t, EffectMedium, ClassifyEffect(0.10))
	assert.Equal(t, EffectLarge, ClassifyEffect(0.14))
	assert.Equal(t, EffectLarge, ClassifyEffect(0.5))
}

func TestDescribe_BasicStats(t *testing.T) {
	sum, err := Describe([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.NoError(t, err)

	assert.Equal(t, 8, sum.N)
	assert.InDelta(t, 5.0, sum.Mean, 1e-12)
	assert.InDelta(t, 2.0, sum.Min, 1e-12)
	assert.InDelta(t, 9.0, sum.Max, 1e-12)
	assert.InDelta(t, 4.5, sum.Median, 1e-12)
	assert.Greater(t, sum.Std, 0.0)
}

func TestDescribe_EmptySeries(t *testing.T) {
	_, err := Describe(nil)
	assert.Error(t, err)
}

func TestCorrelation_PerfectLinear(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 6, 8, 10}

	r, err := Correlation(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 1e-9)
}

func TestFormat_RoundingPolicy(t *testing.T) {
	assert.Equal(t, "3.142", Format(math.Pi, PlacesF))
	assert.Equal(t, "0.0500", Format(0.05, PlacesP))
	assert.Equal(t, "Inf", Format(math.Inf(1), PlacesF))
	assert.Equal(t, "0.13", Format(0.125, PlacesMean)) // half away from zero
}
