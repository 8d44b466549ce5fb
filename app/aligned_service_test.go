package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liwclens/domain/liwc"
	"liwclens/internal"
	"liwclens/internal/testkit"
)

func TestBuildAlignedPanels_ShareOneYScale(t *testing.T) {
	table := testkit.NewGenerator(shiftedFixture()).Generate()

	results, err := ComputeGroupTests(table, liwc.ColEmpathyScore)
	require.NoError(t, err)
	byCell := indexResults(results)
	empathyTypes := orderedEmpathyTypes(table)
	attrTypes, err := table.DistinctSorted(liwc.ColAttributeType)
	require.NoError(t, err)

	svc := NewAlignedService(newTestConfig(t), internal.NewLogger(internal.LogLevelError))
	panels, err := svc.buildAlignedPanels(table, byCell, empathyTypes, attrTypes)
	require.NoError(t, err)
	require.Len(t, panels, len(empathyTypes))

	// Every panel carries the identical y range, so violin heights are
	// directly comparable between panels as the interpretation guide says.
	first := panels[0].Plot
	for _, panel := range panels[1:] {
		assert.Equal(t, first.Y.Min, panel.Plot.Y.Min)
		assert.Equal(t, first.Y.Max, panel.Plot.Y.Max)
	}

	// The shared range brackets the full score column.
	scores, err := table.Floats(liwc.ColEmpathyScore)
	require.NoError(t, err)
	lo, hi := scores[0], scores[0]
	for _, v := range scores {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	assert.Less(t, first.Y.Min, lo)
	assert.Greater(t, first.Y.Max, hi)
}

func TestSharedYRange_DegenerateData(t *testing.T) {
	lo, hi := sharedYRange([]float64{5, 5, 5})
	assert.Less(t, lo, 5.0)
	assert.Greater(t, hi, 5.0)
}
