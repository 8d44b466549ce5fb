package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liwclens/domain/liwc"
	"liwclens/internal/testkit"
)

func TestComputeGroupTests_GroupsPartitionCellRows(t *testing.T) {
	table := testkit.NewGenerator(testkit.DefaultGeneratorConfig()).Generate()

	// Add a single-observation group so the excluded path is exercised too.
	avIdx, ok := table.ColumnIndex(liwc.ColAttributeValue)
	require.True(t, ok)
	solo := append([]string{}, table.Rows[0]...)
	solo[avIdx] = "solo"
	table = liwc.NewTable(table.Columns, append(table.Rows, solo))

	results, err := ComputeGroupTests(table, liwc.ColEmpathyScore)
	require.NoError(t, err)

	empathy, err := table.Strings(liwc.ColEmpathyType)
	require.NoError(t, err)
	attrs, err := table.Strings(liwc.ColAttributeType)
	require.NoError(t, err)
	cellCounts := make(map[string]int)
	for i := range empathy {
		cellCounts[empathy[i]+"|"+attrs[i]]++
	}

	// Per cell, the tested and excluded groups together account for every
	// row of that cell exactly once.
	sawExcluded := false
	for _, res := range results {
		n := 0
		for _, g := range res.Groups {
			n += g.N
		}
		for _, g := range res.Excluded {
			n += g.N
			sawExcluded = true
		}
		assert.Equal(t, cellCounts[res.EmpathyType+"|"+res.AttributeType], n,
			"%s x %s", res.EmpathyType, res.AttributeType)
	}
	assert.True(t, sawExcluded, "the solo group should be excluded, not dropped")
}
