package testkit

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liwclens/domain/liwc"
)

func TestGenerator_CoversEveryGroup(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.RowsPerGroup = 3
	table := NewGenerator(cfg).Generate()

	// 3 empathy types x 4 attribute types x 2 values x 3 rows.
	assert.Equal(t, 3*4*2*3, table.Len())
	assert.Equal(t, liwc.RequiredColumns, table.Columns)

	// Every cell of the design is present with exactly RowsPerGroup rows,
	// so the groups partition the table: disjoint and exhaustive.
	empathy, _ := table.Strings(liwc.ColEmpathyType)
	attrType, _ := table.Strings(liwc.ColAttributeType)
	attrValue, _ := table.Strings(liwc.ColAttributeValue)

	counts := make(map[string]int)
	for i := 0; i < table.Len(); i++ {
		counts[empathy[i]+"|"+attrType[i]+"|"+attrValue[i]]++
	}
	assert.Len(t, counts, 3*4*2)
	for key, n := range counts {
		assert.Equal(t, cfg.RowsPerGroup, n, "group %s", key)
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	a := NewGenerator(cfg).Generate()
	b := NewGenerator(cfg).Generate()
	assert.Equal(t, a.Rows, b.Rows)
}

func TestGenerator_ValuesAreNumeric(t *testing.T) {
	table := NewGenerator(DefaultGeneratorConfig()).Generate()
	for _, col := range append(append([]string{}, liwc.CategoryColumns...), liwc.ColEmpathyScore) {
		vals, err := table.Floats(col)
		require.NoError(t, err, col)
		for _, v := range vals {
			assert.GreaterOrEqual(t, v, 0.0)
		}
	}
}

func TestGenerator_ShiftRaisesGroupMean(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.RowsPerGroup = 30
	cfg.ShiftEmpathyType = "cognitive"
	cfg.ShiftAttributeType = "age"
	cfg.Shift = 5.0

	table := NewGenerator(cfg).Generate()

	empathy, _ := table.Strings(liwc.ColEmpathyType)
	attrType, _ := table.Strings(liwc.ColAttributeType)
	attrValue, _ := table.Strings(liwc.ColAttributeValue)
	scoreStrs, _ := table.Strings(liwc.ColEmpathyScore)

	var shifted, unshifted float64
	var nShifted, nUnshifted int
	for i := range scoreStrs {
		if empathy[i] != "cognitive" || attrType[i] != "age" {
			continue
		}
		v, err := strconv.ParseFloat(scoreStrs[i], 64)
		require.NoError(t, err)
		if attrValue[i] == AttributeValues["age"][0] {
			shifted += v
			nShifted++
		} else {
			unshifted += v
			nUnshifted++
		}
	}
	require.Positive(t, nShifted)
	require.Positive(t, nUnshifted)
	assert.Greater(t, shifted/float64(nShifted), unshifted/float64(nUnshifted)+3.0)
}
