package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTable_ColumnsAligned(t *testing.T) {
	out := FormatTable(
		[]string{"name", "value"},
		[][]string{
			{"short", "1"},
			{"much_longer_name", "22"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4) // header, rule, two rows

	// Every line is padded to the same width.
	for _, line := range lines[1:] {
		assert.Equal(t, len(lines[0]), len(line))
	}
	assert.Contains(t, lines[0], "name")
	assert.True(t, strings.HasPrefix(lines[1], "---"))
	assert.Contains(t, lines[3], "much_longer_name")
}

func TestFormatTable_ShortRows(t *testing.T) {
	// Rows with fewer cells than headers render blank cells, not panics.
	out := FormatTable([]string{"a", "b", "c"}, [][]string{{"only"}})
	assert.Contains(t, out, "only")
}

func TestBuilder_Sections(t *testing.T) {
	r := NewBuilder()
	r.Title("Report")
	r.Section("Stats")
	r.Linef("n = %d", 10)
	r.Blank()

	out := r.String()
	assert.Contains(t, out, "Report\n======\n")
	assert.Contains(t, out, "Stats\n-----\n")
	assert.Contains(t, out, "n = 10\n")
}

func TestBuilder_WriteFile(t *testing.T) {
	r := NewBuilder()
	r.Title("T")
	path := t.TempDir() + "/report.txt"
	require.NoError(t, r.WriteFile(path))
}
