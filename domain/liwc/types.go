package liwc

import (
	"sort"
	"strconv"

	"liwclens/internal/errors"
)

// Column names in the LIWC results table.
const (
	ColSecondPerson        = "second_person"
	ColNegativeEmotion     = "negative_emotion"
	ColCognitiveProcesses  = "cognitive_processes"
	ColInsight             = "insight"
	ColFirstPersonSingular = "first_person_singular"

	ColEmpathyType    = "empathy_type"
	ColAttributeType  = "attribute_type"
	ColAttributeValue = "attribute_value"

	ColEmpathyScore    = "empathy_score"
	ColNewEmpathyScore = "new_empathy_score"

	ColSecondPersonContribution     = "second_person_contribution"
	ColNegativeEmotionContribution  = "negative_emotion_contribution"
	ColCognitiveInsightContribution = "cognitive_insight_contribution"
	ColFirstPersonPenalty           = "first_person_penalty"
)

// CategoryColumns are the LIWC measurement columns the formula consumes.
var CategoryColumns = []string{
	ColSecondPerson,
	ColNegativeEmotion,
	ColCognitiveProcesses,
	ColInsight,
	ColFirstPersonSingular,
}

// RequiredColumns are the columns every raw input table must carry.
var RequiredColumns = []string{
	ColSecondPerson,
	ColNegativeEmotion,
	ColCognitiveProcesses,
	ColInsight,
	ColFirstPersonSingular,
	ColEmpathyType,
	ColAttributeType,
	ColAttributeValue,
	ColEmpathyScore,
}

// EmpathyTypes is the canonical ordering used across tables and figures.
var EmpathyTypes = []string{"affective", "cognitive", "motivational"}

// Table is an in-memory LIWC results table. Rows are raw cell strings in
// column order; typed access goes through Floats and Strings.
type Table struct {
	Columns []string
	Rows    [][]string

	index map[string]int
}

// NewTable builds a table from a header and raw rows.
func NewTable(columns []string, rows [][]string) *Table {
	t := &Table{Columns: columns, Rows: rows}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		t.index[c] = i
	}
}

// Len returns the row count.
func (t *Table) Len() int { return len(t.Rows) }

// ColumnIndex reports the position of a column, if present.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Require returns a missing-column error for the first absent column.
func (t *Table) Require(columns ...string) error {
	for _, c := range columns {
		if _, ok := t.index[c]; !ok {
			return errors.MissingColumn(c)
		}
	}
	return nil
}

// Floats parses a column as float64 values.
func (t *Table) Floats(name string) ([]float64, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, errors.MissingColumn(name)
	}
	out := make([]float64, len(t.Rows))
	for r, row := range t.Rows {
		v, err := strconv.ParseFloat(row[i], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "column %q row %d is not numeric", name, r+1)
		}
		out[r] = v
	}
	return out, nil
}

// Strings returns a column's raw cell values.
func (t *Table) Strings(name string) ([]string, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, errors.MissingColumn(name)
	}
	out := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out, nil
}

// AddFloatColumn appends a derived numeric column. Values are formatted with
// the shortest representation that round-trips.
func (t *Table) AddFloatColumn(name string, values []float64) error {
	if len(values) != len(t.Rows) {
		return errors.InvalidInput("derived column length does not match row count")
	}
	if _, exists := t.index[name]; exists {
		return errors.InvalidInput("column " + name + " already exists")
	}
	t.Columns = append(t.Columns, name)
	for r := range t.Rows {
		t.Rows[r] = append(t.Rows[r], strconv.FormatFloat(values[r], 'f', -1, 64))
	}
	t.reindex()
	return nil
}

// DistinctSorted returns the sorted distinct values of a label column.
func (t *Table) DistinctSorted(name string) ([]string, error) {
	vals, err := t.Strings(name)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, 8)
	out := make([]string, 0, 8)
	for _, v := range vals {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out, nil
}
