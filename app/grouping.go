package app

import (
	"liwclens/domain/liwc"
	"liwclens/domain/stats"
	"liwclens/internal/errors"
)

// ComputeGroupTests runs one-way ANOVAs of scoreCol across attribute values,
// one test per empathy type and attribute type pair. Empathy types follow
// the canonical order; attribute types are sorted. Empathy or attribute
// types absent from the table simply produce no tests.
func ComputeGroupTests(t *liwc.Table, scoreCol string) ([]stats.TestResult, error) {
	if err := t.Require(liwc.ColEmpathyType, liwc.ColAttributeType, liwc.ColAttributeValue, scoreCol); err != nil {
		return nil, err
	}

	scores, err := t.Floats(scoreCol)
	if err != nil {
		return nil, err
	}
	empathyTypes, _ := t.Strings(liwc.ColEmpathyType)
	attrTypes, _ := t.Strings(liwc.ColAttributeType)
	attrValues, _ := t.Strings(liwc.ColAttributeValue)

	presentEmpathy := orderedEmpathyTypes(t)
	presentAttrs, err := t.DistinctSorted(liwc.ColAttributeType)
	if err != nil {
		return nil, err
	}

	var results []stats.TestResult
	for _, et := range presentEmpathy {
		for _, at := range presentAttrs {
			groups := make(map[string][]float64)
			for i := range scores {
				if empathyTypes[i] != et || attrTypes[i] != at {
					continue
				}
				groups[attrValues[i]] = append(groups[attrValues[i]], scores[i])
			}
			if len(groups) == 0 {
				continue
			}
			out := stats.OneWay(groups)
			results = append(results, stats.TestResult{
				Variable:      scoreCol,
				EmpathyType:   et,
				AttributeType: at,
				FStatistic:    out.FStatistic,
				PValue:        out.PValue,
				DFBetween:     out.DFBetween,
				DFWithin:      out.DFWithin,
				EtaSquared:    out.EtaSquared,
				Significance:  stats.ClassifySignificance(out.PValue),
				Effect:        stats.ClassifyEffect(out.EtaSquared),
				TotalN:        out.TotalN,
				OverallMean:   out.OverallMean,
				OverallStd:    out.OverallStd,
				Groups:        out.Groups,
				Excluded:      out.Excluded,
				Insufficient:  out.Insufficient,
			})
		}
	}

	if len(results) == 0 {
		return nil, errors.InvalidInput("no empathy type and attribute type combinations found in the input")
	}
	return results, nil
}

// orderedEmpathyTypes returns the table's empathy types in canonical order,
// followed by any unexpected extras in sorted order.
func orderedEmpathyTypes(t *liwc.Table) []string {
	distinct, err := t.DistinctSorted(liwc.ColEmpathyType)
	if err != nil {
		return nil
	}
	present := make(map[string]bool, len(distinct))
	for _, v := range distinct {
		present[v] = true
	}

	var ordered []string
	for _, et := range liwc.EmpathyTypes {
		if present[et] {
			ordered = append(ordered, et)
			present[et] = false
		}
	}
	for _, v := range distinct {
		if present[v] {
			ordered = append(ordered, v)
		}
	}
	return ordered
}

// valuesWhere extracts scoreCol values for rows matching every filter.
func valuesWhere(t *liwc.Table, scoreCol string, filters map[string]string) ([]float64, error) {
	scores, err := t.Floats(scoreCol)
	if err != nil {
		return nil, err
	}
	cols := make(map[string][]string, len(filters))
	for name := range filters {
		vals, err := t.Strings(name)
		if err != nil {
			return nil, err
		}
		cols[name] = vals
	}

	var out []float64
	for i := range scores {
		match := true
		for name, want := range filters {
			if cols[name][i] != want {
				match = false
				break
			}
		}
		if match {
			out = append(out, scores[i])
		}
	}
	return out, nil
}
