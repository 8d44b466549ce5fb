package app

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"liwclens/domain/liwc"
	"liwclens/domain/stats"
	"liwclens/internal"
	"liwclens/internal/config"
	"liwclens/internal/errors"
	liwcplot "liwclens/internal/plot"
	"liwclens/internal/report"
)

// etaNegligible is the faceted report's extra effect band below the
// conventional small band.
const etaNegligible = 0.01

// FacetedService visualizes the derived score with faceted violin figures
// and writes the attribute analysis report.
type FacetedService struct {
	cfg *config.Config
	log *internal.Logger
}

// NewFacetedService creates a faceted visualizer
func NewFacetedService(cfg *config.Config, log *internal.Logger) *FacetedService {
	return &FacetedService{cfg: cfg, log: log}
}

// Run renders the two faceted figures and the analysis report. It requires
// the derived score column and so depends on the score step having run,
// either in this process or a previous one.
func (s *FacetedService) Run() ([]string, error) {
	required := append(append([]string{}, liwc.RequiredColumns...), liwc.ColNewEmpathyScore)
	table, err := loadAnalysisTable(s.cfg, s.log, required...)
	if err != nil {
		return nil, err
	}

	results, err := ComputeGroupTests(table, liwc.ColNewEmpathyScore)
	if err != nil {
		return nil, err
	}

	empathyTypes := orderedEmpathyTypes(table)
	attrTypes, err := table.DistinctSorted(liwc.ColAttributeType)
	if err != nil {
		return nil, err
	}

	var artifacts []string

	attrFigPath := s.cfg.OutputPath("empathy_attribute_violin_plots.png")
	if err := s.renderByAttributeType(table, empathyTypes, attrTypes, attrFigPath); err != nil {
		return nil, err
	}
	artifacts = append(artifacts, attrFigPath)

	detailFigPath := s.cfg.OutputPath("empathy_detailed_violin_plots.png")
	if err := s.renderDetailedFacets(table, empathyTypes, attrTypes, detailFigPath); err != nil {
		return nil, err
	}
	artifacts = append(artifacts, detailFigPath)

	reportPath := s.cfg.OutputPath("empathy_attribute_analysis_report.txt")
	if err := s.writeAnalysisReport(reportPath, table, results, empathyTypes, attrTypes); err != nil {
		return nil, err
	}
	artifacts = append(artifacts, reportPath)

	for _, a := range artifacts {
		s.log.Info("wrote %s", a)
	}
	return artifacts, nil
}

// renderByAttributeType draws one panel per empathy type with one violin per
// attribute type, annotated with mean, SD, and n.
func (s *FacetedService) renderByAttributeType(table *liwc.Table, empathyTypes, attrTypes []string, path string) error {
	row := make([]liwcplot.Panel, 0, len(empathyTypes))
	for _, et := range empathyTypes {
		p := plot.New()
		p.Title.Text = et + " empathy"
		p.Y.Label.Text = liwc.ColNewEmpathyScore

		var labelXYs plotter.XYs
		var labelTexts []string
		var labels []string
		loc := 0.0
		for _, at := range attrTypes {
			vals, err := valuesWhere(table, liwc.ColNewEmpathyScore, map[string]string{
				liwc.ColEmpathyType:   et,
				liwc.ColAttributeType: at,
			})
			if err != nil {
				return errors.RenderError(path, err)
			}
			if len(vals) == 0 {
				continue
			}
			if err := liwcplot.AddViolin(p, loc, vals, liwcplot.AttributeColor(at)); err != nil {
				return errors.RenderError(path, err)
			}

			sum, err := stats.Describe(vals)
			if err != nil {
				return errors.RenderError(path, err)
			}
			labelXYs = append(labelXYs, plotter.XY{X: loc, Y: sum.Max})
			labelTexts = append(labelTexts, fmt.Sprintf("M=%s SD=%s n=%d",
				stats.Format(sum.Mean, stats.PlacesMean),
				stats.Format(sum.Std, stats.PlacesMean),
				sum.N))
			labels = append(labels, at)
			loc++
		}

		if len(labelXYs) > 0 {
			annotations, err := plotter.NewLabels(plotter.XYLabels{XYs: labelXYs, Labels: labelTexts})
			if err != nil {
				return errors.RenderError(path, err)
			}
			p.Add(annotations)
		}
		p.NominalX(labels...)

		row = append(row, liwcplot.Panel{Plot: p})
	}

	return liwcplot.RenderGrid([][]liwcplot.Panel{row}, 16*vg.Inch, 5.5*vg.Inch, path)
}

// renderDetailedFacets draws one panel per attribute type with violins for
// every attribute value crossed with every empathy type, colored by empathy
// type.
func (s *FacetedService) renderDetailedFacets(table *liwc.Table, empathyTypes, attrTypes []string, path string) error {
	cols := 2
	rows := (len(attrTypes) + cols - 1) / cols
	panels := make([][]liwcplot.Panel, rows)
	for i := range panels {
		panels[i] = make([]liwcplot.Panel, cols)
	}

	for idx, at := range attrTypes {
		p := plot.New()
		p.Title.Text = "by " + at
		p.Y.Label.Text = liwc.ColNewEmpathyScore

		values, err := attributeValuesFor(table, at)
		if err != nil {
			return errors.RenderError(path, err)
		}

		var labels []string
		loc := 0.0
		for _, av := range values {
			for _, et := range empathyTypes {
				vals, err := valuesWhere(table, liwc.ColNewEmpathyScore, map[string]string{
					liwc.ColEmpathyType:    et,
					liwc.ColAttributeType:  at,
					liwc.ColAttributeValue: av,
				})
				if err != nil {
					return errors.RenderError(path, err)
				}
				if len(vals) == 0 {
					continue
				}
				if err := liwcplot.AddViolin(p, loc, vals, liwcplot.EmpathyColor(et)); err != nil {
					return errors.RenderError(path, err)
				}
				labels = append(labels, av+"\n"+et)
				loc++
			}
		}
		p.NominalX(labels...)
		p.X.Tick.Label.Rotation = -0.9
		p.X.Tick.Label.XAlign = -0.8

		panels[idx/cols][idx%cols] = liwcplot.Panel{Plot: p}
	}

	height := vg.Length(rows) * 5 * vg.Inch
	return liwcplot.RenderGrid(panels, 14*vg.Inch, height, path)
}

func (s *FacetedService) writeAnalysisReport(path string, table *liwc.Table, results []stats.TestResult, empathyTypes, attrTypes []string) error {
	r := report.NewBuilder()
	r.Title("Empathy Attribute Analysis Report")

	r.Section("Data Overview")
	r.Linef("Observations: %d", table.Len())
	r.Linef("Empathy types: %s", joinList(empathyTypes))
	r.Linef("Attribute types: %s", joinList(attrTypes))
	r.Blank()

	r.Section("ANOVA Results (new empathy score)")
	for _, res := range results {
		if res.Insufficient {
			r.Linef("%s x %s: insufficient data", res.EmpathyType, res.AttributeType)
			continue
		}
		r.Linef("%s x %s: F(%d, %d) = %s, p = %s %s, eta squared = %s (%s)",
			res.EmpathyType, res.AttributeType,
			res.DFBetween, res.DFWithin,
			stats.Format(res.FStatistic, stats.PlacesF),
			stats.Format(res.PValue, stats.PlacesP),
			res.Significance,
			stats.Format(res.EtaSquared, stats.PlacesEta),
			facetedEffectLabel(res.EtaSquared))
	}
	r.Blank()

	r.Section("Descriptive Statistics")
	if err := s.descriptiveStats(r, table, empathyTypes, attrTypes); err != nil {
		return err
	}
	r.Blank()

	r.Section("Significant Findings")
	writeFindings(r, results)
	r.Blank()

	r.Section("Highest and Lowest Groups per Empathy Type")
	if err := s.extremeGroups(r, table, empathyTypes); err != nil {
		return err
	}
	r.Blank()

	r.Section("Suggestions for Further Analysis")
	r.Line("- Inspect pairwise group differences behind any significant omnibus test.")
	r.Line("- Compare the derived score's group patterns against the original score's.")
	r.Line("- Collect more observations for any group flagged as excluded or insufficient.")

	return r.WriteFile(path)
}

// descriptiveStats prints one table row per empathy/attribute/value triple
func (s *FacetedService) descriptiveStats(r *report.Builder, table *liwc.Table, empathyTypes, attrTypes []string) error {
	headers := []string{"empathy_type", "attribute_type", "attribute_value", "n", "mean", "std", "min", "max"}
	var rows [][]string
	for _, et := range empathyTypes {
		for _, at := range attrTypes {
			values, err := attributeValuesFor(table, at)
			if err != nil {
				return err
			}
			for _, av := range values {
				vals, err := valuesWhere(table, liwc.ColNewEmpathyScore, map[string]string{
					liwc.ColEmpathyType:    et,
					liwc.ColAttributeType:  at,
					liwc.ColAttributeValue: av,
				})
				if err != nil {
					return err
				}
				if len(vals) == 0 {
					continue
				}
				sum, err := stats.Describe(vals)
				if err != nil {
					return err
				}
				rows = append(rows, []string{
					et, at, av,
					fmt.Sprintf("%d", sum.N),
					stats.Format(sum.Mean, stats.PlacesMean),
					stats.Format(sum.Std, stats.PlacesMean),
					stats.Format(sum.Min, stats.PlacesMean),
					stats.Format(sum.Max, stats.PlacesMean),
				})
			}
		}
	}
	r.Raw(report.FormatTable(headers, rows))
	return nil
}

// extremeGroups names the best and worst scoring group for each empathy type
func (s *FacetedService) extremeGroups(r *report.Builder, table *liwc.Table, empathyTypes []string) error {
	attrTypesCol, _ := table.Strings(liwc.ColAttributeType)
	attrValuesCol, _ := table.Strings(liwc.ColAttributeValue)
	empathyCol, _ := table.Strings(liwc.ColEmpathyType)
	scores, err := table.Floats(liwc.ColNewEmpathyScore)
	if err != nil {
		return err
	}

	for _, et := range empathyTypes {
		sums := make(map[string]float64)
		counts := make(map[string]int)
		for i := range scores {
			if empathyCol[i] != et {
				continue
			}
			key := attrTypesCol[i] + "/" + attrValuesCol[i]
			sums[key] += scores[i]
			counts[key]++
		}
		if len(sums) == 0 {
			continue
		}

		keys := make([]string, 0, len(sums))
		for k := range sums {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		best, worst := keys[0], keys[0]
		bestMean := sums[best] / float64(counts[best])
		worstMean := bestMean
		for _, k := range keys[1:] {
			m := sums[k] / float64(counts[k])
			if m > bestMean {
				best, bestMean = k, m
			}
			if m < worstMean {
				worst, worstMean = k, m
			}
		}
		r.Linef("%s: highest %s (M = %s), lowest %s (M = %s)",
			et,
			best, stats.Format(bestMean, stats.PlacesMean),
			worst, stats.Format(worstMean, stats.PlacesMean))
	}
	return nil
}

// facetedEffectLabel adds the negligible band below the conventional ones
func facetedEffectLabel(etaSquared float64) string {
	if etaSquared < etaNegligible {
		return "negligible"
	}
	switch stats.ClassifyEffect(etaSquared) {
	case stats.EffectLarge:
		return "large"
	case stats.EffectMedium:
		return "medium"
	default:
		return "small"
	}
}

func joinList(items []string) string {
	out := ""
	for i, v := range items {
		if i > 0 {
			out += ", "
		}
		out += v
	}
	return out
}
