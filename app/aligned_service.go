package app

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"liwclens/domain/liwc"
	"liwclens/domain/stats"
	"liwclens/internal"
	"liwclens/internal/config"
	"liwclens/internal/errors"
	liwcplot "liwclens/internal/plot"
	"liwclens/internal/report"
)

// AlignedService renders the aligned violin figures where every panel of a
// figure shares the same grouping scheme, plus the group comparison report
// and the interpretation guide.
type AlignedService struct {
	cfg *config.Config
	log *internal.Logger
}

// NewAlignedService creates an aligned visualizer
func NewAlignedService(cfg *config.Config, log *internal.Logger) *AlignedService {
	return &AlignedService{cfg: cfg, log: log}
}

// Run computes the group tests and writes the two figures and two reports.
func (s *AlignedService) Run() ([]string, error) {
	table, err := loadAnalysisTable(s.cfg, s.log, liwc.RequiredColumns...)
	if err != nil {
		return nil, err
	}

	results, err := ComputeGroupTests(table, liwc.ColEmpathyScore)
	if err != nil {
		return nil, err
	}

	byCell := indexResults(results)
	empathyTypes := orderedEmpathyTypes(table)
	attrTypes, err := table.DistinctSorted(liwc.ColAttributeType)
	if err != nil {
		return nil, err
	}

	var artifacts []string

	alignedPath := s.cfg.OutputPath("anova_aligned_violin_plots.png")
	if err := s.renderAligned(table, byCell, empathyTypes, attrTypes, alignedPath); err != nil {
		return nil, err
	}
	artifacts = append(artifacts, alignedPath)

	detailedPath := s.cfg.OutputPath("detailed_anova_comparison.png")
	if err := s.renderDetailed(table, byCell, empathyTypes, attrTypes, detailedPath); err != nil {
		return nil, err
	}
	artifacts = append(artifacts, detailedPath)

	reportPath := s.cfg.OutputPath("group_comparison_report.txt")
	if err := s.writeComparisonReport(reportPath, results); err != nil {
		return nil, err
	}
	artifacts = append(artifacts, reportPath)

	guidePath := s.cfg.OutputPath("anova_aligned_interpretation_guide.txt")
	if err := writeInterpretationGuide(guidePath); err != nil {
		return nil, err
	}
	artifacts = append(artifacts, guidePath)

	for _, a := range artifacts {
		s.log.Info("wrote %s", a)
	}
	return artifacts, nil
}

// indexResults keys test results by empathy type then attribute type
func indexResults(results []stats.TestResult) map[string]map[string]stats.TestResult {
	byCell := make(map[string]map[string]stats.TestResult)
	for _, res := range results {
		if byCell[res.EmpathyType] == nil {
			byCell[res.EmpathyType] = make(map[string]stats.TestResult)
		}
		byCell[res.EmpathyType][res.AttributeType] = res
	}
	return byCell
}

// renderAligned draws one panel per empathy type, each with every attribute
// group's violin along a shared axis, colored by attribute type.
func (s *AlignedService) renderAligned(table *liwc.Table, byCell map[string]map[string]stats.TestResult, empathyTypes, attrTypes []string, path string) error {
	row, err := s.buildAlignedPanels(table, byCell, empathyTypes, attrTypes)
	if err != nil {
		return errors.RenderError(path, err)
	}
	return liwcplot.RenderGrid([][]liwcplot.Panel{row}, 18*vg.Inch, 6*vg.Inch, path)
}

// buildAlignedPanels builds the per-empathy-type panels. Every panel gets
// the same y range, derived from the full score column, so violin heights
// compare directly across panels.
func (s *AlignedService) buildAlignedPanels(table *liwc.Table, byCell map[string]map[string]stats.TestResult, empathyTypes, attrTypes []string) ([]liwcplot.Panel, error) {
	scores, err := table.Floats(liwc.ColEmpathyScore)
	if err != nil {
		return nil, err
	}
	yMin, yMax := sharedYRange(scores)

	row := make([]liwcplot.Panel, 0, len(empathyTypes))
	for _, et := range empathyTypes {
		p := plot.New()
		p.Y.Label.Text = liwc.ColEmpathyScore

		var labels []string
		loc := 0.0
		for _, at := range attrTypes {
			values, err := attributeValuesFor(table, at)
			if err != nil {
				return nil, err
			}
			for _, av := range values {
				vals, err := valuesWhere(table, liwc.ColEmpathyScore, map[string]string{
					liwc.ColEmpathyType:    et,
					liwc.ColAttributeType:  at,
					liwc.ColAttributeValue: av,
				})
				if err != nil {
					return nil, err
				}
				if len(vals) == 0 {
					continue
				}
				if err := liwcplot.AddViolin(p, loc, vals, liwcplot.AttributeColor(at)); err != nil {
					return nil, err
				}
				labels = append(labels, at+"_"+av)
				loc++
			}
		}
		p.NominalX(labels...)
		p.X.Tick.Label.Rotation = -0.9
		p.X.Tick.Label.XAlign = -0.8

		// Override the autoscaled range after the violins are added.
		p.Y.Min, p.Y.Max = yMin, yMax

		highlight, title := alignedPanelTitle(et, byCell[et], attrTypes)
		p.Title.Text = title

		row = append(row, liwcplot.Panel{Plot: p, Highlight: highlight})
	}
	return row, nil
}

// sharedYRange pads the data range so violin tails stay inside a y scale
// common to every panel.
func sharedYRange(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	pad := (hi - lo) * 0.15
	if pad == 0 {
		pad = 1
	}
	return lo - pad, hi + pad
}

// alignedPanelTitle summarizes which attributes differ for an empathy type
func alignedPanelTitle(et string, cells map[string]stats.TestResult, attrTypes []string) (bool, string) {
	var sig []string
	for _, at := range attrTypes {
		res, ok := cells[at]
		if ok && !res.Insufficient && res.Significance.Significant() {
			sig = append(sig, at+" "+string(res.Significance))
		}
	}
	if len(sig) == 0 {
		return false, fmt.Sprintf("%s empathy\nno significant group differences", et)
	}
	title := fmt.Sprintf("%s empathy\nsignificant:", et)
	for _, item := range sig {
		title += " " + item
	}
	return true, title
}

// renderDetailed draws the attribute x empathy grid with per-cell test
// statistics in the panel titles.
func (s *AlignedService) renderDetailed(table *liwc.Table, byCell map[string]map[string]stats.TestResult, empathyTypes, attrTypes []string, path string) error {
	panels := make([][]liwcplot.Panel, len(attrTypes))
	for r, at := range attrTypes {
		panels[r] = make([]liwcplot.Panel, len(empathyTypes))
		for c, et := range empathyTypes {
			p := plot.New()
			p.Y.Label.Text = liwc.ColEmpathyScore

			values, err := attributeValuesFor(table, at)
			if err != nil {
				return errors.RenderError(path, err)
			}
			var labels []string
			loc := 0.0
			for _, av := range values {
				vals, err := valuesWhere(table, liwc.ColEmpathyScore, map[string]string{
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
				if err := liwcplot.AddViolin(p, loc, vals, liwcplot.AttributeColor(at)); err != nil {
					return errors.RenderError(path, err)
				}
				labels = append(labels, av)
				loc++
			}
			p.NominalX(labels...)

			res, ok := byCell[et][at]
			highlight := false
			switch {
			case !ok || res.Insufficient:
				p.Title.Text = fmt.Sprintf("%s x %s\ninsufficient data", at, et)
			default:
				highlight = res.Significance.Significant()
				p.Title.Text = fmt.Sprintf("%s x %s\nF(%d, %d) = %s, p = %s %s",
					at, et, res.DFBetween, res.DFWithin,
					stats.Format(res.FStatistic, stats.PlacesF),
					stats.Format(res.PValue, stats.PlacesP),
					res.Significance)
			}
			panels[r][c] = liwcplot.Panel{Plot: p, Highlight: highlight}
		}
	}

	height := vg.Length(len(attrTypes)) * 4 * vg.Inch
	width := vg.Length(len(empathyTypes)) * 5 * vg.Inch
	return liwcplot.RenderGrid(panels, width, height, path)
}

func (s *AlignedService) writeComparisonReport(path string, results []stats.TestResult) error {
	r := report.NewBuilder()
	r.Title("Group Comparison Report")

	for _, res := range results {
		r.Section(fmt.Sprintf("%s empathy by %s", res.EmpathyType, res.AttributeType))

		if res.Insufficient {
			r.Linef("Insufficient data: fewer than two groups with n >= %d.", stats.MinGroupSize)
			for _, g := range res.Excluded {
				r.Linef("  excluded %s (n = %d)", g.Value, g.N)
			}
			r.Blank()
			continue
		}

		r.Linef("F(%d, %d) = %s, p = %s %s, eta squared = %s (%s effect)",
			res.DFBetween, res.DFWithin,
			stats.Format(res.FStatistic, stats.PlacesF),
			stats.Format(res.PValue, stats.PlacesP),
			res.Significance,
			stats.Format(res.EtaSquared, stats.PlacesEta),
			res.Effect)

		if res.Significance.Significant() {
			ranked := append([]stats.GroupStat{}, res.Groups...)
			sort.Slice(ranked, func(i, j int) bool { return ranked[i].Mean > ranked[j].Mean })
			r.Line("Groups ranked by mean:")
			for i, g := range ranked {
				r.Linef("  %d. %s: M = %s, SD = %s, N = %d, range %s to %s",
					i+1, g.Value,
					stats.Format(g.Mean, stats.PlacesMean),
					stats.Format(g.Std, stats.PlacesMean),
					g.N,
					stats.Format(g.Min, stats.PlacesMean),
					stats.Format(g.Max, stats.PlacesMean))
			}
		} else {
			r.Line("Group means (no significant difference):")
			for _, g := range res.Groups {
				r.Linef("  %s: M = %s (n = %d)", g.Value, stats.Format(g.Mean, stats.PlacesMean), g.N)
			}
		}
		for _, g := range res.Excluded {
			r.Linef("  excluded %s (n = %d, below minimum of %d)", g.Value, g.N, stats.MinGroupSize)
		}
		r.Blank()
	}

	r.Section("Overall Findings")
	writeFindings(r, results)

	return r.WriteFile(path)
}

// writeInterpretationGuide explains how to read the aligned figures
func writeInterpretationGuide(path string) error {
	r := report.NewBuilder()
	r.Title("How to Read the Aligned Violin Plots")

	r.Section("Violin Bodies")
	r.Line("Each violin shows the distribution of empathy scores for one group.")
	r.Line("Wider sections mean more observations at that score level.")
	r.Line("Violin color encodes the attribute type, consistent across every figure.")
	r.Blank()

	r.Section("Overlays")
	r.Line("The thin box inside each violin marks the median and interquartile range.")
	r.Line("The gold square marks the group mean.")
	r.Blank()

	r.Section("Panels and Highlights")
	r.Line("Panels in the aligned figure share one y axis scale per figure, so heights")
	r.Line("are directly comparable between groups and between panels.")
	r.Line("A red frame around a panel means at least one ANOVA for that panel was")
	r.Line("significant at p < 0.05.")
	r.Blank()

	r.Section("Significance Flags")
	r.Line("***  p < 0.001")
	r.Line("**   p < 0.01")
	r.Line("*    p < 0.05")
	r.Line("ns   not significant")
	r.Blank()
	r.Line("A significant result says group means differ beyond chance. It does not")
	r.Line("say the difference is large; check eta squared for effect size.")

	return r.WriteFile(path)
}

// attributeValuesFor lists the sorted distinct values of one attribute type
func attributeValuesFor(t *liwc.Table, attrType string) ([]string, error) {
	attrTypes, err := t.Strings(liwc.ColAttributeType)
	if err != nil {
		return nil, err
	}
	attrValues, err := t.Strings(liwc.ColAttributeValue)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, 4)
	var out []string
	for i := range attrTypes {
		if attrTypes[i] == attrType && !seen[attrValues[i]] {
			seen[attrValues[i]] = true
			out = append(out, attrValues[i])
		}
	}
	sort.Strings(out)
	return out, nil
}
