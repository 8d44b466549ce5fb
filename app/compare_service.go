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
	"liwclens/internal/dataset"
	"liwclens/internal/errors"
	liwcplot "liwclens/internal/plot"
	"liwclens/internal/report"
)

// CompareService produces the comparison figure and the analysis report
// contrasting the original and derived empathy scores.
type CompareService struct {
	cfg *config.Config
	log *internal.Logger
}

// NewCompareService creates a comparative reporter
func NewCompareService(cfg *config.Config, log *internal.Logger) *CompareService {
	return &CompareService{cfg: cfg, log: log}
}

// Run renders empathy_score_comparison.png and writes
// empathy_score_analysis_report.txt. When prior is nil the derived table is
// reloaded from the output directory.
func (s *CompareService) Run(prior *ScoreResult) ([]string, error) {
	result, err := s.ensureScores(prior)
	if err != nil {
		return nil, err
	}
	table := result.Table

	oldScores, err := table.Floats(liwc.ColEmpathyScore)
	if err != nil {
		return nil, err
	}
	newScores, err := table.Floats(liwc.ColNewEmpathyScore)
	if err != nil {
		return nil, err
	}

	figPath := s.cfg.OutputPath("empathy_score_comparison.png")
	if err := s.renderComparisonFigure(table, oldScores, newScores, figPath); err != nil {
		return nil, err
	}
	s.log.Info("wrote comparison figure to %s", figPath)

	reportPath := s.cfg.OutputPath("empathy_score_analysis_report.txt")
	if err := s.writeReport(table, result, reportPath); err != nil {
		return nil, err
	}
	s.log.Info("wrote analysis report to %s", reportPath)

	return []string{figPath, reportPath}, nil
}

// ensureScores reloads the derived table when the caller did not run the
// score deriver in this process.
func (s *CompareService) ensureScores(prior *ScoreResult) (*ScoreResult, error) {
	if prior != nil {
		return prior, nil
	}

	required := append(append([]string{}, liwc.RequiredColumns...),
		liwc.ColNewEmpathyScore,
		liwc.ColSecondPersonContribution,
		liwc.ColNegativeEmotionContribution,
		liwc.ColCognitiveInsightContribution,
		liwc.ColFirstPersonPenalty,
	)
	reader := dataset.NewDataReader(s.cfg.DerivedScoresPath())
	table, err := reader.ReadValidated(required...)
	if err != nil {
		return nil, err
	}

	result := &ScoreResult{Table: table}
	oldScores, err := table.Floats(liwc.ColEmpathyScore)
	if err != nil {
		return nil, err
	}
	newScores, err := table.Floats(liwc.ColNewEmpathyScore)
	if err != nil {
		return nil, err
	}
	if result.OldSummary, err = stats.Describe(oldScores); err != nil {
		return nil, err
	}
	if result.NewSummary, err = stats.Describe(newScores); err != nil {
		return nil, err
	}
	if r, err := stats.Correlation(oldScores, newScores); err == nil {
		result.Correlation = r
		result.CorrelationOK = true
	}
	return result, nil
}

func (s *CompareService) renderComparisonFigure(table *liwc.Table, oldScores, newScores []float64, path string) error {
	hist, err := s.distributionPanel(oldScores, newScores)
	if err != nil {
		return errors.RenderError(path, err)
	}
	scatter, err := s.scatterPanel(oldScores, newScores)
	if err != nil {
		return errors.RenderError(path, err)
	}
	bars, err := s.contributionPanel(table)
	if err != nil {
		return errors.RenderError(path, err)
	}
	violins, err := s.byEmpathyTypePanel(table)
	if err != nil {
		return errors.RenderError(path, err)
	}

	panels := [][]liwcplot.Panel{
		{{Plot: hist}, {Plot: scatter}},
		{{Plot: bars}, {Plot: violins}},
	}
	return liwcplot.RenderGrid(panels, 12*vg.Inch, 9*vg.Inch, path)
}

// distributionPanel overlays histograms of the two score distributions
func (s *CompareService) distributionPanel(oldScores, newScores []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Score Distributions (original vs new)"
	p.X.Label.Text = "score"
	p.Y.Label.Text = "count"

	oldHist, err := plotter.NewHist(plotter.Values(oldScores), 16)
	if err != nil {
		return nil, err
	}
	oldHist.FillColor = liwcplot.Translucent(liwcplot.EmpathyColor("cognitive"), 0x90)
	p.Add(oldHist)

	newHist, err := plotter.NewHist(plotter.Values(newScores), 16)
	if err != nil {
		return nil, err
	}
	newHist.FillColor = liwcplot.Translucent(liwcplot.EmpathyColor("motivational"), 0x90)
	p.Add(newHist)

	return p, nil
}

// scatterPanel plots the scores against each other with a y=x reference
func (s *CompareService) scatterPanel(oldScores, newScores []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Original vs New Score"
	p.X.Label.Text = "original empathy_score"
	p.Y.Label.Text = "new_empathy_score"

	pts := make(plotter.XYs, len(oldScores))
	lo, hi := oldScores[0], oldScores[0]
	for i := range oldScores {
		pts[i] = plotter.XY{X: oldScores[i], Y: newScores[i]}
		for _, v := range []float64{oldScores[i], newScores[i]} {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	sc.GlyphStyle.Color = liwcplot.EmpathyColor("affective")
	sc.GlyphStyle.Radius = vg.Points(1.8)
	p.Add(sc)

	ref, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return nil, err
	}
	ref.LineStyle.Width = vg.Points(1)
	ref.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(ref)
	p.Legend.Add("y = x", ref)

	return p, nil
}

// contributionPanel charts the mean weighted contribution of each formula term
func (s *CompareService) contributionPanel(table *liwc.Table) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Mean Formula Contributions"
	p.Y.Label.Text = "mean weighted contribution"

	cols := []string{
		liwc.ColSecondPersonContribution,
		liwc.ColNegativeEmotionContribution,
		liwc.ColCognitiveInsightContribution,
		liwc.ColFirstPersonPenalty,
	}
	labels := []string{"second person", "negative emotion", "cognitive+insight", "first person penalty"}

	means := make(plotter.Values, len(cols))
	for i, col := range cols {
		vals, err := table.Floats(col)
		if err != nil {
			return nil, err
		}
		means[i] = stats.Mean(vals)
	}
	// The penalty is subtracted by the formula; chart it as negative.
	means[len(means)-1] = -means[len(means)-1]

	bars, err := plotter.NewBarChart(means, vg.Points(32))
	if err != nil {
		return nil, err
	}
	bars.Color = liwcplot.EmpathyColor("cognitive")
	p.Add(bars)
	p.NominalX(labels...)

	return p, nil
}

// byEmpathyTypePanel draws a violin of the new score for each empathy type
func (s *CompareService) byEmpathyTypePanel(table *liwc.Table) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "New Score by Empathy Type"
	p.Y.Label.Text = liwc.ColNewEmpathyScore

	types := orderedEmpathyTypes(table)
	for i, et := range types {
		vals, err := valuesWhere(table, liwc.ColNewEmpathyScore, map[string]string{liwc.ColEmpathyType: et})
		if err != nil {
			return nil, err
		}
		if len(vals) == 0 {
			continue
		}
		if err := liwcplot.AddViolin(p, float64(i), vals, liwcplot.EmpathyColor(et)); err != nil {
			return nil, err
		}
	}
	p.NominalX(types...)

	return p, nil
}

func (s *CompareService) writeReport(table *liwc.Table, result *ScoreResult, path string) error {
	r := report.NewBuilder()
	r.Title("Empathy Score Analysis Report")

	r.Section("New Scoring Formula")
	r.Line("new_empathy_score = " + liwc.FormulaDescription)
	r.Blank()

	r.Section("Overall Statistics")
	r.Raw(summaryTable(result.OldSummary, result.NewSummary))
	if result.CorrelationOK {
		r.Linef("Correlation between original and new score: r = %s",
			stats.Format(result.Correlation, 3))
	} else {
		r.Line("Correlation between original and new score: not computable")
	}
	r.Blank()

	r.Section("By Empathy Type")
	if err := s.groupBreakdown(r, table, liwc.ColEmpathyType, orderedEmpathyTypes(table)); err != nil {
		return err
	}
	r.Blank()

	attrTypes, err := table.DistinctSorted(liwc.ColAttributeType)
	if err != nil {
		return err
	}
	r.Section("By Attribute Type")
	if err := s.groupBreakdown(r, table, liwc.ColAttributeType, attrTypes); err != nil {
		return err
	}
	r.Blank()

	if err := s.rankedGroups(r, table); err != nil {
		return err
	}
	r.Blank()

	if err := s.contributionBreakdown(r, table); err != nil {
		return err
	}

	return r.WriteFile(path)
}

// contributionBreakdown prints the mean weighted contribution of each
// formula term. The penalty is subtracted by the formula, so it prints
// negative.
func (s *CompareService) contributionBreakdown(r *report.Builder, table *liwc.Table) error {
	r.Section("Mean Component Contributions")
	terms := []struct {
		column string
		label  string
		sign   float64
	}{
		{liwc.ColSecondPersonContribution, "second person", 1},
		{liwc.ColNegativeEmotionContribution, "negative emotion", 1},
		{liwc.ColCognitiveInsightContribution, "cognitive + insight", 1},
		{liwc.ColFirstPersonPenalty, "first person penalty", -1},
	}
	for _, term := range terms {
		vals, err := table.Floats(term.column)
		if err != nil {
			return err
		}
		r.Linef("%s (%s): %s", term.label, term.column,
			stats.Format(term.sign*stats.Mean(vals), stats.PlacesMean))
	}
	return nil
}

// groupBreakdown prints original and new score stats per label value
func (s *CompareService) groupBreakdown(r *report.Builder, table *liwc.Table, labelCol string, values []string) error {
	headers := []string{labelCol, "n", "old_mean", "old_std", "new_mean", "new_std"}
	var rows [][]string
	for _, v := range values {
		filter := map[string]string{labelCol: v}
		oldVals, err := valuesWhere(table, liwc.ColEmpathyScore, filter)
		if err != nil {
			return err
		}
		newVals, err := valuesWhere(table, liwc.ColNewEmpathyScore, filter)
		if err != nil {
			return err
		}
		if len(oldVals) == 0 {
			continue
		}
		oldSum, err := stats.Describe(oldVals)
		if err != nil {
			return err
		}
		newSum, err := stats.Describe(newVals)
		if err != nil {
			return err
		}
		rows = append(rows, []string{
			v,
			fmt.Sprintf("%d", oldSum.N),
			stats.Format(oldSum.Mean, stats.PlacesMean),
			stats.Format(oldSum.Std, stats.PlacesMean),
			stats.Format(newSum.Mean, stats.PlacesMean),
			stats.Format(newSum.Std, stats.PlacesMean),
		})
	}
	r.Raw(report.FormatTable(headers, rows))
	return nil
}

// rankedGroups lists the highest and lowest scoring groups by new score mean
func (s *CompareService) rankedGroups(r *report.Builder, table *liwc.Table) error {
	type groupMean struct {
		label string
		mean  float64
		n     int
	}

	empathyTypes, _ := table.Strings(liwc.ColEmpathyType)
	attrTypes, _ := table.Strings(liwc.ColAttributeType)
	attrValues, _ := table.Strings(liwc.ColAttributeValue)
	newScores, err := table.Floats(liwc.ColNewEmpathyScore)
	if err != nil {
		return err
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i := range newScores {
		key := empathyTypes[i] + " / " + attrTypes[i] + " / " + attrValues[i]
		sums[key] += newScores[i]
		counts[key]++
	}

	groups := make([]groupMean, 0, len(sums))
	for key, sum := range sums {
		groups = append(groups, groupMean{label: key, mean: sum / float64(counts[key]), n: counts[key]})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].mean != groups[j].mean {
			return groups[i].mean > groups[j].mean
		}
		return groups[i].label < groups[j].label
	})

	top := 3
	if top > len(groups) {
		top = len(groups)
	}

	r.Section("Highest Scoring Groups (new score)")
	for i := 0; i < top; i++ {
		g := groups[i]
		r.Linef("%d. %s: M = %s (n = %d)", i+1, g.label, stats.Format(g.mean, stats.PlacesMean), g.n)
	}
	r.Blank()

	r.Section("Lowest Scoring Groups (new score)")
	for i := 0; i < top; i++ {
		g := groups[len(groups)-1-i]
		r.Linef("%d. %s: M = %s (n = %d)", i+1, g.label, stats.Format(g.mean, stats.PlacesMean), g.n)
	}

	return nil
}

func summaryTable(oldSum, newSum stats.Summary) string {
	headers := []string{"score", "n", "mean", "std", "min", "max", "median"}
	row := func(name string, s stats.Summary) []string {
		return []string{
			name,
			fmt.Sprintf("%d", s.N),
			stats.Format(s.Mean, stats.PlacesMean),
			stats.Format(s.Std, stats.PlacesMean),
			stats.Format(s.Min, stats.PlacesMean),
			stats.Format(s.Max, stats.PlacesMean),
			stats.Format(s.Median, stats.PlacesMean),
		}
	}
	return report.FormatTable(headers, [][]string{
		row(liwc.ColEmpathyScore, oldSum),
		row(liwc.ColNewEmpathyScore, newSum),
	})
}
