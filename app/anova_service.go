package app

import (
	"fmt"
	"strings"

	"liwclens/domain/liwc"
	"liwclens/domain/stats"
	"liwclens/internal"
	"liwclens/internal/config"
	"liwclens/internal/dataset"
	"liwclens/internal/report"
)

// AnovaService runs the group statistics engine: one-way ANOVAs of the
// original empathy score across attribute values, published as CSV tables
// and a text report.
type AnovaService struct {
	cfg *config.Config
	log *internal.Logger
}

// NewAnovaService creates a group statistics engine
func NewAnovaService(cfg *config.Config, log *internal.Logger) *AnovaService {
	return &AnovaService{cfg: cfg, log: log}
}

// Run computes the tests and writes the summary, detailed, and significance
// CSVs plus the tables report.
func (s *AnovaService) Run() ([]string, error) {
	table, err := loadAnalysisTable(s.cfg, s.log, liwc.RequiredColumns...)
	if err != nil {
		return nil, err
	}

	results, err := ComputeGroupTests(table, liwc.ColEmpathyScore)
	if err != nil {
		return nil, err
	}
	s.log.Info("computed %d group comparisons", len(results))

	var artifacts []string

	summaryPath := s.cfg.OutputPath("anova_summary_table.csv")
	if err := s.writeSummaryCSV(summaryPath, results); err != nil {
		return nil, err
	}
	artifacts = append(artifacts, summaryPath)

	detailedPath := s.cfg.OutputPath("anova_detailed_table.csv")
	if err := s.writeDetailedCSV(detailedPath, results); err != nil {
		return nil, err
	}
	artifacts = append(artifacts, detailedPath)

	sigPath := s.cfg.OutputPath("anova_significance_summary.csv")
	if err := s.writeSignificanceCSV(sigPath, results); err != nil {
		return nil, err
	}
	artifacts = append(artifacts, sigPath)

	reportPath := s.cfg.OutputPath("anova_tables_report.txt")
	if err := s.writeReport(reportPath, results); err != nil {
		return nil, err
	}
	artifacts = append(artifacts, reportPath)

	for _, a := range artifacts {
		s.log.Info("wrote %s", a)
	}
	return artifacts, nil
}

func (s *AnovaService) writeSummaryCSV(path string, results []stats.TestResult) error {
	header := []string{"Empathy_Type", "Attribute_Type", "F_Statistic", "p_Value", "Significance", "Eta_Squared", "Effect_Size", "Total_N"}
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		rows = append(rows, []string{
			res.EmpathyType,
			res.AttributeType,
			formatF(res),
			formatP(res),
			formatSig(res),
			formatEta(res),
			formatEffect(res),
			fmt.Sprintf("%d", res.TotalN),
		})
	}
	return dataset.WriteRecords(path, header, rows)
}

func (s *AnovaService) writeDetailedCSV(path string, results []stats.TestResult) error {
	header := []string{
		"Empathy_Type", "Attribute_Type", "F_Statistic", "p_Value", "Significance",
		"Sig_Level", "Eta_Squared", "Effect_Size", "Total_N", "Overall_Mean",
		"Overall_Std", "Groups", "Group_Details",
	}
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		rows = append(rows, []string{
			res.EmpathyType,
			res.AttributeType,
			formatF(res),
			formatP(res),
			formatSig(res),
			res.Significance.Level(),
			formatEta(res),
			formatEffect(res),
			fmt.Sprintf("%d", res.TotalN),
			stats.Format(res.OverallMean, stats.PlacesMean),
			stats.Format(res.OverallStd, stats.PlacesMean),
			fmt.Sprintf("%d", len(res.Groups)),
			groupDetails(res),
		})
	}
	return dataset.WriteRecords(path, header, rows)
}

func (s *AnovaService) writeSignificanceCSV(path string, results []stats.TestResult) error {
	header := []string{"Empathy_Type", "Significant_Attributes", "Non_Significant_Attributes", "Total_Significant", "Total_Tests"}

	var order []string
	byType := make(map[string][]stats.TestResult)
	for _, res := range results {
		if _, seen := byType[res.EmpathyType]; !seen {
			order = append(order, res.EmpathyType)
		}
		byType[res.EmpathyType] = append(byType[res.EmpathyType], res)
	}

	rows := make([][]string, 0, len(order))
	for _, et := range order {
		var sig, nonsig []string
		for _, res := range byType[et] {
			if !res.Insufficient && res.Significance.Significant() {
				sig = append(sig, res.AttributeType)
			} else {
				nonsig = append(nonsig, res.AttributeType)
			}
		}
		rows = append(rows, []string{
			et,
			strings.Join(sig, "; "),
			strings.Join(nonsig, "; "),
			fmt.Sprintf("%d", len(sig)),
			fmt.Sprintf("%d", len(byType[et])),
		})
	}
	return dataset.WriteRecords(path, header, rows)
}

func (s *AnovaService) writeReport(path string, results []stats.TestResult) error {
	r := report.NewBuilder()
	r.Title("ANOVA Results: Empathy Score by Group")

	r.Section("Summary Table")
	headers := []string{"Empathy Type", "Attribute", "F", "p", "Sig", "Eta Sq", "Effect", "N"}
	var rows [][]string
	for _, res := range results {
		rows = append(rows, []string{
			res.EmpathyType,
			res.AttributeType,
			formatF(res),
			formatP(res),
			formatSig(res),
			formatEta(res),
			formatEffect(res),
			fmt.Sprintf("%d", res.TotalN),
		})
	}
	r.Raw(report.FormatTable(headers, rows))
	r.Blank()

	r.Section("Test Details")
	for _, res := range results {
		if res.Insufficient {
			r.Linef("%s x %s: insufficient data, fewer than two groups with n >= %d",
				res.EmpathyType, res.AttributeType, stats.MinGroupSize)
			continue
		}
		r.Linef("%s x %s: F(%d, %d) = %s, p = %s %s, eta squared = %s (%s)",
			res.EmpathyType, res.AttributeType,
			res.DFBetween, res.DFWithin,
			stats.Format(res.FStatistic, stats.PlacesF),
			stats.Format(res.PValue, stats.PlacesP),
			res.Significance,
			stats.Format(res.EtaSquared, stats.PlacesEta),
			res.Effect)
		for _, g := range res.Groups {
			r.Linef("    %s: M = %s, SD = %s, N = %d",
				g.Value, stats.Format(g.Mean, stats.PlacesMean), stats.Format(g.Std, stats.PlacesMean), g.N)
		}
		for _, g := range res.Excluded {
			r.Linef("    %s: excluded (n = %d, below minimum of %d)", g.Value, g.N, stats.MinGroupSize)
		}
	}
	r.Blank()

	r.Section("Legend")
	r.Line("***  p < 0.001")
	r.Line("**   p < 0.01")
	r.Line("*    p < 0.05")
	r.Line("ns   not significant (p >= 0.05)")
	r.Blank()
	r.Linef("Effect size (eta squared): Small < %s <= Medium < %s <= Large",
		stats.Format(stats.EtaMedium, 2), stats.Format(stats.EtaLarge, 2))
	r.Blank()

	r.Section("Key Findings")
	writeFindings(r, results)

	return r.WriteFile(path)
}

// writeFindings summarizes which comparisons reached significance
func writeFindings(r *report.Builder, results []stats.TestResult) {
	var sig []stats.TestResult
	for _, res := range results {
		if !res.Insufficient && res.Significance.Significant() {
			sig = append(sig, res)
		}
	}
	if len(sig) == 0 {
		r.Line("No group comparison reached significance at p < 0.05.")
		return
	}
	r.Linef("%d of %d comparisons reached significance at p < 0.05:", len(sig), len(results))
	for _, res := range sig {
		r.Linef("  - %s empathy differs by %s (p = %s, %s effect)",
			res.EmpathyType, res.AttributeType,
			stats.Format(res.PValue, stats.PlacesP), strings.ToLower(string(res.Effect)))
	}
}

// groupDetails renders the per-group stats cell of the detailed table
func groupDetails(res stats.TestResult) string {
	parts := make([]string, 0, len(res.Groups))
	for _, g := range res.Groups {
		parts = append(parts, fmt.Sprintf("%s: M=%s, SD=%s, N=%d",
			g.Value, stats.Format(g.Mean, stats.PlacesMean), stats.Format(g.Std, stats.PlacesMean), g.N))
	}
	return strings.Join(parts, "; ")
}

func formatF(res stats.TestResult) string {
	if res.Insufficient {
		return ""
	}
	return stats.Format(res.FStatistic, stats.PlacesF)
}

func formatP(res stats.TestResult) string {
	if res.Insufficient {
		return ""
	}
	return stats.Format(res.PValue, stats.PlacesP)
}

func formatSig(res stats.TestResult) string {
	if res.Insufficient {
		return "insufficient data"
	}
	return string(res.Significance)
}

func formatEta(res stats.TestResult) string {
	if res.Insufficient {
		return ""
	}
	return stats.Format(res.EtaSquared, stats.PlacesEta)
}

func formatEffect(res stats.TestResult) string {
	if res.Insufficient {
		return ""
	}
	return string(res.Effect)
}
