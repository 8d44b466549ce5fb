package app

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liwclens/domain/liwc"
	"liwclens/domain/stats"
	"liwclens/internal"
	"liwclens/internal/dataset"
	"liwclens/internal/testkit"
)

func shiftedFixture() testkit.GeneratorConfig {
	cfg := testkit.DefaultGeneratorConfig()
	cfg.RowsPerGroup = 30
	cfg.ShiftEmpathyType = "cognitive"
	cfg.ShiftAttributeType = "age"
	cfg.Shift = 15.0
	return cfg
}

func TestComputeGroupTests_FindsInjectedDifference(t *testing.T) {
	table := testkit.NewGenerator(shiftedFixture()).Generate()

	results, err := ComputeGroupTests(table, liwc.ColEmpathyScore)
	require.NoError(t, err)
	// 3 empathy types x 4 attribute types.
	assert.Len(t, results, 12)

	var shifted *stats.TestResult
	minP := 1.0
	for i := range results {
		res := results[i]
		require.False(t, res.Insufficient)
		if res.PValue < minP {
			minP = res.PValue
		}
		if res.EmpathyType == "cognitive" && res.AttributeType == "age" {
			shifted = &results[i]
		}
	}

	require.NotNil(t, shifted)
	assert.True(t, shifted.Significance.Significant(), "p = %v", shifted.PValue)
	assert.Equal(t, minP, shifted.PValue, "the injected shift should be the strongest effect")
	assert.Equal(t, stats.EffectLarge, shifted.Effect)
}

func TestComputeGroupTests_CanonicalOrder(t *testing.T) {
	table := testkit.NewGenerator(testkit.DefaultGeneratorConfig()).Generate()

	results, err := ComputeGroupTests(table, liwc.ColEmpathyScore)
	require.NoError(t, err)
	require.Len(t, results, 12)

	// Empathy types in canonical order, attribute types sorted within each.
	wantEmpathy := []string{"affective", "cognitive", "motivational"}
	wantAttrs := []string{"age", "disability", "gender", "look"}
	for i, res := range results {
		assert.Equal(t, wantEmpathy[i/4], res.EmpathyType)
		assert.Equal(t, wantAttrs[i%4], res.AttributeType)
	}
}

func TestAnovaService_WritesArtifacts(t *testing.T) {
	cfg := newTestConfig(t)
	writeFixture(t, cfg, shiftedFixture())
	log := internal.NewLogger(internal.LogLevelError)

	artifacts, err := NewAnovaService(cfg, log).Run()
	require.NoError(t, err)
	require.Len(t, artifacts, 4)

	for _, name := range []string{
		"anova_summary_table.csv",
		"anova_detailed_table.csv",
		"anova_significance_summary.csv",
		"anova_tables_report.txt",
	} {
		info, err := os.Stat(cfg.OutputPath(name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
}

func TestAnovaService_SummaryCSVMatchesRecomputedStats(t *testing.T) {
	cfg := newTestConfig(t)
	writeFixture(t, cfg, shiftedFixture())
	log := internal.NewLogger(internal.LogLevelError)

	_, err := NewAnovaService(cfg, log).Run()
	require.NoError(t, err)

	// Recompute from the same input and compare against the written table
	// under the rounding policy.
	raw, err := dataset.NewDataReader(cfg.InputFile).Read()
	require.NoError(t, err)
	results, err := ComputeGroupTests(raw, liwc.ColEmpathyScore)
	require.NoError(t, err)

	summary, err := dataset.NewDataReader(cfg.OutputPath("anova_summary_table.csv")).Read()
	require.NoError(t, err)
	require.Equal(t, len(results), summary.Len())

	fCol, err := summary.Strings("F_Statistic")
	require.NoError(t, err)
	pCol, err := summary.Strings("p_Value")
	require.NoError(t, err)
	sigCol, err := summary.Strings("Significance")
	require.NoError(t, err)

	for i, res := range results {
		assert.Equal(t, stats.Format(res.FStatistic, stats.PlacesF), fCol[i])
		assert.Equal(t, stats.Format(res.PValue, stats.PlacesP), pCol[i])
		assert.Equal(t, string(res.Significance), sigCol[i])
	}
}

func TestAnovaService_SignificanceSummaryCounts(t *testing.T) {
	cfg := newTestConfig(t)
	writeFixture(t, cfg, shiftedFixture())
	log := internal.NewLogger(internal.LogLevelError)

	_, err := NewAnovaService(cfg, log).Run()
	require.NoError(t, err)

	sig, err := dataset.NewDataReader(cfg.OutputPath("anova_significance_summary.csv")).Read()
	require.NoError(t, err)
	assert.Equal(t, 3, sig.Len()) // one row per empathy type

	totals, err := sig.Floats("Total_Tests")
	require.NoError(t, err)
	for _, n := range totals {
		assert.Equal(t, 4.0, n)
	}
}

func TestPipeline_AllServicesProduceArtifacts(t *testing.T) {
	cfg := newTestConfig(t)
	writeFixture(t, cfg, shiftedFixture())
	log := internal.NewLogger(internal.LogLevelError)

	result, err := NewScoreService(cfg, log).Run()
	require.NoError(t, err)

	compareArtifacts, err := NewCompareService(cfg, log).Run(result)
	require.NoError(t, err)
	assert.Len(t, compareArtifacts, 2)

	alignedArtifacts, err := NewAlignedService(cfg, log).Run()
	require.NoError(t, err)
	assert.Len(t, alignedArtifacts, 4)

	facetArtifacts, err := NewFacetedService(cfg, log).Run()
	require.NoError(t, err)
	assert.Len(t, facetArtifacts, 3)

	manifest := NewManifest()
	manifest.Record("score", result.Artifacts...)
	manifest.Record("compare", compareArtifacts...)
	manifest.Record("aligned", alignedArtifacts...)
	manifest.Record("facets", facetArtifacts...)
	require.NoError(t, manifest.Write(cfg.OutputDir))

	expected := []string{
		"empathy_scores_with_new_formula.csv",
		"empathy_score_comparison.png",
		"empathy_score_analysis_report.txt",
		"anova_aligned_violin_plots.png",
		"detailed_anova_comparison.png",
		"group_comparison_report.txt",
		"anova_aligned_interpretation_guide.txt",
		"empathy_attribute_violin_plots.png",
		"empathy_detailed_violin_plots.png",
		"empathy_attribute_analysis_report.txt",
		"run_manifest.json",
	}
	for _, name := range expected {
		info, err := os.Stat(cfg.OutputPath(name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
}
