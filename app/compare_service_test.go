package app

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liwclens/domain/liwc"
	"liwclens/domain/stats"
	"liwclens/internal"
	"liwclens/internal/testkit"
)

func TestCompareService_ReportIncludesContributions(t *testing.T) {
	cfg := newTestConfig(t)
	writeFixture(t, cfg, testkit.DefaultGeneratorConfig())
	log := internal.NewLogger(internal.LogLevelError)

	result, err := NewScoreService(cfg, log).Run()
	require.NoError(t, err)
	_, err = NewCompareService(cfg, log).Run(result)
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.OutputPath("empathy_score_analysis_report.txt"))
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "Mean Component Contributions")
	for _, col := range []string{
		liwc.ColSecondPersonContribution,
		liwc.ColNegativeEmotionContribution,
		liwc.ColCognitiveInsightContribution,
		liwc.ColFirstPersonPenalty,
	} {
		assert.Contains(t, text, col)
	}

	// The penalty is subtracted by the formula, so its mean prints negative.
	penalties, err := result.Table.Floats(liwc.ColFirstPersonPenalty)
	require.NoError(t, err)
	want := stats.Format(-stats.Mean(penalties), stats.PlacesMean)
	assert.Contains(t, text, "first person penalty (first_person_penalty): "+want)
}

func TestCompareService_ReloadsDerivedTable(t *testing.T) {
	cfg := newTestConfig(t)
	writeFixture(t, cfg, testkit.DefaultGeneratorConfig())
	log := internal.NewLogger(internal.LogLevelError)

	_, err := NewScoreService(cfg, log).Run()
	require.NoError(t, err)

	// Fresh process path: no prior result, contributions come from the
	// derived CSV on disk.
	artifacts, err := NewCompareService(cfg, log).Run(nil)
	require.NoError(t, err)
	assert.Len(t, artifacts, 2)

	data, err := os.ReadFile(cfg.OutputPath("empathy_score_analysis_report.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Mean Component Contributions")
}
