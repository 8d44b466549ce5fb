package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liwclens/domain/liwc"
	"liwclens/internal"
	"liwclens/internal/config"
	"liwclens/internal/dataset"
	"liwclens/internal/errors"
	"liwclens/internal/testkit"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		InputFile: filepath.Join(dir, "liwc_results.csv"),
		OutputDir: filepath.Join(dir, "output"),
	}
	require.NoError(t, cfg.EnsureOutputDir())
	return cfg
}

func writeFixture(t *testing.T, cfg *config.Config, gen testkit.GeneratorConfig) {
	t.Helper()
	table := testkit.NewGenerator(gen).Generate()
	require.NoError(t, dataset.WriteCSV(cfg.InputFile, table))
}

func TestScoreService_DerivesColumns(t *testing.T) {
	cfg := newTestConfig(t)
	writeFixture(t, cfg, testkit.DefaultGeneratorConfig())
	svc := NewScoreService(cfg, internal.NewLogger(internal.LogLevelError))

	result, err := svc.Run()
	require.NoError(t, err)
	require.NotNil(t, result)

	// The derived table is written and reloadable.
	back, err := dataset.NewDataReader(cfg.DerivedScoresPath()).Read()
	require.NoError(t, err)
	require.NoError(t, back.Require(
		liwc.ColNewEmpathyScore,
		liwc.ColSecondPersonContribution,
		liwc.ColNegativeEmotionContribution,
		liwc.ColCognitiveInsightContribution,
		liwc.ColFirstPersonPenalty,
	))
	assert.Equal(t, result.Table.Len(), back.Len())

	// Every derived score matches the formula applied to its row.
	sp, _ := back.Floats(liwc.ColSecondPerson)
	ne, _ := back.Floats(liwc.ColNegativeEmotion)
	cp, _ := back.Floats(liwc.ColCognitiveProcesses)
	in, _ := back.Floats(liwc.ColInsight)
	fp, _ := back.Floats(liwc.ColFirstPersonSingular)
	derived, err := back.Floats(liwc.ColNewEmpathyScore)
	require.NoError(t, err)

	for i := range derived {
		want := liwc.Derive(liwc.ScoreInputs{
			SecondPerson:        sp[i],
			NegativeEmotion:     ne[i],
			CognitiveProcesses:  cp[i],
			Insight:             in[i],
			FirstPersonSingular: fp[i],
		}).Score()
		assert.InDelta(t, want, derived[i], 1e-9, "row %d", i)
	}

	assert.True(t, result.CorrelationOK)
	assert.Positive(t, result.NewSummary.N)
}

func TestScoreService_MissingInput(t *testing.T) {
	cfg := newTestConfig(t)
	svc := NewScoreService(cfg, internal.NewLogger(internal.LogLevelError))

	_, err := svc.Run()
	require.Error(t, err)
	assert.Equal(t, errors.CodeMissingInputFile, errors.GetCode(err))
}

func TestScoreService_MissingColumn(t *testing.T) {
	cfg := newTestConfig(t)
	table := testkit.NewGenerator(testkit.DefaultGeneratorConfig()).Generate()
	// Drop a required column from the header.
	table.Columns[0] = "renamed_away"
	require.NoError(t, dataset.WriteCSV(cfg.InputFile, table))

	svc := NewScoreService(cfg, internal.NewLogger(internal.LogLevelError))
	_, err := svc.Run()
	require.Error(t, err)
	assert.Equal(t, errors.CodeMissingColumn, errors.GetCode(err))
}

func TestScoreService_RerunOverwrites(t *testing.T) {
	cfg := newTestConfig(t)
	writeFixture(t, cfg, testkit.DefaultGeneratorConfig())
	svc := NewScoreService(cfg, internal.NewLogger(internal.LogLevelError))

	first, err := svc.Run()
	require.NoError(t, err)
	second, err := svc.Run()
	require.NoError(t, err)

	assert.Equal(t, first.Table.Len(), second.Table.Len())
	assert.Equal(t, first.NewSummary, second.NewSummary)
}
