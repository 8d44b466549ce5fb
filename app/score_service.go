package app

import (
	"liwclens/domain/liwc"
	"liwclens/domain/stats"
	"liwclens/internal"
	"liwclens/internal/config"
	"liwclens/internal/dataset"
)

// ScoreService derives the new empathy score and its contribution columns
// from a raw LIWC results table.
type ScoreService struct {
	cfg *config.Config
	log *internal.Logger
}

// ScoreResult carries the derived table and the comparison statistics the
// caller reports on.
type ScoreResult struct {
	Table *liwc.Table

	OldSummary stats.Summary
	NewSummary stats.Summary
	// Correlation between the original and derived scores. Valid only
	// when CorrelationOK is set (needs at least two rows).
	Correlation   float64
	CorrelationOK bool

	Artifacts []string
}

// NewScoreService creates a score deriver
func NewScoreService(cfg *config.Config, log *internal.Logger) *ScoreService {
	return &ScoreService{cfg: cfg, log: log}
}

// Run reads the raw input, derives the score columns, and writes the
// enriched table into the output directory.
func (s *ScoreService) Run() (*ScoreResult, error) {
	s.log.Info("deriving empathy scores from %s", s.cfg.InputFile)

	reader := dataset.NewDataReader(s.cfg.InputFile)
	table, err := reader.ReadValidated(liwc.RequiredColumns...)
	if err != nil {
		return nil, err
	}
	s.log.Info("loaded %d rows, %d columns", table.Len(), len(table.Columns))

	inputs, err := readCategoryColumns(table)
	if err != nil {
		return nil, err
	}

	n := table.Len()
	newScores := make([]float64, n)
	secondPerson := make([]float64, n)
	negEmotion := make([]float64, n)
	cogInsight := make([]float64, n)
	penalty := make([]float64, n)
	for i, in := range inputs {
		c := liwc.Derive(in)
		newScores[i] = c.Score()
		secondPerson[i] = c.SecondPerson
		negEmotion[i] = c.NegativeEmotion
		cogInsight[i] = c.CognitiveInsight
		penalty[i] = c.FirstPersonPenalty
	}

	derived := []struct {
		name   string
		values []float64
	}{
		{liwc.ColNewEmpathyScore, newScores},
		{liwc.ColSecondPersonContribution, secondPerson},
		{liwc.ColNegativeEmotionContribution, negEmotion},
		{liwc.ColCognitiveInsightContribution, cogInsight},
		{liwc.ColFirstPersonPenalty, penalty},
	}
	for _, d := range derived {
		if err := table.AddFloatColumn(d.name, d.values); err != nil {
			return nil, err
		}
	}

	outPath := s.cfg.DerivedScoresPath()
	if err := dataset.WriteCSV(outPath, table); err != nil {
		return nil, err
	}
	s.log.Info("wrote derived scores to %s", outPath)

	result := &ScoreResult{Table: table, Artifacts: []string{outPath}}

	oldScores, err := table.Floats(liwc.ColEmpathyScore)
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

// readCategoryColumns parses the five LIWC measurement columns into per-row
// formula inputs.
func readCategoryColumns(t *liwc.Table) ([]liwc.ScoreInputs, error) {
	cols := make(map[string][]float64, len(liwc.CategoryColumns))
	for _, name := range liwc.CategoryColumns {
		vals, err := t.Floats(name)
		if err != nil {
			return nil, err
		}
		cols[name] = vals
	}

	inputs := make([]liwc.ScoreInputs, t.Len())
	for i := range inputs {
		inputs[i] = liwc.ScoreInputs{
			SecondPerson:        cols[liwc.ColSecondPerson][i],
			NegativeEmotion:     cols[liwc.ColNegativeEmotion][i],
			CognitiveProcesses:  cols[liwc.ColCognitiveProcesses][i],
			Insight:             cols[liwc.ColInsight][i],
			FirstPersonSingular: cols[liwc.ColFirstPersonSingular][i],
		}
	}
	return inputs, nil
}
