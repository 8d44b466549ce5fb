package app

import (
	"liwclens/domain/liwc"
	"liwclens/internal"
	"liwclens/internal/config"
	"liwclens/internal/dataset"
	"liwclens/internal/errors"
)

// loadAnalysisTable prefers the derived table so every step of one pipeline
// run analyzes the same rows, falling back to the raw input when the score
// step has not run yet.
func loadAnalysisTable(cfg *config.Config, log *internal.Logger, required ...string) (*liwc.Table, error) {
	derived := dataset.NewDataReader(cfg.DerivedScoresPath())
	table, err := derived.ReadValidated(required...)
	if err == nil {
		return table, nil
	}
	if errors.GetCode(err) != errors.CodeMissingInputFile {
		return nil, err
	}

	log.Debug("derived table missing, reading raw input %s", cfg.InputFile)
	raw := dataset.NewDataReader(cfg.InputFile)
	return raw.ReadValidated(required...)
}
