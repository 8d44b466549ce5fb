package dataset

import (
	"encoding/csv"
	"os"

	"liwclens/domain/liwc"
	"liwclens/internal/errors"
)

// WriteCSV writes a table to path, overwriting any previous run's file
func WriteCSV(path string, t *liwc.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WriteError(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return errors.WriteError(path, err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return errors.WriteError(path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.WriteError(path, err)
	}
	return nil
}

// WriteRecords writes pre-formatted records (header + rows) to a CSV file
func WriteRecords(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WriteError(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return errors.WriteError(path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return errors.WriteError(path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.WriteError(path, err)
	}
	return nil
}
