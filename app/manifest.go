package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"liwclens/internal/errors"
)

// Manifest records one pipeline run: which components ran and which
// artifacts they wrote. Written as run_manifest.json alongside the outputs.
type Manifest struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	RuntimeMs  int64     `json:"runtime_ms"`
	Components []string  `json:"components"`
	Artifacts  []string  `json:"artifacts"`
}

// NewManifest starts a manifest for the current run
func NewManifest() *Manifest {
	return &Manifest{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
}

// Record notes a completed component and the artifacts it wrote
func (m *Manifest) Record(component string, artifacts ...string) {
	m.Components = append(m.Components, component)
	m.Artifacts = append(m.Artifacts, artifacts...)
}

// Write finalizes the manifest and writes it into the output directory
func (m *Manifest) Write(outputDir string) error {
	m.FinishedAt = time.Now().UTC()
	m.RuntimeMs = m.FinishedAt.Sub(m.StartedAt).Milliseconds()

	path := filepath.Join(outputDir, "run_manifest.json")
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal run manifest")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WriteError(path, err)
	}
	return nil
}
