package report

import (
	"fmt"
	"os"
	"strings"

	"liwclens/internal/errors"
)

// Builder accumulates a plain-text analysis report
type Builder struct {
	b strings.Builder
}

// NewBuilder creates an empty report builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Title writes a top-level heading underlined with "="
func (r *Builder) Title(text string) *Builder {
	r.b.WriteString(text + "\n")
	r.b.WriteString(strings.Repeat("=", len(text)) + "\n\n")
	return r
}

// Section writes a section heading underlined with "-"
func (r *Builder) Section(text string) *Builder {
	r.b.WriteString(text + "\n")
	r.b.WriteString(strings.Repeat("-", len(text)) + "\n")
	return r
}

// Line writes a single line
func (r *Builder) Line(text string) *Builder {
	r.b.WriteString(text + "\n")
	return r
}

// Linef writes a formatted line
func (r *Builder) Linef(format string, args ...interface{}) *Builder {
	r.b.WriteString(fmt.Sprintf(format, args...) + "\n")
	return r
}

// Blank writes an empty line
func (r *Builder) Blank() *Builder {
	r.b.WriteString("\n")
	return r
}

// Raw writes preformatted text as-is
func (r *Builder) Raw(text string) *Builder {
	r.b.WriteString(text)
	return r
}

// String returns the assembled report
func (r *Builder) String() string {
	return r.b.String()
}

// WriteFile writes the report to disk
func (r *Builder) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(r.b.String()), 0o644); err != nil {
		return errors.WriteError(path, err)
	}
	return nil
}
