package testkit

import (
	"fmt"
	"math"
	"math/rand"

	"liwclens/domain/liwc"
)

// GeneratorConfig configures the synthetic LIWC dataset generator
type GeneratorConfig struct {
	RowsPerGroup int   `json:"rows_per_group"`
	Seed         int64 `json:"seed"`

	// Shift is added to the empathy scores of the shifted cell, for
	// building fixtures where exactly one comparison is significant.
	ShiftEmpathyType   string  `json:"shift_empathy_type"`
	ShiftAttributeType string  `json:"shift_attribute_type"`
	Shift              float64 `json:"shift"`
}

// DefaultGeneratorConfig returns sensible defaults for fixture generation
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		RowsPerGroup: 12,
		Seed:         42,
	}
}

// AttributeValues maps each attribute type to its group values, mirroring
// the shape of real LIWC result exports.
var AttributeValues = map[string][]string{
	"age":        {"old", "young"},
	"disability": {"abled", "disabled"},
	"gender":     {"man", "woman"},
	"look":       {"attractive", "unattractive"},
}

// AttributeTypes in canonical order.
var AttributeTypes = []string{"age", "disability", "gender", "look"}

// Generator produces synthetic LIWC result tables
type Generator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewGenerator creates a seeded generator
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate builds a full synthetic table: every empathy type crossed with
// every attribute type and value, RowsPerGroup rows each.
func (g *Generator) Generate() *liwc.Table {
	header := append([]string{}, liwc.RequiredColumns...)
	var rows [][]string

	for _, empathyType := range liwc.EmpathyTypes {
		for _, attrType := range AttributeTypes {
			for vi, attrValue := range AttributeValues[attrType] {
				for i := 0; i < g.config.RowsPerGroup; i++ {
					rows = append(rows, g.row(empathyType, attrType, attrValue, vi))
				}
			}
		}
	}

	return liwc.NewTable(header, rows)
}

// row generates one synthetic observation. Category rates are percentages
// in realistic LIWC ranges.
func (g *Generator) row(empathyType, attrType, attrValue string, valueIndex int) []string {
	secondPerson := g.rate(3.0, 1.0)
	negEmotion := g.rate(2.0, 0.8)
	cogProc := g.rate(12.0, 3.0)
	insight := g.rate(3.5, 1.2)
	firstPerson := g.rate(5.0, 1.5)

	score := g.rate(4.0, 1.5)
	if empathyType == g.config.ShiftEmpathyType && attrType == g.config.ShiftAttributeType && valueIndex == 0 {
		score += g.config.Shift
	}

	return []string{
		format(secondPerson),
		format(negEmotion),
		format(cogProc),
		format(insight),
		format(firstPerson),
		empathyType,
		attrType,
		attrValue,
		format(score),
	}
}

// rate draws a non-negative normal value around mean with the given spread
func (g *Generator) rate(mean, std float64) float64 {
	v := mean + g.rng.NormFloat64()*std
	if v < 0 {
		v = 0
	}
	return math.Round(v*100) / 100
}

func format(v float64) string {
	return fmt.Sprintf("%g", v)
}
