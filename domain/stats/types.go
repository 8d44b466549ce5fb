package stats

// Significance thresholds. Fixed analysis constants; changing them would
// silently change every published table.
const (
	AlphaStrict = 0.001
	AlphaHigh   = 0.01
	Alpha       = 0.05
)

// Significance is the asterisk-style flag attached to a test result
type Significance string

const (
	SigNone   Significance = "ns"
	SigLow    Significance = "*"
	SigMedium Significance = "**"
	SigHigh   Significance = "***"
)

// ClassifySignificance maps a p-value onto the asterisk scale
func ClassifySignificance(p float64) Significance {
	switch {
	case p < AlphaStrict:
		return SigHigh
	case p < AlphaHigh:
		return SigMedium
	case p < Alpha:
		return SigLow
	default:
		return SigNone
	}
}

// Rank orders flags by strength so monotonicity can be checked: *** > ** > * > ns
func (s Significance) Rank() int {
	switch s {
	case SigHigh:
		return 3
	case SigMedium:
		return 2
	case SigLow:
		return 1
	default:
		return 0
	}
}

// Level returns the threshold statement printed next to the flag
func (s Significance) Level() string {
	switch s {
	case SigHigh:
		return "p < 0.001"
	case SigMedium:
		return "p < 0.01"
	case SigLow:
		return "p < 0.05"
	default:
		return "p >= 0.05"
	}
}

// Significant reports whether the flag clears the base alpha
func (s Significance) Significant() bool { return s != SigNone }

// Eta-squared effect size bands
const (
	EtaMedium = 0.06
	EtaLarge  = 0.14
)

// EffectSize is the qualitative eta-squared label
type EffectSize string

const (
	EffectSmall  EffectSize = "Small"
	EffectMedium EffectSize = "Medium"
	EffectLarge  EffectSize = "Large"
)

// ClassifyEffect maps eta squared onto the conventional bands
func ClassifyEffect(etaSquared float64) EffectSize {
	switch {
	case etaSquared >= EtaLarge:
		return EffectLarge
	case etaSquared >= EtaMedium:
		return EffectMedium
	default:
		return EffectSmall
	}
}

// GroupStat holds the descriptive statistics of one group within a test
type GroupStat struct {
	Value  string  // the grouping label value, e.g. an attribute_value
	N      int
	Mean   float64
	Std    float64
	Min    float64
	Max    float64
	Median float64
}

// TestResult is one one-way ANOVA outcome for a (variable, grouping) pair.
// When Insufficient is set the test could not run (fewer than two groups
// with n >= 2) and FStatistic/PValue carry no meaning.
type TestResult struct {
	Variable      string // score column tested
	EmpathyType   string
	AttributeType string

	FStatistic float64
	PValue     float64
	DFBetween  int
	DFWithin   int
	EtaSquared float64

	Significance Significance
	Effect       EffectSize

	TotalN      int
	OverallMean float64
	OverallStd  float64

	Groups   []GroupStat // groups that entered the test, sorted by value
	Excluded []GroupStat // groups with n < 2, flagged rather than tested

	Insufficient bool
}
