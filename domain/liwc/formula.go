package liwc

// Empathy formula weights. These are fixed scoring constants, not tunables:
// new_empathy_score = second_person*1.5 + negative_emotion*1.0
//   + (cognitive_processes+insight)*1.2 - first_person_singular*2.0
const (
	WeightSecondPerson     = 1.5
	WeightNegativeEmotion  = 1.0
	WeightCognitiveInsight = 1.2
	WeightFirstPerson      = 2.0
)

// FormulaDescription is the human-readable formula printed in reports.
const FormulaDescription = "(second_person x 1.5) + (negative_emotion x 1.0) + " +
	"((cognitive_processes + insight) x 1.2) - (first_person_singular x 2.0)"

// ScoreInputs holds the per-subject category measurements the formula consumes.
type ScoreInputs struct {
	SecondPerson        float64
	NegativeEmotion     float64
	CognitiveProcesses  float64
	Insight             float64
	FirstPersonSingular float64
}

// Contributions breaks the derived score into its weighted components.
// FirstPersonPenalty is stored positive and subtracted by Score.
type Contributions struct {
	SecondPerson       float64
	NegativeEmotion    float64
	CognitiveInsight   float64
	FirstPersonPenalty float64
}

// Score returns the derived empathy score for these contributions.
func (c Contributions) Score() float64 {
	return c.SecondPerson + c.NegativeEmotion + c.CognitiveInsight - c.FirstPersonPenalty
}

// Derive computes the weighted components of the empathy score for one row.
// Pure function of its inputs: identical inputs always yield identical output.
func Derive(in ScoreInputs) Contributions {
	return Contributions{
		SecondPerson:       in.SecondPerson * WeightSecondPerson,
		NegativeEmotion:    in.NegativeEmotion * WeightNegativeEmotion,
		CognitiveInsight:   (in.CognitiveProcesses + in.Insight) * WeightCognitiveInsight,
		FirstPersonPenalty: in.FirstPersonSingular * WeightFirstPerson,
	}
}
