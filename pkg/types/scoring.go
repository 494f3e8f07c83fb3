package types

import "strconv"

// Numeric constants of the certainty-factor engine.
const (
	// DefaultRuleStrength is applied to rules that declare no cf.
	DefaultRuleStrength = 1.0

	// DefaultConfidence replaces user confidence values that are not numbers.
	DefaultConfidence = 1.0

	// MemoEpsilon is the tolerance under which a rule's antecedent CF counts
	// as unchanged since its last firing.
	MemoEpsilon = 1e-9

	// ChangeEpsilon is the smallest change to a conclusion that is committed.
	ChangeEpsilon = 1e-6

	// RoundDecimals is the precision of finalized CFs.
	RoundDecimals = 4

	MinCF = -1.0
	MaxCF = 1.0
)

// ConfidenceLabel pairs a user confidence level with its wording.
type ConfidenceLabel struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// ConfidenceLabels are the answers offered to users, strongest first.
var ConfidenceLabels = []ConfidenceLabel{
	{Value: 1.0, Label: "Very sure"},
	{Value: 0.8, Label: "Sure"},
	{Value: 0.5, Label: "Unsure"},
	{Value: 0.2, Label: "Not sure"},
	{Value: 0.0, Label: "Very unsure"},
}

// LabelForConfidence returns the wording for v, or v itself formatted when
// it is not one of the offered levels.
func LabelForConfidence(v float64) string {
	for _, l := range ConfidenceLabels {
		if l.Value == v {
			return l.Label
		}
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
