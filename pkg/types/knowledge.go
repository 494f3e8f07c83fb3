package types

// KnowledgeBase is the parsed rule file: the symptoms users can report and the
// production rules that derive conclusions from them.
type KnowledgeBase struct {
	Symptoms []Symptom         `json:"symptoms" yaml:"symptoms" validate:"dive"`
	Rules    []Rule            `json:"rules" yaml:"rules" validate:"dive"`
	Labels   map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

type Symptom struct {
	Code string  `json:"code" yaml:"code" validate:"required"`
	Name string  `json:"name,omitempty" yaml:"name,omitempty"`
	MB   float64 `json:"mb" yaml:"mb"`
	MD   float64 `json:"md" yaml:"md"`
}

// BaseCF is the symptom's certainty before user confidence is applied.
func (s Symptom) BaseCF() float64 {
	return s.MB - s.MD
}

type Rule struct {
	ID   string   `json:"id" yaml:"id" validate:"required"`
	If   []string `json:"if" yaml:"if"`
	Then string   `json:"then" yaml:"then" validate:"required"`
	CF   *float64 `json:"cf,omitempty" yaml:"cf,omitempty"`
	Note string   `json:"note,omitempty" yaml:"note,omitempty"`
}

// Strength returns the rule CF. A rule without one fires at full strength.
func (r Rule) Strength() float64 {
	if r.CF == nil {
		return DefaultRuleStrength
	}
	return *r.CF
}

// SymptomIndex maps symptom codes to their definitions.
func (kb *KnowledgeBase) SymptomIndex() map[string]Symptom {
	idx := make(map[string]Symptom, len(kb.Symptoms))
	for _, s := range kb.Symptoms {
		idx[s.Code] = s
	}
	return idx
}
