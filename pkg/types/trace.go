package types

// TraceEntry records one committed rule firing.
type TraceEntry struct {
	Pass          int       `json:"pass"`
	RuleID        string    `json:"rule_id"`
	Antecedents   []string  `json:"antecedents"`
	AntecedentCFs []float64 `json:"antecedent_cfs"`
	AntecedentCF  float64   `json:"antecedent_combined_cf"`
	RuleStrength  float64   `json:"rule_strength"`
	Contribution  float64   `json:"contribution"`
	Conclusion    string    `json:"conclusion"`
	OldCF         float64   `json:"old_cf"`
	NewCF         float64   `json:"new_cf"`
	Note          string    `json:"note,omitempty"`
}
