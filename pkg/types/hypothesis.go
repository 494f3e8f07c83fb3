package types

// Hypothesis is a ranked conclusion of an inference run.
type Hypothesis struct {
	Rank       int      `json:"rank"`
	Conclusion string   `json:"conclusion"`
	Label      string   `json:"label,omitempty"`
	Confidence float64  `json:"confidence"`
	Evidence   []string `json:"evidence"`
}
