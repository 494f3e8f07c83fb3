package types

import "time"

type DiagnosisResult struct {
	RunID       string             `json:"run_id"`
	Inputs      []InputFact        `json:"inputs"`
	Facts       map[string]float64 `json:"facts"`
	Conclusions map[string]float64 `json:"conclusions"`
	Hypotheses  []Hypothesis       `json:"hypotheses"`
	Trace       []TraceEntry       `json:"trace"`
	Passes      int                `json:"passes"`
	GeneratedAt time.Time          `json:"generatedAt"`
	Engine      string             `json:"engine"` // "forward-chaining-cf"
}
