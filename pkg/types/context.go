package types

// DiagnosticContext is the evidence a caller submits for one inference run.
// Fact values are decoded as-is and normalized to confidences before seeding.
type DiagnosticContext struct {
	Facts   map[string]any `json:"facts" binding:"required"`
	Relabel bool           `json:"relabel,omitempty"`
}

// InputFact echoes one submitted fact with its interpreted confidence.
type InputFact struct {
	Code       string  `json:"code"`
	Confidence float64 `json:"confidence"`
	Label      string  `json:"label"`
}
