package model

const (
	InsightMisinformation = "misinformation"
	InsightAI             = "ai"
	InsightRepetition     = "repetition"
	InsightCognitiveLoad  = "cognitive_load"
)

// Insight is the uniform explanation-first signal shape shared by the
// live snippet path and document insight cards. Never persisted.
type Insight struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	Confidence   float64 `json:"confidence"`
	Explanation  string  `json:"explanation"`
	AffectedText string  `json:"affected_text"`
	CreatedAt    string  `json:"created_at"`
}
