package model

const (
	ClaimTypeFactual    = "factual"
	ClaimTypeOpinion    = "opinion"
	ClaimTypePrediction = "prediction"
	ClaimTypeStatistic  = "statistic"
)

type Claim struct {
	ID             string  `json:"id"`
	DocumentID     string  `json:"document_id"`
	Text           string  `json:"text"`
	NormalizedText string  `json:"normalized_text"`
	ClaimType      string  `json:"claim_type"`
	Confidence     float64 `json:"confidence_score"`
	Ctime          int64   `json:"created_at"`
}

const (
	PatternOutrage   = "outrage"
	PatternFear      = "fear"
	PatternUrgency   = "urgency"
	PatternClickbait = "clickbait"
	PatternHyperbole = "hyperbole"
)

// EmotionalPattern records a manipulation tactic found in a document.
// It is an input to cognitive load scoring, not a truth judgment.
type EmotionalPattern struct {
	ID             string   `json:"id"`
	DocumentID     string   `json:"document_id"`
	PatternType    string   `json:"pattern_type"`
	MatchedPhrases []string `json:"matched_phrases"`
	Context        string   `json:"context"`
	Intensity      float64  `json:"intensity_score"`
	Explanation    string   `json:"explanation"`
	Ctime          int64    `json:"created_at"`
}
