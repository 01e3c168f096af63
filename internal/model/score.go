package model

// DocumentScore holds the per-document value signals. One row per
// document, recomputed in place on reprocessing.
type DocumentScore struct {
	DocumentID               string  `json:"document_id"`
	UserID                   string  `json:"user_id"`
	NoveltyScore             float64 `json:"novelty_score"`
	DepthScore               float64 `json:"depth_score"`
	RedundancyScore          float64 `json:"redundancy_score"`
	CognitiveLoadScore       float64 `json:"cognitive_load_score"`
	OverallValueScore        float64 `json:"overall_value_score"`
	NoveltyExplanation       string  `json:"novelty_explanation"`
	DepthExplanation         string  `json:"depth_explanation"`
	RedundancyExplanation    string  `json:"redundancy_explanation"`
	CognitiveLoadExplanation string  `json:"cognitive_load_explanation"`
	CalculatedAt             int64   `json:"calculated_at"`
}

// RedundancyDetection links a new document to an earlier similar one.
// Rows accumulate across scoring runs; they are never deduplicated.
type RedundancyDetection struct {
	ID                string   `json:"id"`
	DocumentID        string   `json:"document_id"`
	SimilarToID       string   `json:"similar_to_id"`
	SimilarityScore   float64  `json:"similarity_score"`
	OverlapPercentage float64  `json:"overlap_percentage"`
	RepeatedConcepts  []string `json:"repeated_concepts"`
	Explanation       string   `json:"explanation"`
	DetectedAt        int64    `json:"detected_at"`
}

// ContradictionDetection is the persisted shape for claim-level
// contradictions between two documents. The comparison algorithm is a
// future extension point; only the record and its user-confirmation
// flow exist today.
type ContradictionDetection struct {
	ID            string  `json:"id"`
	DocumentAID   string  `json:"document_a_id"`
	DocumentBID   string  `json:"document_b_id"`
	ClaimAID      string  `json:"claim_a_id"`
	ClaimBID      string  `json:"claim_b_id"`
	ClaimAText    string  `json:"claim_a_text"`
	ClaimBText    string  `json:"claim_b_text"`
	Confidence    float64 `json:"confidence_score"`
	Explanation   string  `json:"explanation"`
	UserConfirmed *bool   `json:"user_confirmed"`
	DetectedAt    int64   `json:"detected_at"`
}
