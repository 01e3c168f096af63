package model

// Concept is a deduplicated topic or entity, global to the installation.
// Counters only ever grow; concepts are never deleted.
type Concept struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	NormalizedName string `json:"normalized_name"`
	DocumentCount  int    `json:"document_count"`
	TotalMentions  int    `json:"total_mentions"`
	Ctime          int64  `json:"first_seen_at"`
	Mtime          int64  `json:"last_seen_at"`
}

// DocumentConcept links a document to a concept it mentions.
// Unique per (document, concept) pair.
type DocumentConcept struct {
	DocumentID     string  `json:"document_id"`
	ConceptID      string  `json:"concept_id"`
	MentionCount   int     `json:"mention_count"`
	RelevanceScore float64 `json:"relevance_score"`
}
