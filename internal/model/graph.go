package model

const RelationshipTypeRelated = "related"

// ConceptRelationship is an undirected co-occurrence edge. ConceptAID
// always sorts before ConceptBID so A-B and B-A collapse to one row.
type ConceptRelationship struct {
	UserID            string  `json:"user_id"`
	ConceptAID        string  `json:"concept_a_id"`
	ConceptBID        string  `json:"concept_b_id"`
	RelationshipType  string  `json:"relationship_type"`
	Strength          float64 `json:"strength"`
	WeightedStrength  float64 `json:"weighted_strength"`
	CoOccurrenceCount int     `json:"co_occurrence_count"`
	Mtime             int64   `json:"updated_at"`
}

type TopConcept struct {
	Name       string  `json:"name"`
	Centrality float64 `json:"centrality"`
}

// UserKnowledgeGraph is the cached per-user summary, rebuilt wholesale.
type UserKnowledgeGraph struct {
	UserID             string       `json:"user_id"`
	TotalConcepts      int          `json:"total_concepts"`
	TotalRelationships int          `json:"total_relationships"`
	TotalDocuments     int          `json:"total_documents"`
	TopConcepts        []TopConcept `json:"top_concepts"`
	Mtime              int64        `json:"updated_at"`
}

type RelatedConcept struct {
	Name     string  `json:"name"`
	Strength float64 `json:"strength"`
}

// ConceptEvolution is an append-only snapshot of how a concept looked
// right after a given document was processed.
type ConceptEvolution struct {
	ID                 string           `json:"id"`
	UserID             string           `json:"user_id"`
	ConceptID          string           `json:"concept_id"`
	DocumentID         string           `json:"document_id"`
	RelatedConcepts    []RelatedConcept `json:"related_concepts"`
	UnderstandingDepth int              `json:"understanding_depth"`
	Ctime              int64            `json:"created_at"`
}
