package model

// ChunkEmbedding is the vector for a single content chunk.
// Immutable once written; one-to-one with the chunk.
type ChunkEmbedding struct {
	ChunkID    string    `json:"chunk_id"`
	DocumentID string    `json:"document_id"`
	Vector     []float32 `json:"vector"`
	ModelName  string    `json:"model_name"`
	Dimension  int       `json:"dimension"`
	Ctime      int64     `json:"created_at"`
}
