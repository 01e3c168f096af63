package repo

import (
	"context"
	"database/sql"

	"github.com/pgvector/pgvector-go"

	"github.com/xxxsen/pkf/internal/model"
)

type EmbeddingRepo struct {
	db *sql.DB
}

func NewEmbeddingRepo(db *sql.DB) *EmbeddingRepo {
	return &EmbeddingRepo{db: db}
}

func (r *EmbeddingRepo) BulkCreate(ctx context.Context, embeddings []model.ChunkEmbedding) error {
	const query = `
		INSERT INTO chunk_embeddings (chunk_id, document_id, embedding, model_name, dimension, ctime)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (chunk_id) DO NOTHING
	`
	for _, emb := range embeddings {
		_, err := r.db.ExecContext(ctx, query,
			emb.ChunkID, emb.DocumentID, pgvector.NewVector(emb.Vector),
			emb.ModelName, emb.Dimension, emb.Ctime,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// VectorsByDocument returns the document's chunk vectors in chunk
// order. An empty result is a normal condition, not an error.
func (r *EmbeddingRepo) VectorsByDocument(ctx context.Context, documentID string) ([][]float32, error) {
	const query = `
		SELECT e.embedding
		FROM chunk_embeddings e
		JOIN content_chunks c ON e.chunk_id = c.id
		WHERE e.document_id = $1
		ORDER BY c.chunk_index ASC
	`
	rows, err := r.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var vectors [][]float32
	for rows.Next() {
		var vec pgvector.Vector
		if err := rows.Scan(&vec); err != nil {
			return nil, err
		}
		vectors = append(vectors, vec.Slice())
	}
	return vectors, rows.Err()
}

func (r *EmbeddingRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM chunk_embeddings WHERE document_id = $1`, documentID)
	return err
}
