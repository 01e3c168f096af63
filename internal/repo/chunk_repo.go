package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/pkf/internal/model"
	"github.com/xxxsen/pkf/internal/pkg/dbutil"
)

type ChunkRepo struct {
	db *sql.DB
}

func NewChunkRepo(db *sql.DB) *ChunkRepo {
	return &ChunkRepo{db: db}
}

func (r *ChunkRepo) BulkCreate(ctx context.Context, chunks []model.ContentChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	data := make([]map[string]interface{}, 0, len(chunks))
	for _, chunk := range chunks {
		data = append(data, map[string]interface{}{
			"id":          chunk.ID,
			"document_id": chunk.DocumentID,
			"text":        chunk.Text,
			"chunk_index": chunk.ChunkIndex,
			"word_count":  chunk.WordCount,
			"char_count":  chunk.CharCount,
		})
	}
	query, args, err := builder.BuildInsert("content_chunks", data)
	if err != nil {
		return err
	}
	query, args = dbutil.Finalize(query, args)
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *ChunkRepo) ListByDocument(ctx context.Context, documentID string) ([]model.ContentChunk, error) {
	where := map[string]interface{}{
		"document_id": documentID,
		"_orderby":    "chunk_index asc",
	}
	query, args, err := builder.BuildSelect("content_chunks", where,
		[]string{"id", "document_id", "text", "chunk_index", "word_count", "char_count"})
	if err != nil {
		return nil, err
	}
	query, args = dbutil.Finalize(query, args)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var chunks []model.ContentChunk
	for rows.Next() {
		var chunk model.ContentChunk
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Text, &chunk.ChunkIndex, &chunk.WordCount, &chunk.CharCount); err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}
	return chunks, rows.Err()
}

func (r *ChunkRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM content_chunks WHERE document_id = $1`, documentID)
	return err
}
