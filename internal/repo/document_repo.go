package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/pkf/internal/model"
	"github.com/xxxsen/pkf/internal/pkg/dbutil"
	appErr "github.com/xxxsen/pkf/internal/pkg/errors"
)

const documentFields = `id, user_id, title, content_type, source_type, raw_content, normalized_content,
	source_url, source_name, author, word_count, char_count, read_time_minutes,
	is_processed, processing_error, ctime, ingested_at, mtime`

type DocumentRepo struct {
	db *sql.DB
}

func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

func scanDocument(scanner interface{ Scan(...interface{}) error }) (*model.Document, error) {
	var doc model.Document
	err := scanner.Scan(
		&doc.ID, &doc.UserID, &doc.Title, &doc.ContentType, &doc.SourceType,
		&doc.RawContent, &doc.NormalizedContent, &doc.SourceURL, &doc.SourceName,
		&doc.Author, &doc.WordCount, &doc.CharCount, &doc.ReadTimeMinutes,
		&doc.IsProcessed, &doc.ProcessingError, &doc.Ctime, &doc.IngestedAt, &doc.Mtime,
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepo) Create(ctx context.Context, doc *model.Document) error {
	const query = `
		INSERT INTO documents (` + documentFields + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.UserID, doc.Title, doc.ContentType, doc.SourceType,
		doc.RawContent, doc.NormalizedContent, doc.SourceURL, doc.SourceName,
		doc.Author, doc.WordCount, doc.CharCount, doc.ReadTimeMinutes,
		doc.IsProcessed, doc.ProcessingError, doc.Ctime, doc.IngestedAt, doc.Mtime,
	)
	if dbutil.IsConflict(err) {
		return appErr.ErrConflict
	}
	return err
}

func (r *DocumentRepo) GetByID(ctx context.Context, userID, id string) (*model.Document, error) {
	const query = `SELECT ` + documentFields + ` FROM documents WHERE id = $1 AND user_id = $2`
	doc, err := scanDocument(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, appErr.ErrNotFound
	}
	return doc, err
}

func (r *DocumentRepo) List(ctx context.Context, userID string, limit, offset uint) ([]model.Document, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "ctime desc",
		"_limit":   []uint{offset, limit},
	}
	query, args, err := builder.BuildSelect("documents", where, []string{documentFields})
	if err != nil {
		return nil, err
	}
	query, args = dbutil.Finalize(query, args)
	return r.queryDocuments(ctx, query, args...)
}

// ListPriorProcessed returns the user's processed documents created
// strictly before the given time, most recent first, bounded by limit.
// This is the redundancy comparison window.
func (r *DocumentRepo) ListPriorProcessed(ctx context.Context, userID string, beforeCtime int64, limit int) ([]model.Document, error) {
	const query = `
		SELECT ` + documentFields + `
		FROM documents
		WHERE user_id = $1 AND ctime < $2 AND is_processed = TRUE
		ORDER BY ctime DESC
		LIMIT $3
	`
	return r.queryDocuments(ctx, query, userID, beforeCtime, limit)
}

func (r *DocumentRepo) ListProcessedByUser(ctx context.Context, userID string) ([]model.Document, error) {
	where := map[string]interface{}{
		"user_id":      userID,
		"is_processed": true,
		"_orderby":     "ctime asc",
	}
	query, args, err := builder.BuildSelect("documents", where, []string{documentFields})
	if err != nil {
		return nil, err
	}
	query, args = dbutil.Finalize(query, args)
	return r.queryDocuments(ctx, query, args...)
}

func (r *DocumentRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM documents WHERE user_id = $1`
	var count int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateContent persists normalization results and derived metrics.
func (r *DocumentRepo) UpdateContent(ctx context.Context, doc *model.Document) error {
	const query = `
		UPDATE documents
		SET title = $1, normalized_content = $2, word_count = $3, char_count = $4,
			read_time_minutes = $5, mtime = $6
		WHERE id = $7
	`
	_, err := r.db.ExecContext(ctx, query,
		doc.Title, doc.NormalizedContent, doc.WordCount, doc.CharCount,
		doc.ReadTimeMinutes, doc.Mtime, doc.ID,
	)
	return err
}

func (r *DocumentRepo) SetProcessed(ctx context.Context, id string, processed bool, processingError string, mtime int64) error {
	const query = `
		UPDATE documents
		SET is_processed = $1, processing_error = $2, mtime = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, processed, processingError, mtime, id)
	return err
}

func (r *DocumentRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

const documentFieldsQualified = `d.id, d.user_id, d.title, d.content_type, d.source_type, d.raw_content, d.normalized_content,
	d.source_url, d.source_name, d.author, d.word_count, d.char_count, d.read_time_minutes,
	d.is_processed, d.processing_error, d.ctime, d.ingested_at, d.mtime`

// ListUnscored returns processed documents that have no score row yet.
func (r *DocumentRepo) ListUnscored(ctx context.Context, limit int) ([]model.Document, error) {
	const query = `
		SELECT ` + documentFieldsQualified + `
		FROM documents d
		LEFT JOIN document_scores s ON d.id = s.document_id
		WHERE d.is_processed = TRUE AND s.document_id IS NULL
		ORDER BY d.ctime ASC
		LIMIT $1
	`
	return r.queryDocuments(ctx, query, limit)
}

// ListUsersNeedingGraphRefresh returns users whose processed documents
// changed after their graph summary was last rebuilt.
func (r *DocumentRepo) ListUsersNeedingGraphRefresh(ctx context.Context) ([]string, error) {
	const query = `
		SELECT d.user_id
		FROM documents d
		LEFT JOIN user_knowledge_graphs g ON d.user_id = g.user_id
		WHERE d.is_processed = TRUE
		GROUP BY d.user_id, g.mtime
		HAVING g.mtime IS NULL OR MAX(d.mtime) > g.mtime
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		users = append(users, userID)
	}
	return users, rows.Err()
}

func (r *DocumentRepo) queryDocuments(ctx context.Context, query string, args ...interface{}) ([]model.Document, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var docs []model.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}
