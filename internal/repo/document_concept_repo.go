package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/pkf/internal/model"
	"github.com/xxxsen/pkf/internal/pkg/dbutil"
)

type DocumentConceptRepo struct {
	db *sql.DB
}

func NewDocumentConceptRepo(db *sql.DB) *DocumentConceptRepo {
	return &DocumentConceptRepo{db: db}
}

func (r *DocumentConceptRepo) BulkUpsert(ctx context.Context, links []model.DocumentConcept) error {
	if len(links) == 0 {
		return nil
	}
	const query = `
		INSERT INTO document_concepts (document_id, concept_id, mention_count, relevance_score)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (document_id, concept_id) DO UPDATE SET
			mention_count = EXCLUDED.mention_count,
			relevance_score = EXCLUDED.relevance_score
	`
	for _, link := range links {
		if _, err := r.db.ExecContext(ctx, query, link.DocumentID, link.ConceptID, link.MentionCount, link.RelevanceScore); err != nil {
			return err
		}
	}
	return nil
}

func (r *DocumentConceptRepo) ListByDocument(ctx context.Context, documentID string) ([]model.DocumentConcept, error) {
	where := map[string]interface{}{
		"document_id": documentID,
	}
	query, args, err := builder.BuildSelect("document_concepts", where,
		[]string{"document_id", "concept_id", "mention_count", "relevance_score"})
	if err != nil {
		return nil, err
	}
	query, args = dbutil.Finalize(query, args)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var links []model.DocumentConcept
	for rows.Next() {
		var link model.DocumentConcept
		if err := rows.Scan(&link.DocumentID, &link.ConceptID, &link.MentionCount, &link.RelevanceScore); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

// ConceptIDsByUserBefore returns the distinct concept ids attached to
// the user's documents created strictly before the given time. This is
// the novelty history set.
func (r *DocumentConceptRepo) ConceptIDsByUserBefore(ctx context.Context, userID string, beforeCtime int64) (map[string]struct{}, error) {
	const query = `
		SELECT DISTINCT dc.concept_id
		FROM document_concepts dc
		JOIN documents d ON dc.document_id = d.id
		WHERE d.user_id = $1 AND d.ctime < $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, beforeCtime)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

func (r *DocumentConceptRepo) ConceptNamesByDocument(ctx context.Context, documentID string) ([]string, error) {
	const query = `
		SELECT c.name
		FROM document_concepts dc
		JOIN concepts c ON dc.concept_id = c.id
		WHERE dc.document_id = $1
		ORDER BY c.name
	`
	rows, err := r.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *DocumentConceptRepo) CountByDocument(ctx context.Context, documentID string) (int, error) {
	const query = `SELECT COUNT(*) FROM document_concepts WHERE document_id = $1`
	var count int
	if err := r.db.QueryRowContext(ctx, query, documentID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CountUserDocumentsWithConcept counts how many of the user's documents
// created up to and including the given time reference the concept.
// This is the "understanding depth" counter.
func (r *DocumentConceptRepo) CountUserDocumentsWithConcept(ctx context.Context, userID, conceptID string, upToCtime int64) (int, error) {
	const query = `
		SELECT COUNT(*)
		FROM document_concepts dc
		JOIN documents d ON dc.document_id = d.id
		WHERE d.user_id = $1 AND dc.concept_id = $2 AND d.ctime <= $3
	`
	var count int
	if err := r.db.QueryRowContext(ctx, query, userID, conceptID, upToCtime).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// DocConceptRow is one (document, concept) association with the
// document's word count, the flat input the graph builder groups.
type DocConceptRow struct {
	DocumentID string
	WordCount  int
	ConceptID  string
}

func (r *DocumentConceptRepo) ListUserDocConcepts(ctx context.Context, userID string) ([]DocConceptRow, error) {
	const query = `
		SELECT d.id, d.word_count, dc.concept_id
		FROM documents d
		JOIN document_concepts dc ON dc.document_id = d.id
		WHERE d.user_id = $1 AND d.is_processed = TRUE
		ORDER BY d.ctime ASC, d.id ASC, dc.concept_id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []DocConceptRow
	for rows.Next() {
		var row DocConceptRow
		if err := rows.Scan(&row.DocumentID, &row.WordCount, &row.ConceptID); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *DocumentConceptRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM document_concepts WHERE document_id = $1`, documentID)
	return err
}
