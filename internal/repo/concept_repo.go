package repo

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/xxxsen/pkf/internal/model"
)

type ConceptRepo struct {
	db *sql.DB
}

func NewConceptRepo(db *sql.DB) *ConceptRepo {
	return &ConceptRepo{db: db}
}

// GetOrCreate returns the concept with the given normalized name,
// creating it on first sight. Concepts are global and never deleted.
func (r *ConceptRepo) GetOrCreate(ctx context.Context, id, name, normalizedName string, now int64) (*model.Concept, error) {
	const insert = `
		INSERT INTO concepts (id, name, normalized_name, document_count, total_mentions, ctime, mtime)
		VALUES ($1, $2, $3, 0, 0, $4, $4)
		ON CONFLICT (normalized_name) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, insert, id, name, normalizedName, now); err != nil {
		return nil, err
	}
	const query = `
		SELECT id, name, normalized_name, document_count, total_mentions, ctime, mtime
		FROM concepts WHERE normalized_name = $1
	`
	var c model.Concept
	err := r.db.QueryRowContext(ctx, query, normalizedName).Scan(
		&c.ID, &c.Name, &c.NormalizedName, &c.DocumentCount, &c.TotalMentions, &c.Ctime, &c.Mtime,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// BumpCounters accumulates the monotonic per-concept totals when a new
// document references the concept.
func (r *ConceptRepo) BumpCounters(ctx context.Context, conceptID string, mentions int, now int64) error {
	const query = `
		UPDATE concepts
		SET document_count = document_count + 1,
			total_mentions = total_mentions + $1,
			mtime = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, mentions, now, conceptID)
	return err
}

func (r *ConceptRepo) NamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	query, args, err := sqlx.In(`SELECT id, name FROM concepts WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	query = sqlx.Rebind(sqlx.DOLLAR, query)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	names := make(map[string]string, len(ids))
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}
