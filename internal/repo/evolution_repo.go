package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/xxxsen/pkf/internal/model"
)

type EvolutionRepo struct {
	db *sql.DB
}

func NewEvolutionRepo(db *sql.DB) *EvolutionRepo {
	return &EvolutionRepo{db: db}
}

func (r *EvolutionRepo) Append(ctx context.Context, evo *model.ConceptEvolution) error {
	related, err := json.Marshal(evo.RelatedConcepts)
	if err != nil {
		return err
	}
	const query = `INSERT INTO concept_evolutions
(id, user_id, concept_id, document_id, related_concepts, understanding_depth, ctime)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.db.ExecContext(ctx, query,
		evo.ID, evo.UserID, evo.ConceptID, evo.DocumentID, string(related), evo.UnderstandingDepth, evo.Ctime)
	return err
}

// ListByConcept returns the snapshot timeline for one concept, newest
// first.
func (r *EvolutionRepo) ListByConcept(ctx context.Context, userID string, conceptID string, limit int) ([]model.ConceptEvolution, error) {
	const query = `SELECT id, user_id, concept_id, document_id, related_concepts, understanding_depth, ctime
FROM concept_evolutions WHERE user_id = $1 AND concept_id = $2 ORDER BY ctime DESC LIMIT $3`
	rows, err := r.db.QueryContext(ctx, query, userID, conceptID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var evos []model.ConceptEvolution
	for rows.Next() {
		var evo model.ConceptEvolution
		var related []byte
		if err := rows.Scan(&evo.ID, &evo.UserID, &evo.ConceptID, &evo.DocumentID, &related, &evo.UnderstandingDepth, &evo.Ctime); err != nil {
			return nil, err
		}
		if len(related) > 0 {
			if err := json.Unmarshal(related, &evo.RelatedConcepts); err != nil {
				return nil, err
			}
		}
		evos = append(evos, evo)
	}
	return evos, rows.Err()
}
