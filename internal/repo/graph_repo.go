package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/pkf/internal/model"
	"github.com/xxxsen/pkf/internal/pkg/dbutil"
	appErr "github.com/xxxsen/pkf/internal/pkg/errors"
)

type GraphRepo struct {
	db *sql.DB
}

func NewGraphRepo(db *sql.DB) *GraphRepo {
	return &GraphRepo{db: db}
}

// SaveGraph replaces the user's edge set and summary atomically. A
// failed rebuild leaves the previous graph state untouched.
func (r *GraphRepo) SaveGraph(ctx context.Context, graph *model.UserKnowledgeGraph, edges []model.ConceptRelationship) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM concept_relationships WHERE user_id = $1`, graph.UserID); err != nil {
		return err
	}

	if len(edges) > 0 {
		data := make([]map[string]interface{}, 0, len(edges))
		for _, edge := range edges {
			data = append(data, map[string]interface{}{
				"user_id":             edge.UserID,
				"concept_a_id":        edge.ConceptAID,
				"concept_b_id":        edge.ConceptBID,
				"relationship_type":   edge.RelationshipType,
				"strength":            edge.Strength,
				"weighted_strength":   edge.WeightedStrength,
				"co_occurrence_count": edge.CoOccurrenceCount,
				"mtime":               edge.Mtime,
			})
		}
		query, args, err := builder.BuildInsert("concept_relationships", data)
		if err != nil {
			return err
		}
		query, args = dbutil.Finalize(query, args)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	top, err := json.Marshal(graph.TopConcepts)
	if err != nil {
		return err
	}
	const upsert = `INSERT INTO user_knowledge_graphs
(user_id, total_concepts, total_relationships, total_documents, top_concepts, mtime)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id) DO UPDATE SET
 total_concepts = EXCLUDED.total_concepts,
 total_relationships = EXCLUDED.total_relationships,
 total_documents = EXCLUDED.total_documents,
 top_concepts = EXCLUDED.top_concepts,
 mtime = EXCLUDED.mtime`
	if _, err := tx.ExecContext(ctx, upsert,
		graph.UserID, graph.TotalConcepts, graph.TotalRelationships, graph.TotalDocuments,
		string(top), graph.Mtime); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *GraphRepo) GetSummary(ctx context.Context, userID string) (*model.UserKnowledgeGraph, error) {
	const query = `SELECT user_id, total_concepts, total_relationships, total_documents, top_concepts, mtime
FROM user_knowledge_graphs WHERE user_id = $1`
	var graph model.UserKnowledgeGraph
	var top []byte
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&graph.UserID, &graph.TotalConcepts, &graph.TotalRelationships, &graph.TotalDocuments, &top, &graph.Mtime)
	if err == sql.ErrNoRows {
		return nil, appErr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(top) > 0 {
		if err := json.Unmarshal(top, &graph.TopConcepts); err != nil {
			return nil, err
		}
	}
	return &graph, nil
}

// Neighbors returns edges touching the concept, strongest first.
func (r *GraphRepo) Neighbors(ctx context.Context, userID string, conceptID string, limit int) ([]model.ConceptRelationship, error) {
	const query = `SELECT user_id, concept_a_id, concept_b_id, relationship_type, strength, weighted_strength, co_occurrence_count, mtime
FROM concept_relationships
WHERE user_id = $1 AND (concept_a_id = $2 OR concept_b_id = $2)
ORDER BY weighted_strength DESC, concept_a_id ASC, concept_b_id ASC
LIMIT $3`
	rows, err := r.db.QueryContext(ctx, query, userID, conceptID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var edges []model.ConceptRelationship
	for rows.Next() {
		var edge model.ConceptRelationship
		if err := rows.Scan(&edge.UserID, &edge.ConceptAID, &edge.ConceptBID, &edge.RelationshipType,
			&edge.Strength, &edge.WeightedStrength, &edge.CoOccurrenceCount, &edge.Mtime); err != nil {
			return nil, err
		}
		edges = append(edges, edge)
	}
	return edges, rows.Err()
}

func (r *GraphRepo) ListEdges(ctx context.Context, userID string) ([]model.ConceptRelationship, error) {
	const query = `SELECT user_id, concept_a_id, concept_b_id, relationship_type, strength, weighted_strength, co_occurrence_count, mtime
FROM concept_relationships WHERE user_id = $1 ORDER BY weighted_strength DESC, concept_a_id ASC, concept_b_id ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var edges []model.ConceptRelationship
	for rows.Next() {
		var edge model.ConceptRelationship
		if err := rows.Scan(&edge.UserID, &edge.ConceptAID, &edge.ConceptBID, &edge.RelationshipType,
			&edge.Strength, &edge.WeightedStrength, &edge.CoOccurrenceCount, &edge.Mtime); err != nil {
			return nil, err
		}
		edges = append(edges, edge)
	}
	return edges, rows.Err()
}
