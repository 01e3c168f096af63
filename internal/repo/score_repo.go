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

type ScoreRepo struct {
	db *sql.DB
}

func NewScoreRepo(db *sql.DB) *ScoreRepo {
	return &ScoreRepo{db: db}
}

// UpsertWithRedundancies writes the score row and its redundancy
// detections in one transaction. A rescoring run replaces the score in
// place while detection rows accumulate.
func (r *ScoreRepo) UpsertWithRedundancies(ctx context.Context, score *model.DocumentScore, detections []model.RedundancyDetection) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const upsert = `INSERT INTO document_scores
(document_id, user_id, novelty_score, depth_score, redundancy_score, cognitive_load_score, overall_value_score,
 novelty_explanation, depth_explanation, redundancy_explanation, cognitive_load_explanation, calculated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (document_id) DO UPDATE SET
 novelty_score = EXCLUDED.novelty_score,
 depth_score = EXCLUDED.depth_score,
 redundancy_score = EXCLUDED.redundancy_score,
 cognitive_load_score = EXCLUDED.cognitive_load_score,
 overall_value_score = EXCLUDED.overall_value_score,
 novelty_explanation = EXCLUDED.novelty_explanation,
 depth_explanation = EXCLUDED.depth_explanation,
 redundancy_explanation = EXCLUDED.redundancy_explanation,
 cognitive_load_explanation = EXCLUDED.cognitive_load_explanation,
 calculated_at = EXCLUDED.calculated_at`
	if _, err := tx.ExecContext(ctx, upsert,
		score.DocumentID, score.UserID,
		score.NoveltyScore, score.DepthScore, score.RedundancyScore, score.CognitiveLoadScore, score.OverallValueScore,
		score.NoveltyExplanation, score.DepthExplanation, score.RedundancyExplanation, score.CognitiveLoadExplanation,
		score.CalculatedAt); err != nil {
		return err
	}

	if len(detections) > 0 {
		data := make([]map[string]interface{}, 0, len(detections))
		for _, det := range detections {
			concepts, err := json.Marshal(det.RepeatedConcepts)
			if err != nil {
				return err
			}
			data = append(data, map[string]interface{}{
				"id":                 det.ID,
				"document_id":        det.DocumentID,
				"similar_to_id":      det.SimilarToID,
				"similarity_score":   det.SimilarityScore,
				"overlap_percentage": det.OverlapPercentage,
				"repeated_concepts":  string(concepts),
				"explanation":        det.Explanation,
				"detected_at":        det.DetectedAt,
			})
		}
		query, args, err := builder.BuildInsert("redundancy_detections", data)
		if err != nil {
			return err
		}
		query, args = dbutil.Finalize(query, args)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *ScoreRepo) GetByDocument(ctx context.Context, documentID string) (*model.DocumentScore, error) {
	const query = `SELECT document_id, user_id, novelty_score, depth_score, redundancy_score, cognitive_load_score,
overall_value_score, novelty_explanation, depth_explanation, redundancy_explanation, cognitive_load_explanation, calculated_at
FROM document_scores WHERE document_id = $1`
	var score model.DocumentScore
	err := r.db.QueryRowContext(ctx, query, documentID).Scan(
		&score.DocumentID, &score.UserID,
		&score.NoveltyScore, &score.DepthScore, &score.RedundancyScore, &score.CognitiveLoadScore, &score.OverallValueScore,
		&score.NoveltyExplanation, &score.DepthExplanation, &score.RedundancyExplanation, &score.CognitiveLoadExplanation,
		&score.CalculatedAt)
	if err == sql.ErrNoRows {
		return nil, appErr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// ListByUser returns score rows ordered by overall value, highest
// first, for the review surface.
func (r *ScoreRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.DocumentScore, error) {
	const query = `SELECT document_id, user_id, novelty_score, depth_score, redundancy_score, cognitive_load_score,
overall_value_score, novelty_explanation, depth_explanation, redundancy_explanation, cognitive_load_explanation, calculated_at
FROM document_scores WHERE user_id = $1 ORDER BY overall_value_score DESC, document_id ASC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var scores []model.DocumentScore
	for rows.Next() {
		var score model.DocumentScore
		if err := rows.Scan(
			&score.DocumentID, &score.UserID,
			&score.NoveltyScore, &score.DepthScore, &score.RedundancyScore, &score.CognitiveLoadScore, &score.OverallValueScore,
			&score.NoveltyExplanation, &score.DepthExplanation, &score.RedundancyExplanation, &score.CognitiveLoadExplanation,
			&score.CalculatedAt); err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

func (r *ScoreRepo) ListRedundanciesByDocument(ctx context.Context, documentID string) ([]model.RedundancyDetection, error) {
	const query = `SELECT id, document_id, similar_to_id, similarity_score, overlap_percentage, repeated_concepts, explanation, detected_at
FROM redundancy_detections WHERE document_id = $1 ORDER BY similarity_score DESC`
	rows, err := r.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var detections []model.RedundancyDetection
	for rows.Next() {
		var det model.RedundancyDetection
		var concepts []byte
		if err := rows.Scan(&det.ID, &det.DocumentID, &det.SimilarToID, &det.SimilarityScore,
			&det.OverlapPercentage, &concepts, &det.Explanation, &det.DetectedAt); err != nil {
			return nil, err
		}
		if len(concepts) > 0 {
			if err := json.Unmarshal(concepts, &det.RepeatedConcepts); err != nil {
				return nil, err
			}
		}
		detections = append(detections, det)
	}
	return detections, rows.Err()
}

func (r *ScoreRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM document_scores WHERE document_id = $1`, documentID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM redundancy_detections WHERE document_id = $1`, documentID); err != nil {
		return err
	}
	return tx.Commit()
}
