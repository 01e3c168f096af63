package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/pkf/internal/model"
	"github.com/xxxsen/pkf/internal/pkg/dbutil"
)

type PatternRepo struct {
	db *sql.DB
}

func NewPatternRepo(db *sql.DB) *PatternRepo {
	return &PatternRepo{db: db}
}

func (r *PatternRepo) BulkCreate(ctx context.Context, patterns []model.EmotionalPattern) error {
	if len(patterns) == 0 {
		return nil
	}
	data := make([]map[string]interface{}, 0, len(patterns))
	for _, pattern := range patterns {
		phrases, err := json.Marshal(pattern.MatchedPhrases)
		if err != nil {
			return err
		}
		data = append(data, map[string]interface{}{
			"id":              pattern.ID,
			"document_id":     pattern.DocumentID,
			"pattern_type":    pattern.PatternType,
			"matched_phrases": string(phrases),
			"context":         pattern.Context,
			"intensity_score": pattern.Intensity,
			"explanation":     pattern.Explanation,
			"ctime":           pattern.Ctime,
		})
	}
	query, args, err := builder.BuildInsert("emotional_patterns", data)
	if err != nil {
		return err
	}
	query, args = dbutil.Finalize(query, args)
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *PatternRepo) ListByDocument(ctx context.Context, documentID string) ([]model.EmotionalPattern, error) {
	const query = `SELECT id, document_id, pattern_type, matched_phrases, context, intensity_score, explanation, ctime
FROM emotional_patterns WHERE document_id = $1 ORDER BY intensity_score DESC`
	rows, err := r.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var patterns []model.EmotionalPattern
	for rows.Next() {
		var pattern model.EmotionalPattern
		var phrases []byte
		if err := rows.Scan(&pattern.ID, &pattern.DocumentID, &pattern.PatternType, &phrases,
			&pattern.Context, &pattern.Intensity, &pattern.Explanation, &pattern.Ctime); err != nil {
			return nil, err
		}
		if len(phrases) > 0 {
			if err := json.Unmarshal(phrases, &pattern.MatchedPhrases); err != nil {
				return nil, err
			}
		}
		patterns = append(patterns, pattern)
	}
	return patterns, rows.Err()
}

func (r *PatternRepo) CountByDocument(ctx context.Context, documentID string) (int, error) {
	const query = `SELECT COUNT(*) FROM emotional_patterns WHERE document_id = $1`
	var count int
	if err := r.db.QueryRowContext(ctx, query, documentID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PatternRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM emotional_patterns WHERE document_id = $1`, documentID)
	return err
}
