package repo

import (
	"context"
	"database/sql"

	"github.com/xxxsen/pkf/internal/model"
	"github.com/xxxsen/pkf/internal/pkg/dbutil"
	appErr "github.com/xxxsen/pkf/internal/pkg/errors"
)

type ContradictionRepo struct {
	db *sql.DB
}

func NewContradictionRepo(db *sql.DB) *ContradictionRepo {
	return &ContradictionRepo{db: db}
}

func (r *ContradictionRepo) Create(ctx context.Context, det *model.ContradictionDetection) error {
	const query = `INSERT INTO contradiction_detections
(id, document_a_id, document_b_id, claim_a_id, claim_b_id, claim_a_text, claim_b_text, confidence_score, explanation, user_confirmed, detected_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query,
		det.ID, det.DocumentAID, det.DocumentBID, det.ClaimAID, det.ClaimBID,
		det.ClaimAText, det.ClaimBText, det.Confidence, det.Explanation, det.UserConfirmed, det.DetectedAt)
	if err != nil && dbutil.IsConflict(err) {
		return appErr.ErrConflict
	}
	return err
}

// ListByUser returns contradictions where either side belongs to one of
// the user's documents, newest first.
func (r *ContradictionRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.ContradictionDetection, error) {
	const query = `SELECT c.id, c.document_a_id, c.document_b_id, c.claim_a_id, c.claim_b_id,
c.claim_a_text, c.claim_b_text, c.confidence_score, c.explanation, c.user_confirmed, c.detected_at
FROM contradiction_detections c
JOIN documents d ON d.id = c.document_a_id
WHERE d.user_id = $1
ORDER BY c.detected_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var dets []model.ContradictionDetection
	for rows.Next() {
		var det model.ContradictionDetection
		if err := rows.Scan(&det.ID, &det.DocumentAID, &det.DocumentBID, &det.ClaimAID, &det.ClaimBID,
			&det.ClaimAText, &det.ClaimBText, &det.Confidence, &det.Explanation, &det.UserConfirmed, &det.DetectedAt); err != nil {
			return nil, err
		}
		dets = append(dets, det)
	}
	return dets, rows.Err()
}

// SetUserConfirmed records the user's verdict on a detection. The flag
// is tri-state; passing nil resets it to undecided. The update only
// touches detections anchored on one of the user's own documents.
func (r *ContradictionRepo) SetUserConfirmed(ctx context.Context, userID, id string, confirmed *bool) error {
	const query = `UPDATE contradiction_detections c SET user_confirmed = $1
FROM documents d
WHERE c.id = $2 AND d.id = c.document_a_id AND d.user_id = $3`
	res, err := r.db.ExecContext(ctx, query, confirmed, id, userID)
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
