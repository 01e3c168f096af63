package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/pkf/internal/model"
	"github.com/xxxsen/pkf/internal/pkg/dbutil"
)

type ClaimRepo struct {
	db *sql.DB
}

func NewClaimRepo(db *sql.DB) *ClaimRepo {
	return &ClaimRepo{db: db}
}

func (r *ClaimRepo) BulkCreate(ctx context.Context, claims []model.Claim) error {
	if len(claims) == 0 {
		return nil
	}
	data := make([]map[string]interface{}, 0, len(claims))
	for _, claim := range claims {
		data = append(data, map[string]interface{}{
			"id":               claim.ID,
			"document_id":      claim.DocumentID,
			"text":             claim.Text,
			"normalized_text":  claim.NormalizedText,
			"claim_type":       claim.ClaimType,
			"confidence_score": claim.Confidence,
			"ctime":            claim.Ctime,
		})
	}
	query, args, err := builder.BuildInsert("claims", data)
	if err != nil {
		return err
	}
	query, args = dbutil.Finalize(query, args)
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *ClaimRepo) CountByDocument(ctx context.Context, documentID string) (int, error) {
	const query = `SELECT COUNT(*) FROM claims WHERE document_id = $1`
	var count int
	if err := r.db.QueryRowContext(ctx, query, documentID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ClaimRepo) ListByDocument(ctx context.Context, documentID string) ([]model.Claim, error) {
	where := map[string]interface{}{
		"document_id": documentID,
		"_orderby":    "ctime asc",
	}
	query, args, err := builder.BuildSelect("claims", where,
		[]string{"id", "document_id", "text", "normalized_text", "claim_type", "confidence_score", "ctime"})
	if err != nil {
		return nil, err
	}
	query, args = dbutil.Finalize(query, args)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var claims []model.Claim
	for rows.Next() {
		var claim model.Claim
		if err := rows.Scan(&claim.ID, &claim.DocumentID, &claim.Text, &claim.NormalizedText, &claim.ClaimType, &claim.Confidence, &claim.Ctime); err != nil {
			return nil, err
		}
		claims = append(claims, claim)
	}
	return claims, rows.Err()
}

func (r *ClaimRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM claims WHERE document_id = $1`, documentID)
	return err
}
