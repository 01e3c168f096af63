package service

import (
	"context"

	"github.com/xxxsen/pkf/internal/model"
	"github.com/xxxsen/pkf/internal/repo"
)

// ContradictionService surfaces claim-level contradictions and lets
// the user confirm or dismiss them. Detection itself is an extension
// point; records arrive through future comparison passes.
type ContradictionService struct {
	contradictions *repo.ContradictionRepo
}

func NewContradictionService(contradictions *repo.ContradictionRepo) *ContradictionService {
	return &ContradictionService{contradictions: contradictions}
}

func (s *ContradictionService) List(ctx context.Context, userID string, limit, offset int) ([]model.ContradictionDetection, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.contradictions.ListByUser(ctx, userID, limit, offset)
}

// Confirm records the user's verdict on one of their own detections.
// A nil value resets the flag to undecided.
func (s *ContradictionService) Confirm(ctx context.Context, userID, id string, confirmed *bool) error {
	return s.contradictions.SetUserConfirmed(ctx, userID, id, confirmed)
}
