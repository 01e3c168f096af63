package job

import (
	"context"

	"github.com/xxxsen/pkf/internal/service"
)

// ScoreBackfillJob scores processed documents whose synchronous
// scoring pass failed or was skipped.
type ScoreBackfillJob struct {
	scoring *service.ScoringService
	batch   int
}

func NewScoreBackfillJob(scoring *service.ScoringService, batch int) *ScoreBackfillJob {
	return &ScoreBackfillJob{scoring: scoring, batch: batch}
}

func (j *ScoreBackfillJob) Name() string {
	return "score_backfill"
}

func (j *ScoreBackfillJob) Run(ctx context.Context) error {
	return j.scoring.BackfillUnscored(ctx, j.batch)
}
