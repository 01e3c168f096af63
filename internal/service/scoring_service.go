package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/pkf/internal/config"
	"github.com/xxxsen/pkf/internal/model"
	appErr "github.com/xxxsen/pkf/internal/pkg/errors"
	"github.com/xxxsen/pkf/internal/pkg/timeutil"
	"github.com/xxxsen/pkf/internal/pkg/vecmath"
	"github.com/xxxsen/pkf/internal/repo"
)

// ScoringService computes and persists the per-document value signals.
type ScoringService struct {
	docs        *repo.DocumentRepo
	docConcepts *repo.DocumentConceptRepo
	claims      *repo.ClaimRepo
	patterns    *repo.PatternRepo
	embeddings  *repo.EmbeddingRepo
	scores      *repo.ScoreRepo
	weights     scoringWeights
	threshold   float64
	window      int
}

func NewScoringService(docs *repo.DocumentRepo, docConcepts *repo.DocumentConceptRepo, claims *repo.ClaimRepo,
	patterns *repo.PatternRepo, embeddings *repo.EmbeddingRepo, scores *repo.ScoreRepo, cfg config.ScoringConfig) *ScoringService {
	return &ScoringService{
		docs:        docs,
		docConcepts: docConcepts,
		claims:      claims,
		patterns:    patterns,
		embeddings:  embeddings,
		scores:      scores,
		weights: scoringWeights{
			Novelty:    cfg.Weights.Novelty,
			Depth:      cfg.Weights.Depth,
			Redundancy: cfg.Weights.Redundancy,
		},
		threshold: cfg.SimilarityThreshold,
		window:    cfg.RedundancyWindow,
	}
}

// ScoreDocument recomputes every signal for one processed document and
// writes the score row plus any redundancy detections atomically.
func (s *ScoringService) ScoreDocument(ctx context.Context, userID, docID string) (*model.DocumentScore, error) {
	doc, err := s.docs.GetByID(ctx, userID, docID)
	if err != nil {
		return nil, err
	}
	if !doc.IsProcessed {
		return nil, appErr.ErrNotProcessed
	}

	links, err := s.docConcepts.ListByDocument(ctx, docID)
	if err != nil {
		return nil, err
	}
	history, err := s.docConcepts.ConceptIDsByUserBefore(ctx, userID, doc.Ctime)
	if err != nil {
		return nil, err
	}
	newCount, existingCount := 0, 0
	for _, link := range links {
		if _, ok := history[link.ConceptID]; ok {
			existingCount++
		} else {
			newCount++
		}
	}
	noveltyScore, noveltyExplanation := scoreNovelty(newCount, existingCount)

	claimCount, err := s.claims.CountByDocument(ctx, docID)
	if err != nil {
		return nil, err
	}
	depthScore, depthExplanation := scoreDepth(doc.WordCount, len(links), claimCount)

	patternCount, err := s.patterns.CountByDocument(ctx, docID)
	if err != nil {
		return nil, err
	}
	loadScore, loadExplanation := scoreCognitiveLoad(doc.WordCount, len(links), patternCount)

	redundancyScore, redundancyExplanation, detections, err := s.detectRedundancy(ctx, doc)
	if err != nil {
		return nil, err
	}

	score := &model.DocumentScore{
		DocumentID:               doc.ID,
		UserID:                   userID,
		NoveltyScore:             noveltyScore,
		DepthScore:               depthScore,
		RedundancyScore:          redundancyScore,
		CognitiveLoadScore:       loadScore,
		OverallValueScore:        overallValue(noveltyScore, depthScore, redundancyScore, s.weights),
		NoveltyExplanation:       noveltyExplanation,
		DepthExplanation:         depthExplanation,
		RedundancyExplanation:    redundancyExplanation,
		CognitiveLoadExplanation: loadExplanation,
		CalculatedAt:             timeutil.NowUnix(),
	}
	if err := s.scores.UpsertWithRedundancies(ctx, score, detections); err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Info("calculated document scores",
		zap.String("document_id", doc.ID),
		zap.Float64("overall_value", score.OverallValueScore),
		zap.Int("redundancies", len(detections)))
	return score, nil
}

func (s *ScoringService) GetScore(ctx context.Context, userID, docID string) (*model.DocumentScore, error) {
	if _, err := s.docs.GetByID(ctx, userID, docID); err != nil {
		return nil, err
	}
	return s.scores.GetByDocument(ctx, docID)
}

func (s *ScoringService) ListScores(ctx context.Context, userID string, limit, offset int) ([]model.DocumentScore, error) {
	return s.scores.ListByUser(ctx, userID, limit, offset)
}

func (s *ScoringService) ListRedundancies(ctx context.Context, userID, docID string) ([]model.RedundancyDetection, error) {
	if _, err := s.docs.GetByID(ctx, userID, docID); err != nil {
		return nil, err
	}
	return s.scores.ListRedundanciesByDocument(ctx, docID)
}

// BackfillUnscored scores processed documents that have no score row
// yet, oldest first. Failures are logged per document so one bad
// document cannot stall the batch.
func (s *ScoringService) BackfillUnscored(ctx context.Context, batch int) error {
	if batch <= 0 {
		batch = 20
	}
	docs, err := s.docs.ListUnscored(ctx, batch)
	if err != nil {
		return err
	}
	for i := range docs {
		doc := &docs[i]
		if _, err := s.ScoreDocument(ctx, doc.UserID, doc.ID); err != nil {
			logutil.GetLogger(ctx).Warn("backfill scoring failed",
				zap.String("document_id", doc.ID), zap.Error(err))
		}
	}
	return nil
}

// detectRedundancy compares the document's pooled embedding against the
// user's most recent processed documents. The score is the highest
// similarity seen; detections are emitted for matches above threshold.
func (s *ScoringService) detectRedundancy(ctx context.Context, doc *model.Document) (float64, string, []model.RedundancyDetection, error) {
	vectors, err := s.embeddings.VectorsByDocument(ctx, doc.ID)
	if err != nil {
		return 0, "", nil, err
	}
	if len(vectors) == 0 {
		return 0.0, "No embeddings available for comparison.", nil, nil
	}
	docVector, err := vecmath.MeanPool(vectors)
	if err != nil {
		return 0, "", nil, err
	}

	prevDocs, err := s.docs.ListPriorProcessed(ctx, doc.UserID, doc.Ctime, s.window)
	if err != nil {
		return 0, "", nil, err
	}

	var docConceptNames []string
	var detections []model.RedundancyDetection
	maxSimilarity := 0.0
	now := timeutil.NowUnix()

	for i := range prevDocs {
		prev := &prevDocs[i]
		prevVectors, err := s.embeddings.VectorsByDocument(ctx, prev.ID)
		if err != nil {
			return 0, "", nil, err
		}
		if len(prevVectors) == 0 {
			continue
		}
		prevVector, err := vecmath.MeanPool(prevVectors)
		if err != nil {
			return 0, "", nil, err
		}
		similarity, err := vecmath.Cosine(docVector, prevVector)
		if err != nil {
			return 0, "", nil, err
		}
		sim := float64(similarity)
		if sim > maxSimilarity {
			maxSimilarity = sim
		}
		if sim <= s.threshold {
			continue
		}

		if docConceptNames == nil {
			docConceptNames, err = s.docConcepts.ConceptNamesByDocument(ctx, doc.ID)
			if err != nil {
				return 0, "", nil, err
			}
		}
		prevConceptNames, err := s.docConcepts.ConceptNamesByDocument(ctx, prev.ID)
		if err != nil {
			return 0, "", nil, err
		}
		overlap := intersect(docConceptNames, prevConceptNames)
		overlapPct := 0.0
		if len(docConceptNames) > 0 {
			overlapPct = float64(len(overlap)) / float64(len(docConceptNames))
		}
		detections = append(detections, model.RedundancyDetection{
			ID:                newID(),
			DocumentID:        doc.ID,
			SimilarToID:       prev.ID,
			SimilarityScore:   sim,
			OverlapPercentage: overlapPct,
			RepeatedConcepts:  overlap,
			Explanation: fmt.Sprintf("This content is %.0f%% similar to '%s' from %s. They share %d concepts.",
				sim*100, prev.Title, timeutil.FormatDate(prev.IngestedAt), len(overlap)),
			DetectedAt: now,
		})
	}

	var explanation string
	if len(detections) > 0 {
		explanation = fmt.Sprintf("High redundancy detected: %d similar document(s) found.", len(detections))
	} else {
		explanation = "Low redundancy: This content appears to be unique compared to your recent reading."
	}
	return maxSimilarity, explanation, detections, nil
}

func intersect(a, b []string) []string {
	seen := make(map[string]struct{}, len(a))
	for _, name := range a {
		seen[name] = struct{}{}
	}
	var out []string
	for _, name := range b {
		if _, ok := seen[name]; ok {
			out = append(out, name)
			delete(seen, name)
		}
	}
	sort.Strings(out)
	return out
}
