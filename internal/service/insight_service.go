package service

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/xxxsen/pkf/internal/model"
	"github.com/xxxsen/pkf/internal/repo"
)

const (
	seenCacheSize = 4096
	seenCacheTTL  = 30 * time.Minute
)

// lruSeenStore remembers recently analyzed snippet hashes per user so
// the repetition signal can fire without any storage writes. Entries
// age out so yesterday's reading does not count as repetition.
type lruSeenStore struct {
	cache *expirable.LRU[string, struct{}]
}

func newLRUSeenStore() *lruSeenStore {
	return &lruSeenStore{
		cache: expirable.NewLRU[string, struct{}](seenCacheSize, nil, seenCacheTTL),
	}
}

func (s *lruSeenStore) SeenBefore(userID, hash string) bool {
	key := userID + ":" + hash
	if _, ok := s.cache.Get(key); ok {
		return true
	}
	s.cache.Add(key, struct{}{})
	return false
}

// InsightService serves live snippet analysis and document insight
// cards derived from stored score explanations.
type InsightService struct {
	docs   *repo.DocumentRepo
	scores *repo.ScoreRepo
	seen   *lruSeenStore
}

func NewInsightService(docs *repo.DocumentRepo, scores *repo.ScoreRepo) *InsightService {
	return &InsightService{
		docs:   docs,
		scores: scores,
		seen:   newLRUSeenStore(),
	}
}

// AnalyzeSnippet runs the heuristic detectors over a live snippet.
func (s *InsightService) AnalyzeSnippet(ctx context.Context, userID, text string, flags SnippetFlags) []model.Insight {
	insights := AnalyzeSnippet(text, userID, s.seen, flags)
	if insights == nil {
		insights = []model.Insight{}
	}
	return insights
}

// DocumentInsights re-presents a document's score explanations as
// insight cards. Empty explanations produce no card.
func (s *InsightService) DocumentInsights(ctx context.Context, userID, docID string) ([]model.Insight, error) {
	doc, err := s.docs.GetByID(ctx, userID, docID)
	if err != nil {
		return nil, err
	}
	score, err := s.scores.GetByDocument(ctx, docID)
	if err != nil {
		return nil, err
	}

	title := doc.Title
	if title == "" {
		title = "(untitled)"
	}
	createdAt := time.Now().UTC().Format(time.RFC3339)
	insights := []model.Insight{}
	add := func(insightType, explanation string, confidence float64) {
		if explanation == "" {
			return
		}
		insights = append(insights, model.Insight{
			ID:           newID(),
			Type:         insightType,
			Confidence:   confidence,
			Explanation:  explanation,
			AffectedText: truncateSnippet(title),
			CreatedAt:    createdAt,
		})
	}
	add(model.InsightRepetition, score.RedundancyExplanation, 0.55)
	add(model.InsightCognitiveLoad, score.CognitiveLoadExplanation, 0.55)
	add(model.InsightMisinformation, score.NoveltyExplanation, 0.35)
	add(model.InsightMisinformation, score.DepthExplanation, 0.35)
	return insights, nil
}
