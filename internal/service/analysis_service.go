package service

import (
	"context"
	"errors"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/pkf/internal/ai"
	"github.com/xxxsen/pkf/internal/analysis"
	"github.com/xxxsen/pkf/internal/model"
	"github.com/xxxsen/pkf/internal/pkg/timeutil"
	"github.com/xxxsen/pkf/internal/repo"
)

const embedTaskType = "RETRIEVAL_DOCUMENT"

// AnalysisService runs the per-document extraction pipeline: concepts,
// embeddings, claims and emotional patterns.
type AnalysisService struct {
	chunks      *repo.ChunkRepo
	concepts    *repo.ConceptRepo
	docConcepts *repo.DocumentConceptRepo
	claims      *repo.ClaimRepo
	patterns    *repo.PatternRepo
	embedRepo   *repo.EmbeddingRepo
	embedder    ai.IEmbedder
}

func NewAnalysisService(chunks *repo.ChunkRepo, concepts *repo.ConceptRepo, docConcepts *repo.DocumentConceptRepo,
	claims *repo.ClaimRepo, patterns *repo.PatternRepo, embedRepo *repo.EmbeddingRepo, embedder ai.IEmbedder) *AnalysisService {
	return &AnalysisService{
		chunks:      chunks,
		concepts:    concepts,
		docConcepts: docConcepts,
		claims:      claims,
		patterns:    patterns,
		embedRepo:   embedRepo,
		embedder:    embedder,
	}
}

// Process extracts everything derivable from the document content.
// Embedding failure is tolerated; redundancy detection degrades to a
// neutral result when vectors are missing.
func (s *AnalysisService) Process(ctx context.Context, doc *model.Document) error {
	if err := s.extractConcepts(ctx, doc); err != nil {
		return err
	}
	if err := s.generateEmbeddings(ctx, doc); err != nil {
		if !errors.Is(err, ai.ErrUnavailable) {
			return err
		}
		logutil.GetLogger(ctx).Warn("embedding provider unavailable, skipping vectors",
			zap.String("document_id", doc.ID), zap.Error(err))
	}
	if err := s.extractClaims(ctx, doc); err != nil {
		return err
	}
	return s.detectEmotionalPatterns(ctx, doc)
}

func (s *AnalysisService) extractConcepts(ctx context.Context, doc *model.Document) error {
	mentions := analysis.ExtractConcepts(doc.NormalizedContent, doc.WordCount)
	if len(mentions) == 0 {
		return nil
	}
	now := timeutil.NowUnix()
	links := make([]model.DocumentConcept, 0, len(mentions))
	for _, mention := range mentions {
		concept, err := s.concepts.GetOrCreate(ctx, newID(), mention.Name, mention.NormalizedName, now)
		if err != nil {
			return err
		}
		if err := s.concepts.BumpCounters(ctx, concept.ID, mention.MentionCount, now); err != nil {
			return err
		}
		links = append(links, model.DocumentConcept{
			DocumentID:     doc.ID,
			ConceptID:      concept.ID,
			MentionCount:   mention.MentionCount,
			RelevanceScore: mention.Relevance,
		})
	}
	if err := s.docConcepts.BulkUpsert(ctx, links); err != nil {
		return err
	}
	logutil.GetLogger(ctx).Debug("extracted concepts",
		zap.String("document_id", doc.ID), zap.Int("count", len(links)))
	return nil
}

func (s *AnalysisService) generateEmbeddings(ctx context.Context, doc *model.Document) error {
	if s.embedder == nil {
		return ai.ErrUnavailable
	}
	chunks, err := s.chunks.ListByDocument(ctx, doc.ID)
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		return nil
	}
	now := timeutil.NowUnix()
	embeddings := make([]model.ChunkEmbedding, 0, len(chunks))
	for _, chunk := range chunks {
		vector, err := s.embedder.Embed(ctx, chunk.Text, embedTaskType)
		if err != nil {
			return err
		}
		embeddings = append(embeddings, model.ChunkEmbedding{
			ChunkID:    chunk.ID,
			DocumentID: doc.ID,
			Vector:     vector,
			ModelName:  s.embedder.ModelName(),
			Dimension:  len(vector),
			Ctime:      now,
		})
	}
	return s.embedRepo.BulkCreate(ctx, embeddings)
}

func (s *AnalysisService) extractClaims(ctx context.Context, doc *model.Document) error {
	candidates := analysis.ExtractClaims(doc.NormalizedContent)
	if len(candidates) == 0 {
		return nil
	}
	now := timeutil.NowUnix()
	claims := make([]model.Claim, 0, len(candidates))
	for _, cand := range candidates {
		claims = append(claims, model.Claim{
			ID:             newID(),
			DocumentID:     doc.ID,
			Text:           cand.Text,
			NormalizedText: cand.NormalizedText,
			ClaimType:      cand.ClaimType,
			Confidence:     cand.Confidence,
			Ctime:          now,
		})
	}
	return s.claims.BulkCreate(ctx, claims)
}

func (s *AnalysisService) detectEmotionalPatterns(ctx context.Context, doc *model.Document) error {
	candidates := analysis.DetectEmotionalPatterns(doc.NormalizedContent)
	if len(candidates) == 0 {
		return nil
	}
	now := timeutil.NowUnix()
	patterns := make([]model.EmotionalPattern, 0, len(candidates))
	for _, cand := range candidates {
		patterns = append(patterns, model.EmotionalPattern{
			ID:             newID(),
			DocumentID:     doc.ID,
			PatternType:    cand.PatternType,
			MatchedPhrases: cand.MatchedPhrases,
			Context:        cand.Context,
			Intensity:      cand.Intensity,
			Explanation:    cand.Explanation,
			Ctime:          now,
		})
	}
	return s.patterns.BulkCreate(ctx, patterns)
}

// Cleanup removes every derived artifact for a document so it can be
// reprocessed from the raw content.
func (s *AnalysisService) Cleanup(ctx context.Context, docID string) error {
	if err := s.embedRepo.DeleteByDocument(ctx, docID); err != nil {
		return err
	}
	if err := s.claims.DeleteByDocument(ctx, docID); err != nil {
		return err
	}
	if err := s.patterns.DeleteByDocument(ctx, docID); err != nil {
		return err
	}
	if err := s.docConcepts.DeleteByDocument(ctx, docID); err != nil {
		return err
	}
	return s.chunks.DeleteByDocument(ctx, docID)
}
