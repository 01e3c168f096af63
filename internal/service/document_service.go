package service

import (
	"context"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/pkf/internal/analysis"
	"github.com/xxxsen/pkf/internal/model"
	appErr "github.com/xxxsen/pkf/internal/pkg/errors"
	"github.com/xxxsen/pkf/internal/pkg/timeutil"
	"github.com/xxxsen/pkf/internal/repo"
)

// DocumentService owns the ingestion lifecycle: accept content, run
// the analysis pipeline, score, and keep the graph's evolution trail.
type DocumentService struct {
	docs     *repo.DocumentRepo
	chunks   *repo.ChunkRepo
	analysis *AnalysisService
	scoring  *ScoringService
	graph    *GraphService
}

func NewDocumentService(docs *repo.DocumentRepo, chunks *repo.ChunkRepo,
	analysisSvc *AnalysisService, scoring *ScoringService, graph *GraphService) *DocumentService {
	return &DocumentService{
		docs:     docs,
		chunks:   chunks,
		analysis: analysisSvc,
		scoring:  scoring,
		graph:    graph,
	}
}

type PasteRequest struct {
	Content     string
	ContentType string
	Title       string
	SourceURL   string
	SourceName  string
	Author      string
}

// Paste ingests pasted content and processes it synchronously. On
// pipeline failure the document is kept with the error recorded so the
// backfill job can retry it.
func (s *DocumentService) Paste(ctx context.Context, userID string, req PasteRequest) (*model.Document, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, appErr.ErrInvalid
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = model.ContentTypeText
	}

	normalized := analysis.Normalize(contentType, req.Content)
	title := req.Title
	if title == "" {
		title = analysis.ExtractTitle(normalized)
	}
	wordCount := analysis.WordCount(normalized)

	now := timeutil.NowUnix()
	doc := &model.Document{
		ID:                newID(),
		UserID:            userID,
		Title:             title,
		ContentType:       contentType,
		SourceType:        model.SourceTypePaste,
		RawContent:        req.Content,
		NormalizedContent: normalized,
		SourceURL:         req.SourceURL,
		SourceName:        req.SourceName,
		Author:            req.Author,
		WordCount:         wordCount,
		CharCount:         len(normalized),
		ReadTimeMinutes:   analysis.ReadTimeMinutes(wordCount),
		Ctime:             now,
		IngestedAt:        now,
		Mtime:             now,
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}
	if err := s.createChunks(ctx, doc); err != nil {
		return nil, err
	}
	s.process(ctx, doc)
	return doc, nil
}

func (s *DocumentService) createChunks(ctx context.Context, doc *model.Document) error {
	pieces := analysis.ChunkText(doc.NormalizedContent, 0)
	chunks := make([]model.ContentChunk, 0, len(pieces))
	for idx, text := range pieces {
		chunks = append(chunks, model.ContentChunk{
			ID:         newID(),
			DocumentID: doc.ID,
			Text:       text,
			ChunkIndex: idx,
			WordCount:  analysis.WordCount(text),
			CharCount:  len(text),
		})
	}
	return s.chunks.BulkCreate(ctx, chunks)
}

// process runs extraction, marks the document processed, then scores
// it and tracks evolution. Scoring failure is not fatal here; the
// backfill job picks up unscored documents.
func (s *DocumentService) process(ctx context.Context, doc *model.Document) {
	logger := logutil.GetLogger(ctx).With(zap.String("document_id", doc.ID))
	if err := s.analysis.Process(ctx, doc); err != nil {
		logger.Error("document processing failed", zap.Error(err))
		if serr := s.docs.SetProcessed(ctx, doc.ID, false, err.Error(), timeutil.NowUnix()); serr != nil {
			logger.Error("record processing error failed", zap.Error(serr))
		}
		doc.ProcessingError = err.Error()
		return
	}
	if err := s.docs.SetProcessed(ctx, doc.ID, true, "", timeutil.NowUnix()); err != nil {
		logger.Error("mark processed failed", zap.Error(err))
		return
	}
	doc.IsProcessed = true
	doc.ProcessingError = ""

	if _, err := s.scoring.ScoreDocument(ctx, doc.UserID, doc.ID); err != nil {
		logger.Warn("scoring failed, leaving for backfill", zap.Error(err))
	}
	if err := s.graph.TrackEvolution(ctx, doc.UserID, doc); err != nil {
		logger.Warn("evolution tracking failed", zap.Error(err))
	}
	logger.Info("document processed", zap.Int("word_count", doc.WordCount))
}

func (s *DocumentService) Get(ctx context.Context, userID, docID string) (*model.Document, error) {
	return s.docs.GetByID(ctx, userID, docID)
}

func (s *DocumentService) List(ctx context.Context, userID string, limit, offset uint) ([]model.Document, error) {
	if limit == 0 || limit > 100 {
		limit = 20
	}
	return s.docs.List(ctx, userID, limit, offset)
}

func (s *DocumentService) Chunks(ctx context.Context, userID, docID string) ([]model.ContentChunk, error) {
	if _, err := s.docs.GetByID(ctx, userID, docID); err != nil {
		return nil, err
	}
	return s.chunks.ListByDocument(ctx, docID)
}

// Delete removes a document and everything derived from it.
func (s *DocumentService) Delete(ctx context.Context, userID, docID string) error {
	if _, err := s.docs.GetByID(ctx, userID, docID); err != nil {
		return err
	}
	if err := s.analysis.Cleanup(ctx, docID); err != nil {
		return err
	}
	if err := s.scoring.scores.DeleteByDocument(ctx, docID); err != nil {
		return err
	}
	return s.docs.Delete(ctx, userID, docID)
}

// Reprocess drops derived artifacts and runs the pipeline again from
// the stored raw content.
func (s *DocumentService) Reprocess(ctx context.Context, userID, docID string) (*model.Document, error) {
	doc, err := s.docs.GetByID(ctx, userID, docID)
	if err != nil {
		return nil, err
	}
	if err := s.analysis.Cleanup(ctx, docID); err != nil {
		return nil, err
	}

	doc.NormalizedContent = analysis.Normalize(doc.ContentType, doc.RawContent)
	doc.WordCount = analysis.WordCount(doc.NormalizedContent)
	doc.CharCount = len(doc.NormalizedContent)
	doc.ReadTimeMinutes = analysis.ReadTimeMinutes(doc.WordCount)
	doc.Mtime = timeutil.NowUnix()
	if err := s.docs.UpdateContent(ctx, doc); err != nil {
		return nil, err
	}
	if err := s.createChunks(ctx, doc); err != nil {
		return nil, err
	}
	s.process(ctx, doc)
	return doc, nil
}
