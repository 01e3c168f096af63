package service

import (
	"context"
	"sync"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/pkf/internal/config"
	"github.com/xxxsen/pkf/internal/model"
	"github.com/xxxsen/pkf/internal/pkg/timeutil"
	"github.com/xxxsen/pkf/internal/repo"
)

// GraphService maintains the per-user concept co-occurrence graph and
// the evolution timeline derived from it.
type GraphService struct {
	docs        *repo.DocumentRepo
	docConcepts *repo.DocumentConceptRepo
	concepts    *repo.ConceptRepo
	graphs      *repo.GraphRepo
	evolutions  *repo.EvolutionRepo
	cfg         config.GraphConfig

	mu    sync.Mutex
	users map[string]*sync.Mutex
}

func NewGraphService(docs *repo.DocumentRepo, docConcepts *repo.DocumentConceptRepo, concepts *repo.ConceptRepo,
	graphs *repo.GraphRepo, evolutions *repo.EvolutionRepo, cfg config.GraphConfig) *GraphService {
	return &GraphService{
		docs:        docs,
		docConcepts: docConcepts,
		concepts:    concepts,
		graphs:      graphs,
		evolutions:  evolutions,
		cfg:         cfg,
		users:       make(map[string]*sync.Mutex),
	}
}

// userLock serializes rebuilds per user. Concurrent rebuilds of the
// same graph would race on the delete-then-insert edge replacement.
func (s *GraphService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock := s.users[userID]
	if lock == nil {
		lock = &sync.Mutex{}
		s.users[userID] = lock
	}
	return lock
}

// Rebuild recomputes the user's whole graph from processed documents
// and swaps it in atomically.
func (s *GraphService) Rebuild(ctx context.Context, userID string) (*model.UserKnowledgeGraph, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	rows, err := s.docConcepts.ListUserDocConcepts(ctx, userID)
	if err != nil {
		return nil, err
	}
	edges := buildConceptEdges(rows)
	nodeIDs := distinctConceptIDs(rows)
	names, err := s.concepts.NamesByIDs(ctx, nodeIDs)
	if err != nil {
		return nil, err
	}
	totalDocs, err := s.docs.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := timeutil.NowUnix()
	centrality := degreeCentrality(nodeIDs, edges)
	graph := &model.UserKnowledgeGraph{
		UserID:             userID,
		TotalConcepts:      len(nodeIDs),
		TotalRelationships: len(edges),
		TotalDocuments:     totalDocs,
		TopConcepts:        topConceptsByCentrality(centrality, names, s.cfg.TopConcepts),
		Mtime:              now,
	}
	stored := make([]model.ConceptRelationship, 0, len(edges))
	for _, edge := range edges {
		stored = append(stored, model.ConceptRelationship{
			UserID:            userID,
			ConceptAID:        edge.ConceptAID,
			ConceptBID:        edge.ConceptBID,
			RelationshipType:  model.RelationshipTypeRelated,
			Strength:          edge.Strength,
			WeightedStrength:  edge.WeightedStrength,
			CoOccurrenceCount: edge.CoOccurrence,
			Mtime:             now,
		})
	}
	if err := s.graphs.SaveGraph(ctx, graph, stored); err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Info("rebuilt knowledge graph",
		zap.String("user_id", userID),
		zap.Int("concepts", graph.TotalConcepts),
		zap.Int("relationships", graph.TotalRelationships))
	return graph, nil
}

// RefreshStale rebuilds graphs for users whose documents changed after
// their last graph build. Per-user failures do not stop the sweep.
func (s *GraphService) RefreshStale(ctx context.Context) error {
	users, err := s.docs.ListUsersNeedingGraphRefresh(ctx)
	if err != nil {
		return err
	}
	for _, userID := range users {
		if _, err := s.Rebuild(ctx, userID); err != nil {
			logutil.GetLogger(ctx).Warn("graph refresh failed",
				zap.String("user_id", userID), zap.Error(err))
		}
	}
	return nil
}

func (s *GraphService) GetSummary(ctx context.Context, userID string) (*model.UserKnowledgeGraph, error) {
	return s.graphs.GetSummary(ctx, userID)
}

// RelatedConcepts reads a concept's strongest neighbors from the
// stored graph.
func (s *GraphService) RelatedConcepts(ctx context.Context, userID, conceptID string) ([]model.RelatedConcept, error) {
	edges, err := s.graphs.Neighbors(ctx, userID, conceptID, s.cfg.RelatedLimit)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(edges))
	for _, edge := range edges {
		other := edge.ConceptAID
		if other == conceptID {
			other = edge.ConceptBID
		}
		ids = append(ids, other)
	}
	names, err := s.concepts.NamesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]model.RelatedConcept, 0, len(edges))
	for i, edge := range edges {
		out = append(out, model.RelatedConcept{
			Name:     names[ids[i]],
			Strength: edge.WeightedStrength,
		})
	}
	return out, nil
}

// TrackEvolution appends one snapshot per concept in the document,
// capturing its strongest neighbors and how many of the user's
// documents have touched it so far.
func (s *GraphService) TrackEvolution(ctx context.Context, userID string, doc *model.Document) error {
	links, err := s.docConcepts.ListByDocument(ctx, doc.ID)
	if err != nil {
		return err
	}
	if len(links) == 0 {
		return nil
	}

	rows, err := s.docConcepts.ListUserDocConcepts(ctx, userID)
	if err != nil {
		return err
	}
	edges := buildConceptEdges(rows)
	names, err := s.concepts.NamesByIDs(ctx, distinctConceptIDs(rows))
	if err != nil {
		return err
	}

	now := timeutil.NowUnix()
	for _, link := range links {
		related := neighborsOf(edges, link.ConceptID)
		if len(related) > 5 {
			related = related[:5]
		}
		relatedConcepts := make([]model.RelatedConcept, 0, len(related))
		for _, nb := range related {
			relatedConcepts = append(relatedConcepts, model.RelatedConcept{
				Name:     names[nb.ConceptID],
				Strength: nb.WeightedStrength,
			})
		}
		depth, err := s.docConcepts.CountUserDocumentsWithConcept(ctx, userID, link.ConceptID, doc.Ctime)
		if err != nil {
			return err
		}
		if err := s.evolutions.Append(ctx, &model.ConceptEvolution{
			ID:                 newID(),
			UserID:             userID,
			ConceptID:          link.ConceptID,
			DocumentID:         doc.ID,
			RelatedConcepts:    relatedConcepts,
			UnderstandingDepth: depth,
			Ctime:              now,
		}); err != nil {
			return err
		}
	}
	logutil.GetLogger(ctx).Debug("tracked concept evolution",
		zap.String("document_id", doc.ID),
		zap.Int("concepts", len(links)))
	return nil
}

func (s *GraphService) Evolution(ctx context.Context, userID, conceptID string, limit int) ([]model.ConceptEvolution, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.evolutions.ListByConcept(ctx, userID, conceptID, limit)
}
