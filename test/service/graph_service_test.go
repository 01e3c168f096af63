package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/pkf/internal/config"
	"github.com/xxxsen/pkf/internal/pkg/timeutil"
	"github.com/xxxsen/pkf/internal/repo"
	"github.com/xxxsen/pkf/internal/service"
	"github.com/xxxsen/pkf/test/testutil"
)

func newGraphService(db *sql.DB) *service.GraphService {
	return service.NewGraphService(
		repo.NewDocumentRepo(db),
		repo.NewDocumentConceptRepo(db),
		repo.NewConceptRepo(db),
		repo.NewGraphRepo(db),
		repo.NewEvolutionRepo(db),
		config.GraphConfig{TopConcepts: 10, RelatedLimit: 10},
	)
}

func TestGraphServiceRebuildAndEvolution(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	user := "user-" + testutil.NewID(t)
	now := timeutil.NowUnix()

	docA := "doc-" + testutil.NewID(t)
	docB := "doc-" + testutil.NewID(t)
	seedDocument(t, db, user, docA, now-50, true)
	seedDocument(t, db, user, docB, now, true)

	alpha := "alpha-" + testutil.NewID(t)
	beta := "beta-" + testutil.NewID(t)
	gamma := "gamma-" + testutil.NewID(t)
	alphaID := linkConcept(t, db, docA, alpha, now-50)
	linkConcept(t, db, docA, beta, now-50)
	linkConcept(t, db, docB, alpha, now)
	linkConcept(t, db, docB, gamma, now)

	svc := newGraphService(db)
	summary, err := svc.Rebuild(context.Background(), user)
	require.NoError(t, err)
	require.Equal(t, 3, summary.TotalConcepts)
	require.Equal(t, 2, summary.TotalRelationships)
	require.Equal(t, 2, summary.TotalDocuments)
	require.NotEmpty(t, summary.TopConcepts)
	// Alpha appears in both documents and is the best connected node.
	require.Equal(t, alpha, summary.TopConcepts[0].Name)

	stored, err := svc.GetSummary(context.Background(), user)
	require.NoError(t, err)
	require.Equal(t, summary.TotalConcepts, stored.TotalConcepts)

	related, err := svc.RelatedConcepts(context.Background(), user, alphaID)
	require.NoError(t, err)
	require.Len(t, related, 2)

	// Evolution snapshots for the newest document.
	docs := repo.NewDocumentRepo(db)
	doc, err := docs.GetByID(context.Background(), user, docB)
	require.NoError(t, err)
	require.NoError(t, svc.TrackEvolution(context.Background(), user, doc))

	evolutions, err := svc.Evolution(context.Background(), user, alphaID, 10)
	require.NoError(t, err)
	require.Len(t, evolutions, 1)
	// Alpha was seen in both documents up to docB's creation time.
	require.Equal(t, 2, evolutions[0].UnderstandingDepth)
	require.NotEmpty(t, evolutions[0].RelatedConcepts)
}

func TestGraphServiceRebuildEmptyUser(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	svc := newGraphService(db)
	summary, err := svc.Rebuild(context.Background(), "user-"+testutil.NewID(t))
	require.NoError(t, err)
	require.Equal(t, 0, summary.TotalConcepts)
	require.Equal(t, 0, summary.TotalRelationships)
	require.Empty(t, summary.TopConcepts)
}
