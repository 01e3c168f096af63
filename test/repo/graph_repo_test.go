package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/pkf/internal/model"
	appErr "github.com/xxxsen/pkf/internal/pkg/errors"
	"github.com/xxxsen/pkf/internal/pkg/timeutil"
	"github.com/xxxsen/pkf/internal/repo"
	"github.com/xxxsen/pkf/test/testutil"
)

func TestGraphRepoSaveReplacesEdges(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	graphs := repo.NewGraphRepo(db)
	user := "user-" + testutil.NewID(t)
	now := timeutil.NowUnix()

	edge := func(a, b string, weighted float64) model.ConceptRelationship {
		return model.ConceptRelationship{
			UserID:            user,
			ConceptAID:        a,
			ConceptBID:        b,
			RelationshipType:  model.RelationshipTypeRelated,
			Strength:          0.4,
			WeightedStrength:  weighted,
			CoOccurrenceCount: 2,
			Mtime:             now,
		}
	}

	summary := &model.UserKnowledgeGraph{
		UserID:             user,
		TotalConcepts:      3,
		TotalRelationships: 2,
		TotalDocuments:     5,
		TopConcepts:        []model.TopConcept{{Name: "alpha", Centrality: 1.0}},
		Mtime:              now,
	}
	require.NoError(t, graphs.SaveGraph(context.Background(), summary,
		[]model.ConceptRelationship{edge("a", "b", 0.3), edge("b", "c", 0.2)}))

	fetched, err := graphs.GetSummary(context.Background(), user)
	require.NoError(t, err)
	require.Equal(t, 3, fetched.TotalConcepts)
	require.Len(t, fetched.TopConcepts, 1)
	require.Equal(t, "alpha", fetched.TopConcepts[0].Name)

	// A rebuild with a different edge set replaces, not appends.
	summary.TotalRelationships = 1
	summary.Mtime = now + 1
	require.NoError(t, graphs.SaveGraph(context.Background(), summary,
		[]model.ConceptRelationship{edge("a", "c", 0.9)}))

	edges, err := graphs.ListEdges(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	require.Equal(t, "a", edges[0].ConceptAID)
	require.Equal(t, "c", edges[0].ConceptBID)
}

func TestGraphRepoNeighbors(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	graphs := repo.NewGraphRepo(db)
	user := "user-" + testutil.NewID(t)
	now := timeutil.NowUnix()

	summary := &model.UserKnowledgeGraph{UserID: user, Mtime: now}
	require.NoError(t, graphs.SaveGraph(context.Background(), summary, []model.ConceptRelationship{
		{UserID: user, ConceptAID: "a", ConceptBID: "b", RelationshipType: model.RelationshipTypeRelated, WeightedStrength: 0.2, Mtime: now},
		{UserID: user, ConceptAID: "b", ConceptBID: "c", RelationshipType: model.RelationshipTypeRelated, WeightedStrength: 0.9, Mtime: now},
		{UserID: user, ConceptAID: "a", ConceptBID: "c", RelationshipType: model.RelationshipTypeRelated, WeightedStrength: 0.5, Mtime: now},
	}))

	neighbors, err := graphs.Neighbors(context.Background(), user, "b", 10)
	require.NoError(t, err)
	require.Len(t, neighbors, 2)
	require.InDelta(t, 0.9, neighbors[0].WeightedStrength, 1e-9)
	require.InDelta(t, 0.2, neighbors[1].WeightedStrength, 1e-9)
}

func TestGraphRepoSummaryNotFound(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	graphs := repo.NewGraphRepo(db)
	_, err := graphs.GetSummary(context.Background(), "user-"+testutil.NewID(t))
	require.ErrorIs(t, err, appErr.ErrNotFound)
}
